package classify

import (
	"strings"

	"github.com/danwoo/gagyebu/pkg/models"
	"github.com/danwoo/gagyebu/pkg/normalize"
)

// isInternalTransfer decides whether a record moves money between the
// user's own accounts or identities. Three signals, any one suffices:
// both declared endpoint masks are owned; the record's own account is owned
// and the counterparty is a known owner alias next to a transfer keyword; or
// a transfer keyword appears and the description itself contains an alias.
func isInternalTransfer(rec *models.ParsedRecord, ctx *Context) bool {
	if rec.FromMask != "" && rec.ToMask != "" &&
		maskOwned(rec.FromMask, ctx.OwnedAccounts) && maskOwned(rec.ToMask, ctx.OwnedAccounts) {
		return true
	}

	hasKeyword := containsTransferKeyword(rec.Description)

	if hasKeyword && rec.AccountMask != "" && maskOwned(rec.AccountMask, ctx.OwnedAccounts) {
		cp := normalize.Name(rec.Counterparty)
		for _, alias := range ctx.OwnerAliases {
			if cp != "" && cp == normalize.Name(alias) {
				return true
			}
		}
	}

	if hasKeyword {
		desc := normalize.Name(rec.Description)
		for _, alias := range ctx.OwnerAliases {
			if a := normalize.Name(alias); a != "" && strings.Contains(desc, a) {
				return true
			}
		}
	}
	return false
}

func maskOwned(mask string, owned []models.OwnedAccount) bool {
	for _, acct := range owned {
		if acct.MatchesMask(mask) {
			return true
		}
	}
	return false
}

func containsTransferKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, k := range transferKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
