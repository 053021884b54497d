package models

import "strings"

// OwnedAccount identifies one of the user's own accounts, matched by masked
// number. Used only for internal-transfer detection.
type OwnedAccount struct {
	Name string
	Mask string
}

// MatchesMask reports whether a masked account number from a statement
// refers to this account. Masks vary by issuer ("110-***-456789",
// "110***456789"), so comparison ignores separators and treats '*' runs as
// wildcards anchored at both ends.
func (a OwnedAccount) MatchesMask(mask string) bool {
	mine := canonicalMask(a.Mask)
	other := canonicalMask(mask)
	if mine == "" || other == "" {
		return false
	}
	if mine == other {
		return true
	}
	return maskTailsEqual(mine, other) && maskHeadsEqual(mine, other)
}

func canonicalMask(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' || r == '*' {
			b.WriteRune(r)
		}
	}
	// collapse wildcard runs
	out := b.String()
	for strings.Contains(out, "**") {
		out = strings.ReplaceAll(out, "**", "*")
	}
	return out
}

func maskTailsEqual(a, b string) bool {
	at := a[strings.LastIndex(a, "*")+1:]
	bt := b[strings.LastIndex(b, "*")+1:]
	if at == "" || bt == "" {
		return true
	}
	if len(at) > len(bt) {
		at, bt = bt, at
	}
	return strings.HasSuffix(bt, at)
}

func maskHeadsEqual(a, b string) bool {
	ah, _, _ := strings.Cut(a, "*")
	bh, _, _ := strings.Cut(b, "*")
	if ah == "" || bh == "" {
		return true
	}
	if len(ah) > len(bh) {
		ah, bh = bh, ah
	}
	return strings.HasPrefix(bh, ah)
}
