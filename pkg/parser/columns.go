package parser

import (
	"time"

	"github.com/danwoo/gagyebu/pkg/models"
	"github.com/danwoo/gagyebu/pkg/normalize"
)

// Column aliasing maps issuer-specific header names onto the canonical
// schema. Aliases are listed most-specific first; lookup takes the first
// alias present in the row. All aliases are compared after normalize.Key, so
// spacing, punctuation and case in the source header do not matter.
//
// 결제원금 (billed principal) deliberately outranks 이용금액 (charged
// amount): card statements report both and the principal is what actually
// leaves the account that month.
var (
	dateAliases = []string{
		"거래일시", "승인일시", "거래일자", "이용일자", "거래일", "이용일", "사용일", "일시", "일자", "날짜",
		"transactiondate", "date",
	}
	descriptionAliases = []string{
		"거래내용", "이용내역", "거래내역", "적요", "내역", "내용", "비고",
		"description", "details", "memo",
	}
	merchantAliases = []string{
		"이용가맹점", "가맹점명", "가맹점", "사용처", "상호",
		"merchantname", "merchant", "store", "payee",
	}
	withdrawalAliases = []string{
		"출금금액", "출금액", "찾으신금액", "출금", "결제원금", "이용금액", "청구금액",
		"withdrawalamount", "withdrawal", "debitamount", "debit",
	}
	depositAliases = []string{
		"입금금액", "입금액", "맡기신금액", "입금",
		"depositamount", "deposit", "creditamount", "credit",
	}
	amountAliases = []string{
		"거래금액", "금액",
		"transactionamount", "amount", "value",
	}
	accountAliases = []string{
		"계좌번호", "출금계좌번호", "계좌",
		"accountnumber", "account",
	}
	fromAliases = []string{
		"출금계좌", "보내는계좌", "보내는분계좌",
		"fromaccount", "from",
	}
	toAliases = []string{
		"입금계좌", "받는계좌", "받는분계좌",
		"toaccount", "to",
	}
	counterpartyAliases = []string{
		"거래처", "받는분", "보낸분", "예금주", "상대방",
		"counterpartyname", "counterparty",
	}
)

// MapColumns maps an arbitrary header→cell row onto a ParsedRecord. It
// returns nil when the row does not carry a parseable date, any description
// text, or any amount — the caller skips such rows.
//
// Signed-amount precedence: a positive withdrawal column negates, a positive
// deposit column stays positive, a non-zero single amount column is taken as
// already signed. Issuers variably report separate debit/credit columns or
// one signed column; this order resolves both shapes.
func MapColumns(raw map[string]string, ref time.Time) *models.ParsedRecord {
	row := make(map[string]string, len(raw))
	for k, v := range raw {
		nk := normalize.Key(k)
		if _, ok := row[nk]; !ok {
			row[nk] = v
		}
	}
	lookup := func(aliases []string) string {
		for _, a := range aliases {
			if v, ok := row[a]; ok && v != "" {
				return v
			}
		}
		return ""
	}

	ts, ok := normalize.ParseDate(lookup(dateAliases), ref)
	if !ok {
		return nil
	}

	description := lookup(descriptionAliases)
	merchant := lookup(merchantAliases)
	if description == "" {
		description = merchant
	}
	if description == "" {
		return nil
	}

	withdrawal := normalize.ParseSignedAmount(lookup(withdrawalAliases))
	deposit := normalize.ParseSignedAmount(lookup(depositAliases))
	signed := normalize.ParseSignedAmount(lookup(amountAliases))

	var amount int64
	switch {
	case withdrawal > 0:
		amount = -withdrawal
	case deposit > 0:
		amount = deposit
	case signed != 0:
		amount = signed
	default:
		return nil
	}

	return &models.ParsedRecord{
		Timestamp:    ts,
		Amount:       amount,
		Description:  description,
		Merchant:     merchant,
		AccountMask:  lookup(accountAliases),
		FromMask:     lookup(fromAliases),
		ToMask:       lookup(toAliases),
		Counterparty: lookup(counterpartyAliases),
		Raw:          raw,
	}
}
