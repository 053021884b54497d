package classify

// Fixed categories assigned by the engine itself.
const (
	CategoryTransfer     = "이체"
	CategoryInstallment  = "할부"
	CategoryLoan         = "대출"
	CategorySubscription = "구독"
	CategoryFallback     = "기타"
	CategoryIncomeOther  = "기타수입"
)

var transferKeywords = []string{
	"이체", "송금", "대체", "내계좌",
	"transfer", "remit", "wire",
}

// incomeCategories maps income-indicating description keywords to a
// category, checked in order.
var incomeCategories = []keywordCategory{
	{"급여", "급여"},
	{"월급", "급여"},
	{"상여", "급여"},
	{"salary", "급여"},
	{"payroll", "급여"},
	{"이자", "금융수입"},
	{"배당", "금융수입"},
	{"interest", "금융수입"},
	{"dividend", "금융수입"},
	{"환급", "기타수입"},
	{"캐시백", "기타수입"},
	{"refund", "기타수입"},
	{"cashback", "기타수입"},
}

// Spending-kind vocabulary scanned over description plus raw column keys
// and values.
var (
	loanKeywords = []string{
		"대출", "원리금", "대출이자", "주택담보",
		"loan", "mortgage",
	}
	oneTimeKeywords = []string{
		"일시불", "일시납",
		"lumpsum", "onetime",
	}
	installmentKeywords = []string{
		"할부", "분할납부",
		"installment",
	}
)

type keywordCategory struct {
	keyword  string
	category string
}

// defaultCategories is the keyword dictionary used when no stronger signal
// resolved a category. Checked in order, first hit wins.
var defaultCategories = []keywordCategory{
	{"스타벅스", "카페"},
	{"커피", "카페"},
	{"카페", "카페"},
	{"coffee", "카페"},
	{"편의점", "편의점"},
	{"cu", "편의점"},
	{"gs25", "편의점"},
	{"세븐일레븐", "편의점"},
	{"이마트", "마트"},
	{"홈플러스", "마트"},
	{"마트", "마트"},
	{"쿠팡", "쇼핑"},
	{"11번가", "쇼핑"},
	{"지마켓", "쇼핑"},
	{"택시", "교통"},
	{"버스", "교통"},
	{"지하철", "교통"},
	{"교통", "교통"},
	{"주유", "교통"},
	{"taxi", "교통"},
	{"배달의민족", "식비"},
	{"요기요", "식비"},
	{"식당", "식비"},
	{"맥도날드", "식비"},
	{"병원", "의료"},
	{"약국", "의료"},
	{"의원", "의료"},
	{"pharmacy", "의료"},
	{"넷플릭스", "구독"},
	{"멜론", "구독"},
	{"유튜브", "구독"},
	{"netflix", "구독"},
	{"spotify", "구독"},
	{"통신", "통신"},
	{"kt", "통신"},
	{"skt", "통신"},
	{"보험", "보험"},
	{"insurance", "보험"},
	{"관리비", "주거"},
	{"월세", "주거"},
}
