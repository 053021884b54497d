package parser

import "testing"

func TestScoreHeaderRow(t *testing.T) {
	cases := []struct {
		name  string
		cells []string
		want  int
	}{
		{"full bank header", []string{"거래일시", "적요", "출금액", "입금액", "잔액"}, 12},
		{"date and amount only", []string{"거래일", "금액"}, 8},
		{"preamble text", []string{"조회기간: 2026.01.01 ~ 2026.02.01"}, -3},
		{"data row", []string{"2026-02-10", "스타벅스", "5,500", "", "994,500"}, 1},
		{"blank row", []string{"", "", ""}, 0},
	}

	for _, c := range cases {
		if got := scoreHeaderRow(c.cells); got != c.want {
			t.Errorf("%s: score = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestLocateHeaderSkipsPreamble(t *testing.T) {
	rows := [][]string{
		{"OO은행 거래내역 조회"},
		{""},
		{"계좌번호: 110-***-456789", "", "", ""},
		{"거래일시", "적요", "출금액", "입금액", "잔액"},
		{"2026-02-10 11:30:00", "스타벅스 강남점", "5,500", "", "994,500"},
	}

	if got := locateHeader(rows, headerScanWindowText); got != 3 {
		t.Errorf("header index = %d, want 3", got)
	}
}

// Moving the header around inside the window must not change which row is
// chosen as the header.
func TestLocateHeaderStableUnderPreambleShuffle(t *testing.T) {
	header := []string{"거래일시", "적요", "출금액", "입금액"}
	junk := [][]string{
		{"거래내역"},
		{"기간", "2026.01.01"},
		{"합계", "123,000"},
	}

	for pos := 0; pos <= len(junk); pos++ {
		var rows [][]string
		rows = append(rows, junk[:pos]...)
		rows = append(rows, header)
		rows = append(rows, junk[pos:]...)
		rows = append(rows, []string{"2026-02-10", "커피", "5,500", ""})

		got := locateHeader(rows, headerScanWindowText)
		if got != pos {
			t.Errorf("header at %d located at %d", pos, got)
		}
	}
}

func TestLocateHeaderFallsBackToFirstNonBlank(t *testing.T) {
	rows := [][]string{
		{""},
		{"aaa", "bbb", "ccc"},
		{"ddd", "eee", "fff"},
	}
	if got := locateHeader(rows, headerScanWindowText); got != 1 {
		t.Errorf("fallback header index = %d, want 1", got)
	}
}

func TestLocateHeaderBlankSheet(t *testing.T) {
	rows := [][]string{{""}, {"", ""}}
	if got := locateHeader(rows, headerScanWindowText); got != -1 {
		t.Errorf("blank sheet header index = %d, want -1", got)
	}
}

func TestLocateHeaderOutsideWindowIgnored(t *testing.T) {
	rows := make([][]string, 0, headerScanWindowText+2)
	for i := 0; i < headerScanWindowText; i++ {
		rows = append(rows, []string{"x", "y"})
	}
	rows = append(rows, []string{"거래일시", "적요", "출금액"})

	if got := locateHeader(rows, headerScanWindowText); got != 0 {
		t.Errorf("header beyond the scan window should be ignored, got %d", got)
	}
}
