package parser

import (
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"github.com/danwoo/gagyebu/pkg/models"
)

func newTestParser() *Parser {
	p := New(log.New(io.Discard))
	p.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	return p
}

func TestParseDelimitedBankStatement(t *testing.T) {
	data := []byte("OO은행 거래내역\n" +
		"조회기간: 2026.01.01 ~ 2026.03.01\n" +
		"거래일시,적요,출금액,입금액,잔액\n" +
		"2026-02-10 11:30:00,스타벅스 강남점,\"5,500\",,\"994,500\"\n" +
		"2026-02-25 09:00:00,급여,,\"2,500,000\",\"3,494,500\"\n" +
		"합계,,\"5,500\",\"2,500,000\",\n")

	records, err := newTestParser().ParseDelimited(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Amount != -5500 {
		t.Errorf("withdrawal amount = %d, want -5500", records[0].Amount)
	}
	if records[1].Amount != 2500000 {
		t.Errorf("deposit amount = %d, want 2500000", records[1].Amount)
	}
	for _, r := range records {
		if r.Origin != models.OriginDelimited {
			t.Errorf("origin = %q, want %q", r.Origin, models.OriginDelimited)
		}
	}
}

func TestParseDelimitedTabSeparated(t *testing.T) {
	data := []byte("거래일시\t적요\t출금액\t입금액\n" +
		"2026-02-10\t커피\t5,500\t\n")

	records, err := newTestParser().ParseDelimited(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Amount != -5500 {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestParseDelimitedEUCKR(t *testing.T) {
	utf8Data := "거래일시,적요,출금액,입금액\n2026-02-10,김밥천국,4300,\n"
	data, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte(utf8Data))
	if err != nil {
		t.Fatal(err)
	}

	records, perr := newTestParser().ParseDelimited(data)
	if perr != nil {
		t.Fatal(perr)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Description != "김밥천국" {
		t.Errorf("description = %q, want 김밥천국", records[0].Description)
	}
	if records[0].Amount != -4300 {
		t.Errorf("amount = %d, want -4300", records[0].Amount)
	}
}

func TestDetectDelimiter(t *testing.T) {
	cases := []struct {
		text string
		want rune
	}{
		{"a\tb\tc\n1\t2\t3", '\t'},
		{"a,b,c\n1,2,3", ','},
		{"a;b;c\n1;2;3", ';'},
		// Tabs win ties; a tabbed file whose cells contain commas stays tabbed.
		{"a\tb\n1,200\t3,400\t5,600", '\t'},
		{"plain text", ','},
	}

	for _, c := range cases {
		if got := detectDelimiter(c.text); got != c.want {
			t.Errorf("detectDelimiter(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}

func TestAlignRowReinsertsOptionalBlanks(t *testing.T) {
	headers := []string{"거래일시", "출금액", "적요"}
	optional := optionalIndexes(headers)

	got := alignRow([]string{"2026-02-10", "커피"}, headers, optional)
	want := []string{"2026-02-10", "", "커피"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("alignRow = %v, want %v", got, want)
	}
}

func TestAlignRowLeavesAmbiguousRowsAlone(t *testing.T) {
	headers := []string{"거래일시", "출금액", "입금액", "적요"}
	optional := optionalIndexes(headers)

	row := []string{"2026-02-10", "커피", "5,500"}
	got := alignRow(row, headers, optional)
	if !reflect.DeepEqual(got, row) {
		t.Errorf("short row not matching the optional shortfall should pass through, got %v", got)
	}
}

func TestDecodeTextBOMs(t *testing.T) {
	if got := decodeText([]byte{0xEF, 0xBB, 0xBF, 'a', 'b'}); got != "ab" {
		t.Errorf("UTF-8 BOM decode = %q", got)
	}
	// "ab" in UTF-16LE with BOM.
	if got := decodeText([]byte{0xFF, 0xFE, 'a', 0x00, 'b', 0x00}); got != "ab" {
		t.Errorf("UTF-16LE decode = %q", got)
	}
}
