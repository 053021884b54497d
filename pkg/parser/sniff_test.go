package parser

import (
	"errors"
	"strings"
	"testing"
)

func TestDetectByExtension(t *testing.T) {
	cases := []struct {
		filename string
		want     Format
	}{
		{"통장거래내역.csv", FormatDelimited},
		{"export.TSV", FormatDelimited},
		{"statement.txt", FormatDelimited},
		{"카드이용내역.xlsx", FormatSpreadsheet},
		{"카드이용내역.xls", FormatLegacySpreadsheet},
		{"statement.html", FormatHTML},
		{"statement.pdf", FormatPDF},
	}

	for _, c := range cases {
		got, _ := Detect(c.filename, "", nil)
		if got != c.want {
			t.Errorf("Detect(%q) = %q, want %q", c.filename, got, c.want)
		}
	}
}

func TestDetectExtensionBeatsMediaType(t *testing.T) {
	got, _ := Detect("statement.csv", "application/pdf", []byte("%PDF-1.4"))
	if got != FormatDelimited {
		t.Errorf("extension should take precedence, got %q", got)
	}
}

func TestDetectByMediaType(t *testing.T) {
	got, _ := Detect("upload.bin", "text/csv; charset=euc-kr", nil)
	if got != FormatDelimited {
		t.Errorf("media type detection = %q, want %q", got, FormatDelimited)
	}
}

func TestSniffContent(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want Format
	}{
		{"pdf magic", []byte("%PDF-1.7 rest"), FormatPDF},
		{"zip magic", []byte("PK\x03\x04rest"), FormatSpreadsheet},
		{"ole magic", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0x00}, FormatLegacySpreadsheet},
		{"html table", []byte("  <html><body><table><tr><td>x</td></tr></table>"), FormatHTML},
		{"doctype", []byte("<!DOCTYPE html><p>hi</p>"), FormatHTML},
		{"delimited", []byte("a,b,c\n1,2,3\n"), FormatDelimited},
		{"opaque", []byte{0x00, 0x01, 0x02}, FormatUnknown},
	}

	for _, c := range cases {
		if got := sniffContent(c.data); got != c.want {
			t.Errorf("%s: sniffContent = %q, want %q", c.name, got, c.want)
		}
	}
}

// Spreadsheet exports that are really HTML tables are common; a misnamed
// .xls upload must still detect by extension and then fall through to the
// HTML parser inside ParseSpreadsheet.
func TestProcessBytesHTMLDisguisedAsXLS(t *testing.T) {
	html := "<html><body><table>" +
		"<tr><td>거래일시</td><td>적요</td><td>출금액</td><td>입금액</td></tr>" +
		"<tr><td>2026-02-10</td><td>스타벅스</td><td>5,500</td><td></td></tr>" +
		"</table></body></html>"

	records, err := newTestParser().ProcessBytes([]byte(html), "내역.xls", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Amount != -5500 {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestProcessBytesUnsupported(t *testing.T) {
	_, err := newTestParser().ProcessBytes([]byte{0x00, 0x01}, "weird.bin", "")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
	if !strings.Contains(err.Error(), ".bin") {
		t.Errorf("error should name the extension, got %q", err)
	}
}

func TestProcessBytesNoTransactions(t *testing.T) {
	_, err := newTestParser().ProcessBytes([]byte("헤더만 있는 파일\n내용,없음\n"), "empty.csv", "")
	if !errors.Is(err, ErrNoTransactions) {
		t.Fatalf("err = %v, want ErrNoTransactions", err)
	}
}
