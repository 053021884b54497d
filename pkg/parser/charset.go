package parser

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeText converts raw statement bytes to a string with best-effort
// charset detection: a UTF-8 BOM or UTF-16 BOM is honored first, then the
// bytes are decoded both as UTF-8 and as EUC-KR (the legacy codepage Korean
// issuers still export) and whichever produces fewer replacement runes wins.
func decodeText(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return string(data[3:])
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		if s, ok := decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), data[2:]); ok {
			return s
		}
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		if s, ok := decodeWith(unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), data[2:]); ok {
			return s
		}
	}

	asUTF8 := string(data)
	utf8Bad := replacementCount(asUTF8)
	if utf8Bad == 0 {
		return asUTF8
	}

	asEUCKR, ok := decodeWith(korean.EUCKR, data)
	if ok && replacementCount(asEUCKR) < utf8Bad {
		return asEUCKR
	}
	return asUTF8
}

func decodeWith(enc encoding.Encoding, data []byte) (string, bool) {
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", false
	}
	return string(out), true
}

func replacementCount(s string) int {
	n := 0
	for _, r := range s {
		if r == utf8.RuneError {
			n++
		}
	}
	return n + strings.Count(s, "\x00")
}
