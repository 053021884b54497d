package parser

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/danwoo/gagyebu/pkg/models"
)

// ParseHTMLTable parses an HTML document containing a transaction table.
// Several issuers export "Excel" files that are really HTML tables; the
// rows go through the same header location and column mapping as any other
// spreadsheet.
func (p *Parser) ParseHTMLTable(data []byte) ([]*models.ParsedRecord, error) {
	doc, err := html.Parse(strings.NewReader(decodeText(data)))
	if err != nil {
		return nil, fmt.Errorf("error parsing html: %w", err)
	}

	rows := collectTableRows(doc)
	if len(rows) == 0 {
		return nil, ErrNoTransactions
	}
	return p.recordsFromRows(rows, headerScanWindowSpreadsheet, models.OriginSpreadsheet), nil
}

func collectTableRows(n *html.Node) [][]string {
	var rows [][]string
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == "tr" {
			var cells []string
			for c := node.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					cells = append(cells, strings.TrimSpace(nodeText(c)))
				}
			}
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return rows
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
