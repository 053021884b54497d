package parser

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/danwoo/gagyebu/pkg/models"
)

// maxSpreadsheetRows caps how much of a sheet is read.
const maxSpreadsheetRows = 2000

// ParseSpreadsheet parses an XLSX workbook, or a legacy XLS one when legacy
// is set. Issuers also ship "spreadsheets" that are really HTML tables or
// delimited text with a spreadsheet extension, so when strict binary parsing
// fails or yields nothing the raw bytes are retried through the text and
// HTML paths before the original error surfaces.
func (p *Parser) ParseSpreadsheet(data []byte, legacy bool) ([]*models.ParsedRecord, error) {
	var (
		rows [][]string
		err  error
	)
	if legacy {
		rows, err = readLegacyWorkbook(data)
	} else {
		rows, err = readWorkbook(data)
	}

	var records []*models.ParsedRecord
	if err == nil {
		records = p.recordsFromRows(rows, headerScanWindowSpreadsheet, models.OriginSpreadsheet)
	}
	if len(records) > 0 {
		return records, nil
	}

	if fallback := p.spreadsheetFallback(data); len(fallback) > 0 {
		p.logger.Debug("spreadsheet parsed via text fallback", "legacy", legacy)
		return fallback, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading workbook: %w", err)
	}
	return records, nil
}

func readWorkbook(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in workbook")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) > maxSpreadsheetRows {
		rows = rows[:maxSpreadsheetRows]
	}
	return rows, nil
}

func readLegacyWorkbook(data []byte) ([][]string, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "euc-kr")
	if err != nil {
		return nil, err
	}
	rows := workbook.ReadAllCells(maxSpreadsheetRows)
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in sheet")
	}
	return rows, nil
}

// spreadsheetFallback attempts the disguised formats: an HTML table saved
// with a spreadsheet extension, then plain delimited text.
func (p *Parser) spreadsheetFallback(data []byte) []*models.ParsedRecord {
	if sniffContent(data) == FormatHTML {
		if records, err := p.ParseHTMLTable(data); err == nil {
			return records
		}
	}
	records, err := p.ParseDelimited(data)
	if err != nil {
		return nil
	}
	return records
}
