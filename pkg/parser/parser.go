// Package parser turns raw statement files and notification strings into
// parsed transaction records. Every supported input goes through the same
// pipeline: sniff the format, locate the data, map columns onto the
// canonical schema. Rows that fail to map are skipped, never fatal.
package parser

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/danwoo/gagyebu/pkg/models"
)

// ErrUnsupportedFormat is returned when no parser supports the input. The
// wrapping error names the detected extension and the supported set.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrNoTransactions is returned when a parser ran but found no row that
// maps onto the transaction schema.
var ErrNoTransactions = errors.New("no transactions detected")

type Parser struct {
	logger *log.Logger
	now    func() time.Time
}

func New(logger *log.Logger) *Parser {
	return &Parser{
		logger: logger,
		now:    time.Now,
	}
}

// ProcessBytes parses a statement file into records. The declared media
// type may be empty; format detection falls back to content inspection.
func (p *Parser) ProcessBytes(data []byte, filename, mediaType string) ([]*models.ParsedRecord, error) {
	format, ext := Detect(filename, mediaType, data)
	p.logger.Debug("detected file format", "format", format, "filename", filename)

	var (
		records []*models.ParsedRecord
		err     error
	)
	switch format {
	case FormatDelimited:
		records, err = p.ParseDelimited(data)
	case FormatSpreadsheet:
		records, err = p.ParseSpreadsheet(data, false)
	case FormatLegacySpreadsheet:
		records, err = p.ParseSpreadsheet(data, true)
	case FormatHTML:
		records, err = p.ParseHTMLTable(data)
	case FormatPDF:
		records, err = p.ParsePDF(data)
	default:
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, ext, supportedExtensions())
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoTransactions
	}
	return records, nil
}
