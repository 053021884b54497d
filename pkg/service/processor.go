package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/danwoo/gagyebu/pkg/config"
	"github.com/danwoo/gagyebu/pkg/csv"
	"github.com/danwoo/gagyebu/pkg/importer"
	"github.com/danwoo/gagyebu/pkg/parser"
)

// Processor walks a directory of statement files, runs each through the
// import pipeline and writes the accepted entries next to the input as
// canonical CSV.
type Processor struct {
	config   *config.Config
	importer *importer.Importer
	logger   *log.Logger
}

func NewProcessor(cfg *config.Config, imp *importer.Importer, logger *log.Logger) *Processor {
	return &Processor{
		config:   cfg,
		importer: imp,
		logger:   logger,
	}
}

func (p *Processor) ProcessDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("error reading directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := p.ProcessFile(filepath.Join(dir, entry.Name())); err != nil {
			p.logger.Error("failed to process file", "file", entry.Name(), "error", err)
		}
	}
	return nil
}

func (p *Processor) ProcessFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	result, err := p.importer.ImportFile(data, filepath.Base(path), "")
	if err != nil {
		return err
	}
	p.logger.Info("processed file", "path", path,
		"parsed", result.Parsed, "inserted", result.Inserted, "duplicates", result.Duplicates)

	outPath := p.outputPath(path)
	if err := os.WriteFile(outPath, csv.Create(result.Entries, nil), 0o644); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}
	p.logger.Info("wrote canonical csv", "output", outPath)
	return nil
}

// Supported reports whether the file looks importable at all, by extension.
// Content sniffing still runs during import.
func Supported(name string) bool {
	_, ext := parser.Detect(name, "", nil)
	switch ext {
	case ".csv", ".tsv", ".txt", ".xls", ".xlsx", ".html", ".htm", ".pdf":
		return true
	}
	return false
}

func (p *Processor) outputPath(inputPath string) string {
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext) + "-ledger.csv"
	if p.config.OutputPath != "" {
		return filepath.Join(p.config.OutputPath, name)
	}
	return filepath.Join(filepath.Dir(inputPath), name)
}
