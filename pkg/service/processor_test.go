package service

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/danwoo/gagyebu/pkg/classify"
	"github.com/danwoo/gagyebu/pkg/config"
	"github.com/danwoo/gagyebu/pkg/importer"
	"github.com/danwoo/gagyebu/pkg/parser"
	"github.com/danwoo/gagyebu/pkg/rules"
	"github.com/danwoo/gagyebu/pkg/store"
)

func newTestProcessor(t *testing.T, cfg *config.Config) *Processor {
	t.Helper()
	logger := log.New(io.Discard)
	imp := importer.New(parser.New(logger), classify.New(logger), store.NewMemory(), rules.NewMemoryStore(), logger)
	return NewProcessor(cfg, imp, logger)
}

const sampleStatement = "거래일시,적요,출금액,입금액\n2026-02-10 11:30:00,스타벅스 강남점,\"5,500\",\n"

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "statement.csv")
	if err := os.WriteFile(in, []byte(sampleStatement), 0o644); err != nil {
		t.Fatal(err)
	}

	p := newTestProcessor(t, &config.Config{})
	if err := p.ProcessFile(in); err != nil {
		t.Fatal(err)
	}

	out, err := os.ReadFile(filepath.Join(dir, "statement-ledger.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "스타벅스 강남점") {
		t.Errorf("output csv missing the entry:\n%s", out)
	}
}

func TestProcessFileOutputPath(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	in := filepath.Join(inDir, "내역.csv")
	if err := os.WriteFile(in, []byte(sampleStatement), 0o644); err != nil {
		t.Fatal(err)
	}

	p := newTestProcessor(t, &config.Config{OutputPath: outDir})
	if err := p.ProcessFile(in); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "내역-ledger.csv")); err != nil {
		t.Errorf("expected output in configured directory: %v", err)
	}
}

func TestProcessDirectorySkipsSubdirsAndBadFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ok.csv"), []byte(sampleStatement), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.csv"), []byte("no transactions here\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := newTestProcessor(t, &config.Config{})
	if err := p.ProcessDirectory(dir); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "ok-ledger.csv")); err != nil {
		t.Errorf("good file should still produce output: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "broken-ledger.csv")); err == nil {
		t.Error("file without transactions should not produce output")
	}
}

func TestSupported(t *testing.T) {
	for _, name := range []string{"a.csv", "b.xlsx", "c.xls", "d.pdf", "e.html", "f.txt"} {
		if !Supported(name) {
			t.Errorf("Supported(%q) = false", name)
		}
	}
	for _, name := range []string{"a.zip", "b.png", "noext"} {
		if Supported(name) {
			t.Errorf("Supported(%q) = true", name)
		}
	}
}
