package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/danwoo/gagyebu/pkg/classify"
	"github.com/danwoo/gagyebu/pkg/config"
	"github.com/danwoo/gagyebu/pkg/csv"
	"github.com/danwoo/gagyebu/pkg/importer"
	"github.com/danwoo/gagyebu/pkg/models"
	"github.com/danwoo/gagyebu/pkg/notify"
	"github.com/danwoo/gagyebu/pkg/parser"
	"github.com/danwoo/gagyebu/pkg/rules"
	"github.com/danwoo/gagyebu/pkg/server"
	"github.com/danwoo/gagyebu/pkg/service"
	"github.com/danwoo/gagyebu/pkg/store"
)

var (
	cfgFile       string
	verbose       bool
	outputDirFlag string
	cliFilters    filters
)

var rootCmd = &cobra.Command{
	Use:   "gagyebu",
	Short: "Parse, classify and deduplicate bank statement exports",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var importCmd = &cobra.Command{
	Use:   "import [flags] <path>",
	Short: "Import statement files and print the canonical ledger as CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		imp, _, entryStore, err := buildPipeline(cfg, logger)
		if err != nil {
			return err
		}

		matches, err := filepath.Glob(args[0])
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			return fmt.Errorf("no files found matching pattern %s", args[0])
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				logger.Warn("failed to stat file", "error", err, "file", match)
				continue
			}
			if info.IsDir() {
				if err := importDirectory(imp, logger, match); err != nil {
					logger.Warn("failed to process directory", "error", err, "dir", match)
				}
				continue
			}
			if err := importFile(imp, logger, match); err != nil {
				logger.Warn("failed to process file", "error", err, "file", match)
			}
		}

		entries, err := entryStore.ListAll()
		if err != nil {
			return err
		}
		if verbose {
			pp.Println(entries)
		}
		fmt.Print(string(csv.Create(entries, cliFilters.toFilterFunc())))
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP ingest server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger()
		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		imp, ruleStore, entryStore, err := buildPipeline(cfg, logger)
		if err != nil {
			return err
		}
		capture := notify.NewCapture(imp, logger,
			cfg.Notify.MaxEntries, cfg.Notify.DedupWindow, cfg.Notify.EvictionTTL)

		srv := server.New(cfg, imp, capture, ruleStore, entryStore, logger)
		logger.Info("starting server", "addr", cfg.ListenAddr)
		return srv.Start(cfg.ListenAddr)
	},
}

var processCmd = &cobra.Command{
	Use:   "process <directory>",
	Short: "Import every statement in a directory and write canonical CSVs next to them",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		if outputDirFlag != "" {
			cfg.OutputPath = outputDirFlag
		}
		imp, _, _, err := buildPipeline(cfg, logger)
		if err != nil {
			return err
		}
		return service.NewProcessor(cfg, imp, logger).ProcessDirectory(args[0])
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the classification rules from the rules file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		if cfg.RulesFile == "" {
			return fmt.Errorf("no rules file configured")
		}
		loaded, err := rules.LoadFile(cfg.RulesFile)
		if err != nil {
			return err
		}
		for _, r := range loaded {
			forced := "-"
			if r.ForcedType != nil {
				forced = string(*r.ForcedType)
			}
			fmt.Printf("%-30s kind=%-12s category=%-10s type=%-8s enabled=%t\n",
				r.Keyword, r.Kind, r.Category, forced, r.Enabled)
		}
		return nil
	},
}

func newLogger() *log.Logger {
	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          "gagyebu",
	}
	if verbose {
		opts.Level = log.DebugLevel
		opts.ReportCaller = true
	}
	return log.NewWithOptions(os.Stderr, opts)
}

func buildPipeline(cfg *config.Config, logger *log.Logger) (*importer.Importer, rules.Store, importer.Store, error) {
	ruleStore := rules.NewMemoryStore()
	if cfg.RulesFile != "" {
		loaded, err := rules.LoadFile(cfg.RulesFile)
		if err != nil {
			return nil, nil, nil, err
		}
		for _, r := range loaded {
			if err := ruleStore.Add(r); err != nil {
				return nil, nil, nil, err
			}
		}
	}

	entryStore := store.NewMemory()
	imp := importer.New(parser.New(logger), classify.New(logger), entryStore, ruleStore, logger)

	accounts := make([]models.OwnedAccount, 0, len(cfg.Accounts))
	for _, mask := range cfg.Accounts {
		accounts = append(accounts, models.OwnedAccount{Mask: mask})
	}
	imp.SetIdentity(accounts, cfg.Aliases)

	return imp, ruleStore, entryStore, nil
}

func importDirectory(imp *importer.Importer, logger *log.Logger, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !service.Supported(entry.Name()) {
			continue
		}
		if err := importFile(imp, logger, filepath.Join(dir, entry.Name())); err != nil {
			logger.Warn("failed to process file", "error", err, "file", entry.Name())
		}
	}
	return nil
}

func importFile(imp *importer.Importer, logger *log.Logger, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	result, err := imp.ImportFile(data, filepath.Base(path), "")
	if err != nil {
		return err
	}
	logger.Info("imported file", "file", path,
		"parsed", result.Parsed, "inserted", result.Inserted, "duplicates", result.Duplicates)
	return nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging and record dump")

	importCmd.Flags().StringVar(&cliFilters.startDate, "start-date", "", "only entries on or after this date (YYYY/MM/DD)")
	importCmd.Flags().StringVar(&cliFilters.endDate, "end-date", "", "only entries on or before this date (YYYY/MM/DD)")
	importCmd.Flags().Int64Var(&cliFilters.minAmount, "min-amount", 0, "minimum amount")
	importCmd.Flags().Int64Var(&cliFilters.maxAmount, "max-amount", 0, "maximum amount")
	importCmd.Flags().StringVar(&cliFilters.merchant, "merchant", "", "substring match on merchant or description")

	processCmd.Flags().StringVar(&outputDirFlag, "output", "", "directory for generated CSVs (default: next to each input)")

	rootCmd.AddCommand(importCmd, serveCmd, processCmd, rulesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
