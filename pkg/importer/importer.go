// Package importer wires the ingestion pipeline together: sniff and parse
// raw bytes, classify the records, fingerprint the results and hand them to
// the storage collaborator as an insert-if-absent batch. It is decoupled
// from CLI / HTTP details so both layers can reuse it.
package importer

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/danwoo/gagyebu/pkg/classify"
	"github.com/danwoo/gagyebu/pkg/models"
	"github.com/danwoo/gagyebu/pkg/parser"
	"github.com/danwoo/gagyebu/pkg/rules"
)

// Store is the persistence boundary. Uniqueness and transaction guarantees
// belong to the implementation behind it.
type Store interface {
	InsertIfAbsent(entries []*models.LedgerEntry) (int, error)
	UpdateByID(entry *models.LedgerEntry) error
	ListAll() ([]*models.LedgerEntry, error)
}

// Result reports one import call. Duplicates counts records dropped by the
// fingerprint pre-filter, within the batch or against existing entries.
type Result struct {
	Parsed     int
	Inserted   int
	Duplicates int
	Entries    []*models.LedgerEntry
}

type Importer struct {
	parser        *parser.Parser
	engine        *classify.Engine
	store         Store
	rules         rules.Store
	ownedAccounts []models.OwnedAccount
	ownerAliases  []string
	logger        *log.Logger
}

func New(p *parser.Parser, e *classify.Engine, s Store, r rules.Store, logger *log.Logger) *Importer {
	return &Importer{
		parser: p,
		engine: e,
		store:  s,
		rules:  r,
		logger: logger,
	}
}

// SetIdentity installs the owned accounts and owner aliases used for
// internal-transfer detection.
func (i *Importer) SetIdentity(accounts []models.OwnedAccount, aliases []string) {
	i.ownedAccounts = accounts
	i.ownerAliases = aliases
}

// ImportFile runs the whole pipeline for one statement file.
func (i *Importer) ImportFile(data []byte, filename, mediaType string) (*Result, error) {
	records, err := i.parser.ProcessBytes(data, filename, mediaType)
	if err != nil {
		return nil, err
	}
	return i.importRecords(records)
}

// ImportNotification ingests a push-notification pair. A nil entry with a
// nil error means the notification did not look like a transaction or was a
// duplicate; that is not an error condition.
func (i *Importer) ImportNotification(title, text string) (*models.LedgerEntry, error) {
	if !i.parser.LooksLikeTransaction(title, text) {
		i.logger.Debug("notification rejected by transaction gate", "title", title)
		return nil, nil
	}
	rec := i.parser.ParseNotification(title, text)
	if rec == nil {
		return nil, nil
	}

	result, err := i.importRecords([]*models.ParsedRecord{rec})
	if err != nil {
		return nil, err
	}
	if result.Inserted == 0 {
		return nil, nil
	}
	return result.Entries[0], nil
}

func (i *Importer) importRecords(records []*models.ParsedRecord) (*Result, error) {
	existing, err := i.store.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load existing entries: %w", err)
	}

	ctx := &classify.Context{
		Existing:      existing,
		OwnedAccounts: i.ownedAccounts,
		OwnerAliases:  i.ownerAliases,
		Rules:         i.rules.Enabled(),
	}
	entries := i.engine.Classify(records, ctx)

	seen := make(map[string]bool, len(existing))
	for _, e := range existing {
		seen[e.Fingerprint()] = true
	}

	accepted := make([]*models.LedgerEntry, 0, len(entries))
	for _, entry := range entries {
		fp := entry.Fingerprint()
		if seen[fp] {
			i.logger.Debug("duplicate record skipped", "fingerprint", fp)
			continue
		}
		seen[fp] = true
		accepted = append(accepted, entry)
	}

	inserted, err := i.store.InsertIfAbsent(accepted)
	if err != nil {
		return nil, fmt.Errorf("failed to persist entries: %w", err)
	}

	i.logger.Info("import finished",
		"parsed", len(records), "inserted", inserted, "duplicates", len(entries)-len(accepted))
	return &Result{
		Parsed:     len(records),
		Inserted:   inserted,
		Duplicates: len(entries) - len(accepted),
		Entries:    accepted,
	}, nil
}

// ReapplyRules re-runs the rule layer over every stored entry, persisting
// the ones a rule changed. Used after rule edits.
func (i *Importer) ReapplyRules() (int, error) {
	entries, err := i.store.ListAll()
	if err != nil {
		return 0, err
	}
	active := i.rules.Enabled()

	updated := 0
	for _, entry := range entries {
		if !i.engine.ApplyRuleIfMatched(entry, active) {
			continue
		}
		if err := i.store.UpdateByID(entry); err != nil {
			return updated, fmt.Errorf("failed to update entry %s: %w", entry.ID, err)
		}
		updated++
	}
	return updated, nil
}
