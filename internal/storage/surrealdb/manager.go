// Package surrealdb implements the document store backing the treasuries
// dashboard: holdings collections, price candidate documents, and user
// issue reports.
package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"treasuryd/internal/common"
	"treasuryd/internal/interfaces"
)

// Manager implements interfaces.StorageManager using SurrealDB.
// It is constructed once at process start, injected into request
// handlers, and closed on shutdown.
type Manager struct {
	db     *surrealdb.DB
	logger *common.Logger

	treasuryStore *TreasuryStore
	issueStore    *IssueStore
}

// NewManager connects to SurrealDB and initializes the stores.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ctx := context.Background()

	db, err := surrealdb.New(config.Document.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": config.Document.Username,
		"pass": config.Document.Password,
	}); err != nil {
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}

	if err := db.Use(ctx, config.Document.Namespace, config.Document.Database); err != nil {
		return nil, fmt.Errorf("failed to select namespace/database: %w", err)
	}

	// Define tables to ensure they exist (SurrealDB v3 errors on querying non-existent tables)
	tables := []string{"treasury_company", "treasury_etf", "price_document", "user_issue"}
	for _, table := range tables {
		sql := fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", table)
		if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
			return nil, fmt.Errorf("failed to define table %s: %w", table, err)
		}
	}

	m := &Manager{
		db:     db,
		logger: logger,
	}

	m.treasuryStore = NewTreasuryStore(db, logger)
	m.issueStore = NewIssueStore(db, logger)

	logger.Info().
		Str("address", config.Document.Address).
		Str("namespace", config.Document.Namespace).
		Str("database", config.Document.Database).
		Msg("SurrealDB storage manager initialized")

	return m, nil
}

func (m *Manager) TreasuryStore() interfaces.TreasuryStore {
	return m.treasuryStore
}

func (m *Manager) IssueStore() interfaces.IssueStore {
	return m.issueStore
}

func (m *Manager) Close() error {
	m.db.Close(context.Background())
	return nil
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
