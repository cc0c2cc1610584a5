package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"treasuryd/internal/common"
	"treasuryd/internal/interfaces"
	"treasuryd/internal/models"
)

// holdingSelectFields lists the fields selected from holdings tables,
// aliasing store field names onto the Holding JSON shape.
const holdingSelectFields = `holding_id AS id, name, ticker, ltc_holdings AS ltcHoldings,
	value_usd AS valueUSD, last_updated AS lastUpdated, percentage_of_supply AS percentageOfSupply`

// TreasuryStore implements interfaces.TreasuryStore using SurrealDB.
// All three collections are written out-of-band; this store only reads.
type TreasuryStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewTreasuryStore creates a new TreasuryStore.
func NewTreasuryStore(db *surrealdb.DB, logger *common.Logger) *TreasuryStore {
	return &TreasuryStore{db: db, logger: logger}
}

func (s *TreasuryStore) ListCompanies(ctx context.Context) ([]models.Holding, error) {
	sql := "SELECT " + holdingSelectFields + " FROM treasury_company ORDER BY name ASC"

	results, err := surrealdb.Query[[]models.Holding](ctx, s.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list treasury companies: %w", err)
	}
	if results == nil || len(*results) == 0 {
		return nil, nil
	}
	return (*results)[0].Result, nil
}

func (s *TreasuryStore) ListETFs(ctx context.Context) ([]models.Holding, error) {
	sql := "SELECT " + holdingSelectFields + " FROM treasury_etf ORDER BY name ASC"

	results, err := surrealdb.Query[[]models.Holding](ctx, s.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list treasury ETFs: %w", err)
	}
	if results == nil || len(*results) == 0 {
		return nil, nil
	}
	return (*results)[0].Result, nil
}

func (s *TreasuryStore) ListPriceDocuments(ctx context.Context, asset string) ([]models.PriceDocument, error) {
	sql := "SELECT * FROM price_document WHERE asset = $asset"
	vars := map[string]any{"asset": asset}

	results, err := surrealdb.Query[[]models.PriceDocument](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list price documents: %w", err)
	}
	if results == nil || len(*results) == 0 {
		return nil, nil
	}
	return (*results)[0].Result, nil
}

// Compile-time check
var _ interfaces.TreasuryStore = (*TreasuryStore)(nil)
