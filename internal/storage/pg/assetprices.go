package pg

import (
	"context"
	"fmt"

	"treasuryd/internal/interfaces"
	"treasuryd/internal/models"
)

// AssetPriceStore implements interfaces.AssetPriceStore over Postgres.
type AssetPriceStore struct {
	db *DB
}

// NewAssetPriceStore creates a new AssetPriceStore.
func NewAssetPriceStore(db *DB) *AssetPriceStore {
	return &AssetPriceStore{db: db}
}

func (s *AssetPriceStore) ListAssetPrices(ctx context.Context) ([]models.AssetPrice, error) {
	const q = `SELECT name, price::float8, growth::float8 FROM asset_price ORDER BY name`

	rows, err := s.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset prices: %w", err)
	}
	defer rows.Close()

	var prices []models.AssetPrice
	for rows.Next() {
		var p models.AssetPrice
		if err := rows.Scan(&p.Name, &p.Price, &p.Growth); err != nil {
			return nil, fmt.Errorf("failed to scan asset price: %w", err)
		}
		prices = append(prices, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read asset prices: %w", err)
	}
	return prices, nil
}

func (s *AssetPriceStore) ListPositions(ctx context.Context, userID string) ([]models.PortfolioPosition, error) {
	const q = `SELECT user_id, asset, quantity::float8 FROM portfolio WHERE user_id = $1 ORDER BY asset`

	rows, err := s.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio: %w", err)
	}
	defer rows.Close()

	var positions []models.PortfolioPosition
	for rows.Next() {
		var p models.PortfolioPosition
		if err := rows.Scan(&p.UserID, &p.Asset, &p.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio position: %w", err)
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read portfolio: %w", err)
	}
	return positions, nil
}

// Compile-time check
var _ interfaces.AssetPriceStore = (*AssetPriceStore)(nil)
