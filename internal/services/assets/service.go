// Package assets reads live asset prices and values user portfolios
// against them.
package assets

import (
	"context"
	"fmt"

	"treasuryd/internal/common"
	"treasuryd/internal/interfaces"
	"treasuryd/internal/models"
)

// Service implements interfaces.AssetService. A nil store means the
// relational store is unconfigured; listings degrade to empty.
type Service struct {
	store  interfaces.AssetPriceStore
	logger *common.Logger
}

// NewService creates an asset price service.
func NewService(store interfaces.AssetPriceStore, logger *common.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// ListPrices returns the current asset price rows, the seed list for a
// client's live merge cache.
func (s *Service) ListPrices(ctx context.Context) ([]models.AssetPrice, error) {
	if s.store == nil {
		return []models.AssetPrice{}, nil
	}
	prices, err := s.store.ListAssetPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list asset prices: %w", err)
	}
	if prices == nil {
		prices = []models.AssetPrice{}
	}
	return prices, nil
}

// PortfolioBalances values the user's positions at current prices.
// Positions without a live price value at zero.
func (s *Service) PortfolioBalances(ctx context.Context, userID string) ([]models.PortfolioBalance, error) {
	if s.store == nil {
		return []models.PortfolioBalance{}, nil
	}

	positions, err := s.store.ListPositions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}

	prices, err := s.store.ListAssetPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list asset prices: %w", err)
	}
	priceByName := make(map[string]float64, len(prices))
	for _, p := range prices {
		priceByName[p.Name] = p.Price
	}

	balances := make([]models.PortfolioBalance, 0, len(positions))
	for _, pos := range positions {
		price := priceByName[pos.Asset]
		balances = append(balances, models.PortfolioBalance{
			Asset:    pos.Asset,
			Quantity: pos.Quantity,
			Price:    price,
			Balance:  price * pos.Quantity,
		})
	}
	return balances, nil
}

// Compile-time check
var _ interfaces.AssetService = (*Service)(nil)
