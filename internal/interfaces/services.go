package interfaces

import (
	"context"

	"treasuryd/internal/models"
)

// HoldingsService assembles the dashboard snapshot from the backing
// stores. Aggregate degrades to an empty snapshot with a diagnostic
// payload when the document store is unavailable; a non-nil error means
// an unexpected internal failure and produces a hard 500.
type HoldingsService interface {
	Aggregate(ctx context.Context) (*models.DashboardSnapshot, error)
}

// AssetService reads live asset prices and values user portfolios.
type AssetService interface {
	ListPrices(ctx context.Context) ([]models.AssetPrice, error)
	PortfolioBalances(ctx context.Context, userID string) ([]models.PortfolioBalance, error)
}
