// Package interfaces defines the storage and service contracts for the
// treasuries service. Handlers and services accept these interfaces so
// tests can substitute in-memory fakes.
package interfaces

import (
	"context"
	"time"

	"treasuryd/internal/models"
)

// TreasuryStore reads the treasury holdings collections from the
// document store. All collections are maintained out-of-band.
type TreasuryStore interface {
	// ListCompanies returns all rows of the companies view.
	ListCompanies(ctx context.Context) ([]models.Holding, error)

	// ListETFs returns all documents of the ETF collection.
	ListETFs(ctx context.Context) ([]models.Holding, error)

	// ListPriceDocuments returns all price candidate documents for the
	// given asset code, in source order. Recency ordering is the price
	// resolver's concern, not the store's.
	ListPriceDocuments(ctx context.Context, asset string) ([]models.PriceDocument, error)
}

// IssueListOptions filters and paginates issue report listings.
type IssueListOptions struct {
	Status    string
	TableType string
	Since     *time.Time
	Page      int
	PerPage   int
}

// IssueStore persists user-submitted data correction reports.
type IssueStore interface {
	Create(ctx context.Context, issue *models.IssueReport) error
	Get(ctx context.Context, id string) (*models.IssueReport, error)
	List(ctx context.Context, opts IssueListOptions) ([]*models.IssueReport, int, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// StorageManager provides access to all document store areas.
type StorageManager interface {
	TreasuryStore() TreasuryStore
	IssueStore() IssueStore
	Close() error
}

// AssetPriceStore reads live asset prices and user portfolios from the
// relational store.
type AssetPriceStore interface {
	ListAssetPrices(ctx context.Context) ([]models.AssetPrice, error)
	ListPositions(ctx context.Context, userID string) ([]models.PortfolioPosition, error)
}

// LiveFeed delivers asset price change events. Run blocks until the
// context is cancelled, invoking handler for each event in arrival order.
type LiveFeed interface {
	Run(ctx context.Context, handler func(models.PriceEvent))
}
