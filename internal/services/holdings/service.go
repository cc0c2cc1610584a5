// Package holdings aggregates treasury holdings and the latest Litecoin
// price into one dashboard snapshot.
package holdings

import (
	"context"

	"treasuryd/internal/common"
	"treasuryd/internal/interfaces"
	"treasuryd/internal/models"
)

// litecoinAssetCode filters price candidate documents to the one asset
// this dashboard tracks.
const litecoinAssetCode = "LTC"

// Service implements interfaces.HoldingsService.
//
// A nil store means the document store was unconfigured or unreachable
// at startup; storeErr carries the startup failure in the latter case.
// Aggregate prefers returning an empty-but-valid snapshot with a
// diagnostic over failing the request: the dashboard must stay
// renderable through a backing store outage.
type Service struct {
	store    interfaces.TreasuryStore
	storeErr error
	logger   *common.Logger
}

// NewService creates a holdings aggregation service.
func NewService(store interfaces.TreasuryStore, storeErr error, logger *common.Logger) *Service {
	return &Service{store: store, storeErr: storeErr, logger: logger}
}

// Aggregate fetches companies, ETFs, and the latest price from their
// independent sources and assembles one snapshot. Each source fetch is
// independently fallible; a failed source contributes an empty value and
// the first failure populates the diagnostic payload. The returned error
// is non-nil only for failures unrelated to the backing store (the hard
// 500 path).
func (s *Service) Aggregate(ctx context.Context) (*models.DashboardSnapshot, error) {
	snap := &models.DashboardSnapshot{
		Companies: []models.Holding{},
		ETFs:      []models.Holding{},
	}

	if s.store == nil {
		if s.storeErr != nil {
			snap.Debug = connectionDebug(s.storeErr)
		} else {
			snap.Debug = &models.DebugInfo{
				Message: "Document store not configured",
				Hint:    "Set TREASURY_DOCUMENT_ADDRESS in the environment or the [document] config section",
			}
		}
		return snap, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	companies, err := s.store.ListCompanies(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to fetch treasury companies")
		s.recordFailure(snap, err)
	} else if companies != nil {
		snap.Companies = companies
	}

	etfs, err := s.store.ListETFs(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to fetch treasury ETFs")
		s.recordFailure(snap, err)
	} else if etfs != nil {
		snap.ETFs = etfs
	}

	docs, err := s.store.ListPriceDocuments(ctx, litecoinAssetCode)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to fetch price documents")
		s.recordFailure(snap, err)
	} else {
		// Attached as a sibling field; never joined into holding rows.
		snap.LTCPrice = ResolvePrice(docs)
	}

	return snap, nil
}

// recordFailure attaches a diagnostic for the first failed source.
func (s *Service) recordFailure(snap *models.DashboardSnapshot, err error) {
	if snap.Debug == nil {
		snap.Debug = connectionDebug(err)
	}
}

func connectionDebug(err error) *models.DebugInfo {
	d := Classify(err)
	return &models.DebugInfo{
		Message: "Document store connection failed",
		Hint:    d.Hint,
		Error:   err.Error(),
		Code:    string(d.Kind),
	}
}

// Compile-time check
var _ interfaces.HoldingsService = (*Service)(nil)
