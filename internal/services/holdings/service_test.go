package holdings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treasuryd/internal/common"
	"treasuryd/internal/models"
)

// fakeTreasuryStore lets each source fail independently.
type fakeTreasuryStore struct {
	companies    []models.Holding
	companiesErr error
	etfs         []models.Holding
	etfsErr      error
	priceDocs    []models.PriceDocument
	priceErr     error
}

func (f *fakeTreasuryStore) ListCompanies(ctx context.Context) ([]models.Holding, error) {
	return f.companies, f.companiesErr
}

func (f *fakeTreasuryStore) ListETFs(ctx context.Context) ([]models.Holding, error) {
	return f.etfs, f.etfsErr
}

func (f *fakeTreasuryStore) ListPriceDocuments(ctx context.Context, asset string) ([]models.PriceDocument, error) {
	return f.priceDocs, f.priceErr
}

func TestAggregate_NilStoreDegrades(t *testing.T) {
	svc := NewService(nil, nil, common.NewSilentLogger())

	snap, err := svc.Aggregate(context.Background())
	require.NoError(t, err)

	assert.Empty(t, snap.Companies)
	assert.Empty(t, snap.ETFs)
	assert.Nil(t, snap.LTCPrice)
	require.NotNil(t, snap.Debug)
	assert.Equal(t, "Document store not configured", snap.Debug.Message)
	assert.Contains(t, snap.Debug.Hint, "TREASURY_DOCUMENT_ADDRESS")
}

func TestAggregate_ConnectFailureDegrades(t *testing.T) {
	connectErr := errors.New("getaddrinfo ENOTFOUND cluster0.example.net")
	svc := NewService(nil, connectErr, common.NewSilentLogger())

	snap, err := svc.Aggregate(context.Background())
	require.NoError(t, err)

	assert.Empty(t, snap.Companies)
	assert.Empty(t, snap.ETFs)
	require.NotNil(t, snap.Debug)
	assert.Equal(t, "Document store connection failed", snap.Debug.Message)
	assert.Contains(t, snap.Debug.Hint, "hostname")
	assert.Equal(t, string(DiagnosisDNSFailure), snap.Debug.Code)
	assert.Equal(t, connectErr.Error(), snap.Debug.Error)
}

func TestAggregate_FullSnapshot(t *testing.T) {
	store := &fakeTreasuryStore{
		companies: []models.Holding{{ID: "c1", Name: "MicroLitecoin", Ticker: "MLTC", LTCHoldings: 50000}},
		etfs:      []models.Holding{{ID: "e1", Name: "Litecoin Trust", Ticker: "LTCN", LTCHoldings: 120000}},
		priceDocs: []models.PriceDocument{{"ltc": 91.25, "currency": "USD", "updatedAt": "2025-05-01T00:00:00Z"}},
	}
	svc := NewService(store, nil, common.NewSilentLogger())

	snap, err := svc.Aggregate(context.Background())
	require.NoError(t, err)

	assert.Len(t, snap.Companies, 1)
	assert.Len(t, snap.ETFs, 1)
	assert.Nil(t, snap.Debug)
	require.NotNil(t, snap.LTCPrice)
	assert.Equal(t, 91.25, *snap.LTCPrice.Value)
}

func TestAggregate_PartialFailureKeepsHealthySources(t *testing.T) {
	store := &fakeTreasuryStore{
		companies: []models.Holding{{ID: "c1", Name: "MicroLitecoin"}},
		etfsErr:   errors.New("authentication failed"),
		priceDocs: []models.PriceDocument{{"ltc": 91.25}},
	}
	svc := NewService(store, nil, common.NewSilentLogger())

	snap, err := svc.Aggregate(context.Background())
	require.NoError(t, err)

	assert.Len(t, snap.Companies, 1)
	assert.Empty(t, snap.ETFs)
	require.NotNil(t, snap.LTCPrice)
	require.NotNil(t, snap.Debug)
	assert.Contains(t, snap.Debug.Hint, "username and password")
}

func TestAggregate_FirstFailureWinsDebug(t *testing.T) {
	store := &fakeTreasuryStore{
		companiesErr: errors.New("authentication failed"),
		etfsErr:      errors.New("operation timed out"),
	}
	svc := NewService(store, nil, common.NewSilentLogger())

	snap, err := svc.Aggregate(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap.Debug)
	assert.Equal(t, string(DiagnosisAuthFailure), snap.Debug.Code)
}

func TestAggregate_NoPriceIsNotAnError(t *testing.T) {
	store := &fakeTreasuryStore{
		companies: []models.Holding{{ID: "c1"}},
		priceDocs: []models.PriceDocument{{"note": "nothing numeric"}},
	}
	svc := NewService(store, nil, common.NewSilentLogger())

	snap, err := svc.Aggregate(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap.LTCPrice)
	assert.Nil(t, snap.Debug)
}

func TestAggregate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewService(&fakeTreasuryStore{}, nil, common.NewSilentLogger())
	snap, err := svc.Aggregate(ctx)
	assert.Nil(t, snap)
	assert.ErrorIs(t, err, context.Canceled)
}
