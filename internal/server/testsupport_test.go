package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"treasuryd/internal/app"
	"treasuryd/internal/common"
	"treasuryd/internal/interfaces"
	"treasuryd/internal/models"
	"treasuryd/internal/services/assets"
	"treasuryd/internal/services/holdings"
)

// memIssueStore is an in-memory IssueStore mirroring the document
// store's defaulting behavior.
type memIssueStore struct {
	items map[string]*models.IssueReport
	order []string
}

func newMemIssueStore() *memIssueStore {
	return &memIssueStore{items: make(map[string]*models.IssueReport)}
}

func (s *memIssueStore) Create(ctx context.Context, issue *models.IssueReport) error {
	if issue.ID == "" {
		issue.ID = "iss_" + uuid.New().String()[:8]
	}
	if issue.Status == "" {
		issue.Status = models.IssueStatusPending
	}
	if issue.TableType == "" {
		issue.TableType = models.IssueTableUnknown
	}
	now := time.Now().UTC()
	issue.CreatedAt = now
	issue.UpdatedAt = now

	cp := *issue
	s.items[issue.ID] = &cp
	s.order = append(s.order, issue.ID)
	return nil
}

func (s *memIssueStore) Get(ctx context.Context, id string) (*models.IssueReport, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (s *memIssueStore) List(ctx context.Context, opts interfaces.IssueListOptions) ([]*models.IssueReport, int, error) {
	var out []*models.IssueReport
	for _, id := range s.order {
		item := s.items[id]
		if opts.Status != "" && item.Status != opts.Status {
			continue
		}
		if opts.TableType != "" && item.TableType != opts.TableType {
			continue
		}
		cp := *item
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (s *memIssueStore) UpdateStatus(ctx context.Context, id, status string) error {
	item, ok := s.items[id]
	if !ok {
		return fmt.Errorf("issue %s not found", id)
	}
	item.Status = status
	item.UpdatedAt = time.Now().UTC()
	return nil
}

// memStorageManager wires the in-memory stores behind the StorageManager
// interface.
type memStorageManager struct {
	treasury interfaces.TreasuryStore
	issues   *memIssueStore
}

func (m *memStorageManager) TreasuryStore() interfaces.TreasuryStore { return m.treasury }
func (m *memStorageManager) IssueStore() interfaces.IssueStore       { return m.issues }
func (m *memStorageManager) Close() error                            { return nil }

// staticTreasuryStore serves fixed collections.
type staticTreasuryStore struct {
	companies []models.Holding
	etfs      []models.Holding
	priceDocs []models.PriceDocument
}

func (s *staticTreasuryStore) ListCompanies(ctx context.Context) ([]models.Holding, error) {
	return s.companies, nil
}

func (s *staticTreasuryStore) ListETFs(ctx context.Context) ([]models.Holding, error) {
	return s.etfs, nil
}

func (s *staticTreasuryStore) ListPriceDocuments(ctx context.Context, asset string) ([]models.PriceDocument, error) {
	return s.priceDocs, nil
}

// staticAssetStore serves fixed prices and positions.
type staticAssetStore struct {
	prices    []models.AssetPrice
	positions []models.PortfolioPosition
}

func (s *staticAssetStore) ListAssetPrices(ctx context.Context) ([]models.AssetPrice, error) {
	return s.prices, nil
}

func (s *staticAssetStore) ListPositions(ctx context.Context, userID string) ([]models.PortfolioPosition, error) {
	var out []models.PortfolioPosition
	for _, p := range s.positions {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

// newTestServerWithStorage creates a server backed by in-memory stores
// with a small fixed dataset.
func newTestServerWithStorage(t *testing.T) *Server {
	t.Helper()

	logger := common.NewSilentLogger()
	config := common.NewDefaultConfig()
	config.Auth.JWTSecret = "test-secret"

	treasury := &staticTreasuryStore{
		companies: []models.Holding{{ID: "c1", Name: "MicroLitecoin", Ticker: "MLTC", LTCHoldings: 50000, ValueUSD: 4500000}},
		etfs:      []models.Holding{{ID: "e1", Name: "Litecoin Trust", Ticker: "LTCN", LTCHoldings: 120000, ValueUSD: 10800000}},
		priceDocs: []models.PriceDocument{{"ltc": 91.25, "currency": "USD", "updatedAt": "2025-05-01T00:00:00Z"}},
	}
	storage := &memStorageManager{treasury: treasury, issues: newMemIssueStore()}

	assetStore := &staticAssetStore{
		prices: []models.AssetPrice{
			{Name: "BTC", Price: 60000, Growth: 1.2},
			{Name: "LTC", Price: 91.25, Growth: -0.4},
		},
		positions: []models.PortfolioPosition{
			{UserID: "user-1", Asset: "LTC", Quantity: 10},
		},
	}

	a := &app.App{
		Config:          config,
		Logger:          logger,
		Storage:         storage,
		HoldingsService: holdings.NewService(treasury, nil, logger),
		AssetService:    assets.NewService(assetStore, logger),
		StartupTime:     time.Now(),
	}

	return NewServer(a)
}

// newTestServerWithoutStorage creates a server with no document or
// relational store, exercising the degraded paths.
func newTestServerWithoutStorage(t *testing.T) *Server {
	t.Helper()

	logger := common.NewSilentLogger()
	config := common.NewDefaultConfig()
	config.Auth.JWTSecret = "test-secret"

	a := &app.App{
		Config:          config,
		Logger:          logger,
		HoldingsService: holdings.NewService(nil, nil, logger),
		AssetService:    assets.NewService(nil, logger),
		StartupTime:     time.Now(),
	}

	return NewServer(a)
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewReader(data)
}

func asAdmin(req *http.Request) *http.Request {
	return asUser(req, "admin-1", "admin")
}

func asUser(req *http.Request, userID, role string) *http.Request {
	uc := &common.UserContext{UserID: userID, Role: role}
	return req.WithContext(common.WithUserContext(req.Context(), uc))
}

func doJSON(t *testing.T, srv *Server, req *http.Request) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var resp map[string]interface{}
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return rec, resp
}
