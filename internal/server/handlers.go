package server

import (
	"net/http"

	"treasuryd/internal/models"
	"treasuryd/internal/services/chart"
)

// handleHoldings handles GET /api/holdings.
//
// Storage failures do not produce error statuses here: the holdings
// service degrades to an empty snapshot with a _debug block so the
// dashboard always renders. Only request-level failures (cancelled
// context) surface as 500.
func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	snapshot, err := s.app.HoldingsService.Aggregate(r.Context())
	if err != nil {
		// Clients still expect the collection keys on the error body.
		WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":     "Failed to aggregate holdings",
			"details":   err.Error(),
			"companies": []models.Holding{},
			"etfs":      []models.Holding{},
		})
		return
	}

	WriteJSON(w, http.StatusOK, snapshot)
}

// handleHoldingsChart handles GET /api/holdings/chart, rendering the
// top holders as a PNG image.
func (s *Server) handleHoldingsChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	snapshot, err := s.app.HoldingsService.Aggregate(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to aggregate holdings: "+err.Error())
		return
	}

	png, err := chart.RenderTopHoldersChart(snapshot.Companies, snapshot.ETFs)
	if err != nil {
		WriteError(w, http.StatusServiceUnavailable, "Chart unavailable: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
