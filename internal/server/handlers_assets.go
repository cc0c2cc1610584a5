package server

import (
	"net/http"

	"treasuryd/internal/common"
)

// handleAssets handles GET /api/assets, returning the current asset
// price rows. Clients seed their live merge cache from this list.
func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	prices, err := s.app.AssetService.ListPrices(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to list asset prices: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, prices)
}

// handlePortfolio handles GET /api/portfolio, valuing the authenticated
// user's positions at current prices.
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	uc := common.UserContextFrom(r.Context())
	if uc == nil || uc.UserID == "" {
		WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	balances, err := s.app.AssetService.PortfolioBalances(r.Context(), uc.UserID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to value portfolio: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, balances)
}
