package server

import (
	"net/http"

	"treasuryd/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Holdings dashboard
	mux.HandleFunc("/api/holdings", s.handleHoldings)
	mux.HandleFunc("/api/holdings/chart", s.handleHoldingsChart)

	// Issue reports
	mux.HandleFunc("/api/issues/", s.routeIssues)
	mux.HandleFunc("/api/issues", s.handleIssuesRoot)

	// Live asset prices
	mux.HandleFunc("/api/assets", s.handleAssets)
	mux.HandleFunc("/api/portfolio", s.handlePortfolio)
	mux.HandleFunc("/api/live", s.handleLive)
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}
