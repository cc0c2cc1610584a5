package server

import (
	"encoding/json"
	"math"
	"net/http"
	"strings"
	"time"

	"treasuryd/internal/common"
	"treasuryd/internal/interfaces"
	"treasuryd/internal/models"
)

// handleIssuesRoot dispatches GET /api/issues (list, admin) and POST /api/issues (submit).
func (s *Server) handleIssuesRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleIssueList(w, r)
	case http.MethodPost:
		s.handleIssueSubmit(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// routeIssues dispatches /api/issues/{id} to the appropriate handler.
func (s *Server) routeIssues(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/issues/")
	if id == "" {
		s.handleIssuesRoot(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleIssueGet(w, r, id)
	case http.MethodPatch:
		s.handleIssueUpdate(w, r, id)
	default:
		w.Header().Set("Allow", "GET, PATCH")
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleIssueSubmit handles POST /api/issues.
func (s *Server) handleIssueSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.submitLimiter.Allow(r.RemoteAddr) {
		WriteError(w, http.StatusTooManyRequests, "Too many issue reports, slow down")
		return
	}

	var body struct {
		Issue     string      `json:"issue"`
		TableType string      `json:"tableType"`
		UserInfo  interface{} `json:"userInfo"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	issue := strings.TrimSpace(body.Issue)
	if issue == "" {
		WriteError(w, http.StatusBadRequest, "issue is required")
		return
	}

	tableType := body.TableType
	if tableType != "" && !models.ValidIssueTableTypes[tableType] {
		WriteError(w, http.StatusBadRequest, "invalid tableType: must be one of companies, etfs, unknown")
		return
	}

	store := s.issueStore()
	if store == nil {
		WriteError(w, http.StatusInternalServerError, "Issue reporting is unavailable: document store not connected")
		return
	}

	report := &models.IssueReport{
		Issue:     issue,
		TableType: tableType,
	}
	if body.UserInfo != nil {
		if raw, err := json.Marshal(body.UserInfo); err == nil {
			report.UserInfo = raw
		}
	}

	if err := store.Create(r.Context(), report); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to store issue report: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Issue report submitted successfully",
		"id":      report.ID,
	})
}

// handleIssueList handles GET /api/issues (admin only).
func (s *Server) handleIssueList(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}

	store := s.issueStore()
	if store == nil {
		WriteError(w, http.StatusInternalServerError, "Issue reporting is unavailable: document store not connected")
		return
	}

	q := r.URL.Query()
	opts := interfaces.IssueListOptions{
		Status:    q.Get("status"),
		TableType: q.Get("tableType"),
	}

	if since := q.Get("since"); since != "" {
		if t, err := time.Parse(time.RFC3339, since); err == nil {
			opts.Since = &t
		}
	}

	opts.Page = 1
	if p := q.Get("page"); p != "" {
		if v, err := parseInt(p); err == nil && v > 0 {
			opts.Page = v
		}
	}
	opts.PerPage = 20
	if pp := q.Get("per_page"); pp != "" {
		if v, err := parseInt(pp); err == nil && v > 0 && v <= 100 {
			opts.PerPage = v
		}
	}

	items, total, err := store.List(r.Context(), opts)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to list issues: "+err.Error())
		return
	}

	pages := int(math.Ceil(float64(total) / float64(opts.PerPage)))

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items":    items,
		"total":    total,
		"page":     opts.Page,
		"per_page": opts.PerPage,
		"pages":    pages,
	})
}

// handleIssueGet handles GET /api/issues/{id} (admin only).
func (s *Server) handleIssueGet(w http.ResponseWriter, r *http.Request, id string) {
	if !s.requireAdmin(w, r) {
		return
	}

	store := s.issueStore()
	if store == nil {
		WriteError(w, http.StatusInternalServerError, "Issue reporting is unavailable: document store not connected")
		return
	}

	report, err := store.Get(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to get issue: "+err.Error())
		return
	}
	if report == nil {
		WriteError(w, http.StatusNotFound, "Issue not found")
		return
	}

	WriteJSON(w, http.StatusOK, report)
}

// handleIssueUpdate handles PATCH /api/issues/{id} (admin only).
func (s *Server) handleIssueUpdate(w http.ResponseWriter, r *http.Request, id string) {
	if !s.requireAdmin(w, r) {
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	if !models.ValidIssueStatuses[body.Status] {
		WriteError(w, http.StatusBadRequest, "invalid status: must be one of pending, reviewed, resolved")
		return
	}

	store := s.issueStore()
	if store == nil {
		WriteError(w, http.StatusInternalServerError, "Issue reporting is unavailable: document store not connected")
		return
	}

	existing, err := store.Get(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to get issue: "+err.Error())
		return
	}
	if existing == nil {
		WriteError(w, http.StatusNotFound, "Issue not found")
		return
	}

	if err := store.UpdateStatus(r.Context(), id, body.Status); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to update issue: "+err.Error())
		return
	}

	updated, err := store.Get(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to get updated issue: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, updated)
}

// issueStore returns the issue store, or nil when the document store
// is unconfigured or failed to connect.
func (s *Server) issueStore() interfaces.IssueStore {
	if s.app.Storage == nil {
		return nil
	}
	return s.app.Storage.IssueStore()
}

// requireAdmin checks that the request carries an admin identity.
// Returns false after writing the error response if not.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	uc := common.UserContextFrom(r.Context())
	if uc == nil {
		WriteError(w, http.StatusUnauthorized, "Authentication required")
		return false
	}
	if !uc.IsAdmin() {
		WriteError(w, http.StatusForbidden, "Admin access required")
		return false
	}
	return true
}
