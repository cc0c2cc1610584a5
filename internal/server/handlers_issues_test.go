package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleIssueSubmit_Success(t *testing.T) {
	srv := newTestServerWithStorage(t)

	body := jsonBody(t, map[string]interface{}{
		"issue":     "bad data on MLTC",
		"tableType": "companies",
		"userInfo":  map[string]string{"email": "x@example.com"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/issues", body)
	rec := httptest.NewRecorder()

	srv.handleIssuesRoot(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp["success"].(bool))
	assert.NotEmpty(t, resp["message"])
	assert.Contains(t, resp["id"].(string), "iss_")
}

func TestHandleIssueSubmit_WhitespaceOnly(t *testing.T) {
	srv := newTestServerWithStorage(t)

	req := httptest.NewRequest(http.MethodPost, "/api/issues", strings.NewReader(`{"issue":"   "}`))
	rec := httptest.NewRecorder()

	srv.handleIssuesRoot(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleIssueSubmit_InvalidTableType(t *testing.T) {
	srv := newTestServerWithStorage(t)

	body := jsonBody(t, map[string]interface{}{"issue": "x", "tableType": "users"})
	req := httptest.NewRequest(http.MethodPost, "/api/issues", body)
	rec := httptest.NewRecorder()

	srv.handleIssuesRoot(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleIssueSubmit_StoreUnavailable(t *testing.T) {
	srv := newTestServerWithoutStorage(t)

	body := jsonBody(t, map[string]interface{}{"issue": "bad data"})
	req := httptest.NewRequest(http.MethodPost, "/api/issues", body)
	rec := httptest.NewRecorder()

	srv.handleIssuesRoot(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.Error, "unavailable")
}

func TestHandleIssueSubmit_DefaultsApplied(t *testing.T) {
	srv := newTestServerWithStorage(t)

	body := jsonBody(t, map[string]interface{}{"issue": "no table type given"})
	req := httptest.NewRequest(http.MethodPost, "/api/issues", body)
	rec := httptest.NewRecorder()

	srv.handleIssuesRoot(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	id := resp["id"].(string)

	getReq := asAdmin(httptest.NewRequest(http.MethodGet, "/api/issues/"+id, nil))
	getRec := httptest.NewRecorder()
	srv.routeIssues(getRec, getReq)

	require.Equal(t, http.StatusOK, getRec.Code)
	var report map[string]interface{}
	require.NoError(t, json.NewDecoder(getRec.Body).Decode(&report))
	assert.Equal(t, "unknown", report["tableType"])
	assert.Equal(t, "pending", report["status"])
}

func TestHandleIssueList_RequiresAdmin(t *testing.T) {
	srv := newTestServerWithStorage(t)

	req := httptest.NewRequest(http.MethodGet, "/api/issues", nil)
	rec := httptest.NewRecorder()
	srv.handleIssuesRoot(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Non-admin identity is forbidden.
	userReq := asUser(httptest.NewRequest(http.MethodGet, "/api/issues", nil), "user-1", "user")
	rec = httptest.NewRecorder()
	srv.handleIssuesRoot(rec, userReq)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandleIssueList_FiltersByStatus(t *testing.T) {
	srv := newTestServerWithStorage(t)

	for _, text := range []string{"first", "second"} {
		body := jsonBody(t, map[string]interface{}{"issue": text})
		rec := httptest.NewRecorder()
		srv.handleIssuesRoot(rec, httptest.NewRequest(http.MethodPost, "/api/issues", body))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	req := asAdmin(httptest.NewRequest(http.MethodGet, "/api/issues?status=pending", nil))
	rec := httptest.NewRecorder()
	srv.handleIssuesRoot(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, float64(2), resp["total"])
	assert.Equal(t, float64(1), resp["page"])
}

func TestHandleIssueUpdate_Status(t *testing.T) {
	srv := newTestServerWithStorage(t)

	body := jsonBody(t, map[string]interface{}{"issue": "fix me"})
	rec := httptest.NewRecorder()
	srv.handleIssuesRoot(rec, httptest.NewRequest(http.MethodPost, "/api/issues", body))
	require.Equal(t, http.StatusOK, rec.Code)

	var created map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	id := created["id"].(string)

	patch := asAdmin(httptest.NewRequest(http.MethodPatch, "/api/issues/"+id,
		strings.NewReader(`{"status":"resolved"}`)))
	patchRec := httptest.NewRecorder()
	srv.routeIssues(patchRec, patch)

	require.Equal(t, http.StatusOK, patchRec.Code, patchRec.Body.String())
	var updated map[string]interface{}
	require.NoError(t, json.NewDecoder(patchRec.Body).Decode(&updated))
	assert.Equal(t, "resolved", updated["status"])
}

func TestHandleIssueUpdate_InvalidStatus(t *testing.T) {
	srv := newTestServerWithStorage(t)

	patch := asAdmin(httptest.NewRequest(http.MethodPatch, "/api/issues/iss_x",
		strings.NewReader(`{"status":"closed"}`)))
	rec := httptest.NewRecorder()
	srv.routeIssues(rec, patch)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleIssueGet_NotFound(t *testing.T) {
	srv := newTestServerWithStorage(t)

	req := asAdmin(httptest.NewRequest(http.MethodGet, "/api/issues/iss_missing", nil))
	rec := httptest.NewRecorder()
	srv.routeIssues(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
