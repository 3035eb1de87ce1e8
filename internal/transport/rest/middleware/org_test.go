package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequireOrg(t *testing.T) {
	var seenOrg string
	handler := RequireOrg(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenOrg = GetOrgID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("passes org id through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/orgs/org-1/assessments", nil)
		req.Header.Set("X-Org-ID", "org-1")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "org-1", seenOrg)
	})

	t.Run("rejects missing header", func(t *testing.T) {
		seenOrg = ""
		req := httptest.NewRequest(http.MethodGet, "/v1/orgs/org-1/assessments", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "X-Org-ID")
		assert.Empty(t, seenOrg)
	})
}

func TestGetOrgID_MissingValue(t *testing.T) {
	assert.Empty(t, GetOrgID(context.Background()))
}
