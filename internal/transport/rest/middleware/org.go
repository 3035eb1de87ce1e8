package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const OrgIDKey contextKey = "orgId"

// RequireOrg scopes requests to an organization via the X-Org-ID header set
// by the upstream gateway. Session handling lives outside this service.
func RequireOrg(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		orgID := r.Header.Get("X-Org-ID")
		if orgID == "" {
			http.Error(w, `{"error":"missing X-Org-ID header"}`, http.StatusBadRequest)
			return
		}
		ctx := context.WithValue(r.Context(), OrgIDKey, orgID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetOrgID extracts the organization id from the request context.
func GetOrgID(ctx context.Context) string {
	if orgID, ok := ctx.Value(OrgIDKey).(string); ok {
		return orgID
	}
	return ""
}
