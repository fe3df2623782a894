package middleware

import (
	"context"
	"net/http"
	"strings"
)

// TenantHeader carries the tenant identifier on every API request.
const TenantHeader = "X-Tenant-ID"

type contextKey string

const tenantContextKey contextKey = "tenant_id"

// Tenant extracts the tenant identifier from the request header and places
// it on the context. Requests without one are rejected before reaching any
// handler; there is no ambient default tenant.
func Tenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID := strings.TrimSpace(r.Header.Get(TenantHeader))
		if tenantID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"missing tenant","message":"` + TenantHeader + ` header is required"}`))

			return
		}

		ctx := context.WithValue(r.Context(), tenantContextKey, tenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TenantFromContext returns the tenant identifier set by the Tenant
// middleware. The second return is false when the middleware did not run.
func TenantFromContext(ctx context.Context) (string, bool) {
	tenantID, ok := ctx.Value(tenantContextKey).(string)
	return tenantID, ok
}

// WithTenant is a test helper to place a tenant on a context directly.
func WithTenant(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantContextKey, tenantID)
}
