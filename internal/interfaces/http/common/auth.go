package common

import (
	"context"
	"net/http"
	"strings"

	admindomain "github.com/alcymedia/casting-caly/api/internal/admin/domain"
)

type contextKey string

const authorizationContextKey contextKey = "adminAuthorization"

// ContextWithAuthorization stores the admin guard result into context.
func ContextWithAuthorization(ctx context.Context, auth admindomain.Authorization) context.Context {
	return context.WithValue(ctx, authorizationContextKey, auth)
}

// AuthorizationFromContext extracts the admin guard result from context.
func AuthorizationFromContext(ctx context.Context) (admindomain.Authorization, bool) {
	auth, ok := ctx.Value(authorizationContextKey).(admindomain.Authorization)
	return auth, ok
}

// BearerToken returns the token of an "Authorization: Bearer <token>" header, or "".
func BearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
