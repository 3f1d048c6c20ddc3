package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "projectledger/internal/delivery/http/helpers"
	"projectledger/internal/domain"
)

type contextKey string

const (
	claimsKey contextKey = "claims"
	tokenKey  contextKey = "token"
)

// SetClaims returns a context carrying the verified token claims. Used by auth middleware.
func SetClaims(ctx context.Context, claims *domain.TokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// SetUserID returns a context with the user ID and roles set.
func SetUserID(ctx context.Context, userID string, roles ...string) context.Context {
	return SetClaims(ctx, &domain.TokenClaims{UserID: userID, Roles: roles})
}

// ClaimsFromContext returns the verified token claims, if present.
func ClaimsFromContext(ctx context.Context) (*domain.TokenClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*domain.TokenClaims)
	return claims, ok && claims != nil
}

// UserIDFromContext returns the authenticated user ID from the context, if present.
func UserIDFromContext(ctx context.Context) (string, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok || claims.UserID == "" {
		return "", false
	}
	return claims.UserID, true
}

// RolesFromContext returns the authenticated user's role codes.
func RolesFromContext(ctx context.Context) []string {
	if claims, ok := ClaimsFromContext(ctx); ok {
		return claims.Roles
	}
	return nil
}

// SetToken returns a context carrying the raw bearer token.
func SetToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext returns the raw bearer token the request was authenticated with.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}

// RequireAuth returns a wrapper that validates the Bearer token and sets its claims in the request context.
// If the token is missing, invalid or revoked, it responds with 401 and does not call next.
// revoker may be nil, in which case revocation is not checked.
func RequireAuth(verifier domain.TokenVerifier, revoker domain.TokenRevoker, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			claims, err := verifier.Verify(token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			if revoker != nil {
				revoked, err := revoker.IsRevoked(r.Context(), token)
				if err != nil {
					logger.ErrorContext(r.Context(), "revocation check failed", "path", r.URL.Path, "err", err)
					h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "internal server error")
					return
				}
				if revoked {
					h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "token has been revoked")
					return
				}
			}
			ctx := SetToken(SetClaims(r.Context(), claims), token)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireRole returns a wrapper that lets the request through only when the
// authenticated user holds at least one of roles. It must run after RequireAuth.
func RequireRole(roles ...string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
				return
			}
			if !domain.HasAnyRole(claims.Roles, roles...) {
				h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "insufficient permissions")
				return
			}
			next(w, r)
		}
	}
}
