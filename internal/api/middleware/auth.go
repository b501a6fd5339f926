package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/Bearmun/vossenjacht/internal/common"
	"github.com/Bearmun/vossenjacht/internal/common/security"
	"github.com/Bearmun/vossenjacht/internal/domain/authz"
	"github.com/Bearmun/vossenjacht/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserIDCtxKey   contextKey = "userID"
	UserRoleCtxKey contextKey = "userRole"
)

// Identify resolves the actor for the request when a valid, non-revoked
// token is present and stays anonymous otherwise. It never rejects; routes
// that need an identity stack RequireAuth on top.
func Identify(tokens security.TokenRevoker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := security.GetUserIDFromClaims(claims)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			userRole, err := security.GetUserRoleFromClaims(claims)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			if tokens != nil {
				if tokenID, err := security.GetTokenIDFromClaims(claims); err == nil {
					revoked, err := tokens.IsRevoked(r.Context(), tokenID)
					if err != nil {
						log.Printf("WARN: token revocation check failed: %v", err)
					}
					if revoked {
						next.ServeHTTP(w, r) // treat as anonymous
						return
					}
				}
			}

			ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
			ctx = context.WithValue(ctx, UserRoleCtxKey, userRole)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests. The 401 body carries the requested
// path so the client can resume it after logging in.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserIDFromContext(r.Context()); !ok {
			common.RespondWithJSON(w, http.StatusUnauthorized, common.ErrorResponse{
				Error: "Authentication required",
				Next:  r.URL.RequestURI(),
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(UserRoleCtxKey).(string)
		if !ok || role != model.RoleAdmin {
			common.RespondWithError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Helper to get user ID from context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}

// Helper to get user role from context
func GetUserRoleFromContext(ctx context.Context) (string, bool) {
	userRole, ok := ctx.Value(UserRoleCtxKey).(string)
	return userRole, ok
}

// ActorFromContext builds the actor the policy layer consumes. The zero
// actor means unauthenticated.
func ActorFromContext(ctx context.Context) authz.Actor {
	userID, _ := GetUserIDFromContext(ctx)
	userRole, _ := GetUserRoleFromContext(ctx)
	return authz.Actor{ID: userID, Role: userRole}
}
