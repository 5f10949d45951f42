package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/vastra/pkg/apperr"
	jwtauth "github.com/shashiranjanraj/vastra/pkg/auth"
	"github.com/shashiranjanraj/vastra/pkg/response"
)

// PrincipalResolver turns validated token claims into a live principal.
// Implemented by services.AuthService; an interface here keeps the
// middleware free of a dependency on the service layer.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, claims *jwtauth.Claims) (*Principal, error)
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// Authenticate validates the bearer token and loads the principal.
// Requests without a valid token get 401 before the handler runs.
func Authenticate(resolver PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				response.Error(w, http.StatusUnauthorized, "Not authorized, no token")
				return
			}

			claims, err := jwtauth.ValidateToken(token)
			if err != nil {
				response.Error(w, http.StatusUnauthorized, "Not authorized, token failed")
				return
			}

			p, rerr := resolver.ResolvePrincipal(r.Context(), claims)
			if rerr != nil {
				response.Error(w, apperr.Status(rerr), apperr.Message(rerr))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// OptionalAuthenticate loads the principal when a valid token is
// present and continues anonymously otherwise. Used on routes that
// serve both guests and logged-in shoppers, like checkout.
func OptionalAuthenticate(resolver PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := bearerToken(r); token != "" {
				if claims, err := jwtauth.ValidateToken(token); err == nil {
					if p, rerr := resolver.ResolvePrincipal(r.Context(), claims); rerr == nil {
						r = r.WithContext(WithPrincipal(r.Context(), p))
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin rejects principals that are not back-office accounts.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := PrincipalFrom(r.Context())
		if p == nil || !p.IsAdmin() {
			response.Error(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePermission gates a route group on one permission flag.
// Super admins and legacy admins always pass.
func RequirePermission(perm string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := PrincipalFrom(r.Context())
			if p == nil || !p.Can(perm) {
				response.Error(w, http.StatusForbidden, "You do not have permission to perform this action")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSuperAdmin gates tenant-registry routes.
func RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := PrincipalFrom(r.Context())
		if p == nil || !p.IsSuperAdmin() {
			response.Error(w, http.StatusForbidden, "Super admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type ctxKey struct{}

// WithPrincipal attaches the principal to a request context.
func WithPrincipal(parent context.Context, p *Principal) context.Context {
	return context.WithValue(parent, ctxKey{}, p)
}

// PrincipalFrom returns the principal from a request context, or nil
// on unauthenticated requests.
func PrincipalFrom(parent context.Context) *Principal {
	p, _ := parent.Value(ctxKey{}).(*Principal)
	return p
}
