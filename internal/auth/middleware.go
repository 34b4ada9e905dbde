// ABOUTME: HTTP middleware implementing the session authentication and role gates
// ABOUTME: Re-resolves the account from the store on every request, never trusting token claims

package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/calibra/calibra-api/internal/store"
)

// AccountResolver is the store dependency of the authentication gate. The
// lookup excludes the password hash.
type AccountResolver interface {
	GetAccountByID(ctx context.Context, id string) (*store.Account, error)
}

// logFailure logs an auth failure with a machine-readable reason attribute.
func logFailure(logger *slog.Logger, r *http.Request, reason string) {
	if logger == nil {
		return
	}
	logger.Warn("http auth failure", "reason", reason, "path", r.URL.Path)
}

// RequireAuth creates an HTTP middleware that authenticates the session
// cookie and attaches the resolved account to the request context.
//
// The gate evaluates in strict order: extract cookie, verify token, check the
// subject claim, re-resolve the account from the store. The first failure
// short-circuits with 401 and clears the cookie whenever the failure proves
// the session itself is untrustworthy. A store fault is not such proof: it
// surfaces as 500 and leaves the cookie in place.
//
// The token's role claim is never used for authorization; the account record
// fetched here carries the current role, so a role change or account deletion
// takes effect on the next request rather than at token expiry.
func RequireAuth(accounts AccountResolver, codec TokenCodec, cookies *CookieManager, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := cookies.Read(r)
			if token == "" {
				logFailure(logger, r, "cookie_missing")
				http.Error(w, `{"error":"not authenticated"}`, http.StatusUnauthorized)
				return
			}

			claims, err := codec.Verify(token)
			if err != nil {
				logFailure(logger, r, "token_verification_failed")
				cookies.Clear(w)
				http.Error(w, `{"error":"invalid session"}`, http.StatusUnauthorized)
				return
			}

			if claims.AccountID == "" {
				logFailure(logger, r, "missing_subject")
				cookies.Clear(w)
				http.Error(w, `{"error":"invalid session"}`, http.StatusUnauthorized)
				return
			}

			account, err := accounts.GetAccountByID(r.Context(), claims.AccountID)
			if err != nil {
				if errors.Is(err, store.ErrAccountNotFound) {
					logFailure(logger, r, "account_not_found")
					cookies.Clear(w)
					http.Error(w, `{"error":"invalid session"}`, http.StatusUnauthorized)
					return
				}
				// Transient store fault: not proof the session is invalid,
				// so the cookie stays.
				if logger != nil {
					logger.Error("auth store lookup failed", "error", err)
				}
				http.Error(w, `{"error":"authentication unavailable"}`, http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), account)))
		})
	}
}

// RequireRole creates an HTTP middleware that authorizes the attached
// principal against a required role. Must be used after RequireAuth.
// Roles match exactly; there is no hierarchy.
func RequireRole(role store.Role, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := FromContext(r.Context())
			if principal == nil {
				logFailure(logger, r, "principal_missing")
				http.Error(w, `{"error":"not authenticated"}`, http.StatusUnauthorized)
				return
			}

			if principal.Role != role {
				logFailure(logger, r, "role_mismatch")
				http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// OptionalAuth creates an HTTP middleware that attempts session auth but
// allows unauthenticated requests through anonymously. Failures here never
// clear the cookie and never produce an error response; the endpoint behind
// it decides what an absent principal means.
func OptionalAuth(accounts AccountResolver, codec TokenCodec, cookies *CookieManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := cookies.Read(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := codec.Verify(token)
			if err != nil || claims.AccountID == "" {
				next.ServeHTTP(w, r)
				return
			}

			account, err := accounts.GetAccountByID(r.Context(), claims.AccountID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), account)))
		})
	}
}
