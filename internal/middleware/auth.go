package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/printmaania/printmaania-gobackend/internal/auth"
	"github.com/printmaania/printmaania-gobackend/internal/models"
)

type ctxKey int

const (
	userKey ctxKey = iota
	claimsKey
)

// UserFinder resolves a token's user id to the stored record.
// *services.UserService satisfies it.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type Auth struct {
	finder UserFinder
	secret []byte
}

func NewAuth(finder UserFinder, secret []byte) *Auth {
	return &Auth{finder: finder, secret: secret}
}

// Require validates the bearer token, loads the user record, and attaches
// both to the request context.
func (a *Auth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, user, status, msg := a.resolve(r)
		if status != 0 {
			writeError(w, status, msg)
			return
		}
		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), user, claims)))
	})
}

// RequireAdmin gates on both the token's role claim and the freshly loaded
// record's role being admin. A token issued before a role downgrade still
// fails, because the stored record no longer says admin.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return a.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFrom(r.Context())
		user := UserFrom(r.Context())
		if claims.Role != models.RoleAdmin || !user.IsAdmin() {
			writeError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// Optional attaches identity when a valid token is present but never rejects
// the request. Used by quote creation, which accepts anonymous submissions.
func (a *Auth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, user, status, _ := a.resolve(r)
		if status == 0 {
			r = r.WithContext(withIdentity(r.Context(), user, claims))
		}
		next.ServeHTTP(w, r)
	})
}

// resolve returns (claims, user, 0, "") on success or a non-zero HTTP status
// and message on failure.
func (a *Auth) resolve(r *http.Request) (*auth.Claims, *models.User, int, string) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return nil, nil, http.StatusUnauthorized, "Authentication required"
	}

	claims, err := auth.ParseToken(a.secret, strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return nil, nil, http.StatusUnauthorized, "Invalid or expired token"
	}

	user, err := a.finder.GetByID(r.Context(), claims.UserID)
	if err != nil {
		return nil, nil, http.StatusNotFound, "User not found"
	}

	return claims, user, 0, ""
}

func withIdentity(ctx context.Context, user *models.User, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, claimsKey, claims)
}

// UserFrom returns the authenticated user, or nil on unauthenticated
// requests that passed through Optional.
func UserFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

func ClaimsFrom(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
