package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/printmaania/printmaania-gobackend/internal/auth"
	"github.com/printmaania/printmaania-gobackend/internal/models"
)

var testSecret = []byte("test-secret")

type stubFinder struct {
	users map[string]*models.User
}

func (f *stubFinder) GetByID(_ context.Context, id string) (*models.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, errors.New("user not found")
}

func newTestUser(role string) *models.User {
	return &models.User{
		ID:   primitive.NewObjectID(),
		Name: "Test User",
		Role: role,
	}
}

func issueFor(t *testing.T, user *models.User, claimRole string) string {
	t.Helper()
	token, err := auth.IssueToken(testSecret, user.ID.Hex(), claimRole, time.Hour)
	require.NoError(t, err)
	return token
}

func TestRequire_MissingHeader(t *testing.T) {
	mw := NewAuth(&stubFinder{users: map[string]*models.User{}}, testSecret)
	handler := mw.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Authentication required", body["message"])
}

func TestRequire_InvalidToken(t *testing.T) {
	mw := NewAuth(&stubFinder{users: map[string]*models.User{}}, testSecret)
	handler := mw.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequire_UserDeletedAfterIssuance(t *testing.T) {
	user := newTestUser(models.RoleUser)
	token := issueFor(t, user, user.Role)

	// The finder has no record for the token's user id.
	mw := NewAuth(&stubFinder{users: map[string]*models.User{}}, testSecret)
	handler := mw.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequire_AttachesIdentity(t *testing.T) {
	user := newTestUser(models.RoleUser)
	token := issueFor(t, user, user.Role)
	mw := NewAuth(&stubFinder{users: map[string]*models.User{user.ID.Hex(): user}}, testSecret)

	var gotUser *models.User
	var gotClaims *auth.Claims
	handler := mw.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserFrom(r.Context())
		gotClaims = ClaimsFrom(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotUser)
	assert.Equal(t, user.ID, gotUser.ID)
	require.NotNil(t, gotClaims)
	assert.Equal(t, user.ID.Hex(), gotClaims.UserID)
}

func TestRequireAdmin(t *testing.T) {
	admin := newTestUser(models.RoleAdmin)
	downgraded := newTestUser(models.RoleUser)
	promoted := newTestUser(models.RoleAdmin)

	finder := &stubFinder{users: map[string]*models.User{
		admin.ID.Hex():      admin,
		downgraded.ID.Hex(): downgraded,
		promoted.ID.Hex():   promoted,
	}}
	mw := NewAuth(finder, testSecret)
	handler := mw.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name     string
		token    string
		wantCode int
	}{
		{"admin claim and admin record", issueFor(t, admin, models.RoleAdmin), http.StatusOK},
		// Token issued before a role downgrade: record no longer says admin.
		{"stale admin claim, downgraded record", issueFor(t, downgraded, models.RoleAdmin), http.StatusForbidden},
		// Token issued before a promotion: claim still says user.
		{"stale user claim, promoted record", issueFor(t, promoted, models.RoleUser), http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestOptional_NoToken(t *testing.T) {
	mw := NewAuth(&stubFinder{users: map[string]*models.User{}}, testSecret)

	var gotUser *models.User
	handler := mw.Optional(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, gotUser)
}

func TestOptional_WithToken(t *testing.T) {
	user := newTestUser(models.RoleUser)
	token := issueFor(t, user, user.Role)
	mw := NewAuth(&stubFinder{users: map[string]*models.User{user.ID.Hex(): user}}, testSecret)

	var gotUser *models.User
	handler := mw.Optional(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserFrom(r.Context())
	}))

	req := httptest.NewRequest("POST", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.NotNil(t, gotUser)
	assert.Equal(t, user.ID, gotUser.ID)
}
