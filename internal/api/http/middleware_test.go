package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ecodonate-backend/internal/domain"
	"ecodonate-backend/internal/logger"
	"ecodonate-backend/internal/security"
	"ecodonate-backend/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRevoker struct{}

func (failingRevoker) Revoke(context.Context, string, time.Time) error { return nil }
func (failingRevoker) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func newProtectedRouter(tm security.TokenManager, revoker security.Revoker) *mux.Router {
	router := mux.NewRouter()
	router.Use(NewAuthMiddleware(tm, revoker).Middleware)
	router.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int64{"user_id": UserIDFromContext(r.Context())})
	}).Name("me")
	router.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		_, ok := ClaimsFromContext(r.Context())
		writeJSON(w, http.StatusOK, map[string]bool{"authenticated": ok})
	}).Name("login")
	router.HandleFunc("/unnamed", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	logger.InitializeWithWriter("error", "text", io.Discard)
	tm := security.NewTokenManager(testJWTSecret, time.Hour, "ecodonate")
	token, _, err := tm.GenerateAccessToken(42, domain.UserRoleDonor)
	require.NoError(t, err)

	otherIssuer := security.NewTokenManager(testJWTSecret, time.Hour, "someone-else")
	foreign, _, err := otherIssuer.GenerateAccessToken(42, domain.UserRoleDonor)
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, security.UserClaims{
		UserID: 42,
		Role:   domain.UserRoleDonor,
		Type:   security.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			Issuer:    "ecodonate",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	rejected := `{"error":"` + invalidTokenMessage + `"}`

	tests := []struct {
		name       string
		path       string
		header     string
		revoker    security.Revoker
		wantStatus int
		wantBody   string
	}{
		{"public route without token", "/login", "", security.NewNoopRevoker(), http.StatusOK, `{"authenticated":false}`},
		{"missing token", "/me", "", security.NewNoopRevoker(), http.StatusUnauthorized, ""},
		{"valid bearer token", "/me", "Bearer " + token, security.NewNoopRevoker(), http.StatusOK, `{"user_id":42}`},
		{"lowercase scheme", "/me", "bearer " + token, security.NewNoopRevoker(), http.StatusOK, `{"user_id":42}`},
		{"garbage token", "/me", "Bearer not-a-jwt", security.NewNoopRevoker(), http.StatusUnauthorized, rejected},
		{"foreign issuer", "/me", "Bearer " + foreign, security.NewNoopRevoker(), http.StatusUnauthorized, rejected},
		{"expired token", "/me", "Bearer " + expired, security.NewNoopRevoker(), http.StatusUnauthorized, rejected},
		{"revocation store failure", "/me", "Bearer " + token, failingRevoker{}, http.StatusInternalServerError, ""},
		{"unnamed route requires token", "/unnamed", "", security.NewNoopRevoker(), http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			newProtectedRouter(tm, tt.revoker).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestWriteError_StatusMapping(t *testing.T) {
	logger.InitializeWithWriter("error", "text", io.Discard)

	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{service.ErrValidation("bad input"), http.StatusBadRequest, "bad input"},
		{service.ErrConflict("taken"), http.StatusBadRequest, "taken"},
		{service.ErrUpstream("card declined", errors.New("402")), http.StatusBadRequest, "card declined"},
		{service.ErrUnauthorized("who are you"), http.StatusUnauthorized, "who are you"},
		{service.ErrForbidden("not yours"), http.StatusForbidden, "not yours"},
		{service.ErrNotFound("missing"), http.StatusNotFound, "missing"},
		{service.ErrInternal(errors.New("pq: connection refused")), http.StatusInternalServerError, "internal server error"},
		{errors.New("unclassified"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, `{"error":"`+tt.wantMsg+`"}`, rec.Body.String())
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	rec := httptest.NewRecorder()
	ok := decodeJSON(rec, httptest.NewRequest(http.MethodPost, "/", nil), &dst)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	ok = decodeJSON(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`)), &dst)
	assert.False(t, ok)
	assert.Contains(t, rec.Body.String(), "invalid JSON body")
}

func TestRecoveryHandler(t *testing.T) {
	logger.InitializeWithWriter("error", "text", io.Discard)

	router := mux.NewRouter()
	router.HandleFunc("/panic", func(http.ResponseWriter, *http.Request) { panic("boom") }).Name("healthz")
	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		wrapRecovery(router).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
