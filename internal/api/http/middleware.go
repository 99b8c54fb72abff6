package http

import (
	"net/http"
	"strings"
	"time"

	"ecodonate-backend/internal/config"
	"ecodonate-backend/internal/logger"
	"ecodonate-backend/internal/security"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	requestIDHeader = "X-Request-ID"

	invalidTokenMessage = "invalid or expired token"
)

// AuthMiddleware authenticates requests according to the security level of the matched route
type AuthMiddleware struct {
	tokenManager security.TokenManager
	revoker      security.Revoker
}

func NewAuthMiddleware(tm security.TokenManager, revoker security.Revoker) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm, revoker: revoker}
}

func (a *AuthMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var routeName string
		if route := mux.CurrentRoute(r); route != nil {
			routeName = route.GetName()
		}
		level := config.GetSecurityLevel(routeName)

		// Public and webhook endpoints carry no bearer token
		if level != config.SecurityAccess {
			next.ServeHTTP(w, r)
			return
		}

		token := extractToken(r)
		if token == "" {
			writeErrorMessage(w, http.StatusUnauthorized, "authorization token is not provided")
			return
		}

		claims, err := a.tokenManager.ValidateToken(token)
		if err != nil {
			logger.FromContext(r.Context()).Debug("Token rejected", "error", err)
			writeErrorMessage(w, http.StatusUnauthorized, invalidTokenMessage)
			return
		}

		revoked, err := a.revoker.IsRevoked(r.Context(), claims.ID)
		if err != nil {
			logger.FromContext(r.Context()).Error("Revocation check failed", "error", err)
			writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if revoked {
			writeErrorMessage(w, http.StatusUnauthorized, "token has been revoked")
			return
		}

		ctx := withClaims(r.Context(), claims)
		ctx = logger.WithContext(ctx, logger.FromContext(ctx).With("userID", claims.UserID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractToken(r *http.Request) string {
	token := r.Header.Get("Authorization")
	// Remove Bearer prefix if present
	if len(token) > 7 && strings.ToUpper(token[0:7]) == "BEARER " {
		token = token[7:]
	}
	return strings.TrimSpace(token)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLogger tags each request with an id and logs its outcome
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		log := logger.Get().With("request_id", requestID)
		ctx := logger.WithContext(r.Context(), log)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		log.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// recoveryLogger adapts the structured logger to gorilla/handlers' recovery hook
type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	logger.Error("Recovered from panic", "panic", v)
}
