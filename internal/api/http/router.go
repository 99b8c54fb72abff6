package http

import (
	"context"
	"net/http"

	"ecodonate-backend/internal/logger"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Handlers groups the endpoint handlers mounted by NewRouter. Uploads is nil
// unless mock storage is in use.
type Handlers struct {
	Auth          *AuthHandler
	Organizations *OrganizationHandler
	Donations     *DonationHandler
	Stories       *StoryHandler
	Beneficiaries *BeneficiaryHandler
	Uploads       *UploadHandler

	// Health reports readiness of backing stores; nil means always healthy
	Health func(ctx context.Context) error
}

// NewRouter builds the HTTP surface. Route names key the security levels in config.
func NewRouter(h Handlers, auth *AuthMiddleware, allowedOrigins []string) http.Handler {
	router := mux.NewRouter()
	router.Use(auth.Middleware)

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/register", h.Auth.Register).Methods(http.MethodPost).Name("register")
	api.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost).Name("login")
	api.HandleFunc("/logout", h.Auth.Logout).Methods(http.MethodPost).Name("logout")
	api.HandleFunc("/me", h.Auth.Me).Methods(http.MethodGet).Name("me")

	api.HandleFunc("/organizations", h.Organizations.List).Methods(http.MethodGet).Name("organizations.list")
	api.HandleFunc("/organizations/apply", h.Organizations.Apply).Methods(http.MethodPost).Name("organizations.apply")
	api.HandleFunc("/organizations/mine", h.Organizations.Mine).Methods(http.MethodGet).Name("organizations.mine")
	api.HandleFunc("/organizations/mine/donations", h.Organizations.Donations).Methods(http.MethodGet).Name("organizations.mine.donations")
	api.HandleFunc("/organizations/mine/donations.xlsx", h.Organizations.DonationsXLSX).Methods(http.MethodGet).Name("organizations.mine.donationsXLS")
	api.HandleFunc("/organizations/{id:[0-9]+}/stories", h.Organizations.Stories).Methods(http.MethodGet).Name("organizations.stories")
	api.HandleFunc("/admin/organizations/{id:[0-9]+}", h.Organizations.UpdateStatus).Methods(http.MethodPut).Name("admin.organizations.update")

	api.HandleFunc("/donations", h.Donations.Create).Methods(http.MethodPost).Name("donations.create")
	api.HandleFunc("/webhooks/payments", h.Donations.PaymentWebhook).Methods(http.MethodPost).Name("webhooks.payments")

	api.HandleFunc("/stories", h.Stories.Create).Methods(http.MethodPost).Name("stories.create")
	api.HandleFunc("/stories/image-upload-url", h.Stories.UploadURL).Methods(http.MethodPost).Name("stories.uploadURL")

	api.HandleFunc("/beneficiaries", h.Beneficiaries.Create).Methods(http.MethodPost).Name("beneficiaries.create")
	api.HandleFunc("/beneficiaries", h.Beneficiaries.List).Methods(http.MethodGet).Name("beneficiaries.list")
	api.HandleFunc("/beneficiaries/{id:[0-9]+}/inventory", h.Beneficiaries.AddInventory).Methods(http.MethodPost).Name("beneficiaries.inventory.add")
	api.HandleFunc("/beneficiaries/{id:[0-9]+}/inventory", h.Beneficiaries.ListInventory).Methods(http.MethodGet).Name("beneficiaries.inventory.list")

	if h.Uploads != nil {
		router.HandleFunc("/uploads/{key:.+}", h.Uploads.Put).Methods(http.MethodPut).Name("uploads.put")
		router.HandleFunc("/uploads/{key:.+}", h.Uploads.Get).Methods(http.MethodGet).Name("uploads.get")
	}

	router.HandleFunc("/healthz", healthHandler(h.Health)).Methods(http.MethodGet).Name("healthz")

	cors := handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		handlers.ExposedHeaders([]string{requestIDHeader}),
	)

	return wrapRecovery(RequestLogger(cors(router)))
}

func wrapRecovery(h http.Handler) http.Handler {
	return handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{}))(h)
}

func healthHandler(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				logger.FromContext(r.Context()).Error("Health check failed", "error", err)
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
