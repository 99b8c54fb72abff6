// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic  SecurityLevel = iota // No authentication
	SecurityWebhook                      // Processor signature, no bearer token
	SecurityAccess                       // Access token required
)

// EndpointSecurityConfig maps route names to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Auth - Public
	"register": SecurityPublic,
	"login":    SecurityPublic,

	// Auth - Access Protected
	"logout": SecurityAccess,
	"me":     SecurityAccess,

	// Organizations - Public
	"organizations.list":    SecurityPublic,
	"organizations.stories": SecurityPublic,

	// Organizations - Access Protected
	"organizations.apply":             SecurityAccess,
	"organizations.mine":              SecurityAccess,
	"organizations.mine.donations":    SecurityAccess,
	"organizations.mine.donationsXLS": SecurityAccess,

	// Admin - Access Protected (role is checked by the service)
	"admin.organizations.update": SecurityAccess,

	// Donations
	"donations.create":  SecurityAccess,
	"webhooks.payments": SecurityWebhook,

	// Stories - Access Protected
	"stories.create":    SecurityAccess,
	"stories.uploadURL": SecurityAccess,

	// Beneficiaries - Access Protected
	"beneficiaries.create":         SecurityAccess,
	"beneficiaries.list":           SecurityAccess,
	"beneficiaries.inventory.add":  SecurityAccess,
	"beneficiaries.inventory.list": SecurityAccess,

	// Mock storage and health - Public
	"uploads.put": SecurityPublic,
	"uploads.get": SecurityPublic,
	"healthz":     SecurityPublic,
}

// GetSecurityLevel returns the security level for a given route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAccess
}
