package auth

import "pet-clinic-visits/internal/ports/capabilities"

// Claims representa la información extraída del token.
type Claims struct {
	UserID   string
	Email    string
	TenantID string

	// Roles del caller; las operaciones deciden con capabilities.Allows.
	Capabilities []capabilities.Capability
}
