package middleware

import (
	"net/http"
	"strings"

	"pet-clinic-visits/internal/ports/auth"
	"pet-clinic-visits/internal/ports/capabilities"
)

// Authorize es el chequeo explícito que cada operación hace al inicio:
// sin claims => 401; claims sin la capability requerida => 403.
// Devuelve false si ya respondió.
func Authorize(w http.ResponseWriter, r *http.Request, need capabilities.Capability) (auth.Claims, bool) {
	claims, ok := GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return auth.Claims{}, false
	}
	if !capabilities.Allows(claims.Capabilities, need) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return auth.Claims{}, false
	}
	return claims, true
}
