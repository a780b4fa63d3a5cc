package capabilities

import "strings"

// Capability es un rol/tag de autorización requerido por una operación.
type Capability string

const (
	OwnerAdmin Capability = "OWNER_ADMIN"
	VetAdmin   Capability = "VET_ADMIN"
	Admin      Capability = "ADMIN" // reconocido, pero no implica los otros
)

var known = map[Capability]struct{}{
	OwnerAdmin: {},
	VetAdmin:   {},
	Admin:      {},
}

// Parse normaliza un rol recibido (token, header dev). Acepta prefijo "ROLE_".
// Devuelve false si el rol no es conocido.
func Parse(raw string) (Capability, bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "ROLE_")
	c := Capability(s)
	if _, ok := known[c]; !ok {
		return "", false
	}
	return c, true
}

// ParseList parsea una lista CSV ("OWNER_ADMIN, VET_ADMIN") ignorando roles desconocidos.
func ParseList(csv string) []Capability {
	out := make([]Capability, 0)
	seen := map[Capability]struct{}{}
	for _, p := range strings.Split(csv, ",") {
		c, ok := Parse(p)
		if !ok {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Allows es la decisión de autorización: el caller debe tener exactamente la capability requerida.
func Allows(have []Capability, need Capability) bool {
	for _, c := range have {
		if c == need {
			return true
		}
	}
	return false
}
