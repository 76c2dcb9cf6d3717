package users

import (
	"strings"
	"time"
)

// Role define el rol del perfil.
// @Enum user, admin
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole normaliza el rol; vacío => user. ok=false si no es un rol conocido.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case "", RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Profile es el perfil de usuario guardado en user:<id>.
type Profile struct {
	ID        string
	Email     string
	Name      string
	Role      Role
	CreatedAt time.Time
}

// Anonymous es el perfil de un request sin credencial válida.
var Anonymous = Profile{}

func (p Profile) IsAnonymous() bool {
	return strings.TrimSpace(p.ID) == ""
}

func (p Profile) IsAdmin() bool {
	return !p.IsAnonymous() && p.Role == RoleAdmin
}
