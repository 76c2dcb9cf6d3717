package users

import (
	"context"
	"errors"
	"strings"

	"pet-marketplace/internal/middleware"
	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/ports/auth"
)

// Guard traduce los claims que dejó middleware.AuthContext a un Profile.
// El resto de los módulos recibe el Profile explícito; nunca leen el contexto por su cuenta.
type Guard struct {
	repo Repository
}

func NewGuard(repo Repository) *Guard {
	return &Guard{repo: repo}
}

// ResolveIdentity devuelve Anonymous si el request no trae claims (token ausente o inválido).
// Si hay claims pero no hay perfil guardado, se sintetiza uno con rol user.
func (g *Guard) ResolveIdentity(ctx context.Context) (Profile, error) {
	claims, ok := middleware.GetClaims(ctx)
	if !ok {
		return Anonymous, nil
	}
	return g.Resolve(ctx, claims)
}

// Resolve es ResolveIdentity con los claims ya extraídos.
func (g *Guard) Resolve(ctx context.Context, claims auth.Claims) (Profile, error) {
	uid := strings.TrimSpace(claims.UserID)
	if uid == "" {
		return Anonymous, nil
	}

	p, err := g.repo.GetByID(ctx, uid)
	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, ErrNotFound):
		return synthesize(claims), nil
	default:
		return Anonymous, apperr.Internal("resolve profile", err)
	}
}

// synthesize arma el perfil mínimo para identidades sin user:<id>.
// El rol nunca sale de los claims: admin solo se obtiene vía perfil guardado.
func synthesize(c auth.Claims) Profile {
	return Profile{
		ID:    strings.TrimSpace(c.UserID),
		Email: strings.TrimSpace(c.Email),
		Name:  strings.TrimSpace(c.Name),
		Role:  RoleUser,
	}
}

// RequireUser falla con Unauthorized para Anonymous.
func RequireUser(p Profile, msg string) error {
	if p.IsAnonymous() {
		if msg == "" {
			msg = "Unauthorized"
		}
		return apperr.Unauthorized(msg)
	}
	return nil
}

// RequireRole es un check puro: Forbidden si es Anonymous o el rol no coincide.
func RequireRole(p Profile, role Role) error {
	if p.IsAnonymous() || p.Role != role {
		return apperr.Forbidden("Forbidden - " + string(role) + " access required")
	}
	return nil
}
