package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/platform/logger"
	"pet-marketplace/internal/ports/auth"
)

const MinPasswordLength = 6

var (
	ErrMissingSignupFields = apperr.BadRequest("Email, password, and name are required")
	ErrPasswordTooShort    = apperr.BadRequest("Password must be at least 6 characters")
	ErrInvalidRole         = apperr.BadRequest("Role must be user or admin")
	ErrAlreadyRegistered   = apperr.Conflict("This email is already registered. Please sign in instead.")
	ErrMissingCredentials  = apperr.BadRequest("Email and password are required")
	ErrInvalidCredentials  = apperr.Unauthorized("Invalid login credentials")
)

type Service struct {
	repo  Repository
	idp   auth.IdentityProvider
	guard *Guard
	log   logger.Logger
	now   func() time.Time
}

func NewService(repo Repository, idp auth.IdentityProvider, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewDiscard()
	}
	return &Service{
		repo:  repo,
		idp:   idp,
		guard: NewGuard(repo),
		log:   log,
		now:   time.Now,
	}
}

type SignUpInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// SignUp crea la identidad en el proveedor y espeja el perfil en user:<id>.
// Si el perfil no se puede guardar, la cuenta igual queda creada (el Guard sintetiza después).
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (Profile, error) {
	email := strings.TrimSpace(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || in.Password == "" || name == "" {
		return Profile{}, ErrMissingSignupFields
	}
	if len(in.Password) < MinPasswordLength {
		return Profile{}, ErrPasswordTooShort
	}
	role, ok := ParseRole(in.Role)
	if !ok {
		return Profile{}, ErrInvalidRole
	}
	if s.idp == nil {
		return Profile{}, apperr.Internal("signup", errors.New("identity provider not configured"))
	}

	claims, err := s.idp.SignUp(ctx, auth.SignUpInput{
		Email:    email,
		Password: in.Password,
		Name:     name,
		Role:     string(role),
	})
	if err != nil {
		if errors.Is(err, auth.ErrAlreadyRegistered) {
			return Profile{}, ErrAlreadyRegistered
		}
		return Profile{}, apperr.Internal("signup", err)
	}

	p := Profile{
		ID:        claims.UserID,
		Email:     email,
		Name:      name,
		Role:      role,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Save(ctx, p); err != nil {
		s.log.Warn("profile store failed after signup", map[string]any{
			"user_id": p.ID,
			"err":     err,
		})
	}

	s.log.Info("user signed up", map[string]any{"user_id": p.ID, "role": string(p.Role)})
	return p, nil
}

// SignIn devuelve el token emitido por el proveedor y el perfil resuelto.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, Profile, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", Profile{}, ErrMissingCredentials
	}
	if s.idp == nil {
		return "", Profile{}, apperr.Internal("signin", errors.New("identity provider not configured"))
	}

	sess, err := s.idp.SignIn(ctx, strings.TrimSpace(email), password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return "", Profile{}, ErrInvalidCredentials
		}
		return "", Profile{}, apperr.Internal("signin", err)
	}

	p, err := s.guard.Resolve(ctx, sess.Claims)
	if err != nil {
		return "", Profile{}, err
	}
	return sess.AccessToken, p, nil
}

// List devuelve todos los perfiles (solo admin).
func (s *Service) List(ctx context.Context, caller Profile) ([]Profile, error) {
	if err := RequireUser(caller, ""); err != nil {
		return nil, err
	}
	if err := RequireRole(caller, RoleAdmin); err != nil {
		return nil, err
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal("list users", err)
	}
	return items, nil
}

// Guard expone el guard para otros módulos.
func (s *Service) Guard() *Guard {
	return s.guard
}
