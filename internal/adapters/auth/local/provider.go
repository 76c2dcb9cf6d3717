// Package local es un proveedor de identidad embebido: guarda credenciales con bcrypt
// en el KV (prefijo identity:) y emite JWT HS256. Sirve para dev y despliegues sin IdP externo.
package local

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pet-marketplace/internal/ports/auth"
	"pet-marketplace/internal/ports/kv"
)

const (
	DefaultTokenTTL = 24 * time.Hour
	issuer          = "pet-marketplace"
)

type Config struct {
	Secret   string
	TokenTTL time.Duration
	// BcryptCost: 0 => bcrypt.DefaultCost. En tests conviene bcrypt.MinCost.
	BcryptCost int
}

type identityRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

type tokenClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type Provider struct {
	store  kv.Store
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time

	// serializa signups para que dos altas con el mismo email no se pisen
	signupMu sync.Mutex
}

func NewProvider(store kv.Store, cfg Config) (*Provider, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, errors.New("local auth: secret required")
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Provider{
		store:  store,
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		cost:   cost,
		now:    time.Now,
	}, nil
}

var _ auth.IdentityProvider = (*Provider)(nil)

func identityKey(email string) string {
	return kv.PrefixIdentity + normalizeEmail(email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (p *Provider) SignUp(ctx context.Context, in auth.SignUpInput) (auth.Claims, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return auth.Claims{}, errors.New("local auth: email and password required")
	}

	p.signupMu.Lock()
	defer p.signupMu.Unlock()

	_, err := p.store.Get(ctx, identityKey(email))
	switch {
	case err == nil:
		return auth.Claims{}, auth.ErrAlreadyRegistered
	case !errors.Is(err, kv.ErrNotFound):
		return auth.Claims{}, fmt.Errorf("local auth: lookup identity: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), p.cost)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("local auth: hash password: %w", err)
	}

	rec := identityRecord{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		Role:         strings.TrimSpace(in.Role),
		PasswordHash: string(hash),
		CreatedAt:    p.now().UTC(),
	}
	if err := kv.SetJSON(ctx, p.store, identityKey(email), rec); err != nil {
		return auth.Claims{}, fmt.Errorf("local auth: store identity: %w", err)
	}

	return rec.claims(), nil
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (auth.Session, error) {
	var rec identityRecord
	if err := kv.GetJSON(ctx, p.store, identityKey(email), &rec); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return auth.Session{}, auth.ErrInvalidCredentials
		}
		return auth.Session{}, fmt.Errorf("local auth: lookup identity: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return auth.Session{}, auth.ErrInvalidCredentials
	}

	token, err := p.issue(rec)
	if err != nil {
		return auth.Session{}, err
	}
	return auth.Session{AccessToken: token, Claims: rec.claims()}, nil
}

func (p *Provider) Verify(ctx context.Context, token string) (auth.Claims, error) {
	var tc tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(p.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}

	if strings.TrimSpace(tc.Subject) == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing subject", auth.ErrInvalidToken)
	}

	return auth.Claims{
		UserID: tc.Subject,
		Email:  tc.Email,
		Name:   tc.Name,
		Role:   tc.Role,
	}, nil
}

func (p *Provider) issue(rec identityRecord) (string, error) {
	now := p.now()
	claims := tokenClaims{
		Email: rec.Email,
		Name:  rec.Name,
		Role:  rec.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   rec.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("local auth: sign token: %w", err)
	}
	return signed, nil
}

func (r identityRecord) claims() auth.Claims {
	return auth.Claims{
		UserID: r.ID,
		Email:  r.Email,
		Name:   r.Name,
		Role:   r.Role,
	}
}
