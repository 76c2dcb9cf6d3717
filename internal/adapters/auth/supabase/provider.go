// Package supabase implementa auth.IdentityProvider sobre GoTrue (Supabase Auth).
package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"pet-marketplace/internal/platform/httpclient"
	"pet-marketplace/internal/ports/auth"
)

type Provider struct {
	client    *Client
	jwtSecret []byte
}

var _ auth.IdentityProvider = (*Provider)(nil)

func NewProvider(client *Client, jwtSecret string) *Provider {
	p := &Provider{client: client}
	if s := strings.TrimSpace(jwtSecret); s != "" {
		p.jwtSecret = []byte(s)
	}
	return p
}

// supabaseClaims son los claims que GoTrue pone en sus access tokens.
type supabaseClaims struct {
	Email        string         `json:"email"`
	Role         string         `json:"role"`
	UserMetadata map[string]any `json:"user_metadata"`
	jwt.RegisteredClaims
}

func (p *Provider) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if p == nil || p.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	if len(p.jwtSecret) > 0 {
		return p.verifyLocal(token)
	}

	u, err := p.client.GetUser(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUpstream) {
			return auth.Claims{}, fmt.Errorf("supabase verify failed: %w", err)
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}
	return u.claims()
}

func (p *Provider) verifyLocal(token string) (auth.Claims, error) {
	var sc supabaseClaims
	parsed, err := jwt.ParseWithClaims(token, &sc, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.jwtSecret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}

	u := User{ID: sc.Subject, Email: sc.Email, UserMetadata: sc.UserMetadata}
	return u.claims()
}

func (p *Provider) SignUp(ctx context.Context, in auth.SignUpInput) (auth.Claims, error) {
	if p == nil || p.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}

	meta := map[string]any{"name": in.Name}
	if in.Role != "" {
		meta["role"] = in.Role
	}

	u, err := p.client.CreateUser(ctx, strings.TrimSpace(in.Email), in.Password, meta)
	if err != nil {
		if isAlreadyRegistered(err) {
			return auth.Claims{}, auth.ErrAlreadyRegistered
		}
		return auth.Claims{}, fmt.Errorf("supabase signup: %w", err)
	}
	return u.claims()
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (auth.Session, error) {
	if p == nil || p.client == nil {
		return auth.Session{}, ErrNotConfigured
	}

	tr, err := p.client.PasswordGrant(ctx, strings.TrimSpace(email), password)
	if err != nil {
		if he, ok := httpclient.AsHTTPError(err); ok && he.StatusCode == http.StatusBadRequest {
			return auth.Session{}, auth.ErrInvalidCredentials
		}
		if errors.Is(err, ErrUnauthorized) {
			return auth.Session{}, auth.ErrInvalidCredentials
		}
		return auth.Session{}, fmt.Errorf("supabase signin: %w", err)
	}
	if tr.AccessToken == "" {
		return auth.Session{}, fmt.Errorf("%w: empty access token", ErrUpstream)
	}

	claims, err := tr.User.claims()
	if err != nil {
		return auth.Session{}, err
	}
	return auth.Session{AccessToken: tr.AccessToken, Claims: claims}, nil
}

func isAlreadyRegistered(err error) bool {
	he, ok := httpclient.AsHTTPError(err)
	if !ok {
		return false
	}
	msg := strings.ToLower(he.Message())
	return strings.Contains(msg, "already registered") ||
		strings.Contains(msg, "already been registered") ||
		strings.Contains(msg, "already exists")
}

func (u User) claims() (auth.Claims, error) {
	id := strings.TrimSpace(u.ID)
	if id == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing user id", auth.ErrInvalidToken)
	}
	return auth.Claims{
		UserID: id,
		Email:  strings.TrimSpace(u.Email),
		Name:   metaString(u.UserMetadata, "name"),
		Role:   metaString(u.UserMetadata, "role"),
	}, nil
}

func metaString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}
