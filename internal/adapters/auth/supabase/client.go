package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-marketplace/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("supabase client not configured")
	ErrUnauthorized  = errors.New("supabase unauthorized")
	ErrUpstream      = errors.New("supabase upstream error")
)

// Config del cliente GoTrue de Supabase.
// URL y claves vienen de env vars (SUPABASE_URL, SUPABASE_ANON_KEY, SUPABASE_SERVICE_ROLE_KEY).
type Config struct {
	URL            string
	AnonKey        string
	ServiceRoleKey string

	// JWTSecret opcional: si está, los tokens se validan localmente sin ir a la red.
	JWTSecret string

	Timeout time.Duration
}

// Client habla con /auth/v1 de un proyecto Supabase.
type Client struct {
	http           *httpclient.Client
	anonKey        string
	serviceRoleKey string
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if base == "" || strings.TrimSpace(cfg.AnonKey) == "" {
		return nil, ErrNotConfigured
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc, err := httpclient.New(base+"/auth/v1", timeout, nil)
	if err != nil {
		return nil, fmt.Errorf("supabase: %w", err)
	}

	c := &Client{
		http:           hc,
		anonKey:        strings.TrimSpace(cfg.AnonKey),
		serviceRoleKey: strings.TrimSpace(cfg.ServiceRoleKey),
	}
	return c, nil
}

// User es el subset de la respuesta de GoTrue que usamos.
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// GetUser resuelve el usuario dueño del access token (GET /user).
func (c *Client) GetUser(ctx context.Context, accessToken string) (User, error) {
	var out User
	err := c.http.DoJSON(ctx, http.MethodGet, "/user", map[string]string{
		"apikey":        c.anonKey,
		"Authorization": "Bearer " + accessToken,
	}, nil, &out)
	if err != nil {
		return User{}, classify(err)
	}
	return out, nil
}

// CreateUser crea una identidad confirmada vía la admin API (requiere service role).
func (c *Client) CreateUser(ctx context.Context, email, password string, metadata map[string]any) (User, error) {
	if c.serviceRoleKey == "" {
		return User{}, fmt.Errorf("%w: service role key required for signup", ErrNotConfigured)
	}

	body := map[string]any{
		"email":         email,
		"password":      password,
		"user_metadata": metadata,
		// No hay servidor de email configurado: se confirma directamente.
		"email_confirm": true,
	}

	var out User
	err := c.http.DoJSON(ctx, http.MethodPost, "/admin/users", map[string]string{
		"apikey":        c.serviceRoleKey,
		"Authorization": "Bearer " + c.serviceRoleKey,
	}, body, &out)
	if err != nil {
		return User{}, classify(err)
	}
	return out, nil
}

// PasswordGrant hace sign-in con email/password.
func (c *Client) PasswordGrant(ctx context.Context, email, password string) (TokenResponse, error) {
	var out TokenResponse
	err := c.http.DoJSON(ctx, http.MethodPost, "/token?grant_type=password", map[string]string{
		"apikey": c.anonKey,
	}, map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return TokenResponse{}, classify(err)
	}
	return out, nil
}

func classify(err error) error {
	he, ok := httpclient.AsHTTPError(err)
	if !ok {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	switch {
	case he.StatusCode == http.StatusUnauthorized || he.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, he.Message())
	case he.StatusCode >= 500:
		return fmt.Errorf("%w: %v", ErrUpstream, he)
	default:
		return he
	}
}
