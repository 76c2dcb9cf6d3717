package auth

import "context"

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// IdentityProvider es la capacidad externa completa: además de verificar,
// crea identidades y emite credenciales. El core la trata como opaca.
type IdentityProvider interface {
	AuthVerifier
	SignUp(ctx context.Context, in SignUpInput) (Claims, error)
	SignIn(ctx context.Context, email, password string) (Session, error)
}
