package auth

import "errors"

var (
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrAlreadyRegistered  = errors.New("email already registered")
)

// Claims representa la información extraída del token.
// Name y Role vienen de la metadata de la identidad (pueden venir vacíos).
type Claims struct {
	UserID string
	Email  string
	Name   string
	Role   string
}

// SignUpInput es lo que el proveedor de identidad necesita para crear una cuenta.
type SignUpInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// Session es el resultado de un sign-in exitoso.
type Session struct {
	AccessToken string
	Claims      Claims
}
