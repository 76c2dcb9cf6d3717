package users

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	Save(ctx context.Context, p Profile) error
	GetByID(ctx context.Context, id string) (Profile, error)
	// List devuelve todos los perfiles en orden de alta.
	List(ctx context.Context) ([]Profile, error)
}
