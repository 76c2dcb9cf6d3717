package pets

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("pet not found")

type Repository interface {
	// Save crea o reemplaza pet:<id>.
	Save(ctx context.Context, l Listing) error
	GetByID(ctx context.Context, id string) (Listing, error)
	// List hace el scan completo de pet:* en orden de inserción.
	List(ctx context.Context) ([]Listing, error)
	Delete(ctx context.Context, id string) error
}
