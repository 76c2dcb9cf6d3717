package pets

import (
	"time"

	"pet-marketplace/internal/domain/users"
)

// Status del aviso. No hay máquina de estados: cualquier escritor autorizado puede pasar a cualquiera.
// @Enum active, pending, sold
type Status string

const (
	StatusActive  Status = "active"
	StatusPending Status = "pending"
	StatusSold    Status = "sold"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusSold:
		return true
	default:
		return false
	}
}

// Listing es un aviso de venta guardado en pet:<id>.
// ID y OwnerID no cambian después del alta.
type Listing struct {
	ID         string
	OwnerID    string
	OwnerEmail string

	Name        string
	Breed       string
	Category    string
	Age         FlexValue
	Price       FlexValue
	Location    string
	Description string
	HealthInfo  string
	Images      []string

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Detail es un Listing con el perfil del dueño embebido (nil si no se pudo resolver).
type Detail struct {
	Listing
	Owner *users.Profile
}

// Filter de List. Campos vacíos no filtran; Category "all" tampoco.
type Filter struct {
	Category string
	Status   string
	Search   string
}
