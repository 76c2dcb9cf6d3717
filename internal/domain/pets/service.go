package pets

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-marketplace/internal/domain/users"
	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/platform/logger"
)

var (
	ErrPetNotFound   = apperr.NotFound("Pet not found")
	ErrInvalidStatus = apperr.BadRequest("status must be one of active, pending, sold")
)

// ProfileLookup resuelve perfiles para el embed del dueño.
type ProfileLookup interface {
	GetByID(ctx context.Context, id string) (users.Profile, error)
}

type Service struct {
	repo     Repository
	profiles ProfileLookup
	log      logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, profiles ProfileLookup, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewDiscard()
	}
	return &Service{
		repo:     repo,
		profiles: profiles,
		log:      log,
		now:      time.Now,
	}
}

type CreateInput struct {
	Name        string
	Breed       string
	Category    string
	Age         FlexValue
	Price       FlexValue
	Location    string
	Description string
	HealthInfo  string
	Images      []string
}

// Create no valida campos: los clientes pueden mandar avisos parciales.
// Dueño, estado y timestamps los pone el servidor.
func (s *Service) Create(ctx context.Context, caller users.Profile, in CreateInput) (Listing, error) {
	if err := users.RequireUser(caller, "Unauthorized - please sign in to create listings"); err != nil {
		return Listing{}, err
	}

	now := s.now().UTC()
	l := Listing{
		ID:          uuid.NewString(),
		OwnerID:     caller.ID,
		OwnerEmail:  caller.Email,
		Name:        in.Name,
		Breed:       in.Breed,
		Category:    in.Category,
		Age:         in.Age,
		Price:       in.Price,
		Location:    in.Location,
		Description: in.Description,
		HealthInfo:  in.HealthInfo,
		Images:      cloneImages(in.Images),
		Status:      StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Save(ctx, l); err != nil {
		return Listing{}, apperr.Internal("create listing", err)
	}

	s.log.Info("listing created", map[string]any{"pet_id": l.ID, "owner_id": l.OwnerID})
	return l, nil
}

// Get trae el aviso con el dueño embebido (best-effort: si falla el lookup, Owner queda nil).
func (s *Service) Get(ctx context.Context, id string) (Detail, error) {
	l, err := s.load(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	d := Detail{Listing: l}
	if l.OwnerID != "" && s.profiles != nil {
		owner, err := s.profiles.GetByID(ctx, l.OwnerID)
		switch {
		case err == nil:
			d.Owner = &owner
		case !errors.Is(err, users.ErrNotFound):
			s.log.Warn("owner lookup failed", map[string]any{"pet_id": id, "err": err})
		}
	}
	return d, nil
}

// List aplica en orden: categoría (case-insensitive, "all" = sin filtro), estado exacto y
// búsqueda por substring en name/breed/description. Resultado: createdAt desc, empates por orden de inserción.
func (s *Service) List(ctx context.Context, f Filter) ([]Listing, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal("list listings", err)
	}

	category := strings.TrimSpace(f.Category)
	status := strings.TrimSpace(f.Status)
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]Listing, 0, len(all))
	for _, l := range all {
		if category != "" && !strings.EqualFold(category, "all") && !strings.EqualFold(l.Category, category) {
			continue
		}
		if status != "" && string(l.Status) != status {
			continue
		}
		if search != "" && !matchesSearch(l, search) {
			continue
		}
		out = append(out, l)
	}

	SortNewestFirst(out)
	return out, nil
}

func matchesSearch(l Listing, needle string) bool {
	return strings.Contains(strings.ToLower(l.Name), needle) ||
		strings.Contains(strings.ToLower(l.Breed), needle) ||
		strings.Contains(strings.ToLower(l.Description), needle)
}

// SortNewestFirst ordena por createdAt desc; estable para que los empates respeten el orden de entrada.
func SortNewestFirst(items []Listing) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

// UpdateInput: punteros para merge real, nil = no tocar.
// No hay campos para id ni dueño: no se pueden reasignar.
type UpdateInput struct {
	Name        *string
	Breed       *string
	Category    *string
	Age         *FlexValue
	Price       *FlexValue
	Location    *string
	Description *string
	HealthInfo  *string
	Images      *[]string
	Status      *string
}

func (s *Service) Update(ctx context.Context, id string, caller users.Profile, in UpdateInput) (Listing, error) {
	if err := users.RequireUser(caller, ""); err != nil {
		return Listing{}, err
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return Listing{}, err
	}
	if !canMutate(current, caller) {
		return Listing{}, apperr.Forbidden("Forbidden - you can only edit your own listings")
	}

	updated := current
	if in.Name != nil {
		updated.Name = *in.Name
	}
	if in.Breed != nil {
		updated.Breed = *in.Breed
	}
	if in.Category != nil {
		updated.Category = *in.Category
	}
	if in.Age != nil {
		updated.Age = *in.Age
	}
	if in.Price != nil {
		updated.Price = *in.Price
	}
	if in.Location != nil {
		updated.Location = *in.Location
	}
	if in.Description != nil {
		updated.Description = *in.Description
	}
	if in.HealthInfo != nil {
		updated.HealthInfo = *in.HealthInfo
	}
	if in.Images != nil {
		updated.Images = cloneImages(*in.Images)
	}
	if in.Status != nil {
		st := Status(strings.ToLower(strings.TrimSpace(*in.Status)))
		if !st.Valid() {
			return Listing{}, ErrInvalidStatus
		}
		updated.Status = st
	}

	updated.ID = current.ID
	updated.OwnerID = current.OwnerID
	updated.UpdatedAt = s.now().UTC()

	if err := s.repo.Save(ctx, updated); err != nil {
		return Listing{}, apperr.Internal("update listing", err)
	}

	s.log.Info("listing updated", map[string]any{"pet_id": id, "by": caller.ID})
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string, caller users.Profile) error {
	if err := users.RequireUser(caller, ""); err != nil {
		return err
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !canMutate(current, caller) {
		return apperr.Forbidden("Forbidden - you can only delete your own listings")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrPetNotFound
		}
		return apperr.Internal("delete listing", err)
	}

	s.log.Info("listing deleted", map[string]any{"pet_id": id, "by": caller.ID})
	return nil
}

// canMutate: dueño o admin, siempre contra el aviso guardado.
func canMutate(l Listing, caller users.Profile) bool {
	if caller.IsAnonymous() {
		return false
	}
	return l.OwnerID == caller.ID || caller.IsAdmin()
}

func (s *Service) load(ctx context.Context, id string) (Listing, error) {
	if strings.TrimSpace(id) == "" {
		return Listing{}, ErrPetNotFound
	}
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Listing{}, ErrPetNotFound
		}
		return Listing{}, apperr.Internal("load listing", err)
	}
	return l, nil
}

func cloneImages(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
