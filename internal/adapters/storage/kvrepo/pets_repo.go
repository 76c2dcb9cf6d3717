package kvrepo

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"pet-marketplace/internal/domain/pets"
	"pet-marketplace/internal/ports/kv"
)

type petRecord struct {
	ID          string         `json:"id"`
	OwnerID     string         `json:"ownerId"`
	OwnerEmail  string         `json:"ownerEmail"`
	Name        string         `json:"name"`
	Breed       string         `json:"breed"`
	Category    string         `json:"category"`
	Age         pets.FlexValue `json:"age,omitzero"`
	Price       pets.FlexValue `json:"price,omitzero"`
	Location    string         `json:"location"`
	Description string         `json:"description"`
	HealthInfo  string         `json:"healthInfo"`
	Images      []string       `json:"images"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type petRepo struct {
	store kv.Store
}

func NewPetRepo(store kv.Store) pets.Repository {
	return &petRepo{store: store}
}

func (r *petRepo) Save(ctx context.Context, l pets.Listing) error {
	if strings.TrimSpace(l.ID) == "" {
		return errors.New("pet id required")
	}
	return kv.SetJSON(ctx, r.store, kv.PetKey(l.ID), petRecord{
		ID:          l.ID,
		OwnerID:     l.OwnerID,
		OwnerEmail:  l.OwnerEmail,
		Name:        l.Name,
		Breed:       l.Breed,
		Category:    l.Category,
		Age:         l.Age,
		Price:       l.Price,
		Location:    l.Location,
		Description: l.Description,
		HealthInfo:  l.HealthInfo,
		Images:      l.Images,
		Status:      string(l.Status),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	})
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Listing, error) {
	var rec petRecord
	if err := kv.GetJSON(ctx, r.store, kv.PetKey(id), &rec); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return pets.Listing{}, pets.ErrNotFound
		}
		return pets.Listing{}, err
	}
	return rec.toDomain(), nil
}

func (r *petRepo) List(ctx context.Context) ([]pets.Listing, error) {
	entries, err := r.store.ScanPrefix(ctx, kv.PrefixPet)
	if err != nil {
		return nil, err
	}
	out := make([]pets.Listing, 0, len(entries))
	for _, e := range entries {
		var rec petRecord
		if err := json.Unmarshal(e.Value, &rec); err != nil {
			continue
		}
		out = append(out, rec.toDomain())
	}
	return out, nil
}

func (r *petRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.store.Get(ctx, kv.PetKey(id)); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return pets.ErrNotFound
		}
		return err
	}
	return r.store.Delete(ctx, kv.PetKey(id))
}

func (rec petRecord) toDomain() pets.Listing {
	return pets.Listing{
		ID:          rec.ID,
		OwnerID:     rec.OwnerID,
		OwnerEmail:  rec.OwnerEmail,
		Name:        rec.Name,
		Breed:       rec.Breed,
		Category:    rec.Category,
		Age:         rec.Age,
		Price:       rec.Price,
		Location:    rec.Location,
		Description: rec.Description,
		HealthInfo:  rec.HealthInfo,
		Images:      rec.Images,
		Status:      pets.Status(rec.Status),
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}
