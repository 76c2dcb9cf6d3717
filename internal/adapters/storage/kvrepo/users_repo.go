package kvrepo

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"pet-marketplace/internal/domain/users"
	"pet-marketplace/internal/ports/kv"
)

type userRecord struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type userRepo struct {
	store kv.Store
}

func NewUserRepo(store kv.Store) users.Repository {
	return &userRepo{store: store}
}

func (r *userRepo) Save(ctx context.Context, p users.Profile) error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("user id required")
	}
	return kv.SetJSON(ctx, r.store, kv.UserKey(p.ID), userRecord{
		ID:        p.ID,
		Email:     p.Email,
		Name:      p.Name,
		Role:      string(p.Role),
		CreatedAt: p.CreatedAt,
	})
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.Profile, error) {
	if strings.TrimSpace(id) == "" {
		return users.Profile{}, users.ErrNotFound
	}
	var rec userRecord
	if err := kv.GetJSON(ctx, r.store, kv.UserKey(id), &rec); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return users.Profile{}, users.ErrNotFound
		}
		return users.Profile{}, err
	}
	return rec.toDomain(), nil
}

func (r *userRepo) List(ctx context.Context) ([]users.Profile, error) {
	entries, err := r.store.ScanPrefix(ctx, kv.PrefixUser)
	if err != nil {
		return nil, err
	}
	out := make([]users.Profile, 0, len(entries))
	for _, e := range entries {
		var rec userRecord
		if err := json.Unmarshal(e.Value, &rec); err != nil {
			continue
		}
		out = append(out, rec.toDomain())
	}
	return out, nil
}

func (rec userRecord) toDomain() users.Profile {
	// Roles desconocidos se tratan como user.
	role, ok := users.ParseRole(rec.Role)
	if !ok {
		role = users.RoleUser
	}
	return users.Profile{
		ID:        rec.ID,
		Email:     rec.Email,
		Name:      rec.Name,
		Role:      role,
		CreatedAt: rec.CreatedAt,
	}
}
