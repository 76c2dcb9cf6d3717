// Package seed crea las cuentas demo (y avisos de ejemplo) para desarrollo.
package seed

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-marketplace/internal/domain/pets"
	"pet-marketplace/internal/domain/users"
	"pet-marketplace/internal/platform/logger"
)

type Service struct {
	users   *users.Service
	pets    *pets.Service
	fixture Fixture
	log     logger.Logger

	mu sync.Mutex
}

func NewService(usersSvc *users.Service, petsSvc *pets.Service, fixture Fixture, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewDiscard()
	}
	return &Service{
		users:   usersSvc,
		pets:    petsSvc,
		fixture: fixture,
		log:     log,
	}
}

type Result struct {
	Accounts []Account
	Created  []string
	Skipped  []string
	Listings int
}

// Run es idempotente: las cuentas ya registradas se saltean y sus avisos no se duplican.
func (s *Service) Run(ctx context.Context) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := Result{Accounts: s.fixture.Accounts}
	created := map[string]users.Profile{}

	for _, a := range s.fixture.Accounts {
		p, err := s.users.SignUp(ctx, users.SignUpInput{
			Email:    a.Email,
			Password: a.Password,
			Name:     a.Name,
			Role:     a.Role,
		})
		if err != nil {
			if errors.Is(err, users.ErrAlreadyRegistered) {
				res.Skipped = append(res.Skipped, a.Email)
				continue
			}
			return res, err
		}
		created[strings.ToLower(strings.TrimSpace(a.Email))] = p
		res.Created = append(res.Created, a.Email)
	}

	for _, l := range s.fixture.Listings {
		owner, ok := created[strings.ToLower(strings.TrimSpace(l.Owner))]
		if !ok {
			continue
		}
		if _, err := s.pets.Create(ctx, owner, l.input()); err != nil {
			return res, err
		}
		res.Listings++
	}

	s.log.Info("seed completed", map[string]any{
		"created":  len(res.Created),
		"skipped":  len(res.Skipped),
		"listings": res.Listings,
	})
	return res, nil
}
