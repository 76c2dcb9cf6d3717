package messages

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
	ErrMissingFields    = apperr.BadRequest("Pet ID, recipient ID, and message content are required")
	ErrInvalidRecipient = apperr.BadRequest("Invalid recipient ID")
)

// ProfileLookup resuelve el perfil del otro participante en el listado.
type ProfileLookup interface {
	GetByID(ctx context.Context, id string) (users.Profile, error)
}

type Service struct {
	repo     Repository
	profiles ProfileLookup
	log      logger.Logger
	now      func() time.Time

	// threads serializa el read-modify-write del índice por par (no entre procesos).
	threads *keyedMutex
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
		threads:  newKeyedMutex(),
	}
}

type SendInput struct {
	PetID       string
	RecipientID string
	Content     string
}

// Send guarda el mensaje y lo agrega al hilo del par canónico {sender, recipient}.
// El mensaje se persiste antes que el índice: si falla el append, el mensaje existe pero no aparece en el hilo.
func (s *Service) Send(ctx context.Context, sender users.Profile, in SendInput) (Message, error) {
	if err := users.RequireUser(sender, "Unauthorized - please sign in to send messages"); err != nil {
		return Message{}, err
	}
	if strings.TrimSpace(in.PetID) == "" || strings.TrimSpace(in.RecipientID) == "" || strings.TrimSpace(in.Content) == "" {
		return Message{}, ErrMissingFields
	}
	// ':' separa los participantes en la key de conversación.
	if strings.Contains(in.RecipientID, ":") {
		return Message{}, ErrInvalidRecipient
	}

	m := Message{
		ID:          uuid.NewString(),
		PetID:       in.PetID,
		SenderID:    sender.ID,
		RecipientID: in.RecipientID,
		Content:     in.Content,
		Read:        false,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.SaveMessage(ctx, m); err != nil {
		return Message{}, apperr.Internal("save message", err)
	}

	pair := NewPair(sender.ID, in.RecipientID)
	if err := s.appendToThread(ctx, pair, m.ID); err != nil {
		return Message{}, apperr.Internal("append to conversation", err)
	}

	s.log.Info("message sent", map[string]any{
		"message_id":   m.ID,
		"sender_id":    m.SenderID,
		"recipient_id": m.RecipientID,
	})
	return m, nil
}

func (s *Service) appendToThread(ctx context.Context, pair Pair, id string) error {
	unlock := s.threads.Lock(pair.A + "\x00" + pair.B)
	defer unlock()

	ids, err := s.repo.GetThread(ctx, pair)
	if err != nil {
		return err
	}
	next := make([]string, 0, len(ids)+1)
	next = append(next, ids...)
	next = append(next, id)
	return s.repo.SaveThread(ctx, pair, next)
}

// GetThread devuelve los mensajes entre caller y otherUserID en orden cronológico ascendente.
// Ids que no resuelven se descartan.
func (s *Service) GetThread(ctx context.Context, caller users.Profile, otherUserID string) ([]Message, error) {
	if err := users.RequireUser(caller, ""); err != nil {
		return nil, err
	}

	ids, err := s.repo.GetThread(ctx, NewPair(caller.ID, otherUserID))
	if err != nil {
		return nil, apperr.Internal("load conversation", err)
	}

	out := make([]Message, 0, len(ids))
	for _, id := range ids {
		m, err := s.repo.GetMessage(ctx, id)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				s.log.Warn("message lookup failed", map[string]any{"message_id": id, "err": err})
			}
			continue
		}
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// ListConversations escanea todo el índice y devuelve los hilos donde participa el caller.
// UnreadCount es siempre 0: el flag read no se actualiza en ningún lado.
func (s *Service) ListConversations(ctx context.Context, caller users.Profile) ([]Summary, error) {
	if err := users.RequireUser(caller, ""); err != nil {
		return nil, err
	}

	threads, err := s.repo.ListThreads(ctx)
	if err != nil {
		return nil, apperr.Internal("list conversations", err)
	}

	out := make([]Summary, 0)
	for _, t := range threads {
		other, ok := t.Pair.Other(caller.ID)
		if !ok {
			continue
		}

		sum := Summary{OtherUserID: other, UnreadCount: 0}

		if s.profiles != nil {
			if p, err := s.profiles.GetByID(ctx, other); err == nil {
				sum.OtherUser = &p
			} else if !errors.Is(err, users.ErrNotFound) {
				s.log.Warn("profile lookup failed", map[string]any{"user_id": other, "err": err})
			}
		}

		if n := len(t.MessageIDs); n > 0 {
			if m, err := s.repo.GetMessage(ctx, t.MessageIDs[n-1]); err == nil {
				sum.LastMessage = &m
			} else if !errors.Is(err, ErrNotFound) {
				s.log.Warn("message lookup failed", map[string]any{"message_id": t.MessageIDs[n-1], "err": err})
			}
		}

		out = append(out, sum)
	}
	return out, nil
}
