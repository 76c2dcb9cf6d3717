package kvrepo

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"pet-marketplace/internal/domain/messages"
	"pet-marketplace/internal/ports/kv"
)

type messageRecord struct {
	ID          string    `json:"id"`
	PetID       string    `json:"petId"`
	SenderID    string    `json:"senderId"`
	RecipientID string    `json:"recipientId"`
	Content     string    `json:"content"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"createdAt"`
}

type messageRepo struct {
	store kv.Store
}

func NewMessageRepo(store kv.Store) messages.Repository {
	return &messageRepo{store: store}
}

func (r *messageRepo) SaveMessage(ctx context.Context, m messages.Message) error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("message id required")
	}
	return kv.SetJSON(ctx, r.store, kv.MessageKey(m.ID), messageRecord{
		ID:          m.ID,
		PetID:       m.PetID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		Read:        m.Read,
		CreatedAt:   m.CreatedAt,
	})
}

func (r *messageRepo) GetMessage(ctx context.Context, id string) (messages.Message, error) {
	var rec messageRecord
	if err := kv.GetJSON(ctx, r.store, kv.MessageKey(id), &rec); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return messages.Message{}, messages.ErrNotFound
		}
		return messages.Message{}, err
	}
	return messages.Message{
		ID:          rec.ID,
		PetID:       rec.PetID,
		SenderID:    rec.SenderID,
		RecipientID: rec.RecipientID,
		Content:     rec.Content,
		Read:        rec.Read,
		CreatedAt:   rec.CreatedAt,
	}, nil
}

// El valor de conversation:<a>:<b> es el array JSON de ids de mensaje.
func (r *messageRepo) GetThread(ctx context.Context, p messages.Pair) ([]string, error) {
	var ids []string
	if err := kv.GetJSON(ctx, r.store, kv.ConversationKey(p.A, p.B), &ids); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ids, nil
}

func (r *messageRepo) SaveThread(ctx context.Context, p messages.Pair, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return kv.SetJSON(ctx, r.store, kv.ConversationKey(p.A, p.B), ids)
}

func (r *messageRepo) ListThreads(ctx context.Context) ([]messages.Thread, error) {
	entries, err := r.store.ScanPrefix(ctx, kv.PrefixConversation)
	if err != nil {
		return nil, err
	}
	out := make([]messages.Thread, 0, len(entries))
	for _, e := range entries {
		a, b, ok := kv.ConversationParticipants(e.Key)
		if !ok {
			continue
		}
		var ids []string
		if err := json.Unmarshal(e.Value, &ids); err != nil {
			continue
		}
		out = append(out, messages.Thread{Pair: messages.NewPair(a, b), MessageIDs: ids})
	}
	return out, nil
}
