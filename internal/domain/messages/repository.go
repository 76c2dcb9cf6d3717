package messages

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("message not found")

type Repository interface {
	SaveMessage(ctx context.Context, m Message) error
	GetMessage(ctx context.Context, id string) (Message, error)

	// GetThread devuelve nil (sin error) si el par todavía no tiene índice.
	GetThread(ctx context.Context, p Pair) ([]string, error)
	SaveThread(ctx context.Context, p Pair, ids []string) error
	// ListThreads hace el scan completo de conversation:*.
	ListThreads(ctx context.Context) ([]Thread, error)
}
