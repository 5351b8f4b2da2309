package output

import (
	"context"

	"gloss/internal/domain/entities"
)

// MessageRepository is a persistent source of catalog entries.
type MessageRepository interface {
	ListMessages(ctx context.Context) ([]entities.Message, error)
	ListMessagesByLocale(ctx context.Context, locale string) ([]entities.Message, error)
	SaveMessage(ctx context.Context, msg *entities.Message) error
}
