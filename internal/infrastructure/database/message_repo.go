package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"gloss/internal/domain/entities"
	"gloss/internal/ports/output"
)

var _ output.MessageRepository = (*MessageRepository)(nil)

const (
	listMessagesSQL = `SELECT locale, key, value, updated_at FROM messages ORDER BY locale, key`

	listMessagesByLocaleSQL = `SELECT locale, key, value, updated_at FROM messages WHERE locale = $1 ORDER BY key`

	saveMessageSQL = `INSERT INTO messages (locale, key, value)
VALUES ($1, $2, $3)
ON CONFLICT (locale, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
RETURNING updated_at`
)

// DBTX is the subset of *pgxpool.Pool used by the repository.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// MessageRepository implements output.MessageRepository using pgx.
type MessageRepository struct {
	db DBTX
}

// NewMessageRepository creates a MessageRepository.
func NewMessageRepository(db DBTX) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) ListMessages(ctx context.Context) ([]entities.Message, error) {
	return r.list(ctx, listMessagesSQL)
}

func (r *MessageRepository) ListMessagesByLocale(ctx context.Context, locale string) ([]entities.Message, error) {
	return r.list(ctx, listMessagesByLocaleSQL, locale)
}

func (r *MessageRepository) SaveMessage(ctx context.Context, msg *entities.Message) error {
	var updatedAt pgtype.Timestamptz
	if err := r.db.QueryRow(ctx, saveMessageSQL, msg.Locale, msg.Key, msg.Value).Scan(&updatedAt); err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	msg.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return nil
}

func (r *MessageRepository) list(ctx context.Context, sql string, args ...any) ([]entities.Message, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[messageRow])
	if err != nil {
		return nil, fmt.Errorf("scan messages: %w", err)
	}
	return messagesToDomain(out), nil
}
