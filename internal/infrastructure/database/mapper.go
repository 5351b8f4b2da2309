package database

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"gloss/internal/domain/entities"
)

// messageRow mirrors a row of the messages table.
type messageRow struct {
	Locale    string             `db:"locale"`
	Key       string             `db:"key"`
	Value     string             `db:"value"`
	UpdatedAt pgtype.Timestamptz `db:"updated_at"`
}

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

func messageToDomain(r messageRow) entities.Message {
	return entities.Message{
		Locale:    r.Locale,
		Key:       r.Key,
		Value:     r.Value,
		UpdatedAt: pgtypeTimestamptzToTime(r.UpdatedAt),
	}
}

func messagesToDomain(rows []messageRow) []entities.Message {
	out := make([]entities.Message, len(rows))
	for i := range rows {
		out[i] = messageToDomain(rows[i])
	}
	return out
}
