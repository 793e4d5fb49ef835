package chat

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
)

const journalSchema = `
	CREATE TABLE IF NOT EXISTS chat_exchanges (
		id           BIGSERIAL PRIMARY KEY,
		request_id   TEXT NOT NULL,
		language     TEXT NOT NULL,
		path         TEXT NOT NULL,
		confidence   TEXT,
		reliability  DOUBLE PRECISION,
		violations   TEXT[] NOT NULL DEFAULT '{}',
		retranslated BOOLEAN NOT NULL DEFAULT FALSE,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

type PostgresJournal struct {
	db *sql.DB
}

func NewJournal(db *sql.DB) *PostgresJournal {
	return &PostgresJournal{db: db}
}

func (j *PostgresJournal) EnsureSchema(ctx context.Context) error {
	_, err := j.db.ExecContext(ctx, journalSchema)
	return err
}

func (j *PostgresJournal) Record(ctx context.Context, ex Exchange) error {
	var confidence sql.NullString
	if ex.Confidence != "" {
		confidence = sql.NullString{String: ex.Confidence, Valid: true}
	}
	var reliability sql.NullFloat64
	if ex.Reliability != nil {
		reliability = sql.NullFloat64{Float64: *ex.Reliability, Valid: true}
	}
	violations := ex.Violations
	if violations == nil {
		violations = []string{}
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO chat_exchanges (request_id, language, path, confidence, reliability, violations, retranslated)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		ex.RequestID,
		string(ex.Language),
		string(ex.Path),
		confidence,
		reliability,
		pq.Array(violations),
		ex.Retranslated,
	)
	return err
}

// NoopJournal is used when no database is configured.
type NoopJournal struct{}

func (NoopJournal) Record(context.Context, Exchange) error { return nil }
