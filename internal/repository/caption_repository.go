package repository

import (
	"context"
	"database/sql"
	"strconv"

	"conferencecaptions/internal/model"

	"github.com/lib/pq"
)

// No unique constraint on the key columns: concurrent misses may insert
// duplicate rows, and FindOne returns the oldest.
const createCaptionTable = `
CREATE TABLE IF NOT EXISTS caption (
	id BIGSERIAL PRIMARY KEY,
	theme TEXT NOT NULL DEFAULT '',
	audience TEXT NOT NULL DEFAULT '',
	date TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	speakers TEXT NOT NULL DEFAULT '',
	tone TEXT NOT NULL DEFAULT '',
	captions TEXT[] NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS caption_key_idx ON caption (theme, audience, date, tone);
`

type CaptionRepository struct {
	db *sql.DB
}

func NewCaptionRepository(db *sql.DB) *CaptionRepository {
	return &CaptionRepository{db: db}
}

func (r *CaptionRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createCaptionTable)
	return err
}

func (r *CaptionRepository) FindOne(ctx context.Context, key model.CaptionKey) (*model.Caption, error) {
	var c model.Caption
	var id int64
	err := r.db.QueryRowContext(ctx, `
		SELECT id, theme, audience, date, location, speakers, tone, captions, created_at
		FROM caption
		WHERE theme = $1 AND audience = $2 AND date = $3 AND tone = $4
		ORDER BY id ASC
		LIMIT 1
	`, key.Theme, key.Audience, key.Date, key.Tone).Scan(
		&id, &c.Theme, &c.Audience, &c.Date, &c.Location, &c.Speakers, &c.Tone,
		pq.Array(&c.Captions), &c.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	c.ID = strconv.FormatInt(id, 10)
	c.UpdatedAt = c.CreatedAt
	return &c, nil
}

func (r *CaptionRepository) Create(ctx context.Context, caption *model.Caption) error {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO caption(theme, audience, date, location, speakers, tone, captions)
		VALUES($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, caption.Theme, caption.Audience, caption.Date, caption.Location, caption.Speakers, caption.Tone,
		pq.Array(caption.Captions)).Scan(&id, &caption.CreatedAt)

	if err != nil {
		return err
	}

	caption.ID = strconv.FormatInt(id, 10)
	caption.UpdatedAt = caption.CreatedAt
	return nil
}

func (r *CaptionRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
