package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"conferencecaptions/internal/model"
)

const createSQLiteCaptionTable = `
CREATE TABLE IF NOT EXISTS caption (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	theme TEXT NOT NULL DEFAULT '',
	audience TEXT NOT NULL DEFAULT '',
	date TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	speakers TEXT NOT NULL DEFAULT '',
	tone TEXT NOT NULL DEFAULT '',
	captions TEXT NOT NULL,
	created_at DATETIME NOT NULL
)`

const createSQLiteCaptionIndex = `CREATE INDEX IF NOT EXISTS caption_key_idx ON caption (theme, audience, date, tone)`

// CaptionSQLiteRepository stores captions as a JSON array column. Meant for
// local development and single-node installs.
type CaptionSQLiteRepository struct {
	db *sql.DB
}

func NewCaptionSQLiteRepository(db *sql.DB) *CaptionSQLiteRepository {
	return &CaptionSQLiteRepository{db: db}
}

func (r *CaptionSQLiteRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range []string{createSQLiteCaptionTable, createSQLiteCaptionIndex} {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate caption table: %w", err)
		}
	}
	return nil
}

func (r *CaptionSQLiteRepository) FindOne(ctx context.Context, key model.CaptionKey) (*model.Caption, error) {
	var c model.Caption
	var id int64
	var captionsJSON string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, theme, audience, date, location, speakers, tone, captions, created_at
		FROM caption
		WHERE theme = ? AND audience = ? AND date = ? AND tone = ?
		ORDER BY id ASC
		LIMIT 1
	`, key.Theme, key.Audience, key.Date, key.Tone).Scan(
		&id, &c.Theme, &c.Audience, &c.Date, &c.Location, &c.Speakers, &c.Tone,
		&captionsJSON, &c.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(captionsJSON), &c.Captions); err != nil {
		return nil, fmt.Errorf("decode captions for id %d: %w", id, err)
	}

	c.ID = strconv.FormatInt(id, 10)
	c.UpdatedAt = c.CreatedAt
	return &c, nil
}

func (r *CaptionSQLiteRepository) Create(ctx context.Context, caption *model.Caption) error {
	captionsJSON, err := json.Marshal(caption.Captions)
	if err != nil {
		return err
	}

	createdAt := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO caption(theme, audience, date, location, speakers, tone, captions, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`, caption.Theme, caption.Audience, caption.Date, caption.Location, caption.Speakers, caption.Tone,
		string(captionsJSON), createdAt)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	caption.ID = strconv.FormatInt(id, 10)
	caption.CreatedAt = createdAt
	caption.UpdatedAt = createdAt
	return nil
}

func (r *CaptionSQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
