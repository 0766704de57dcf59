package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"conferencecaptions/internal/metrics"
	"conferencecaptions/internal/model"

	"github.com/redis/go-redis/v9"
)

const captionCachePrefix = "captions:"

// CaptionStore is the persistence contract shared by every backend.
type CaptionStore interface {
	FindOne(ctx context.Context, key model.CaptionKey) (*model.Caption, error)
	Create(ctx context.Context, caption *model.Caption) error
	Ping(ctx context.Context) error
}

type cachedCaption struct {
	ID        string    `json:"id"`
	Theme     string    `json:"theme"`
	Audience  string    `json:"audience"`
	Date      string    `json:"date"`
	Location  string    `json:"location"`
	Speakers  string    `json:"speakers"`
	Tone      string    `json:"tone"`
	Captions  []string  `json:"captions"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CachedCaptionStore fronts a CaptionStore with Redis. Redis failures are
// logged and the lookup falls through to the backing store.
type CachedCaptionStore struct {
	next  CaptionStore
	redis *redis.Client
	ttl   time.Duration
}

func NewCachedCaptionStore(next CaptionStore, client *redis.Client, ttl time.Duration) *CachedCaptionStore {
	return &CachedCaptionStore{
		next:  next,
		redis: client,
		ttl:   ttl,
	}
}

// CacheKey hashes the lookup fields with NUL separators so that field
// boundaries cannot collide.
func CacheKey(key model.CaptionKey) string {
	h := sha256.New()
	for _, part := range []string{key.Theme, key.Audience, key.Date, key.Tone} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return captionCachePrefix + hex.EncodeToString(h.Sum(nil))
}

func (s *CachedCaptionStore) FindOne(ctx context.Context, key model.CaptionKey) (*model.Caption, error) {
	cacheKey := CacheKey(key)

	data, err := s.redis.Get(ctx, cacheKey).Bytes()
	switch {
	case err == nil:
		var cached cachedCaption
		if err := json.Unmarshal(data, &cached); err == nil {
			metrics.RedisLookupsTotal.WithLabelValues("hit").Inc()
			return cached.toModel(), nil
		}
		slog.Warn("discarding undecodable cached caption", "key", cacheKey)
		metrics.RedisLookupsTotal.WithLabelValues("error").Inc()
	case errors.Is(err, redis.Nil):
		metrics.RedisLookupsTotal.WithLabelValues("miss").Inc()
	default:
		slog.Warn("redis lookup failed, using backing store", "key", cacheKey, "error", err)
		metrics.RedisLookupsTotal.WithLabelValues("error").Inc()
	}

	caption, err := s.next.FindOne(ctx, key)
	if err != nil {
		return nil, err
	}

	if caption != nil {
		s.remember(ctx, caption)
	}

	return caption, nil
}

func (s *CachedCaptionStore) Create(ctx context.Context, caption *model.Caption) error {
	if err := s.next.Create(ctx, caption); err != nil {
		return err
	}

	s.remember(ctx, caption)
	return nil
}

func (s *CachedCaptionStore) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

func (s *CachedCaptionStore) remember(ctx context.Context, caption *model.Caption) {
	data, err := json.Marshal(fromModel(caption))
	if err != nil {
		slog.Warn("error encoding caption for redis", "id", caption.ID, "error", err)
		return
	}

	key := CacheKey(caption.Key())

	if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
		slog.Warn("error writing caption to redis", "key", key, "error", err)
	}
}

func fromModel(c *model.Caption) cachedCaption {
	return cachedCaption{
		ID:        c.ID,
		Theme:     c.Theme,
		Audience:  c.Audience,
		Date:      c.Date,
		Location:  c.Location,
		Speakers:  c.Speakers,
		Tone:      c.Tone,
		Captions:  c.Captions,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (c cachedCaption) toModel() *model.Caption {
	return &model.Caption{
		ID:        c.ID,
		Theme:     c.Theme,
		Audience:  c.Audience,
		Date:      c.Date,
		Location:  c.Location,
		Speakers:  c.Speakers,
		Tone:      c.Tone,
		Captions:  c.Captions,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
