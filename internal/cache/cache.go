package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"line-translator/internal/textutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
)

// DB is the subset of *pgxpool.Pool the cache uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schema = `
CREATE TABLE IF NOT EXISTS translation_cache (
	hash       TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	translated TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const upsertSQL = `
INSERT INTO translation_cache (hash, source, translated)
VALUES ($1, $2, $3)
ON CONFLICT (hash) DO UPDATE
SET source = EXCLUDED.source, translated = EXCLUDED.translated, updated_at = now()`

// TranslationCache provides in-memory + PostgreSQL-backed caching for translations.
type TranslationCache struct {
	db     DB
	mu     sync.RWMutex
	memory map[string]string // hash → translated text
}

// NewTranslationCache creates a new cache backed by PostgreSQL.
func NewTranslationCache(db DB) *TranslationCache {
	return &TranslationCache{
		db:     db,
		memory: make(map[string]string),
	}
}

// EnsureSchema creates the cache table if it does not exist.
func (c *TranslationCache) EnsureSchema(ctx context.Context) error {
	if _, err := c.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create cache table: %w", err)
	}
	return nil
}

// Get retrieves a cached translation. Returns empty string and false if not found.
func (c *TranslationCache) Get(ctx context.Context, sourceText string) (string, bool) {
	hash := textutil.Hash(sourceText)

	c.mu.RLock()
	if v, ok := c.memory[hash]; ok {
		c.mu.RUnlock()
		return v, true
	}
	c.mu.RUnlock()

	var translated string
	err := c.db.QueryRow(ctx, `SELECT translated FROM translation_cache WHERE hash = $1`, hash).Scan(&translated)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Debug().Err(err).Msg("Cache lookup failed")
		}
		return "", false
	}

	c.mu.Lock()
	c.memory[hash] = translated
	c.mu.Unlock()

	return translated, true
}

// Set stores a translation in both in-memory and PostgreSQL cache.
func (c *TranslationCache) Set(ctx context.Context, sourceText, translated string) error {
	hash := textutil.Hash(sourceText)

	c.mu.Lock()
	c.memory[hash] = translated
	c.mu.Unlock()

	if _, err := c.db.Exec(ctx, upsertSQL, hash, sourceText, translated); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}

	return nil
}

// Preload loads all cached translations into memory.
func (c *TranslationCache) Preload(ctx context.Context) error {
	rows, err := c.db.Query(ctx, `SELECT hash, translated FROM translation_cache`)
	if err != nil {
		return fmt.Errorf("preload cache: %w", err)
	}
	defer rows.Close()

	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for rows.Next() {
		var hash, translated string
		if err := rows.Scan(&hash, &translated); err != nil {
			return fmt.Errorf("scan cache row: %w", err)
		}
		c.memory[hash] = translated
		count++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("preload cache: %w", err)
	}

	log.Info().Int("count", count).Msg("Preloaded translation cache")
	return nil
}

// Len reports how many translations are held in memory.
func (c *TranslationCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.memory)
}
