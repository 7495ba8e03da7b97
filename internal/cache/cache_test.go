package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"line-translator/internal/textutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeDB records statements and serves rows from a hash → translated map.
type fakeDB struct {
	mu    sync.Mutex
	execs []string
	rows  map[string]string
	fail  error
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return pgconn.CommandTag{}, f.fail
	}
	f.execs = append(f.execs, sql)
	if len(args) == 3 {
		f.rows[args[0].(string)] = args[2].(string)
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not supported")
}

func (f *fakeDB) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.rows[args[0].(string)]
	return fakeRow{v: v, ok: ok}
}

type fakeRow struct {
	v  string
	ok bool
}

func (r fakeRow) Scan(dest ...any) error {
	if !r.ok {
		return pgx.ErrNoRows
	}
	*dest[0].(*string) = r.v
	return nil
}

func newFake() *fakeDB { return &fakeDB{rows: make(map[string]string)} }

func TestSetAndGet(t *testing.T) {
	ctx := context.Background()
	db := newFake()
	c := NewTranslationCache(db)

	if err := c.Set(ctx, "Hello", "Bonjour"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, ok := c.Get(ctx, "Hello"); !ok || got != "Bonjour" {
		t.Errorf("got (%q, %v)", got, ok)
	}
	if db.rows[textutil.Hash("Hello")] != "Bonjour" {
		t.Error("row not upserted")
	}
	if !strings.Contains(db.execs[0], "ON CONFLICT (hash)") {
		t.Errorf("unexpected statement: %s", db.execs[0])
	}
}

func TestGet_FallsBackToDatabase(t *testing.T) {
	ctx := context.Background()
	db := newFake()
	db.rows[textutil.Hash("Sword")] = "Kiếm"
	c := NewTranslationCache(db)

	if got, ok := c.Get(ctx, "Sword"); !ok || got != "Kiếm" {
		t.Errorf("got (%q, %v)", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("expected lookup to populate memory, len=%d", c.Len())
	}
	if _, ok := c.Get(ctx, "Shield"); ok {
		t.Error("expected miss")
	}
}

func TestSet_Error(t *testing.T) {
	db := newFake()
	db.fail = errors.New("connection refused")
	err := NewTranslationCache(db).Set(context.Background(), "a", "b")
	if err == nil || !strings.Contains(err.Error(), "cache set") {
		t.Errorf("expected wrapped error, got %v", err)
	}
}

func TestEnsureSchema(t *testing.T) {
	db := newFake()
	if err := NewTranslationCache(db).EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if len(db.execs) != 1 || !strings.Contains(db.execs[0], "CREATE TABLE IF NOT EXISTS translation_cache") {
		t.Errorf("unexpected statements: %q", db.execs)
	}
}

func TestPreload_QueryError(t *testing.T) {
	if err := NewTranslationCache(newFake()).Preload(context.Background()); err == nil {
		t.Error("expected error")
	}
}
