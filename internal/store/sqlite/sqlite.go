// Package sqlite is the durable Backend: a pure-Go (no cgo) SQLite-backed
// implementation of the Relation Store, Membership Store, tag registry,
// and tag set registry contracts, behind a single serializable
// transaction.
//
// Grounded on internal/storage/ephemeral/store.go's sql.Open + WAL
// pragma + single-connection-pool + schema-as-SQL-string pattern; the
// schema and scan code are rewritten entirely for the tag/relation
// domain.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/taggsonomy/tagengine/internal/membership"
	"github.com/taggsonomy/tagengine/internal/relation"
	"github.com/taggsonomy/tagengine/internal/resolver"
	"github.com/taggsonomy/tagengine/internal/store"
)

// Store is the sqlite-backed store.Backend. The connection pool is
// capped at one connection, so only one *sql.Tx can ever be open at a
// time; RunInTransaction tracks that transaction on the Store itself
// (txMu/tx below) rather than through the request context, because the
// resolver.Registry/relation.Store/membership.Store views it hands
// out are the spec's plain, context-free interfaces and have no ctx
// parameter to carry a transaction through. Looking the active
// transaction up via context would require those call sites to
// fabricate their own context.Background() and miss it, which would
// send the call back through s.db and block forever trying to check
// out a second connection from a pool that only has one.
type Store struct {
	db *sql.DB

	writeMu sync.Mutex   // serializes RunInTransaction bodies
	txMu    sync.RWMutex // guards tx against concurrent q() reads
	tx      *sql.Tx
}

var _ store.Backend = (*Store)(nil)

// Open opens (creating if necessary) a SQLite database at dbPath and
// applies the schema. Connection bootstrap is retried with exponential
// backoff (cenkalti/backoff/v4) since the file may briefly be locked by
// another process opening it at the same time; once open, no Consistency
// Engine mutation primitive retries — spec.md §7 forbids that.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)&_pragma=foreign_keys(1)&_txlock=immediate", dbPath)

	var db *sql.DB
	open := func() error {
		var err error
		db, err = sql.Open("sqlite3", dsn)
		if err != nil {
			return err
		}
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		return db.PingContext(ctx)
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx)
	if err := backoff.Retry(open, bo); err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", dbPath, err)
	}

	s := &Store{db: db}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: init schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec schema statement: %w\nSQL: %s", err, stmt)
		}
	}
	return tx.Commit()
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// RunInTransaction opens a BEGIN IMMEDIATE, serializable-for-practical-
// purposes transaction (SQLite has exactly one writer at a time under
// WAL), runs fn, and commits on success or rolls back on error or
// panic. writeMu serializes the whole call so that the single active
// *sql.Tx recorded on s.tx is never ambiguous, and so two goroutines
// never both try to check out the one-connection pool's connection at
// once.
func (s *Store) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("sqlite: begin transaction: %w", err)
	}

	s.txMu.Lock()
	s.tx = tx
	s.txMu.Unlock()
	defer func() {
		s.txMu.Lock()
		s.tx = nil
		s.txMu.Unlock()
	}()

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(ctx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	committed = true
	return nil
}

// Registry returns the tag registry view of this store.
func (s *Store) Registry() resolver.Registry { return (*tagRegistry)(s) }

// Relations returns the Relation Store view of this store.
func (s *Store) Relations() relation.Store { return (*relationStore)(s) }

// Memberships returns the Membership Store view of this store.
func (s *Store) Memberships() membership.Store { return (*membershipStore)(s) }

// TagSets returns the tag set registry view of this store.
func (s *Store) TagSets() store.TagSetStore { return (*tagSetStore)(s) }

// querier abstracts over *sql.DB and *sql.Tx so read paths work whether
// or not they're called from inside RunInTransaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// q returns the active transaction if RunInTransaction is in progress
// on this Store, or the bare *sql.DB otherwise. The views' methods
// (tagRegistry.Create and its siblings) implement the context-free
// resolver.Registry/relation.Store/membership.Store interfaces and so
// have no context of their own to carry a transaction through; q looks
// the transaction up on the Store itself instead, which is what makes
// it visible to those call sites regardless of which context they pass
// to the querier they get back.
func (s *Store) q() querier {
	s.txMu.RLock()
	tx := s.tx
	s.txMu.RUnlock()
	if tx != nil {
		return tx
	}
	return s.db
}

// backgroundCtx is used by the Registry/Relations/Memberships views'
// methods that don't take a context (they implement the plain,
// context-free interfaces internal/resolver, internal/relation, and
// internal/membership define for the in-memory stores). It only
// supplies the context.Context parameter database/sql's ExecContext/
// QueryContext calls require; which connection or transaction those
// calls run against is decided by q, not by this context, matching the
// teacher's `db.ExecContext(context.Background(), ...)` convention for
// the context-free halves of ephemeral.Store.
func backgroundCtx() context.Context {
	return context.Background()
}
