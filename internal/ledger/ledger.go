package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// Ledger is the durable collection of named id sets that records crawl
// progress and deduplication state. It keeps an in-memory mirror of every
// set for fast membership tests and persists each mutation before
// acknowledging it to the caller.
type Ledger struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string

	// mu serializes all mutations and guards the in-memory mirrors.
	mu sync.Mutex

	// sets mirrors the durable state for membership tests and snapshots.
	sets map[Set]map[string]struct{}

	// logger is used for load/reconstruction logging.
	logger *slog.Logger
}

// Options configures Ledger behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	// When false, opening a missing ledger is an error; the status command
	// uses this to avoid creating an empty ledger by accident.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better write performance.
	EnableWAL bool

	// Logger receives load and reconstruction messages.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns the default ledger options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a Ledger at the specified directory and loads every
// named set into memory. A brand-new database simply yields empty sets;
// missing storage is not an error on first run.
func Open(dir string, opts Options) (*Ledger, error) {
	dbPath := filepath.Join(dir, "playcrawl.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("ledger not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check ledger path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create ledger directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw refuses to create new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}

	// SQLite only supports one writer; a single pooled connection also keeps
	// the mutex the only serialization point we have to reason about.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	l := &Ledger{
		db:     db,
		dbPath: dbPath,
		sets:   make(map[Set]map[string]struct{}, len(Sets)),
		logger: opts.Logger,
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := l.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	if err := l.Load(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return l, nil
}

// Close closes the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Path returns the path of the backing database file.
func (l *Ledger) Path() string {
	return l.dbPath
}

// createTables creates the ledger schema if it doesn't exist.
func (l *Ledger) createTables() error {
	schema := `
	-- One row per (set, id) membership. The primary key makes inserts
	-- naturally idempotent via INSERT OR IGNORE.
	CREATE TABLE IF NOT EXISTS ledger (
		set_name TEXT NOT NULL,
		id TEXT NOT NULL,
		PRIMARY KEY (set_name, id)
	);

	CREATE INDEX IF NOT EXISTS idx_ledger_set ON ledger(set_name);
	`

	_, err := l.db.ExecContext(context.Background(), schema)
	return err
}

// Load reconstructs every named set from durable storage, replacing the
// in-memory mirrors. Sets that have no rows yet initialize to empty; that
// is the expected state on a first run and is logged rather than treated
// as an error.
func (l *Ledger) Load(ctx context.Context) error {
	rows, err := l.db.QueryContext(ctx, "SELECT set_name, id FROM ledger")
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}
	defer rows.Close()

	loaded := make(map[Set]map[string]struct{}, len(Sets))
	for _, set := range Sets {
		loaded[set] = make(map[string]struct{})
	}

	for rows.Next() {
		var name, id string
		if err := rows.Scan(&name, &id); err != nil {
			return fmt.Errorf("failed to scan ledger row: %w", err)
		}
		set := Set(name)
		if _, ok := loaded[set]; !ok {
			// Rows written by a newer version with extra sets; keep them so
			// a later Load never loses state, but do not invent Set names.
			loaded[set] = make(map[string]struct{})
		}
		loaded[set][id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read ledger rows: %w", err)
	}

	l.mu.Lock()
	l.sets = loaded
	l.mu.Unlock()

	for _, set := range Sets {
		if len(loaded[set]) == 0 {
			l.logger.Info("ledger set is empty, starting fresh", "set", string(set))
			continue
		}
		l.logger.Info("ledger set loaded", "set", string(set), "size", len(loaded[set]))
	}

	return nil
}

// Contains reports whether id is a member of the named set.
func (l *Ledger) Contains(set Set, id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.sets[set][id]
	return ok
}

// Add inserts id into the named set. The call is idempotent: adding a
// present id is a no-op. The insert is persisted before the in-memory
// mirror is updated, so a persistence failure is never observable as
// success and leaves memory matching disk.
func (l *Ledger) Add(ctx context.Context, set Set, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.sets[set][id]; ok {
		return nil
	}

	if _, err := l.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO ledger (set_name, id) VALUES (?, ?)",
		string(set), id,
	); err != nil {
		return fmt.Errorf("failed to persist %s member: %w", set, err)
	}

	if l.sets[set] == nil {
		l.sets[set] = make(map[string]struct{})
	}
	l.sets[set][id] = struct{}{}
	return nil
}

// Remove deletes id from the named set. Removing an absent id is a no-op.
func (l *Ledger) Remove(ctx context.Context, set Set, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.sets[set][id]; !ok {
		return nil
	}

	if _, err := l.db.ExecContext(ctx,
		"DELETE FROM ledger WHERE set_name = ? AND id = ?",
		string(set), id,
	); err != nil {
		return fmt.Errorf("failed to remove %s member: %w", set, err)
	}

	delete(l.sets[set], id)
	return nil
}

// Move transfers id from one named set to another in a single transaction.
// This is the pending-to-done transition: after Move returns, the id is a
// member of exactly one of the two sets both on disk and in memory.
func (l *Ledger) Move(ctx context.Context, from, to Set, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin move: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM ledger WHERE set_name = ? AND id = ?",
		string(from), id,
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to remove %s member: %w", from, err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO ledger (set_name, id) VALUES (?, ?)",
		string(to), id,
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to persist %s member: %w", to, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit move: %w", err)
	}

	delete(l.sets[from], id)
	if l.sets[to] == nil {
		l.sets[to] = make(map[string]struct{})
	}
	l.sets[to][id] = struct{}{}
	return nil
}

// Snapshot returns a copy of the named set's members. Callers dispatching
// concurrent work over a frontier must iterate the snapshot, never the live
// set: tasks mutate the set while they run.
func (l *Ledger) Snapshot(set Set) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make([]string, 0, len(l.sets[set]))
	for id := range l.sets[set] {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of members in the named set.
func (l *Ledger) Len(set Set) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.sets[set])
}

// Counts returns the size of every named set.
func (l *Ledger) Counts() map[Set]int {
	l.mu.Lock()
	defer l.mu.Unlock()

	counts := make(map[Set]int, len(Sets))
	for _, set := range Sets {
		counts[set] = len(l.sets[set])
	}
	return counts
}
