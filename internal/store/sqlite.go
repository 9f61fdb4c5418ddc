// SQLite persistence for the daily game: users, session snapshots,
// and completed results. Also applies embedded schema migrations on
// startup (idempotent, recorded in _migrations).

package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"quintle/internal/game"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("store: not found")

// Store wraps the SQLite handle.
type Store struct {
	db *sql.DB
}

// Open opens (creating if missing) the SQLite database at dsn with
// busy timeout, WAL journaling, and foreign keys enabled.
func Open(dsn string) (*Store, error) {
	if dir := filepath.Dir(dsn); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Migrate applies the embedded *.sql files in lexical order, skipping
// ones already recorded in _migrations.
func (s *Store) Migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		var done int
		err := s.db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, name).Scan(&done)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", name, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", name, err)
		}
		log.Info().Str("migration", name).Msg("applied")
	}
	return nil
}

/* ------------------------------- snapshots ------------------------------- */

// SaveSnapshot upserts the session snapshot for an owner and date.
func (s *Store) SaveSnapshot(ctx context.Context, ownerID string, snap game.Snapshot) error {
	blob, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO sessions (owner_id, date, day_index, snapshot, updated_at)
        VALUES (?,?,?,?,?)
        ON CONFLICT(owner_id, date) DO UPDATE SET
            snapshot=excluded.snapshot, updated_at=excluded.updated_at`,
		ownerID, snap.Date, snap.DayIndex, string(blob), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// LoadSnapshot fetches the snapshot for an owner and date.
// Returns ErrNotFound when none exists; staleness is for the caller
// to judge against today's date key.
func (s *Store) LoadSnapshot(ctx context.Context, ownerID, date string) (game.Snapshot, error) {
	var blob string
	err := s.db.QueryRowContext(ctx,
		`SELECT snapshot FROM sessions WHERE owner_id=? AND date=?`,
		ownerID, date,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return game.Snapshot{}, err
	}
	var snap game.Snapshot
	if err := json.Unmarshal([]byte(blob), &snap); err != nil {
		return game.Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return snap, nil
}

/* -------------------------------- results -------------------------------- */

// Result is a completed game, one per owner per day.
type Result struct {
	OwnerID   string `json:"ownerId"`
	Date      string `json:"date"`
	DayIndex  int    `json:"dayIndex"`
	Won       bool   `json:"won"`
	Guesses   int    `json:"guesses"`
	ElapsedMs int    `json:"elapsedMs"`
}

// LBRow is one leaderboard entry.
type LBRow struct {
	OwnerID   string `json:"ownerId"`
	Guesses   int    `json:"guesses"`
	ElapsedMs int    `json:"elapsedMs"`
}

// AlreadyPlayed reports whether the owner has a recorded result for
// the date.
func (s *Store) AlreadyPlayed(ctx context.Context, ownerID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE owner_id=? AND date=?`,
		ownerID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records a completed game. A second insert for the same
// owner and date is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	won := 0
	if r.Won {
		won = 1
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO daily_results
            (owner_id, date, day_index, won, guesses, elapsed_ms)
        VALUES (?,?,?,?,?,?)`,
		r.OwnerID, r.Date, r.DayIndex, won, r.Guesses, r.ElapsedMs,
	)
	return err
}

// Leaderboard returns the top winning results for a date, fewest
// guesses first, ties broken by time.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT owner_id, guesses, elapsed_ms
        FROM daily_results
        WHERE date=? AND won=1
        ORDER BY guesses ASC, elapsed_ms ASC, created_at ASC
        LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.OwnerID, &r.Guesses, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GuessDistribution returns, for an owner, how many wins took each
// attempt count (1..6).
func (s *Store) GuessDistribution(ctx context.Context, ownerID string) (map[int]int, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT guesses, COUNT(1)
        FROM daily_results
        WHERE owner_id=? AND won=1
        GROUP BY guesses`, ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]int)
	for rows.Next() {
		var guesses, count int
		if err := rows.Scan(&guesses, &count); err != nil {
			return nil, err
		}
		out[guesses] = count
	}
	return out, rows.Err()
}

// ClaimOwner reassigns anonymous history to a user account after
// signup or login.
func (s *Store) ClaimOwner(ctx context.Context, fromOwner, toOwner string) error {
	if fromOwner == "" || toOwner == "" {
		return nil
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE OR IGNORE daily_results SET owner_id=? WHERE owner_id=?`, toOwner, fromOwner); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE OR IGNORE sessions SET owner_id=? WHERE owner_id=?`, toOwner, fromOwner)
	return err
}

/* --------------------------------- users --------------------------------- */

// User is one account row.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	GamesPlayed  int
	Wins         int
	Streak       int
}

// CreateUser inserts a new account. The caller hashes the password.
func (s *Store) CreateUser(ctx context.Context, id, username, passwordHash string) (*User, error) {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		id, username, passwordHash, now.Format(time.RFC3339),
	)
	if err != nil {
		return nil, err
	}
	return &User{ID: id, Username: username, PasswordHash: passwordHash, CreatedAt: now}, nil
}

// UsernameTaken reports whether a username exists (case-insensitive).
func (s *Store) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM users WHERE lower(username)=lower(?)`, username).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return exists == 1, err
}

// FindUserByUsername loads a user row (case-insensitive match).
func (s *Store) FindUserByUsername(ctx context.Context, username string) (*User, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at, games_played, wins, streak
         FROM users WHERE lower(username)=lower(?)`, username))
}

// FindUserByID loads a user row by ID.
func (s *Store) FindUserByID(ctx context.Context, id string) (*User, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at, games_played, wins, streak
         FROM users WHERE id=?`, id))
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var created string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &created, &u.GamesPlayed, &u.Wins, &u.Streak); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &u, nil
}

// BumpStats increments games played and updates wins/streak for a
// finished game, in one transaction.
func (s *Store) BumpStats(ctx context.Context, userID string, won bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var gp, wins, streak int
	if err := tx.QueryRowContext(ctx,
		`SELECT games_played, wins, streak FROM users WHERE id=?`, userID,
	).Scan(&gp, &wins, &streak); err != nil {
		return err
	}
	gp++
	if won {
		wins++
		streak++
	} else {
		streak = 0
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET games_played=?, wins=?, streak=? WHERE id=?`,
		gp, wins, streak, userID); err != nil {
		return err
	}
	return tx.Commit()
}
