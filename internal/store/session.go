package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	_ "modernc.org/sqlite"
)

// sessionKeyViewed is the single persisted flag: has the message ever been viewed.
const sessionKeyViewed = "messageViewed"

type Session struct {
	MessageViewed bool `json:"messageViewed"`
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// busy_timeout helps when a second terminal runs `heartnote status` mid-write.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// LoadSession reads the persisted flag. A fresh store reports an unviewed message.
func (s Store) LoadSession(ctx context.Context) (Session, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return Session{}, err
	}
	defer db.Close()

	var v string
	err = db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = ?`, sessionKeyViewed).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, err
	}
	viewed, err := strconv.ParseBool(v)
	if err != nil {
		// Best-effort; an unreadable flag counts as unset.
		return Session{}, nil
	}
	return Session{MessageViewed: viewed}, nil
}

// MarkViewed sets the flag. Writing it again is harmless; it is never cleared.
func (s Store) MarkViewed(ctx context.Context) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, sessionKeyViewed, strconv.FormatBool(true))
	return err
}
