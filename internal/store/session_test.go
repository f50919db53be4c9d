package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSession_FreshStoreIsUnviewed(t *testing.T) {
	t.Parallel()

	s := Store{Dir: filepath.Join(t.TempDir(), "nested", "store")}
	got, err := s.LoadSession(context.Background())
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if got.MessageViewed {
		t.Fatalf("expected fresh store to be unviewed")
	}
}

func TestSession_MarkViewedIsDurableAndIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	if err := (Store{Dir: dir}).MarkViewed(ctx); err != nil {
		t.Fatalf("MarkViewed: %v", err)
	}
	if err := (Store{Dir: dir}).MarkViewed(ctx); err != nil {
		t.Fatalf("MarkViewed (repeat): %v", err)
	}

	// A new Store value stands in for a process restart.
	got, err := (Store{Dir: dir}).LoadSession(ctx)
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if !got.MessageViewed {
		t.Fatalf("expected flag to survive reopen")
	}
}

func TestSession_UnreadableFlagCountsAsUnset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := Store{Dir: t.TempDir()}
	db, err := s.openSQLite(ctx)
	if err != nil {
		t.Fatalf("openSQLite: %v", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO state_meta(k, v) VALUES(?, ?)`, sessionKeyViewed, "maybe"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_ = db.Close()

	got, err := s.LoadSession(ctx)
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if got.MessageViewed {
		t.Fatalf("expected garbage flag to read as unset")
	}
}

func TestResolve(t *testing.T) {
	cfg := t.TempDir()
	t.Setenv("HEARTNOTE_CONFIG_DIR", cfg)

	s, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.Dir != filepath.Clean(cfg) {
		t.Fatalf("expected config dir %q; got %q", cfg, s.Dir)
	}

	s, err = Resolve("  /tmp/x/../y ")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.Dir != "/tmp/y" {
		t.Fatalf("expected cleaned dir; got %q", s.Dir)
	}
	if got := s.LogPath(); got != "/tmp/y/heartnote.log" {
		t.Fatalf("unexpected log path %q", got)
	}
}
