package store

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	sqliteFileName = "heartnote.sqlite"
	logFileName    = "heartnote.log"
)

// Store is the on-disk home of the card: the session database and the log file.
type Store struct {
	Dir string
}

// ConfigDir is the default store directory (~/.heartnote).
func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.heartnote).
	if v := strings.TrimSpace(os.Getenv("HEARTNOTE_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".heartnote"), nil
}

// Resolve returns a Store rooted at dir, or at ConfigDir when dir is empty.
func Resolve(dir string) (Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		d, err := ConfigDir()
		if err != nil {
			return Store{}, err
		}
		dir = d
	}
	return Store{Dir: filepath.Clean(dir)}, nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

func (s Store) LogPath() string {
	return filepath.Join(s.Dir, logFileName)
}
