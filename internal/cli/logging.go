package cli

import (
	"log/slog"
	"os"
	"strings"
)

// openLogger appends to the log file at path. Stdout belongs to the card, so nothing
// is logged there.
func openLogger(path, level string) (*slog.Logger, func(), error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, func() {}, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, func() {}, err
	}
	log := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl}))
	return log, func() { _ = f.Close() }, nil
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	s = strings.TrimSpace(s)
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, invalidValueError{name: "log level", value: s, allowed: "debug|info|warn|error"}
	}
	return lvl, nil
}
