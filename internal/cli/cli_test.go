package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"heartnote/internal/store"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestStatus_ReportsSessionFlag(t *testing.T) {
	dir := t.TempDir()

	out, _, err := execute(t, "status", "--dir", dir)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	var env struct {
		Data statusReport `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &env); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if env.Data.Dir != dir || env.Data.MessageViewed {
		t.Fatalf("unexpected fresh status: %+v", env.Data)
	}
	if env.Data.Config.HeartCount != 15 || env.Data.Config.TypingDelay != "30ms" {
		t.Fatalf("unexpected config: %+v", env.Data.Config)
	}

	if err := (store.Store{Dir: dir}).MarkViewed(context.Background()); err != nil {
		t.Fatalf("MarkViewed: %v", err)
	}
	out, _, err = execute(t, "status", "--dir", dir, "--format", "table")
	if err != nil {
		t.Fatalf("status table: %v", err)
	}
	for _, want := range []string{"messageViewed", "true", "confettiCount", "50"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestStatus_DirFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HEARTNOTE_CONFIG_DIR", dir)
	t.Setenv("HEARTNOTE_FORMAT", "table")

	out, _, err := execute(t, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, dir) || !strings.Contains(out, "false") {
		t.Fatalf("expected env dir in table output:\n%s", out)
	}
}

func TestLetter_RawAndRendered(t *testing.T) {
	t.Setenv("HEARTNOTE_CONFIG_DIR", t.TempDir())

	out, _, err := execute(t, "letter", "--raw")
	if err != nil {
		t.Fatalf("letter --raw: %v", err)
	}
	if !strings.HasPrefix(out, "# For you") {
		t.Fatalf("expected raw markdown; got %q", out)
	}

	out, _, err = execute(t, "letter")
	if err != nil {
		t.Fatalf("letter: %v", err)
	}
	if !strings.Contains(out, "For you") {
		t.Fatalf("expected plain rendering for a non-terminal writer; got %q", out)
	}
}

func TestLetter_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.md")

	_, errOut, err := execute(t, "letter", "--letter", missing)
	if err == nil {
		t.Fatalf("expected error for missing letter")
	}
	var le letterError
	if !errors.As(err, &le) {
		t.Fatalf("expected letterError; got %T", err)
	}
	if !strings.Contains(errOut, missing) {
		t.Fatalf("expected path in stderr; got %q", errOut)
	}
}

func TestRoot_RejectsBadLogLevel(t *testing.T) {
	_, errOut, err := execute(t, "status", "--dir", t.TempDir(), "--log-level", "loud")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(errOut, "invalid log level") {
		t.Fatalf("unexpected stderr %q", errOut)
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: "INFO"},
		{in: "debug", want: "DEBUG"},
		{in: "WARN", want: "WARN"},
		{in: "error", want: "ERROR"},
		{in: "chatty", wantErr: true},
	}
	for _, tc := range cases {
		got, err := parseLevel(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseLevel(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseLevel(%q): %v", tc.in, err)
		}
		if got.String() != tc.want {
			t.Fatalf("parseLevel(%q) = %s; want %s", tc.in, got, tc.want)
		}
	}
}

func TestValidGlyphs(t *testing.T) {
	for _, ok := range []string{"", "unicode", "ASCII"} {
		if err := validGlyphs(ok); err != nil {
			t.Fatalf("validGlyphs(%q): %v", ok, err)
		}
	}
	if err := validGlyphs("emoji"); err == nil {
		t.Fatalf("expected error for unknown glyph set")
	}
}

func TestOpenPlayer_MissingAssetStaysSilent(t *testing.T) {
	log, closeLog, err := openLogger(filepath.Join(t.TempDir(), "heartnote.log"), "debug")
	if err != nil {
		t.Fatalf("openLogger: %v", err)
	}
	defer closeLog()

	p := openPlayer(filepath.Join(t.TempDir(), "missing.mp3"), 0.3, log)
	if err := p.TryPlay(); err == nil {
		t.Fatalf("expected blocked playback without an asset")
	}
	if p.Playing() {
		t.Fatalf("expected player to stay paused")
	}
}
