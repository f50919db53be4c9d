package letter

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    string
		want  Letter
		isErr error
	}{
		{
			name: "title paragraphs and heart",
			in:   "# Dear you\n\nFirst *line*\ncontinues here.\n\nSecond.\n\n❤\n",
			want: Letter{Title: "Dear you", Paragraphs: []string{"First line continues here.", "Second."}, FinalHeart: true},
		},
		{
			name: "no title no heart",
			in:   "A\n\nBB\n",
			want: Letter{Paragraphs: []string{"A", "BB"}},
		},
		{
			name: "ascii heart",
			in:   "hello\n\n<3\n",
			want: Letter{Paragraphs: []string{"hello"}, FinalHeart: true},
		},
		{
			name: "lists and subheadings ignored",
			in:   "# T\n\n## sub\n\n- item\n\nonly paragraph\n",
			want: Letter{Title: "T", Paragraphs: []string{"only paragraph"}},
		},
		{
			name:  "empty",
			in:    "# Just a title\n",
			isErr: ErrEmpty,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse([]byte(tt.in))
			if tt.isErr != nil {
				if !errors.Is(err, tt.isErr) {
					t.Fatalf("expected %v; got %v", tt.isErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			got.Source = ""
			if !reflect.DeepEqual(tt.want, got) {
				t.Fatalf("mismatch:\nwant: %#v\ngot:  %#v", tt.want, got)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()

	l := Default()
	if l.Title == "" || len(l.Paragraphs) < 2 || !l.FinalHeart {
		t.Fatalf("unexpected default letter: %#v", l)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	got, err := Load("")
	if err != nil || got.Title != Default().Title {
		t.Fatalf("expected default letter for empty path; got %#v err=%v", got, err)
	}

	path := filepath.Join(t.TempDir(), "note.md")
	if err := os.WriteFile(path, []byte("# N\n\nhi\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err = Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Title != "N" || len(got.Paragraphs) != 1 {
		t.Fatalf("unexpected letter: %#v", got)
	}

	empty := filepath.Join(t.TempDir(), "empty.md")
	_ = os.WriteFile(empty, []byte("\n"), 0o644)
	if _, err := Load(empty); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty; got %v", err)
	}
}
