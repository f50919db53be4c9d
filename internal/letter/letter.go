package letter

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

//go:embed content/*.md
var contentFS embed.FS

const defaultPath = "content/default.md"

// ErrEmpty means the letter has no paragraphs to reveal.
var ErrEmpty = errors.New("letter: no paragraphs")

// Letter is the message the card reveals.
type Letter struct {
	Title string `json:"title"`
	// Paragraphs are the text regions, in document order.
	Paragraphs []string `json:"paragraphs"`
	// FinalHeart is set when the letter closes with a heart-only paragraph.
	FinalHeart bool `json:"finalHeart"`
	// Source is the raw markdown.
	Source string `json:"-"`
}

// Default returns the embedded letter.
func Default() Letter {
	b, err := contentFS.ReadFile(defaultPath)
	if err != nil {
		panic(fmt.Sprintf("letter: embedded default missing: %v", err))
	}
	l, err := Parse(b)
	if err != nil {
		panic(fmt.Sprintf("letter: embedded default invalid: %v", err))
	}
	return l
}

// Load reads a letter from path, or returns the default letter when path is empty.
func Load(path string) (Letter, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Letter{}, err
	}
	l, err := Parse(b)
	if err != nil {
		return Letter{}, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Parse reads markdown: the first level-1 heading becomes the title and every
// top-level paragraph becomes a region. Other blocks are ignored.
func Parse(src []byte) (Letter, error) {
	l := Letter{Source: string(src)}
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch n := n.(type) {
		case *ast.Heading:
			if n.Level == 1 && l.Title == "" {
				l.Title = plainText(n, src)
			}
		case *ast.Paragraph:
			t := plainText(n, src)
			if t == "" {
				continue
			}
			if isHeart(t) {
				l.FinalHeart = true
				continue
			}
			l.Paragraphs = append(l.Paragraphs, t)
		}
	}
	if len(l.Paragraphs) == 0 {
		return Letter{}, ErrEmpty
	}
	return l, nil
}

func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	lastStop := -1
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			seg := c.Segment
			// Line breaks between inline nodes are not always carried as text.
			if lastStop >= 0 && lastStop <= seg.Start && bytes.ContainsAny(src[lastStop:seg.Start], " \t\n") {
				b.WriteByte(' ')
			}
			b.Write(seg.Value(src))
			lastStop = seg.Stop
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(b.String()), " ")
}

func isHeart(s string) bool {
	switch strings.TrimSpace(s) {
	case "❤", "❤️", "♥", "<3":
		return true
	default:
		return false
	}
}
