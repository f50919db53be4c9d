package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// canvas is a grid of terminal cells. A cell holds a styled string whose display
// width may exceed one column; the columns it covers hold "".
type canvas struct {
	w, h  int
	cells [][]string
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: max(w, 0), h: max(h, 0)}
	c.cells = make([][]string, c.h)
	for y := range c.cells {
		row := make([]string, c.w)
		for x := range row {
			row[x] = " "
		}
		c.cells[y] = row
	}
	return c
}

// put draws a single-line string at (x, y), clipping at the right edge.
// Anything it partially covers is blanked so columns stay aligned.
func (c *canvas) put(x, y int, s string) {
	if y < 0 || y >= c.h || x >= c.w {
		return
	}
	x = max(x, 0)
	wd := ansi.StringWidth(s)
	if x+wd > c.w {
		s = ansi.Truncate(s, c.w-x, "")
		wd = ansi.StringWidth(s)
	}
	if wd == 0 {
		return
	}

	row := c.cells[y]
	if row[x] == "" {
		k := x
		for k > 0 && row[k] == "" {
			k--
		}
		for i := k; i < x; i++ {
			row[i] = " "
		}
	}
	end := x + wd
	for i := end; i < c.w && row[i] == ""; i++ {
		row[i] = " "
	}
	row[x] = s
	for i := x + 1; i < end; i++ {
		row[i] = ""
	}
}

// block draws a multi-line string with its top-left corner at (x, y).
func (c *canvas) block(x, y int, s string) {
	for i, line := range strings.Split(s, "\n") {
		c.put(x, y+i, line)
	}
}

func (c *canvas) String() string {
	lines := make([]string, len(c.cells))
	for y, row := range c.cells {
		lines[y] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}
