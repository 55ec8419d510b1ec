// Package term rasterises watch face primitives onto a character grid
// for terminal display.
//
// A cell is one column wide and CellAspect units tall, so a face laid out
// in Viewport(cols, rows) keeps a round dial on a typical terminal font.
package term

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/aelexs/watchface/internal/watchface"
)

// CellAspect is the height of one cell in viewport units.
const CellAspect = 2.0

// Cell is one character position.
type Cell struct {
	Rune rune
	FG   watchface.Color
	BG   watchface.Color
	wide bool // trailing half of a double-width rune
}

// Grid is a fixed-size character canvas. Later writes win.
type Grid struct {
	cols, rows int
	cells      []Cell
}

// NewGrid returns a blank grid. Non-positive sizes yield an empty grid.
func NewGrid(cols, rows int) *Grid {
	cols, rows = max(cols, 0), max(rows, 0)
	g := &Grid{cols: cols, rows: rows, cells: make([]Cell, cols*rows)}
	for i := range g.cells {
		g.cells[i].Rune = ' '
	}
	return g
}

// Size returns the grid dimensions.
func (g *Grid) Size() (cols, rows int) { return g.cols, g.rows }

// At returns the cell at col, row. Out-of-range positions read as blank.
func (g *Grid) At(col, row int) Cell {
	if !g.in(col, row) {
		return Cell{Rune: ' '}
	}
	return g.cells[row*g.cols+col]
}

func (g *Grid) in(col, row int) bool {
	return col >= 0 && row >= 0 && col < g.cols && row < g.rows
}

func (g *Grid) cell(col, row int) *Cell {
	if !g.in(col, row) {
		return nil
	}
	return &g.cells[row*g.cols+col]
}

// Glyph draws r in colour fg, keeping the cell's background.
func (g *Grid) Glyph(col, row int, r rune, fg watchface.Color) {
	c := g.cell(col, row)
	if c == nil {
		return
	}
	g.clearWide(col, row)
	if runewidth.RuneWidth(r) == 2 {
		next := g.cell(col+1, row)
		if next == nil {
			r = ' ' // no room for the second column
		} else {
			g.clearWide(col+1, row)
			next.Rune, next.FG, next.BG, next.wide = 0, fg, c.BG, true
		}
	}
	c.Rune, c.FG, c.wide = r, fg, false
}

// Fill paints the cell background and clears its glyph.
func (g *Grid) Fill(col, row int, bg watchface.Color) {
	c := g.cell(col, row)
	if c == nil {
		return
	}
	g.clearWide(col, row)
	c.Rune, c.BG, c.wide = ' ', bg, false
}

// clearWide blanks the other half of a double-width rune overwritten at
// col, row.
func (g *Grid) clearWide(col, row int) {
	c := g.cell(col, row)
	if c.wide {
		if prev := g.cell(col-1, row); prev != nil {
			prev.Rune = ' '
		}
	} else if runewidth.RuneWidth(c.Rune) == 2 {
		if next := g.cell(col+1, row); next != nil && next.wide {
			next.Rune, next.wide = ' ', false
		}
	}
}

// String returns the glyphs without colour, one line per row.
func (g *Grid) String() string {
	var b strings.Builder
	for row := range g.rows {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := range g.cols {
			c := g.cells[row*g.cols+col]
			if c.wide {
				continue
			}
			b.WriteRune(c.Rune)
		}
	}
	return b.String()
}

// Render returns the grid styled with lipgloss. Runs of cells sharing
// colours are styled together; lipgloss drops the colour codes when the
// output cannot show them.
func (g *Grid) Render() string {
	var b strings.Builder
	for row := range g.rows {
		if row > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		var fg, bg watchface.Color
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(style(fg, bg).Render(run.String()))
			run.Reset()
		}
		for col := range g.cols {
			c := g.cells[row*g.cols+col]
			if c.wide {
				continue
			}
			if c.FG != fg || c.BG != bg {
				flush()
				fg, bg = c.FG, c.BG
			}
			run.WriteRune(c.Rune)
		}
		flush()
	}
	return b.String()
}

func style(fg, bg watchface.Color) lipgloss.Style {
	s := lipgloss.NewStyle()
	if fg.A > 0 {
		s = s.Foreground(lipgloss.Color(opaque(fg).Hex()))
	}
	if bg.A > 0 {
		s = s.Background(lipgloss.Color(opaque(bg).Hex()))
	}
	return s
}

// opaque drops alpha; terminals have no blending.
func opaque(c watchface.Color) watchface.Color {
	c.A = 0xFF
	return c
}
