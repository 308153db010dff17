package pattern

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidPattern is returned for patterns with a missing name or non-positive size
var ErrInvalidPattern = errors.New("invalid pattern")

// LiveMarker is the ASCII marker for a live pattern cell. Any other rune is dead.
const LiveMarker = 'O'

// Cell is a pattern position. Row 0 is the top row.
type Cell struct {
	Col, Row int
}

// Pattern is an immutable rectangular stamp
type Pattern struct {
	name   string
	width  int
	height int
	live   []Cell // row-major scan order
}

// New builds a pattern from rows of alive flags. Rows shorter than width are
// padded with dead cells; anything past width or height is dropped.
func New(name string, width, height int, rows [][]bool) (*Pattern, error) {
	if name == "" {
		return nil, errors.Wrap(ErrInvalidPattern, "[New] empty name")
	}
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidPattern, "[New] %q has size %dx%d", name, width, height)
	}

	p := &Pattern{name: name, width: width, height: height}
	for row := 0; row < min(height, len(rows)); row++ {
		line := rows[row]
		for col := 0; col < min(width, len(line)); col++ {
			if line[col] {
				p.live = append(p.live, Cell{Col: col, Row: row})
			}
		}
	}
	return p, nil
}

// Parse reads an ASCII pattern, one line per row, with LiveMarker for live cells
func Parse(name string, width, height int, ascii string) (*Pattern, error) {
	lines := strings.Split(strings.ReplaceAll(ascii, "\r", ""), "\n")
	rows := make([][]bool, len(lines))
	for i, line := range lines {
		row := make([]bool, 0, len(line))
		for _, r := range line {
			row = append(row, r == LiveMarker)
		}
		rows[i] = row
	}
	p, err := New(name, width, height, rows)
	if err != nil {
		return nil, errors.Wrapf(err, "[Parse] failed to parse pattern: %+v", name)
	}
	return p, nil
}

// MustParse is Parse for patterns known to be valid at compile time
func MustParse(name string, width, height int, ascii string) *Pattern {
	p, err := Parse(name, width, height, ascii)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Pattern) Name() string { return p.name }
func (p *Pattern) Width() int   { return p.width }
func (p *Pattern) Height() int  { return p.height }

// LiveCells returns a copy of the live cells in row-major order
func (p *Pattern) LiveCells() []Cell {
	out := make([]Cell, len(p.live))
	copy(out, p.live)
	return out
}

// Population is the number of live cells
func (p *Pattern) Population() int { return len(p.live) }
