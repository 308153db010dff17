package model

import (
	"crypto/md5"
	"fmt"
	"math/rand"

	"github.com/pkg/errors"
)

const (
	// DefaultDensity is the fill ratio used by Randomize when none is configured
	DefaultDensity = 0.15

	historySize = 5
)

// ErrInvalidDimensions is returned when a grid is built with a non-positive width or height
var ErrInvalidDimensions = errors.New("grid dimensions must be positive")

// Grid is the shared two-owner board, stored as a flat row-major arena
type Grid struct {
	width  int
	height int
	wrap   bool
	alive  []bool
	owners []Owner

	history []string // Recent grid hashes for cycle detection
}

// NewGrid creates a new grid with the specified dimensions
func NewGrid(width, height int) (*Grid, error) {
	g := &Grid{}
	if err := g.Reset(width, height); err != nil {
		return nil, err
	}
	return g, nil
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// Wrap reports whether neighbor lookup is toroidal
func (g *Grid) Wrap() bool {
	return g.wrap
}

// SetWrap toggles toroidal neighbor lookup. Storage is unaffected.
func (g *Grid) SetWrap(wrap bool) {
	g.wrap = wrap
}

// Reset reallocates every cell for the new dimensions. All cells end up dead.
func (g *Grid) Reset(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Wrapf(ErrInvalidDimensions, "[Reset] got %dx%d", width, height)
	}
	g.width = width
	g.height = height
	g.alive = make([]bool, width*height)
	g.owners = make([]Owner, width*height)
	g.history = nil
	return nil
}

// Clear kills all cells
func (g *Grid) Clear() {
	for i := range g.alive {
		g.alive[i] = false
		g.owners[i] = OwnerNone
	}
	g.history = nil
}

// InBounds reports whether (x, y) addresses a stored cell
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Index returns the arena offset of (x, y). Callers check InBounds first.
func (g *Grid) Index(x, y int) int {
	return y*g.width + x
}

// SetCell writes a cell. A dead cell always loses its owner, and a live cell
// must belong to a color. Out-of-bounds writes are ignored.
func (g *Grid) SetCell(x, y int, alive bool, owner Owner) bool {
	if !g.InBounds(x, y) {
		return false
	}
	if !alive {
		owner = OwnerNone
	} else if owner == OwnerNone {
		return false
	}
	i := g.Index(x, y)
	g.alive[i] = alive
	g.owners[i] = owner
	return true
}

// Get returns whether a cell is alive
func (g *Grid) Get(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.alive[g.Index(x, y)]
}

// OwnerAt returns the owner of a cell, OwnerNone when dead or out of bounds
func (g *Grid) OwnerAt(x, y int) Owner {
	if !g.InBounds(x, y) {
		return OwnerNone
	}
	return g.owners[g.Index(x, y)]
}

// CountNeighbors counts live neighbors in the 8-neighborhood of (x, y) along
// with how many of them each color owns. With wrap enabled coordinates are
// folded onto the opposite edge before the bounds check.
func (g *Grid) CountNeighbors(x, y int) (alive, white, black int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if g.wrap {
				nx = (nx%g.width + g.width) % g.width
				ny = (ny%g.height + g.height) % g.height
			}
			if !g.InBounds(nx, ny) {
				continue
			}
			i := g.Index(nx, ny)
			if !g.alive[i] {
				continue
			}
			alive++
			switch g.owners[i] {
			case OwnerWhite:
				white++
			case OwnerBlack:
				black++
			}
		}
	}
	return
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for _, a := range g.alive {
		if a {
			count++
		}
	}
	return
}

// CountByOwner returns the live population of each color
func (g *Grid) CountByOwner() (white, black int) {
	for _, o := range g.owners {
		switch o {
		case OwnerWhite:
			white++
		case OwnerBlack:
			black++
		}
	}
	return
}

// AnyAlive reports whether at least one cell is alive
func (g *Grid) AnyAlive() bool {
	for _, a := range g.alive {
		if a {
			return true
		}
	}
	return false
}

// Swap exchanges cell buffers with next, which must have the same dimensions.
// Afterwards next holds the previous generation.
func (g *Grid) Swap(next *Grid) error {
	if next.width != g.width || next.height != g.height {
		return errors.Wrapf(ErrInvalidDimensions, "[Swap] %dx%d into %dx%d",
			next.width, next.height, g.width, g.height)
	}
	g.alive, next.alive = next.alive, g.alive
	g.owners, next.owners = next.owners, g.owners
	return nil
}

// Randomize fills the grid with live cells at the given density. With
// singleColor every live cell is White, otherwise colors are picked evenly.
func (g *Grid) Randomize(rng *rand.Rand, density float64, singleColor bool) {
	for y := range g.height {
		for x := range g.width {
			if rng.Float64() >= density {
				g.SetCell(x, y, false, OwnerNone)
				continue
			}
			owner := OwnerWhite
			if !singleColor && rng.Intn(2) == 1 {
				owner = OwnerBlack
			}
			g.SetCell(x, y, true, owner)
		}
	}
}

// GetGridHash returns an MD5 hash of the current cells including ownership
func (g *Grid) GetGridHash() string {
	h := md5.New()
	buf := make([]byte, len(g.owners))
	for i, o := range g.owners {
		buf[i] = byte(o)
	}
	h.Write(buf)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// UpdateHistory adds current state to history and maintains size
func (g *Grid) UpdateHistory() {
	g.history = append(g.history, g.GetGridHash())
	if len(g.history) > historySize {
		g.history = g.history[1:]
	}
}

// IsStagnant checks if the grid repeats one of the last three recorded states
func (g *Grid) IsStagnant() bool {
	if len(g.history) < 3 {
		return false
	}
	currentHash := g.GetGridHash()
	for back := 1; back <= 3; back++ {
		if g.history[len(g.history)-back] == currentHash {
			return true
		}
	}
	return false
}
