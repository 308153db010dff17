package engine

import (
	"math/rand"
	"testing"

	"github.com/sheikhrachel/go-gol-duel/model"
)

type cell struct {
	x, y int
}

func newGrid(t *testing.T, w, h int) *model.Grid {
	t.Helper()
	g, err := model.NewGrid(w, h)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g
}

func liveCells(g *model.Grid) map[cell]model.Owner {
	out := make(map[cell]model.Owner)
	for y := range g.GetHeight() {
		for x := range g.GetWidth() {
			if g.Get(x, y) {
				out[cell{x, y}] = g.OwnerAt(x, y)
			}
		}
	}
	return out
}

// normalize shifts a cell set so its bounding box starts at the origin
func normalize(cells map[cell]model.Owner) (map[cell]model.Owner, cell) {
	minX, minY := int(^uint(0)>>1), int(^uint(0)>>1)
	for c := range cells {
		minX = min(minX, c.x)
		minY = min(minY, c.y)
	}
	out := make(map[cell]model.Owner, len(cells))
	for c, o := range cells {
		out[cell{c.x - minX, c.y - minY}] = o
	}
	return out, cell{minX, minY}
}

func engines() map[string]*Engine {
	return map[string]*Engine{
		"serial":   New(),
		"parallel": New(WithParallel(3), WithPool(model.NewGridPool())),
	}
}

func TestEmptyGridStaysEmpty(t *testing.T) {
	for name, e := range engines() {
		t.Run(name, func(t *testing.T) {
			g := newGrid(t, 8, 8)
			for range 3 {
				w, b := e.Step(g)
				if w != 0 || b != 0 {
					t.Fatalf("score deltas (%d,%d) on empty grid", w, b)
				}
			}
			if g.AnyAlive() {
				t.Fatal("empty grid produced life")
			}
		})
	}
}

func TestIsolatedCellDies(t *testing.T) {
	for _, wrap := range []bool{false, true} {
		for name, e := range engines() {
			g := newGrid(t, 5, 5)
			g.SetWrap(wrap)
			g.SetCell(0, 0, true, model.OwnerBlack)

			e.Step(g)
			if g.Get(0, 0) || g.OwnerAt(0, 0) != model.OwnerNone {
				t.Fatalf("%s wrap=%v: isolated cell survived", name, wrap)
			}
		}
	}
}

func TestBlockIsStillLife(t *testing.T) {
	for name, e := range engines() {
		t.Run(name, func(t *testing.T) {
			g := newGrid(t, 8, 8)
			for _, c := range []cell{{3, 3}, {4, 3}, {3, 4}, {4, 4}} {
				g.SetCell(c.x, c.y, true, model.OwnerWhite)
			}
			before := liveCells(g)

			for i := range 10 {
				w, b := e.Step(g)
				if w != 0 || b != 0 {
					t.Fatalf("step %d: score deltas (%d,%d) from still life", i, w, b)
				}
			}

			after := liveCells(g)
			if len(after) != len(before) {
				t.Fatalf("block changed: %v", after)
			}
			for c, o := range before {
				if after[c] != o {
					t.Fatalf("cell %v owner %v, expected %v", c, after[c], o)
				}
			}
		})
	}
}

func TestGliderTranslates(t *testing.T) {
	for name, e := range engines() {
		t.Run(name, func(t *testing.T) {
			g := newGrid(t, 20, 20)
			// .O.
			// ..O
			// OOO
			for _, c := range []cell{{6, 10}, {7, 9}, {5, 8}, {6, 8}, {7, 8}} {
				g.SetCell(c.x, c.y, true, model.OwnerBlack)
			}
			shape, origin := normalize(liveCells(g))

			var whiteTotal, blackTotal int
			for range 4 {
				w, b := e.Step(g)
				whiteTotal += w
				blackTotal += b
			}

			moved, movedOrigin := normalize(liveCells(g))
			if len(moved) != 5 {
				t.Fatalf("glider has %d cells after 4 steps, expected 5", len(moved))
			}
			for c, o := range shape {
				if moved[c] != o {
					t.Fatalf("glider shape changed at %v: %v", c, moved)
				}
			}
			dx, dy := movedOrigin.x-origin.x, movedOrigin.y-origin.y
			if abs(dx) != 1 || abs(dy) != 1 {
				t.Fatalf("glider moved by (%d,%d), expected a diagonal unit", dx, dy)
			}
			if whiteTotal != 0 || blackTotal == 0 {
				t.Fatalf("births white=%d black=%d, expected only black", whiteTotal, blackTotal)
			}
		})
	}
}

func TestBirthGoesToMajority(t *testing.T) {
	g := newGrid(t, 5, 5)
	g.SetCell(1, 2, true, model.OwnerWhite)
	g.SetCell(2, 3, true, model.OwnerWhite)
	g.SetCell(3, 2, true, model.OwnerBlack)

	next, w, b := New().Next(g)
	if next.OwnerAt(2, 2) != model.OwnerWhite {
		t.Fatalf("born owner %v, expected White", next.OwnerAt(2, 2))
	}
	if w != 1 || b != 0 {
		t.Fatalf("deltas (%d,%d), expected (1,0)", w, b)
	}
	// Next leaves the input untouched
	if g.Get(2, 2) || g.CountLivingCells() != 3 {
		t.Fatal("Next mutated its input")
	}
}

func TestScoreCountsOnlyBirths(t *testing.T) {
	g := newGrid(t, 5, 5)
	// horizontal blinker: two cells die, two are born, center survives
	g.SetCell(1, 2, true, model.OwnerBlack)
	g.SetCell(2, 2, true, model.OwnerWhite)
	g.SetCell(3, 2, true, model.OwnerBlack)

	w, b := New().Step(g)
	if w != 0 || b != 2 {
		t.Fatalf("deltas (%d,%d), expected (0,2)", w, b)
	}
	if g.OwnerAt(2, 2) != model.OwnerWhite {
		t.Fatal("survivor lost its owner")
	}
	if g.OwnerAt(2, 1) != model.OwnerBlack || g.OwnerAt(2, 3) != model.OwnerBlack {
		t.Fatal("vertical cells should be born black")
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, wrap := range []bool{false, true} {
		a := newGrid(t, 33, 17)
		a.SetWrap(wrap)
		a.Randomize(rng, 0.35, false)
		b := newGrid(t, 33, 17)
		b.SetWrap(wrap)
		for c, o := range liveCells(a) {
			b.SetCell(c.x, c.y, true, o)
		}

		serial, parallel := New(), New(WithParallel(4))
		for i := range 20 {
			sw, sb := serial.Step(a)
			pw, pb := parallel.Step(b)
			if sw != pw || sb != pb {
				t.Fatalf("step %d: serial (%d,%d) parallel (%d,%d)", i, sw, sb, pw, pb)
			}
			if a.GetGridHash() != b.GetGridHash() {
				t.Fatalf("step %d: grids diverged", i)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
