package pattern

import (
	"go.uber.org/zap"

	"github.com/sheikhrachel/go-gol-duel/model"
)

// Match is the slice of match state the stamper needs
type Match interface {
	PvPEnabled() bool
	ActingOwner() model.Owner
	SeedsLeftForCurrentPlayer() int
	ConsumeSeeds(count int)
}

// StateReader exposes the shared simulation state
type StateReader interface {
	State() model.SimState
}

// Stamper writes patterns onto the grid on behalf of the acting player
type Stamper struct {
	grid   *model.Grid
	match  Match
	sim    StateReader
	logger *zap.Logger
}

func NewStamper(grid *model.Grid, match Match, sim StateReader, logger *zap.Logger) *Stamper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stamper{grid: grid, match: match, sim: sim, logger: logger}
}

// Place stamps p with its top-left cell at (anchorX, anchorY). Pattern rows
// run towards decreasing y. Only cells that land in bounds on a dead cell are
// written, and during placement at most the acting player's remaining seeds
// are spent, in scan order, as one batch.
func (s *Stamper) Place(p *Pattern, anchorX, anchorY int) int {
	if p == nil {
		return 0
	}
	candidates := s.candidates(p, anchorX, anchorY)
	if len(candidates) == 0 {
		return 0
	}

	placing := s.match.PvPEnabled() && s.sim.State() == model.StatePlacement
	toPlace := len(candidates)
	if placing {
		seedsLeft := s.match.SeedsLeftForCurrentPlayer()
		if seedsLeft <= 0 {
			return 0
		}
		toPlace = min(toPlace, seedsLeft)
	}

	owner := s.match.ActingOwner()
	placed := 0
	for _, c := range candidates[:toPlace] {
		if s.grid.SetCell(c.x, c.y, true, owner) {
			placed++
		}
	}

	s.logger.Debug("pattern placed",
		zap.String("pattern", p.Name()),
		zap.Int("anchor_x", anchorX),
		zap.Int("anchor_y", anchorY),
		zap.Int("candidates", len(candidates)),
		zap.Int("placed", placed),
		zap.Stringer("owner", owner),
	)

	if placing && placed > 0 {
		s.match.ConsumeSeeds(placed)
	}
	return placed
}

type point struct {
	x, y int
}

// candidates maps live pattern cells to free grid cells, keeping scan order
func (s *Stamper) candidates(p *Pattern, anchorX, anchorY int) []point {
	var out []point
	for _, c := range p.live {
		x, y := anchorX+c.Col, anchorY-c.Row
		if !s.grid.InBounds(x, y) || s.grid.Get(x, y) {
			continue
		}
		out = append(out, point{x, y})
	}
	return out
}
