package match

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/sheikhrachel/go-gol-duel/events"
	"github.com/sheikhrachel/go-gol-duel/model"
)

// ErrInvalidSeedCount is returned by NewMatch for a non-positive seed budget
var ErrInvalidSeedCount = errors.New("seeds per player must be positive")

// defaultOwner takes the turn outside a match and acts in free play
const defaultOwner = model.OwnerWhite

// Simulation is the shared state holder the coordinator reacts to
type Simulation interface {
	State() model.SimState
	SetState(model.SimState)
	Pause()
}

// Coordinator runs the seed placement turns, accumulates scores and decides
// the winner once the board dies out
type Coordinator struct {
	grid   *model.Grid
	sim    Simulation
	bus    *events.Bus
	logger *zap.Logger

	matchID    uuid.UUID
	pvpEnabled bool
	turn       model.Owner
	whiteSeeds int
	blackSeeds int
	whiteScore int
	blackScore int
}

// New builds a coordinator and subscribes it to the bus' score updates
func New(grid *model.Grid, sim Simulation, bus *events.Bus, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Coordinator{
		grid:   grid,
		sim:    sim,
		bus:    bus,
		logger: logger,
		turn:   defaultOwner,
	}
	bus.OnScoreChanged(c.addScore)
	return c
}

func (c *Coordinator) PvPEnabled() bool   { return c.pvpEnabled }
func (c *Coordinator) Turn() model.Owner  { return c.turn }
func (c *Coordinator) MatchID() uuid.UUID { return c.matchID }
func (c *Coordinator) Scores() (white, black int) {
	return c.whiteScore, c.blackScore
}

// SeedsLeft returns the remaining budget of owner
func (c *Coordinator) SeedsLeft(owner model.Owner) int {
	switch owner {
	case model.OwnerWhite:
		return c.whiteSeeds
	case model.OwnerBlack:
		return c.blackSeeds
	default:
		return 0
	}
}

func (c *Coordinator) SeedsLeftForCurrentPlayer() int {
	return c.SeedsLeft(c.turn)
}

// ActingOwner is the color new cells are given: the player on turn during a
// match, the default color in free play
func (c *Coordinator) ActingOwner() model.Owner {
	if c.pvpEnabled {
		return c.turn
	}
	return defaultOwner
}

// NewMatch starts a duel with seeds per player. The caller moves the
// simulation into placement.
func (c *Coordinator) NewMatch(seeds int) error {
	if seeds <= 0 {
		return errors.Wrapf(ErrInvalidSeedCount, "[NewMatch] got %d", seeds)
	}
	c.matchID = uuid.New()
	c.pvpEnabled = true
	c.whiteScore, c.blackScore = 0, 0
	c.whiteSeeds, c.blackSeeds = seeds, seeds
	c.setTurn(model.OwnerWhite)

	c.logger.Info("match started",
		zap.String("match_id", c.matchID.String()),
		zap.Int("seeds_per_player", seeds),
	)
	return nil
}

// TryPlaceSeed places one cell for the player on turn. It fails without side
// effects outside placement, on an occupied or out-of-bounds cell, or when the
// player has no seeds left.
func (c *Coordinator) TryPlaceSeed(x, y int) bool {
	if !c.placing() || c.SeedsLeftForCurrentPlayer() <= 0 {
		return false
	}
	if !c.grid.InBounds(x, y) || c.grid.Get(x, y) {
		return false
	}
	c.grid.SetCell(x, y, true, c.turn)
	c.ConsumeSeeds(1)
	return true
}

// ConsumeSeeds charges count seeds to the player on turn, then hands the turn
// over: alternate while both have seeds, stay with the only player who still
// has some, or finish placement when nobody does.
func (c *Coordinator) ConsumeSeeds(count int) {
	if !c.placing() || count <= 0 {
		return
	}

	if c.turn == model.OwnerWhite {
		c.whiteSeeds = max(0, c.whiteSeeds-count)
	} else {
		c.blackSeeds = max(0, c.blackSeeds-count)
	}

	c.logger.Debug("seeds consumed",
		zap.String("match_id", c.matchID.String()),
		zap.Stringer("player", c.turn),
		zap.Int("count", count),
		zap.Int("white_seeds", c.whiteSeeds),
		zap.Int("black_seeds", c.blackSeeds),
	)

	switch {
	case c.whiteSeeds > 0 && c.blackSeeds > 0:
		c.setTurn(c.turn.Opponent())
	case c.whiteSeeds > 0:
		c.setTurn(model.OwnerWhite)
	case c.blackSeeds > 0:
		c.setTurn(model.OwnerBlack)
	default:
		c.sim.SetState(model.StateEditing)
		c.logger.Info("placement finished", zap.String("match_id", c.matchID.String()))
		c.bus.EmitPlacementFinished()
	}
}

// EndMatch concludes the running match, reports the result, pauses the
// simulation and resets all match counters
func (c *Coordinator) EndMatch() {
	if !c.pvpEnabled {
		return
	}
	c.pvpEnabled = false

	summary := events.MatchSummary{
		MatchID:    c.matchID,
		Winner:     model.OwnerNone,
		WhiteScore: c.whiteScore,
		BlackScore: c.blackScore,
	}
	switch {
	case c.whiteScore > c.blackScore:
		summary.Winner = model.OwnerWhite
	case c.blackScore > c.whiteScore:
		summary.Winner = model.OwnerBlack
	}

	c.logger.Info("match ended",
		zap.String("match_id", c.matchID.String()),
		zap.Stringer("winner", summary.Winner),
		zap.Int("white_score", summary.WhiteScore),
		zap.Int("black_score", summary.BlackScore),
	)
	c.bus.EmitMatchEnded(summary)
	c.sim.Pause()
	c.reset()
}

// DisablePvP leaves duel mode without reporting a result
func (c *Coordinator) DisablePvP() {
	c.pvpEnabled = false
	c.reset()
}

func (c *Coordinator) addScore(e events.ScoreChanged) {
	c.whiteScore += e.WhiteDelta
	c.blackScore += e.BlackDelta
	if c.pvpEnabled && !c.grid.AnyAlive() {
		c.EndMatch()
	}
}

func (c *Coordinator) placing() bool {
	return c.pvpEnabled && c.sim.State() == model.StatePlacement
}

func (c *Coordinator) setTurn(owner model.Owner) {
	c.turn = owner
	c.bus.EmitTurnChanged()
}

func (c *Coordinator) reset() {
	c.whiteScore, c.blackScore = 0, 0
	c.whiteSeeds, c.blackSeeds = 0, 0
	c.turn = defaultOwner
}
