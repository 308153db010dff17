package session

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/sheikhrachel/go-gol-duel/clock"
	"github.com/sheikhrachel/go-gol-duel/engine"
	"github.com/sheikhrachel/go-gol-duel/events"
	"github.com/sheikhrachel/go-gol-duel/match"
	"github.com/sheikhrachel/go-gol-duel/model"
	"github.com/sheikhrachel/go-gol-duel/pattern"
	"github.com/sheikhrachel/go-gol-duel/utils"
)

const (
	MinGridSize = 10
	MaxGridSize = 250

	minStepDelay = 20 * time.Millisecond
	maxStepDelay = 500 * time.Millisecond
)

// ErrPvPDisabled is returned when a duel is started outside duel mode
var ErrPvPDisabled = errors.New("duel mode is off")

// Button is the pointer button of a grid click
type Button uint8

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

/*
Session wires the grid, engine, clock, match and pattern library together and
exposes the operations a front end needs.

Once Clock().Run is active every method must be called through Clock().Do.
*/
type Session struct {
	cfg    utils.Config
	logger *zap.Logger
	rng    *rand.Rand

	grid     *model.Grid
	engine   *engine.Engine
	bus      *events.Bus
	clock    *clock.Clock
	match    *match.Coordinator
	patterns *pattern.Library
	stamper  *pattern.Stamper

	pvpMode bool
}

// New builds a session from cfg. Custom patterns in cfg are added to the builtins.
func New(cfg utils.Config, logger *zap.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "[session.New] config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	grid, err := model.NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, errors.Wrap(err, "[session.New] grid")
	}
	grid.SetWrap(cfg.Wrap)

	patterns := pattern.Builtins()
	for _, pc := range cfg.Patterns {
		p, err := pattern.Parse(pc.Name, pc.Width, pc.Height, pc.ASCII)
		if err != nil {
			return nil, errors.Wrap(err, "[session.New] custom pattern")
		}
		if err := patterns.Register(p); err != nil {
			return nil, errors.Wrap(err, "[session.New] custom pattern")
		}
	}

	opts := []engine.Option{engine.WithLogger(logger)}
	if cfg.UseParallel {
		opts = append(opts, engine.WithParallel(0))
	}
	if cfg.UseMemoryPool {
		opts = append(opts, engine.WithPool(model.NewGridPool()))
	}

	s := &Session{
		cfg:      cfg,
		logger:   logger,
		rng:      rand.New(rand.NewSource(cfg.RandomSeed)),
		grid:     grid,
		engine:   engine.New(opts...),
		bus:      events.NewBus(),
		patterns: patterns,
		pvpMode:  cfg.Mode == utils.ModeDuel,
	}
	s.clock = clock.New(grid, s.engine, s.bus, logger)
	s.clock.SetStepDelay(cfg.StepDelay)
	s.match = match.New(grid, s.clock, s.bus, logger)
	s.stamper = pattern.NewStamper(grid, s.match, s.clock, logger)

	if cfg.AutoStart {
		s.bus.OnPlacementFinished(s.clock.Start)
	}
	return s, nil
}

func (s *Session) Grid() *model.Grid          { return s.grid }
func (s *Session) Bus() *events.Bus           { return s.bus }
func (s *Session) Clock() *clock.Clock        { return s.clock }
func (s *Session) Match() *match.Coordinator  { return s.match }
func (s *Session) Patterns() *pattern.Library { return s.patterns }
func (s *Session) Stamper() *pattern.Stamper  { return s.stamper }
func (s *Session) PvPMode() bool              { return s.pvpMode }

// Click applies a pointer press at grid cell (x, y). During a duel only
// placement-phase clicks are accepted. An armed pattern is stamped and
// disarmed; otherwise the primary button places a seed or paints a cell for
// the acting player and the secondary button kills a cell.
func (s *Session) Click(x, y int, button Button) bool {
	if s.match.PvPEnabled() && s.clock.State() != model.StatePlacement {
		return false
	}
	if !s.grid.InBounds(x, y) {
		return false
	}

	if p := s.patterns.Active(); p != nil {
		placed := s.stamper.Place(p, x, y)
		s.patterns.ClearActive()
		return placed > 0
	}

	if s.clock.State() == model.StatePlacement {
		if button != ButtonPrimary {
			return false
		}
		return s.match.TryPlaceSeed(x, y)
	}

	switch button {
	case ButtonPrimary:
		return s.grid.SetCell(x, y, true, s.match.ActingOwner())
	case ButtonSecondary:
		return s.grid.SetCell(x, y, false, model.OwnerNone)
	}
	return false
}

// Stamp arms the named pattern and applies it at (x, y) like a click would
func (s *Session) Stamp(name string, x, y int) int {
	if !s.patterns.Arm(name) {
		return 0
	}
	defer s.patterns.ClearActive()
	if s.match.PvPEnabled() && s.clock.State() != model.StatePlacement {
		return 0
	}
	return s.stamper.Place(s.patterns.Active(), x, y)
}

// RebuildGrid resizes the board, clamping each side to [MinGridSize, MaxGridSize]
func (s *Session) RebuildGrid(width, height int) {
	width = min(max(width, MinGridSize), MaxGridSize)
	height = min(max(height, MinGridSize), MaxGridSize)
	s.clock.Pause()
	// clamped sizes are always positive
	_ = s.grid.Reset(width, height)
	s.logger.Info("grid rebuilt", zap.Int("width", width), zap.Int("height", height))
}

// ClearGrid kills every cell
func (s *Session) ClearGrid() {
	s.grid.Clear()
}

// Randomize refills the board. Outside duel mode every cell is White.
func (s *Session) Randomize() {
	s.grid.Randomize(s.rng, s.cfg.RandomDensity, !s.pvpMode)
}

func (s *Session) SetWrap(wrap bool) {
	s.grid.SetWrap(wrap)
}

// SetSpeed maps a slider value in [0,1] to the step delay, 1 being fastest
func (s *Session) SetSpeed(v float64) {
	v = min(max(v, 0), 1)
	delay := minStepDelay + time.Duration((1-v)*float64(maxStepDelay-minStepDelay))
	s.clock.SetStepDelay(delay)
}

// SetPvPMode toggles duel mode. Turning it off abandons any match.
func (s *Session) SetPvPMode(on bool) {
	s.pvpMode = on
	if !on {
		s.match.DisablePvP()
		s.clock.SetState(model.StateEditing)
	}
}

// StartPlacement begins a new duel with seeds per player
func (s *Session) StartPlacement(seeds int) error {
	if !s.pvpMode {
		return errors.Wrap(ErrPvPDisabled, "[StartPlacement]")
	}
	if err := s.match.NewMatch(seeds); err != nil {
		return errors.Wrap(err, "[StartPlacement]")
	}
	s.clock.SetState(model.StatePlacement)
	return nil
}

// Restart pauses, clears the board and leaves any match
func (s *Session) Restart() {
	s.clock.Pause()
	s.grid.Clear()
	s.match.DisablePvP()
}

// ModeText describes the current mode for a status line
func (s *Session) ModeText() string {
	if !s.pvpMode {
		return "Mode: free play"
	}
	state := s.clock.State()
	switch {
	case !s.match.PvPEnabled() && state != model.StatePlacement:
		return "Duel: waiting for placement"
	case state == model.StatePlacement:
		return "Duel: " + s.match.Turn().String() + " to place"
	default:
		return "Duel: simulating"
	}
}
