package clock

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sheikhrachel/go-gol-duel/events"
	"github.com/sheikhrachel/go-gol-duel/model"
)

// DefaultStepDelay is the pause between generations while running
const DefaultStepDelay = 100 * time.Millisecond

// Stepper advances a grid by one generation and reports births per color
type Stepper interface {
	Step(g *model.Grid) (whiteBorn, blackBorn int)
}

/*
Clock owns the shared simulation state and schedules generations.

Run is the single logical thread of the simulation: the step timer and every
command submitted through Do execute on it one at a time, so a generation is
never interleaved with an edit. Start, Pause, StepOnce, SetState and
SetStepDelay must be called from that thread (inside Do, an event handler, or
before Run starts).
*/
type Clock struct {
	grid    *model.Grid
	stepper Stepper
	bus     *events.Bus
	logger  *zap.Logger

	state      model.SimState
	stepDelay  time.Duration
	generation int

	timer  *time.Timer
	timerC <-chan time.Time // nil unless a step is scheduled

	commands chan func()
}

func New(grid *model.Grid, stepper Stepper, bus *events.Bus, logger *zap.Logger) *Clock {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Clock{
		grid:      grid,
		stepper:   stepper,
		bus:       bus,
		logger:    logger,
		state:     model.StateEditing,
		stepDelay: DefaultStepDelay,
		commands:  make(chan func()),
	}
}

func (c *Clock) State() model.SimState        { return c.state }
func (c *Clock) StepDelay() time.Duration     { return c.stepDelay }
func (c *Clock) Generation() int              { return c.generation }
func (c *Clock) SetStepDelay(d time.Duration) { c.stepDelay = max(0, d) }

// Start begins the run loop with an immediate step. It is a no-op while running.
func (c *Clock) Start() {
	if c.state == model.StateRunning {
		return
	}
	c.state = model.StateRunning
	c.logger.Debug("simulation started", zap.Duration("step_delay", c.stepDelay))
	c.tick()
}

// Pause cancels any scheduled step and returns to editing
func (c *Clock) Pause() {
	c.cancel()
	if c.state == model.StateRunning {
		c.logger.Debug("simulation paused", zap.Int("generation", c.generation))
	}
	c.state = model.StateEditing
}

// StepOnce applies a single generation without touching the state or the loop
func (c *Clock) StepOnce() {
	c.step()
}

// SetState replaces the simulation state, stopping the run loop first
func (c *Clock) SetState(state model.SimState) {
	if state != model.StateRunning {
		c.cancel()
	}
	c.state = state
}

// Run drives the clock until ctx is done
func (c *Clock) Run(ctx context.Context) error {
	defer c.cancel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-c.commands:
			fn()
		case <-c.timerC:
			c.timerC = nil
			c.tick()
		}
	}
}

// Do runs fn on the Run loop and waits for it to finish. It blocks until Run
// picks the command up or ctx is done.
func (c *Clock) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	cmd := func() {
		defer close(done)
		fn()
	}
	select {
	case c.commands <- cmd:
	case <-ctx.Done():
		return ctx.Err()
	}
	<-done
	return nil
}

// tick steps while running and schedules the next step. A step may stop the
// loop, e.g. when a match ends.
func (c *Clock) tick() {
	if c.state != model.StateRunning {
		return
	}
	c.step()
	if c.state != model.StateRunning {
		return
	}
	c.timer = time.NewTimer(c.stepDelay)
	c.timerC = c.timer.C
}

func (c *Clock) step() {
	white, black := c.stepper.Step(c.grid)
	c.generation++
	c.bus.EmitScoreChanged(events.ScoreChanged{WhiteDelta: white, BlackDelta: black})
}

func (c *Clock) cancel() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.timerC = nil
}
