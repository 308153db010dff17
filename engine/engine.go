package engine

import (
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-gol-duel/model"
	"github.com/sheikhrachel/go-gol-duel/rules"
)

// Engine computes generation transitions for a two-owner grid
type Engine struct {
	parallel bool
	workers  int
	pool     *model.GridPool
	logger   *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithParallel splits each generation's rows across workers goroutines.
// workers <= 0 means runtime.NumCPU().
func WithParallel(workers int) Option {
	return func(e *Engine) {
		e.parallel = true
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
		e.workers = workers
	}
}

// WithPool reuses scratch generation buffers from pool
func WithPool(pool *model.GridPool) Option {
	return func(e *Engine) { e.pool = pool }
}

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{workers: 1, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type birthCount struct {
	white, black int
}

// Next computes the generation after g without touching g. The returned grid
// shares g's dimensions and wrap setting.
func (e *Engine) Next(g *model.Grid) (next *model.Grid, whiteBorn, blackBorn int) {
	next = e.scratch(g)
	next.SetWrap(g.Wrap())

	var (
		height  = g.GetHeight()
		workers = max(1, min(e.workers, height))
	)
	if !e.parallel || workers == 1 {
		c := evolveRows(g, next, 0, height)
		return next, c.white, c.black
	}

	var (
		eg            errgroup.Group
		counts        = make([]birthCount, workers)
		rowsPerWorker = (height + workers - 1) / workers // Ceiling division
	)
	for i := range workers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, height)
		)
		if startRow >= height {
			break
		}
		eg.Go(func() error {
			counts[i] = evolveRows(g, next, startRow, endRow)
			return nil
		})
	}
	// workers never fail
	_ = eg.Wait()

	for _, c := range counts {
		whiteBorn += c.white
		blackBorn += c.black
	}
	return next, whiteBorn, blackBorn
}

// Step advances g by one generation in place and reports the births per color
func (e *Engine) Step(g *model.Grid) (whiteBorn, blackBorn int) {
	next, whiteBorn, blackBorn := e.Next(g)
	if err := g.Swap(next); err != nil {
		// Next always sizes its buffer from g
		e.logger.Error("generation swap failed", zap.Error(err))
		return 0, 0
	}
	model.GridToPool(next, e.pool)
	return whiteBorn, blackBorn
}

func (e *Engine) scratch(g *model.Grid) *model.Grid {
	if e.pool != nil {
		if next, err := e.pool.Get(g.GetWidth(), g.GetHeight()); err == nil {
			return next
		}
	}
	// g exists, so its dimensions are valid
	next, _ := model.NewGrid(g.GetWidth(), g.GetHeight())
	return next
}

// evolveRows writes rows [startRow, endRow) of the next generation. Workers
// own disjoint rows of next and only read from cur.
func evolveRows(cur, next *model.Grid, startRow, endRow int) (c birthCount) {
	width := cur.GetWidth()
	for y := startRow; y < endRow; y++ {
		for x := 0; x < width; x++ {
			n, w, b := cur.CountNeighbors(x, y)
			alive, owner, born := rules.ApplyDuelRules(cur.Get(x, y), cur.OwnerAt(x, y), n, w, b)
			next.SetCell(x, y, alive, owner)
			if !born {
				continue
			}
			switch owner {
			case model.OwnerWhite:
				c.white++
			case model.OwnerBlack:
				c.black++
			}
		}
	}
	return c
}
