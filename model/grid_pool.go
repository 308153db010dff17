package model

import "sync"

// GridToPool returns a scratch grid to the pool for reuse
func GridToPool(grid *Grid, pool *GridPool) {
	if pool == nil || grid == nil {
		return
	}

	pool.Put(grid)
}

// GridPool recycles next-generation buffers between steps
type GridPool struct {
	pool sync.Pool
}

func NewGridPool() *GridPool {
	return &GridPool{
		pool: sync.Pool{
			New: func() interface{} {
				return &Grid{}
			},
		},
	}
}

// Get retrieves a dead grid of the requested dimensions
func (p *GridPool) Get(width, height int) (*Grid, error) {
	g := p.pool.Get().(*Grid)
	if g.width == width && g.height == height {
		g.wrap = false
		return g, nil
	}
	if err := g.Reset(width, height); err != nil {
		return nil, err
	}
	return g, nil
}

// Put returns a grid to the pool, clearing its cells
func (p *GridPool) Put(g *Grid) {
	g.Clear()
	p.pool.Put(g)
}
