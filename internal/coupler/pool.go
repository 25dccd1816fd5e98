package coupler

import (
	"sync"

	"github.com/san-kum/coastsim/internal/bmi"
)

// bufferPool recycles the scratch slices used for binding transfers, one pool
// per transfer size.
type bufferPool struct {
	mu    sync.Mutex
	pools map[int]*sync.Pool
}

func newBufferPool() *bufferPool {
	return &bufferPool{pools: make(map[int]*sync.Pool)}
}

func (p *bufferPool) get(h *bmi.Handle, name string) []float64 {
	v, ok := h.Var(name)
	if !ok {
		return nil
	}
	g, ok := h.Grid(v.Grid)
	if !ok {
		return nil
	}
	size := g.Size()

	p.mu.Lock()
	pool, ok := p.pools[size]
	if !ok {
		pool = &sync.Pool{
			New: func() interface{} {
				return make([]float64, size)
			},
		}
		p.pools[size] = pool
	}
	p.mu.Unlock()

	return pool.Get().([]float64)
}

func (p *bufferPool) put(buf []float64) {
	if buf == nil {
		return
	}
	p.mu.Lock()
	pool, ok := p.pools[len(buf)]
	p.mu.Unlock()
	if !ok {
		return
	}
	for i := range buf {
		buf[i] = 0
	}
	pool.Put(buf)
}
