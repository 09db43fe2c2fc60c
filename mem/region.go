package mem

import (
	"bytes"
	"sync"
)

// Manager hands out scratch memory regions to the generator.  A region is
// created when a lexical scope is entered and released when it exits, bounding
// the lifetime of any transient allocations made while the scope is active.
type Manager struct {
	pool sync.Pool
}

// NewManager creates a new region manager.
func NewManager() *Manager {
	return &Manager{
		pool: sync.Pool{
			New: func() interface{} {
				return &bytes.Buffer{}
			},
		},
	}
}

// NewRegion creates a new empty region backed by the manager's buffer pool.
func (m *Manager) NewRegion() *Region {
	return &Region{mgr: m}
}

// -----------------------------------------------------------------------------

// Region is an arena of scratch buffers owned by one lexical scope.  Buffers
// acquired from a region must not be retained after the region is released:
// Release returns them to the shared pool for reuse.
type Region struct {
	mgr  *Manager
	bufs []*bytes.Buffer
}

// AcquireBuffer returns an empty scratch buffer owned by the region.
func (r *Region) AcquireBuffer() *bytes.Buffer {
	buf := r.mgr.pool.Get().(*bytes.Buffer)
	buf.Reset()

	r.bufs = append(r.bufs, buf)
	return buf
}

// Release returns all of the region's buffers to the pool.  The region must
// not be used afterwards.
func (r *Region) Release() {
	for _, buf := range r.bufs {
		r.mgr.pool.Put(buf)
	}

	r.bufs = nil
	r.mgr = nil
}
