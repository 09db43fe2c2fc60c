package mem

import "testing"

func TestRegionBuffersStartEmpty(t *testing.T) {
	mgr := NewManager()

	r1 := mgr.NewRegion()
	buf := r1.AcquireBuffer()
	buf.WriteString("scratch")
	r1.Release()

	// A buffer recycled through the pool must come back reset.
	r2 := mgr.NewRegion()
	buf2 := r2.AcquireBuffer()
	if buf2.Len() != 0 {
		t.Errorf("recycled buffer len = %d, want 0", buf2.Len())
	}
	r2.Release()
}

func TestRegionTracksMultipleBuffers(t *testing.T) {
	mgr := NewManager()
	r := mgr.NewRegion()

	a := r.AcquireBuffer()
	b := r.AcquireBuffer()
	if a == b {
		t.Fatal("region handed out the same buffer twice")
	}

	a.WriteString("x")
	b.WriteString("y")
	if a.String() != "x" || b.String() != "y" {
		t.Error("buffers are not independent")
	}

	r.Release()
}
