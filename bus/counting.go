package bus

import "github.com/mdrivecore/genesis-cpu/m68k"

// CountingMemory wraps an m68k.Bus and tallies reads and writes per
// address, so a test can assert exactly how many times the CPU touched a
// given location — useful for catching a decode-cache staleness bug or an
// instruction that accesses memory an extra time it shouldn't. Each access
// is counted once, at its starting address; the access size is not
// recorded.
type CountingMemory struct {
	inner m68k.Bus

	Reads  map[uint32]int
	Writes map[uint32]int

	TotalReads  int
	TotalWrites int
}

var _ m68k.Bus = (*CountingMemory)(nil)

// NewCountingMemory wraps inner with access counters.
func NewCountingMemory(inner m68k.Bus) *CountingMemory {
	return &CountingMemory{
		inner:  inner,
		Reads:  make(map[uint32]int),
		Writes: make(map[uint32]int),
	}
}

func (c *CountingMemory) Read(op m68k.Size, addr uint32) uint32 {
	c.Reads[addr]++
	c.TotalReads++
	return c.inner.Read(op, addr)
}

func (c *CountingMemory) Write(op m68k.Size, addr uint32, val uint32) {
	c.Writes[addr]++
	c.TotalWrites++
	c.inner.Write(op, addr, val)
}

func (c *CountingMemory) Reset() {
	c.inner.Reset()
}
