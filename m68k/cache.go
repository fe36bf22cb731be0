package m68k

// decodeCacheSize is the number of direct-mapped slots in the instruction
// decode cache. Must be a power of two.
const decodeCacheSize = 4096

// decodeCacheSlot remembers the opcode word fetched at a given PC and the
// handler it decodes to, so a re-fetch of the same address can skip both
// the bus read and the opcodeTable lookup.
type decodeCacheSlot struct {
	pc      uint32
	valid   bool
	opcode  uint16
	handler opFunc
}

// decodeCache is a direct-mapped cache keyed by (pc>>1)&(decodeCacheSize-1).
// It holds no state that isn't trivially reconstructible from the bus: a
// slot is only ever a memoized (pc, opcode, handler) triple, and any write
// that lands on an instruction address must invalidate the covering slot so
// self-modifying code is always observed on the next fetch.
type decodeCache struct {
	slots [decodeCacheSize]decodeCacheSlot
}

func cacheIndex(pc uint32) uint32 {
	return (pc >> 1) & (decodeCacheSize - 1)
}

// lookup returns the cached opcode and handler for pc, or ok=false on a miss.
func (d *decodeCache) lookup(pc uint32) (opcode uint16, handler opFunc, ok bool) {
	s := &d.slots[cacheIndex(pc)]
	if s.valid && s.pc == pc {
		return s.opcode, s.handler, true
	}
	return 0, nil, false
}

// insert stores a freshly decoded (pc, opcode, handler) triple.
func (d *decodeCache) insert(pc uint32, opcode uint16, handler opFunc) {
	s := &d.slots[cacheIndex(pc)]
	s.pc = pc
	s.opcode = opcode
	s.handler = handler
	s.valid = true
}

// invalidate drops whatever slot currently covers the word at addr, if any.
// It does not check that the slot actually held addr's instruction: the
// direct-mapped index is all that's needed, since a false-positive
// invalidation only costs a harmless re-decode.
func (d *decodeCache) invalidate(addr uint32) {
	d.slots[cacheIndex(addr&^1)].valid = false
}

// invalidateRange invalidates every cache slot whose word overlaps a write
// of sz bytes starting at addr.
func (d *decodeCache) invalidateRange(addr uint32, sz Size) {
	start := addr &^ 1
	end := addr + uint32(sz)
	for a := start; a < end; a += 2 {
		d.invalidate(a)
	}
}

// reset clears every slot, used on CPU reset/state load.
func (d *decodeCache) reset() {
	*d = decodeCache{}
}

// fetchDecoded fetches the opcode word at the current PC, consulting (and
// populating) the decode cache, and returns the opcode and its handler.
// PC is advanced by 2 as a side effect, matching fetchPC.
func (c *CPU) fetchDecoded() (uint16, opFunc) {
	pc := c.reg.PC
	if opcode, handler, ok := c.cache.lookup(pc); ok {
		c.reg.PC += 2
		return opcode, handler
	}
	opcode := c.fetchPC()
	handler := opcodeTable[opcode]
	c.cache.insert(pc, opcode, handler)
	return opcode, handler
}
