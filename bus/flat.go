package bus

import "github.com/mdrivecore/genesis-cpu/m68k"

// FlatRam is a minimal m68k.Bus backed by a single flat byte array with
// no device decoding at all: every address reads and writes the same
// backing store. It exists so tests (and fuzz targets) can exercise the
// CPU core without standing up the full Genesis memory map.
type FlatRam struct {
	mem []byte
}

var _ m68k.Bus = (*FlatRam)(nil)

// NewFlatRam returns a FlatRam of the given size in bytes.
func NewFlatRam(size int) *FlatRam {
	return &FlatRam{mem: make([]byte, size)}
}

func (r *FlatRam) Read(op m68k.Size, addr uint32) uint32 {
	addr = addr % uint32(len(r.mem))
	switch op {
	case m68k.Byte:
		return uint32(r.mem[addr])
	case m68k.Word:
		return uint32(r.mem[addr])<<8 | uint32(r.mem[(addr+1)%uint32(len(r.mem))])
	case m68k.Long:
		hi := r.Read(m68k.Word, addr)
		lo := r.Read(m68k.Word, addr+2)
		return hi<<16 | lo
	}
	return 0
}

func (r *FlatRam) Write(op m68k.Size, addr uint32, val uint32) {
	n := uint32(len(r.mem))
	addr %= n
	switch op {
	case m68k.Byte:
		r.mem[addr] = byte(val)
	case m68k.Word:
		r.mem[addr] = byte(val >> 8)
		r.mem[(addr+1)%n] = byte(val)
	case m68k.Long:
		r.Write(m68k.Word, addr, val>>16)
		r.Write(m68k.Word, addr+2, val)
	}
}

func (r *FlatRam) Reset() {
	for i := range r.mem {
		r.mem[i] = 0
	}
}

// Bytes exposes the backing array for direct test manipulation.
func (r *FlatRam) Bytes() []byte { return r.mem }
