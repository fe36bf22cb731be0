package bus

import "github.com/mdrivecore/genesis-cpu/z80"

// Z80View presents the Z80's 16-bit address space as seen from inside the
// sound sub-system: its own 8KB RAM (mirrored across 0x0000-0x3FFF), the
// FM chip's two register/data port pairs at 0x4000-0x5FFF, and a movable
// 32KB window onto the 68K's address space at 0x8000-0xFFFF, based at
// SystemBus.Z80BankAddress(). It implements z80.Bus.
type Z80View struct {
	sys *SystemBus
}

// NewZ80View returns a z80.Bus backed by sys.
func NewZ80View(sys *SystemBus) *Z80View {
	return &Z80View{sys: sys}
}

var _ z80.Bus = (*Z80View)(nil)

func (v *Z80View) Read(addr uint16) uint8 {
	switch {
	case addr < 0x4000:
		return v.sys.z80RAM[addr&0x1FFF]
	case addr < 0x6000:
		return v.sys.ym2612[(addr-0x4000)&3]
	case addr < 0x8000:
		return openBus
	default:
		return v.sys.readByte(v.sys.Z80BankAddress() + uint32(addr-0x8000))
	}
}

func (v *Z80View) Write(addr uint16, val uint8) {
	switch {
	case addr < 0x4000:
		v.sys.z80RAM[addr&0x1FFF] = val
	case addr < 0x6000:
		v.sys.ym2612[(addr-0x4000)&3] = val
	case addr < 0x8000:
		// Unmapped in the Z80's own address space.
	default:
		v.sys.writeByte(v.sys.Z80BankAddress()+uint32(addr-0x8000), val)
	}
}

// In and Out are stubs: the Genesis hardware never wires anything to the
// Z80's I/O address space, so any IN/OUT a misbehaving program executes
// reaches nothing.
func (v *Z80View) In(port uint16) uint8      { return openBus }
func (v *Z80View) Out(port uint16, val uint8) {}

func (v *Z80View) Reset() {}
