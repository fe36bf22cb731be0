package bus

import (
	"testing"

	"github.com/mdrivecore/genesis-cpu/m68k"
)

func TestROMIsReadOnly(t *testing.T) {
	rom := make([]byte, 0x400000)
	rom[0] = 0xAA
	b := NewSystemBus(rom)

	b.Write(m68k.Byte, 0, 0x55)
	if got := b.Read(m68k.Byte, 0); got != 0xAA {
		t.Fatalf("ROM write was not discarded: read back %#02x, want 0xAA", got)
	}
}

func TestWorkRAMIsMirrored(t *testing.T) {
	b := NewSystemBus(nil)
	b.Write(m68k.Byte, 0xE00000, 0x42)

	if got := b.Read(m68k.Byte, 0xFF0000); got != 0x42 {
		t.Fatalf("mirrored RAM read = %#02x, want 0x42", got)
	}
}

func TestZ80WindowGatedByBusReq(t *testing.T) {
	b := NewSystemBus(nil)

	b.Write(m68k.Byte, 0xA00000, 0x99)
	if got := b.Read(m68k.Byte, 0xA00000); got == 0x99 {
		t.Fatalf("write to Z80 window succeeded without BUSREQ")
	}

	b.Write(m68k.Byte, 0xA11100, 0x01)
	b.Write(m68k.Byte, 0xA00000, 0x99)
	if got := b.Read(m68k.Byte, 0xA00000); got != 0x99 {
		t.Fatalf("Z80 window write under BUSREQ failed: got %#02x, want 0x99", got)
	}
}

func TestZ80BankRegisterAccumulatesNineBits(t *testing.T) {
	b := NewSystemBus(nil)

	// The first bit written ends up shifted all the way to bit 0 once
	// eight more bits have followed it; the last bit written lands at
	// bit 8, the top of the 9-bit bank value.
	b.Write(m68k.Byte, 0xA06000, 1)
	for i := 0; i < 8; i++ {
		b.Write(m68k.Byte, 0xA06000, 0)
	}

	if got := b.Z80BankAddress(); got != 0x8000 {
		t.Fatalf("Z80 bank address = %#06x, want 0x8000 (bank 1 << 15)", got)
	}
}

func TestVDPByteWriteToDataPortIsNoOp(t *testing.T) {
	b := NewSystemBus(nil)
	b.vdpData[0] = 0x12

	b.Write(m68k.Byte, 0xC00000, 0x34)

	if b.vdpData[0] != 0x12 {
		t.Fatalf("byte write to VDP data port changed state: got %#02x, want 0x12 unchanged", b.vdpData[0])
	}
}

func TestOpenBusOutsideAnyMappedDevice(t *testing.T) {
	b := NewSystemBus(nil)
	if got := b.Read(m68k.Byte, 0x500000); got != 0xFF {
		t.Fatalf("unmapped read = %#02x, want 0xFF", got)
	}
}

func TestZ80ViewSeesBankedWindow(t *testing.T) {
	rom := make([]byte, 0x400000)
	rom[0x8234] = 0xAB
	b := NewSystemBus(rom)

	// Bank register bits 1,0,0,0,0,0,0,0,0 -> bank 1 -> base 0x8000.
	b.Write(m68k.Byte, 0xA06000, 1)
	for i := 0; i < 8; i++ {
		b.Write(m68k.Byte, 0xA06000, 0)
	}

	view := NewZ80View(b)

	if got := view.Read(0x8234); got != 0xAB {
		t.Fatalf("Z80 banked window read = %#02x, want 0xAB", got)
	}
}

func TestCountingMemoryTallies(t *testing.T) {
	cm := NewCountingMemory(NewFlatRam(0x10000))
	cm.Write(m68k.Byte, 0x10, 1)
	cm.Read(m68k.Byte, 0x10)
	cm.Read(m68k.Byte, 0x10)

	if cm.Writes[0x10] != 1 {
		t.Errorf("Writes[0x10] = %d, want 1", cm.Writes[0x10])
	}
	if cm.Reads[0x10] != 2 {
		t.Errorf("Reads[0x10] = %d, want 2", cm.Reads[0x10])
	}
	if cm.TotalReads != 2 || cm.TotalWrites != 1 {
		t.Errorf("totals = %d reads, %d writes", cm.TotalReads, cm.TotalWrites)
	}
}
