package z80

// F register flag bits.
const (
	flagC uint8 = 0x01 // Carry
	flagN uint8 = 0x02 // Subtract
	flagP uint8 = 0x04 // Parity/Overflow
	flagV       = flagP
	flag3 uint8 = 0x08 // Undocumented, copy of result bit 3
	flagH uint8 = 0x10 // Half-carry
	flag5 uint8 = 0x20 // Undocumented, copy of result bit 5
	flagZ uint8 = 0x40 // Zero
	flagS uint8 = 0x80 // Sign
)

// Precomputed per-byte flag tables, the standard lookup-table approach for
// deriving S/Z/5/3/P from a result byte without a branch per bit.
var (
	sz53Table  [256]uint8
	sz53pTable [256]uint8
	parityTable [256]uint8

	// Half-carry and overflow tables indexed by a 3-bit key built from bit 3
	// (8-bit ops) or bit 11 (16-bit ops) of {result, operand1, operand2}.
	halfcarryAddTable = [8]uint8{0, flagH, flagH, flagH, 0, 0, 0, flagH}
	halfcarrySubTable = [8]uint8{0, 0, flagH, 0, flagH, 0, flagH, flagH}
	overflowAddTable  = [8]uint8{0, 0, 0, flagV, flagV, 0, 0, 0}
	overflowSubTable  = [8]uint8{0, flagV, 0, 0, 0, 0, flagV, 0}
)

func init() {
	for i := 0; i < 256; i++ {
		sz53Table[i] = uint8(i) & (flag3 | flag5 | flagS)

		j := uint8(i)
		parity := uint8(0)
		for k := 0; k < 8; k++ {
			parity ^= j & 1
			j >>= 1
		}
		if parity == 0 {
			parityTable[i] = flagP
		}
		sz53pTable[i] = sz53Table[i] | parityTable[i]
	}
	sz53Table[0] |= flagZ
	sz53pTable[0] |= flagZ
}

// halfcarryIndex packs the relevant bit (3 for 8-bit ops, 11 for 16-bit
// ops) of dst, operand and result into a 3-bit table index.
func halfcarryIndex(dst, operand, result uint32, bit uint) uint8 {
	d := (dst >> bit) & 1
	o := (operand >> bit) & 1
	r := (result >> bit) & 1
	return uint8(d | o<<1 | r<<2)
}

func overflowIndex(dst, operand, result uint32, bit uint) uint8 {
	return halfcarryIndex(dst, operand, result, bit)
}

// addFlags8 computes the F byte after an 8-bit addition result = a + b (+carryIn).
func addFlags8(a, b, result uint8, carryIn uint8) uint8 {
	idx := halfcarryIndex(uint32(a), uint32(b), uint32(result), 3)
	oidx := overflowIndex(uint32(a), uint32(b), uint32(result), 7)
	f := sz53Table[result] &^ flagC
	f |= halfcarryAddTable[idx]
	f |= overflowAddTable[oidx]
	if uint16(a)+uint16(b)+uint16(carryIn) > 0xFF {
		f |= flagC
	}
	return f
}

// subFlags8 computes the F byte after an 8-bit subtraction result = a - b (-borrowIn).
func subFlags8(a, b, result uint8, borrowIn uint8) uint8 {
	idx := halfcarryIndex(uint32(a), uint32(b), uint32(result), 3)
	oidx := overflowIndex(uint32(a), uint32(b), uint32(result), 7)
	f := sz53Table[result] | flagN
	f |= halfcarrySubTable[idx]
	f |= overflowSubTable[oidx]
	if int(a)-int(b)-int(borrowIn) < 0 {
		f |= flagC
	}
	return f
}

// cpFlags computes the F byte for CP (a compare is a subtract that
// doesn't store, but unlike SUB, bits 3/5 come from the operand, not the
// result — a documented Z80 peculiarity).
func cpFlags(a, b uint8) uint8 {
	result := a - b
	f := subFlags8(a, b, result, 0)
	f = (f &^ (flag3 | flag5)) | (b & (flag3 | flag5))
	return f
}

// addFlags16 computes C/H/N for a 16-bit ADD (does not touch S/Z/P/V,
// per the Z80 architecture — only ADC HL/SBC HL touch those).
func addFlags16(a, b, result uint16) uint8 {
	idx := halfcarryIndex(uint32(a), uint32(b), uint32(result), 11)
	f := uint8(result>>8) & (flag3 | flag5)
	f |= halfcarryAddTable[idx]
	if uint32(a)+uint32(b) > 0xFFFF {
		f |= flagC
	}
	return f
}

// adcFlags16 computes the full F byte for ADC HL,rr; sbcFlags16 below is
// its SBC HL,rr counterpart.
func adcFlags16(a, b uint16, carryIn uint8) uint8 {
	sum := uint32(a) + uint32(b) + uint32(carryIn)
	result := uint16(sum)
	idx := halfcarryIndex(uint32(a), uint32(b), uint32(result), 11)
	oidx := overflowIndex(uint32(a), uint32(b), uint32(result), 15)
	f := sz53Table[uint8(result>>8)] &^ (flagZ)
	if result == 0 {
		f |= flagZ
	}
	f |= halfcarryAddTable[idx]
	f |= overflowAddTable[oidx]
	if sum > 0xFFFF {
		f |= flagC
	}
	return f
}

func sbcFlags16(a, b uint16, borrowIn uint8) uint8 {
	diff := int32(a) - int32(b) - int32(borrowIn)
	result := uint16(diff)
	idx := halfcarryIndex(uint32(a), uint32(b), uint32(result), 11)
	oidx := overflowIndex(uint32(a), uint32(b), uint32(result), 15)
	f := sz53Table[uint8(result>>8)] &^ flagZ
	if result == 0 {
		f |= flagZ
	}
	f |= flagN
	f |= halfcarrySubTable[idx]
	f |= overflowSubTable[oidx]
	if diff < 0 {
		f |= flagC
	}
	return f
}

// daa implements the decimal-adjust correction. After an addition (N
// clear) it adds 0x06 when the low nibble is above 9 or H is set, and
// 0x60 when A is above 0x99 or C is set; after a subtraction (N set) it
// subtracts 0x06 only when H is set and 0x60 only when C is set. H on exit is
// the half-carry produced by adding (or subtracting) that correction to
// A, via the same bit-3 table the ordinary 8-bit ALU ops use — not
// whether a correction happened at all.
func (c *CPU) daa() {
	a := c.reg.A
	f := c.reg.F

	correction := uint8(0)
	carry := f & flagC

	if f&flagN == 0 {
		if f&flagH != 0 || a&0x0F > 9 {
			correction |= 0x06
		}
		if carry != 0 || a > 0x99 {
			correction |= 0x60
			carry = flagC
		}
	} else {
		if f&flagH != 0 {
			correction |= 0x06
		}
		if carry != 0 {
			correction |= 0x60
		}
	}

	var result uint8
	var halfCarry uint8
	if f&flagN != 0 {
		result = a - correction
		idx := halfcarryIndex(uint32(a), uint32(correction), uint32(result), 3)
		halfCarry = halfcarrySubTable[idx]
	} else {
		result = a + correction
		idx := halfcarryIndex(uint32(a), uint32(correction), uint32(result), 3)
		halfCarry = halfcarryAddTable[idx]
	}

	c.reg.A = result
	c.reg.F = sz53pTable[result] | (f & flagN) | halfCarry | carry
}
