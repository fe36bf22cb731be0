package z80

// prefixMode tracks which index register (if any) is substituted for HL
// by a preceding DD/FD prefix byte.
type prefixMode int

const (
	prefixNone prefixMode = iota
	prefixIX
	prefixIY
)

// getR8 reads the 8-bit register/memory operand selected by a 3-bit
// r/r' field (0-7: B,C,D,E,H,L,(HL),A). Under an active DD/FD prefix,
// indices 4 and 5 read IXH/IXL or IYH/IYL instead of H/L, and index 6
// reads through (IX+d)/(IY+d) using the displacement already latched by
// dispatchIndexed.
func (c *CPU) getR8(idx uint8) uint8 {
	switch idx {
	case 0:
		return c.reg.B
	case 1:
		return c.reg.C
	case 2:
		return c.reg.D
	case 3:
		return c.reg.E
	case 4:
		switch c.curPrefix {
		case prefixIX:
			return uint8(c.reg.IX >> 8)
		case prefixIY:
			return uint8(c.reg.IY >> 8)
		}
		return c.reg.H
	case 5:
		switch c.curPrefix {
		case prefixIX:
			return uint8(c.reg.IX)
		case prefixIY:
			return uint8(c.reg.IY)
		}
		return c.reg.L
	case 6:
		return c.readMem(c.hlAddr())
	case 7:
		return c.reg.A
	}
	return 0
}

// setR8 is the write counterpart of getR8.
func (c *CPU) setR8(idx uint8, v uint8) {
	switch idx {
	case 0:
		c.reg.B = v
	case 1:
		c.reg.C = v
	case 2:
		c.reg.D = v
	case 3:
		c.reg.E = v
	case 4:
		switch c.curPrefix {
		case prefixIX:
			c.reg.IX = c.reg.IX&0x00FF | uint16(v)<<8
		case prefixIY:
			c.reg.IY = c.reg.IY&0x00FF | uint16(v)<<8
		default:
			c.reg.H = v
		}
	case 5:
		switch c.curPrefix {
		case prefixIX:
			c.reg.IX = c.reg.IX&0xFF00 | uint16(v)
		case prefixIY:
			c.reg.IY = c.reg.IY&0xFF00 | uint16(v)
		default:
			c.reg.L = v
		}
	case 6:
		c.writeMem(c.hlAddr(), v)
	case 7:
		c.reg.A = v
	}
}

// hlAddr returns the address (HL) refers to, substituting the active
// index register plus its latched displacement when DD/FD is active.
func (c *CPU) hlAddr() uint16 {
	switch c.curPrefix {
	case prefixIX:
		return uint16(int32(c.reg.IX) + int32(c.curDisp))
	case prefixIY:
		return uint16(int32(c.reg.IY) + int32(c.curDisp))
	}
	return uint16(c.reg.H)<<8 | uint16(c.reg.L)
}

// getRP reads one of the four 16-bit register pairs selected by a 2-bit
// p field (0=BC, 1=DE, 2=HL/IX/IY, 3=SP).
func (c *CPU) getRP(p uint8) uint16 {
	switch p {
	case 0:
		return uint16(c.reg.B)<<8 | uint16(c.reg.C)
	case 1:
		return uint16(c.reg.D)<<8 | uint16(c.reg.E)
	case 2:
		return c.indexOrHL()
	case 3:
		return c.reg.SP
	}
	return 0
}

func (c *CPU) setRP(p uint8, v uint16) {
	switch p {
	case 0:
		c.reg.B, c.reg.C = uint8(v>>8), uint8(v)
	case 1:
		c.reg.D, c.reg.E = uint8(v>>8), uint8(v)
	case 2:
		c.setIndexOrHL(v)
	case 3:
		c.reg.SP = v
	}
}

func (c *CPU) indexOrHL() uint16 {
	switch c.curPrefix {
	case prefixIX:
		return c.reg.IX
	case prefixIY:
		return c.reg.IY
	}
	return uint16(c.reg.H)<<8 | uint16(c.reg.L)
}

func (c *CPU) setIndexOrHL(v uint16) {
	switch c.curPrefix {
	case prefixIX:
		c.reg.IX = v
	case prefixIY:
		c.reg.IY = v
	default:
		c.reg.H, c.reg.L = uint8(v>>8), uint8(v)
	}
}

// getRP2 reads one of the four register pairs used by PUSH/POP (2=AF
// instead of SP).
func (c *CPU) getRP2(p uint8) uint16 {
	if p == 3 {
		return uint16(c.reg.A)<<8 | uint16(c.reg.F)
	}
	return c.getRP(p)
}

func (c *CPU) setRP2(p uint8, v uint16) {
	if p == 3 {
		c.reg.A, c.reg.F = uint8(v>>8), uint8(v)
		return
	}
	c.setRP(p, v)
}

// testCC evaluates one of the eight Z80 condition codes.
func (c *CPU) testCC(cc uint8) bool {
	f := c.reg.F
	switch cc {
	case 0:
		return f&flagZ == 0 // NZ
	case 1:
		return f&flagZ != 0 // Z
	case 2:
		return f&flagC == 0 // NC
	case 3:
		return f&flagC != 0 // C
	case 4:
		return f&flagP == 0 // PO
	case 5:
		return f&flagP != 0 // PE
	case 6:
		return f&flagS == 0 // P
	case 7:
		return f&flagS != 0 // M
	}
	return false
}
