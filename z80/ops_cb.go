package z80

// execCB executes an unprefixed CB-table instruction: rotate/shift (x=0),
// BIT (x=1), RES (x=2), SET (x=3), operand selected by z (0-7: B,C,D,E,H,L,(HL),A).
func (c *CPU) execCB(op uint8) {
	x := op >> 6
	y := (op >> 3) & 7
	z := op & 7

	v := c.getR8(z)

	switch x {
	case 0:
		c.setR8(z, c.rot(y, v))
	case 1:
		if z == 6 {
			c.bitMem(y, v)
		} else {
			c.bit(y, v)
		}
	case 2:
		c.setR8(z, v&^(1<<y))
	case 3:
		c.setR8(z, v|1<<y)
	}
}

// execIndexedCB executes a DD-CB/FD-CB instruction: the operand is
// always (IX+d)/(IY+d) (the displacement is already latched in
// c.curDisp by the caller), and when z != 6 the result is additionally
// copied into the named 8-bit register — the well-known undocumented
// "shift and store" behavior shared by most Z80 implementations.
func (c *CPU) execIndexedCB(op uint8) {
	x := op >> 6
	y := (op >> 3) & 7
	z := op & 7

	addr := c.hlAddr()
	v := c.readMem(addr)

	switch x {
	case 0:
		result := c.rot(y, v)
		c.writeMem(addr, result)
		if z != 6 {
			c.setR8(z, result)
		}
	case 1:
		c.reg.MEMPTR = addr
		c.bitMem(y, v)
	case 2:
		result := v &^ (1 << y)
		c.writeMem(addr, result)
		if z != 6 {
			c.setR8(z, result)
		}
	case 3:
		result := v | 1<<y
		c.writeMem(addr, result)
		if z != 6 {
			c.setR8(z, result)
		}
	}
}
