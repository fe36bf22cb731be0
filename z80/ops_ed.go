package z80

// execED executes an ED-prefixed instruction. Most of the ED space below
// 0x40 and above 0xBF (and the unlisted rows within 0x80-0xBF) has no
// documented effect; real silicon treats it as an 8-cycle NOP, which is
// what falls out here by default.
func (c *CPU) execED(op uint8) {
	x := op >> 6
	y := (op >> 3) & 7
	z := op & 7
	p := y >> 1
	q := y & 1

	switch x {
	case 1:
		c.execEDMisc(y, z, p, q)
	case 2:
		if y >= 4 {
			c.execEDBlock(y, z)
		}
	}
}

func (c *CPU) execEDMisc(y, z, p, q uint8) {
	switch z {
	case 0: // IN r[y],(C)
		port := uint16(c.reg.B)<<8 | uint16(c.reg.C)
		v := c.bus.In(port)
		c.cycles += 4
		c.reg.MEMPTR = port + 1
		f := sz53pTable[v] | c.reg.F&flagC
		c.reg.F = f
		if y != 6 {
			c.setR8(y, v)
		}
	case 1: // OUT (C),r[y]
		port := uint16(c.reg.B)<<8 | uint16(c.reg.C)
		v := uint8(0)
		if y != 6 {
			v = c.getR8(y)
		}
		c.bus.Out(port, v)
		c.cycles += 4
		c.reg.MEMPTR = port + 1
	case 2:
		if q == 0 {
			c.sbcHL(c.getRP(p))
		} else {
			c.adcHL(c.getRP(p))
		}
	case 3:
		addr := c.fetchWord()
		if q == 0 {
			v := c.getRP(p)
			c.writeMem(addr, uint8(v))
			c.writeMem(addr+1, uint8(v>>8))
		} else {
			lo := c.readMem(addr)
			hi := c.readMem(addr + 1)
			c.setRP(p, uint16(hi)<<8|uint16(lo))
		}
		c.reg.MEMPTR = addr + 1
	case 4: // NEG
		operand := c.reg.A
		c.reg.A = 0
		c.sub8(operand, false)
	case 5: // RETN / RETI
		c.reg.PC = c.pop()
		c.reg.MEMPTR = c.reg.PC
		c.reg.IFF1 = c.reg.IFF2
	case 6: // IM
		c.reg.IM = imTable[y]
	case 7:
		c.execEDRegMisc(y)
	}
}

func (c *CPU) execEDRegMisc(y uint8) {
	switch y {
	case 0: // LD I,A
		c.reg.I = c.reg.A
		c.cycles++
	case 1: // LD R,A
		c.reg.R = c.reg.A
		c.cycles++
	case 2: // LD A,I
		c.reg.A = c.reg.I
		c.reg.F = sz53Table[c.reg.A] | c.reg.F&flagC
		if c.reg.IFF2 {
			c.reg.F |= flagP
		}
		c.cycles++
	case 3: // LD A,R
		c.reg.A = c.reg.R
		c.reg.F = sz53Table[c.reg.A] | c.reg.F&flagC
		if c.reg.IFF2 {
			c.reg.F |= flagP
		}
		c.cycles++
	case 4: // RRD
		addr := uint16(c.reg.H)<<8 | uint16(c.reg.L)
		m := c.readMem(addr)
		a := c.reg.A
		newM := a<<4 | m>>4
		newA := a&0xF0 | m&0x0F
		c.writeMem(addr, newM)
		c.reg.A = newA
		c.reg.F = sz53pTable[newA] | c.reg.F&flagC
		c.reg.MEMPTR = addr + 1
		c.cycles += 4
	case 5: // RLD
		addr := uint16(c.reg.H)<<8 | uint16(c.reg.L)
		m := c.readMem(addr)
		a := c.reg.A
		newM := m<<4 | a&0x0F
		newA := a&0xF0 | m>>4
		c.writeMem(addr, newM)
		c.reg.A = newA
		c.reg.F = sz53pTable[newA] | c.reg.F&flagC
		c.reg.MEMPTR = addr + 1
		c.cycles += 4
	}
}

// execEDBlock dispatches the sixteen block instructions (y=4..7, z=0..3):
// LDI/LDD/LDIR/LDDR, CPI/CPD/CPIR/CPDR, INI/IND/INIR/INDR, OUTI/OUTD/OTIR/OTDR.
func (c *CPU) execEDBlock(y, z uint8) {
	repeat := y >= 6
	dec := y == 5 || y == 7

	switch z {
	case 0:
		c.blockLD(dec, repeat)
	case 1:
		c.blockCP(dec, repeat)
	case 2:
		c.blockIN(dec, repeat)
	case 3:
		c.blockOUT(dec, repeat)
	}
}
