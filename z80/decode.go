package z80

// execOne fetches and executes one instruction, resolving any DD/FD/CB/ED
// prefix chain first. Per-instruction prefix state is reset at entry.
func (c *CPU) execOne() {
	c.curPrefix = prefixNone
	c.curDisp = 0
	op := c.fetch()
	c.dispatch(op)
}

func (c *CPU) dispatch(op uint8) {
	switch op {
	case 0xCB:
		op2 := c.fetch()
		c.execCB(op2)
	case 0xED:
		op2 := c.fetch()
		c.execED(op2)
	case 0xDD:
		c.curPrefix = prefixIX
		c.dispatchIndexed()
	case 0xFD:
		c.curPrefix = prefixIY
		c.dispatchIndexed()
	default:
		c.execUnprefixed(op)
	}
}

// dispatchIndexed handles the byte following a DD/FD prefix: another
// DD/FD replaces the active index register, CB selects the indexed
// bit/shift table (reading the displacement before the operation byte,
// per the documented ordering), and anything else is the unprefixed
// table with H/L/(HL) substitutions active.
func (c *CPU) dispatchIndexed() {
	op := c.fetch()
	switch op {
	case 0xDD:
		c.curPrefix = prefixIX
		c.dispatchIndexed()
	case 0xFD:
		c.curPrefix = prefixIY
		c.dispatchIndexed()
	case 0xCB:
		d := int8(c.fetchNoBump())
		c.curDisp = d
		op2 := c.fetchNoBump()
		c.execIndexedCB(op2)
	default:
		if usesIndexedMemory(op) {
			c.curDisp = int8(c.fetchNoBump())
		}
		c.execUnprefixed(op)
	}
}

// usesIndexedMemory reports whether an unprefixed opcode, when decoded
// under an active DD/FD prefix, touches the (HL)-equivalent operand and
// therefore needs a displacement byte read first.
func usesIndexedMemory(op uint8) bool {
	x := op >> 6
	y := (op >> 3) & 7
	z := op & 7
	switch {
	case x == 0 && (z == 4 || z == 5 || z == 6) && y == 6:
		return true
	case x == 1 && op != 0x76 && (y == 6 || z == 6):
		return true
	case x == 2 && z == 6:
		return true
	}
	return false
}

var imTable = [8]uint8{0, 0, 1, 2, 0, 0, 1, 2}

func (c *CPU) execUnprefixed(op uint8) {
	x := op >> 6
	y := (op >> 3) & 7
	z := op & 7
	p := y >> 1
	q := y & 1

	switch x {
	case 0:
		c.execX0(op, y, z, p, q)
	case 1:
		if z == 6 && y == 6 {
			c.reg.Halted = true
			return
		}
		v := c.getR8(z)
		c.setR8(y, v)
	case 2:
		c.alu8(y, c.getR8(z))
	case 3:
		c.execX3(op, y, z, p, q)
	}
}

func (c *CPU) execX0(op, y, z, p, q uint8) {
	switch z {
	case 0:
		switch y {
		case 0: // NOP
		case 1: // EX AF,AF'
			c.reg.A, c.reg.A2 = c.reg.A2, c.reg.A
			c.reg.F, c.reg.F2 = c.reg.F2, c.reg.F
		case 2: // DJNZ d
			d := int8(c.fetchNoBump())
			c.reg.B--
			if c.reg.B != 0 {
				c.reg.PC = uint16(int32(c.reg.PC) + int32(d))
				c.cycles += 5
			}
		case 3: // JR d
			d := int8(c.fetchNoBump())
			c.reg.PC = uint16(int32(c.reg.PC) + int32(d))
			c.reg.MEMPTR = c.reg.PC
			c.cycles += 5
		default: // JR cc,d
			d := int8(c.fetchNoBump())
			if c.testCC(y - 4) {
				c.reg.PC = uint16(int32(c.reg.PC) + int32(d))
				c.reg.MEMPTR = c.reg.PC
				c.cycles += 5
			}
		}
	case 1:
		if q == 0 {
			nn := c.fetchWord()
			c.setRP(p, nn)
		} else {
			c.addHL(c.getRP(p))
		}
	case 2:
		c.execX0Z2(p, q)
	case 3:
		if q == 0 {
			c.setRP(p, c.getRP(p)+1)
		} else {
			c.setRP(p, c.getRP(p)-1)
		}
		c.cycles += 2
	case 4:
		c.setR8(y, c.inc8(c.getR8(y)))
	case 5:
		c.setR8(y, c.dec8(c.getR8(y)))
	case 6:
		n := c.fetchNoBump()
		c.setR8(y, n)
	case 7:
		c.execAccumOp(y)
	}
}

func (c *CPU) execX0Z2(p, q uint8) {
	switch {
	case q == 0 && p == 0: // LD (BC),A
		addr := uint16(c.reg.B)<<8 | uint16(c.reg.C)
		c.writeMem(addr, c.reg.A)
		c.reg.MEMPTR = uint16(c.reg.A)<<8 | (addr+1)&0xFF
	case q == 0 && p == 1: // LD (DE),A
		addr := uint16(c.reg.D)<<8 | uint16(c.reg.E)
		c.writeMem(addr, c.reg.A)
		c.reg.MEMPTR = uint16(c.reg.A)<<8 | (addr+1)&0xFF
	case q == 0 && p == 2: // LD (nn),HL
		addr := c.fetchWord()
		v := c.indexOrHL()
		c.writeMem(addr, uint8(v))
		c.writeMem(addr+1, uint8(v>>8))
		c.reg.MEMPTR = addr + 1
	case q == 0 && p == 3: // LD (nn),A
		addr := c.fetchWord()
		c.writeMem(addr, c.reg.A)
		c.reg.MEMPTR = uint16(c.reg.A)<<8 | (addr+1)&0xFF
	case q == 1 && p == 0: // LD A,(BC)
		addr := uint16(c.reg.B)<<8 | uint16(c.reg.C)
		c.reg.A = c.readMem(addr)
		c.reg.MEMPTR = addr + 1
	case q == 1 && p == 1: // LD A,(DE)
		addr := uint16(c.reg.D)<<8 | uint16(c.reg.E)
		c.reg.A = c.readMem(addr)
		c.reg.MEMPTR = addr + 1
	case q == 1 && p == 2: // LD HL,(nn)
		addr := c.fetchWord()
		lo := c.readMem(addr)
		hi := c.readMem(addr + 1)
		c.setIndexOrHL(uint16(hi)<<8 | uint16(lo))
		c.reg.MEMPTR = addr + 1
	case q == 1 && p == 3: // LD A,(nn)
		addr := c.fetchWord()
		c.reg.A = c.readMem(addr)
		c.reg.MEMPTR = addr + 1
	}
}

func (c *CPU) execAccumOp(y uint8) {
	switch y {
	case 0: // RLCA
		c.reg.A = c.rlc(c.reg.A, false)
	case 1: // RRCA
		c.reg.A = c.rrc(c.reg.A, false)
	case 2: // RLA
		c.reg.A = c.rl(c.reg.A, false)
	case 3: // RRA
		c.reg.A = c.rr(c.reg.A, false)
	case 4:
		c.daa()
	case 5: // CPL
		c.reg.A = ^c.reg.A
		c.reg.F = c.reg.F&(flagS|flagZ|flagP|flagC) | flagH | flagN | c.reg.A&(flag3|flag5)
	case 6: // SCF
		c.reg.F = c.reg.F&(flagS|flagZ|flagP) | flagC | c.reg.A&(flag3|flag5)
	case 7: // CCF
		oldC := c.reg.F & flagC
		h := uint8(0)
		if oldC != 0 {
			h = flagH
		}
		newC := uint8(0)
		if oldC == 0 {
			newC = flagC
		}
		c.reg.F = c.reg.F&(flagS|flagZ|flagP) | h | newC | c.reg.A&(flag3|flag5)
	}
}

func (c *CPU) execX3(op, y, z, p, q uint8) {
	switch z {
	case 0: // RET cc
		c.cycles++
		if c.testCC(y) {
			c.reg.PC = c.pop()
			c.reg.MEMPTR = c.reg.PC
		}
	case 1:
		if q == 0 {
			c.setRP2(p, c.pop())
			return
		}
		switch p {
		case 0: // RET
			c.reg.PC = c.pop()
			c.reg.MEMPTR = c.reg.PC
		case 1: // EXX
			c.reg.B, c.reg.B2 = c.reg.B2, c.reg.B
			c.reg.C, c.reg.C2 = c.reg.C2, c.reg.C
			c.reg.D, c.reg.D2 = c.reg.D2, c.reg.D
			c.reg.E, c.reg.E2 = c.reg.E2, c.reg.E
			c.reg.H, c.reg.H2 = c.reg.H2, c.reg.H
			c.reg.L, c.reg.L2 = c.reg.L2, c.reg.L
		case 2: // JP HL/IX/IY
			c.reg.PC = c.indexOrHL()
		case 3: // LD SP,HL
			c.reg.SP = c.indexOrHL()
			c.cycles += 2
		}
	case 2: // JP cc,nn
		nn := c.fetchWord()
		c.reg.MEMPTR = nn
		if c.testCC(y) {
			c.reg.PC = nn
		}
	case 3:
		switch y {
		case 0: // JP nn
			nn := c.fetchWord()
			c.reg.MEMPTR = nn
			c.reg.PC = nn
		case 2: // OUT (n),A
			n := c.fetchNoBump()
			port := uint16(c.reg.A)<<8 | uint16(n)
			c.bus.Out(port, c.reg.A)
			c.cycles += 4
			c.reg.MEMPTR = uint16(c.reg.A)<<8 | (uint16(n)+1)&0xFF
		case 3: // IN A,(n)
			n := c.fetchNoBump()
			port := uint16(c.reg.A)<<8 | uint16(n)
			c.reg.A = c.bus.In(port)
			c.cycles += 4
			c.reg.MEMPTR = port + 1
		case 4: // EX (SP),HL
			lo := c.readMem(c.reg.SP)
			hi := c.readMem(c.reg.SP + 1)
			v := c.indexOrHL()
			c.writeMem(c.reg.SP, uint8(v))
			c.writeMem(c.reg.SP+1, uint8(v>>8))
			c.setIndexOrHL(uint16(hi)<<8 | uint16(lo))
			c.reg.MEMPTR = c.indexOrHL()
			c.cycles += 3
		case 5: // EX DE,HL
			hl := uint16(c.reg.H)<<8 | uint16(c.reg.L)
			c.reg.H, c.reg.L = c.reg.D, c.reg.E
			c.reg.D, c.reg.E = uint8(hl>>8), uint8(hl)
		case 6: // DI
			c.reg.IFF1 = false
			c.reg.IFF2 = false
		case 7: // EI
			c.reg.IFF1 = true
			c.reg.IFF2 = true
			c.pendingEI = true
		}
	case 4: // CALL cc,nn
		nn := c.fetchWord()
		c.reg.MEMPTR = nn
		if c.testCC(y) {
			c.push(c.reg.PC)
			c.reg.PC = nn
			c.cycles++
		}
	case 5:
		if q == 0 {
			c.cycles++
			c.push(c.getRP2(p))
			return
		}
		switch p {
		case 0: // CALL nn
			nn := c.fetchWord()
			c.reg.MEMPTR = nn
			c.push(c.reg.PC)
			c.reg.PC = nn
			c.cycles++
		}
	case 6: // ALU A,n
		n := c.fetchNoBump()
		c.alu8(y, n)
	case 7: // RST
		c.cycles++
		c.push(c.reg.PC)
		c.reg.PC = uint16(y) * 8
		c.reg.MEMPTR = c.reg.PC
	}
}
