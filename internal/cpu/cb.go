package cpu

// decodeCB handles the CB-prefixed opcode map: rotates/shifts/swap
// (0x00-0x3F), BIT (0x40-0x7F), RES (0x80-0xBF), SET (0xC0-0xFF), each
// against one of the 8 r8 decode slots in the low 3 bits.
func (c *CPU) decodeCB(cbOpcode byte) {
	r := cbOpcode & 7
	group := cbOpcode >> 6
	n := (cbOpcode >> 3) & 7

	if group == 1 { // BIT n,r8
		if r == 6 {
			c.queue(1, func(cc *CPU) { cc.bit(n, cc.getR8(6)) })
		} else {
			c.bit(n, c.getR8(r))
		}
		return
	}

	if group == 2 { // RES n,r8
		if r == 6 {
			c.queue(2, func(cc *CPU) { cc.setR8(6, cc.getR8(6)&^(1<<n)) })
		} else {
			c.setR8(r, c.getR8(r)&^(1<<n))
		}
		return
	}

	if group == 3 { // SET n,r8
		if r == 6 {
			c.queue(2, func(cc *CPU) { cc.setR8(6, cc.getR8(6)|1<<n) })
		} else {
			c.setR8(r, c.getR8(r)|1<<n)
		}
		return
	}

	// group == 0: rotate/shift/swap, selected by n (0..7)
	op := func(v byte) byte {
		switch n {
		case 0:
			return c.rlc(v)
		case 1:
			return c.rrc(v)
		case 2:
			return c.rl(v)
		case 3:
			return c.rr(v)
		case 4:
			return c.sla(v)
		case 5:
			return c.sra(v)
		case 6:
			return c.swap(v)
		default:
			return c.srl(v)
		}
	}
	if r == 6 {
		c.queue(2, func(cc *CPU) { cc.setR8(6, op(cc.getR8(6))) })
	} else {
		c.setR8(r, op(c.getR8(r)))
	}
}
