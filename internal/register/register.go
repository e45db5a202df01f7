// Package register implements the SM83 register bank: four 16-bit pairs
// aliased onto 8-bit high/low halves, plus SP and PC.
package register

// Flag bit positions within F. Bits 0-3 are unused and always read zero.
const (
	FlagZ byte = 1 << 7 // zero
	FlagN byte = 1 << 6 // subtract
	FlagH byte = 1 << 5 // half-carry
	FlagC byte = 1 << 4 // carry
)

// Bank is the SM83 register file. A/F, B/C, D/E, H/L are independent byte
// pairs rather than a native 16-bit union, since Go has no union type; AF/BC/
// DE/HL() and SetAF/SetBC/SetDE/SetHL() reconstruct the little-endian view.
type Bank struct {
	A, F byte
	B, C byte
	D, E byte
	H, L byte
	SP   uint16
	PC   uint16
}

// ResetPostBoot sets the bank to the documented DMG post-boot-ROM state
// (spec.md S1), for sessions started without a boot ROM.
func (r *Bank) ResetPostBoot() {
	r.A, r.F = 0x01, 0xB0
	r.B, r.C = 0x00, 0x13
	r.D, r.E = 0x00, 0xD8
	r.H, r.L = 0x01, 0x4D
	r.SP = 0xFFFE
	r.PC = 0x0100
}

func (r *Bank) AF() uint16 { return uint16(r.A)<<8 | uint16(r.F) }
func (r *Bank) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }
func (r *Bank) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }
func (r *Bank) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }

// SetAF writes a 16-bit value into A/F. The low nibble of F is masked off
// unconditionally: bits 0-3 of F are never observable as non-zero.
func (r *Bank) SetAF(v uint16) {
	r.A = byte(v >> 8)
	r.F = byte(v) & 0xF0
}

func (r *Bank) SetBC(v uint16) { r.B = byte(v >> 8); r.C = byte(v) }
func (r *Bank) SetDE(v uint16) { r.D = byte(v >> 8); r.E = byte(v) }
func (r *Bank) SetHL(v uint16) { r.H = byte(v >> 8); r.L = byte(v) }

// SetF overwrites the flag byte, masking its low nibble.
func (r *Bank) SetF(v byte) { r.F = v & 0xF0 }

func (r *Bank) Zero() bool      { return r.F&FlagZ != 0 }
func (r *Bank) Subtract() bool  { return r.F&FlagN != 0 }
func (r *Bank) HalfCarry() bool { return r.F&FlagH != 0 }
func (r *Bank) Carry() bool     { return r.F&FlagC != 0 }

// SetFlags rewrites all four flag bits at once.
func (r *Bank) SetFlags(z, n, h, c bool) {
	var f byte
	if z {
		f |= FlagZ
	}
	if n {
		f |= FlagN
	}
	if h {
		f |= FlagH
	}
	if c {
		f |= FlagC
	}
	r.F = f
}

// R8 identifies an 8-bit operand slot in the standard SM83 register-index
// encoding used by both the unprefixed ALU block and the CB-prefixed block:
// B,C,D,E,H,L,(HL),A in that order. (HL) is not a register but is included
// so decode tables can treat all eight slots uniformly.
type R8 byte

const (
	RB R8 = iota
	RC
	RD
	RE
	RH
	RL
	RHLInd
	RA
)

// R16 identifies a 16-bit register pair for LD/PUSH/POP/INC/DEC/ADD HL,rr.
type R16 byte

const (
	RBC R16 = iota
	RDE
	RHL
	RSP
	RAF // PUSH/POP only
)
