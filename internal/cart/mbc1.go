package cart

// MBC1 implements the simplified banking model spec.md §4.B and §4.C
// require: a 5-bit switchable ROM bank (zero coerced to one), and nothing
// else. spec.md is explicit that RAM-enable (0000-1FFF) and mode-select
// (6000-7FFF) writes are accepted but have no behavioral effect in this
// model — Open Question 1 leaves it unspecified whether tests depending on
// RAM gating or ROM-bank-0 remapping in mode 1 must pass, so this repo does
// not implement either; external RAM, when present, is always accessible
// at a fixed bank 0 regardless of any write to 6000-7FFF.
type MBC1 struct {
	rom []byte
	ram []byte

	bank byte // 5-bit ROM bank select for 4000-7FFF; 0 coerced to 1 on use
}

// NewMBC1 constructs an MBC1 cartridge with the given ROM image and
// external RAM size (0 if the header reports no RAM).
func NewMBC1(rom []byte, ramSize int) *MBC1 {
	m := &MBC1{rom: rom}
	if ramSize > 0 {
		m.ram = make([]byte, ramSize)
	}
	return m
}

func (m *MBC1) Read(addr uint16) byte {
	switch {
	case addr < 0x4000:
		if int(addr) < len(m.rom) {
			return m.rom[addr]
		}
		return 0xFF
	case addr < 0x8000:
		off := int(m.effectiveBank())*0x4000 + int(addr-0x4000)
		if off < len(m.rom) {
			return m.rom[off]
		}
		return 0xFF
	case addr >= 0xA000 && addr <= 0xBFFF:
		if len(m.ram) == 0 {
			return 0xFF
		}
		off := int(addr - 0xA000)
		if off < len(m.ram) {
			return m.ram[off]
		}
		return 0xFF
	default:
		return 0xFF
	}
}

func (m *MBC1) Write(addr uint16, value byte) {
	switch {
	case addr < 0x2000:
		// RAM enable: no effect in this simplified model.
	case addr < 0x4000:
		m.bank = value & 0x1F
	case addr < 0x6000:
		// RAM-bank / ROM-bank-high-bits select: not modeled.
	case addr < 0x8000:
		// Banking mode select: no effect in this simplified model.
	case addr >= 0xA000 && addr <= 0xBFFF:
		if len(m.ram) == 0 {
			return
		}
		off := int(addr - 0xA000)
		if off < len(m.ram) {
			m.ram[off] = value
		}
	}
}

// effectiveBank is the switchable-area bank number with the documented
// zero-coerced-to-one rule (spec.md §3, §8 universal invariant 2).
func (m *MBC1) effectiveBank() byte {
	if m.bank == 0 {
		return 1
	}
	return m.bank
}
