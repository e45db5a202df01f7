package cart

import "fmt"

// Cartridge is the minimal interface the bus needs for ROM/RAM banking.
// Addresses are CPU addresses, not ROM file offsets.
type Cartridge interface {
	// Read returns a byte for ROM (0x0000-0x7FFF) and external RAM (0xA000-0xBFFF).
	Read(addr uint16) byte
	// Write handles MBC control writes (0x0000-0x7FFF) and external RAM writes (0xA000-0xBFFF).
	Write(addr uint16, value byte)
}

// NewCartridge parses the ROM header and picks an implementation. spec.md
// requires only ROM-only and MBC1; MBC2/MBC3/MBC5/RTC cartridges are an
// explicit Non-goal, so any other recognized MBC type falls back to
// ROM-only best-effort rather than refusing to run (spec.md §6: "others may
// log and run best-effort"). A truncated ROM that cannot even be header-
// parsed is a cartridge decode failure and is reported to the caller
// (spec.md §7), since there is nothing sensible to run.
func NewCartridge(rom []byte) (Cartridge, *Header, error) {
	h, err := ParseHeader(rom)
	if err != nil {
		return nil, nil, fmt.Errorf("cartridge decode failed: %w", err)
	}
	switch h.CartType {
	case 0x00:
		return NewROMOnly(rom), h, nil
	case 0x01, 0x02, 0x03:
		return NewMBC1(rom, h.RAMSizeBytes), h, nil
	default:
		return NewROMOnly(rom), h, nil
	}
}
