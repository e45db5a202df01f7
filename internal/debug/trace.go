// Package debug formats CPU trace lines in a fixed layout suitable for
// diffing against reference traces, and provides a sink for the
// serial port's debug output.
package debug

import (
	"fmt"

	"github.com/OleStrohm/gbemulator/internal/register"
)

// TraceLine renders one register/PC snapshot line:
// "A: aa F: ff B: bb C: cc D: dd E: ee H: hh L: ll SP: ssss PC: 00:pppp (b0 b1 b2 b3)"
// fetcher reads the 4 bytes starting at PC for the trailing opcode preview.
func TraceLine(r *register.Bank, fetcher func(addr uint16) byte) string {
	b0 := fetcher(r.PC)
	b1 := fetcher(r.PC + 1)
	b2 := fetcher(r.PC + 2)
	b3 := fetcher(r.PC + 3)
	return fmt.Sprintf(
		"A: %02X F: %02X B: %02X C: %02X D: %02X E: %02X H: %02X L: %02X SP: %04X PC: 00:%04X (%02X %02X %02X %02X)",
		r.A, r.F, r.B, r.C, r.D, r.E, r.H, r.L, r.SP, r.PC, b0, b1, b2, b3)
}
