package debug

import (
	"testing"

	"github.com/OleStrohm/gbemulator/internal/register"
)

func TestTraceLineFormat(t *testing.T) {
	r := &register.Bank{A: 0x01, F: 0xB0, B: 0x00, C: 0x13, D: 0x00, E: 0xD8, H: 0x01, L: 0x4D, SP: 0xFFFE, PC: 0x0100}
	mem := map[uint16]byte{0x0100: 0x00, 0x0101: 0xC3, 0x0102: 0x00, 0x0103: 0x02}
	line := TraceLine(r, func(addr uint16) byte { return mem[addr] })
	want := "A: 01 F: B0 B: 00 C: 13 D: 00 E: D8 H: 01 L: 4D SP: FFFE PC: 00:0100 (00 C3 00 02)"
	if line != want {
		t.Fatalf("got %q, want %q", line, want)
	}
}
