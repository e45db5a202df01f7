package ppu

import "testing"

type fakeIRQ struct {
	raised []int
}

func (f *fakeIRQ) RaiseInterrupt(bit int) {
	f.raised = append(f.raised, bit)
}

func (f *fakeIRQ) has(bit int) bool {
	for _, b := range f.raised {
		if b == bit {
			return true
		}
	}
	return false
}

func TestModeSequenceOneLine(t *testing.T) {
	irq := &fakeIRQ{}
	p := New(irq)

	modes := []byte{}
	last := byte(0xFF)
	for i := 0; i < 114; i++ {
		m := p.stat & 0x03
		if m != last {
			modes = append(modes, m)
			last = m
		}
		p.Step()
	}
	want := []byte{ModeOAM, ModeDraw, ModeHBlank}
	if len(modes) != len(want) {
		t.Fatalf("mode sequence got %v, want %v", modes, want)
	}
	for i := range want {
		if modes[i] != want[i] {
			t.Fatalf("mode sequence got %v, want %v", modes, want)
		}
	}
}

func TestVBlankRaisesInterruptAndInvalidates(t *testing.T) {
	irq := &fakeIRQ{}
	p := New(irq)
	for i := 0; i < 114*144; i++ {
		p.Step()
	}
	if !irq.has(irqVBlank) {
		t.Fatalf("VBlank interrupt never raised entering line 144")
	}
	if !p.Invalidated {
		t.Fatalf("frame buffer not marked invalidated at VBlank")
	}
	if p.stat&0x03 != ModeVBlank {
		t.Fatalf("mode got %d, want VBlank", p.stat&0x03)
	}
}

func TestLYCCoincidenceAndSTATInterrupt(t *testing.T) {
	irq := &fakeIRQ{}
	p := New(irq)
	p.CPUWrite(0xFF45, 5)    // LYC = 5
	p.CPUWrite(0xFF41, 0x40) // enable LYC=LY STAT interrupt

	for int(p.ly) != 5 {
		p.Step()
	}
	if p.stat&0x04 == 0 {
		t.Fatalf("coincidence flag not set when LY==LYC")
	}
	if !irq.has(irqStat) {
		t.Fatalf("STAT interrupt not raised on LY==LYC")
	}
}

func TestLYWriteResetsToZero(t *testing.T) {
	p := New(&fakeIRQ{})
	for i := 0; i < 300; i++ {
		p.Step()
	}
	if p.CPURead(0xFF44) == 0 {
		t.Fatalf("LY did not advance")
	}
	p.CPUWrite(0xFF44, 0x99)
	if p.CPURead(0xFF44) != 0 {
		t.Fatalf("write to LY did not reset it to zero")
	}
}

func TestSTATLowBitsReadOnly(t *testing.T) {
	p := New(&fakeIRQ{})
	p.CPUWrite(0xFF41, 0xFF)
	if p.CPURead(0xFF41)&0x03 != p.stat&0x03 {
		t.Fatalf("writable STAT bits overwrote the read-only mode bits")
	}
}

func TestJoypadDirectionRow(t *testing.T) {
	p := New(&fakeIRQ{})
	p.SetButtons(0x01)       // Right pressed
	p.CPUWrite(0xFF00, 0x20) // select direction row (bit4=0, bit5=1)
	got := p.CPURead(0xFF00)
	if got&0x01 != 0 {
		t.Fatalf("pressed Right should read as 0 in bit0, got %#02x", got)
	}
	if got&0x02 == 0 {
		t.Fatalf("unpressed Left should read as 1 in bit1, got %#02x", got)
	}
}

func TestJoypadButtonPressRaisesInterrupt(t *testing.T) {
	irq := &fakeIRQ{}
	p := New(irq)
	p.SetButtons(0x10) // A pressed
	if !irq.has(irqJoypad) {
		t.Fatalf("newly pressed button did not raise joypad interrupt")
	}
}
