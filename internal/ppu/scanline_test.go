package ppu

import "testing"

// setTile writes an 8x8 tile at VRAM offset base+16*idx. Each row byte is
// a pixel bitmask for plane 0 only: a set bit gives color index 1, a clear
// bit color index 0.
func setTile(p *PPU, base int, idx int, rows [8]byte) {
	addr := base + idx*16
	for y := 0; y < 8; y++ {
		var b0, b1 byte
		for x := 0; x < 8; x++ {
			ci := (rows[y] >> uint(7-x)) & 1 // only using bit0 plane for simplicity in these tests
			if ci != 0 {
				b0 |= 1 << uint(7-x)
			}
		}
		p.vram[addr+2*y-0x8000] = b0
		p.vram[addr+2*y+1-0x8000] = b1
	}
}

func TestBackgroundPixelFromTileData(t *testing.T) {
	p := New(&fakeIRQ{})
	p.lcdc = 0x91 // LCDC.0 BG enable, LCDC.4 tile data=8000, LCDC.7 LCD on
	p.bgp = 0xE4
	setTile(p, 0x8000, 0, [8]byte{0xFF, 0, 0, 0, 0, 0, 0, 0})
	p.vram[0x9800-0x8000] = 0 // map entry (0,0) -> tile 0
	p.ly = 0
	p.renderScanline()
	if p.FrameBuf[0][0] != dmgPalette[1] {
		t.Fatalf("BG pixel (0,0) got %v, want palette index 1 color", p.FrameBuf[0][0])
	}
	if p.FrameBuf[0][7] != dmgPalette[1] {
		t.Fatalf("BG pixel at x=7 should still be color 1 across the whole 0xFF tile row")
	}
}

func TestWindowOverridesBackgroundWhenActive(t *testing.T) {
	p := New(&fakeIRQ{})
	p.lcdc = 0xF1 // BG, window tile map 9C00, window enable, tile data 8000, LCD on
	p.bgp = 0xE4
	p.wy = 0
	p.wx = 7                                                  // window starts at screen X=0
	setTile(p, 0x8000, 0, [8]byte{0, 0, 0, 0, 0, 0, 0, 0})    // bg tile: all color 0
	setTile(p, 0x8000, 1, [8]byte{0xFF, 0, 0, 0, 0, 0, 0, 0}) // window tile: color 1 row
	p.vram[0x9800-0x8000] = 0                                 // bg map -> tile 0
	p.vram[0x9C00-0x8000] = 1                                 // window map -> tile 1
	p.ly = 0
	p.renderScanline()
	if p.FrameBuf[0][0] != dmgPalette[1] {
		t.Fatalf("window pixel did not override background: got %v", p.FrameBuf[0][0])
	}
}

func TestSpriteDrawnOverBackgroundColorZero(t *testing.T) {
	p := New(&fakeIRQ{})
	p.lcdc = 0x93 // BG enable, sprite enable, tile data 8000, LCD on
	p.bgp = 0xE4
	p.obp0 = 0xE4
	setTile(p, 0x8000, 0, [8]byte{0, 0, 0, 0, 0, 0, 0, 0})    // bg: color 0 everywhere
	setTile(p, 0x8000, 1, [8]byte{0xFF, 0, 0, 0, 0, 0, 0, 0}) // sprite tile: row0 color1
	// OAM entry 0: Y=16 (screen Y 0), X=8 (screen X 0), tile 1, attr 0
	p.oam[0] = 16
	p.oam[1] = 8
	p.oam[2] = 1
	p.oam[3] = 0
	p.ly = 0
	p.renderScanline()
	if p.FrameBuf[0][0] != dmgPalette[1] {
		t.Fatalf("sprite pixel not drawn over BG color 0: got %v", p.FrameBuf[0][0])
	}
}

func TestSpriteHiddenByBGPriorityBit(t *testing.T) {
	p := New(&fakeIRQ{})
	p.lcdc = 0x93
	p.bgp = 0xE4
	p.obp0 = 0xE8                                             // sprite color 1 -> shade 2, distinct from the BG shade
	setTile(p, 0x8000, 0, [8]byte{0xFF, 0, 0, 0, 0, 0, 0, 0}) // bg color 1 everywhere on row0
	setTile(p, 0x8000, 1, [8]byte{0xFF, 0, 0, 0, 0, 0, 0, 0})
	p.oam[0] = 16
	p.oam[1] = 8
	p.oam[2] = 1
	p.oam[3] = 0x80 // BG-priority bit set
	p.ly = 0
	p.renderScanline()
	if p.FrameBuf[0][0] != dmgPalette[1] {
		t.Fatalf("BG-priority sprite should be hidden behind non-zero BG, got %v", p.FrameBuf[0][0])
	}
}

func TestSpriteSelectionLimitsToTenAndPrefersLowerX(t *testing.T) {
	p := New(&fakeIRQ{})
	for i := 0; i < 12; i++ {
		base := i * 4
		p.oam[base] = 16 // all on screen line 0
		p.oam[base+1] = byte(8 + i)
		p.oam[base+2] = 0
		p.oam[base+3] = 0
	}
	selected := p.selectSprites(0, false)
	if len(selected) != 10 {
		t.Fatalf("got %d selected sprites, want 10", len(selected))
	}
	if selected[0].oamIndex != 0 {
		t.Fatalf("lowest-X sprite (index 0) should sort first, got index %d", selected[0].oamIndex)
	}
}
