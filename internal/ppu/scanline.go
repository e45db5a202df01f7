package ppu

// sprite is one decoded OAM entry relevant to the current line.
type sprite struct {
	x, y     int
	tile     byte
	attr     byte
	oamIndex int
}

var dmgPalette = [4][3]byte{
	{0xE0, 0xF8, 0xD0},
	{0x88, 0xC0, 0x70},
	{0x34, 0x68, 0x56},
	{0x08, 0x18, 0x20},
}

// renderScanline is called once per visible line, at LX==63, per the
// line-based (not pixel-FIFO) rendering model.
func (p *PPU) renderScanline() {
	ly := int(p.ly)

	bgWinEnable := p.lcdc&0x01 != 0
	windowEnableBit := p.lcdc&0x20 != 0
	spriteEnable := p.lcdc&0x02 != 0
	tallSprites := p.lcdc&0x04 != 0

	bgTileMapBase := 0x9800
	if p.lcdc&0x08 != 0 {
		bgTileMapBase = 0x9C00
	}
	winTileMapBase := 0x9800
	if p.lcdc&0x40 != 0 {
		winTileMapBase = 0x9C00
	}
	tileDataBase := 0x9000
	signedIndex := true
	if p.lcdc&0x10 != 0 {
		tileDataBase = 0x8000
		signedIndex = false
	}

	if windowEnableBit && ly >= int(p.wy) {
		p.windowTriggeredThisFrame = true
	}
	windowActive := windowEnableBit && p.windowTriggeredThisFrame && ly >= int(p.wy)

	sprites := p.selectSprites(ly, tallSprites)
	lineHadWindow := false

	for x := 0; x < ScreenW; x++ {
		var bgColorIdx byte
		useWindow := windowActive && x+7 >= int(p.wx)

		if bgWinEnable {
			var mapBase int
			var tileX, tileY int
			if useWindow {
				mapBase = winTileMapBase
				tileX = x + 7 - int(p.wx)
				tileY = p.wly
				lineHadWindow = true
			} else {
				mapBase = bgTileMapBase
				tileX = (x + int(p.scx)) & 0xFF
				tileY = (ly + int(p.scy)) & 0xFF
			}
			tileCol := tileX / 8
			tileRow := tileY / 8
			xt := tileX % 8
			yt := tileY % 8

			tileIdxAddr := mapBase + tileRow*32 + tileCol
			tileIdx := p.vram[tileIdxAddr-0x8000]
			bgColorIdx = p.tilePixel(tileDataBase, signedIndex, tileIdx, xt, yt)
		}

		finalColorIdx := p.applyPalette(bgColorIdx, p.bgp)

		if spriteEnable {
			if sc, ok := p.spritePixelAt(sprites, x, ly, tallSprites, bgColorIdx); ok {
				finalColorIdx = sc
			}
		}

		p.FrameBuf[ly][x] = dmgPalette[finalColorIdx]
	}

	if lineHadWindow {
		p.wly++
	}
}

func (p *PPU) tilePixel(base int, signed bool, tileIdx byte, xt, yt int) byte {
	var addr int
	if signed {
		addr = base + int(int8(tileIdx))*16
	} else {
		addr = base + int(tileIdx)*16
	}
	addr += 2 * yt
	b0 := p.vram[addr-0x8000]
	b1 := p.vram[addr+1-0x8000]
	bit := 7 - xt
	lo := (b0 >> uint(bit)) & 1
	hi := (b1 >> uint(bit)) & 1
	return lo | hi<<1
}

func (p *PPU) applyPalette(colorIdx byte, palette byte) byte {
	return (palette >> (colorIdx * 2)) & 0x03
}

// selectSprites implements the ≤10-per-line, leftmost-X/OAM-index
// tie-break rule.
func (p *PPU) selectSprites(ly int, tall bool) []sprite {
	height := 8
	if tall {
		height = 16
	}
	var found []sprite
	for i := 0; i < 40; i++ {
		base := i * 4
		y := int(p.oam[base]) - 16
		x := int(p.oam[base+1]) - 8
		tile := p.oam[base+2]
		attr := p.oam[base+3]
		if ly < y || ly >= y+height {
			continue
		}
		found = append(found, sprite{x: x, y: y, tile: tile, attr: attr, oamIndex: i})
	}
	// Stable selection of at most 10, preferring lower X then lower OAM
	// index — insertion sort keeps it stable and allocation-free enough
	// for 40 entries.
	for i := 1; i < len(found); i++ {
		j := i
		for j > 0 && less(found[j], found[j-1]) {
			found[j], found[j-1] = found[j-1], found[j]
			j--
		}
	}
	if len(found) > 10 {
		found = found[:10]
	}
	return found
}

func less(a, b sprite) bool {
	if a.x != b.x {
		return a.x < b.x
	}
	return a.oamIndex < b.oamIndex
}

// spritePixelAt returns the composited palette index for screen
// position (x, ly) if a selected sprite draws a non-zero pixel there
// that isn't hidden behind a non-zero BG pixel by its priority bit.
func (p *PPU) spritePixelAt(sprites []sprite, x, ly int, tall bool, bgColorIdx byte) (byte, bool) {
	height := 8
	if tall {
		height = 16
	}
	for _, s := range sprites {
		if x < s.x || x >= s.x+8 {
			continue
		}
		xt := x - s.x
		yt := ly - s.y
		if s.attr&0x20 != 0 { // X flip
			xt = 7 - xt
		}
		if s.attr&0x40 != 0 { // Y flip
			yt = height - 1 - yt
		}
		tile := s.tile
		if tall {
			tile &^= 0x01
			if yt >= 8 {
				tile |= 0x01
				yt -= 8
			}
		}
		colorIdx := p.tilePixel(0x8000, false, tile, xt, yt)
		if colorIdx == 0 {
			continue // transparent
		}
		if s.attr&0x80 != 0 && bgColorIdx != 0 { // BG-priority: BG colors 1-3 win
			continue
		}
		palette := p.obp0
		if s.attr&0x10 != 0 {
			palette = p.obp1
		}
		return p.applyPalette(colorIdx, palette), true
	}
	return 0, false
}
