// Package ui hosts the ebiten presentation layer: a window that blits
// completed frames from a session.Session, forwards keyboard state as
// the eight joypad buttons, and drives a silent audio stream so the
// player machinery is exercised even though no channel synthesizes
// sound yet.
package ui

import (
	"github.com/OleStrohm/gbemulator/internal/ppu"
	"github.com/OleStrohm/gbemulator/internal/session"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

type App struct {
	cfg Config
	s   *session.Session

	tex *ebiten.Image

	audioCtx    *audio.Context
	audioPlayer *audio.Player

	frame [ppu.ScreenH][ppu.ScreenW][3]byte
	pix   []byte // RGBA scratch buffer reused across Draw calls
}

// NewApp constructs the window around an already-wired session. The
// caller starts s.Run() on its own goroutine before or after calling
// Run.
func NewApp(cfg Config, s *session.Session) *App {
	cfg.Defaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(ppu.ScreenW*cfg.Scale, ppu.ScreenH*cfg.Scale)
	a := &App{cfg: cfg, s: s, pix: make([]byte, ppu.ScreenW*ppu.ScreenH*4)}
	a.audioCtx = audio.NewContext(48000)
	return a
}

func (a *App) Run() error { return ebiten.RunGame(a) }

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ppu.ScreenW, ppu.ScreenH
}

func (a *App) Update() error {
	if a.audioPlayer == nil {
		src := &apuStream{s: a.s, mono: !a.cfg.AudioStereo}
		if p, err := a.audioCtx.NewPlayer(src); err == nil {
			a.audioPlayer = p
			a.audioPlayer.Play()
		}
	}

	var buttons uint8
	setBit := func(pressed bool, bit uint8) {
		if pressed {
			buttons |= bit
		}
	}
	setBit(ebiten.IsKeyPressed(ebiten.KeyRight), 1<<0)
	setBit(ebiten.IsKeyPressed(ebiten.KeyLeft), 1<<1)
	setBit(ebiten.IsKeyPressed(ebiten.KeyUp), 1<<2)
	setBit(ebiten.IsKeyPressed(ebiten.KeyDown), 1<<3)
	setBit(ebiten.IsKeyPressed(ebiten.KeyZ), 1<<4)          // A
	setBit(ebiten.IsKeyPressed(ebiten.KeyX), 1<<5)          // B
	setBit(ebiten.IsKeyPressed(ebiten.KeyShiftRight), 1<<6) // Select
	setBit(ebiten.IsKeyPressed(ebiten.KeyEnter), 1<<7)      // Start
	a.s.SetButtons(buttons)

	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	a.s.CopyFrame(&a.frame)
	for y := 0; y < ppu.ScreenH; y++ {
		for x := 0; x < ppu.ScreenW; x++ {
			rgb := a.frame[y][x]
			i := (y*ppu.ScreenW + x) * 4
			a.pix[i+0] = rgb[0]
			a.pix[i+1] = rgb[1]
			a.pix[i+2] = rgb[2]
			a.pix[i+3] = 0xFF
		}
	}
	if a.tex == nil {
		a.tex = ebiten.NewImage(ppu.ScreenW, ppu.ScreenH)
	}
	a.tex.WritePixels(a.pix)
	screen.DrawImage(a.tex, nil)
}
