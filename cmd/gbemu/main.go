package main

import (
	"flag"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"log"
	"os"
	"strings"
	"time"

	"github.com/OleStrohm/gbemulator/internal/cart"
	"github.com/OleStrohm/gbemulator/internal/ppu"
	"github.com/OleStrohm/gbemulator/internal/session"
	"github.com/OleStrohm/gbemulator/internal/ui"
)

type cliFlags struct {
	romPath  string
	bootROM  string
	scale    int
	title    string
	trace    bool
	headless bool
	frames   int
	pngOut   string
	expect   string // expected framebuffer CRC32 hex
}

func parseFlags() cliFlags {
	var f cliFlags
	flag.StringVar(&f.romPath, "rom", "", "path to ROM (.gb)")
	flag.StringVar(&f.bootROM, "bootrom", "", "optional DMG boot ROM")
	flag.IntVar(&f.scale, "scale", 3, "window scale")
	flag.StringVar(&f.title, "title", "gbemu", "window title")
	flag.BoolVar(&f.trace, "trace", false, "log each cartridge load with header details")
	flag.BoolVar(&f.headless, "headless", false, "run without a window")
	flag.IntVar(&f.frames, "frames", 300, "frames to run in headless mode")
	flag.StringVar(&f.pngOut, "outpng", "", "write the last frame to PNG at path")
	flag.StringVar(&f.expect, "expect", "", "assert the final frame's CRC32 (hex)")
	flag.Parse()
	return f
}

func mustRead(path string) []byte {
	if path == "" {
		return nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		log.Printf("read %s: %v", path, err)
		os.Exit(2)
	}
	return b
}

func runHeadless(s *session.Session, frames int, pngPath, expectCRC string) error {
	if frames <= 0 {
		frames = 1
	}
	start := time.Now()
	for i := 0; i < frames; i++ {
		for j := 0; j < 114*154; j++ {
			s.StepMCycle()
		}
	}
	dur := time.Since(start)

	var fb [ppu.ScreenH][ppu.ScreenW][3]byte
	s.CopyFrame(&fb)
	pix := make([]byte, ppu.ScreenW*ppu.ScreenH*4)
	for y := 0; y < ppu.ScreenH; y++ {
		for x := 0; x < ppu.ScreenW; x++ {
			c := fb[y][x]
			i := (y*ppu.ScreenW + x) * 4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = c[0], c[1], c[2], 0xFF
		}
	}
	crc := crc32.ChecksumIEEE(pix)
	log.Printf("headless: frames=%d elapsed=%s fps=%.2f fb_crc32=%08x",
		frames, dur.Truncate(time.Millisecond), float64(frames)/dur.Seconds(), crc)

	if pngPath != "" {
		img := &image.RGBA{Pix: pix, Stride: ppu.ScreenW * 4, Rect: image.Rect(0, 0, ppu.ScreenW, ppu.ScreenH)}
		f, err := os.Create(pngPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := png.Encode(f, img); err != nil {
			return err
		}
		log.Printf("wrote %s", pngPath)
	}
	if expectCRC != "" {
		want := strings.TrimPrefix(strings.ToLower(expectCRC), "0x")
		if got := fmt.Sprintf("%08x", crc); got != want {
			return fmt.Errorf("checksum mismatch: got %s, want %s", got, want)
		}
	}
	return nil
}

func main() {
	f := parseFlags()
	var rom []byte
	if f.romPath != "" {
		rom = mustRead(f.romPath)
	}
	boot := mustRead(f.bootROM)

	if f.trace && len(rom) >= 0x150 {
		if h, err := cart.ParseHeader(rom); err == nil {
			log.Printf("ROM: %q type=%s banks=%d ram=%dB", h.Title, h.CartTypeStr, h.ROMBanks, h.RAMSizeBytes)
		}
	}

	s := session.New(session.Config{BootROM: boot, LimitFPS: !f.headless})
	if len(rom) > 0 {
		if _, err := s.LoadCartridge(rom); err != nil {
			log.Printf("load cart: %v", err)
			os.Exit(2)
		}
	}

	if f.headless {
		if err := runHeadless(s, f.frames, f.pngOut, f.expect); err != nil {
			log.Fatal(err)
		}
		return
	}

	go s.Run()

	app := ui.NewApp(ui.Config{Title: f.title, Scale: f.scale}, s)
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
	s.Close()
}
