// Package session is the sole owner of a running emulation: the
// register file, timer/IRQ controller, cartridge, bus, PPU, CPU and
// APU stub, plus the two-thread hand-off described for the
// presentation layer (the emulation goroutine drives M-cycles and
// paces itself to 60 Hz; the presentation goroutine copies out frames
// under a mutex).
package session

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/OleStrohm/gbemulator/internal/apu"
	"github.com/OleStrohm/gbemulator/internal/bus"
	"github.com/OleStrohm/gbemulator/internal/cart"
	"github.com/OleStrohm/gbemulator/internal/cpu"
	"github.com/OleStrohm/gbemulator/internal/debug"
	"github.com/OleStrohm/gbemulator/internal/ppu"
	"github.com/OleStrohm/gbemulator/internal/timer"
)

const mcyclesPerFrame = 114 * 154 // one line per LX sweep, 154 lines

type Session struct {
	cfg Config

	timer *timer.Controller
	ppu   *ppu.PPU
	bus   *bus.Bus
	cpu   *cpu.CPU
	apu   *apu.APU

	frameMu  sync.Mutex
	frameBuf [ppu.ScreenH][ppu.ScreenW][3]byte
	frames   uint64

	buttons atomic.Uint32
	closed  atomic.Bool

	loggedBroken bool
	serial       *debug.SerialSink
}

// New wires register file, timer, cartridge bus, PPU, CPU and the
// audio stub into a fresh Session. Registers start at the boot ROM
// entry point if one is configured, otherwise at the typical DMG
// post-boot state with PC at 0x0100.
func New(cfg Config) *Session {
	tc := timer.New()
	p := ppu.New(tc)
	b := bus.New(p, tc)
	c := cpu.New(b, tc)
	a := apu.New()

	s := &Session{cfg: cfg, timer: tc, ppu: p, bus: b, cpu: c, apu: a}

	sink := &debug.SerialSink{}
	s.serial = sink
	b.SetSerialWriter(sink)

	if len(cfg.BootROM) > 0 {
		b.SetBootROM(cfg.BootROM)
	} else {
		c.ResetPostBoot()
		c.Registers().PC = 0x0100
	}
	return s
}

// LoadCartridge parses the ROM header and installs the matching
// cartridge implementation.
func (s *Session) LoadCartridge(rom []byte) (*cart.Header, error) {
	return s.bus.LoadCartridge(rom)
}

// SetButtons replaces the full 8-button bitmask; safe to call from any
// goroutine. The emulation goroutine applies it once per frame.
func (s *Session) SetButtons(mask uint8) {
	s.buttons.Store(uint32(mask))
}

// Close requests the emulation goroutine to stop after its current
// frame.
func (s *Session) Close() { s.closed.Store(true) }

// Frames returns the monotonic count of completed frames.
func (s *Session) Frames() uint64 { return atomic.LoadUint64(&s.frames) }

// SerialOutput returns everything test ROMs have written to the
// serial port so far.
func (s *Session) SerialOutput() string { return s.serial.String() }

// CopyFrame copies the most recently completed frame under the
// presentation-side lock.
func (s *Session) CopyFrame(dst *[ppu.ScreenH][ppu.ScreenW][3]byte) {
	s.frameMu.Lock()
	*dst = s.frameBuf
	s.frameMu.Unlock()
}

// Run drives the emulation loop until Close is called. It is meant to
// run on its own goroutine; the presentation side only ever calls
// CopyFrame/SetButtons/Frames/Close.
func (s *Session) Run() {
	var ticker *time.Ticker
	if s.cfg.LimitFPS {
		ticker = time.NewTicker(time.Second / 60)
		defer ticker.Stop()
	}
	for !s.closed.Load() {
		s.runFrame()
		if ticker != nil {
			<-ticker.C
		}
	}
}

func (s *Session) runFrame() {
	if opcode, pc, broken := s.cpu.Broken(); broken {
		if !s.loggedBroken {
			log.Printf("cpu stopped on unsupported opcode %#02x at %#04x", opcode, pc)
			s.loggedBroken = true
		}
		return
	}

	s.ppu.SetButtons(uint8(s.buttons.Load()))

	for i := 0; i < mcyclesPerFrame; i++ {
		s.StepMCycle()
		if _, _, broken := s.cpu.Broken(); broken {
			break
		}
	}

	if s.ppu.Invalidated {
		s.frameMu.Lock()
		s.frameBuf = s.ppu.FrameBuf
		s.frameMu.Unlock()
		atomic.AddUint64(&s.frames, 1)
		s.ppu.Invalidated = false
	}
}

// StepMCycle advances exactly one M-cycle; used by headless tooling
// (cmd/cpurunner) that wants finer control than the frame-paced Run
// loop.
func (s *Session) StepMCycle() {
	if s.cfg.Trace && s.cpu.AtFetchBoundary() {
		log.Println(debug.TraceLine(s.cpu.Registers(), s.bus.Read))
	}
	s.ppu.Step()
	s.bus.StepDMA()
	s.cpu.Step()
}

func (s *Session) CPU() *cpu.CPU { return s.cpu }
func (s *Session) PPU() *ppu.PPU { return s.ppu }
func (s *Session) Bus() *bus.Bus { return s.bus }

// PullAudio returns n stereo frames (interleaved L,R int16) from the
// audio stub. Safe to call from the presentation goroutine.
func (s *Session) PullAudio(n int) []int16 { return s.apu.Stream(n) }
