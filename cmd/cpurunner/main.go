// Command cpurunner drives a cartridge headlessly, watching its serial
// output for a pass/fail marker. It is meant for blargg-style
// conformance ROMs where the program under test reports its own
// result over the serial port rather than rendering anything.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/OleStrohm/gbemulator/internal/session"
)

func main() {
	romPath := flag.String("rom", "", "path to ROM (.gb)")
	bootPath := flag.String("bootrom", "", "optional DMG boot ROM to run from 0x0000 until FF50 disables it")
	mcycles := flag.Int("mcycles", 200_000_000, "max M-cycles to run")
	trace := flag.Bool("trace", false, "print a register/PC trace line at each instruction boundary")
	until := flag.String("until", "Passed", "stop when serial output contains this substring (case-insensitive); empty to disable")
	auto := flag.Bool("auto", false, "auto-detect 'Passed' or 'Failed N tests' in serial output and exit 0/1")
	timeout := flag.Duration("timeout", 0, "optional wall-clock timeout (e.g. 30s, 2m); 0 disables")
	flag.Parse()

	if *romPath == "" {
		log.Fatal("-rom is required")
	}
	rom, err := os.ReadFile(*romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read rom: %v\n", err)
		os.Exit(2)
	}
	var boot []byte
	if *bootPath != "" {
		boot, err = os.ReadFile(*bootPath)
		if err != nil {
			log.Fatalf("read bootrom: %v", err)
		}
	}

	s := session.New(session.Config{BootROM: boot, Trace: *trace})
	if _, err := s.LoadCartridge(rom); err != nil {
		fmt.Fprintf(os.Stderr, "cartridge decode failed: %v\n", err)
		os.Exit(2)
	}

	start := time.Now()
	var deadline time.Time
	if *timeout > 0 {
		deadline = start.Add(*timeout)
	}
	failRe := regexp.MustCompile(`(?i)failed\s+(\d+)\s+tests?`)

	for i := 0; i < *mcycles; i++ {
		s.StepMCycle()

		if opcode, pc, broken := s.CPU().Broken(); broken {
			fmt.Fprintf(os.Stderr, "\nunsupported opcode %#02x at %#04x\n", opcode, pc)
			os.Exit(3)
		}

		out := s.SerialOutput()
		if *auto {
			if strings.Contains(strings.ToLower(out), "passed") {
				fmt.Printf("\nDetected PASS in serial output. mcycles=%d elapsed=%s\n", i+1, time.Since(start).Truncate(time.Millisecond))
				os.Exit(0)
			}
			if m := failRe.FindString(out); m != "" {
				fmt.Printf("\nDetected %q in serial output. mcycles=%d elapsed=%s\n", m, i+1, time.Since(start).Truncate(time.Millisecond))
				os.Exit(1)
			}
		} else if *until != "" && strings.Contains(strings.ToLower(out), strings.ToLower(*until)) {
			fmt.Printf("\nDetected %q in serial output. mcycles=%d elapsed=%s\n", *until, i+1, time.Since(start).Truncate(time.Millisecond))
			return
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			fmt.Printf("\nTimeout after %s.\n", time.Since(start).Truncate(time.Millisecond))
			os.Exit(2)
		}
	}
	fmt.Printf("\nDone: mcycles=%d elapsed=%s\n", *mcycles, time.Since(start).Truncate(time.Millisecond))
}
