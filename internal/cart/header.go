package cart

import "errors"

const headerEnd = 0x014F

// nintendoLogo is the 48-byte bitmap every licensed cartridge repeats at
// 0x0104; real hardware refuses to boot if it doesn't match. This parser
// only records whether it matched, since plenty of homebrew and test
// ROMs intentionally omit it.
var nintendoLogo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E, 0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// Kind classifies the byte at 0x0147 into the handful of bank-controller
// families this repository cares about. Everything that isn't ROM-only
// or MBC1 still parses and reports its real family, but cart.NewCartridge
// runs it ROM-only best-effort (spec.md's Non-goal list excludes MBC2/3/5).
type Kind int

const (
	KindROMOnly Kind = iota
	KindMBC1
	KindMBC2
	KindMBC3
	KindMBC5
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindROMOnly:
		return "ROM ONLY"
	case KindMBC1:
		return "MBC1 (variants)"
	case KindMBC2:
		return "MBC2 (variants)"
	case KindMBC3:
		return "MBC3 (variants)"
	case KindMBC5:
		return "MBC5 (variants)"
	default:
		return "Other/unknown"
	}
}

// kindRanges maps contiguous runs of the 0x0147 cartridge-type byte to a
// Kind, checked in order. A table keeps classifyKind a data lookup rather
// than a long case list, and makes adding a family later a one-line diff.
var kindRanges = []struct {
	lo, hi byte
	kind   Kind
}{
	{0x00, 0x00, KindROMOnly},
	{0x01, 0x03, KindMBC1},
	{0x05, 0x06, KindMBC2},
	{0x0F, 0x13, KindMBC3},
	{0x19, 0x1E, KindMBC5},
}

func classifyKind(code byte) Kind {
	for _, r := range kindRanges {
		if code >= r.lo && code <= r.hi {
			return r.kind
		}
	}
	return KindUnknown
}

// romSizeSteps holds the doubling sequence for codes 0x00-0x08 (32KiB up
// to 8MiB, ROM banks doubling each step); a handful of codes above that
// range (0x52-0x54) don't follow the doubling rule and are special-cased.
var romSizeSteps = [9]int{32, 64, 128, 256, 512, 1024, 2048, 4096, 8192} // KiB

func romSize(code byte) (bytes, banks int) {
	if int(code) < len(romSizeSteps) {
		kib := romSizeSteps[code]
		return kib * 1024, kib * 1024 / (16 * 1024)
	}
	switch code {
	case 0x52:
		return 1152 * 1024, 72
	case 0x53:
		return 1280 * 1024, 80
	case 0x54:
		return 1536 * 1024, 96
	default:
		return 0, 0
	}
}

// ramSizeKiB maps the RAM size code directly to a KiB count; code 0x01 is
// a reserved/unused value on real hardware and decodes to no RAM.
var ramSizeKiB = map[byte]int{
	0x00: 0,
	0x02: 8,
	0x03: 32,
	0x04: 128,
	0x05: 64,
}

// Header is the decoded 0x0100-0x014F cartridge header.
type Header struct {
	Title          string
	CGBFlag        byte
	NewLicensee    string
	SGBFlag        byte
	CartType       byte
	ROMSizeCode    byte
	RAMSizeCode    byte
	Destination    byte
	OldLicensee    byte
	ROMVersion     byte
	HeaderChecksum byte
	GlobalChecksum uint16

	Kind         Kind
	CartTypeStr  string
	ROMSizeBytes int
	ROMBanks     int
	RAMSizeBytes int

	LogoValid bool
}

// ParseHeader decodes the cartridge header. It only rejects ROMs too
// short to contain one; a missing or corrupt Nintendo logo, a bad header
// checksum, or an unrecognized cartridge-type byte all still parse, since
// test ROMs routinely skip the logo and this repository only needs to
// read the fields, not enforce the boot lock real hardware applies.
func ParseHeader(rom []byte) (*Header, error) {
	if len(rom) < headerEnd+1 {
		return nil, errors.New("ROM too small to contain header")
	}

	logoValid := true
	for i, want := range nintendoLogo {
		if rom[0x0104+i] != want {
			logoValid = false
		}
	}

	h := &Header{
		Title:          decodeTitle(rom[0x0134:0x0144]),
		LogoValid:      logoValid,
		CGBFlag:        rom[0x0143],
		NewLicensee:    string(rom[0x0144:0x0146]),
		SGBFlag:        rom[0x0146],
		CartType:       rom[0x0147],
		ROMSizeCode:    rom[0x0148],
		RAMSizeCode:    rom[0x0149],
		Destination:    rom[0x014A],
		OldLicensee:    rom[0x014B],
		ROMVersion:     rom[0x014C],
		HeaderChecksum: rom[0x014D],
		GlobalChecksum: uint16(rom[0x014E])<<8 | uint16(rom[0x014F]),
	}

	h.Kind = classifyKind(h.CartType)
	h.CartTypeStr = h.Kind.String()
	h.ROMSizeBytes, h.ROMBanks = romSize(h.ROMSizeCode)
	h.RAMSizeBytes = ramSizeKiB[h.RAMSizeCode] * 1024

	return h, nil
}

// decodeTitle trims the title field's trailing zero padding; newer carts
// overlay the CGB/licensee bytes onto the tail of this region, but this
// repository only needs the human-readable name, not those overlaps.
func decodeTitle(raw []byte) string {
	end := len(raw)
	for end > 0 && raw[end-1] == 0 {
		end--
	}
	return string(raw[:end])
}

// HeaderChecksumOK recomputes the Pan Docs header checksum (a running
// subtraction over 0x0134-0x014C) and compares it against the stored
// byte at 0x014D.
func HeaderChecksumOK(rom []byte) bool {
	if len(rom) < 0x014E {
		return false
	}
	var sum byte
	for _, b := range rom[0x0134:0x014D] {
		sum -= b + 1
	}
	return sum == rom[0x014D]
}
