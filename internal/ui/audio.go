package ui

import (
	"encoding/binary"

	"github.com/OleStrohm/gbemulator/internal/session"
)

// apuStream implements io.Reader by pulling stereo PCM frames from the
// session's audio stub and converting them to 16-bit little-endian
// stereo frames for ebiten's audio.Player. The stub always returns
// silence; the stream exists so the audio path itself, and the player
// machinery wired to it, are genuinely exercised.
type apuStream struct {
	s    *session.Session
	mono bool
}

func (a *apuStream) Read(p []byte) (int, error) {
	if len(p) < 4 {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}
	frames := len(p) / 4
	samples := a.s.PullAudio(frames)
	i := 0
	for j := 0; j+1 < len(samples) && i+3 < len(p); j += 2 {
		l := samples[j]
		r := samples[j+1]
		if a.mono {
			m := int16((int32(l) + int32(r)) / 2)
			binary.LittleEndian.PutUint16(p[i:], uint16(m))
			binary.LittleEndian.PutUint16(p[i+2:], uint16(m))
		} else {
			binary.LittleEndian.PutUint16(p[i:], uint16(l))
			binary.LittleEndian.PutUint16(p[i+2:], uint16(r))
		}
		i += 4
	}
	for ; i < len(p); i++ {
		p[i] = 0
	}
	return len(p), nil
}
