package debug

import "bytes"

// SerialSink collects bytes written through the serial port (FF01/FF02)
// for test ROMs that report pass/fail by printing ASCII there.
type SerialSink struct {
	buf bytes.Buffer
}

func (s *SerialSink) Write(p []byte) (int, error) { return s.buf.Write(p) }
func (s *SerialSink) String() string              { return s.buf.String() }
