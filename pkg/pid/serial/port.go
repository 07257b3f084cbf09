// Package serial provides a pid.Transport over a physical serial
// port.
package serial

import (
	"bytes"
	"io"
	"time"

	tarm "github.com/tarm/serial"

	"github.com/transitsigns/pid.go/pkg/pid"
)

const (
	// DefaultBaud matches the displays' factory configuration.
	DefaultBaud = 9600
	// DefaultTimeout is ample time for the display to acknowledge a
	// transmission.
	DefaultTimeout = 500 * time.Millisecond
)

// Config selects the serial device and its timing.
type Config struct {
	Device  string
	Baud    int           // 0 means DefaultBaud
	Timeout time.Duration // 0 means DefaultTimeout
}

// Port is a pid.Transport backed by a serial device. It is owned by
// exactly one Conn and not safe for concurrent use.
type Port struct {
	rw      io.ReadWriteCloser
	timeout time.Duration
	buf     []byte
	closed  bool
}

// Open opens the serial device and wraps it in a ready pid.Conn.
func Open(conf Config) (*pid.Conn, error) {
	port, err := OpenPort(conf)
	if err != nil {
		return nil, err
	}
	return pid.NewConn(port), nil
}

// OpenPort opens the serial device as a raw transport.
func OpenPort(conf Config) (*Port, error) {
	baud := conf.Baud
	if baud == 0 {
		baud = DefaultBaud
	}
	timeout := conf.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	port, err := tarm.OpenPort(&tarm.Config{
		Name:        conf.Device,
		Baud:        baud,
		ReadTimeout: timeout,
	})
	if err != nil {
		return nil, err
	}
	return newPort(port, timeout), nil
}

func newPort(rw io.ReadWriteCloser, timeout time.Duration) *Port {
	return &Port{rw: rw, timeout: timeout}
}

// Write implements pid.Transport.
func (p *Port) Write(b []byte) error {
	_, err := p.rw.Write(b)
	return err
}

// ReadFrame implements pid.Transport. Reads accumulate in an internal
// buffer; bytes past the first complete frame stay buffered for
// Buffered to report.
func (p *Port) ReadFrame() ([]byte, error) {
	deadline := time.Now().Add(p.timeout)
	chunk := make([]byte, 256)
	for {
		p.discardNoise()
		if end := pid.FrameEnd(p.buf); end >= 0 {
			frame := append([]byte(nil), p.buf[:end]...)
			p.buf = append(p.buf[:0], p.buf[end:]...)
			return frame, nil
		}
		if !time.Now().Before(deadline) {
			return nil, &pid.TimeoutError{After: p.timeout}
		}
		n, err := p.rw.Read(chunk)
		if n > 0 {
			p.buf = append(p.buf, chunk[:n]...)
			continue
		}
		if err != nil && err != io.EOF {
			// The port reports timeouts as empty reads (or io.EOF on
			// some platforms); only real transport failures surface.
			return nil, err
		}
		time.Sleep(time.Millisecond)
	}
}

// discardNoise drops buffered bytes that cannot begin a frame, so line
// noise does not wedge the buffer once and for all. A single trailing
// DLE stays, in case its STX is still in flight.
func (p *Port) discardNoise() {
	if len(p.buf) == 0 || (p.buf[0] == pid.DLE && (len(p.buf) == 1 || p.buf[1] == pid.STX)) {
		return
	}
	if i := bytes.Index(p.buf, []byte{pid.DLE, pid.STX}); i >= 0 {
		p.buf = append(p.buf[:0], p.buf[i:]...)
		return
	}
	if p.buf[len(p.buf)-1] == pid.DLE {
		p.buf[0] = pid.DLE
		p.buf = p.buf[:1]
		return
	}
	p.buf = p.buf[:0]
}

// Buffered implements pid.Transport.
func (p *Port) Buffered() int { return len(p.buf) }

// Close implements pid.Transport. Safe to call more than once.
func (p *Port) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	return p.rw.Close()
}
