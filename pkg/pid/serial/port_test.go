package serial

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/transitsigns/pid.go/pkg/pid"
)

// scriptRW hands out reads in scripted chunks, then reports timeouts
// the way a serial port with a read timeout does.
type scriptRW struct {
	reads     [][]byte
	writes    [][]byte
	readCalls int
	closed    int
}

func (s *scriptRW) Read(p []byte) (int, error) {
	s.readCalls++
	if len(s.reads) == 0 {
		return 0, io.EOF
	}
	n := copy(p, s.reads[0])
	s.reads = s.reads[1:]
	return n, nil
}

func (s *scriptRW) Write(p []byte) (int, error) {
	s.writes = append(s.writes, append([]byte(nil), p...))
	return len(p), nil
}

func (s *scriptRW) Close() error {
	s.closed++
	return nil
}

func TestPortReadFrame(t *testing.T) {
	body := []byte{0x01, 0x52, 0x6F, 0x00}
	frame := pid.Frame(append(body, pid.CRC(body)...))

	// The frame arrives split across reads, with trailing bytes that
	// must stay buffered.
	rw := &scriptRW{reads: [][]byte{
		frame[:3],
		append(append([]byte(nil), frame[3:]...), 0xAA, 0xBB),
	}}
	port := newPort(rw, 100*time.Millisecond)

	got, err := port.ReadFrame()
	require.NoError(t, err)
	require.Equal(t, frame, got)
	require.Equal(t, 2, port.Buffered())
}

func TestPortReadFrameResync(t *testing.T) {
	body := []byte{0x01, 0x52, 0x6F, 0x00}
	frame := pid.Frame(append(body, pid.CRC(body)...))

	// Line noise ahead of the frame is discarded rather than wedging
	// the buffer, including a stray DLE split from its STX.
	rw := &scriptRW{reads: [][]byte{
		{0xAA, 0xBB},
		{0xFF, frame[0]},
		frame[1:],
	}}
	port := newPort(rw, 100*time.Millisecond)

	got, err := port.ReadFrame()
	require.NoError(t, err)
	require.Equal(t, frame, got)
	require.Equal(t, 0, port.Buffered())
}

func TestPortReadFrameTimeout(t *testing.T) {
	rw := &scriptRW{}
	port := newPort(rw, 10*time.Millisecond)
	_, err := port.ReadFrame()
	require.IsType(t, &pid.TimeoutError{}, err)

	// Empty reads back off instead of spinning for the whole window.
	require.True(t, rw.readCalls < 50, "%d reads for a 10ms window", rw.readCalls)
}

func TestPortWrite(t *testing.T) {
	rw := &scriptRW{}
	port := newPort(rw, time.Second)
	require.NoError(t, port.Write([]byte{0x10, 0x02, 0x10, 0x03}))
	require.Equal(t, [][]byte{{0x10, 0x02, 0x10, 0x03}}, rw.writes)
}

func TestPortCloseIdempotent(t *testing.T) {
	rw := &scriptRW{}
	port := newPort(rw, time.Second)
	require.NoError(t, port.Close())
	require.NoError(t, port.Close())
	require.Equal(t, 1, rw.closed)
}
