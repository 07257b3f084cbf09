package pid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrame(t *testing.T) {
	testCases := []struct {
		name    string
		payload []byte
		expect  []byte
	}{
		{"empty", nil, []byte{0x10, 0x02, 0x10, 0x03}},
		{"plain", []byte{0x01, 0x50, 0x6F}, []byte{0x10, 0x02, 0x01, 0x50, 0x6F, 0x10, 0x03}},
		{"literal DLE doubled", []byte{0x10}, []byte{0x10, 0x02, 0x10, 0x10, 0x10, 0x03}},
		{"DLE then ETX-alike", []byte{0x10, 0x03}, []byte{0x10, 0x02, 0x10, 0x10, 0x03, 0x10, 0x03}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, Frame(tc.payload))
		})
	}
}

func TestDeframeRoundTrip(t *testing.T) {
	payloads := [][]byte{
		{},
		{0x01, 0x50, 0x6F},
		{0x10},
		{0x10, 0x10, 0x10},
		{0x10, 0x02, 0x10, 0x03},
		{0x00, 0x10, 0xFF},
	}
	for _, payload := range payloads {
		out, err := Deframe(Frame(payload))
		require.NoError(t, err)
		require.Equal(t, payload, out)
	}
}

func TestDeframeErrors(t *testing.T) {
	testCases := []struct {
		name string
		in   []byte
	}{
		{"empty", nil},
		{"no header", []byte{0x01, 0x50, 0x10, 0x03}},
		{"no trailer", []byte{0x10, 0x02, 0x01, 0x50}},
		{"dangling DLE", []byte{0x10, 0x02, 0x01, 0x10}},
		{"bad escape", []byte{0x10, 0x02, 0x10, 0x07, 0x10, 0x03}},
		{"data after trailer", []byte{0x10, 0x02, 0x01, 0x10, 0x03, 0xFF}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Deframe(tc.in)
			require.IsType(t, &ProtocolError{}, err)
		})
	}
}

func TestFrameEnd(t *testing.T) {
	frame := Frame([]byte{0x01, 0x52, 0x6F, 0x00})

	require.Equal(t, len(frame), FrameEnd(frame))
	require.Equal(t, len(frame), FrameEnd(append(frame, 0xAA, 0xBB)))
	require.Equal(t, -1, FrameEnd(frame[:len(frame)-1]))
	require.Equal(t, -1, FrameEnd(nil))
	require.Equal(t, -1, FrameEnd([]byte{0x10}))
	require.Equal(t, -1, FrameEnd([]byte{0x00, 0x10, 0x02}))

	// A doubled DLE must not be mistaken for the trailer.
	stuffed := Frame([]byte{0x10, 0x03})
	require.Equal(t, len(stuffed), FrameEnd(stuffed))
}
