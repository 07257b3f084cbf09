package pid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageFromString(t *testing.T) {
	testCases := []struct {
		name   string
		in     string
		expect Page
	}{
		{"bare text", "12:34 FUNKYTOWN~5_Limited Express",
			Page{AnimateNone, 20, "12:34 FUNKYTOWN~5_Limited Express"}},
		{"empty prefix", "^hello", Page{AnimateNone, 20, "hello"}},
		{"animate only", "H^hello", Page{AnimateHScroll, 20, "hello"}},
		{"lowercase animate", "v^hello", Page{AnimateVScroll, 20, "hello"}},
		{"delay only", "7^hello", Page{AnimateNone, 7, "hello"}},
		{"animate and delay", "V40^hello", Page{AnimateVScroll, 40, "hello"}},
		{"unparseable prefix stays text", "hi^there", Page{AnimateNone, 20, "hi^there"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := PageFromString(tc.in, AnimateNone, 20)
			require.NoError(t, err)
			require.Equal(t, tc.expect, page)
		})
	}
}

func TestPageFromStringErrors(t *testing.T) {
	_, err := PageFromString("X40^hello", AnimateNone, 20)
	require.IsType(t, &ValidationError{}, err)

	_, err = PageFromString("V999^hello", AnimateNone, 20)
	require.IsType(t, &ValidationError{}, err)

	_, err = PageFromString("V99999999999999999999^hello", AnimateNone, 20)
	require.IsType(t, &ValidationError{}, err)
}

func TestPageString(t *testing.T) {
	page, err := PageFromString("12:34 FUNKYTOWN~5_Limited Express", AnimateNone, 20)
	require.NoError(t, err)
	require.Equal(t, "N20^12:34 FUNKYTOWN~5_Limited Express", page.String())
}

func TestPageBytes(t *testing.T) {
	b, err := Page{AnimateVScroll, 40, "HI~5_LOW"}.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x1D, 0x00, 40, 0x00,
		'H', 'I', '\\', 'R', '5', newlineByte, 'L', 'O', 'W',
	}, b)

	// Leading line-break markers become the offset byte and are
	// stripped from the text.
	b, err = Page{AnimateNone, 0, "__XY"}.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x02, 0x00, 0x00, 'X', 'Y'}, b)
}

func TestPageBytesErrors(t *testing.T) {
	_, err := Page{AnimateNone, 300, "x"}.Bytes()
	require.IsType(t, &ValidationError{}, err)

	_, err = Page{AnimateNone, 20, "@@@ BAD TEXT @@@"}.Bytes()
	require.IsType(t, &ValidationError{}, err)
}

func TestPageFromBytes(t *testing.T) {
	page, err := PageFromBytes([]byte{0x00, 0x00, 0x00, 0x00, 0xFF})
	require.NoError(t, err)
	require.Equal(t, "N0^�", page.String())

	// Trailing spaces per line are dropped on decode.
	page, err = PageFromBytes([]byte{0x00, 0x00, 0x00, 0x00, 'A', ' ', ' ', newlineByte, 'B'})
	require.NoError(t, err)
	require.Equal(t, "A_B", page.Text)
}

func TestPageFromBytesErrors(t *testing.T) {
	_, err := PageFromBytes([]byte{0x00, 0x00, 0x00})
	require.IsType(t, &ProtocolError{}, err)

	_, err = PageFromBytes([]byte{0xFF, 0x00, 0x00, 0x00})
	require.IsType(t, &UnsupportedError{}, err)

	_, err = PageFromBytes([]byte{0x00, 0x00, 0x00, 0xFF})
	require.IsType(t, &UnsupportedError{}, err)
}

func TestPageRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		page Page
	}{
		{"simple", Page{AnimateNone, 20, "NEXT TRAIN"}},
		{"right justify", Page{AnimateVScroll, 40, "12:34 FUNKYTOWN~5"}},
		{"multi line", Page{AnimateHScroll, 0, "UP_DOWN"}},
		{"leading breaks", Page{AnimateNone, 5, "__Stops all stations"}},
		{"max delay", Page{AnimateNone, 255, "x"}},
		{"extension chars", Page{AnimateNone, 20, "• City · Loop"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := tc.page.Bytes()
			require.NoError(t, err)
			decoded, err := PageFromBytes(b)
			require.NoError(t, err)
			require.Equal(t, tc.page, decoded)
		})
	}
}
