package pid

import "fmt"

// Animate selects how a page enters the display.
type Animate int

const (
	// AnimateNone appears instantly. Text not fitting the display is
	// clipped and never seen. The page delay starts immediately.
	AnimateNone Animate = iota
	// AnimateVScroll scrolls vertically into view from the bottom and
	// stays. The page delay starts once the text is fully displayed.
	AnimateVScroll
	// AnimateHScroll scrolls in from the right while the previous page
	// scrolls out to the left, then scrolls out itself. The page delay
	// starts after the text is fully gone, so a delay of 0 is usually
	// wanted.
	AnimateHScroll
)

var animateCodes = map[Animate]byte{
	AnimateNone:    'N',
	AnimateVScroll: 'V',
	AnimateHScroll: 'H',
}

var animateWire = map[Animate]byte{
	AnimateNone:    0x00,
	AnimateVScroll: 0x1D,
	AnimateHScroll: 0x2F,
}

var (
	animateFromCode = map[byte]Animate{}
	animateFromWire = map[byte]Animate{}
)

func init() {
	for a, c := range animateCodes {
		animateFromCode[c] = a
	}
	for a, b := range animateWire {
		animateFromWire[b] = a
	}
}

// Code returns the single-letter code used in string representations.
func (a Animate) Code() byte { return animateCodes[a] }

// String implements fmt.Stringer.
func (a Animate) String() string { return string(animateCodes[a]) }

// ParseAnimate resolves a single-letter animation code,
// case-insensitively.
func ParseAnimate(code byte) (Animate, error) {
	if code >= 'a' && code <= 'z' {
		code -= 'a' - 'A'
	}
	a, ok := animateFromCode[code]
	if !ok {
		return 0, &ValidationError{Msg: fmt.Sprintf("%q is not a valid animation code", code)}
	}
	return a, nil
}
