package pid

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	attrsSep    = "^"
	rightChar   = "~"
	rightEscape = `\R`
	newlineChar = "_"
	newlineByte = 0x0A
)

var pageRE = regexp.MustCompile(`(?s)\A(?:([A-Za-z]?)(\d*)\^)?(.*)\z`)

// Page is one screen of a DisplayMessage: the text to show, how it
// animates on entry, and how long (in quarter-seconds) to pause after
// the animation completes before the next page.
//
// Within the text, "~" right-justifies the remainder of the line and
// "_" advances to the next display line; every other character must be
// in the permitted set.
type Page struct {
	Animate Animate
	Delay   int
	Text    string
}

// PageFromString builds a Page from its compact string form:
//
//	<text>
//	^<text>
//	<animate>^<text>
//	<delay>^<text>
//	<animate><delay>^<text>
//
// Missing animate and delay values fall back to the supplied defaults.
func PageFromString(s string, defaultAnimate Animate, defaultDelay int) (Page, error) {
	m := pageRE.FindStringSubmatch(s)
	animate := defaultAnimate
	if m[1] != "" {
		var err error
		if animate, err = ParseAnimate(m[1][0]); err != nil {
			return Page{}, err
		}
	}
	delay := defaultDelay
	if m[2] != "" {
		n, err := strconv.Atoi(m[2])
		if err != nil || n > 255 {
			return Page{}, &ValidationError{Msg: fmt.Sprintf("delay %s is not between 0 and 255", m[2])}
		}
		delay = n
	}
	return Page{Animate: animate, Delay: delay, Text: m[3]}, nil
}

// String returns the compact form accepted by PageFromString.
func (p Page) String() string {
	return p.Animate.String() + strconv.Itoa(p.Delay) + attrsSep + p.Text
}

// Bytes returns the raw byte form as understood by the display:
// animation byte, leading-line-break count, delay, a reserved zero,
// then the encoded text with lines joined by 0x0A.
func (p Page) Bytes() ([]byte, error) {
	if p.Delay < 0 || p.Delay > 255 {
		return nil, &ValidationError{Msg: fmt.Sprintf("delay %d is not between 0 and 255", p.Delay)}
	}
	offset := len(p.Text) - len(strings.TrimLeft(p.Text, newlineChar))
	if offset > 0xFF {
		return nil, &ValidationError{Msg: fmt.Sprintf(
			"%d leading %q markers cannot be stored in the offset byte", offset, newlineChar)}
	}
	out := []byte{animateWire[p.Animate], byte(offset), byte(p.Delay), 0x00}
	for i, line := range strings.Split(p.Text[offset:], newlineChar) {
		if i > 0 {
			out = append(out, newlineByte)
		}
		enc, err := encodeText(strings.ReplaceAll(line, rightChar, rightEscape))
		if err != nil {
			return nil, err
		}
		out = append(out, enc...)
	}
	return out, nil
}

// PageFromBytes builds a Page from the raw byte form of one page.
func PageFromBytes(b []byte) (Page, error) {
	if len(b) < 4 {
		return Page{}, &ProtocolError{Msg: "not enough bytes for a Page"}
	}
	animate, ok := animateFromWire[b[0]]
	if !ok {
		return Page{}, &UnsupportedError{Msg: fmt.Sprintf("unexpected animate byte value %#02x at index 0", b[0])}
	}
	if b[3] != 0x00 {
		return Page{}, &UnsupportedError{Msg: fmt.Sprintf("unexpected byte value %#02x at index 3", b[3])}
	}
	body := bytes.TrimRight(b[4:], string(rune(newlineByte)))
	lines := make([]string, 0, 1)
	for _, raw := range bytes.Split(body, []byte{newlineByte}) {
		line := strings.TrimRight(decodeText(raw), " ")
		lines = append(lines, strings.ReplaceAll(line, rightEscape, rightChar))
	}
	text := strings.Repeat(newlineChar, int(b[1])) + strings.Join(lines, newlineChar)
	return Page{Animate: animate, Delay: int(b[2]), Text: text}, nil
}
