package pid

import (
	"fmt"
	"sort"
	"strings"
)

// asciiChars are the ASCII characters the display can render. Each
// maps to its own byte value. Note the absent printables: " % @ [ ] ^
// ` { | } plus the two repurposed as markers (~ and _).
const asciiChars = ` !#$&'()*+,-./0123456789:;<=>?ABCDEFGHIJKLMNOPQRSTUVWXYZ\abcdefghijklmnopqrstuvwxyz`

// extensionChars are the non-ASCII characters the display can render,
// mapped to display-specific bytes.
const extensionChars = "·•─━█▔"

var extensionBytes = map[rune]byte{
	'·': 0x8F, // MIDDLE DOT
	'•': 0xD3, // BULLET
	'─': 0x97, // BOX DRAWINGS LIGHT HORIZONTAL
	'━': 0xD2, // BOX DRAWINGS HEAVY HORIZONTAL
	'█': 0x5F, // FULL BLOCK
	'▔': 0xA3, // UPPER ONE EIGHTH BLOCK
}

const allowedChars = asciiChars + extensionChars

var (
	textEncoding = map[rune]byte{}
	textDecoding = map[byte]rune{}
)

func init() {
	for _, r := range asciiChars {
		textEncoding[r] = byte(r)
		textDecoding[byte(r)] = r
	}
	for _, r := range extensionChars {
		b := extensionBytes[r]
		textEncoding[r] = b
		textDecoding[b] = r
	}
	// Decode-only aliases observed from real hardware. They make
	// decoding many-to-one, so encodeText(decodeText(b)) is not
	// guaranteed to reproduce b.
	textDecoding[0x22] = '\''
	textDecoding[0x98] = '─'
	textDecoding[0xA4] = '▔'
	textDecoding[0xA5] = '▔'
}

// encodeText converts a line of text into display-level bytes. Every
// unusable character is collected and reported in one error.
func encodeText(text string) ([]byte, error) {
	out := make([]byte, 0, len(text))
	var bad []rune
	seen := map[rune]bool{}
	for _, r := range text {
		b, ok := textEncoding[r]
		if !ok {
			if !seen[r] {
				seen[r] = true
				bad = append(bad, r)
			}
			continue
		}
		out = append(out, b)
	}
	if len(bad) > 0 {
		sort.Slice(bad, func(i, j int) bool { return bad[i] < bad[j] })
		quoted := make([]string, len(bad))
		for i, r := range bad {
			quoted[i] = fmt.Sprintf("%q", r)
		}
		return nil, &ValidationError{Msg: fmt.Sprintf(
			"%s not in allowed characters (%q)",
			strings.Join(quoted, ", "), allowedChars)}
	}
	return out, nil
}

// decodeText converts display-level bytes into text. Bytes with no
// mapping become the Unicode replacement character.
func decodeText(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		r, ok := textDecoding[c]
		if !ok {
			r = '�'
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
