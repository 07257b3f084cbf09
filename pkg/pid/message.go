package pid

import (
	"bytes"
	"fmt"
	"strings"
)

// Message is the closed set of wire messages the display understands:
// DisplayMessage, PingMessage and ResponseMessage. Each kind is
// identified by a fixed marker prefix on its byte form.
type Message interface {
	// Marker returns the byte prefix identifying this message kind.
	Marker() []byte
	// Bytes returns the raw byte form, without the CRC checksum and
	// packet framing required for transmission.
	Bytes() ([]byte, error)
}

var (
	displayMarker  = []byte{0x01, 0x44, 0x00}
	pingMarker     = []byte{0x01, 0x50}
	responseMarker = []byte{0x01, 0x52}
)

// messageCodecs pairs each marker with its decoder, consulted in order
// by Inspect. The variant set is closed, so the table is fixed at
// compile time rather than registered at runtime.
var messageCodecs = []struct {
	marker []byte
	decode func([]byte) (Message, error)
}{
	{displayMarker, func(b []byte) (Message, error) { return DisplayMessageFromBytes(b) }},
	{pingMarker, func(b []byte) (Message, error) { return PingMessageFromBytes(b) }},
	{responseMarker, func(b []byte) (Message, error) { return ResponseMessageFromBytes(b) }},
}

const pageSep = "|"

// DisplayMessage is one cohesive set of information shown over a
// sequence of Pages. Once exhausted the sequence repeats indefinitely,
// until a new message is sent or the display times out and clears
// (avoidable by pinging).
type DisplayMessage struct {
	Pages []Page
}

// Marker implements Message.
func (DisplayMessage) Marker() []byte { return displayMarker }

// DisplayMessageFromString builds a DisplayMessage from page strings
// joined by "|". A first page left unspecified defaults to vertical
// scroll with delay 40; later pages default to horizontal scroll with
// delay 0.
func DisplayMessageFromString(s string) (DisplayMessage, error) {
	var pages []Page
	for i, pageStr := range strings.Split(s, pageSep) {
		animate, delay := AnimateHScroll, 0
		if i == 0 {
			animate, delay = AnimateVScroll, 40
		}
		page, err := PageFromString(pageStr, animate, delay)
		if err != nil {
			return DisplayMessage{}, err
		}
		pages = append(pages, page)
	}
	return DisplayMessage{Pages: pages}, nil
}

// DisplayMessageFromBytes builds a DisplayMessage from its raw byte
// form (marker, page encodings joined by 0D 01, trailing 0D).
func DisplayMessageFromBytes(b []byte) (DisplayMessage, error) {
	if !bytes.HasPrefix(b, displayMarker) {
		return DisplayMessage{}, &ProtocolError{Msg: fmt.Sprintf("data must start with % X", displayMarker)}
	}
	index := len(displayMarker)
	var pages []Page
	for {
		if len(pages) > 0 {
			if b[index] != 0x01 {
				return DisplayMessage{}, &UnsupportedError{Msg: fmt.Sprintf(
					"unexpected byte value %#02x at index %d", b[index], index)}
			}
			index++
		}
		end := bytes.IndexByte(b[index:], 0x0D)
		if end < 0 {
			return DisplayMessage{}, &ProtocolError{Msg: "unexpected end of data"}
		}
		page, err := PageFromBytes(b[index : index+end])
		if err != nil {
			return DisplayMessage{}, err
		}
		pages = append(pages, page)
		index += end + 1
		if index == len(b) {
			return DisplayMessage{Pages: pages}, nil
		}
	}
}

// String returns the page strings joined by "|", accepted by
// DisplayMessageFromString.
func (m DisplayMessage) String() string {
	strs := make([]string, len(m.Pages))
	for i, p := range m.Pages {
		strs[i] = p.String()
	}
	return strings.Join(strs, pageSep)
}

// Bytes implements Message.
func (m DisplayMessage) Bytes() ([]byte, error) {
	if len(m.Pages) == 0 {
		return nil, &ValidationError{Msg: "a DisplayMessage needs at least one page"}
	}
	out := append([]byte(nil), displayMarker...)
	for i, p := range m.Pages {
		if i > 0 {
			out = append(out, 0x0D, 0x01)
		}
		pb, err := p.Bytes()
		if err != nil {
			return nil, err
		}
		out = append(out, pb...)
	}
	return append(out, 0x0D), nil
}

// DefaultPingPayload is the opaque ping byte typically seen in
// deployment.
const DefaultPingPayload = 0x6F

// PingMessage has no visual effect but impedes the automatic clearing
// of the display, which otherwise occurs after about a minute of
// inactivity.
type PingMessage struct {
	// Payload seems to have no effect when changed.
	Payload byte
}

// NewPingMessage returns a PingMessage with the deployment payload.
func NewPingMessage() PingMessage { return PingMessage{Payload: DefaultPingPayload} }

// Marker implements Message.
func (PingMessage) Marker() []byte { return pingMarker }

// PingMessageFromBytes builds a PingMessage from its exact 3-byte
// form.
func PingMessageFromBytes(b []byte) (PingMessage, error) {
	if !bytes.HasPrefix(b, pingMarker) {
		return PingMessage{}, &ProtocolError{Msg: "incorrect header for PingMessage"}
	}
	if len(b) < 3 {
		return PingMessage{}, &ProtocolError{Msg: "unexpected end of data"}
	}
	if len(b) > 3 {
		return PingMessage{}, &ProtocolError{Msg: "unexpected data after PingMessage"}
	}
	return PingMessage{Payload: b[2]}, nil
}

// Bytes implements Message.
func (m PingMessage) Bytes() ([]byte, error) {
	return []byte{pingMarker[0], pingMarker[1], m.Payload}, nil
}

// ResponseMessage is the display's acknowledgement of a transmission.
// It is received, never sent.
type ResponseMessage struct {
	// Payload loosely tracks the payload of the previously sent ping,
	// but not reliably, so it is captured and otherwise ignored.
	Payload byte
}

// Marker implements Message.
func (ResponseMessage) Marker() []byte { return responseMarker }

// ResponseMessageFromBytes builds a ResponseMessage from its exact
// 4-byte form, which must end with 0x00.
func ResponseMessageFromBytes(b []byte) (ResponseMessage, error) {
	if !bytes.HasPrefix(b, responseMarker) {
		return ResponseMessage{}, &ProtocolError{Msg: "incorrect header for ResponseMessage"}
	}
	if len(b) < 4 {
		return ResponseMessage{}, &ProtocolError{Msg: "unexpected end of data"}
	}
	if len(b) > 4 {
		return ResponseMessage{}, &ProtocolError{Msg: "unexpected data after ResponseMessage"}
	}
	if b[3] != 0x00 {
		return ResponseMessage{}, &ProtocolError{Msg: fmt.Sprintf("unexpected value %#02x at offset 3", b[3])}
	}
	return ResponseMessage{Payload: b[2]}, nil
}

// Bytes implements Message.
func (m ResponseMessage) Bytes() ([]byte, error) {
	return []byte{responseMarker[0], responseMarker[1], m.Payload, 0x00}, nil
}

// Inspect determines how the display would interpret an arbitrary byte
// sequence. A valid DLE/STX/ETX packet is unwrapped and
// checksum-verified first; bare marker-prefixed bytes are classified
// directly, which makes Inspect usable for diagnostics on raw
// unchecksummed captures.
func Inspect(b []byte) (Message, error) {
	if payload, err := Deframe(b); err == nil {
		verified, err := UnCRC(payload)
		if err != nil {
			return nil, err
		}
		b = verified
	}
	for _, codec := range messageCodecs {
		if bytes.HasPrefix(b, codec.marker) {
			return codec.decode(b)
		}
	}
	return nil, &ProtocolError{Msg: "unrecognised byte sequence"}
}
