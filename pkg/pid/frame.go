package pid

import "fmt"

// Control bytes of the transmission envelope.
const (
	DLE = 0x10
	STX = 0x02
	ETX = 0x03
)

// Frame wraps payload in the DLE/STX/ETX transmission envelope,
// doubling every literal DLE byte inside it.
func Frame(payload []byte) []byte {
	out := make([]byte, 0, len(payload)+4)
	out = append(out, DLE, STX)
	for _, b := range payload {
		if b == DLE {
			out = append(out, DLE)
		}
		out = append(out, b)
	}
	return append(out, DLE, ETX)
}

// Deframe strips the DLE/STX/ETX envelope and undoes the DLE
// doubling, failing if the envelope is absent or malformed.
func Deframe(frame []byte) ([]byte, error) {
	if len(frame) < 4 || frame[0] != DLE || frame[1] != STX {
		return nil, &ProtocolError{Msg: "missing DLE STX header"}
	}
	out := make([]byte, 0, len(frame)-4)
	for i := 2; i < len(frame); {
		b := frame[i]
		if b != DLE {
			out = append(out, b)
			i++
			continue
		}
		if i+1 == len(frame) {
			break
		}
		switch frame[i+1] {
		case DLE:
			out = append(out, DLE)
			i += 2
		case ETX:
			if i+2 != len(frame) {
				return nil, &ProtocolError{Msg: "data after DLE ETX trailer"}
			}
			return out, nil
		default:
			return nil, &ProtocolError{Msg: fmt.Sprintf("unexpected byte %#02x after DLE", frame[i+1])}
		}
	}
	return nil, &ProtocolError{Msg: "missing DLE ETX trailer"}
}

// FrameEnd scans buf for the first complete frame and returns its
// length, or -1 when no complete frame has arrived yet. A partial
// frame at the end of buf is not an error, so transports can call
// FrameEnd after every read while bytes accumulate.
func FrameEnd(buf []byte) int {
	if len(buf) < 2 || buf[0] != DLE || buf[1] != STX {
		return -1
	}
	for i := 2; i+1 < len(buf); i++ {
		if buf[i] != DLE {
			continue
		}
		switch buf[i+1] {
		case DLE:
			i++ // doubled DLE is a literal byte
		case ETX:
			return i + 2
		}
	}
	return -1
}
