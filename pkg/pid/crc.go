package pid

import (
	"bytes"

	"github.com/sigurn/crc16"
)

var crcTable = crc16.MakeTable(crc16.CRC16_X_25)

// CRC computes the CRC-16/X.25 tag of payload in the little-endian
// byte order expected by the display. Nothing is appended to payload.
func CRC(payload []byte) []byte {
	sum := crc16.Checksum(payload, crcTable)
	return []byte{byte(sum), byte(sum >> 8)}
}

// UnCRC verifies a byte sequence ending in a CRC tag as produced by
// CRC, and returns the sequence with the tag stripped.
func UnCRC(b []byte) ([]byte, error) {
	if len(b) < 2 {
		return nil, &ProtocolError{Msg: "value must be at least 2 bytes in length"}
	}
	payload, got := b[:len(b)-2], b[len(b)-2:]
	if want := CRC(payload); !bytes.Equal(got, want) {
		return nil, &ChecksumError{Got: append([]byte(nil), got...), Want: want}
	}
	return payload, nil
}
