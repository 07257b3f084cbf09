package pid

import "fmt"

// Transport is the byte-stream contract required of the serial
// collaborator. pkg/pid/serial provides the real implementation.
type Transport interface {
	// Write sends raw bytes in one call, failing if the channel is
	// closed or broken.
	Write(p []byte) error
	// ReadFrame blocks until one complete DLE/STX/ETX frame has been
	// received or the transport's configured timeout elapses, in which
	// case it returns a *TimeoutError.
	ReadFrame() ([]byte, error)
	// Buffered reports how many received bytes beyond the last frame
	// are waiting unread.
	Buffered() int
	// Close releases the transport. It must be idempotent.
	Close() error
}

// Conn drives one display over a Transport.
//
// Every send is synchronous: it blocks for the full
// write-then-read-with-timeout exchange, and exactly one exchange may
// be in flight per Conn. Callers needing several displays use one Conn
// per device; a Conn shared between goroutines needs external
// synchronization. A failed call retains no partial state, so the
// caller may simply call again.
type Conn struct {
	// NoAck disables acknowledgement checking: sends return as soon as
	// the frame is written, without reading a response.
	NoAck bool

	transport Transport
}

// NewConn wraps an open transport.
func NewConn(t Transport) *Conn { return &Conn{transport: t} }

// Send encodes msg, appends its checksum, frames it, writes it, and
// verifies the display's acknowledgement.
func (c *Conn) Send(msg Message) error {
	b, err := msg.Bytes()
	if err != nil {
		return err
	}
	return c.exchange(Frame(append(b, CRC(b)...)))
}

// SendString parses s as a DisplayMessage string and sends it.
func (c *Conn) SendString(s string) error {
	msg, err := DisplayMessageFromString(s)
	if err != nil {
		return err
	}
	return c.Send(msg)
}

// SendRaw sends arbitrary bytes. Bytes already forming a valid
// DLE/STX/ETX packet are assumed pre-checksummed and sent untouched;
// anything else is checksummed and framed first.
func (c *Conn) SendRaw(b []byte) error {
	if _, err := Deframe(b); err != nil {
		payload := append(append([]byte(nil), b...), CRC(b)...)
		b = Frame(payload)
	}
	return c.exchange(b)
}

// Ping sends a PingMessage, which has no visual effect but resets the
// display's inactivity timer. Deployed displays are pinged about every
// ten seconds, interleaved with other traffic; Pinger does this on a
// schedule.
func (c *Conn) Ping() error { return c.Send(NewPingMessage()) }

// Close releases the underlying transport.
func (c *Conn) Close() error { return c.transport.Close() }

func (c *Conn) exchange(frame []byte) error {
	if err := c.transport.Write(frame); err != nil {
		return err
	}
	if c.NoAck {
		return nil
	}
	reply, err := c.transport.ReadFrame()
	if err != nil {
		return err
	}
	payload, err := Deframe(reply)
	if err != nil {
		return err
	}
	body, err := UnCRC(payload)
	if err != nil {
		return err
	}
	if c.transport.Buffered() > 0 {
		return &UnsupportedError{Msg: "more data came back from the display than expected"}
	}
	msg, err := Inspect(body)
	if err != nil {
		return err
	}
	if _, ok := msg.(ResponseMessage); !ok {
		return &UnsupportedError{Msg: fmt.Sprintf("unexpected response from the display: % X", body)}
	}
	return nil
}
