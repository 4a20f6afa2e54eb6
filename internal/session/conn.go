package session

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/ragnet/ragnet/internal/core/netbytes"
	"github.com/ragnet/ragnet/internal/diag"
	"github.com/ragnet/ragnet/internal/packets"
)

const (
	dialTimeout    = time.Second
	requestTimeout = time.Second
	pollTimeout    = 10 * time.Millisecond
	readChunkSize  = 4096

	loginKeepaliveInterval     = 58 * time.Second
	characterKeepaliveInterval = 10 * time.Second
	mapKeepaliveInterval       = 4 * time.Second
)

// ErrClosed is reported when the peer closes a connection.
var ErrClosed = errors.New("session: connection closed by server")

// ErrTimeout is reported when a blocking request exceeds its deadline.
var ErrTimeout = errors.New("session: request timed out")

// UnknownHeaderError is reported when a frame arrives with a header not
// registered for the connection. Decoding cannot continue past it, so
// the remaining buffer is captured for diagnostics.
type UnknownHeaderError struct {
	Header    uint16
	Remainder []byte
}

func (e *UnknownHeaderError) Error() string {
	return fmt.Sprintf("session: unknown header 0x%04x with %d bytes buffered", e.Header, len(e.Remainder))
}

// serverConnection pairs a TCP connection with the registry of frames
// valid on it and the buffer of bytes read but not yet framed.
type serverConnection struct {
	conn       net.Conn
	registry   *packets.Registry
	name       string
	buf        []byte
	log        *zap.SugaredLogger
	history    *diag.History
	logPackets bool
}

func (c *serverConnection) send(p packets.Encodable) error {
	data := packets.Marshal(p)
	if !packets.IsKeepalive(p) {
		c.history.Push(diag.Record{
			Time:      time.Now(),
			Direction: diag.Sent,
			Header:    p.Header(),
			Name:      fmt.Sprintf("%T", p),
			Data:      data,
		})
		if c.logPackets {
			c.log.Debugw("packet sent", "server", c.name, "type", fmt.Sprintf("%T", p), "size", len(data))
		}
	}
	if _, err := c.conn.Write(data); err != nil {
		return fmt.Errorf("writing to %s server: %w", c.name, err)
	}
	return nil
}

// fill performs one read with the given deadline and appends whatever
// arrived to the buffer. Deadline expiry is not an error; it reports
// (false, nil) so pollers can move on.
func (c *serverConnection) fill(timeout time.Duration) (bool, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return false, err
	}
	chunk := make([]byte, readChunkSize)
	n, err := c.conn.Read(chunk)
	if n > 0 {
		c.buf = append(c.buf, chunk[:n]...)
	}
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return n > 0, nil
		}
		if errors.Is(err, io.EOF) {
			if n > 0 {
				// Surface the data now; the EOF resurfaces on the next read.
				return true, nil
			}
			return false, ErrClosed
		}
		return n > 0, fmt.Errorf("reading from %s server: %w", c.name, err)
	}
	return n > 0, nil
}

// readRaw returns exactly n bytes from the stream, used for the
// character server's bare account id echo, which is not a frame.
func (c *serverConnection) readRaw(n int, timeout time.Duration) ([]byte, error) {
	deadline := time.Now().Add(timeout)
	for len(c.buf) < n {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("%w: waiting for %d raw bytes from %s server", ErrTimeout, n, c.name)
		}
		if _, err := c.fill(remaining); err != nil {
			return nil, err
		}
	}
	out := append([]byte(nil), c.buf[:n]...)
	c.buf = append(c.buf[:0], c.buf[n:]...)
	return out, nil
}

// popFrame decodes the next complete frame in the buffer. It returns
// (nil, nil, nil) when no complete frame is buffered yet; bytes stay in
// the buffer until the rest of the frame arrives.
func (c *serverConnection) popFrame() (packets.Decodable, *packets.Descriptor, error) {
	if len(c.buf) < packets.HeaderSize {
		return nil, nil, nil
	}
	cursor := netbytes.NewCursor(c.buf)
	header := cursor.PeekUint16()
	descriptor, ok := c.registry.Lookup(header)
	if !ok {
		return nil, nil, &UnknownHeaderError{Header: header, Remainder: append([]byte(nil), c.buf...)}
	}
	size, err := descriptor.FrameSize(cursor)
	if err != nil {
		if errors.Is(err, netbytes.ErrShortBuffer) {
			return nil, nil, nil
		}
		return nil, descriptor, err
	}
	if len(c.buf) < size {
		return nil, nil, nil
	}

	body := netbytes.NewCursor(c.buf[packets.HeaderSize:size])
	packet := descriptor.New()
	packet.DecodeBody(body)
	if err := body.Err(); err != nil {
		return nil, descriptor, fmt.Errorf("decoding %s: %w", descriptor.Name, err)
	}
	if body.Remaining() != 0 {
		return nil, descriptor, fmt.Errorf("decoding %s: %d bytes of the frame left unread", descriptor.Name, body.Remaining())
	}

	c.history.Push(diag.Record{
		Time:      time.Now(),
		Direction: diag.Received,
		Header:    header,
		Name:      descriptor.Name,
		Data:      append([]byte(nil), c.buf[:size]...),
		Packet:    packet,
	})
	if c.logPackets {
		c.log.Debugw("packet received", "server", c.name, "type", descriptor.Name, "size", size)
	}

	c.buf = append(c.buf[:0], c.buf[size:]...)
	return packet, descriptor, nil
}

func (c *serverConnection) close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
