// Package packets defines the wire catalog for the login, character, and
// map server protocols.
//
// Every frame starts with a 16-bit little-endian header identifying the
// packet type, followed by a body that is either a fixed layout or begins
// with a u16 holding the entire frame's byte length (header and length
// field included). Headers are unique across all three protocols even
// though only a subset is valid on any one connection.
package packets

import (
	"errors"
	"fmt"

	"github.com/ragnet/ragnet/internal/core/netbytes"
)

// HeaderSize is the length of the header prefixing every frame.
const HeaderSize = 2

// BodyVariable marks a descriptor whose frame carries a u16 total-length
// prefix instead of having a statically known size.
const BodyVariable = -1

// ErrInvalidEnum is wrapped by decoders that encounter a numeric code
// outside a closed enumeration. This is unrecoverable for the frame.
var ErrInvalidEnum = errors.New("packets: invalid enum code")

// Packet is implemented by every type in the catalog.
type Packet interface {
	Header() uint16
}

// Encodable is the client-to-server half of the catalog.
type Encodable interface {
	Packet
	// EncodeBody appends the packet body, everything after the header.
	EncodeBody(w *netbytes.Writer)
}

// Decodable is the server-to-client half of the catalog.
type Decodable interface {
	Packet
	// DecodeBody reads the packet body, everything after the header.
	// Failures are reported through the cursor's sticky error.
	DecodeBody(c *netbytes.Cursor)
}

// keepalive is embedded by ping frames, which are exempt from packet
// history capture and logging.
type keepalive struct{}

func (keepalive) Keepalive() bool { return true }

// IsKeepalive reports whether p is a ping frame.
func IsKeepalive(p Packet) bool {
	k, ok := p.(interface{ Keepalive() bool })
	return ok && k.Keepalive()
}

// Marshal serializes a complete frame: header followed by body.
func Marshal(p Encodable) []byte {
	w := netbytes.NewWriter()
	w.Uint16(p.Header())
	p.EncodeBody(w)
	return w.Data()
}

// Descriptor ties a header to the metadata the dispatcher needs: a
// diagnostic name, the keepalive flag, the static body size (or
// BodyVariable), and a constructor for the concrete type.
type Descriptor struct {
	Header    uint16
	Name      string
	Keepalive bool
	// BodySize is the byte count of the body for fixed-layout frames,
	// or BodyVariable for length-prefixed frames.
	BodySize int
	New      func() Decodable
}

// Registry maps headers to descriptors for one connection's protocol,
// giving the dispatcher O(1) frame identification.
type Registry struct {
	byHeader map[uint16]*Descriptor
}

func NewRegistry(descriptors []Descriptor) *Registry {
	r := &Registry{byHeader: make(map[uint16]*Descriptor, len(descriptors))}
	for i := range descriptors {
		d := &descriptors[i]
		if _, taken := r.byHeader[d.Header]; taken {
			panic(fmt.Sprintf("packets: duplicate header 0x%04x (%s)", d.Header, d.Name))
		}
		r.byHeader[d.Header] = d
	}
	return r
}

// Lookup returns the descriptor registered for header.
func (r *Registry) Lookup(header uint16) (*Descriptor, bool) {
	d, ok := r.byHeader[header]
	return d, ok
}

// FrameSize computes the total length in bytes of the frame starting at
// the cursor position, without consuming anything. It returns
// netbytes.ErrShortBuffer when not enough bytes have arrived to know,
// and a hard error for a corrupt length prefix.
func (d *Descriptor) FrameSize(c *netbytes.Cursor) (int, error) {
	if d.BodySize != BodyVariable {
		return HeaderSize + d.BodySize, nil
	}
	if c.Remaining() < HeaderSize+2 {
		return 0, fmt.Errorf("%w: length prefix of %s not yet buffered", netbytes.ErrShortBuffer, d.Name)
	}
	// The prefix counts the whole frame, header and prefix included.
	length := int(peekUint16At(c, HeaderSize))
	if length < HeaderSize+2 {
		return 0, fmt.Errorf("packets: %s declares impossible frame length %d", d.Name, length)
	}
	return length, nil
}

func peekUint16At(c *netbytes.Cursor, offset int) uint16 {
	b := c.PeekBytes(offset + 2)
	if b == nil {
		return 0
	}
	return uint16(b[offset]) | uint16(b[offset+1])<<8
}

// describe builds a Descriptor from the type's prototype value.
func describe[P any, PP interface {
	*P
	Decodable
}](name string, bodySize int) Descriptor {
	var prototype P
	d := Descriptor{
		Header:   PP(&prototype).Header(),
		Name:     name,
		BodySize: bodySize,
		New:      func() Decodable { return PP(new(P)) },
	}
	d.Keepalive = IsKeepalive(PP(&prototype))
	return d
}
