package packets

import (
	"errors"
	"net/netip"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ragnet/ragnet/internal/core/netbytes"
)

func TestWorldPositionRoundTrip(t *testing.T) {
	for x := 0; x < 1024; x += 7 {
		for y := 0; y < 1024; y += 13 {
			w := netbytes.NewWriter()
			WorldPosition{X: x, Y: y}.encode(w)
			if w.Len() != 3 {
				t.Fatalf("encoded position is %d bytes, expected 3", w.Len())
			}
			c := netbytes.NewCursor(w.Data())
			got := readWorldPosition(c)
			if got.X != x || got.Y != y {
				t.Fatalf("round trip of (%d, %d) produced (%d, %d)", x, y, got.X, got.Y)
			}
		}
	}
}

func TestWorldPosition2Origin(t *testing.T) {
	w := netbytes.NewWriter()
	WorldPosition2{X1: 150, Y1: 99, X2: 153, Y2: 101}.encode(w)
	c := netbytes.NewCursor(w.Data())
	got := readWorldPosition2(c)
	if got.Origin() != (Point{X: 150, Y: 99}) {
		t.Errorf("Origin() = %v, expected (150, 99)", got.Origin())
	}
	if got.Destination() != (Point{X: 153, Y: 101}) {
		t.Errorf("Destination() = %v, expected (153, 101)", got.Destination())
	}
}

func TestItemIndexWireOffset(t *testing.T) {
	w := netbytes.NewWriter()
	ItemIndex(0).encode(w)
	c := netbytes.NewCursor(w.Data())
	if v := c.Uint16(); v != 2 {
		t.Errorf("logical index 0 encodes to %d, expected 2", v)
	}

	c = netbytes.NewCursor([]byte{0x05, 0x00})
	if idx := readItemIndex(c); idx != 3 {
		t.Errorf("wire value 5 decodes to %d, expected 3", idx)
	}

	// Wire values below the offset are corrupt.
	c = netbytes.NewCursor([]byte{0x01, 0x00})
	readItemIndex(c)
	if c.Err() == nil {
		t.Error("expected an error for a wire value below the offset")
	}
}

func TestMarshalLoginRequest(t *testing.T) {
	data := Marshal(&LoginRequest{
		GameVersion: 1,
		Username:    "player",
		Password:    "secret",
		ClientType:  2,
	})
	if len(data) != 55 {
		t.Fatalf("frame is %d bytes, expected 55", len(data))
	}
	c := netbytes.NewCursor(data)
	if h := c.Uint16(); h != 0x0064 {
		t.Errorf("header = %#x, expected 0x0064", h)
	}
	c.Skip(4)
	if name := c.String(24); name != "player" {
		t.Errorf("username = %q, expected %q", name, "player")
	}
}

func TestStatusDecodeConsumesWindow(t *testing.T) {
	// BaseLevel in the 12 byte window used by UpdateStatus1.
	w := netbytes.NewWriter()
	w.Uint16(uint16(StatusBaseLevel))
	w.Int32(42)
	w.Zero(6)

	c := netbytes.NewCursor(w.Data())
	s := readStatus(c, 12)
	if c.Err() != nil {
		t.Fatalf("unexpected error: %v", c.Err())
	}
	if s.Kind != StatusBaseLevel || s.Value != 42 {
		t.Errorf("status = %+v, expected BaseLevel 42", s)
	}
	if c.Remaining() != 0 {
		t.Errorf("window not fully consumed, %d bytes left", c.Remaining())
	}
}

func TestStatusDecodePairedValues(t *testing.T) {
	w := netbytes.NewWriter()
	w.Uint16(uint16(StatusStrength))
	w.Int32(99)
	w.Int32(7)
	w.Zero(2)

	c := netbytes.NewCursor(w.Data())
	s := readStatus(c, 12)
	if s.Kind != StatusStrength || s.Value != 99 || s.Bonus != 7 {
		t.Errorf("status = %+v, expected Strength 99+7", s)
	}
}

func TestStatusDecodeRejectsUnknownCode(t *testing.T) {
	w := netbytes.NewWriter()
	w.Uint16(500)
	w.Int32(1)

	c := netbytes.NewCursor(w.Data())
	readStatus(c, 6)
	if !errors.Is(c.Err(), ErrInvalidEnum) {
		t.Errorf("Err() = %v, expected ErrInvalidEnum", c.Err())
	}
}

func TestFrameSize(t *testing.T) {
	registry := MapRegistry()

	t.Run("fixed", func(t *testing.T) {
		d, ok := registry.Lookup(0x02eb)
		if !ok {
			t.Fatal("MapServerLoginSuccess not registered")
		}
		size, err := d.FrameSize(netbytes.NewCursor([]byte{0xeb, 0x02}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if size != 13 {
			t.Errorf("FrameSize() = %d, expected 13", size)
		}
	})

	t.Run("variable", func(t *testing.T) {
		d, ok := registry.Lookup(0x008e)
		if !ok {
			t.Fatal("ServerMessage not registered")
		}
		size, err := d.FrameSize(netbytes.NewCursor([]byte{0x8e, 0x00, 0x0a, 0x00}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if size != 10 {
			t.Errorf("FrameSize() = %d, expected 10", size)
		}
	})

	t.Run("prefix not buffered", func(t *testing.T) {
		d, _ := registry.Lookup(0x008e)
		_, err := d.FrameSize(netbytes.NewCursor([]byte{0x8e, 0x00, 0x0a}))
		if !errors.Is(err, netbytes.ErrShortBuffer) {
			t.Errorf("FrameSize() error = %v, expected ErrShortBuffer", err)
		}
	})

	t.Run("corrupt prefix", func(t *testing.T) {
		d, _ := registry.Lookup(0x008e)
		_, err := d.FrameSize(netbytes.NewCursor([]byte{0x8e, 0x00, 0x03, 0x00}))
		if err == nil || errors.Is(err, netbytes.ErrShortBuffer) {
			t.Errorf("FrameSize() error = %v, expected a hard error", err)
		}
	})
}

func TestRegistryLookup(t *testing.T) {
	registry := LoginRegistry()
	if _, ok := registry.Lookup(0x0ac4); !ok {
		t.Error("LoginSuccess missing from login registry")
	}
	// Map traffic must not be recognized on the login connection.
	if _, ok := registry.Lookup(0x02eb); ok {
		t.Error("map handshake frame present in login registry")
	}
}

func TestLoginSuccessDecode(t *testing.T) {
	w := netbytes.NewWriter()
	w.Uint16(0)
	w.Uint32(0x11111111)
	w.Uint32(2000000)
	w.Uint32(0x22222222)
	w.Bytes([]byte{127, 0, 0, 1})
	w.String("player", 24)
	w.Zero(2)
	w.Uint8(uint8(SexMale))
	w.Zero(17)
	// One character server entry.
	w.Bytes([]byte{10, 0, 0, 5})
	w.Uint16(6121)
	w.String("Chaos", 20)
	w.Uint16(3)
	w.Uint16(0)
	w.Uint16(0)
	w.Zero(128)
	w.PatchUint16(0, uint16(HeaderSize+w.Len()))

	var p LoginSuccess
	c := netbytes.NewCursor(w.Data())
	p.DecodeBody(c)
	if c.Err() != nil {
		t.Fatalf("unexpected error: %v", c.Err())
	}

	expected := LoginSuccess{
		LoginID1:  0x11111111,
		AccountID: 2000000,
		LoginID2:  0x22222222,
		IP:        netip.AddrFrom4([4]byte{127, 0, 0, 1}),
		Name:      "player",
		Sex:       SexMale,
		AuthToken: make([]byte, 17),
		CharacterServers: []CharacterServerInformation{{
			Address:   netip.AddrFrom4([4]byte{10, 0, 0, 5}),
			Port:      6121,
			Name:      "Chaos",
			UserCount: 3,
		}},
	}
	addrs := cmp.Comparer(func(a, b netip.Addr) bool { return a == b })
	if diff := cmp.Diff(expected, p, addrs); diff != "" {
		t.Errorf("decoded packet mismatch (-expected +got):\n%s", diff)
	}
}

func TestCharacterListDecodeRejectsTrailingBytes(t *testing.T) {
	w := netbytes.NewWriter()
	w.Uint16(0)
	w.Zero(characterInformationSize)
	w.Zero(3)
	w.PatchUint16(0, uint16(HeaderSize+w.Len()))

	var p CharacterListSuccess
	c := netbytes.NewCursor(w.Data())
	p.DecodeBody(c)
	if c.Err() == nil {
		t.Error("expected an error for trailing bytes after the roster")
	}
}

func TestEntityAppearedShapes(t *testing.T) {
	build := func(moving, hasState bool) []byte {
		w := netbytes.NewWriter()
		w.Uint16(0)
		w.Uint8(0)
		w.Uint32(1001)
		w.Uint32(0)
		w.Uint16(150)
		w.Zero(2 + 2 + 4 + 2 + 2 + 4 + 4 + 2)
		if moving {
			w.Uint32(12345)
		}
		w.Zero(2 + 2 + 2 + 2 + 2 + 2 + 4 + 2 + 2 + 4 + 1)
		w.Uint8(uint8(SexFemale))
		if moving {
			WorldPosition2{X1: 10, Y1: 20, X2: 11, Y2: 21}.encode(w)
		} else {
			WorldPosition{X: 10, Y: 20}.encode(w)
		}
		w.Zero(2)
		if hasState {
			w.Uint8(0)
		}
		w.Zero(2 + 2)
		w.Int32(100)
		w.Int32(60)
		w.Uint8(0)
		w.Uint16(0)
		w.String("Poring", 24)
		return w.Data()
	}

	t.Run("stationary", func(t *testing.T) {
		var p EntityAppeared
		c := netbytes.NewCursor(build(false, false))
		p.DecodeBody(c)
		if c.Err() != nil {
			t.Fatalf("unexpected error: %v", c.Err())
		}
		if p.EntityID != 1001 || p.Position.X != 10 || p.Position.Y != 20 || p.Name != "Poring" {
			t.Errorf("decoded appearance mismatch: %+v", p.EntityAppearance)
		}
	})

	t.Run("moving", func(t *testing.T) {
		var p MovingEntityAppeared
		c := netbytes.NewCursor(build(true, false))
		p.DecodeBody(c)
		if c.Err() != nil {
			t.Fatalf("unexpected error: %v", c.Err())
		}
		if p.MoveStartTime != 12345 || p.Movement.Destination() != (Point{X: 11, Y: 21}) {
			t.Errorf("decoded movement mismatch: %+v", p.EntityAppearance)
		}
	})

	t.Run("with state", func(t *testing.T) {
		var p EntityAppeared2
		c := netbytes.NewCursor(build(false, true))
		p.DecodeBody(c)
		if c.Err() != nil {
			t.Fatalf("unexpected error: %v", c.Err())
		}
		if p.HealthPoints != 60 {
			t.Errorf("HealthPoints = %d, expected 60", p.HealthPoints)
		}
	})
}

func TestDamageDecode(t *testing.T) {
	w := netbytes.NewWriter()
	w.Uint32(1001) // source
	w.Uint32(2002) // destination
	w.Uint32(5000) // tick
	w.Uint32(150)  // source speed
	w.Uint32(150)  // destination speed
	w.Uint32(320)  // damage
	w.Uint8(0)
	w.Uint16(2) // hits
	w.Uint8(0)
	w.Uint32(0) // left hand

	var p Damage
	c := netbytes.NewCursor(w.Data())
	p.DecodeBody(c)
	if c.Err() != nil {
		t.Fatalf("unexpected error: %v", c.Err())
	}
	if c.Remaining() != 0 {
		t.Errorf("%d bytes left after the fixed body", c.Remaining())
	}
	if p.SourceID != 1001 || p.DestinationID != 2002 || p.Amount != 320 || p.HitCount != 2 {
		t.Errorf("decoded damage mismatch: %+v", p)
	}
}

func TestEnumValidation(t *testing.T) {
	tests := []struct {
		name   string
		decode func(c *netbytes.Cursor)
		data   []byte
	}{
		{
			"login failure reason",
			func(c *netbytes.Cursor) { new(LoginFailed).DecodeBody(c) },
			[]byte{0x05},
		},
		{
			"disappearance reason",
			func(c *netbytes.Cursor) { new(EntityDisappeared).DecodeBody(c) },
			[]byte{0x01, 0x00, 0x00, 0x00, 0x09},
		},
		{
			"heal type",
			func(c *netbytes.Cursor) { new(DisplayPlayerHealEffect).DecodeBody(c) },
			[]byte{0x06, 0x00, 0x01, 0x00, 0x00, 0x00},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := netbytes.NewCursor(tt.data)
			tt.decode(c)
			if !errors.Is(c.Err(), ErrInvalidEnum) {
				t.Errorf("Err() = %v, expected ErrInvalidEnum", c.Err())
			}
		})
	}
}

func TestGlobalMessageLengthPrefix(t *testing.T) {
	data := Marshal(&GlobalMessage{Message: "hello"})
	c := netbytes.NewCursor(data)
	if h := c.Uint16(); h != 0x00f3 {
		t.Fatalf("header = %#x, expected 0x00f3", h)
	}
	if length := c.Uint16(); int(length) != len(data) {
		t.Errorf("length prefix = %d, expected %d", length, len(data))
	}
}
