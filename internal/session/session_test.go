package session

import (
	"errors"
	"io"
	"net"
	"net/netip"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/ragnet/ragnet/internal/core"
	"github.com/ragnet/ragnet/internal/core/netbytes"
	"github.com/ragnet/ragnet/internal/diag"
	"github.com/ragnet/ragnet/internal/packets"
)

func newTestSession() *Session {
	cfg := &core.Config{}
	cfg.LoginServerHost = "127.0.0.1"
	cfg.GameVersion = 1
	return New(cfg, zap.NewNop().Sugar())
}

func TestKeepaliveTimerAccumulates(t *testing.T) {
	base := time.Now()
	timer := newKeepaliveTimer(10*time.Second, base)

	if timer.due(base.Add(9 * time.Second)) {
		t.Error("timer fired before the period elapsed")
	}
	if !timer.due(base.Add(10 * time.Second)) {
		t.Error("timer did not fire after the period elapsed")
	}
	// The 2 second overshoot counts toward the next firing.
	if timer.due(base.Add(12 * time.Second)) {
		t.Error("timer fired twice for a single period")
	}
	if !timer.due(base.Add(20 * time.Second)) {
		t.Error("overshoot was not carried into the next period")
	}
}

func TestPopFrameWalksBufferedFrames(t *testing.T) {
	conn := &serverConnection{
		registry: packets.MapRegistry(),
		name:     "map",
		log:      zap.NewNop().Sugar(),
		history:  diag.NewHistory(8),
	}

	w := netbytes.NewWriter()
	w.Uint16(0x013a) // UpdateAttackRange
	w.Uint16(3)
	w.Uint16(0x013a)
	w.Uint16(5)
	full := w.Data()

	// Deliver everything except the final byte.
	conn.buf = append(conn.buf, full[:len(full)-1]...)

	p, _, err := conn.popFrame()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, ok := p.(*packets.UpdateAttackRange)
	if !ok || first.AttackRange != 3 {
		t.Fatalf("first frame = %#v, expected attack range 3", p)
	}

	// The second frame is still one byte short.
	p, _, err = conn.popFrame()
	if p != nil || err != nil {
		t.Fatalf("partial frame returned (%v, %v), expected nothing yet", p, err)
	}

	conn.buf = append(conn.buf, full[len(full)-1])
	p, _, err = conn.popFrame()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, ok := p.(*packets.UpdateAttackRange)
	if !ok || second.AttackRange != 5 {
		t.Fatalf("second frame = %#v, expected attack range 5", p)
	}
	if len(conn.buf) != 0 {
		t.Errorf("%d bytes left in the buffer after both frames", len(conn.buf))
	}
}

func TestPopFrameRejectsUnknownHeader(t *testing.T) {
	conn := &serverConnection{
		registry: packets.LoginRegistry(),
		name:     "login",
		log:      zap.NewNop().Sugar(),
		history:  diag.NewHistory(8),
	}
	conn.buf = []byte{0xff, 0xff, 0x01, 0x02}

	_, _, err := conn.popFrame()
	var unknown *UnknownHeaderError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %v, expected UnknownHeaderError", err)
	}
	if unknown.Header != 0xffff {
		t.Errorf("reported header = %#x, expected 0xffff", unknown.Header)
	}
}

func TestServerTickAnswerResyncsClock(t *testing.T) {
	conn := &serverConnection{
		registry: packets.MapRegistry(),
		name:     "map",
		log:      zap.NewNop().Sugar(),
		history:  diag.NewHistory(8),
	}

	w := netbytes.NewWriter()
	w.Uint16(0x007f)
	w.Uint32(5000)
	conn.buf = append(conn.buf, w.Data()...)

	p, _, err := conn.popFrame()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tick, ok := p.(*packets.ServerTick)
	if !ok || tick.ClientTick != 5000 {
		t.Fatalf("frame = %#v, expected server tick 5000", p)
	}

	s := newTestSession()
	s.dispatch(tick)
	events := s.takeEvents()
	if len(events) != 1 {
		t.Fatalf("%d events emitted, expected 1", len(events))
	}
	if e, ok := events[0].(ClientTickUpdated); !ok || e.Tick != 5000 {
		t.Errorf("event = %#v, expected a tick update to 5000", events[0])
	}
	if s.currentTick() < 5000 {
		t.Errorf("currentTick() = %d, expected the clock anchored at 5000", s.currentTick())
	}
}

func TestDispatchReportsCombat(t *testing.T) {
	s := newTestSession()

	s.dispatch(&packets.Damage{SourceID: 1001, DestinationID: 2002, Amount: 320, HitCount: 2})
	s.dispatch(&packets.UpdateEntityHealthPoints{EntityID: 2002, HealthPoints: 350, MaximumHealthPoints: 500})
	s.dispatch(&packets.PlayerAttackFailed{TargetID: 2002, TargetPosition: packets.Point{X: 50, Y: 60}, AttackRange: 2})

	events := s.takeEvents()
	if len(events) != 3 {
		t.Fatalf("%d events emitted, expected 3", len(events))
	}
	damage, ok := events[0].(EntityDamaged)
	if !ok || damage.SourceID != 1001 || damage.TargetID != 2002 || damage.Amount != 320 {
		t.Errorf("event = %#v, expected 320 damage from 1001 to 2002", events[0])
	}
	health, ok := events[1].(EntityHealthUpdated)
	if !ok || health.EntityID != 2002 || health.HealthPoints != 350 || health.MaximumHealthPoints != 500 {
		t.Errorf("event = %#v, expected health 350/500 on 2002", events[1])
	}
	failed, ok := events[2].(AttackFailed)
	if !ok || failed.TargetID != 2002 || failed.AttackRange != 2 {
		t.Errorf("event = %#v, expected a failed attack on 2002", events[2])
	}
}

func TestDispatchAccumulatesInventory(t *testing.T) {
	s := newTestSession()

	s.dispatch(&packets.InventoryStart{})
	s.dispatch(&packets.RegularItemList{
		Items: []packets.RegularItemInformation{
			{Index: 0, ItemID: 501, Amount: 10},
		},
	})
	s.dispatch(&packets.EquippableItemList{
		Items: []packets.EquippableItemInformation{
			{Index: 1, ItemID: 1101, EquipPosition: packets.EquipRightHand},
		},
	})

	// Nothing is visible until the transfer closes.
	if events := s.takeEvents(); len(events) != 0 {
		t.Fatalf("%d events emitted mid-transfer, expected none", len(events))
	}

	s.dispatch(&packets.InventoryEnd{})
	events := s.takeEvents()
	if len(events) != 1 {
		t.Fatalf("%d events emitted, expected 1", len(events))
	}
	want := InventoryReceived{
		Items: []InventoryItem{
			{Index: 0, ItemID: 501, Amount: 10},
			{Index: 1, ItemID: 1101, Amount: 1, EquipPosition: packets.EquipRightHand},
		},
	}
	if diff := cmp.Diff(want, events[0]); diff != "" {
		t.Errorf("inventory mismatch (-want +got):\n%s", diff)
	}

	// A second close without a fresh transfer stays silent.
	s.dispatch(&packets.InventoryEnd{})
	if events := s.takeEvents(); len(events) != 0 {
		t.Errorf("%d events emitted for a duplicate close, expected none", len(events))
	}
}

func TestDispatchMaintainsFriendList(t *testing.T) {
	s := newTestSession()

	s.dispatch(&packets.FriendList{
		Friends: []packets.Friend{
			{AccountID: 1, CharacterID: 10, Name: "alpha"},
			{AccountID: 2, CharacterID: 20, Name: "beta"},
		},
	})
	s.dispatch(&packets.NotifyFriendRemoved{AccountID: 1, CharacterID: 10})

	friends, _ := s.Friends.Get()
	if len(friends) != 1 || friends[0].Name != "beta" {
		t.Errorf("friends = %+v, expected only beta", friends)
	}
}

func TestDispatchUsesCachedEntityNames(t *testing.T) {
	s := newTestSession()

	s.dispatch(&packets.EntityDetailsSuccess{EntityID: 42, Name: "Poring"})
	s.dispatch(&packets.OverheadMessage{EntityID: 42, Message: "hello"})

	events := s.takeEvents()
	if len(events) != 1 {
		t.Fatalf("%d events emitted, expected 1", len(events))
	}
	chat, ok := events[0].(ChatMessage)
	if !ok || chat.Sender != "Poring" || chat.Text != "hello" {
		t.Errorf("event = %#v, expected chat from Poring", events[0])
	}
}

func TestTrackedReportsChanges(t *testing.T) {
	var tracked Tracked[int]

	_, version := tracked.Get()
	tracked.Set(7)
	if !tracked.Changed(version) {
		t.Error("Changed() = false after Set")
	}
	value, version := tracked.Get()
	if value != 7 {
		t.Errorf("value = %d, expected 7", value)
	}
	if tracked.Changed(version) {
		t.Error("Changed() = true without an intervening Set")
	}
}

func TestOperationsRequireHandshakePhase(t *testing.T) {
	s := newTestSession()

	if err := s.SelectCharacter(0); err == nil {
		t.Error("SelectCharacter succeeded while disconnected")
	}
	if err := s.Move(packets.Point{X: 10, Y: 10}); err == nil {
		t.Error("Move succeeded while disconnected")
	}
	if _, err := s.ConnectToCharacterServer(packets.CharacterServerInformation{}); err == nil {
		t.Error("ConnectToCharacterServer succeeded while disconnected")
	}
	if err := s.StartChannelingSkill(28, 5, 42); err == nil {
		t.Error("StartChannelingSkill succeeded while disconnected")
	}
	if err := s.StopChannelingSkill(28); err == nil {
		t.Error("StopChannelingSkill succeeded while disconnected")
	}
}

func TestRejectedErrorDescribesReason(t *testing.T) {
	err := &RejectedError{Op: "character selection", Reason: packets.CharacterSelectionRejectedFromServer}
	expected := "session: character selection rejected: rejected from server"
	if err.Error() != expected {
		t.Errorf("Error() = %q, expected %q", err.Error(), expected)
	}
}

// loginResponder accepts one connection, consumes the login request, and
// answers with the given frame.
func loginResponder(t *testing.T, ln net.Listener, response []byte) {
	t.Helper()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		request := make([]byte, 55)
		if _, err := io.ReadFull(conn, request); err != nil {
			return
		}
		conn.Write(response)
		// Hold the connection open until the client is done with it.
		io.Copy(io.Discard, conn)
	}()
}

func buildLoginSuccess() []byte {
	w := netbytes.NewWriter()
	w.Uint16(0x0ac4)
	w.Uint16(0)       // patched below
	w.Uint32(11)      // LoginID1
	w.Uint32(2000000) // AccountID
	w.Uint32(22)      // LoginID2
	w.Bytes([]byte{127, 0, 0, 1})
	w.String("player", 24)
	w.Zero(2)
	w.Uint8(1) // male
	w.Zero(17) // auth token

	w.Bytes([]byte{10, 0, 0, 5})
	w.Uint16(6121)
	w.String("Chaos", 20)
	w.Uint16(42)
	w.Uint16(0)
	w.Uint16(0)
	w.Zero(128)

	w.PatchUint16(2, uint16(w.Len()))
	return w.Data()
}

func TestLogInHandshake(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	loginResponder(t, ln, buildLoginSuccess())

	s := newTestSession()
	s.cfg.LoginServerPort = ln.Addr().(*net.TCPAddr).Port
	defer s.Close()

	servers, err := s.LogIn("player", "secret")
	if err != nil {
		t.Fatalf("LogIn failed: %v", err)
	}
	if s.State() != StateLoggedIn {
		t.Errorf("state = %s, expected logged in", s.State())
	}
	if len(servers) != 1 {
		t.Fatalf("%d character servers returned, expected 1", len(servers))
	}
	if servers[0].Name != "Chaos" || servers[0].UserCount != 42 {
		t.Errorf("server = %+v, expected Chaos with 42 users", servers[0])
	}
	if servers[0].AddrPort().String() != "10.0.0.5:6121" {
		t.Errorf("server address = %s, expected 10.0.0.5:6121", servers[0].AddrPort())
	}
	if s.creds.accountID != 2000000 || s.creds.loginID1 != 11 || s.creds.loginID2 != 22 {
		t.Errorf("credentials = %+v not retained from the handshake", s.creds)
	}
}

func buildCharacterRecord(w *netbytes.Writer, id uint32, name string, slot uint8) {
	w.Uint32(id)
	w.Int64(1000)  // experience
	w.Int32(500)   // money
	w.Int64(800)   // job experience
	w.Int32(10)    // job level
	w.Zero(4 * 5)  // body/health/effect state, virtue, honor
	w.Int16(0)     // job point
	w.Int64(40)    // hp
	w.Int64(40)    // max hp
	w.Int64(11)    // sp
	w.Int64(11)    // max sp
	w.Int16(150)   // movement speed
	w.Zero(2 * 10) // job through accessory3
	w.Int16(0)    // head palette
	w.Int16(0)    // body palette
	w.String(name, 24)
	w.Bytes([]byte{1, 1, 1, 1, 1, 1}) // stats
	w.Uint8(slot)
	w.Uint8(6) // hair color
	w.Int16(0) // is changed character
	w.String("prontera.gat", 16)
	w.Zero(4 * 4) // deletion date through name changes
	w.Uint8(1)    // male
}

// characterResponder accepts one connection and walks the character
// server handshake: account echo, slot layout, then the roster on
// request.
func characterResponder(t *testing.T, ln net.Listener) {
	t.Helper()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		request := make([]byte, 17)
		if _, err := io.ReadFull(conn, request); err != nil {
			return
		}

		w := netbytes.NewWriter()
		w.Bytes([]byte{0x40, 0x42, 0x0f, 0x00}) // account 1000000, no framing
		w.Uint16(0x082d)
		w.Zero(2)
		w.Bytes([]byte{9, 0, 0, 9, 9})
		w.Zero(20)
		conn.Write(w.Data())

		listRequest := make([]byte, 2)
		if _, err := io.ReadFull(conn, listRequest); err != nil {
			return
		}

		w = netbytes.NewWriter()
		w.Uint16(0x0b72)
		w.Uint16(0) // patched below
		buildCharacterRecord(w, 150000, "Novice", 0)
		w.PatchUint16(2, uint16(w.Len()))
		conn.Write(w.Data())

		io.Copy(io.Discard, conn)
	}()
}

func TestCharacterServerHandshake(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	characterResponder(t, ln)

	s := newTestSession()
	defer s.Close()
	s.state = StateLoggedIn
	s.creds = credentials{accountID: 1000000, loginID1: 11, loginID2: 22, sex: packets.SexMale}

	addr := ln.Addr().(*net.TCPAddr)
	server := packets.CharacterServerInformation{
		Address: netip.AddrFrom4([4]byte(addr.IP.To4())),
		Port:    uint16(addr.Port),
		Name:    "Chaos",
	}

	roster, err := s.ConnectToCharacterServer(server)
	if err != nil {
		t.Fatalf("ConnectToCharacterServer failed: %v", err)
	}
	if s.State() != StateCharacterServer {
		t.Errorf("state = %s, expected character server", s.State())
	}
	if len(roster) != 1 {
		t.Fatalf("%d characters returned, expected 1", len(roster))
	}
	if roster[0].Name != "Novice" || roster[0].CharacterID != 150000 {
		t.Errorf("character = %+v, expected Novice with id 150000", roster[0])
	}
	if roster[0].Sex != packets.SexMale {
		t.Errorf("character sex = %v, expected male", roster[0].Sex)
	}

	tracked, _ := s.Characters.Get()
	if len(tracked) != 1 {
		t.Errorf("%d characters tracked, expected the roster to be retained", len(tracked))
	}
}

func TestLogInRejection(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	w := netbytes.NewWriter()
	w.Uint16(0x083e)
	w.Uint8(uint8(packets.LoginFailed2IncorrectPassword))
	loginResponder(t, ln, w.Data())

	s := newTestSession()
	s.cfg.LoginServerPort = ln.Addr().(*net.TCPAddr).Port

	_, err = s.LogIn("player", "wrong")
	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("error = %v, expected RejectedError", err)
	}
	if rejected.Op != "login" {
		t.Errorf("rejected op = %q, expected login", rejected.Op)
	}
	if s.State() != StateDisconnected {
		t.Errorf("state = %s after rejection, expected disconnected", s.State())
	}
}
