// Package session drives the three-connection handshake against a
// server cluster and surfaces server traffic as events.
package session

import (
	"fmt"
	"net"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/ragnet/ragnet/internal/core"
	"github.com/ragnet/ragnet/internal/diag"
	"github.com/ragnet/ragnet/internal/packets"
)

// State is the session's position in the login, character selection and
// map handshake sequence.
type State int

const (
	StateDisconnected State = iota
	StateLoggedIn
	StateCharacterServer
	StateInGame
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateLoggedIn:
		return "logged in"
	case StateCharacterServer:
		return "character server"
	case StateInGame:
		return "in game"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// RejectedError is a server rejection of one of the handshake requests,
// carrying the decoded reason code.
type RejectedError struct {
	Op     string
	Reason fmt.Stringer
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("session: %s rejected: %s", e.Op, e.Reason)
}

// credentials is the token set issued by the login server and presented
// to the other two.
type credentials struct {
	accountID packets.AccountID
	loginID1  uint32
	loginID2  uint32
	sex       packets.Sex
}

// Session is a client connection to a server cluster. Methods are not
// safe for concurrent use; drive a session from a single goroutine.
type Session struct {
	log        *zap.SugaredLogger
	cfg        *core.Config
	history    *diag.History
	names      *cache.Cache
	logPackets bool

	state State
	creds credentials

	username      string
	characterName string
	characterID   packets.CharacterID

	loginConn *serverConnection
	charConn  *serverConnection
	mapConn   *serverConnection

	loginTimer *keepaliveTimer
	charTimer  *keepaliveTimer
	mapTimer   *keepaliveTimer

	tickBase   packets.ClientTick
	tickSynced time.Time

	// Characters is the roster delivered by the character server.
	Characters Tracked[[]packets.CharacterInformation]
	// Friends is the friend list delivered by the map server.
	Friends Tracked[[]packets.Friend]
	// Position is the player's last known tile.
	Position Tracked[packets.Point]

	events           []Event
	inventoryOpen    bool
	pendingInventory []InventoryItem
}

// New builds a disconnected session.
func New(cfg *core.Config, log *zap.SugaredLogger) *Session {
	return &Session{
		log:        log,
		cfg:        cfg,
		history:    diag.NewHistory(cfg.Debugging.PacketHistorySize),
		names:      cache.New(10*time.Minute, time.Minute),
		logPackets: cfg.Debugging.PacketLoggingEnabled,
	}
}

// History exposes the captured frame ring for diagnostics.
func (s *Session) History() *diag.History { return s.history }

// State reports the session's current handshake phase.
func (s *Session) State() State { return s.state }

func (s *Session) dial(addr, name string, registry *packets.Registry) (*serverConnection, error) {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("dialing %s server at %s: %w", name, addr, err)
	}
	s.log.Infow("connected", "server", name, "address", addr)
	return &serverConnection{
		conn:       conn,
		registry:   registry,
		name:       name,
		log:        s.log,
		history:    s.history,
		logPackets: s.logPackets,
	}, nil
}

// await reads frames off the connection until match accepts one or the
// request timeout expires. Frames arriving in between are dispatched as
// events rather than discarded.
func (s *Session) await(c *serverConnection, match func(packets.Decodable) bool) (packets.Decodable, error) {
	deadline := time.Now().Add(requestTimeout)
	for {
		p, _, err := c.popFrame()
		if err != nil {
			return nil, err
		}
		if p != nil {
			if match(p) {
				return p, nil
			}
			s.dispatch(p)
			continue
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("%w: waiting for %s server", ErrTimeout, c.name)
		}
		if _, err := c.fill(remaining); err != nil {
			return nil, err
		}
	}
}

// LogIn opens the login connection and authenticates the account. On
// success it returns the selectable character servers.
func (s *Session) LogIn(username, password string) ([]packets.CharacterServerInformation, error) {
	if s.state != StateDisconnected {
		return nil, fmt.Errorf("session: cannot log in while %s", s.state)
	}

	conn, err := s.dial(s.cfg.LoginServerAddress(), "login", packets.LoginRegistry())
	if err != nil {
		return nil, err
	}

	err = conn.send(&packets.LoginRequest{
		GameVersion: s.cfg.GameVersion,
		Username:    username,
		Password:    password,
		ClientType:  uint8(s.cfg.ClientType),
	})
	if err != nil {
		conn.close()
		return nil, err
	}

	frame, err := s.await(conn, func(p packets.Decodable) bool {
		switch p.(type) {
		case *packets.LoginSuccess, *packets.LoginFailed, *packets.LoginFailed2:
			return true
		}
		return false
	})
	if err != nil {
		conn.close()
		return nil, err
	}

	switch p := frame.(type) {
	case *packets.LoginFailed:
		conn.close()
		return nil, &RejectedError{Op: "login", Reason: p.Reason}
	case *packets.LoginFailed2:
		conn.close()
		return nil, &RejectedError{Op: "login", Reason: p.Reason}
	case *packets.LoginSuccess:
		s.loginConn = conn
		s.loginTimer = newKeepaliveTimer(loginKeepaliveInterval, time.Now())
		s.username = username
		s.creds = credentials{
			accountID: p.AccountID,
			loginID1:  p.LoginID1,
			loginID2:  p.LoginID2,
			sex:       p.Sex,
		}
		s.state = StateLoggedIn
		s.log.Infow("logged in", "account", uint32(p.AccountID), "servers", len(p.CharacterServers))
		return p.CharacterServers, nil
	}
	conn.close()
	return nil, fmt.Errorf("session: unexpected login response %T", frame)
}

// ConnectToCharacterServer opens the character connection against one of
// the servers returned by LogIn and fetches the roster. The server
// acknowledges the handshake with a bare account id echo before any
// framed traffic.
func (s *Session) ConnectToCharacterServer(server packets.CharacterServerInformation) ([]packets.CharacterInformation, error) {
	if s.state != StateLoggedIn && s.state != StateCharacterServer {
		return nil, fmt.Errorf("session: cannot connect to character server while %s", s.state)
	}

	conn, err := s.dial(server.AddrPort().String(), "character", packets.CharacterRegistry())
	if err != nil {
		return nil, err
	}

	err = conn.send(&packets.CharacterServerLogin{
		AccountID: s.creds.accountID,
		LoginID1:  s.creds.loginID1,
		LoginID2:  s.creds.loginID2,
		Sex:       s.creds.sex,
	})
	if err != nil {
		conn.close()
		return nil, err
	}

	echo, err := conn.readRaw(4, requestTimeout)
	if err != nil {
		conn.close()
		return nil, err
	}
	echoed := packets.AccountID(uint32(echo[0]) | uint32(echo[1])<<8 | uint32(echo[2])<<16 | uint32(echo[3])<<24)
	if echoed != s.creds.accountID {
		conn.close()
		return nil, fmt.Errorf("session: character server echoed account %d, expected %d", echoed, s.creds.accountID)
	}

	if _, err := s.await(conn, func(p packets.Decodable) bool {
		_, ok := p.(*packets.CharacterServerLoginSuccess)
		return ok
	}); err != nil {
		conn.close()
		return nil, err
	}

	if s.charConn != nil {
		s.charConn.close()
	}
	s.charConn = conn
	s.charTimer = newKeepaliveTimer(characterKeepaliveInterval, time.Now())
	s.state = StateCharacterServer

	roster, err := s.requestCharacterList()
	if err != nil {
		return nil, err
	}
	s.log.Infow("character server joined", "server", server.Name, "characters", len(roster))
	return roster, nil
}

func (s *Session) requestCharacterList() ([]packets.CharacterInformation, error) {
	if err := s.charConn.send(&packets.RequestCharacterList{}); err != nil {
		return nil, err
	}
	frame, err := s.await(s.charConn, func(p packets.Decodable) bool {
		_, ok := p.(*packets.CharacterListSuccess)
		return ok
	})
	if err != nil {
		return nil, err
	}
	roster := frame.(*packets.CharacterListSuccess).Characters
	s.Characters.Set(roster)
	return roster, nil
}

// CreateCharacter adds a roster entry in the given slot.
func (s *Session) CreateCharacter(name string, slot uint8, hairColor, hairStyle uint16) (packets.CharacterInformation, error) {
	if s.state != StateCharacterServer {
		return packets.CharacterInformation{}, fmt.Errorf("session: cannot create a character while %s", s.state)
	}

	err := s.charConn.send(&packets.CreateCharacter{
		Name:      name,
		Slot:      slot,
		HairColor: hairColor,
		HairStyle: hairStyle,
		Sex:       s.creds.sex,
	})
	if err != nil {
		return packets.CharacterInformation{}, err
	}

	frame, err := s.await(s.charConn, func(p packets.Decodable) bool {
		switch p.(type) {
		case *packets.CharacterCreationSuccess, *packets.CharacterCreationFailed:
			return true
		}
		return false
	})
	if err != nil {
		return packets.CharacterInformation{}, err
	}

	switch p := frame.(type) {
	case *packets.CharacterCreationFailed:
		return packets.CharacterInformation{}, &RejectedError{Op: "character creation", Reason: p.Reason}
	case *packets.CharacterCreationSuccess:
		created := p.Character
		s.Characters.update(func(roster []packets.CharacterInformation) []packets.CharacterInformation {
			return append(roster, created)
		})
		return created, nil
	}
	return packets.CharacterInformation{}, fmt.Errorf("session: unexpected creation response %T", frame)
}

// DeleteCharacter removes a roster entry. The email must match the one
// registered with the account.
func (s *Session) DeleteCharacter(id packets.CharacterID, email string) error {
	if s.state != StateCharacterServer {
		return fmt.Errorf("session: cannot delete a character while %s", s.state)
	}

	if err := s.charConn.send(&packets.DeleteCharacter{CharacterID: id, Email: email}); err != nil {
		return err
	}

	frame, err := s.await(s.charConn, func(p packets.Decodable) bool {
		switch p.(type) {
		case *packets.CharacterDeletionSuccess, *packets.CharacterDeletionFailed:
			return true
		}
		return false
	})
	if err != nil {
		return err
	}

	if p, ok := frame.(*packets.CharacterDeletionFailed); ok {
		return &RejectedError{Op: "character deletion", Reason: p.Reason}
	}
	s.Characters.update(func(roster []packets.CharacterInformation) []packets.CharacterInformation {
		out := roster[:0]
		for _, ch := range roster {
			if ch.CharacterID != id {
				out = append(out, ch)
			}
		}
		return out
	})
	return nil
}

// SwitchSlots moves a character between roster slots and refreshes the
// roster to pick up the server's renumbering.
func (s *Session) SwitchSlots(origin, destination uint16) error {
	if s.state != StateCharacterServer {
		return fmt.Errorf("session: cannot switch slots while %s", s.state)
	}

	if err := s.charConn.send(&packets.SwitchCharacterSlot{OriginSlot: origin, DestinationSlot: destination}); err != nil {
		return err
	}

	frame, err := s.await(s.charConn, func(p packets.Decodable) bool {
		_, ok := p.(*packets.SwitchCharacterSlotResponse)
		return ok
	})
	if err != nil {
		return err
	}
	if !frame.(*packets.SwitchCharacterSlotResponse).Success {
		return fmt.Errorf("session: slot switch %d to %d refused", origin, destination)
	}

	_, err = s.requestCharacterList()
	return err
}

// SelectCharacter enters the world with the character in the given slot,
// dialing the map server the character server hands us over to.
func (s *Session) SelectCharacter(slot uint8) error {
	if s.state != StateCharacterServer {
		return fmt.Errorf("session: cannot select a character while %s", s.state)
	}

	if err := s.charConn.send(&packets.SelectCharacter{Slot: slot}); err != nil {
		return err
	}

	frame, err := s.await(s.charConn, func(p packets.Decodable) bool {
		switch p.(type) {
		case *packets.CharacterSelectionSuccess, *packets.CharacterSelectionFailed, *packets.MapServerUnavailable:
			return true
		}
		return false
	})
	if err != nil {
		return err
	}

	var sel *packets.CharacterSelectionSuccess
	switch p := frame.(type) {
	case *packets.CharacterSelectionFailed:
		return &RejectedError{Op: "character selection", Reason: p.Reason}
	case *packets.MapServerUnavailable:
		return fmt.Errorf("session: map server unavailable: %s", p.Message)
	case *packets.CharacterSelectionSuccess:
		sel = p
	default:
		return fmt.Errorf("session: unexpected selection response %T", frame)
	}

	conn, err := s.dial(sel.AddrPort().String(), "map", packets.MapRegistry())
	if err != nil {
		return err
	}

	err = conn.send(&packets.MapServerLogin{
		AccountID:   s.creds.accountID,
		CharacterID: sel.CharacterID,
		LoginID1:    s.creds.loginID1,
		ClientTick:  100,
		Sex:         s.creds.sex,
	})
	if err != nil {
		conn.close()
		return err
	}

	s.mapConn = conn
	success, err := s.await(conn, func(p packets.Decodable) bool {
		_, ok := p.(*packets.MapServerLoginSuccess)
		return ok
	})
	if err != nil {
		conn.close()
		s.mapConn = nil
		return err
	}

	s.characterID = sel.CharacterID
	s.characterName = s.characterNameForSlot(slot)
	s.mapTimer = newKeepaliveTimer(mapKeepaliveInterval, time.Now())
	s.state = StateInGame

	welcome := success.(*packets.MapServerLoginSuccess)
	s.dispatch(welcome)
	s.Position.Set(welcome.Position.Point())
	s.emit(MapChanged{MapName: sel.Map(), Position: welcome.Position.Point()})

	if err := conn.send(&packets.MapLoaded{}); err != nil {
		return err
	}
	s.log.Infow("entered world", "character", s.characterName, "map", sel.Map())
	return nil
}

func (s *Session) characterNameForSlot(slot uint8) string {
	roster, _ := s.Characters.Get()
	for _, ch := range roster {
		if ch.CharacterNumber == slot {
			return ch.Name
		}
	}
	return ""
}

func (s *Session) requireInGame(op string) error {
	if s.state != StateInGame {
		return fmt.Errorf("session: cannot %s while %s", op, s.state)
	}
	return nil
}

// Move asks the server to path the player to a tile.
func (s *Session) Move(to packets.Point) error {
	if err := s.requireInGame("move"); err != nil {
		return err
	}
	return s.mapConn.send(&packets.RequestPlayerMove{Position: packets.WorldPosition{X: to.X, Y: to.Y}})
}

// WarpTo warps to a position on another map. Requires elevated
// privileges on most servers.
func (s *Session) WarpTo(mapName string, to packets.Point) error {
	if err := s.requireInGame("warp"); err != nil {
		return err
	}
	return s.mapConn.send(&packets.RequestWarpToMap{MapName: mapName, Position: to})
}

// Chat sends a chat line. The character name prefix is part of the wire
// format; the server echoes the full line back through the broadcast
// frames.
func (s *Session) Chat(text string) error {
	if err := s.requireInGame("chat"); err != nil {
		return err
	}
	return s.mapConn.send(&packets.GlobalMessage{Message: fmt.Sprintf("%s : %s", s.characterName, text)})
}

// Act performs an attack or sit/stand action on a target entity.
func (s *Session) Act(target packets.EntityID, action packets.Action) error {
	if err := s.requireInGame("act"); err != nil {
		return err
	}
	return s.mapConn.send(&packets.RequestAction{TargetID: target, Action: action})
}

// StartDialog opens a conversation with an NPC.
func (s *Session) StartDialog(npc packets.EntityID) error {
	if err := s.requireInGame("start a dialog"); err != nil {
		return err
	}
	return s.mapConn.send(&packets.StartDialog{NpcID: npc})
}

// NextDialog advances an open conversation past a next button.
func (s *Session) NextDialog(npc packets.EntityID) error {
	if err := s.requireInGame("advance a dialog"); err != nil {
		return err
	}
	return s.mapConn.send(&packets.NextDialog{NpcID: npc})
}

// CloseDialog ends an open conversation.
func (s *Session) CloseDialog(npc packets.EntityID) error {
	if err := s.requireInGame("close a dialog"); err != nil {
		return err
	}
	return s.mapConn.send(&packets.CloseDialog{NpcID: npc})
}

// ChooseDialogOption answers an NPC menu. Options count from one;
// CancelDialogOption cancels the menu.
func (s *Session) ChooseDialogOption(npc packets.EntityID, option int8) error {
	if err := s.requireInGame("answer a dialog"); err != nil {
		return err
	}
	return s.mapConn.send(&packets.ChooseDialogOption{NpcID: npc, Option: option})
}

// EquipItem equips an inventory item into the given slots.
func (s *Session) EquipItem(index packets.ItemIndex, position packets.EquipPosition) error {
	if err := s.requireInGame("equip"); err != nil {
		return err
	}
	return s.mapConn.send(&packets.RequestEquipItem{Index: index, Position: position})
}

// UnequipItem removes an equipped item back into the inventory.
func (s *Session) UnequipItem(index packets.ItemIndex) error {
	if err := s.requireInGame("unequip"); err != nil {
		return err
	}
	return s.mapConn.send(&packets.RequestUnequipItem{Index: index})
}

// UseSkillOnEntity casts a targeted skill.
func (s *Session) UseSkillOnEntity(skill packets.SkillID, level packets.SkillLevel, target packets.EntityID) error {
	if err := s.requireInGame("cast"); err != nil {
		return err
	}
	return s.mapConn.send(&packets.UseSkillAtID{SkillLevel: level, SkillID: skill, TargetID: target})
}

// UseSkillOnGround casts a ground-targeted skill.
func (s *Session) UseSkillOnGround(skill packets.SkillID, level packets.SkillLevel, at packets.Point) error {
	if err := s.requireInGame("cast"); err != nil {
		return err
	}
	return s.mapConn.send(&packets.UseSkillOnGround{SkillLevel: level, SkillID: skill, TargetPosition: at})
}

// StartChannelingSkill begins holding a channeled skill on a target.
// The channel stays open until StopChannelingSkill releases it.
func (s *Session) StartChannelingSkill(skill packets.SkillID, level packets.SkillLevel, target packets.EntityID) error {
	if err := s.requireInGame("channel"); err != nil {
		return err
	}
	return s.mapConn.send(&packets.StartUseSkill{SkillID: skill, SkillLevel: level, TargetID: target})
}

// StopChannelingSkill releases a held channeled skill.
func (s *Session) StopChannelingSkill(skill packets.SkillID) error {
	if err := s.requireInGame("stop channeling"); err != nil {
		return err
	}
	return s.mapConn.send(&packets.EndUseSkill{SkillID: skill})
}

// AddFriend sends a friend request to a player by name.
func (s *Session) AddFriend(name string) error {
	if err := s.requireInGame("add a friend"); err != nil {
		return err
	}
	return s.mapConn.send(&packets.AddFriend{Name: name})
}

// RemoveFriend drops a friend list entry.
func (s *Session) RemoveFriend(accountID packets.AccountID, characterID packets.CharacterID) error {
	if err := s.requireInGame("remove a friend"); err != nil {
		return err
	}
	if err := s.mapConn.send(&packets.RemoveFriend{AccountID: accountID, CharacterID: characterID}); err != nil {
		return err
	}
	s.dropFriend(accountID, characterID)
	return nil
}

// RespondToFriendRequest accepts or rejects an incoming friend request.
func (s *Session) RespondToFriendRequest(accountID packets.AccountID, characterID packets.CharacterID, accept bool) error {
	if err := s.requireInGame("answer a friend request"); err != nil {
		return err
	}
	return s.mapConn.send(&packets.FriendRequestResponse{
		AccountID:   accountID,
		CharacterID: characterID,
		Accept:      accept,
	})
}

// Respawn asks to respawn after death. The grant arrives later as a
// RespawnAvailable event.
func (s *Session) Respawn() error {
	if err := s.requireInGame("respawn"); err != nil {
		return err
	}
	return s.mapConn.send(&packets.Restart{Type: packets.RestartRespawn})
}

// LeaveMapServer asks to return to character selection. On approval the
// map connection is closed and the session drops back to the character
// server phase.
func (s *Session) LeaveMapServer() error {
	if err := s.requireInGame("leave the map server"); err != nil {
		return err
	}
	if err := s.mapConn.send(&packets.Restart{Type: packets.RestartDisconnect}); err != nil {
		return err
	}
	frame, err := s.await(s.mapConn, func(p packets.Decodable) bool {
		_, ok := p.(*packets.RestartResponse)
		return ok
	})
	if err != nil {
		return err
	}
	if !frame.(*packets.RestartResponse).OK {
		return fmt.Errorf("session: the server refused to release the character")
	}
	s.mapConn.close()
	s.mapConn = nil
	s.mapTimer = nil
	s.state = StateCharacterServer
	return nil
}

// Quit asks to leave the game entirely. The server's answer arrives as
// a Disconnected event.
func (s *Session) Quit() error {
	if err := s.requireInGame("quit"); err != nil {
		return err
	}
	return s.mapConn.send(&packets.RequestDisconnect{})
}

// syncClientTick anchors the local clock to a server tick.
func (s *Session) syncClientTick(tick packets.ClientTick) {
	s.tickBase = tick
	s.tickSynced = time.Now()
}

// currentTick extrapolates the server clock from the last sync point.
func (s *Session) currentTick() packets.ClientTick {
	if s.tickSynced.IsZero() {
		return 0
	}
	return s.tickBase + packets.ClientTick(time.Since(s.tickSynced).Milliseconds())
}

// Poll sends any due keepalives, drains pending traffic from every open
// connection, and returns the events produced since the last call.
func (s *Session) Poll() ([]Event, error) {
	now := time.Now()
	if s.loginConn != nil && s.loginTimer.due(now) {
		if err := s.loginConn.send(&packets.LoginKeepalive{Username: s.username}); err != nil {
			return s.takeEvents(), err
		}
	}
	if s.charConn != nil && s.charTimer.due(now) {
		if err := s.charConn.send(&packets.CharacterKeepalive{AccountID: s.creds.accountID}); err != nil {
			return s.takeEvents(), err
		}
	}
	if s.mapConn != nil && s.mapTimer.due(now) {
		if err := s.mapConn.send(&packets.RequestServerTick{ClientTick: s.currentTick()}); err != nil {
			return s.takeEvents(), err
		}
	}

	for _, conn := range []*serverConnection{s.loginConn, s.charConn, s.mapConn} {
		if conn == nil {
			continue
		}
		if err := s.drain(conn); err != nil {
			return s.takeEvents(), err
		}
	}
	return s.takeEvents(), nil
}

// drain performs one short read and decodes every complete frame it
// finds.
func (s *Session) drain(c *serverConnection) error {
	if _, err := c.fill(pollTimeout); err != nil {
		return err
	}
	for {
		p, _, err := c.popFrame()
		if err != nil {
			return err
		}
		if p == nil {
			return nil
		}
		s.dispatch(p)
	}
}

func (s *Session) takeEvents() []Event {
	events := s.events
	s.events = nil
	return events
}

// Close tears down every open connection and resets the session.
func (s *Session) Close() error {
	var first error
	for _, conn := range []*serverConnection{s.mapConn, s.charConn, s.loginConn} {
		if conn == nil {
			continue
		}
		if err := conn.close(); err != nil && first == nil {
			first = err
		}
	}
	s.loginConn, s.charConn, s.mapConn = nil, nil, nil
	s.loginTimer, s.charTimer, s.mapTimer = nil, nil, nil
	s.state = StateDisconnected
	return first
}
