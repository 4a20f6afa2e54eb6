package packets

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/ragnet/ragnet/internal/core/netbytes"
)

// CharacterServerLogin authenticates against the character server using
// the credentials issued by the login server. The server acknowledges it
// with a bare four-byte account id echo before any framed traffic.
type CharacterServerLogin struct {
	AccountID AccountID
	LoginID1  uint32
	LoginID2  uint32
	Sex       Sex
}

func (CharacterServerLogin) Header() uint16 { return 0x0065 }

func (p *CharacterServerLogin) EncodeBody(w *netbytes.Writer) {
	w.Uint32(uint32(p.AccountID))
	w.Uint32(p.LoginID1)
	w.Uint32(p.LoginID2)
	w.Zero(2)
	w.Uint8(uint8(p.Sex))
}

// CharacterKeepalive is the character connection's ping frame.
type CharacterKeepalive struct {
	keepalive
	AccountID AccountID
}

func (CharacterKeepalive) Header() uint16 { return 0x0187 }

func (p *CharacterKeepalive) EncodeBody(w *netbytes.Writer) {
	w.Uint32(uint32(p.AccountID))
}

// RequestCharacterList asks for the full roster.
type RequestCharacterList struct{}

func (RequestCharacterList) Header() uint16 { return 0x09a1 }

func (p *RequestCharacterList) EncodeBody(w *netbytes.Writer) {}

// SelectCharacter enters the world with the character in the given slot.
type SelectCharacter struct {
	Slot uint8
}

func (SelectCharacter) Header() uint16 { return 0x0066 }

func (p *SelectCharacter) EncodeBody(w *netbytes.Writer) {
	w.Uint8(p.Slot)
}

// CreateCharacter requests a new roster entry.
type CreateCharacter struct {
	Name      string
	Slot      uint8
	HairColor uint16
	HairStyle uint16
	StartJob  uint16
	Sex       Sex
}

func (CreateCharacter) Header() uint16 { return 0x0a39 }

func (p *CreateCharacter) EncodeBody(w *netbytes.Writer) {
	w.String(p.Name, 24)
	w.Uint8(p.Slot)
	w.Uint16(p.HairColor)
	w.Uint16(p.HairStyle)
	w.Uint16(p.StartJob)
	w.Zero(2)
	w.Uint8(uint8(p.Sex))
}

// DeleteCharacter requests removal of a roster entry. The email must
// match the one registered with the account.
type DeleteCharacter struct {
	CharacterID CharacterID
	Email       string
}

func (DeleteCharacter) Header() uint16 { return 0x01fb }

func (p *DeleteCharacter) EncodeBody(w *netbytes.Writer) {
	w.Uint32(uint32(p.CharacterID))
	w.String(p.Email, 40)
	w.Zero(10)
}

// SwitchCharacterSlot moves a character between roster slots.
type SwitchCharacterSlot struct {
	OriginSlot      uint16
	DestinationSlot uint16
	RemainingMoves  uint16
}

func (SwitchCharacterSlot) Header() uint16 { return 0x08d4 }

func (p *SwitchCharacterSlot) EncodeBody(w *netbytes.Writer) {
	w.Uint16(p.OriginSlot)
	w.Uint16(p.DestinationSlot)
	w.Uint16(p.RemainingMoves)
}

// CharacterServerLoginSuccess reports the account's slot layout.
type CharacterServerLoginSuccess struct {
	NormalSlotCount     uint8
	VipSlotCount        uint8
	BillingSlotCount    uint8
	ProducibleSlotCount uint8
	ValidSlotCount      uint8
}

func (CharacterServerLoginSuccess) Header() uint16 { return 0x082d }

func (p *CharacterServerLoginSuccess) DecodeBody(c *netbytes.Cursor) {
	c.Skip(2)
	p.NormalSlotCount = c.Uint8()
	p.VipSlotCount = c.Uint8()
	p.BillingSlotCount = c.Uint8()
	p.ProducibleSlotCount = c.Uint8()
	p.ValidSlotCount = c.Uint8()
	c.Skip(20)
}

// CharacterSlotCount is a second slot layout frame sent alongside the
// handshake acknowledgement.
type CharacterSlotCount struct {
	MaximumSlotCount   uint8
	AvailableSlotCount uint8
	VipSlotCount       uint8
}

func (CharacterSlotCount) Header() uint16 { return 0x006b }

func (p *CharacterSlotCount) DecodeBody(c *netbytes.Cursor) {
	c.Skip(2)
	p.MaximumSlotCount = c.Uint8()
	p.AvailableSlotCount = c.Uint8()
	p.VipSlotCount = c.Uint8()
	c.Skip(20)
}

// CharacterListSuccess carries the account's full roster. Entries
// repeat to the end of the frame.
type CharacterListSuccess struct {
	Characters []CharacterInformation
}

func (CharacterListSuccess) Header() uint16 { return 0x0b72 }

func (p *CharacterListSuccess) DecodeBody(c *netbytes.Cursor) {
	c.Skip(2)
	for c.Err() == nil && c.Remaining() >= characterInformationSize {
		p.Characters = append(p.Characters, readCharacterInformation(c))
	}
	if c.Err() == nil && c.Remaining() != 0 {
		c.Fail(fmt.Errorf("packets: %d trailing bytes after character list", c.Remaining()))
	}
}

// CharacterSelectionFailedReason is the closed set of selection
// rejection codes.
type CharacterSelectionFailedReason uint8

const (
	CharacterSelectionRejectedFromServer CharacterSelectionFailedReason = 0
)

func (r CharacterSelectionFailedReason) String() string {
	if r == CharacterSelectionRejectedFromServer {
		return "rejected from server"
	}
	return fmt.Sprintf("CharacterSelectionFailedReason(%d)", uint8(r))
}

// CharacterSelectionFailed rejects a SelectCharacter request.
type CharacterSelectionFailed struct {
	Reason CharacterSelectionFailedReason
}

func (CharacterSelectionFailed) Header() uint16 { return 0x006c }

func (p *CharacterSelectionFailed) DecodeBody(c *netbytes.Cursor) {
	v := c.Uint8()
	if c.Err() == nil && v != uint8(CharacterSelectionRejectedFromServer) {
		c.Fail(fmt.Errorf("%w: character selection failure reason %d", ErrInvalidEnum, v))
		return
	}
	p.Reason = CharacterSelectionFailedReason(v)
}

// MapServerUnavailable rejects a SelectCharacter request because the
// target map server is down.
type MapServerUnavailable struct {
	Message string
}

func (MapServerUnavailable) Header() uint16 { return 0x0840 }

func (p *MapServerUnavailable) DecodeBody(c *netbytes.Cursor) {
	c.Skip(2)
	p.Message = c.String(c.Remaining())
}

// CharacterSelectionSuccess hands the client over to a map server.
type CharacterSelectionSuccess struct {
	CharacterID CharacterID
	MapName     string
	Address     netip.Addr
	Port        uint16
}

func (CharacterSelectionSuccess) Header() uint16 { return 0x0ac5 }

func (p *CharacterSelectionSuccess) DecodeBody(c *netbytes.Cursor) {
	p.CharacterID = CharacterID(c.Uint32())
	p.MapName = c.String(16)
	p.Address = readAddr4(c)
	p.Port = c.Uint16()
	c.Skip(128)
}

// AddrPort combines the map server's address and port for dialing.
func (p *CharacterSelectionSuccess) AddrPort() netip.AddrPort {
	return netip.AddrPortFrom(p.Address, p.Port)
}

// Map returns the destination map name with the grid file extension
// stripped.
func (p *CharacterSelectionSuccess) Map() string {
	return strings.TrimSuffix(p.MapName, ".gat")
}

// CharacterCreationFailedReason is the closed set of creation rejection
// codes.
type CharacterCreationFailedReason uint8

const (
	CharacterCreationNameUsed        CharacterCreationFailedReason = 0
	CharacterCreationNotOldEnough    CharacterCreationFailedReason = 1
	CharacterCreationSlotNotAllowed  CharacterCreationFailedReason = 3
	CharacterCreationInternalFailure CharacterCreationFailedReason = 255
)

func (r CharacterCreationFailedReason) String() string {
	switch r {
	case CharacterCreationNameUsed:
		return "character name already used"
	case CharacterCreationNotOldEnough:
		return "not old enough"
	case CharacterCreationSlotNotAllowed:
		return "not allowed to use this slot"
	case CharacterCreationInternalFailure:
		return "character creation failed"
	}
	return fmt.Sprintf("CharacterCreationFailedReason(%d)", uint8(r))
}

// CharacterCreationFailed rejects a CreateCharacter request.
type CharacterCreationFailed struct {
	Reason CharacterCreationFailedReason
}

func (CharacterCreationFailed) Header() uint16 { return 0x006e }

func (p *CharacterCreationFailed) DecodeBody(c *netbytes.Cursor) {
	v := c.Uint8()
	switch CharacterCreationFailedReason(v) {
	case CharacterCreationNameUsed, CharacterCreationNotOldEnough,
		CharacterCreationSlotNotAllowed, CharacterCreationInternalFailure:
		p.Reason = CharacterCreationFailedReason(v)
	default:
		if c.Err() == nil {
			c.Fail(fmt.Errorf("%w: character creation failure reason %d", ErrInvalidEnum, v))
		}
	}
}

// CharacterCreationSuccess returns the newly created roster entry.
type CharacterCreationSuccess struct {
	Character CharacterInformation
}

func (CharacterCreationSuccess) Header() uint16 { return 0x0b6f }

func (p *CharacterCreationSuccess) DecodeBody(c *netbytes.Cursor) {
	p.Character = readCharacterInformation(c)
}

// CharacterDeletionFailedReason is the closed set of deletion rejection
// codes.
type CharacterDeletionFailedReason uint8

const (
	CharacterDeletionNotAllowed CharacterDeletionFailedReason = iota
	CharacterDeletionNotFound
	CharacterDeletionNotEligible
)

func (r CharacterDeletionFailedReason) String() string {
	switch r {
	case CharacterDeletionNotAllowed:
		return "character deletion is not allowed"
	case CharacterDeletionNotFound:
		return "character not found"
	case CharacterDeletionNotEligible:
		return "character is not eligible for deletion"
	}
	return fmt.Sprintf("CharacterDeletionFailedReason(%d)", uint8(r))
}

// CharacterDeletionFailed rejects a DeleteCharacter request.
type CharacterDeletionFailed struct {
	Reason CharacterDeletionFailedReason
}

func (CharacterDeletionFailed) Header() uint16 { return 0x0070 }

func (p *CharacterDeletionFailed) DecodeBody(c *netbytes.Cursor) {
	v := c.Uint8()
	if c.Err() == nil && v > uint8(CharacterDeletionNotEligible) {
		c.Fail(fmt.Errorf("%w: character deletion failure reason %d", ErrInvalidEnum, v))
		return
	}
	p.Reason = CharacterDeletionFailedReason(v)
}

// CharacterDeletionSuccess acknowledges a DeleteCharacter request.
type CharacterDeletionSuccess struct{}

func (CharacterDeletionSuccess) Header() uint16 { return 0x006f }

func (p *CharacterDeletionSuccess) DecodeBody(c *netbytes.Cursor) {}

// SwitchCharacterSlotResponse reports the outcome of a slot switch and
// how many moves the account has left.
type SwitchCharacterSlotResponse struct {
	Success        bool
	RemainingMoves uint16
}

func (SwitchCharacterSlotResponse) Header() uint16 { return 0x0b70 }

func (p *SwitchCharacterSlotResponse) DecodeBody(c *netbytes.Cursor) {
	c.Skip(2)
	status := c.Uint16()
	if c.Err() == nil && status > 1 {
		c.Fail(fmt.Errorf("%w: slot switch status %d", ErrInvalidEnum, status))
		return
	}
	p.Success = status == 0
	p.RemainingMoves = c.Uint16()
}

// CharacterRegistry enumerates every frame valid on the character
// connection.
func CharacterRegistry() *Registry {
	return NewRegistry([]Descriptor{
		describe[CharacterServerLoginSuccess]("CharacterServerLoginSuccess", 27),
		describe[CharacterSlotCount]("CharacterSlotCount", 25),
		describe[CharacterListSuccess]("CharacterListSuccess", BodyVariable),
		describe[CharacterSelectionFailed]("CharacterSelectionFailed", 1),
		describe[MapServerUnavailable]("MapServerUnavailable", BodyVariable),
		describe[CharacterSelectionSuccess]("CharacterSelectionSuccess", 154),
		describe[CharacterCreationFailed]("CharacterCreationFailed", 1),
		describe[CharacterCreationSuccess]("CharacterCreationSuccess", characterInformationSize),
		describe[CharacterDeletionFailed]("CharacterDeletionFailed", 1),
		describe[CharacterDeletionSuccess]("CharacterDeletionSuccess", 0),
		describe[SwitchCharacterSlotResponse]("SwitchCharacterSlotResponse", 6),
	})
}
