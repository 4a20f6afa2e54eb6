package packets

import (
	"fmt"
	"strings"

	"github.com/ragnet/ragnet/internal/core/netbytes"
)

// MapServerLogin authenticates against the map server using the
// credentials accumulated over the previous two handshakes.
type MapServerLogin struct {
	AccountID   AccountID
	CharacterID CharacterID
	LoginID1    uint32
	ClientTick  ClientTick
	Sex         Sex
}

func (MapServerLogin) Header() uint16 { return 0x0436 }

func (p *MapServerLogin) EncodeBody(w *netbytes.Writer) {
	w.Uint32(uint32(p.AccountID))
	w.Uint32(uint32(p.CharacterID))
	w.Uint32(p.LoginID1)
	w.Uint32(uint32(p.ClientTick))
	w.Uint8(uint8(p.Sex))
	w.Zero(4)
}

// MapLoaded tells the map server the client finished loading and is
// ready to receive the spawn burst.
type MapLoaded struct{}

func (MapLoaded) Header() uint16 { return 0x007d }

func (p *MapLoaded) EncodeBody(w *netbytes.Writer) {}

// RequestServerTick is the map connection's ping frame. The server
// answers with its own tick for clock synchronization.
type RequestServerTick struct {
	keepalive
	ClientTick ClientTick
}

func (RequestServerTick) Header() uint16 { return 0x0360 }

func (p *RequestServerTick) EncodeBody(w *netbytes.Writer) {
	w.Uint32(uint32(p.ClientTick))
}

// ServerTick answers a RequestServerTick with the server's clock, used
// to resynchronize the local tick.
type ServerTick struct {
	keepalive
	ClientTick ClientTick
}

func (ServerTick) Header() uint16 { return 0x007f }

func (p *ServerTick) DecodeBody(c *netbytes.Cursor) {
	p.ClientTick = ClientTick(c.Uint32())
}

// MapServerLoginSuccess acknowledges the map handshake with the server
// tick and the player's spawn position.
type MapServerLoginSuccess struct {
	ClientTick ClientTick
	Position   WorldPosition
	Font       uint16
}

func (MapServerLoginSuccess) Header() uint16 { return 0x02eb }

func (p *MapServerLoginSuccess) DecodeBody(c *netbytes.Cursor) {
	p.ClientTick = ClientTick(c.Uint32())
	p.Position = readWorldPosition(c)
	c.Skip(2)
	p.Font = c.Uint16()
}

// AccountIDNotice is the bare account id echo framed as a packet, sent
// by the map server right after the handshake.
type AccountIDNotice struct {
	AccountID AccountID
}

func (AccountIDNotice) Header() uint16 { return 0x0283 }

func (p *AccountIDNotice) DecodeBody(c *netbytes.Cursor) {
	p.AccountID = AccountID(c.Uint32())
}

// RequestPlayerMove asks the server to path the player to a tile.
type RequestPlayerMove struct {
	Position WorldPosition
}

func (RequestPlayerMove) Header() uint16 { return 0x0881 }

func (p *RequestPlayerMove) EncodeBody(w *netbytes.Writer) {
	p.Position.encode(w)
}

// RequestWarpToMap asks to warp to a position on another map. Requires
// elevated privileges on most servers.
type RequestWarpToMap struct {
	MapName  string
	Position Point
}

func (RequestWarpToMap) Header() uint16 { return 0x0140 }

func (p *RequestWarpToMap) EncodeBody(w *netbytes.Writer) {
	w.String(p.MapName, 16)
	writePointU16(w, p.Position)
}

// PlayerMove reports that the player is pathing to a new position.
type PlayerMove struct {
	Timestamp ClientTick
	FromTo    WorldPosition2
}

func (PlayerMove) Header() uint16 { return 0x0087 }

func (p *PlayerMove) DecodeBody(c *netbytes.Cursor) {
	p.Timestamp = ClientTick(c.Uint32())
	p.FromTo = readWorldPosition2(c)
}

// EntityMove reports that another entity is pathing to a new position.
type EntityMove struct {
	EntityID  EntityID
	FromTo    WorldPosition2
	Timestamp ClientTick
}

func (EntityMove) Header() uint16 { return 0x0086 }

func (p *EntityMove) DecodeBody(c *netbytes.Cursor) {
	p.EntityID = EntityID(c.Uint32())
	p.FromTo = readWorldPosition2(c)
	p.Timestamp = ClientTick(c.Uint32())
}

// EntityStopMove halts an entity at a tile.
type EntityStopMove struct {
	EntityID EntityID
	Position Point
}

func (EntityStopMove) Header() uint16 { return 0x0088 }

func (p *EntityStopMove) DecodeBody(c *netbytes.Cursor) {
	p.EntityID = EntityID(c.Uint32())
	p.Position = readPointU16(c)
}

// ChangeMap moves the player to another map on the same server.
type ChangeMap struct {
	MapName  string
	Position Point
}

func (ChangeMap) Header() uint16 { return 0x0091 }

func (p *ChangeMap) DecodeBody(c *netbytes.Cursor) {
	p.MapName = c.String(16)
	p.Position = readPointU16(c)
}

// Map returns the destination map name with the grid file extension
// stripped.
func (p *ChangeMap) Map() string {
	return strings.TrimSuffix(p.MapName, ".gat")
}

// ChangeMapCell rewrites a single cell of the current map.
type ChangeMapCell struct {
	Position Point
	CellType uint16
	MapName  string
}

func (ChangeMapCell) Header() uint16 { return 0x0192 }

func (p *ChangeMapCell) DecodeBody(c *netbytes.Cursor) {
	p.Position = readPointU16(c)
	p.CellType = c.Uint16()
	p.MapName = c.String(16)
}

// MapType describes properties of the current map (PvP, siege and the
// like).
type MapType struct {
	Type  uint16
	Flags uint32
}

func (MapType) Header() uint16 { return 0x099b }

func (p *MapType) DecodeBody(c *netbytes.Cursor) {
	p.Type = c.Uint16()
	p.Flags = c.Uint32()
}

// GlobalMessage sends a chat line. The server echoes it back through
// the broadcast frames.
type GlobalMessage struct {
	Message string
}

func (GlobalMessage) Header() uint16 { return 0x00f3 }

func (p *GlobalMessage) EncodeBody(w *netbytes.Writer) {
	w.Uint16(uint16(HeaderSize + 2 + len(p.Message) + 1))
	w.Bytes([]byte(p.Message))
	w.Uint8(0)
}

// ServerMessage is a plain server chat line.
type ServerMessage struct {
	Message string
}

func (ServerMessage) Header() uint16 { return 0x008e }

func (p *ServerMessage) DecodeBody(c *netbytes.Cursor) {
	c.Skip(2)
	p.Message = c.String(c.Remaining())
}

// BroadcastMessage is a server-wide announcement.
type BroadcastMessage struct {
	Message string
}

func (BroadcastMessage) Header() uint16 { return 0x009a }

func (p *BroadcastMessage) DecodeBody(c *netbytes.Cursor) {
	c.Skip(2)
	p.Message = c.String(c.Remaining())
}

// Broadcast2Message is a server-wide announcement with font styling.
type Broadcast2Message struct {
	FontColor     netbytes.Color
	FontType      uint16
	FontSize      uint16
	FontAlignment uint16
	FontY         uint16
	Message       string
}

func (Broadcast2Message) Header() uint16 { return 0x01c3 }

func (p *Broadcast2Message) DecodeBody(c *netbytes.Cursor) {
	c.Skip(2)
	p.FontColor = c.Color()
	p.FontType = c.Uint16()
	p.FontSize = c.Uint16()
	p.FontAlignment = c.Uint16()
	p.FontY = c.Uint16()
	p.Message = c.String(c.Remaining())
}

// OverheadMessage is proximity chat shown in a speech bubble.
type OverheadMessage struct {
	EntityID EntityID
	Message  string
}

func (OverheadMessage) Header() uint16 { return 0x008d }

func (p *OverheadMessage) DecodeBody(c *netbytes.Cursor) {
	c.Skip(2)
	p.EntityID = EntityID(c.Uint32())
	p.Message = c.String(c.Remaining())
}

// EntityMessage is a colored chat line attributed to an entity.
type EntityMessage struct {
	EntityID EntityID
	Color    netbytes.Color
	Message  string
}

func (EntityMessage) Header() uint16 { return 0x02c1 }

func (p *EntityMessage) DecodeBody(c *netbytes.Cursor) {
	c.Skip(2)
	p.EntityID = EntityID(c.Uint32())
	p.Color = c.ColorBGRA()
	p.Message = c.String(c.Remaining())
}

// DisplayEmotion shows an emote above an entity.
type DisplayEmotion struct {
	EntityID EntityID
	Emotion  uint8
}

func (DisplayEmotion) Header() uint16 { return 0x00c0 }

func (p *DisplayEmotion) DecodeBody(c *netbytes.Cursor) {
	p.EntityID = EntityID(c.Uint32())
	p.Emotion = c.Uint8()
}

// The four UpdateStatus frames carry the same tagged payload in
// different window sizes.

type UpdateStatus struct {
	Status Status
}

func (UpdateStatus) Header() uint16 { return 0x00b0 }

func (p *UpdateStatus) DecodeBody(c *netbytes.Cursor) {
	p.Status = readStatus(c, 6)
}

type UpdateStatus1 struct {
	Status Status
}

func (UpdateStatus1) Header() uint16 { return 0x0141 }

func (p *UpdateStatus1) DecodeBody(c *netbytes.Cursor) {
	p.Status = readStatus(c, 12)
}

type UpdateStatus2 struct {
	Status Status
}

func (UpdateStatus2) Header() uint16 { return 0x0acb }

func (p *UpdateStatus2) DecodeBody(c *netbytes.Cursor) {
	p.Status = readStatus(c, 10)
}

type UpdateStatus3 struct {
	Status Status
}

func (UpdateStatus3) Header() uint16 { return 0x00be }

func (p *UpdateStatus3) DecodeBody(c *netbytes.Cursor) {
	p.Status = readStatus(c, 3)
}

// InitialStatus is the stat snapshot sent on map entry. Every value in
// it is also delivered through individual status updates.
type InitialStatus struct {
	StatusPoints         uint16
	Strength             uint8
	RequiredStrength     uint8
	Agility              uint8
	RequiredAgility      uint8
	Vitality             uint8
	RequiredVitality     uint8
	Intelligence         uint8
	RequiredIntelligence uint8
	Dexterity            uint8
	RequiredDexterity    uint8
	Luck                 uint8
	RequiredLuck         uint8
	LeftAttack           uint16
	RightAttack          uint16
	RightMagicAttack     uint16
	LeftMagicAttack      uint16
	LeftDefense          uint16
	RightDefense         uint16
	RightMagicDefense    uint16
	LeftMagicDefense     uint16
	Hit                  uint16
	Flee                 uint16
	Flee2                uint16
	Critical             uint16
	AttackSpeed          uint16
}

func (InitialStatus) Header() uint16 { return 0x00bd }

func (p *InitialStatus) DecodeBody(c *netbytes.Cursor) {
	p.StatusPoints = c.Uint16()
	p.Strength = c.Uint8()
	p.RequiredStrength = c.Uint8()
	p.Agility = c.Uint8()
	p.RequiredAgility = c.Uint8()
	p.Vitality = c.Uint8()
	p.RequiredVitality = c.Uint8()
	p.Intelligence = c.Uint8()
	p.RequiredIntelligence = c.Uint8()
	p.Dexterity = c.Uint8()
	p.RequiredDexterity = c.Uint8()
	p.Luck = c.Uint8()
	p.RequiredLuck = c.Uint8()
	p.LeftAttack = c.Uint16()
	p.RightAttack = c.Uint16()
	p.RightMagicAttack = c.Uint16()
	p.LeftMagicAttack = c.Uint16()
	p.LeftDefense = c.Uint16()
	p.RightDefense = c.Uint16()
	p.RightMagicDefense = c.Uint16()
	p.LeftMagicDefense = c.Uint16()
	p.Hit = c.Uint16()
	p.Flee = c.Uint16()
	p.Flee2 = c.Uint16()
	p.Critical = c.Uint16()
	p.AttackSpeed = c.Uint16()
	c.Skip(2)
}

// UpdateAttackRange sets the player's attack range in tiles.
type UpdateAttackRange struct {
	AttackRange uint16
}

func (UpdateAttackRange) Header() uint16 { return 0x013a }

func (p *UpdateAttackRange) DecodeBody(c *netbytes.Cursor) {
	p.AttackRange = c.Uint16()
}

// CriticalWeightUpdate fires when the carried weight crosses the
// overweight thresholds.
type CriticalWeightUpdate struct {
	Info uint32
}

func (CriticalWeightUpdate) Header() uint16 { return 0x0ade }

func (p *CriticalWeightUpdate) DecodeBody(c *netbytes.Cursor) {
	p.Info = c.Uint32()
}

// RestartType selects between respawning and returning to character
// selection.
type RestartType uint8

const (
	RestartRespawn RestartType = iota
	RestartDisconnect
)

// Restart asks to respawn or to leave the map server.
type Restart struct {
	Type RestartType
}

func (Restart) Header() uint16 { return 0x00b2 }

func (p *Restart) EncodeBody(w *netbytes.Writer) {
	w.Uint8(uint8(p.Type))
}

// RequestDisconnect asks to leave the game entirely. The server answers
// with a DisconnectResponse.
type RequestDisconnect struct{}

func (RequestDisconnect) Header() uint16 { return 0x018a }

func (p *RequestDisconnect) EncodeBody(w *netbytes.Writer) {
	w.Zero(2)
}

// RestartResponse reports whether a restart request was granted.
type RestartResponse struct {
	OK bool
}

func (RestartResponse) Header() uint16 { return 0x00b3 }

func (p *RestartResponse) DecodeBody(c *netbytes.Cursor) {
	v := c.Uint8()
	if c.Err() == nil && v > 1 {
		c.Fail(fmt.Errorf("%w: restart response %d", ErrInvalidEnum, v))
		return
	}
	p.OK = v == 1
}

// DisconnectResponse reports whether the server accepts a disconnect
// immediately or imposes the ten second wait.
type DisconnectResponse struct {
	Wait10Seconds bool
}

func (DisconnectResponse) Header() uint16 { return 0x018b }

func (p *DisconnectResponse) DecodeBody(c *netbytes.Cursor) {
	v := c.Uint16()
	if c.Err() == nil && v > 1 {
		c.Fail(fmt.Errorf("%w: disconnect response %d", ErrInvalidEnum, v))
		return
	}
	p.Wait10Seconds = v == 1
}

// MapRegistry enumerates every frame valid on the map connection.
func MapRegistry() *Registry {
	return NewRegistry([]Descriptor{
		describe[MapServerLoginSuccess]("MapServerLoginSuccess", 11),
		describe[AccountIDNotice]("AccountIDNotice", 4),
		describe[ServerTick]("ServerTick", 4),
		describe[PlayerMove]("PlayerMove", 10),
		describe[EntityMove]("EntityMove", 14),
		describe[EntityStopMove]("EntityStopMove", 8),
		describe[ChangeMap]("ChangeMap", 20),
		describe[ChangeMapCell]("ChangeMapCell", 22),
		describe[MapType]("MapType", 6),
		describe[ServerMessage]("ServerMessage", BodyVariable),
		describe[BroadcastMessage]("BroadcastMessage", BodyVariable),
		describe[Broadcast2Message]("Broadcast2Message", BodyVariable),
		describe[OverheadMessage]("OverheadMessage", BodyVariable),
		describe[EntityMessage]("EntityMessage", BodyVariable),
		describe[DisplayEmotion]("DisplayEmotion", 5),
		describe[UpdateStatus]("UpdateStatus", 6),
		describe[UpdateStatus1]("UpdateStatus1", 12),
		describe[UpdateStatus2]("UpdateStatus2", 10),
		describe[UpdateStatus3]("UpdateStatus3", 3),
		describe[InitialStatus]("InitialStatus", 42),
		describe[UpdateAttackRange]("UpdateAttackRange", 2),
		describe[CriticalWeightUpdate]("CriticalWeightUpdate", 4),
		describe[RestartResponse]("RestartResponse", 1),
		describe[DisconnectResponse]("DisconnectResponse", 2),

		describe[EntityAppeared]("EntityAppeared", BodyVariable),
		describe[EntityAppeared2]("EntityAppeared2", BodyVariable),
		describe[MovingEntityAppeared]("MovingEntityAppeared", BodyVariable),
		describe[EntityDisappeared]("EntityDisappeared", 5),
		describe[Damage]("Damage", 32),
		describe[UpdateEntityHealthPoints]("UpdateEntityHealthPoints", 12),
		describe[PlayerAttackFailed]("PlayerAttackFailed", 14),
		describe[StateChange]("StateChange", 13),
		describe[SpriteChange]("SpriteChange", 13),
		describe[StatusChange]("StatusChange", 27),
		describe[StatusChangeSequence]("StatusChangeSequence", 7),
		describe[PlayerDetailsSuccess]("PlayerDetailsSuccess", 104),
		describe[EntityDetailsSuccess]("EntityDetailsSuccess", 56),
		describe[NavigateToMonster]("NavigateToMonster", 25),
		describe[MarkMinimapPosition]("MarkMinimapPosition", 21),
		describe[VisualEffectNotice]("VisualEffect", 8),
		describe[DisplaySpecialEffect]("DisplaySpecialEffect", 8),
		describe[DisplayGainedExperience]("DisplayGainedExperience", 16),
		describe[DisplayImage]("DisplayImage", 65),

		describe[UpdateSkillTree]("UpdateSkillTree", BodyVariable),
		describe[UpdateHotkeys]("UpdateHotkeys", 269),
		describe[DisplaySkillCooldown]("DisplaySkillCooldown", 6),
		describe[DisplaySkillEffectAndDamage]("DisplaySkillEffectAndDamage", 31),
		describe[DisplaySkillEffectNoDamage]("DisplaySkillEffectNoDamage", 15),
		describe[DisplayPlayerHealEffect]("DisplayPlayerHealEffect", 6),
		describe[UseSkillSuccess]("UseSkillSuccess", 23),
		describe[ToUseSkillSuccess]("ToUseSkillSuccess", 12),
		describe[NotifySkillUnit]("NotifySkillUnit", 21),
		describe[NotifyGroundSkill]("NotifyGroundSkill", 16),
		describe[SkillUnitDisappear]("SkillUnitDisappear", 4),

		describe[InventoryStart]("InventoryStart", BodyVariable),
		describe[InventoryEnd]("InventoryEnd", 2),
		describe[RegularItemList]("RegularItemList", BodyVariable),
		describe[EquippableItemList]("EquippableItemList", BodyVariable),
		describe[EquippableSwitchItemList]("EquippableSwitchItemList", BodyVariable),
		describe[InventoryExpansionSize]("InventoryExpansionSize", 2),
		describe[ItemPickup]("ItemPickup", 68),
		describe[RemoveItemFromInventory]("RemoveItemFromInventory", 6),
		describe[EquipItemStatus]("EquipItemStatus", 9),
		describe[UnequipItemStatus]("UnequipItemStatus", 7),

		describe[OpenDialog]("OpenDialog", BodyVariable),
		describe[DialogMenu]("DialogMenu", BodyVariable),
		describe[NextButton]("NextButton", 4),
		describe[CloseButton]("CloseButton", 4),

		describe[QuestList]("QuestList", BodyVariable),
		describe[QuestNotification1]("QuestNotification1", 141),
		describe[HuntingQuestNotification]("HuntingQuestNotification", BodyVariable),
		describe[HuntingQuestUpdateObjective]("HuntingQuestUpdateObjective", BodyVariable),
		describe[QuestRemoved]("QuestRemoved", 4),
		describe[QuestEffectNotice]("QuestEffect", 12),

		describe[FriendList]("FriendList", BodyVariable),
		describe[FriendOnlineStatus]("FriendOnlineStatus", 33),
		describe[FriendRequest]("FriendRequest", 32),
		describe[FriendRequestResult]("FriendRequestResult", 34),
		describe[NotifyFriendRemoved]("NotifyFriendRemoved", 8),
		describe[PartyInvite]("PartyInvite", 28),
		describe[UpdatePartyInvitationState]("UpdatePartyInvitationState", 1),
		describe[UpdateShowEquip]("UpdateShowEquip", 1),
		describe[UpdateConfiguration]("UpdateConfiguration", 8),

		describe[ClanInfo]("ClanInfo", BodyVariable),
		describe[ClanOnlineCount]("ClanOnlineCount", 4),
		describe[Reputation]("Reputation", BodyVariable),
		describe[AchievementList]("AchievementList", BodyVariable),
		describe[AchievementUpdate]("AchievementUpdate", 64),
		describe[NewMailStatus]("NewMailStatus", 1),
	})
}
