package session

import (
	"github.com/ragnet/ragnet/internal/core/netbytes"
	"github.com/ragnet/ragnet/internal/packets"
)

// Event is one observable consequence of server traffic. Poll returns
// events in the order the frames that produced them arrived.
type Event interface {
	event()
}

// EntityAdded announces an entity entering view.
type EntityAdded struct {
	Appearance packets.EntityAppearance
}

// EntityRemoved announces an entity leaving view.
type EntityRemoved struct {
	EntityID packets.EntityID
	Reason   packets.DisappearanceReason
}

// PlayerMoved reports the player pathing between tiles.
type PlayerMoved struct {
	From      packets.Point
	To        packets.Point
	StartTime packets.ClientTick
}

// EntityMoved reports another entity pathing between tiles.
type EntityMoved struct {
	EntityID  packets.EntityID
	From      packets.Point
	To        packets.Point
	StartTime packets.ClientTick
}

// EntityStopped halts an entity at a tile.
type EntityStopped struct {
	EntityID packets.EntityID
	Position packets.Point
}

// EntityDamaged reports an attack landing on an entity.
type EntityDamaged struct {
	SourceID packets.EntityID
	TargetID packets.EntityID
	Amount   uint32
	HitCount uint16
}

// EntityHealthUpdated reports an entity's current and maximum health.
type EntityHealthUpdated struct {
	EntityID            packets.EntityID
	HealthPoints        uint32
	MaximumHealthPoints uint32
}

// AttackFailed reports that an attack could not reach its target.
type AttackFailed struct {
	TargetID       packets.EntityID
	TargetPosition packets.Point
	AttackRange    uint16
}

// ChatMessage is a line for the chat window.
type ChatMessage struct {
	Sender string
	Text   string
	Color  netbytes.Color
}

// ClientTickUpdated synchronizes the client clock with the server.
type ClientTickUpdated struct {
	Tick packets.ClientTick
}

// PlayerPositionSet teleports the player, on spawn and on map change.
type PlayerPositionSet struct {
	Position packets.Point
}

// MapChanged moves the player to another map on the same server.
type MapChanged struct {
	MapName  string
	Position packets.Point
}

// StatusUpdated reports one statistic change.
type StatusUpdated struct {
	Status packets.Status
}

// AttackRangeUpdated reports the player's attack range in tiles.
type AttackRangeUpdated struct {
	Range uint16
}

// DialogOpened delivers a page of NPC dialog.
type DialogOpened struct {
	NpcID packets.EntityID
	Text  string
}

// DialogNextAvailable asks for a next button in the dialog window.
type DialogNextAvailable struct {
	NpcID packets.EntityID
}

// DialogCloseAvailable asks for a close button in the dialog window.
type DialogCloseAvailable struct {
	NpcID packets.EntityID
}

// DialogChoicesAvailable delivers an NPC menu.
type DialogChoicesAvailable struct {
	NpcID   packets.EntityID
	Choices []string
}

// InventoryItem is one accumulated inventory entry.
type InventoryItem struct {
	Index            packets.ItemIndex
	ItemID           packets.ItemID
	Amount           uint16
	EquipPosition    packets.EquipPosition
	EquippedPosition packets.EquipPosition
}

// InventoryReceived delivers the complete inventory accumulated across
// one transfer.
type InventoryReceived struct {
	Items []InventoryItem
}

// ItemPickedUp adds an item to the inventory mid-session.
type ItemPickedUp struct {
	Item InventoryItem
}

// ItemRemoved removes items from the inventory.
type ItemRemoved struct {
	Index  packets.ItemIndex
	Amount uint16
	Reason packets.RemoveItemReason
}

// ItemEquipped reports an equip attempt's outcome.
type ItemEquipped struct {
	Index    packets.ItemIndex
	Position packets.EquipPosition
	Success  bool
}

// ItemUnequipped reports an unequip attempt's outcome.
type ItemUnequipped struct {
	Index    packets.ItemIndex
	Position packets.EquipPosition
	Success  bool
}

// SkillTreeUpdated replaces the player's skill tree.
type SkillTreeUpdated struct {
	Skills []packets.SkillInformation
}

// SkillUnitAdded places a ground skill unit.
type SkillUnitAdded struct {
	EntityID packets.EntityID
	Position packets.Point
	UnitID   uint32
}

// SkillUnitRemoved removes a ground skill unit.
type SkillUnitRemoved struct {
	EntityID packets.EntityID
}

// VisualEffectPlayed plays an animation file on an entity.
type VisualEffectPlayed struct {
	EntityID packets.EntityID
	Path     string
}

// HealEffect reports a direct heal on the player.
type HealEffect struct {
	Type   packets.HealType
	Amount uint32
}

// FriendsReceived replaces the friend list.
type FriendsReceived struct {
	Friends []packets.Friend
}

// FriendRequested delivers an incoming friend request.
type FriendRequested struct {
	Friend packets.Friend
}

// FriendRemoved drops a friend list entry.
type FriendRemoved struct {
	AccountID   packets.AccountID
	CharacterID packets.CharacterID
}

// PartyInvited delivers a party invitation.
type PartyInvited struct {
	PartyID   packets.PartyID
	PartyName string
}

// QuestEffectAdded places a quest marker over an NPC.
type QuestEffectAdded struct {
	EntityID packets.EntityID
	Position packets.Point
	Effect   packets.QuestEffect
	Color    packets.QuestColor
}

// QuestEffectRemoved removes a quest marker.
type QuestEffectRemoved struct {
	EntityID packets.EntityID
}

// Disconnected reports that the map server approved leaving, either
// back to character selection or out of the game.
type Disconnected struct {
	Wait10Seconds bool
}

// RespawnAvailable reports that the server granted a respawn.
type RespawnAvailable struct{}

func (EntityAdded) event()            {}
func (EntityRemoved) event()          {}
func (PlayerMoved) event()            {}
func (EntityMoved) event()            {}
func (EntityStopped) event()          {}
func (EntityDamaged) event()          {}
func (EntityHealthUpdated) event()    {}
func (AttackFailed) event()           {}
func (ChatMessage) event()            {}
func (ClientTickUpdated) event()      {}
func (PlayerPositionSet) event()      {}
func (MapChanged) event()             {}
func (StatusUpdated) event()          {}
func (AttackRangeUpdated) event()     {}
func (DialogOpened) event()           {}
func (DialogNextAvailable) event()    {}
func (DialogCloseAvailable) event()   {}
func (DialogChoicesAvailable) event() {}
func (InventoryReceived) event()      {}
func (ItemPickedUp) event()           {}
func (ItemRemoved) event()            {}
func (ItemEquipped) event()           {}
func (ItemUnequipped) event()         {}
func (SkillTreeUpdated) event()       {}
func (SkillUnitAdded) event()         {}
func (SkillUnitRemoved) event()       {}
func (VisualEffectPlayed) event()     {}
func (HealEffect) event()             {}
func (FriendsReceived) event()        {}
func (FriendRequested) event()        {}
func (FriendRemoved) event()          {}
func (PartyInvited) event()           {}
func (QuestEffectAdded) event()       {}
func (QuestEffectRemoved) event()     {}
func (Disconnected) event()           {}
func (RespawnAvailable) event()       {}
