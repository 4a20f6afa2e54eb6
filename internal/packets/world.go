package packets

import (
	"fmt"

	"github.com/ragnet/ragnet/internal/core/netbytes"
)

// InventoryStart opens an inventory transfer. The item list frames that
// follow belong to this transfer until InventoryEnd arrives.
type InventoryStart struct {
	InventoryType uint8
	InventoryName string
}

func (InventoryStart) Header() uint16 { return 0x0b08 }

func (p *InventoryStart) DecodeBody(c *netbytes.Cursor) {
	c.Skip(2)
	p.InventoryType = c.Uint8()
	p.InventoryName = c.String(c.Remaining())
}

// InventoryEnd closes an inventory transfer.
type InventoryEnd struct {
	InventoryType uint8
	Flag          uint8
}

func (InventoryEnd) Header() uint16 { return 0x0b0b }

func (p *InventoryEnd) DecodeBody(c *netbytes.Cursor) {
	p.InventoryType = c.Uint8()
	p.Flag = c.Uint8()
}

// RegularItemInformation is one stackable item entry, fixed at 34
// bytes.
type RegularItemInformation struct {
	Index              ItemIndex
	ItemID             ItemID
	ItemType           uint8
	Amount             uint16
	WearState          uint32
	Slots              [4]uint32
	HireExpirationDate int32
	Flags              uint8
}

const regularItemInformationSize = 34

func readRegularItemInformation(c *netbytes.Cursor) RegularItemInformation {
	return RegularItemInformation{
		Index:              readItemIndex(c),
		ItemID:             ItemID(c.Uint32()),
		ItemType:           c.Uint8(),
		Amount:             c.Uint16(),
		WearState:          c.Uint32(),
		Slots:              [4]uint32{c.Uint32(), c.Uint32(), c.Uint32(), c.Uint32()},
		HireExpirationDate: c.Int32(),
		Flags:              c.Uint8(),
	}
}

// RegularItemList is one chunk of the stackable item inventory.
type RegularItemList struct {
	InventoryType uint8
	Items         []RegularItemInformation
}

func (RegularItemList) Header() uint16 { return 0x0b09 }

func (p *RegularItemList) DecodeBody(c *netbytes.Cursor) {
	c.Skip(2)
	p.InventoryType = c.Uint8()
	for c.Err() == nil && c.Remaining() >= regularItemInformationSize {
		p.Items = append(p.Items, readRegularItemInformation(c))
	}
	if c.Err() == nil && c.Remaining() != 0 {
		c.Fail(fmt.Errorf("packets: %d trailing bytes after item list", c.Remaining()))
	}
}

// EquippableItemInformation is one equipment entry, fixed at 68 bytes.
type EquippableItemInformation struct {
	Index              ItemIndex
	ItemID             ItemID
	ItemType           uint8
	EquipPosition      EquipPosition
	EquippedPosition   EquipPosition
	Slots              [4]uint32
	HireExpirationDate int32
	BindOnEquipType    uint16
	SpriteNumber       uint16
	OptionCount        uint8
	Options            [5]ItemOptions
	RefinementLevel    uint8
	EnchantmentLevel   uint8
	Flags              uint8
}

const equippableItemInformationSize = 68

func readEquippableItemInformation(c *netbytes.Cursor) EquippableItemInformation {
	info := EquippableItemInformation{
		Index:              readItemIndex(c),
		ItemID:             ItemID(c.Uint32()),
		ItemType:           c.Uint8(),
		EquipPosition:      readEquipPosition(c),
		EquippedPosition:   readEquipPosition(c),
		Slots:              [4]uint32{c.Uint32(), c.Uint32(), c.Uint32(), c.Uint32()},
		HireExpirationDate: c.Int32(),
		BindOnEquipType:    c.Uint16(),
		SpriteNumber:       c.Uint16(),
		OptionCount:        c.Uint8(),
	}
	for i := range info.Options {
		info.Options[i] = readItemOptions(c)
	}
	info.RefinementLevel = c.Uint8()
	info.EnchantmentLevel = c.Uint8()
	info.Flags = c.Uint8()
	return info
}

// EquippableItemList is one chunk of the equipment inventory.
type EquippableItemList struct {
	InventoryType uint8
	Items         []EquippableItemInformation
}

func (EquippableItemList) Header() uint16 { return 0x0b39 }

func (p *EquippableItemList) DecodeBody(c *netbytes.Cursor) {
	c.Skip(2)
	p.InventoryType = c.Uint8()
	for c.Err() == nil && c.Remaining() >= equippableItemInformationSize {
		p.Items = append(p.Items, readEquippableItemInformation(c))
	}
	if c.Err() == nil && c.Remaining() != 0 {
		c.Fail(fmt.Errorf("packets: %d trailing bytes after equip list", c.Remaining()))
	}
}

// EquippableSwitchItemInformation is one equip switch entry.
type EquippableSwitchItemInformation struct {
	Index    ItemIndex
	Position uint32
}

const equippableSwitchItemInformationSize = 6

// EquippableSwitchItemList carries the equip switch configuration.
type EquippableSwitchItemList struct {
	Items []EquippableSwitchItemInformation
}

func (EquippableSwitchItemList) Header() uint16 { return 0x0a9b }

func (p *EquippableSwitchItemList) DecodeBody(c *netbytes.Cursor) {
	c.Skip(2)
	for c.Err() == nil && c.Remaining() >= equippableSwitchItemInformationSize {
		p.Items = append(p.Items, EquippableSwitchItemInformation{
			Index:    readItemIndex(c),
			Position: c.Uint32(),
		})
	}
	if c.Err() == nil && c.Remaining() != 0 {
		c.Fail(fmt.Errorf("packets: %d trailing bytes after switch list", c.Remaining()))
	}
}

// InventoryExpansionSize reports extra purchased inventory capacity.
type InventoryExpansionSize struct {
	Size uint16
}

func (InventoryExpansionSize) Header() uint16 { return 0x0b18 }

func (p *InventoryExpansionSize) DecodeBody(c *netbytes.Cursor) {
	p.Size = c.Uint16()
}

// ItemPickup adds a picked-up item to the inventory.
type ItemPickup struct {
	Index              ItemIndex
	Count              uint16
	ItemID             ItemID
	Identified         uint8
	Broken             uint8
	Cards              [4]uint32
	EquipPosition      EquipPosition
	ItemType           uint8
	Result             uint8
	HireExpirationDate uint32
	BindOnEquipType    uint16
	Options            [5]ItemOptions
	Favorite           uint8
	Look               uint16
	RefinementLevel    uint8
	EnchantmentLevel   uint8
}

func (ItemPickup) Header() uint16 { return 0x0b41 }

func (p *ItemPickup) DecodeBody(c *netbytes.Cursor) {
	p.Index = readItemIndex(c)
	p.Count = c.Uint16()
	p.ItemID = ItemID(c.Uint32())
	p.Identified = c.Uint8()
	p.Broken = c.Uint8()
	p.Cards = [4]uint32{c.Uint32(), c.Uint32(), c.Uint32(), c.Uint32()}
	p.EquipPosition = readEquipPosition(c)
	p.ItemType = c.Uint8()
	p.Result = c.Uint8()
	p.HireExpirationDate = c.Uint32()
	p.BindOnEquipType = c.Uint16()
	for i := range p.Options {
		p.Options[i] = readItemOptions(c)
	}
	p.Favorite = c.Uint8()
	p.Look = c.Uint16()
	p.RefinementLevel = c.Uint8()
	p.EnchantmentLevel = c.Uint8()
}

// RemoveItemReason is the closed set of reasons an item leaves the
// inventory.
type RemoveItemReason uint16

const (
	RemovedNormal RemoveItemReason = iota
	RemovedUsedForSkill
	RemovedRefineFailed
	RemovedMaterialChanged
	RemovedMovedToStorage
	RemovedMovedToCart
	RemovedSold
	RemovedConsumedByAnalysis
)

// RemoveItemFromInventory removes items from the inventory.
type RemoveItemFromInventory struct {
	Reason RemoveItemReason
	Index  ItemIndex
	Amount uint16
}

func (RemoveItemFromInventory) Header() uint16 { return 0x07fa }

func (p *RemoveItemFromInventory) DecodeBody(c *netbytes.Cursor) {
	v := c.Uint16()
	if c.Err() == nil && v > uint16(RemovedConsumedByAnalysis) {
		c.Fail(fmt.Errorf("%w: item removal reason %d", ErrInvalidEnum, v))
		return
	}
	p.Reason = RemoveItemReason(v)
	p.Index = readItemIndex(c)
	p.Amount = c.Uint16()
}

// RequestEquipItem equips an inventory item to a slot.
type RequestEquipItem struct {
	Index    ItemIndex
	Position EquipPosition
}

func (RequestEquipItem) Header() uint16 { return 0x0998 }

func (p *RequestEquipItem) EncodeBody(w *netbytes.Writer) {
	p.Index.encode(w)
	p.Position.encode(w)
}

// EquipItemResult is the closed set of equip outcomes.
type EquipItemResult uint8

const (
	EquipSuccess EquipItemResult = iota
	EquipFailed
	EquipFailedLevelRequirement
)

// EquipItemStatus answers a RequestEquipItem.
type EquipItemStatus struct {
	Index    ItemIndex
	Position EquipPosition
	ViewID   uint16
	Result   EquipItemResult
}

func (EquipItemStatus) Header() uint16 { return 0x0999 }

func (p *EquipItemStatus) DecodeBody(c *netbytes.Cursor) {
	p.Index = readItemIndex(c)
	p.Position = readEquipPosition(c)
	p.ViewID = c.Uint16()
	v := c.Uint8()
	if c.Err() == nil && v > uint8(EquipFailedLevelRequirement) {
		c.Fail(fmt.Errorf("%w: equip result %d", ErrInvalidEnum, v))
		return
	}
	p.Result = EquipItemResult(v)
}

// RequestUnequipItem removes an equipped item.
type RequestUnequipItem struct {
	Index ItemIndex
}

func (RequestUnequipItem) Header() uint16 { return 0x00ab }

func (p *RequestUnequipItem) EncodeBody(w *netbytes.Writer) {
	p.Index.encode(w)
}

// UnequipItemStatus answers a RequestUnequipItem.
type UnequipItemStatus struct {
	Index    ItemIndex
	Position EquipPosition
	Success  bool
}

func (UnequipItemStatus) Header() uint16 { return 0x099a }

func (p *UnequipItemStatus) DecodeBody(c *netbytes.Cursor) {
	p.Index = readItemIndex(c)
	p.Position = readEquipPosition(c)
	v := c.Uint8()
	if c.Err() == nil && v > 1 {
		c.Fail(fmt.Errorf("%w: unequip result %d", ErrInvalidEnum, v))
		return
	}
	p.Success = v == 0
}

// StartDialog opens a conversation with an NPC.
type StartDialog struct {
	NpcID EntityID
}

func (StartDialog) Header() uint16 { return 0x0090 }

func (p *StartDialog) EncodeBody(w *netbytes.Writer) {
	w.Uint32(uint32(p.NpcID))
	w.Uint8(1)
}

// NextDialog advances an NPC conversation past a next button.
type NextDialog struct {
	NpcID EntityID
}

func (NextDialog) Header() uint16 { return 0x00b9 }

func (p *NextDialog) EncodeBody(w *netbytes.Writer) {
	w.Uint32(uint32(p.NpcID))
}

// CloseDialog ends an NPC conversation.
type CloseDialog struct {
	NpcID EntityID
}

func (CloseDialog) Header() uint16 { return 0x0146 }

func (p *CloseDialog) EncodeBody(w *netbytes.Writer) {
	w.Uint32(uint32(p.NpcID))
}

// ChooseDialogOption answers an NPC menu. Option 255 cancels the menu.
type ChooseDialogOption struct {
	NpcID  EntityID
	Option int8
}

func (ChooseDialogOption) Header() uint16 { return 0x00b8 }

func (p *ChooseDialogOption) EncodeBody(w *netbytes.Writer) {
	w.Uint32(uint32(p.NpcID))
	w.Int8(p.Option)
}

// OpenDialog delivers a page of NPC dialog text.
type OpenDialog struct {
	NpcID EntityID
	Text  string
}

func (OpenDialog) Header() uint16 { return 0x00b4 }

func (p *OpenDialog) DecodeBody(c *netbytes.Cursor) {
	c.Skip(2)
	p.NpcID = EntityID(c.Uint32())
	p.Text = c.String(c.Remaining())
}

// DialogMenu delivers an NPC menu, options separated by colons.
type DialogMenu struct {
	NpcID   EntityID
	Message string
}

func (DialogMenu) Header() uint16 { return 0x00b7 }

func (p *DialogMenu) DecodeBody(c *netbytes.Cursor) {
	c.Skip(2)
	p.NpcID = EntityID(c.Uint32())
	p.Message = c.String(c.Remaining())
}

// NextButton asks the client to show the dialog next button.
type NextButton struct {
	NpcID EntityID
}

func (NextButton) Header() uint16 { return 0x00b5 }

func (p *NextButton) DecodeBody(c *netbytes.Cursor) {
	p.NpcID = EntityID(c.Uint32())
}

// CloseButton asks the client to show the dialog close button.
type CloseButton struct {
	NpcID EntityID
}

func (CloseButton) Header() uint16 { return 0x00b6 }

func (p *CloseButton) DecodeBody(c *netbytes.Cursor) {
	p.NpcID = EntityID(c.Uint32())
}

// QuestDetails is one objective of a quest list entry, fixed at 44
// bytes.
type QuestDetails struct {
	HuntIdentification uint32
	ObjectiveType      uint32
	MobID              uint32
	MinimumLevel       uint16
	MaximumLevel       uint16
	KillCount          uint16
	TotalCount         uint16
	MobName            string
}

func readQuestDetails(c *netbytes.Cursor) QuestDetails {
	return QuestDetails{
		HuntIdentification: c.Uint32(),
		ObjectiveType:      c.Uint32(),
		MobID:              c.Uint32(),
		MinimumLevel:       c.Uint16(),
		MaximumLevel:       c.Uint16(),
		KillCount:          c.Uint16(),
		TotalCount:         c.Uint16(),
		MobName:            c.String(24),
	}
}

// Quest is one active quest with its objectives.
type Quest struct {
	QuestID       uint32
	Active        uint8
	RemainingTime uint32
	ExpireTime    uint32
	Objectives    []QuestDetails
}

// QuestList carries every active quest on map entry.
type QuestList struct {
	Quests []Quest
}

func (QuestList) Header() uint16 { return 0x09f8 }

func (p *QuestList) DecodeBody(c *netbytes.Cursor) {
	c.Skip(2)
	count := c.Uint32()
	for i := uint32(0); i < count && c.Err() == nil; i++ {
		q := Quest{
			QuestID:       c.Uint32(),
			Active:        c.Uint8(),
			RemainingTime: c.Uint32(),
			ExpireTime:    c.Uint32(),
		}
		objectives := c.Uint16()
		for j := uint16(0); j < objectives && c.Err() == nil; j++ {
			q.Objectives = append(q.Objectives, readQuestDetails(c))
		}
		p.Quests = append(p.Quests, q)
	}
}

// ObjectiveDetails is one objective of a quest notification, fixed at
// 42 bytes.
type ObjectiveDetails struct {
	HuntIdentification uint32
	ObjectiveType      uint32
	MobID              uint32
	MinimumLevel       uint16
	MaximumLevel       uint16
	MobCount           uint16
	MobName            string
}

func readObjectiveDetails(c *netbytes.Cursor) ObjectiveDetails {
	return ObjectiveDetails{
		HuntIdentification: c.Uint32(),
		ObjectiveType:      c.Uint32(),
		MobID:              c.Uint32(),
		MinimumLevel:       c.Uint16(),
		MaximumLevel:       c.Uint16(),
		MobCount:           c.Uint16(),
		MobName:            c.String(24),
	}
}

// QuestNotification1 announces a newly accepted quest. The frame always
// reserves space for three objectives.
type QuestNotification1 struct {
	QuestID        uint32
	Active         uint8
	StartTime      uint32
	ExpireTime     uint32
	ObjectiveCount uint16
	Objectives     [3]ObjectiveDetails
}

func (QuestNotification1) Header() uint16 { return 0x09f9 }

func (p *QuestNotification1) DecodeBody(c *netbytes.Cursor) {
	p.QuestID = c.Uint32()
	p.Active = c.Uint8()
	p.StartTime = c.Uint32()
	p.ExpireTime = c.Uint32()
	p.ObjectiveCount = c.Uint16()
	for i := range p.Objectives {
		p.Objectives[i] = readObjectiveDetails(c)
	}
}

// HuntingObjective is one kill-count entry, fixed at 12 bytes.
type HuntingObjective struct {
	QuestID     uint32
	MobID       uint32
	TotalCount  uint16
	HuntedCount uint16
}

const huntingObjectiveSize = 12

func readHuntingObjective(c *netbytes.Cursor) HuntingObjective {
	return HuntingObjective{
		QuestID:     c.Uint32(),
		MobID:       c.Uint32(),
		TotalCount:  c.Uint16(),
		HuntedCount: c.Uint16(),
	}
}

// HuntingQuestNotification delivers kill-count objectives. Entries
// repeat to the end of the frame.
type HuntingQuestNotification struct {
	Objectives []HuntingObjective
}

func (HuntingQuestNotification) Header() uint16 { return 0x08fe }

func (p *HuntingQuestNotification) DecodeBody(c *netbytes.Cursor) {
	c.Skip(2)
	for c.Err() == nil && c.Remaining() >= huntingObjectiveSize {
		p.Objectives = append(p.Objectives, readHuntingObjective(c))
	}
	if c.Err() == nil && c.Remaining() != 0 {
		c.Fail(fmt.Errorf("packets: %d trailing bytes after hunting objectives", c.Remaining()))
	}
}

// HuntingQuestUpdateObjective updates kill counts on existing
// objectives.
type HuntingQuestUpdateObjective struct {
	Objectives []HuntingObjective
}

func (HuntingQuestUpdateObjective) Header() uint16 { return 0x09fa }

func (p *HuntingQuestUpdateObjective) DecodeBody(c *netbytes.Cursor) {
	c.Skip(2)
	c.Skip(2)
	for c.Err() == nil && c.Remaining() >= huntingObjectiveSize {
		p.Objectives = append(p.Objectives, readHuntingObjective(c))
	}
	if c.Err() == nil && c.Remaining() != 0 {
		c.Fail(fmt.Errorf("packets: %d trailing bytes after hunting objectives", c.Remaining()))
	}
}

// QuestRemoved drops a quest from the log.
type QuestRemoved struct {
	QuestID uint32
}

func (QuestRemoved) Header() uint16 { return 0x02b4 }

func (p *QuestRemoved) DecodeBody(c *netbytes.Cursor) {
	p.QuestID = c.Uint32()
}

// QuestEffect is the closed set of quest markers shown over NPCs. The
// None value removes the marker.
type QuestEffect uint16

const (
	QuestEffectQuest QuestEffect = iota
	QuestEffectQuest2
	QuestEffectJob
	QuestEffectJob2
	QuestEffectEvent
	QuestEffectEvent2
	QuestEffectClickMe
	QuestEffectDailyQuest
	QuestEffectEvent3
	QuestEffectJobQuest
	QuestEffectJumpingPoring
	QuestEffectNone QuestEffect = 9999
)

// QuestColor is the closed set of quest marker colors.
type QuestColor uint16

const (
	QuestColorYellow QuestColor = iota
	QuestColorOrange
	QuestColorGreen
	QuestColorPurple
)

// QuestEffectNotice places or removes a quest marker over an NPC.
type QuestEffectNotice struct {
	EntityID EntityID
	Position Point
	Effect   QuestEffect
	Color    QuestColor
}

func (QuestEffectNotice) Header() uint16 { return 0x0446 }

func (p *QuestEffectNotice) DecodeBody(c *netbytes.Cursor) {
	p.EntityID = EntityID(c.Uint32())
	p.Position = readPointU16(c)
	e := c.Uint16()
	if c.Err() == nil && e > uint16(QuestEffectJumpingPoring) && e != uint16(QuestEffectNone) {
		c.Fail(fmt.Errorf("%w: quest effect %d", ErrInvalidEnum, e))
		return
	}
	p.Effect = QuestEffect(e)
	v := c.Uint16()
	if c.Err() == nil && v > uint16(QuestColorPurple) {
		c.Fail(fmt.Errorf("%w: quest color %d", ErrInvalidEnum, v))
		return
	}
	p.Color = QuestColor(v)
}

// AddFriend sends a friend request by character name.
type AddFriend struct {
	Name string
}

func (AddFriend) Header() uint16 { return 0x0202 }

func (p *AddFriend) EncodeBody(w *netbytes.Writer) {
	w.String(p.Name, 24)
}

// RemoveFriend removes a friend list entry.
type RemoveFriend struct {
	AccountID   AccountID
	CharacterID CharacterID
}

func (RemoveFriend) Header() uint16 { return 0x0203 }

func (p *RemoveFriend) EncodeBody(w *netbytes.Writer) {
	w.Uint32(uint32(p.AccountID))
	w.Uint32(uint32(p.CharacterID))
}

// FriendRequestResponse answers an incoming friend request.
type FriendRequestResponse struct {
	AccountID   AccountID
	CharacterID CharacterID
	Accept      bool
}

func (FriendRequestResponse) Header() uint16 { return 0x0208 }

func (p *FriendRequestResponse) EncodeBody(w *netbytes.Writer) {
	w.Uint32(uint32(p.AccountID))
	w.Uint32(uint32(p.CharacterID))
	if p.Accept {
		w.Uint32(1)
	} else {
		w.Uint32(0)
	}
}

// FriendList delivers the friend list on map entry. Entries repeat to
// the end of the frame.
type FriendList struct {
	Friends []Friend
}

func (FriendList) Header() uint16 { return 0x0201 }

func (p *FriendList) DecodeBody(c *netbytes.Cursor) {
	c.Skip(2)
	for c.Err() == nil && c.Remaining() >= friendSize {
		p.Friends = append(p.Friends, readFriend(c))
	}
	if c.Err() == nil && c.Remaining() != 0 {
		c.Fail(fmt.Errorf("packets: %d trailing bytes after friend list", c.Remaining()))
	}
}

// FriendOnlineStatus reports a friend going online or offline.
type FriendOnlineStatus struct {
	AccountID   AccountID
	CharacterID CharacterID
	Online      bool
	Name        string
}

func (FriendOnlineStatus) Header() uint16 { return 0x0206 }

func (p *FriendOnlineStatus) DecodeBody(c *netbytes.Cursor) {
	p.AccountID = AccountID(c.Uint32())
	p.CharacterID = CharacterID(c.Uint32())
	v := c.Uint8()
	if c.Err() == nil && v > 1 {
		c.Fail(fmt.Errorf("%w: online state %d", ErrInvalidEnum, v))
		return
	}
	p.Online = v == 0
	p.Name = c.String(24)
}

// FriendRequest delivers an incoming friend request.
type FriendRequest struct {
	Friend Friend
}

func (FriendRequest) Header() uint16 { return 0x0207 }

func (p *FriendRequest) DecodeBody(c *netbytes.Cursor) {
	p.Friend = readFriend(c)
}

// FriendRequestResultCode is the closed set of friend request outcomes.
type FriendRequestResultCode uint16

const (
	FriendRequestAccepted FriendRequestResultCode = iota
	FriendRequestRejected
	FriendRequestOwnListFull
	FriendRequestOtherListFull
)

// FriendRequestResult reports how an outgoing friend request ended.
type FriendRequestResult struct {
	Result FriendRequestResultCode
	Friend Friend
}

func (FriendRequestResult) Header() uint16 { return 0x0209 }

func (p *FriendRequestResult) DecodeBody(c *netbytes.Cursor) {
	v := c.Uint16()
	if c.Err() == nil && v > uint16(FriendRequestOtherListFull) {
		c.Fail(fmt.Errorf("%w: friend request result %d", ErrInvalidEnum, v))
		return
	}
	p.Result = FriendRequestResultCode(v)
	p.Friend = readFriend(c)
}

// Message renders the chat line for the result.
func (p *FriendRequestResult) Message() string {
	switch p.Result {
	case FriendRequestAccepted:
		return fmt.Sprintf("You have become friends with %s.", p.Friend.Name)
	case FriendRequestRejected:
		return fmt.Sprintf("%s does not want to be friends with you.", p.Friend.Name)
	case FriendRequestOwnListFull:
		return "Your Friend List is full."
	case FriendRequestOtherListFull:
		return fmt.Sprintf("%s's Friend List is full.", p.Friend.Name)
	}
	return ""
}

// NotifyFriendRemoved reports that a friend removed the player.
type NotifyFriendRemoved struct {
	AccountID   AccountID
	CharacterID CharacterID
}

func (NotifyFriendRemoved) Header() uint16 { return 0x020a }

func (p *NotifyFriendRemoved) DecodeBody(c *netbytes.Cursor) {
	p.AccountID = AccountID(c.Uint32())
	p.CharacterID = CharacterID(c.Uint32())
}

// PartyInvite delivers a party invitation.
type PartyInvite struct {
	PartyID   PartyID
	PartyName string
}

func (PartyInvite) Header() uint16 { return 0x02c6 }

func (p *PartyInvite) DecodeBody(c *netbytes.Cursor) {
	p.PartyID = PartyID(c.Uint32())
	p.PartyName = c.String(24)
}

// UpdatePartyInvitationState reports whether party invites are allowed.
type UpdatePartyInvitationState struct {
	Allowed uint8
}

func (UpdatePartyInvitationState) Header() uint16 { return 0x02c9 }

func (p *UpdatePartyInvitationState) DecodeBody(c *netbytes.Cursor) {
	p.Allowed = c.Uint8()
}

// UpdateShowEquip reports whether other players may inspect the
// player's equipment.
type UpdateShowEquip struct {
	OpenEquipWindow uint8
}

func (UpdateShowEquip) Header() uint16 { return 0x02da }

func (p *UpdateShowEquip) DecodeBody(c *netbytes.Cursor) {
	p.OpenEquipWindow = c.Uint8()
}

// UpdateConfiguration pushes a single account setting.
type UpdateConfiguration struct {
	ConfigType uint32
	Value      uint32
}

func (UpdateConfiguration) Header() uint16 { return 0x02d9 }

func (p *UpdateConfiguration) DecodeBody(c *netbytes.Cursor) {
	p.ConfigType = c.Uint32()
	p.Value = c.Uint32()
}

// ClanInfo describes the player's clan on map entry.
type ClanInfo struct {
	ClanID      uint32
	ClanName    string
	ClanMaster  string
	ClanMap     string
	Alliances   []string
	Antagonists []string
}

func (ClanInfo) Header() uint16 { return 0x098a }

func (p *ClanInfo) DecodeBody(c *netbytes.Cursor) {
	c.Skip(2)
	p.ClanID = c.Uint32()
	p.ClanName = c.String(24)
	p.ClanMaster = c.String(24)
	p.ClanMap = c.String(16)
	allianceCount := c.Uint8()
	antagonistCount := c.Uint8()
	for i := uint8(0); i < allianceCount && c.Err() == nil; i++ {
		p.Alliances = append(p.Alliances, c.String(24))
	}
	for i := uint8(0); i < antagonistCount && c.Err() == nil; i++ {
		p.Antagonists = append(p.Antagonists, c.String(24))
	}
}

// ClanOnlineCount reports clan member presence.
type ClanOnlineCount struct {
	OnlineMembers  uint16
	MaximumMembers uint16
}

func (ClanOnlineCount) Header() uint16 { return 0x0988 }

func (p *ClanOnlineCount) DecodeBody(c *netbytes.Cursor) {
	p.OnlineMembers = c.Uint16()
	p.MaximumMembers = c.Uint16()
}

// ReputationEntry is one faction standing, fixed at 16 bytes.
type ReputationEntry struct {
	Type   uint64
	Points int64
}

const reputationEntrySize = 16

// Reputation delivers faction standings. Entries repeat to the end of
// the frame.
type Reputation struct {
	Success uint8
	Entries []ReputationEntry
}

func (Reputation) Header() uint16 { return 0x0b8d }

func (p *Reputation) DecodeBody(c *netbytes.Cursor) {
	c.Skip(2)
	p.Success = c.Uint8()
	for c.Err() == nil && c.Remaining() >= reputationEntrySize {
		p.Entries = append(p.Entries, ReputationEntry{
			Type:   c.Uint64(),
			Points: c.Int64(),
		})
	}
	if c.Err() == nil && c.Remaining() != 0 {
		c.Fail(fmt.Errorf("packets: %d trailing bytes after reputation entries", c.Remaining()))
	}
}

// AchievementData is one achievement record, fixed at 50 bytes.
type AchievementData struct {
	AchievementID       uint32
	Completed           uint8
	Objectives          [10]uint32
	CompletionTimestamp uint32
	Rewarded            uint8
}

func readAchievementData(c *netbytes.Cursor) AchievementData {
	data := AchievementData{
		AchievementID: c.Uint32(),
		Completed:     c.Uint8(),
	}
	for i := range data.Objectives {
		data.Objectives[i] = c.Uint32()
	}
	data.CompletionTimestamp = c.Uint32()
	data.Rewarded = c.Uint8()
	return data
}

// AchievementUpdate reports progress on a single achievement.
type AchievementUpdate struct {
	TotalScore        uint32
	Level             uint16
	Experience        uint32
	ExperienceToLevel uint32
	Data              AchievementData
}

func (AchievementUpdate) Header() uint16 { return 0x0a24 }

func (p *AchievementUpdate) DecodeBody(c *netbytes.Cursor) {
	p.TotalScore = c.Uint32()
	p.Level = c.Uint16()
	p.Experience = c.Uint32()
	p.ExperienceToLevel = c.Uint32()
	p.Data = readAchievementData(c)
}

// AchievementList delivers the full achievement state on map entry.
type AchievementList struct {
	TotalScore        uint32
	Level             uint16
	Experience        uint32
	ExperienceToLevel uint32
	Data              []AchievementData
}

func (AchievementList) Header() uint16 { return 0x0a23 }

func (p *AchievementList) DecodeBody(c *netbytes.Cursor) {
	c.Skip(2)
	count := c.Uint32()
	p.TotalScore = c.Uint32()
	p.Level = c.Uint16()
	p.Experience = c.Uint32()
	p.ExperienceToLevel = c.Uint32()
	for i := uint32(0); i < count && c.Err() == nil; i++ {
		p.Data = append(p.Data, readAchievementData(c))
	}
}

// NewMailStatus signals unread mail.
type NewMailStatus struct {
	NewAvailable uint8
}

func (NewMailStatus) Header() uint16 { return 0x09e7 }

func (p *NewMailStatus) DecodeBody(c *netbytes.Cursor) {
	p.NewAvailable = c.Uint8()
}
