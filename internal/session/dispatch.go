package session

import (
	"fmt"

	"github.com/patrickmn/go-cache"

	"github.com/ragnet/ragnet/internal/core/netbytes"
	"github.com/ragnet/ragnet/internal/packets"
)

var serverMessageColor = netbytes.Color{R: 255, G: 255, A: 255}

// dispatch translates one decoded frame into events and side effects on
// the session's tracked state. Frames that only matter to a blocking
// request in flight are matched there instead and never reach this
// switch.
func (s *Session) dispatch(p packets.Decodable) {
	switch p := p.(type) {
	case *packets.MapServerLoginSuccess:
		s.syncClientTick(p.ClientTick)
		s.emit(ClientTickUpdated{Tick: p.ClientTick})
		s.emit(PlayerPositionSet{Position: p.Position.Point()})

	case *packets.ServerTick:
		s.syncClientTick(p.ClientTick)
		s.emit(ClientTickUpdated{Tick: p.ClientTick})

	case *packets.ChangeMap:
		s.emit(MapChanged{MapName: p.Map(), Position: p.Position})

	case *packets.PlayerMove:
		s.Position.Set(p.FromTo.Destination())
		s.emit(PlayerMoved{From: p.FromTo.Origin(), To: p.FromTo.Destination(), StartTime: p.Timestamp})

	case *packets.EntityMove:
		s.emit(EntityMoved{
			EntityID:  p.EntityID,
			From:      p.FromTo.Origin(),
			To:        p.FromTo.Destination(),
			StartTime: p.Timestamp,
		})

	case *packets.EntityStopMove:
		s.emit(EntityStopped{EntityID: p.EntityID, Position: p.Position})

	case *packets.EntityAppeared:
		s.rememberEntity(p.EntityID, p.Name)
		s.emit(EntityAdded{Appearance: p.EntityAppearance})

	case *packets.EntityAppeared2:
		s.rememberEntity(p.EntityID, p.Name)
		s.emit(EntityAdded{Appearance: p.EntityAppearance})

	case *packets.MovingEntityAppeared:
		s.rememberEntity(p.EntityID, p.Name)
		s.emit(EntityAdded{Appearance: p.EntityAppearance})

	case *packets.EntityDisappeared:
		s.emit(EntityRemoved{EntityID: p.EntityID, Reason: p.Reason})

	case *packets.Damage:
		s.emit(EntityDamaged{SourceID: p.SourceID, TargetID: p.DestinationID, Amount: p.Amount, HitCount: p.HitCount})

	case *packets.UpdateEntityHealthPoints:
		s.emit(EntityHealthUpdated{
			EntityID:            p.EntityID,
			HealthPoints:        p.HealthPoints,
			MaximumHealthPoints: p.MaximumHealthPoints,
		})

	case *packets.PlayerAttackFailed:
		s.emit(AttackFailed{TargetID: p.TargetID, TargetPosition: p.TargetPosition, AttackRange: p.AttackRange})

	case *packets.ServerMessage:
		s.emit(ChatMessage{Text: p.Message, Color: serverMessageColor})

	case *packets.BroadcastMessage:
		s.emit(ChatMessage{Text: p.Message, Color: serverMessageColor})

	case *packets.Broadcast2Message:
		s.emit(ChatMessage{Text: p.Message, Color: p.FontColor})

	case *packets.OverheadMessage:
		s.emit(ChatMessage{Sender: s.EntityName(p.EntityID), Text: p.Message, Color: serverMessageColor})

	case *packets.EntityMessage:
		s.emit(ChatMessage{Sender: s.EntityName(p.EntityID), Text: p.Message, Color: p.Color})

	case *packets.UpdateStatus:
		s.emit(StatusUpdated{Status: p.Status})
	case *packets.UpdateStatus1:
		s.emit(StatusUpdated{Status: p.Status})
	case *packets.UpdateStatus2:
		s.emit(StatusUpdated{Status: p.Status})
	case *packets.UpdateStatus3:
		s.emit(StatusUpdated{Status: p.Status})

	case *packets.UpdateAttackRange:
		s.emit(AttackRangeUpdated{Range: p.AttackRange})

	case *packets.OpenDialog:
		s.emit(DialogOpened{NpcID: p.NpcID, Text: p.Text})

	case *packets.NextButton:
		s.emit(DialogNextAvailable{NpcID: p.NpcID})

	case *packets.CloseButton:
		s.emit(DialogCloseAvailable{NpcID: p.NpcID})

	case *packets.DialogMenu:
		s.emit(DialogChoicesAvailable{NpcID: p.NpcID, Choices: splitDialogChoices(p.Message)})

	case *packets.InventoryStart:
		s.inventoryOpen = true
		s.pendingInventory = nil

	case *packets.RegularItemList:
		for _, item := range p.Items {
			s.pendingInventory = append(s.pendingInventory, InventoryItem{
				Index:  item.Index,
				ItemID: item.ItemID,
				Amount: item.Amount,
			})
		}

	case *packets.EquippableItemList:
		for _, item := range p.Items {
			s.pendingInventory = append(s.pendingInventory, InventoryItem{
				Index:            item.Index,
				ItemID:           item.ItemID,
				Amount:           1,
				EquipPosition:    item.EquipPosition,
				EquippedPosition: item.EquippedPosition,
			})
		}

	case *packets.InventoryEnd:
		if s.inventoryOpen {
			s.inventoryOpen = false
			s.emit(InventoryReceived{Items: s.pendingInventory})
			s.pendingInventory = nil
		}

	case *packets.ItemPickup:
		s.emit(ItemPickedUp{Item: InventoryItem{
			Index:         p.Index,
			ItemID:        p.ItemID,
			Amount:        p.Count,
			EquipPosition: p.EquipPosition,
		}})

	case *packets.RemoveItemFromInventory:
		s.emit(ItemRemoved{Index: p.Index, Amount: p.Amount, Reason: p.Reason})

	case *packets.EquipItemStatus:
		s.emit(ItemEquipped{Index: p.Index, Position: p.Position, Success: p.Result == packets.EquipSuccess})

	case *packets.UnequipItemStatus:
		s.emit(ItemUnequipped{Index: p.Index, Position: p.Position, Success: p.Success})

	case *packets.UpdateSkillTree:
		s.emit(SkillTreeUpdated{Skills: p.Skills})

	case *packets.NotifySkillUnit:
		s.emit(SkillUnitAdded{EntityID: p.EntityID, Position: p.Position, UnitID: p.UnitID})

	case *packets.SkillUnitDisappear:
		s.emit(SkillUnitRemoved{EntityID: p.EntityID})

	case *packets.VisualEffectNotice:
		s.emit(VisualEffectPlayed{EntityID: p.EntityID, Path: p.Effect.Path()})

	case *packets.DisplayPlayerHealEffect:
		s.emit(HealEffect{Type: p.Type, Amount: p.Amount})

	case *packets.DisplaySkillEffectNoDamage:
		s.emit(HealEffect{Type: packets.HealHealthPoints, Amount: p.HealAmount})

	case *packets.FriendList:
		s.Friends.Set(p.Friends)
		s.emit(FriendsReceived{Friends: p.Friends})

	case *packets.FriendRequest:
		s.emit(FriendRequested{Friend: p.Friend})

	case *packets.FriendRequestResult:
		if p.Result == packets.FriendRequestAccepted {
			friend := p.Friend
			s.Friends.update(func(friends []packets.Friend) []packets.Friend {
				return append(friends, friend)
			})
		}
		s.emit(ChatMessage{Text: p.Message(), Color: serverMessageColor})

	case *packets.NotifyFriendRemoved:
		s.dropFriend(p.AccountID, p.CharacterID)
		s.emit(FriendRemoved{AccountID: p.AccountID, CharacterID: p.CharacterID})

	case *packets.PartyInvite:
		s.emit(PartyInvited{PartyID: p.PartyID, PartyName: p.PartyName})

	case *packets.QuestEffectNotice:
		if p.Effect == packets.QuestEffectNone {
			s.emit(QuestEffectRemoved{EntityID: p.EntityID})
		} else {
			s.emit(QuestEffectAdded{EntityID: p.EntityID, Position: p.Position, Effect: p.Effect, Color: p.Color})
		}

	case *packets.PlayerDetailsSuccess:
		s.names.Set(nameKey(packets.EntityID(p.CharacterID)), p.Name, cache.DefaultExpiration)

	case *packets.EntityDetailsSuccess:
		s.names.Set(nameKey(p.EntityID), p.Name, cache.DefaultExpiration)

	case *packets.RestartResponse:
		if p.OK {
			s.emit(RespawnAvailable{})
		}

	case *packets.DisconnectResponse:
		s.emit(Disconnected{Wait10Seconds: p.Wait10Seconds})

	default:
		// Frames with no client-side consequence (achievements, clan
		// rosters, minimap markers and the like) are decoded, recorded
		// in the history, and otherwise ignored.
	}
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

func (s *Session) rememberEntity(id packets.EntityID, name string) {
	if name != "" {
		s.names.Set(nameKey(id), name, cache.DefaultExpiration)
	}
}

func (s *Session) dropFriend(accountID packets.AccountID, characterID packets.CharacterID) {
	s.Friends.update(func(friends []packets.Friend) []packets.Friend {
		out := friends[:0]
		for _, f := range friends {
			if f.AccountID != accountID || f.CharacterID != characterID {
				out = append(out, f)
			}
		}
		return out
	})
}

// EntityName returns the cached display name for an entity, or the
// empty string when none has been seen. A miss also fires a details
// request so the name resolves for later lookups.
func (s *Session) EntityName(id packets.EntityID) string {
	if v, ok := s.names.Get(nameKey(id)); ok {
		return v.(string)
	}
	if s.mapConn != nil {
		if err := s.mapConn.send(&packets.RequestDetails{EntityID: id}); err != nil {
			s.log.Warnw("requesting entity details", "entity", id, "error", err)
		}
	}
	return ""
}

func nameKey(id packets.EntityID) string {
	return fmt.Sprintf("%d", uint32(id))
}

// splitDialogChoices breaks an NPC menu into its options. Options are
// separated by colons; a trailing separator does not produce an empty
// option.
func splitDialogChoices(menu string) []string {
	var choices []string
	start := 0
	for i := 0; i <= len(menu); i++ {
		if i == len(menu) || menu[i] == ':' {
			if i > start {
				choices = append(choices, menu[start:i])
			}
			start = i + 1
		}
	}
	return choices
}
