package packets

import (
	"fmt"

	"github.com/ragnet/ragnet/internal/core/netbytes"
)

// EntityAppearance is the shared body of the three entity spawn frames.
// Depending on the frame it carries either a static position or a
// movement segment, and may include a spawn state byte.
type EntityAppearance struct {
	ObjectType          uint8
	EntityID            EntityID
	GroupID             uint32
	MovementSpeed       uint16
	BodyState           uint16
	HealthState         uint16
	EffectState         uint32
	Job                 uint16
	Head                uint16
	Weapon              uint32
	Shield              uint32
	Accessory           uint16
	MoveStartTime       ClientTick
	Accessory2          uint16
	Accessory3          uint16
	HeadPalette         uint16
	BodyPalette         uint16
	HeadDirection       uint16
	Robe                uint16
	GuildID             uint32
	EmblemVersion       uint16
	Honor               uint16
	Virtue              uint32
	PkMode              uint8
	Sex                 Sex
	Position            WorldPosition
	Movement            WorldPosition2
	XSize               uint8
	YSize               uint8
	State               uint8
	CLevel              uint16
	Font                uint16
	MaximumHealthPoints int32
	HealthPoints        int32
	Boss                uint8
	Body                uint16
	Name                string
}

type appearanceShape struct {
	moving   bool
	hasState bool
}

func (a *EntityAppearance) decode(c *netbytes.Cursor, shape appearanceShape) {
	c.Skip(2)
	a.ObjectType = c.Uint8()
	a.EntityID = EntityID(c.Uint32())
	a.GroupID = c.Uint32()
	a.MovementSpeed = c.Uint16()
	a.BodyState = c.Uint16()
	a.HealthState = c.Uint16()
	a.EffectState = c.Uint32()
	a.Job = c.Uint16()
	a.Head = c.Uint16()
	a.Weapon = c.Uint32()
	a.Shield = c.Uint32()
	a.Accessory = c.Uint16()
	if shape.moving {
		a.MoveStartTime = ClientTick(c.Uint32())
	}
	a.Accessory2 = c.Uint16()
	a.Accessory3 = c.Uint16()
	a.HeadPalette = c.Uint16()
	a.BodyPalette = c.Uint16()
	a.HeadDirection = c.Uint16()
	a.Robe = c.Uint16()
	a.GuildID = c.Uint32()
	a.EmblemVersion = c.Uint16()
	a.Honor = c.Uint16()
	a.Virtue = c.Uint32()
	a.PkMode = c.Uint8()
	a.Sex = readSex(c)
	if shape.moving {
		a.Movement = readWorldPosition2(c)
		a.Position = WorldPosition{X: a.Movement.X1, Y: a.Movement.Y1}
	} else {
		a.Position = readWorldPosition(c)
	}
	a.XSize = c.Uint8()
	a.YSize = c.Uint8()
	if shape.hasState {
		a.State = c.Uint8()
	}
	a.CLevel = c.Uint16()
	a.Font = c.Uint16()
	a.MaximumHealthPoints = c.Int32()
	a.HealthPoints = c.Int32()
	a.Boss = c.Uint8()
	a.Body = c.Uint16()
	a.Name = c.String(24)
}

// EntityAppeared announces a stationary entity entering view.
type EntityAppeared struct {
	EntityAppearance
}

func (EntityAppeared) Header() uint16 { return 0x09fe }

func (p *EntityAppeared) DecodeBody(c *netbytes.Cursor) {
	p.decode(c, appearanceShape{})
}

// EntityAppeared2 announces a stationary entity entering view, with an
// extra spawn state byte.
type EntityAppeared2 struct {
	EntityAppearance
}

func (EntityAppeared2) Header() uint16 { return 0x09ff }

func (p *EntityAppeared2) DecodeBody(c *netbytes.Cursor) {
	p.decode(c, appearanceShape{hasState: true})
}

// MovingEntityAppeared announces an entity entering view mid-movement.
type MovingEntityAppeared struct {
	EntityAppearance
}

func (MovingEntityAppeared) Header() uint16 { return 0x09fd }

func (p *MovingEntityAppeared) DecodeBody(c *netbytes.Cursor) {
	p.decode(c, appearanceShape{moving: true})
}

// DisappearanceReason is the closed set of reasons an entity leaves
// view.
type DisappearanceReason uint8

const (
	DisappearedOutOfSight DisappearanceReason = iota
	DisappearedDied
	DisappearedLoggedOut
	DisappearedTeleported
	DisappearedTrickDead
)

// EntityDisappeared removes an entity from view.
type EntityDisappeared struct {
	EntityID EntityID
	Reason   DisappearanceReason
}

func (EntityDisappeared) Header() uint16 { return 0x0080 }

func (p *EntityDisappeared) DecodeBody(c *netbytes.Cursor) {
	p.EntityID = EntityID(c.Uint32())
	v := c.Uint8()
	if c.Err() == nil && v > uint8(DisappearedTrickDead) {
		c.Fail(fmt.Errorf("%w: disappearance reason %d", ErrInvalidEnum, v))
		return
	}
	p.Reason = DisappearanceReason(v)
}

// StateChange updates an entity's body, health, and effect state.
type StateChange struct {
	EntityID    EntityID
	BodyState   uint16
	HealthState uint16
	EffectState uint32
	PkMode      uint8
}

func (StateChange) Header() uint16 { return 0x0229 }

func (p *StateChange) DecodeBody(c *netbytes.Cursor) {
	p.EntityID = EntityID(c.Uint32())
	p.BodyState = c.Uint16()
	p.HealthState = c.Uint16()
	p.EffectState = c.Uint32()
	p.PkMode = c.Uint8()
}

// SpriteChange swaps part of an entity's appearance. A sprite type of
// zero changes the entity's job sprite.
type SpriteChange struct {
	AccountID  AccountID
	SpriteType uint8
	Value      uint32
	Value2     uint32
}

func (SpriteChange) Header() uint16 { return 0x01d7 }

func (p *SpriteChange) DecodeBody(c *netbytes.Cursor) {
	p.AccountID = AccountID(c.Uint32())
	p.SpriteType = c.Uint8()
	p.Value = c.Uint32()
	p.Value2 = c.Uint32()
}

// StatusChange applies a timed status effect to an entity.
type StatusChange struct {
	Index     uint16
	EntityID  EntityID
	State     uint8
	Duration  uint32
	Remaining uint32
	Values    [3]uint32
}

func (StatusChange) Header() uint16 { return 0x0983 }

func (p *StatusChange) DecodeBody(c *netbytes.Cursor) {
	p.Index = c.Uint16()
	p.EntityID = EntityID(c.Uint32())
	p.State = c.Uint8()
	p.Duration = c.Uint32()
	p.Remaining = c.Uint32()
	p.Values = [3]uint32{c.Uint32(), c.Uint32(), c.Uint32()}
}

// StatusChangeSequence applies a status effect without timing data.
type StatusChangeSequence struct {
	Index    uint16
	EntityID EntityID
	State    uint8
}

func (StatusChangeSequence) Header() uint16 { return 0x0196 }

func (p *StatusChangeSequence) DecodeBody(c *netbytes.Cursor) {
	p.Index = c.Uint16()
	p.EntityID = EntityID(c.Uint32())
	p.State = c.Uint8()
}

// RequestDetails asks for an entity's display details, sent when the
// player hovers over it.
type RequestDetails struct {
	EntityID EntityID
}

func (RequestDetails) Header() uint16 { return 0x0368 }

func (p *RequestDetails) EncodeBody(w *netbytes.Writer) {
	w.Uint32(uint32(p.EntityID))
}

// PlayerDetailsSuccess answers a details request for a player entity.
type PlayerDetailsSuccess struct {
	CharacterID  CharacterID
	Name         string
	PartyName    string
	GuildName    string
	PositionName string
	TitleID      uint32
}

func (PlayerDetailsSuccess) Header() uint16 { return 0x0a30 }

func (p *PlayerDetailsSuccess) DecodeBody(c *netbytes.Cursor) {
	p.CharacterID = CharacterID(c.Uint32())
	p.Name = c.String(24)
	p.PartyName = c.String(24)
	p.GuildName = c.String(24)
	p.PositionName = c.String(24)
	p.TitleID = c.Uint32()
}

// EntityDetailsSuccess answers a details request for a non-player
// entity.
type EntityDetailsSuccess struct {
	EntityID EntityID
	GroupID  uint32
	Name     string
	Title    string
}

func (EntityDetailsSuccess) Header() uint16 { return 0x0adf }

func (p *EntityDetailsSuccess) DecodeBody(c *netbytes.Cursor) {
	p.EntityID = EntityID(c.Uint32())
	p.GroupID = c.Uint32()
	p.Name = c.String(24)
	p.Title = c.String(24)
}

// Action is the closed set of direct interactions with an entity or
// tile.
type Action uint8

const (
	ActionAttack           Action = 0
	ActionPickUpItem       Action = 1
	ActionSitDown          Action = 2
	ActionStandUp          Action = 3
	ActionContinuousAttack Action = 7
	ActionTouchSkill       Action = 12
)

// RequestAction performs an action on a target entity.
type RequestAction struct {
	TargetID EntityID
	Action   Action
}

func (RequestAction) Header() uint16 { return 0x0437 }

func (p *RequestAction) EncodeBody(w *netbytes.Writer) {
	w.Uint32(uint32(p.TargetID))
	w.Uint8(uint8(p.Action))
}

// Damage reports an attack landing, with the movement speeds both sides
// need to time the animation. LeftHandAmount carries the second hit of
// dual wield attacks.
type Damage struct {
	SourceID         EntityID
	DestinationID    EntityID
	ClientTick       ClientTick
	SourceSpeed      uint32
	DestinationSpeed uint32
	Amount           uint32
	SpecialDamage    uint8
	HitCount         uint16
	DamageType       uint8
	LeftHandAmount   uint32
}

func (Damage) Header() uint16 { return 0x08c8 }

func (p *Damage) DecodeBody(c *netbytes.Cursor) {
	p.SourceID = EntityID(c.Uint32())
	p.DestinationID = EntityID(c.Uint32())
	p.ClientTick = ClientTick(c.Uint32())
	p.SourceSpeed = c.Uint32()
	p.DestinationSpeed = c.Uint32()
	p.Amount = c.Uint32()
	p.SpecialDamage = c.Uint8()
	p.HitCount = c.Uint16()
	p.DamageType = c.Uint8()
	p.LeftHandAmount = c.Uint32()
}

// UpdateEntityHealthPoints reports an entity's current and maximum
// health.
type UpdateEntityHealthPoints struct {
	EntityID            EntityID
	HealthPoints        uint32
	MaximumHealthPoints uint32
}

func (UpdateEntityHealthPoints) Header() uint16 { return 0x0977 }

func (p *UpdateEntityHealthPoints) DecodeBody(c *netbytes.Cursor) {
	p.EntityID = EntityID(c.Uint32())
	p.HealthPoints = c.Uint32()
	p.MaximumHealthPoints = c.Uint32()
}

// PlayerAttackFailed reports that an attack could not reach its target.
type PlayerAttackFailed struct {
	TargetID       EntityID
	TargetPosition Point
	Position       Point
	AttackRange    uint16
}

func (PlayerAttackFailed) Header() uint16 { return 0x0139 }

func (p *PlayerAttackFailed) DecodeBody(c *netbytes.Cursor) {
	p.TargetID = EntityID(c.Uint32())
	p.TargetPosition = readPointU16(c)
	p.Position = readPointU16(c)
	p.AttackRange = c.Uint16()
}

// NavigateToMonster starts the built-in navigation toward a monster or
// position on some map.
type NavigateToMonster struct {
	TargetType      uint8
	Flags           uint8
	HideWindow      uint8
	MapName         string
	TargetPosition  Point
	TargetMonsterID uint16
}

func (NavigateToMonster) Header() uint16 { return 0x08e2 }

func (p *NavigateToMonster) DecodeBody(c *netbytes.Cursor) {
	p.TargetType = c.Uint8()
	p.Flags = c.Uint8()
	p.HideWindow = c.Uint8()
	p.MapName = c.String(16)
	p.TargetPosition = readPointU16(c)
	p.TargetMonsterID = c.Uint16()
}

// MinimapMarkerType is the closed set of minimap marker behaviors.
type MinimapMarkerType uint32

const (
	MarkerDisplayFor15Seconds MinimapMarkerType = iota
	MarkerDisplayUntilLeave
	MarkerRemove
)

// MarkMinimapPosition places or removes a minimap marker.
type MarkMinimapPosition struct {
	NpcID      EntityID
	MarkerType MinimapMarkerType
	Position   Point
	ID         uint8
	Color      netbytes.Color
}

func (MarkMinimapPosition) Header() uint16 { return 0x0144 }

func (p *MarkMinimapPosition) DecodeBody(c *netbytes.Cursor) {
	p.NpcID = EntityID(c.Uint32())
	v := c.Uint32()
	if c.Err() == nil && v > uint32(MarkerRemove) {
		c.Fail(fmt.Errorf("%w: minimap marker type %d", ErrInvalidEnum, v))
		return
	}
	p.MarkerType = MinimapMarkerType(v)
	p.Position = readPointU32(c)
	p.ID = c.Uint8()
	p.Color = c.Color()
}

// VisualEffect is the closed set of full-screen effects the server can
// trigger directly.
type VisualEffect uint32

const (
	EffectBaseLevelUp VisualEffect = iota
	EffectJobLevelUp
	EffectRefineFailure
	EffectRefineSuccess
	EffectGameOver
	EffectPharmacySuccess
	EffectPharmacyFailure
	EffectBaseLevelUpSuperNovice
	EffectJobLevelUpSuperNovice
	EffectBaseLevelUpTaekwon
)

// Path returns the effect's animation file.
func (e VisualEffect) Path() string {
	switch e {
	case EffectBaseLevelUp:
		return "angel.str"
	case EffectJobLevelUp:
		return "joblvup.str"
	case EffectRefineFailure:
		return "bs_refinefailed.str"
	case EffectRefineSuccess:
		return "bs_refinesuccess.str"
	case EffectGameOver:
		return "help_angel\\help_angel\\help_angel.str"
	case EffectPharmacySuccess:
		return "p_success.str"
	case EffectPharmacyFailure:
		return "p_failed.str"
	case EffectBaseLevelUpSuperNovice:
		return "help_angel\\help_angel\\help_angel.str"
	case EffectJobLevelUpSuperNovice:
		return "help_angel\\help_angel\\help_angel.str"
	case EffectBaseLevelUpTaekwon:
		return "help_angel\\help_angel\\help_angel.str"
	}
	return ""
}

// VisualEffectNotice plays a full-screen effect on an entity.
type VisualEffectNotice struct {
	EntityID EntityID
	Effect   VisualEffect
}

func (VisualEffectNotice) Header() uint16 { return 0x019b }

func (p *VisualEffectNotice) DecodeBody(c *netbytes.Cursor) {
	p.EntityID = EntityID(c.Uint32())
	v := c.Uint32()
	if c.Err() == nil && v > uint32(EffectBaseLevelUpTaekwon) {
		c.Fail(fmt.Errorf("%w: visual effect %d", ErrInvalidEnum, v))
		return
	}
	p.Effect = VisualEffect(v)
}

// DisplaySpecialEffect plays an arbitrary numbered effect on an entity.
type DisplaySpecialEffect struct {
	EntityID EntityID
	EffectID uint32
}

func (DisplaySpecialEffect) Header() uint16 { return 0x01f3 }

func (p *DisplaySpecialEffect) DecodeBody(c *netbytes.Cursor) {
	p.EntityID = EntityID(c.Uint32())
	p.EffectID = c.Uint32()
}

// ExperienceType distinguishes base from job experience gains.
type ExperienceType uint16

const (
	ExperienceBase ExperienceType = 1
	ExperienceJob  ExperienceType = 2
)

// ExperienceSource distinguishes regular kills from quest rewards.
type ExperienceSource uint16

const (
	ExperienceRegular ExperienceSource = 0
	ExperienceQuest   ExperienceSource = 1
)

// DisplayGainedExperience reports an experience gain.
type DisplayGainedExperience struct {
	AccountID AccountID
	Amount    uint64
	Type      ExperienceType
	Source    ExperienceSource
}

func (DisplayGainedExperience) Header() uint16 { return 0x0acc }

func (p *DisplayGainedExperience) DecodeBody(c *netbytes.Cursor) {
	p.AccountID = AccountID(c.Uint32())
	p.Amount = c.Uint64()
	t := c.Uint16()
	if c.Err() == nil && (t < uint16(ExperienceBase) || t > uint16(ExperienceJob)) {
		c.Fail(fmt.Errorf("%w: experience type %d", ErrInvalidEnum, t))
		return
	}
	p.Type = ExperienceType(t)
	s := c.Uint16()
	if c.Err() == nil && s > uint16(ExperienceQuest) {
		c.Fail(fmt.Errorf("%w: experience source %d", ErrInvalidEnum, s))
		return
	}
	p.Source = ExperienceSource(s)
}

// ImageLocation is the closed set of screen anchors for server images.
type ImageLocation uint8

const (
	ImageBottomLeft ImageLocation = iota
	ImageBottomMiddle
	ImageBottomRight
	ImageMiddleFloating
	ImageMiddleColorless
	ImageClearAll ImageLocation = 255
)

// DisplayImage shows a server-provided illustration on screen.
type DisplayImage struct {
	ImageName string
	Location  ImageLocation
}

func (DisplayImage) Header() uint16 { return 0x01b3 }

func (p *DisplayImage) DecodeBody(c *netbytes.Cursor) {
	p.ImageName = c.String(64)
	v := c.Uint8()
	if c.Err() == nil && v > uint8(ImageMiddleColorless) && v != uint8(ImageClearAll) {
		c.Fail(fmt.Errorf("%w: image location %d", ErrInvalidEnum, v))
		return
	}
	p.Location = ImageLocation(v)
}

// UseSkillAtID casts a targeted skill.
type UseSkillAtID struct {
	SkillLevel SkillLevel
	SkillID    SkillID
	TargetID   EntityID
}

func (UseSkillAtID) Header() uint16 { return 0x0438 }

func (p *UseSkillAtID) EncodeBody(w *netbytes.Writer) {
	w.Uint16(uint16(p.SkillLevel))
	w.Uint16(uint16(p.SkillID))
	w.Uint32(uint32(p.TargetID))
}

// UseSkillOnGround casts a ground-targeted skill.
type UseSkillOnGround struct {
	SkillLevel     SkillLevel
	SkillID        SkillID
	TargetPosition Point
}

func (UseSkillOnGround) Header() uint16 { return 0x0af4 }

func (p *UseSkillOnGround) EncodeBody(w *netbytes.Writer) {
	w.Uint16(uint16(p.SkillLevel))
	w.Uint16(uint16(p.SkillID))
	writePointU16(w, p.TargetPosition)
	w.Uint8(0)
}

// StartUseSkill begins channeling a held skill.
type StartUseSkill struct {
	SkillID    SkillID
	SkillLevel SkillLevel
	TargetID   EntityID
}

func (StartUseSkill) Header() uint16 { return 0x0b10 }

func (p *StartUseSkill) EncodeBody(w *netbytes.Writer) {
	w.Uint16(uint16(p.SkillID))
	w.Uint16(uint16(p.SkillLevel))
	w.Uint32(uint32(p.TargetID))
}

// EndUseSkill stops channeling a held skill.
type EndUseSkill struct {
	SkillID SkillID
}

func (EndUseSkill) Header() uint16 { return 0x0b11 }

func (p *EndUseSkill) EncodeBody(w *netbytes.Writer) {
	w.Uint16(uint16(p.SkillID))
}

// UpdateSkillTree replaces the player's entire skill tree. Entries
// repeat to the end of the frame.
type UpdateSkillTree struct {
	Skills []SkillInformation
}

func (UpdateSkillTree) Header() uint16 { return 0x010f }

func (p *UpdateSkillTree) DecodeBody(c *netbytes.Cursor) {
	c.Skip(2)
	for c.Err() == nil && c.Remaining() >= skillInformationSize {
		p.Skills = append(p.Skills, readSkillInformation(c))
	}
	if c.Err() == nil && c.Remaining() != 0 {
		c.Fail(fmt.Errorf("packets: %d trailing bytes after skill tree", c.Remaining()))
	}
}

// HotkeyData is one hotbar slot assignment.
type HotkeyData struct {
	IsSkill              uint8
	SkillID              uint32
	QuantityOrSkillLevel uint16
}

// UpdateHotkeys replaces one tab of the hotbar. The frame always
// carries 38 slots.
type UpdateHotkeys struct {
	Rotate  uint8
	Tab     uint16
	Hotkeys [38]HotkeyData
}

func (UpdateHotkeys) Header() uint16 { return 0x0b20 }

func (p *UpdateHotkeys) DecodeBody(c *netbytes.Cursor) {
	p.Rotate = c.Uint8()
	p.Tab = c.Uint16()
	for i := range p.Hotkeys {
		p.Hotkeys[i] = HotkeyData{
			IsSkill:              c.Uint8(),
			SkillID:              c.Uint32(),
			QuantityOrSkillLevel: c.Uint16(),
		}
	}
}

// DisplaySkillCooldown starts a cooldown spinner on a skill.
type DisplaySkillCooldown struct {
	SkillID SkillID
	Until   ClientTick
}

func (DisplaySkillCooldown) Header() uint16 { return 0x043d }

func (p *DisplaySkillCooldown) DecodeBody(c *netbytes.Cursor) {
	p.SkillID = SkillID(c.Uint16())
	p.Until = ClientTick(c.Uint32())
}

// DisplaySkillEffectAndDamage reports a damaging skill hit.
type DisplaySkillEffectAndDamage struct {
	SkillID          SkillID
	SourceID         EntityID
	DestinationID    EntityID
	StartTime        ClientTick
	SourceDelay      uint32
	DestinationDelay uint32
	Damage           uint32
	Level            SkillLevel
	Div              uint16
	SkillType        uint8
}

func (DisplaySkillEffectAndDamage) Header() uint16 { return 0x01de }

func (p *DisplaySkillEffectAndDamage) DecodeBody(c *netbytes.Cursor) {
	p.SkillID = SkillID(c.Uint16())
	p.SourceID = EntityID(c.Uint32())
	p.DestinationID = EntityID(c.Uint32())
	p.StartTime = ClientTick(c.Uint32())
	p.SourceDelay = c.Uint32()
	p.DestinationDelay = c.Uint32()
	p.Damage = c.Uint32()
	p.Level = SkillLevel(c.Uint16())
	p.Div = c.Uint16()
	p.SkillType = c.Uint8()
}

// DisplaySkillEffectNoDamage reports a non-damaging skill effect such
// as a heal.
type DisplaySkillEffectNoDamage struct {
	SkillID       SkillID
	HealAmount    uint32
	DestinationID EntityID
	SourceID      EntityID
	Result        uint8
}

func (DisplaySkillEffectNoDamage) Header() uint16 { return 0x09cb }

func (p *DisplaySkillEffectNoDamage) DecodeBody(c *netbytes.Cursor) {
	p.SkillID = SkillID(c.Uint16())
	p.HealAmount = c.Uint32()
	p.DestinationID = EntityID(c.Uint32())
	p.SourceID = EntityID(c.Uint32())
	p.Result = c.Uint8()
}

// HealType is the closed set of pools a direct heal can restore. The
// wire codes match the corresponding status codes.
type HealType uint16

const (
	HealHealthPoints HealType = 5
	HealSpellPoints  HealType = 7
)

// DisplayPlayerHealEffect reports a direct heal on the player.
type DisplayPlayerHealEffect struct {
	Type   HealType
	Amount uint32
}

func (DisplayPlayerHealEffect) Header() uint16 { return 0x0a27 }

func (p *DisplayPlayerHealEffect) DecodeBody(c *netbytes.Cursor) {
	v := c.Uint16()
	if c.Err() == nil && v != uint16(HealHealthPoints) && v != uint16(HealSpellPoints) {
		c.Fail(fmt.Errorf("%w: heal type %d", ErrInvalidEnum, v))
		return
	}
	p.Type = HealType(v)
	p.Amount = c.Uint32()
}

// UseSkillSuccess confirms a skill cast.
type UseSkillSuccess struct {
	SourceID      EntityID
	DestinationID EntityID
	Position      Point
	SkillID       SkillID
	Element       uint32
	DelayTime     uint32
	Disposable    uint8
}

func (UseSkillSuccess) Header() uint16 { return 0x07fb }

func (p *UseSkillSuccess) DecodeBody(c *netbytes.Cursor) {
	p.SourceID = EntityID(c.Uint32())
	p.DestinationID = EntityID(c.Uint32())
	p.Position = readPointU16(c)
	p.SkillID = SkillID(c.Uint16())
	p.Element = c.Uint32()
	p.DelayTime = c.Uint32()
	p.Disposable = c.Uint8()
}

// ToUseSkillSuccess confirms a skill is ready to fire.
type ToUseSkillSuccess struct {
	SkillID SkillID
	BType   int32
	ItemID  ItemID
	Flag    uint8
	Cause   uint8
}

func (ToUseSkillSuccess) Header() uint16 { return 0x0110 }

func (p *ToUseSkillSuccess) DecodeBody(c *netbytes.Cursor) {
	p.SkillID = SkillID(c.Uint16())
	p.BType = c.Int32()
	p.ItemID = ItemID(c.Uint32())
	p.Flag = c.Uint8()
	p.Cause = c.Uint8()
}

// NotifySkillUnit places a persistent skill unit (a trap, a warp, a
// song field) on the ground. The frame carries a length field but is
// fixed size.
type NotifySkillUnit struct {
	EntityID   EntityID
	CreatorID  EntityID
	Position   Point
	UnitID     uint32
	Range      uint8
	Visible    uint8
	SkillLevel uint8
}

func (NotifySkillUnit) Header() uint16 { return 0x09ca }

func (p *NotifySkillUnit) DecodeBody(c *netbytes.Cursor) {
	c.Skip(2)
	p.EntityID = EntityID(c.Uint32())
	p.CreatorID = EntityID(c.Uint32())
	p.Position = readPointU16(c)
	p.UnitID = c.Uint32()
	p.Range = c.Uint8()
	p.Visible = c.Uint8()
	p.SkillLevel = c.Uint8()
}

// NotifyGroundSkill announces a ground skill cast without a persistent
// unit.
type NotifyGroundSkill struct {
	SkillID   SkillID
	EntityID  EntityID
	Level     SkillLevel
	Position  Point
	StartTime ClientTick
}

func (NotifyGroundSkill) Header() uint16 { return 0x0117 }

func (p *NotifyGroundSkill) DecodeBody(c *netbytes.Cursor) {
	p.SkillID = SkillID(c.Uint16())
	p.EntityID = EntityID(c.Uint32())
	p.Level = SkillLevel(c.Uint16())
	p.Position = readPointU16(c)
	p.StartTime = ClientTick(c.Uint32())
}

// SkillUnitDisappear removes a ground skill unit.
type SkillUnitDisappear struct {
	EntityID EntityID
}

func (SkillUnitDisappear) Header() uint16 { return 0x0120 }

func (p *SkillUnitDisappear) DecodeBody(c *netbytes.Cursor) {
	p.EntityID = EntityID(c.Uint32())
}
