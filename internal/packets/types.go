package packets

import (
	"fmt"

	"github.com/ragnet/ragnet/internal/core/netbytes"
)

// ClientTick is the server-synchronized millisecond counter.
type ClientTick uint32

// Identifier newtypes. All are plain value copies with no ownership
// semantics; they exist so an account id can never be passed where an
// entity id is expected.
type (
	AccountID   uint32
	CharacterID uint32
	PartyID     uint32
	EntityID    uint32
	SkillID     uint16
	SkillLevel  uint16
	ItemID      uint32
)

// ItemIndex is an inventory slot reference. The wire representation is
// always the logical index plus two.
type ItemIndex uint16

const itemIndexOffset = 2

func readItemIndex(c *netbytes.Cursor) ItemIndex {
	v := c.Uint16()
	if c.Err() != nil {
		return 0
	}
	if v < itemIndexOffset {
		c.Fail(fmt.Errorf("packets: item index wire value %d below offset", v))
		return 0
	}
	return ItemIndex(v - itemIndexOffset)
}

func (i ItemIndex) encode(w *netbytes.Writer) {
	w.Uint16(uint16(i) + itemIndexOffset)
}

// Point is a tile coordinate pair.
type Point struct {
	X int
	Y int
}

func readPointU16(c *netbytes.Cursor) Point {
	return Point{X: int(c.Uint16()), Y: int(c.Uint16())}
}

func writePointU16(w *netbytes.Writer, p Point) {
	w.Uint16(uint16(p.X))
	w.Uint16(uint16(p.Y))
}

func readPointU32(c *netbytes.Cursor) Point {
	return Point{X: int(c.Uint32()), Y: int(c.Uint32())}
}

// WorldPosition is a tile position bit-packed into three bytes: ten bits
// of x, ten bits of y, and four trailing bits holding a facing direction
// that is not currently decoded.
type WorldPosition struct {
	X int
	Y int
}

func readWorldPosition(c *netbytes.Cursor) WorldPosition {
	b := c.Bytes(3)
	if b == nil {
		return WorldPosition{}
	}
	return WorldPosition{
		X: int(b[0])<<2 | int(b[1])>>6,
		Y: int(b[1]&0b111111)<<4 | int(b[2])>>4,
	}
}

func (p WorldPosition) encode(w *netbytes.Writer) {
	w.Uint8(uint8(p.X >> 2))
	w.Uint8(uint8(p.X<<6) | uint8((p.Y>>4)&0x3f))
	w.Uint8(uint8(p.Y << 4))
}

// Point converts the position to a plain coordinate pair.
func (p WorldPosition) Point() Point { return Point{X: p.X, Y: p.Y} }

// WorldPosition2 packs a movement's origin and destination, plus
// direction hints, into six bytes.
type WorldPosition2 struct {
	X1 int
	Y1 int
	X2 int
	Y2 int
}

func readWorldPosition2(c *netbytes.Cursor) WorldPosition2 {
	b := c.Bytes(6)
	if b == nil {
		return WorldPosition2{}
	}
	return WorldPosition2{
		X1: int(b[0])<<2 | int(b[1])>>6,
		Y1: int(b[1]&0b111111)<<4 | int(b[2])>>4,
		X2: int(b[2]&0b1111)<<6 | int(b[3])>>2,
		Y2: int(b[3]&0b11)<<8 | int(b[4]),
	}
}

func (p WorldPosition2) encode(w *netbytes.Writer) {
	w.Uint8(uint8(p.X1 >> 2))
	w.Uint8(uint8(p.X1<<6) | uint8((p.Y1>>4)&0x3f))
	w.Uint8(uint8(p.Y1<<4) | uint8((p.X2>>6)&0xf))
	w.Uint8(uint8(p.X2<<2) | uint8((p.Y2>>8)&0x3))
	w.Uint8(uint8(p.Y2))
	w.Uint8(0)
}

// Origin returns the movement's starting tile.
func (p WorldPosition2) Origin() Point { return Point{X: p.X1, Y: p.Y1} }

// Destination returns the movement's target tile.
func (p WorldPosition2) Destination() Point { return Point{X: p.X2, Y: p.Y2} }

// Sex is the character sex as transmitted by all three servers.
type Sex uint8

const (
	SexFemale Sex = iota
	SexMale
	SexBoth
	SexServer
)

func readSex(c *netbytes.Cursor) Sex {
	v := c.Uint8()
	if c.Err() == nil && v > uint8(SexServer) {
		c.Fail(fmt.Errorf("%w: sex %d", ErrInvalidEnum, v))
	}
	return Sex(v)
}

// ItemOptions is one entry of an equippable item's option list.
type ItemOptions struct {
	Index     uint16
	Value     uint16
	Parameter uint8
}

const itemOptionsSize = 5

func readItemOptions(c *netbytes.Cursor) ItemOptions {
	return ItemOptions{
		Index:     c.Uint16(),
		Value:     c.Uint16(),
		Parameter: c.Uint8(),
	}
}

// EquipPosition is the bitmask of slots a piece of equipment occupies.
// The wire codes are the legacy non-sequential values.
type EquipPosition uint32

const (
	EquipNone                     EquipPosition = 0
	EquipHeadLower                EquipPosition = 1
	EquipRightHand                EquipPosition = 2
	EquipGarment                  EquipPosition = 4
	EquipLeftAccessory            EquipPosition = 8
	EquipArmor                    EquipPosition = 16
	EquipLeftHand                 EquipPosition = 32
	EquipShoes                    EquipPosition = 64
	EquipRightAccessory           EquipPosition = 128
	EquipHeadTop                  EquipPosition = 256
	EquipHeadMiddle               EquipPosition = 512
	EquipCostumeHeadTop           EquipPosition = 1024
	EquipCostumeHeadMiddle        EquipPosition = 2048
	EquipCostumeHeadLower         EquipPosition = 4196
	EquipCostumeGarment           EquipPosition = 8192
	EquipAmmo                     EquipPosition = 32768
	EquipShadowArmor              EquipPosition = 65536
	EquipShadowWeapon             EquipPosition = 131072
	EquipShadowShield             EquipPosition = 262144
	EquipShadowShoes              EquipPosition = 524288
	EquipShadowRightAccessory     EquipPosition = 1048576
	EquipShadowLeftAccessory      EquipPosition = 2097152
	EquipLeftRightAccessory       EquipPosition = 136
	EquipLeftRightHand            EquipPosition = 34
	EquipShadowLeftRightAccessory EquipPosition = 3145728
)

func readEquipPosition(c *netbytes.Cursor) EquipPosition {
	return EquipPosition(c.Uint32())
}

func (p EquipPosition) encode(w *netbytes.Writer) {
	w.Uint32(uint32(p))
}

// CharacterInformation is one roster entry as transmitted by the
// character server. The layout is fixed at 175 bytes.
type CharacterInformation struct {
	CharacterID              CharacterID
	Experience               int64
	Money                    int32
	JobExperience            int64
	JobLevel                 int32
	BodyState                int32
	HealthState              int32
	EffectState              int32
	Virtue                   int32
	Honor                    int32
	JobPoint                 int16
	HealthPoints             int64
	MaximumHealthPoints      int64
	SpellPoints              int64
	MaximumSpellPoints       int64
	MovementSpeed            int16
	Job                      int16
	Head                     int16
	Body                     int16
	Weapon                   int16
	Level                    int16
	SpPoint                  int16
	Accessory                int16
	Shield                   int16
	Accessory2               int16
	Accessory3               int16
	HeadPalette              int16
	BodyPalette              int16
	Name                     string
	Strength                 uint8
	Agility                  uint8
	Vitality                 uint8
	Intelligence             uint8
	Dexterity                uint8
	Luck                     uint8
	CharacterNumber          uint8
	HairColor                uint8
	IsChangedCharacter       int16
	MapName                  string
	DeletionReverseDate      int32
	RobePalette              int32
	CharacterSlotChangeCount int32
	CharacterNameChangeCount int32
	Sex                      Sex
}

// characterInformationSize is the record's fixed wire length, used by
// repeat-over-remainder decoders to predict consumption.
const characterInformationSize = 175

func readCharacterInformation(c *netbytes.Cursor) CharacterInformation {
	return CharacterInformation{
		CharacterID:              CharacterID(c.Uint32()),
		Experience:               c.Int64(),
		Money:                    c.Int32(),
		JobExperience:            c.Int64(),
		JobLevel:                 c.Int32(),
		BodyState:                c.Int32(),
		HealthState:              c.Int32(),
		EffectState:              c.Int32(),
		Virtue:                   c.Int32(),
		Honor:                    c.Int32(),
		JobPoint:                 c.Int16(),
		HealthPoints:             c.Int64(),
		MaximumHealthPoints:      c.Int64(),
		SpellPoints:              c.Int64(),
		MaximumSpellPoints:       c.Int64(),
		MovementSpeed:            c.Int16(),
		Job:                      c.Int16(),
		Head:                     c.Int16(),
		Body:                     c.Int16(),
		Weapon:                   c.Int16(),
		Level:                    c.Int16(),
		SpPoint:                  c.Int16(),
		Accessory:                c.Int16(),
		Shield:                   c.Int16(),
		Accessory2:               c.Int16(),
		Accessory3:               c.Int16(),
		HeadPalette:              c.Int16(),
		BodyPalette:              c.Int16(),
		Name:                     c.String(24),
		Strength:                 c.Uint8(),
		Agility:                  c.Uint8(),
		Vitality:                 c.Uint8(),
		Intelligence:             c.Uint8(),
		Dexterity:                c.Uint8(),
		Luck:                     c.Uint8(),
		CharacterNumber:          c.Uint8(),
		HairColor:                c.Uint8(),
		IsChangedCharacter:       c.Int16(),
		MapName:                  c.String(16),
		DeletionReverseDate:      c.Int32(),
		RobePalette:              c.Int32(),
		CharacterSlotChangeCount: c.Int32(),
		CharacterNameChangeCount: c.Int32(),
		Sex:                      readSex(c),
	}
}

// SkillType classifies how a skill is targeted. Wire codes are a
// bitmask-like legacy assignment.
type SkillType uint32

const (
	SkillPassive  SkillType = 0
	SkillAttack   SkillType = 1
	SkillGround   SkillType = 2
	SkillSelfCast SkillType = 4
	SkillSupport  SkillType = 16
	SkillTrap     SkillType = 32
)

// SkillInformation is one skill tree entry, fixed at 37 bytes.
type SkillInformation struct {
	SkillID        SkillID
	SkillType      SkillType
	SkillLevel     SkillLevel
	SpellPointCost uint16
	AttackRange    uint16
	SkillName      string
	Upgraded       uint8
}

const skillInformationSize = 37

func readSkillInformation(c *netbytes.Cursor) SkillInformation {
	return SkillInformation{
		SkillID:        SkillID(c.Uint16()),
		SkillType:      SkillType(c.Uint32()),
		SkillLevel:     SkillLevel(c.Uint16()),
		SpellPointCost: c.Uint16(),
		AttackRange:    c.Uint16(),
		SkillName:      c.String(24),
		Upgraded:       c.Uint8(),
	}
}

// Friend is one friend list entry, fixed at 32 bytes.
type Friend struct {
	AccountID   AccountID
	CharacterID CharacterID
	Name        string
}

const friendSize = 32

func readFriend(c *netbytes.Cursor) Friend {
	return Friend{
		AccountID:   AccountID(c.Uint32()),
		CharacterID: CharacterID(c.Uint32()),
		Name:        c.String(24),
	}
}
