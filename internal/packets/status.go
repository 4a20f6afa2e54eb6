package packets

import (
	"fmt"

	"github.com/ragnet/ragnet/internal/core/netbytes"
)

// StatusKind identifies which character statistic a status update
// carries. The wire codes are sparse and non-sequential.
type StatusKind uint16

const (
	StatusMovementSpeed      StatusKind = 0
	StatusBaseExperience     StatusKind = 1
	StatusJobExperience      StatusKind = 2
	StatusKarma              StatusKind = 3
	StatusManner             StatusKind = 4
	StatusHealthPoints       StatusKind = 5
	StatusMaximumHealth      StatusKind = 6
	StatusSpellPoints        StatusKind = 7
	StatusMaximumSpellPoints StatusKind = 8
	StatusActivityPoints     StatusKind = 9
	StatusBaseLevel          StatusKind = 11
	StatusSkillPoints        StatusKind = 12
	StatusStrength           StatusKind = 13
	StatusAgility            StatusKind = 14
	StatusVitality           StatusKind = 15
	StatusIntelligence       StatusKind = 16
	StatusDexterity          StatusKind = 17
	StatusLuck               StatusKind = 18
	StatusZeny               StatusKind = 20
	StatusNextBaseExperience StatusKind = 22
	StatusNextJobExperience  StatusKind = 23
	StatusWeight             StatusKind = 24
	StatusMaximumWeight      StatusKind = 25
	StatusSpUStrength        StatusKind = 32
	StatusSpUAgility         StatusKind = 33
	StatusSpUVitality        StatusKind = 34
	StatusSpUIntelligence    StatusKind = 35
	StatusSpUDexterity       StatusKind = 36
	StatusSpULuck            StatusKind = 37
	StatusAttack1            StatusKind = 41
	StatusAttack2            StatusKind = 42
	StatusMagicAttack1       StatusKind = 43
	StatusMagicAttack2       StatusKind = 44
	StatusDefense1           StatusKind = 45
	StatusDefense2           StatusKind = 46
	StatusMagicDefense1      StatusKind = 47
	StatusMagicDefense2      StatusKind = 48
	StatusHit                StatusKind = 49
	StatusFlee1              StatusKind = 50
	StatusFlee2              StatusKind = 51
	StatusCritical           StatusKind = 52
	StatusAttackSpeed        StatusKind = 53
	StatusJobLevel           StatusKind = 55
	StatusCartInfo           StatusKind = 99
	StatusPower              StatusKind = 219
	StatusStamina            StatusKind = 220
	StatusWisdom             StatusKind = 221
	StatusSpell              StatusKind = 222
	StatusConcentration      StatusKind = 223
	StatusCreativity         StatusKind = 224
	StatusPhysicalAttack     StatusKind = 225
	StatusSpellMagicAttack   StatusKind = 226
	StatusResistance         StatusKind = 227
	StatusMagicResistance    StatusKind = 228
	StatusHealingPlus        StatusKind = 229
	StatusCriticalDamageRate StatusKind = 230
	StatusTraitPoint         StatusKind = 231
	StatusActivityPoints2    StatusKind = 232
	StatusMaximumActivity    StatusKind = 233
	StatusSpUPower           StatusKind = 247
	StatusSpUStamina         StatusKind = 248
	StatusSpUWisdom          StatusKind = 249
	StatusSpUSpell           StatusKind = 250
	StatusSpUConcentration   StatusKind = 251
	StatusSpUCreativity      StatusKind = 252
)

// statusShape is the payload layout following a status code.
type statusShape uint8

const (
	shapeU8 statusShape = iota
	shapeU32
	shapeU64
	shapePairU32
	shapeCart
)

// statusShapes is the closed code table. Any code not listed here is a
// protocol violation.
var statusShapes = map[StatusKind]statusShape{
	StatusMovementSpeed:      shapeU32,
	StatusBaseExperience:     shapeU64,
	StatusJobExperience:      shapeU64,
	StatusKarma:              shapeU32,
	StatusManner:             shapeU32,
	StatusHealthPoints:       shapeU32,
	StatusMaximumHealth:      shapeU32,
	StatusSpellPoints:        shapeU32,
	StatusMaximumSpellPoints: shapeU32,
	StatusActivityPoints:     shapeU32,
	StatusBaseLevel:          shapeU32,
	StatusSkillPoints:        shapeU32,
	StatusStrength:           shapePairU32,
	StatusAgility:            shapePairU32,
	StatusVitality:           shapePairU32,
	StatusIntelligence:       shapePairU32,
	StatusDexterity:          shapePairU32,
	StatusLuck:               shapePairU32,
	StatusZeny:               shapeU32,
	StatusNextBaseExperience: shapeU64,
	StatusNextJobExperience:  shapeU64,
	StatusWeight:             shapeU32,
	StatusMaximumWeight:      shapeU32,
	StatusSpUStrength:        shapeU8,
	StatusSpUAgility:         shapeU8,
	StatusSpUVitality:        shapeU8,
	StatusSpUIntelligence:    shapeU8,
	StatusSpUDexterity:       shapeU8,
	StatusSpULuck:            shapeU8,
	StatusAttack1:            shapeU32,
	StatusAttack2:            shapeU32,
	StatusMagicAttack1:       shapeU32,
	StatusMagicAttack2:       shapeU32,
	StatusDefense1:           shapeU32,
	StatusDefense2:           shapeU32,
	StatusMagicDefense1:      shapeU32,
	StatusMagicDefense2:      shapeU32,
	StatusHit:                shapeU32,
	StatusFlee1:              shapeU32,
	StatusFlee2:              shapeU32,
	StatusCritical:           shapeU32,
	StatusAttackSpeed:        shapeU32,
	StatusJobLevel:           shapeU32,
	StatusCartInfo:           shapeCart,
	StatusPower:              shapePairU32,
	StatusStamina:            shapePairU32,
	StatusWisdom:             shapePairU32,
	StatusSpell:              shapePairU32,
	StatusConcentration:      shapePairU32,
	StatusCreativity:         shapePairU32,
	StatusPhysicalAttack:     shapeU32,
	StatusSpellMagicAttack:   shapeU32,
	StatusResistance:         shapeU32,
	StatusMagicResistance:    shapeU32,
	StatusHealingPlus:        shapeU32,
	StatusCriticalDamageRate: shapeU32,
	StatusTraitPoint:         shapeU32,
	StatusActivityPoints2:    shapeU32,
	StatusMaximumActivity:    shapeU32,
	StatusSpUPower:           shapeU8,
	StatusSpUStamina:         shapeU8,
	StatusSpUWisdom:          shapeU8,
	StatusSpUSpell:           shapeU8,
	StatusSpUConcentration:   shapeU8,
	StatusSpUCreativity:      shapeU8,
}

var statusNames = map[StatusKind]string{
	StatusMovementSpeed:      "MovementSpeed",
	StatusBaseExperience:     "BaseExperience",
	StatusJobExperience:      "JobExperience",
	StatusKarma:              "Karma",
	StatusManner:             "Manner",
	StatusHealthPoints:       "HealthPoints",
	StatusMaximumHealth:      "MaximumHealthPoints",
	StatusSpellPoints:        "SpellPoints",
	StatusMaximumSpellPoints: "MaximumSpellPoints",
	StatusActivityPoints:     "ActivityPoints",
	StatusBaseLevel:          "BaseLevel",
	StatusSkillPoints:        "SkillPoints",
	StatusStrength:           "Strength",
	StatusAgility:            "Agility",
	StatusVitality:           "Vitality",
	StatusIntelligence:       "Intelligence",
	StatusDexterity:          "Dexterity",
	StatusLuck:               "Luck",
	StatusZeny:               "Zeny",
	StatusNextBaseExperience: "NextBaseExperience",
	StatusNextJobExperience:  "NextJobExperience",
	StatusWeight:             "Weight",
	StatusMaximumWeight:      "MaximumWeight",
	StatusAttack1:            "Attack1",
	StatusAttack2:            "Attack2",
	StatusMagicAttack1:       "MagicAttack1",
	StatusMagicAttack2:       "MagicAttack2",
	StatusDefense1:           "Defense1",
	StatusDefense2:           "Defense2",
	StatusMagicDefense1:      "MagicDefense1",
	StatusMagicDefense2:      "MagicDefense2",
	StatusHit:                "Hit",
	StatusFlee1:              "Flee1",
	StatusFlee2:              "Flee2",
	StatusCritical:           "Critical",
	StatusAttackSpeed:        "AttackSpeed",
	StatusJobLevel:           "JobLevel",
	StatusCartInfo:           "CartInfo",
}

// String returns a diagnostic name for the kind. Kinds without a listed
// name fall back to their numeric code.
func (k StatusKind) String() string {
	if name, ok := statusNames[k]; ok {
		return name
	}
	return fmt.Sprintf("StatusKind(%d)", uint16(k))
}

// Status is one decoded statistic update. Value holds the primary
// quantity; Bonus is populated for the paired stat codes, and the cart
// codes use all three fields (count, weight, maximum weight).
type Status struct {
	Kind  StatusKind
	Value int64
	Bonus int64
	Extra int64
}

// readStatus decodes a status update from a window of exactly size
// bytes, consuming the whole window regardless of the payload shape.
// An unlisted code marks the cursor failed.
func readStatus(c *netbytes.Cursor, size int) Status {
	start := c.Offset()
	kind := StatusKind(c.Uint16())
	shape, ok := statusShapes[kind]
	if !ok {
		if c.Err() == nil {
			c.Fail(fmt.Errorf("%w: status code %d", ErrInvalidEnum, uint16(kind)))
		}
		return Status{}
	}
	s := Status{Kind: kind}
	switch shape {
	case shapeU8:
		s.Value = int64(c.Uint8())
	case shapeU32:
		s.Value = int64(c.Int32())
	case shapeU64:
		s.Value = c.Int64()
	case shapePairU32:
		s.Value = int64(c.Int32())
		s.Bonus = int64(c.Int32())
	case shapeCart:
		s.Value = int64(c.Uint16())
		s.Bonus = int64(c.Uint32())
		s.Extra = int64(c.Uint32())
	}
	if c.Err() != nil {
		return Status{}
	}
	if used := c.Offset() - start; used > size {
		c.Fail(fmt.Errorf("packets: status %s payload overruns %d byte window", kind, size))
		return Status{}
	} else if used < size {
		c.Skip(size - used)
	}
	return s
}
