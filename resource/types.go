package resource

import (
	"fmt"
	"strings"
)

// Type is a creature/move elemental type.
type Type string

const (
	TypeNormal   Type = "normal"
	TypeFire     Type = "fire"
	TypeWater    Type = "water"
	TypeGrass    Type = "grass"
	TypeElectric Type = "electric"
	TypeIce      Type = "ice"
	TypeFighting Type = "fighting"
	TypePoison   Type = "poison"
	TypeGround   Type = "ground"
	TypeFlying   Type = "flying"
	TypePsychic  Type = "psychic"
	TypeBug      Type = "bug"
	TypeRock     Type = "rock"
	TypeGhost    Type = "ghost"
	TypeDragon   Type = "dragon"
	TypeDark     Type = "dark"
	TypeSteel    Type = "steel"
	TypeFairy    Type = "fairy"
)

// AllTypes lists every known type; unknown type names in loaded data are a
// load-time error, never a runtime case.
var AllTypes = []Type{
	TypeNormal, TypeFire, TypeWater, TypeGrass, TypeElectric, TypeIce,
	TypeFighting, TypePoison, TypeGround, TypeFlying, TypePsychic, TypeBug,
	TypeRock, TypeGhost, TypeDragon, TypeDark, TypeSteel, TypeFairy,
}

// KnownType reports whether t is one of the 18 canonical types.
func KnownType(t Type) bool {
	_, ok := typeChart[t]
	return ok
}

// typeChart holds the non-neutral matchups only; absent pairs are 1.0.
var typeChart = map[Type]map[Type]float64{
	TypeNormal: {TypeRock: 0.5, TypeGhost: 0, TypeSteel: 0.5},
	TypeFire: {TypeFire: 0.5, TypeWater: 0.5, TypeGrass: 2, TypeIce: 2,
		TypeBug: 2, TypeRock: 0.5, TypeDragon: 0.5, TypeSteel: 2},
	TypeWater: {TypeFire: 2, TypeWater: 0.5, TypeGrass: 0.5, TypeGround: 2,
		TypeRock: 2, TypeDragon: 0.5},
	TypeGrass: {TypeFire: 0.5, TypeWater: 2, TypeGrass: 0.5, TypePoison: 0.5,
		TypeGround: 2, TypeFlying: 0.5, TypeBug: 0.5, TypeRock: 2,
		TypeDragon: 0.5, TypeSteel: 0.5},
	TypeElectric: {TypeWater: 2, TypeGrass: 0.5, TypeElectric: 0.5,
		TypeGround: 0, TypeFlying: 2, TypeDragon: 0.5},
	TypeIce: {TypeFire: 0.5, TypeWater: 0.5, TypeGrass: 2, TypeIce: 0.5,
		TypeGround: 2, TypeFlying: 2, TypeDragon: 2, TypeSteel: 0.5},
	TypeFighting: {TypeNormal: 2, TypeIce: 2, TypePoison: 0.5, TypeFlying: 0.5,
		TypePsychic: 0.5, TypeBug: 0.5, TypeRock: 2, TypeGhost: 0,
		TypeDark: 2, TypeSteel: 2, TypeFairy: 0.5},
	TypePoison: {TypeGrass: 2, TypePoison: 0.5, TypeGround: 0.5, TypeRock: 0.5,
		TypeGhost: 0.5, TypeSteel: 0, TypeFairy: 2},
	TypeGround: {TypeFire: 2, TypeGrass: 0.5, TypeElectric: 2, TypePoison: 2,
		TypeFlying: 0, TypeBug: 0.5, TypeRock: 2, TypeSteel: 2},
	TypeFlying: {TypeGrass: 2, TypeElectric: 0.5, TypeIce: 0.5, TypeFighting: 2,
		TypeBug: 2, TypeRock: 0.5, TypeSteel: 0.5},
	TypePsychic: {TypeFighting: 2, TypePoison: 2, TypePsychic: 0.5,
		TypeDark: 0, TypeSteel: 0.5},
	TypeBug: {TypeFire: 0.5, TypeGrass: 2, TypeFighting: 0.5, TypePoison: 0.5,
		TypeFlying: 0.5, TypePsychic: 2, TypeGhost: 0.5, TypeDark: 2,
		TypeSteel: 0.5, TypeFairy: 0.5},
	TypeRock: {TypeFire: 2, TypeIce: 2, TypeFighting: 0.5, TypeGround: 0.5,
		TypeFlying: 2, TypeBug: 2, TypeSteel: 0.5},
	TypeGhost:  {TypeNormal: 0, TypePsychic: 2, TypeGhost: 2, TypeDark: 0.5},
	TypeDragon: {TypeDragon: 2, TypeSteel: 0.5, TypeFairy: 0},
	TypeDark: {TypeFighting: 0.5, TypePsychic: 2, TypeGhost: 2, TypeDark: 0.5,
		TypeFairy: 0.5},
	TypeSteel: {TypeFire: 0.5, TypeWater: 0.5, TypeElectric: 0.5, TypeIce: 2,
		TypeRock: 2, TypeSteel: 0.5, TypeFairy: 2},
	TypeFairy: {TypeFire: 0.5, TypeFighting: 2, TypePoison: 0.5, TypeDragon: 2,
		TypeDark: 2, TypeSteel: 0.5},
}

// Effectiveness returns the combined multiplier of an attacking type against
// one or two defending types. Result is a product of per-type lookups, so it
// is one of {0, 0.25, 0.5, 1, 2, 4}.
func Effectiveness(atk Type, def ...Type) float64 {
	mult := 1.0
	for _, d := range def {
		if row, ok := typeChart[atk]; ok {
			if v, ok := row[d]; ok {
				mult *= v
			}
		}
	}
	return mult
}

// ParseType validates a raw type name from loaded data. Names are matched
// case-insensitively with surrounding whitespace ignored.
func ParseType(name string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(name)))
	if !KnownType(t) {
		return "", fmt.Errorf("resource: unknown type %q", name)
	}
	return t, nil
}
