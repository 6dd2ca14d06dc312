package battle

import "github.com/kasuganosora/pokebattle/resource"

// Weather is the global weather state.
type Weather string

const (
	WeatherNone      Weather = ""
	WeatherSun       Weather = "sun"
	WeatherRain      Weather = "rain"
	WeatherSandstorm Weather = "sandstorm"
	WeatherHail      Weather = "hail"
)

// Terrain is the global terrain state.
type Terrain string

const (
	TerrainNone     Terrain = ""
	TerrainElectric Terrain = "electric"
	TerrainGrassy   Terrain = "grassy"
	TerrainMisty    Terrain = "misty"
	TerrainPsychic  Terrain = "psychic"
)

const fieldDuration = 5 // turns, for weather, terrain and screens

// Field holds battle-global conditions. Side-local conditions (screens,
// hazards) live on Side.
type Field struct {
	Weather      Weather
	WeatherTurns int
	Terrain      Terrain
	TerrainTurns int
}

func weatherForEffect(f resource.FieldEffect) (Weather, bool) {
	switch f {
	case resource.FieldSun:
		return WeatherSun, true
	case resource.FieldRain:
		return WeatherRain, true
	case resource.FieldSandstorm:
		return WeatherSandstorm, true
	case resource.FieldHail:
		return WeatherHail, true
	}
	return WeatherNone, false
}

func terrainForEffect(f resource.FieldEffect) (Terrain, bool) {
	switch f {
	case resource.FieldElectricTerrain:
		return TerrainElectric, true
	case resource.FieldGrassyTerrain:
		return TerrainGrassy, true
	case resource.FieldMistyTerrain:
		return TerrainMisty, true
	case resource.FieldPsychicTerrain:
		return TerrainPsychic, true
	}
	return TerrainNone, false
}

// weatherMultiplier scales move damage by the active weather.
func (f *Field) weatherMultiplier(moveType resource.Type) float64 {
	switch f.Weather {
	case WeatherSun:
		if moveType == resource.TypeFire {
			return 1.5
		}
		if moveType == resource.TypeWater {
			return 0.5
		}
	case WeatherRain:
		if moveType == resource.TypeWater {
			return 1.5
		}
		if moveType == resource.TypeFire {
			return 0.5
		}
	}
	return 1.0
}

// terrainMultiplier scales move damage by the active terrain. Terrain only
// affects grounded attackers (and grounded defenders for Misty).
func (f *Field) terrainMultiplier(moveType resource.Type, attackerGrounded, defenderGrounded bool) float64 {
	switch f.Terrain {
	case TerrainElectric:
		if attackerGrounded && moveType == resource.TypeElectric {
			return 1.3
		}
	case TerrainGrassy:
		if attackerGrounded && moveType == resource.TypeGrass {
			return 1.3
		}
	case TerrainPsychic:
		if attackerGrounded && moveType == resource.TypePsychic {
			return 1.3
		}
	case TerrainMisty:
		if defenderGrounded && moveType == resource.TypeDragon {
			return 0.5
		}
	}
	return 1.0
}

// grounded reports whether a combatant is affected by terrain, entry
// hazards on the ground, and Ground-type moves' terrain interactions.
func grounded(c *Combatant) bool {
	if c.AbilityTag() == resource.AbilityLevitate {
		return false
	}
	for _, t := range c.Species.Types {
		if t == resource.TypeFlying {
			return false
		}
	}
	return true
}

// immuneToWeatherChip reports whether a combatant takes no residual damage
// from the active weather.
func immuneToWeatherChip(w Weather, c *Combatant) bool {
	for _, t := range c.Species.Types {
		switch w {
		case WeatherSandstorm:
			if t == resource.TypeRock || t == resource.TypeGround || t == resource.TypeSteel {
				return true
			}
		case WeatherHail:
			if t == resource.TypeIce {
				return true
			}
		}
	}
	return false
}
