package resource

// Built-in data set used when no data directory is configured. Covers the
// roster the demo arena and the AI presets draw from.

func (l *Loader) loadDefaults() {
	l.index(defaultSpecies, defaultMoves, defaultAbilities, defaultItems)
}

var defaultSpecies = []*Species{
	{ID: 3, Name: "Venusaur", Types: []Type{TypeGrass, TypePoison},
		BaseStats: BaseStats{HP: 80, Attack: 82, Defense: 83, SpAttack: 100, SpDefense: 100, Speed: 80},
		Abilities: []string{"Overgrow"}},
	{ID: 6, Name: "Charizard", Types: []Type{TypeFire, TypeFlying},
		BaseStats: BaseStats{HP: 78, Attack: 84, Defense: 78, SpAttack: 109, SpDefense: 85, Speed: 100},
		Abilities: []string{"Blaze"}},
	{ID: 9, Name: "Blastoise", Types: []Type{TypeWater},
		BaseStats: BaseStats{HP: 79, Attack: 83, Defense: 100, SpAttack: 85, SpDefense: 105, Speed: 78},
		Abilities: []string{"Torrent"}},
	{ID: 25, Name: "Pikachu", Types: []Type{TypeElectric},
		BaseStats: BaseStats{HP: 35, Attack: 55, Defense: 40, SpAttack: 50, SpDefense: 50, Speed: 90},
		Abilities: []string{"Static"}},
	{ID: 65, Name: "Alakazam", Types: []Type{TypePsychic},
		BaseStats: BaseStats{HP: 55, Attack: 50, Defense: 45, SpAttack: 135, SpDefense: 95, Speed: 120},
		Abilities: []string{"Neutralize"}},
	{ID: 68, Name: "Machamp", Types: []Type{TypeFighting},
		BaseStats: BaseStats{HP: 90, Attack: 130, Defense: 80, SpAttack: 65, SpDefense: 85, Speed: 55},
		Abilities: []string{"Guts"}},
	{ID: 94, Name: "Gengar", Types: []Type{TypeGhost, TypePoison},
		BaseStats: BaseStats{HP: 60, Attack: 65, Defense: 60, SpAttack: 130, SpDefense: 75, Speed: 110},
		Abilities: []string{"Levitate"}},
	{ID: 130, Name: "Gyarados", Types: []Type{TypeWater, TypeFlying},
		BaseStats: BaseStats{HP: 95, Attack: 125, Defense: 79, SpAttack: 60, SpDefense: 100, Speed: 81},
		Abilities: []string{"Intimidate"}},
	{ID: 143, Name: "Snorlax", Types: []Type{TypeNormal},
		BaseStats: BaseStats{HP: 160, Attack: 110, Defense: 65, SpAttack: 65, SpDefense: 110, Speed: 30},
		Abilities: []string{"Guts"}},
	{ID: 149, Name: "Dragonite", Types: []Type{TypeDragon, TypeFlying},
		BaseStats: BaseStats{HP: 91, Attack: 134, Defense: 95, SpAttack: 100, SpDefense: 100, Speed: 80},
		Abilities: []string{"Neutralize"}},
	{ID: 208, Name: "Steelix", Types: []Type{TypeSteel, TypeGround},
		BaseStats: BaseStats{HP: 75, Attack: 85, Defense: 200, SpAttack: 55, SpDefense: 65, Speed: 30},
		Abilities: []string{"Sturdy"}},
	{ID: 272, Name: "Ludicolo", Types: []Type{TypeWater, TypeGrass},
		BaseStats: BaseStats{HP: 80, Attack: 70, Defense: 70, SpAttack: 90, SpDefense: 100, Speed: 70},
		Abilities: []string{"Neutralize"}},
	{ID: 248, Name: "Tyranitar", Types: []Type{TypeRock, TypeDark},
		BaseStats: BaseStats{HP: 100, Attack: 134, Defense: 110, SpAttack: 95, SpDefense: 100, Speed: 61},
		Abilities: []string{"Neutralize"}},
	{ID: 473, Name: "Mamoswine", Types: []Type{TypeIce, TypeGround},
		BaseStats: BaseStats{HP: 110, Attack: 130, Defense: 80, SpAttack: 70, SpDefense: 60, Speed: 80},
		Abilities: []string{"Neutralize"}},
}

var defaultMoves = []*Move{
	// Damaging moves, no rider.
	{Name: "Tackle", Type: TypeNormal, Category: CategoryPhysical, Power: 40, Accuracy: 100, PP: 35,
		Contact: true, Effect: MoveEffect{Kind: EffectDamage}},
	{Name: "Quick Attack", Type: TypeNormal, Category: CategoryPhysical, Power: 40, Accuracy: 100, PP: 30,
		Priority: 1, Contact: true, Effect: MoveEffect{Kind: EffectDamage}},
	{Name: "Extreme Speed", Type: TypeNormal, Category: CategoryPhysical, Power: 80, Accuracy: 100, PP: 5,
		Priority: 2, Contact: true, Effect: MoveEffect{Kind: EffectDamage}},
	{Name: "Surf", Type: TypeWater, Category: CategorySpecial, Power: 90, Accuracy: 100, PP: 15,
		Effect: MoveEffect{Kind: EffectDamage}},
	{Name: "Hydro Pump", Type: TypeWater, Category: CategorySpecial, Power: 110, Accuracy: 80, PP: 5,
		Effect: MoveEffect{Kind: EffectDamage}},
	{Name: "Waterfall", Type: TypeWater, Category: CategoryPhysical, Power: 80, Accuracy: 100, PP: 15,
		Contact: true, Effect: MoveEffect{Kind: EffectDamage},
		Secondary: &Secondary{Chance: 0.20, Volatile: VolatileFlinched}},
	{Name: "Earthquake", Type: TypeGround, Category: CategoryPhysical, Power: 100, Accuracy: 100, PP: 10,
		Effect: MoveEffect{Kind: EffectDamage}},
	{Name: "Psychic", Type: TypePsychic, Category: CategorySpecial, Power: 90, Accuracy: 100, PP: 10,
		Effect:    MoveEffect{Kind: EffectDamage},
		Secondary: &Secondary{Chance: 0.10, StatChanges: []StatChange{{Stat: StatSpDefense, Stages: -1}}}},
	{Name: "Shadow Ball", Type: TypeGhost, Category: CategorySpecial, Power: 80, Accuracy: 100, PP: 15,
		Effect:    MoveEffect{Kind: EffectDamage},
		Secondary: &Secondary{Chance: 0.20, StatChanges: []StatChange{{Stat: StatSpDefense, Stages: -1}}}},
	{Name: "Sludge Bomb", Type: TypePoison, Category: CategorySpecial, Power: 90, Accuracy: 100, PP: 10,
		Effect:    MoveEffect{Kind: EffectDamage},
		Secondary: &Secondary{Chance: 0.30, Status: StatusPoisoned}},
	{Name: "Thunderbolt", Type: TypeElectric, Category: CategorySpecial, Power: 90, Accuracy: 100, PP: 15,
		Effect:    MoveEffect{Kind: EffectDamage},
		Secondary: &Secondary{Chance: 0.10, Status: StatusParalyzed}},
	{Name: "Thunder", Type: TypeElectric, Category: CategorySpecial, Power: 110, Accuracy: 70, PP: 10,
		Effect:    MoveEffect{Kind: EffectDamage},
		Secondary: &Secondary{Chance: 0.30, Status: StatusParalyzed}},
	{Name: "Ice Beam", Type: TypeIce, Category: CategorySpecial, Power: 90, Accuracy: 100, PP: 10,
		Effect:    MoveEffect{Kind: EffectDamage},
		Secondary: &Secondary{Chance: 0.10, Status: StatusFrozen}},
	{Name: "Flamethrower", Type: TypeFire, Category: CategorySpecial, Power: 90, Accuracy: 100, PP: 15,
		Effect:    MoveEffect{Kind: EffectDamage},
		Secondary: &Secondary{Chance: 0.10, Status: StatusBurned}},
	{Name: "Fire Blast", Type: TypeFire, Category: CategorySpecial, Power: 110, Accuracy: 85, PP: 5,
		Effect:    MoveEffect{Kind: EffectDamage},
		Secondary: &Secondary{Chance: 0.10, Status: StatusBurned}},
	{Name: "Fire Punch", Type: TypeFire, Category: CategoryPhysical, Power: 75, Accuracy: 100, PP: 15,
		Contact: true, Effect: MoveEffect{Kind: EffectDamage},
		Secondary: &Secondary{Chance: 0.10, Status: StatusBurned}},
	{Name: "Ice Punch", Type: TypeIce, Category: CategoryPhysical, Power: 75, Accuracy: 100, PP: 15,
		Contact: true, Effect: MoveEffect{Kind: EffectDamage},
		Secondary: &Secondary{Chance: 0.10, Status: StatusFrozen}},
	{Name: "Air Slash", Type: TypeFlying, Category: CategorySpecial, Power: 75, Accuracy: 95, PP: 15,
		Effect:    MoveEffect{Kind: EffectDamage},
		Secondary: &Secondary{Chance: 0.30, Volatile: VolatileFlinched}},
	{Name: "Dragon Pulse", Type: TypeDragon, Category: CategorySpecial, Power: 85, Accuracy: 100, PP: 10,
		Effect: MoveEffect{Kind: EffectDamage}},
	{Name: "Outrage", Type: TypeDragon, Category: CategoryPhysical, Power: 120, Accuracy: 100, PP: 10,
		Contact: true, Effect: MoveEffect{Kind: EffectDamage}},
	{Name: "Close Combat", Type: TypeFighting, Category: CategoryPhysical, Power: 120, Accuracy: 100, PP: 5,
		Contact: true, Effect: MoveEffect{Kind: EffectDamage,
			StatChanges: []StatChange{{Stat: StatDefense, Stages: -1, Self: true}, {Stat: StatSpDefense, Stages: -1, Self: true}}}},
	{Name: "Cross Chop", Type: TypeFighting, Category: CategoryPhysical, Power: 100, Accuracy: 80, PP: 5,
		Contact: true, HighCrit: true, Effect: MoveEffect{Kind: EffectDamage}},
	{Name: "Stone Edge", Type: TypeRock, Category: CategoryPhysical, Power: 100, Accuracy: 80, PP: 5,
		HighCrit: true, Effect: MoveEffect{Kind: EffectDamage}},
	{Name: "Crunch", Type: TypeDark, Category: CategoryPhysical, Power: 80, Accuracy: 100, PP: 15,
		Contact: true, Effect: MoveEffect{Kind: EffectDamage},
		Secondary: &Secondary{Chance: 0.20, StatChanges: []StatChange{{Stat: StatDefense, Stages: -1}}}},
	{Name: "Iron Head", Type: TypeSteel, Category: CategoryPhysical, Power: 80, Accuracy: 100, PP: 15,
		Contact: true, Effect: MoveEffect{Kind: EffectDamage},
		Secondary: &Secondary{Chance: 0.30, Volatile: VolatileFlinched}},
	{Name: "Energy Ball", Type: TypeGrass, Category: CategorySpecial, Power: 90, Accuracy: 100, PP: 10,
		Effect:    MoveEffect{Kind: EffectDamage},
		Secondary: &Secondary{Chance: 0.10, StatChanges: []StatChange{{Stat: StatSpDefense, Stages: -1}}}},
	{Name: "Giga Drain", Type: TypeGrass, Category: CategorySpecial, Power: 75, Accuracy: 100, PP: 10,
		Effect: MoveEffect{Kind: EffectDamage, Drain: 0.5}},
	{Name: "Brave Bird", Type: TypeFlying, Category: CategoryPhysical, Power: 120, Accuracy: 100, PP: 15,
		Contact: true, Effect: MoveEffect{Kind: EffectDamage, Recoil: 1.0 / 3.0}},
	{Name: "Double-Edge", Type: TypeNormal, Category: CategoryPhysical, Power: 120, Accuracy: 100, PP: 15,
		Contact: true, Effect: MoveEffect{Kind: EffectDamage, Recoil: 1.0 / 3.0}},

	// Fixed damage and OHKO.
	{Name: "Seismic Toss", Type: TypeFighting, Category: CategoryPhysical, Power: 0, Accuracy: 100, PP: 20,
		Contact: true, Effect: MoveEffect{Kind: EffectFixedDamage, FixedAmount: 50}},
	{Name: "Dragon Rage", Type: TypeDragon, Category: CategorySpecial, Power: 0, Accuracy: 100, PP: 10,
		Effect: MoveEffect{Kind: EffectFixedDamage, FixedAmount: 40}},
	{Name: "Fissure", Type: TypeGround, Category: CategoryPhysical, Power: 0, Accuracy: 30, PP: 5,
		Effect: MoveEffect{Kind: EffectOHKO}},

	// Status inflictors.
	{Name: "Thunder Wave", Type: TypeElectric, Category: CategoryStatus, Power: 0, Accuracy: 90, PP: 20,
		Effect: MoveEffect{Kind: EffectStatusInflict, Status: StatusParalyzed}},
	{Name: "Toxic", Type: TypePoison, Category: CategoryStatus, Power: 0, Accuracy: 90, PP: 10,
		Effect: MoveEffect{Kind: EffectStatusInflict, Status: StatusBadlyPoisoned}},
	{Name: "Will-O-Wisp", Type: TypeFire, Category: CategoryStatus, Power: 0, Accuracy: 85, PP: 15,
		Effect: MoveEffect{Kind: EffectStatusInflict, Status: StatusBurned}},
	{Name: "Hypnosis", Type: TypePsychic, Category: CategoryStatus, Power: 0, Accuracy: 60, PP: 20,
		Effect: MoveEffect{Kind: EffectStatusInflict, Status: StatusAsleep, MinTurns: 1, MaxTurns: 3}},
	{Name: "Sleep Powder", Type: TypeGrass, Category: CategoryStatus, Power: 0, Accuracy: 75, PP: 15,
		Effect: MoveEffect{Kind: EffectStatusInflict, Status: StatusAsleep, MinTurns: 1, MaxTurns: 3}},
	{Name: "Confuse Ray", Type: TypeGhost, Category: CategoryStatus, Power: 0, Accuracy: 100, PP: 10,
		Effect: MoveEffect{Kind: EffectStatusInflict, Volatile: VolatileConfused, MinTurns: 2, MaxTurns: 5}},
	{Name: "Wrap", Type: TypeNormal, Category: CategoryPhysical, Power: 15, Accuracy: 90, PP: 20,
		Contact: true, Effect: MoveEffect{Kind: EffectDamage},
		Secondary: &Secondary{Chance: 1.0, Volatile: VolatileBound, MinTurns: 4, MaxTurns: 5}},
	{Name: "Leech Seed", Type: TypeGrass, Category: CategoryStatus, Power: 0, Accuracy: 90, PP: 10,
		Effect: MoveEffect{Kind: EffectStatusInflict, Volatile: VolatileLeechSeed}},

	// Stat stages.
	{Name: "Swords Dance", Type: TypeNormal, Category: CategoryStatus, Power: 0, Accuracy: 0, PP: 20,
		Effect: MoveEffect{Kind: EffectStatChange,
			StatChanges: []StatChange{{Stat: StatAttack, Stages: 2, Self: true}}}},
	{Name: "Dragon Dance", Type: TypeDragon, Category: CategoryStatus, Power: 0, Accuracy: 0, PP: 20,
		Effect: MoveEffect{Kind: EffectStatChange,
			StatChanges: []StatChange{{Stat: StatAttack, Stages: 1, Self: true}, {Stat: StatSpeed, Stages: 1, Self: true}}}},
	{Name: "Calm Mind", Type: TypePsychic, Category: CategoryStatus, Power: 0, Accuracy: 0, PP: 20,
		Effect: MoveEffect{Kind: EffectStatChange,
			StatChanges: []StatChange{{Stat: StatSpAttack, Stages: 1, Self: true}, {Stat: StatSpDefense, Stages: 1, Self: true}}}},
	{Name: "Growl", Type: TypeNormal, Category: CategoryStatus, Power: 0, Accuracy: 100, PP: 40,
		Effect: MoveEffect{Kind: EffectStatChange,
			StatChanges: []StatChange{{Stat: StatAttack, Stages: -1}}}},
	{Name: "Screech", Type: TypeNormal, Category: CategoryStatus, Power: 0, Accuracy: 85, PP: 40,
		Effect: MoveEffect{Kind: EffectStatChange,
			StatChanges: []StatChange{{Stat: StatDefense, Stages: -2}}}},
	{Name: "Double Team", Type: TypeNormal, Category: CategoryStatus, Power: 0, Accuracy: 0, PP: 15,
		Effect: MoveEffect{Kind: EffectStatChange,
			StatChanges: []StatChange{{Stat: StatEvasion, Stages: 1, Self: true}}}},
	{Name: "Focus Energy", Type: TypeNormal, Category: CategoryStatus, Power: 0, Accuracy: 0, PP: 30,
		Effect: MoveEffect{Kind: EffectStatusInflict, Volatile: VolatileFocusEnergy}},
	{Name: "Substitute", Type: TypeNormal, Category: CategoryStatus, Power: 0, Accuracy: 0, PP: 10,
		Effect: MoveEffect{Kind: EffectStatusInflict, Volatile: VolatileSubstitute}},

	// Healing.
	{Name: "Recover", Type: TypeNormal, Category: CategoryStatus, Power: 0, Accuracy: 0, PP: 10,
		Effect: MoveEffect{Kind: EffectHeal, HealFraction: 0.5}},
	{Name: "Roost", Type: TypeFlying, Category: CategoryStatus, Power: 0, Accuracy: 0, PP: 10,
		Effect: MoveEffect{Kind: EffectHeal, HealFraction: 0.5}},
	{Name: "Synthesis", Type: TypeGrass, Category: CategoryStatus, Power: 0, Accuracy: 0, PP: 5,
		Effect: MoveEffect{Kind: EffectHeal, HealFraction: 0.5}},

	// Field effects.
	{Name: "Sunny Day", Type: TypeFire, Category: CategoryStatus, Power: 0, Accuracy: 0, PP: 5,
		Effect: MoveEffect{Kind: EffectField, Field: FieldSun}},
	{Name: "Rain Dance", Type: TypeWater, Category: CategoryStatus, Power: 0, Accuracy: 0, PP: 5,
		Effect: MoveEffect{Kind: EffectField, Field: FieldRain}},
	{Name: "Sandstorm", Type: TypeRock, Category: CategoryStatus, Power: 0, Accuracy: 0, PP: 10,
		Effect: MoveEffect{Kind: EffectField, Field: FieldSandstorm}},
	{Name: "Hail", Type: TypeIce, Category: CategoryStatus, Power: 0, Accuracy: 0, PP: 10,
		Effect: MoveEffect{Kind: EffectField, Field: FieldHail}},
	{Name: "Electric Terrain", Type: TypeElectric, Category: CategoryStatus, Power: 0, Accuracy: 0, PP: 10,
		Effect: MoveEffect{Kind: EffectField, Field: FieldElectricTerrain}},
	{Name: "Grassy Terrain", Type: TypeGrass, Category: CategoryStatus, Power: 0, Accuracy: 0, PP: 10,
		Effect: MoveEffect{Kind: EffectField, Field: FieldGrassyTerrain}},
	{Name: "Reflect", Type: TypePsychic, Category: CategoryStatus, Power: 0, Accuracy: 0, PP: 20,
		Effect: MoveEffect{Kind: EffectField, Field: FieldReflect}},
	{Name: "Light Screen", Type: TypePsychic, Category: CategoryStatus, Power: 0, Accuracy: 0, PP: 30,
		Effect: MoveEffect{Kind: EffectField, Field: FieldLightScreen}},
	{Name: "Stealth Rock", Type: TypeRock, Category: CategoryStatus, Power: 0, Accuracy: 0, PP: 20,
		Effect: MoveEffect{Kind: EffectField, Field: FieldStealthRock}},
	{Name: "Spikes", Type: TypeGround, Category: CategoryStatus, Power: 0, Accuracy: 0, PP: 20,
		Effect: MoveEffect{Kind: EffectField, Field: FieldSpikes}},

	// Forced switch.
	{Name: "U-turn", Type: TypeBug, Category: CategoryPhysical, Power: 70, Accuracy: 100, PP: 20,
		Contact: true, Effect: MoveEffect{Kind: EffectSwitch}},
}

var defaultAbilities = []*Ability{
	{Name: "Blaze", Tag: AbilityBlaze, Description: "Boosts Fire moves at low HP."},
	{Name: "Torrent", Tag: AbilityTorrent, Description: "Boosts Water moves at low HP."},
	{Name: "Overgrow", Tag: AbilityOvergrow, Description: "Boosts Grass moves at low HP."},
	{Name: "Levitate", Tag: AbilityLevitate, Description: "Immune to Ground moves."},
	{Name: "Static", Tag: AbilityStatic, Description: "Contact may paralyze the attacker."},
	{Name: "Guts", Tag: AbilityGuts, Description: "Attack boosted while statused; no burn attack drop."},
	{Name: "Intimidate", Tag: AbilityIntimidate, Description: "Lowers the opposing Attack on entry."},
	{Name: "Sturdy", Tag: AbilitySturdy, Description: "Survives a one-hit KO from full HP."},
	{Name: "Neutralize", Tag: AbilityNone, Description: "No battle effect."},
}

var defaultItems = []*Item{
	{Name: "Leftovers", Tag: ItemLeftovers},
	{Name: "Life Orb", Tag: ItemLifeOrb},
	{Name: "Choice Band", Tag: ItemChoiceBand},
	{Name: "Choice Specs", Tag: ItemChoiceSpecs},
	{Name: "Focus Sash", Tag: ItemFocusSash},
}
