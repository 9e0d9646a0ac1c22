package packets

// DimensionType mirrors the NBT shape Java Edition 1.17 expects for a
// dimension-type registry entry.
type DimensionType struct {
	PiglinSafe         bool    `nbt:"piglin_safe"`
	Natural            bool    `nbt:"natural"`
	AmbientLight       float32 `nbt:"ambient_light"`
	Infiniburn         string  `nbt:"infiniburn"`
	RespawnAnchorWorks bool    `nbt:"respawn_anchor_works"`
	HasSkylight        bool    `nbt:"has_skylight"`
	BedWorks           bool    `nbt:"bed_works"`
	Effects            string  `nbt:"effects"`
	HasRaids           bool    `nbt:"has_raids"`
	MinY               int32   `nbt:"min_y"`
	Height             int32   `nbt:"height"`
	LogicalHeight      int32   `nbt:"logical_height"`
	CoordinateScale    float64 `nbt:"coordinate_scale"`
	Ultrawarm          bool    `nbt:"ultrawarm"`
	HasCeiling         bool    `nbt:"has_ceiling"`
}

// OverworldDimension is the only dimension type this server offers.
var OverworldDimension = DimensionType{
	PiglinSafe:         false,
	Natural:            true,
	AmbientLight:       0.0,
	Infiniburn:         "minecraft:infiniburn_overworld",
	RespawnAnchorWorks: false,
	HasSkylight:        true,
	BedWorks:           true,
	Effects:            "minecraft:overworld",
	HasRaids:           true,
	MinY:               0,
	Height:             256,
	LogicalHeight:      256,
	CoordinateScale:    1.0,
	Ultrawarm:          false,
	HasCeiling:         false,
}

// BiomeEffects is the visual/ambient tuning for one biome entry.
type BiomeEffects struct {
	SkyColor      int32  `nbt:"sky_color"`
	WaterFogColor int32  `nbt:"water_fog_color"`
	FogColor      int32  `nbt:"fog_color"`
	WaterColor    int32  `nbt:"water_color"`
	MoodSound     *Sound `nbt:"mood_sound,omitempty"`
}

// Sound is an ambient mood-sound reference.
type Sound struct {
	Sound             string  `nbt:"sound"`
	TickDelay         int32   `nbt:"tick_delay"`
	Offset            float64 `nbt:"offset"`
	BlockSearchExtent int32   `nbt:"block_search_extent"`
}

// Biome mirrors the NBT shape Java Edition 1.17 expects for a biome
// registry entry.
type Biome struct {
	Precipitation string       `nbt:"precipitation"`
	Depth         float32      `nbt:"depth"`
	Temperature   float32      `nbt:"temperature"`
	Scale         float32      `nbt:"scale"`
	Downfall      float32      `nbt:"downfall"`
	Category      string       `nbt:"category"`
	Effects       BiomeEffects `nbt:"effects"`
}

// OceanBiome is the only biome this server offers.
var OceanBiome = Biome{
	Precipitation: "rain",
	Depth:         -1.0,
	Temperature:   0.5,
	Scale:         0.1,
	Downfall:      0.5,
	Category:      "ocean",
	Effects: BiomeEffects{
		SkyColor:      8103167,
		WaterFogColor: 329011,
		FogColor:      12638463,
		WaterColor:    4159204,
		MoodSound: &Sound{
			Sound:             "minecraft:ambient.cave",
			TickDelay:         6000,
			Offset:            2.0,
			BlockSearchExtent: 8,
		},
	},
}
