package packets

import (
	"os"

	"github.com/sandertv/gophertunnel/minecraft/nbt"

	"blockkeep/internal/conn"
	"blockkeep/internal/proto"
	"blockkeep/internal/world"
)

var overworldName = proto.Overworld.String()

// dimensionCodec is the combined dimension-type/biome registry JoinGame
// embeds. Built once; this server only ever offers one of each.
type dimensionCodec struct {
	DimensionType registryWire[DimensionType] `nbt:"minecraft:dimension_type"`
	Biome         registryWire[Biome]         `nbt:"minecraft:worldgen/biome"`
}

func buildCodec() []byte {
	dims := &Registry[DimensionType]{Name: "minecraft:dimension_type"}
	dims.Register(overworldName, OverworldDimension)

	biomes := &Registry[Biome]{Name: "minecraft:worldgen/biome"}
	biomes.Register("minecraft:ocean", OceanBiome)

	codec := dimensionCodec{
		DimensionType: registryWire[DimensionType]{Type: dims.Name, Entries: dims.Entries},
		Biome:         registryWire[Biome]{Type: biomes.Name, Entries: biomes.Entries},
	}
	b, _ := nbt.MarshalEncoding(codec, nbt.BigEndian)
	return b
}

func buildCurrentDimension() []byte {
	b, _ := nbt.MarshalEncoding(OverworldDimension, nbt.BigEndian)
	return b
}

// JoinGamePacket is the first Play packet sent to a newly logged-in
// player: entity id, gamemode, the dimension registry, and view settings.
// It is constructed server-side only.
type JoinGamePacket struct {
	EntityID     int32
	ViewDistance int32
}

// NewJoinGamePacket builds the fixed JoinGamePacket this server always
// sends: a single player entering the single overworld it offers.
func NewJoinGamePacket() *JoinGamePacket {
	return &JoinGamePacket{EntityID: 0, ViewDistance: 4}
}

func (p *JoinGamePacket) ID() uint32 { return 0x26 }

// Encode writes the JoinGame body per spec.md §4.4's field sequence.
func (p *JoinGamePacket) Encode(w proto.Writable) error {
	if err := proto.WriteInt32(w, p.EntityID); err != nil {
		return err
	}
	if err := proto.WriteBool(w, false); err != nil { // is hardcore
		return err
	}
	if err := proto.WriteUint8(w, 0); err != nil { // gamemode: survival
		return err
	}
	if err := proto.WriteInt8(w, -1); err != nil { // previous gamemode: none
		return err
	}
	if err := proto.WriteVarInt(w, 1); err != nil { // worlds count
		return err
	}
	if err := proto.WriteString(w, overworldName); err != nil {
		return err
	}
	// The NBT codec is self-delimiting; no length prefix precedes it.
	if _, err := w.Write(buildCodec()); err != nil {
		return proto.IoError{Err: err}
	}
	if _, err := w.Write(buildCurrentDimension()); err != nil {
		return proto.IoError{Err: err}
	}
	if err := proto.WriteString(w, overworldName); err != nil {
		return err
	}
	if err := proto.WriteUint64(w, 0); err != nil { // hashed seed
		return err
	}
	if err := proto.WriteVarInt(w, 0); err != nil { // max players (unused legacy field)
		return err
	}
	if err := proto.WriteVarInt(w, p.ViewDistance); err != nil {
		return err
	}
	if err := proto.WriteBool(w, false); err != nil { // reduced debug info
		return err
	}
	if err := proto.WriteBool(w, true); err != nil { // enable respawn screen
		return err
	}
	if err := proto.WriteBool(w, false); err != nil { // debug world
		return err
	}
	return proto.WriteBool(w, false) // flat world
}

// Act is never invoked: JoinGamePacket is only ever written by the
// server, and outbound encodes never run Act. PrepareSpawn carries the
// side effects this would otherwise have done.
func (p *JoinGamePacket) Act(c *conn.Connection) error { return nil }

// spawnChunk is the one chunk position every joining player's world is
// guaranteed to have loaded, mirroring the original prototype's
// boot-time w.load_chunk(0, 0, 0).
var spawnChunk = world.Pos{X: 0, Y: 0, Z: 0}

// PrepareSpawn loads the spawn chunk through the connection's world
// store and, when the connection's config asks for it, dumps the
// dimension codec to debug.nbt. Called directly by whatever sends the
// JoinGamePacket, since Act on an outbound-only packet never runs.
func PrepareSpawn(c *conn.Connection) {
	if c.World != nil {
		if _, err := c.World.LoadChunk(spawnChunk); err != nil {
			c.Log.WithError(err).Warn("failed to load spawn chunk")
		}
	}
	if !c.Config.WriteDebugNBT {
		return
	}
	if err := os.WriteFile("debug.nbt", buildCodec(), 0o644); err != nil {
		c.Log.WithError(err).Warn("failed to write debug.nbt")
	}
}
