package packets

import (
	"sort"

	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

// Registry builds one of the tagged-compound registries JoinGame embeds
// (dimension types, biomes): a named list of entries, each assigned the
// lowest id not already taken. Carried over from the Rust prototype's
// registry.rs, which this mirrors field-for-field.
type Registry[T any] struct {
	Name    string
	Entries []RegistryEntry[T]
}

// RegistryEntry is one named, numbered element of a Registry.
type RegistryEntry[T any] struct {
	Name    string `nbt:"name"`
	ID      int32  `nbt:"id"`
	Element T      `nbt:"element"`
}

type registryWire[T any] struct {
	Type    string             `nbt:"type"`
	Entries []RegistryEntry[T] `nbt:"value"`
}

// Register appends value under name, assigning it the lowest id not
// already used by an existing entry.
func (r *Registry[T]) Register(name string, value T) {
	sort.Slice(r.Entries, func(i, j int) bool { return r.Entries[i].ID < r.Entries[j].ID })

	var id int32
	for _, e := range r.Entries {
		if e.ID == id {
			id++
		} else {
			break
		}
	}

	r.Entries = append(r.Entries, RegistryEntry[T]{Name: name, ID: id, Element: value})
}

// Encode serializes the registry as a big-endian NBT compound, the form
// JoinGame's dimension codec expects. The result is opaque from the
// packet's point of view — nothing downstream inspects its structure.
func (r *Registry[T]) Encode() ([]byte, error) {
	wire := registryWire[T]{Type: r.Name, Entries: r.Entries}
	return nbt.MarshalEncoding(wire, nbt.BigEndian)
}
