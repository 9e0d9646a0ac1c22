package proto

import "fmt"

// PacketState is one of the four protocol states. It governs which
// packet IDs are meaningful and is also half of a registry key.
type PacketState int

const (
	StateHandshake PacketState = iota
	StateStatus
	StateLogin
	StatePlay
)

func (s PacketState) String() string {
	switch s {
	case StateHandshake:
		return "Handshake"
	case StateStatus:
		return "Status"
	case StateLogin:
		return "Login"
	case StatePlay:
		return "Play"
	default:
		return fmt.Sprintf("PacketState(%d)", int(s))
	}
}

// PacketRef is the (state, id) registry key. Equality is structural,
// which a plain comparable struct already gives us as a map key.
type PacketRef struct {
	State PacketState
	ID    uint32
}

// Decoder decodes one packet body out of a Readable scratch buffer. The
// registry does not check the returned value's ID against the PacketRef
// it was registered under.
type Decoder func(r Readable) (any, error)

// Registry binds (state, id) pairs to decoder factories with no-replace
// semantics: a second registration for the same key is rejected and the
// first registration is left untouched.
type Registry struct {
	decoders map[PacketRef]Decoder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[PacketRef]Decoder)}
}

// When registers decode for (state, id). Returns CannotReplace, leaving
// the existing entry in place, if one is already registered.
func (r *Registry) When(state PacketState, id uint32, decode Decoder) error {
	ref := PacketRef{State: state, ID: id}
	if _, exists := r.decoders[ref]; exists {
		return CannotReplace{State: state, ID: id}
	}
	r.decoders[ref] = decode
	return nil
}

// Lookup returns the decoder for (state, id), or InvalidPacketID if none
// is registered.
func (r *Registry) Lookup(state PacketState, id uint32) (Decoder, error) {
	ref := PacketRef{State: state, ID: id}
	d, ok := r.decoders[ref]
	if !ok {
		return nil, InvalidPacketID{State: state, ID: id}
	}
	return d, nil
}
