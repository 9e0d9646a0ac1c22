package packets

import (
	"blockkeep/internal/conn"
	"blockkeep/internal/proto"
)

// Bootstrap binds the fixed decoder table from spec.md §4.3 into c's
// registry. A CannotReplace here is a programmer error — two decoders
// fighting over one (state, id) — and is not something a connection can
// recover from, so the caller is expected to treat it as fatal.
func Bootstrap(c *conn.Connection) error {
	reg := c.Registry
	bindings := []struct {
		state proto.PacketState
		id    uint32
		dec   proto.Decoder
	}{
		{proto.StateHandshake, 0x00, DecodeHandshake},
		{proto.StateStatus, 0x00, DecodeRequest},
		{proto.StateStatus, 0x01, DecodePingPong},
		{proto.StateLogin, 0x00, DecodeStartLogin},
	}
	for _, b := range bindings {
		if err := reg.When(b.state, b.id, b.dec); err != nil {
			return err
		}
	}
	return nil
}
