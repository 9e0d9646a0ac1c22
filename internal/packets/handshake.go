package packets

import (
	"fmt"

	"blockkeep/internal/conn"
	"blockkeep/internal/proto"
)

// HandshakePacket is the client's first word: intended protocol version,
// the address/port it dialed, and which of Status/Login it wants next.
type HandshakePacket struct {
	ProtocolVersion int32
	Address         string
	Port            uint16
	Next            proto.PacketState
}

func (p *HandshakePacket) ID() uint32 { return 0x00 }

// DecodeHandshake parses a HandshakePacket body. An out-of-range next
// value is a fatal decode error — there is no recovering a handshake
// that doesn't name a real next state.
func DecodeHandshake(r proto.Readable) (any, error) {
	protoVersion, err := proto.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	address, err := proto.ReadString(r, 256)
	if err != nil {
		return nil, err
	}
	port, err := proto.ReadUint16(r)
	if err != nil {
		return nil, err
	}
	nextRaw, err := proto.ReadVarInt(r)
	if err != nil {
		return nil, err
	}

	var next proto.PacketState
	switch nextRaw {
	case 1:
		next = proto.StateStatus
	case 2:
		next = proto.StateLogin
	default:
		return nil, proto.IoError{Err: fmt.Errorf("invalid handshake next value %d", nextRaw)}
	}

	return &HandshakePacket{
		ProtocolVersion: protoVersion,
		Address:         address,
		Port:            port,
		Next:            next,
	}, nil
}

// Encode is never called: HandshakePacket is server-bound only.
func (p *HandshakePacket) Encode(w proto.Writable) error {
	return proto.Refusal{Reason: "HandshakePacket is server-bound only"}
}

// Act transitions the connection into whichever state the handshake
// named.
func (p *HandshakePacket) Act(c *conn.Connection) error {
	c.Log.WithField("next_state", p.Next).Info("state swap occurring")
	c.State = p.Next
	return nil
}
