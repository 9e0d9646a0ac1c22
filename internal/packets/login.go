package packets

import (
	"github.com/google/uuid"

	"blockkeep/internal/conn"
	"blockkeep/internal/proto"
)

// StartLoginPacket begins login: just the requested username.
type StartLoginPacket struct {
	Username string
}

func (p *StartLoginPacket) ID() uint32 { return 0x00 }

// DecodeStartLogin parses a StartLoginPacket, rejecting a username at or
// beyond 16 bytes with StringTooLong.
func DecodeStartLogin(r proto.Readable) (any, error) {
	username, err := proto.ReadString(r, 16)
	if err != nil {
		return nil, err
	}
	return &StartLoginPacket{Username: username}, nil
}

func (p *StartLoginPacket) Encode(w proto.Writable) error {
	return proto.Refusal{Reason: "StartLoginPacket is server-bound only"}
}

// Act derives the connection's offline-mode identity, replies with
// EndLoginPacket, then transitions to Play and sends the initial
// JoinGamePacket. Outbound encodes never invoke Act (see
// EndLoginPacket.Act), so the whole login sequence has to run from this
// one inbound Act rather than being split across the packets it sends.
func (p *StartLoginPacket) Act(c *conn.Connection) error {
	id, err := offlineUUID(p.Username)
	if err != nil {
		return err
	}
	c.Username = p.Username
	c.UUID = id
	c.HasIdentity = true

	c.Log.WithFields(map[string]any{
		"username": c.Username,
		"uuid":     c.UUID.String(),
	}).Info("player has joined")

	if err := c.WritePacket(&EndLoginPacket{UUID: id, Username: p.Username}); err != nil {
		return err
	}

	c.Log.WithField("next_state", "Play").Info("state swap occurring")
	c.State = proto.StatePlay
	if err := c.WritePacket(NewJoinGamePacket()); err != nil {
		return err
	}
	PrepareSpawn(c)
	return nil
}

// EndLoginPacket confirms login and carries the player's identity. It is
// constructed server-side only.
type EndLoginPacket struct {
	UUID     uuid.UUID
	Username string
}

func (p *EndLoginPacket) ID() uint32 { return 0x02 }

func (p *EndLoginPacket) Encode(w proto.Writable) error {
	hi := beUint64(p.UUID[:8])
	lo := beUint64(p.UUID[8:])
	if err := proto.WriteUint128(w, hi, lo); err != nil {
		return err
	}
	return proto.WriteString(w, p.Username)
}

// Act is never invoked: EndLoginPacket is only ever written by the
// server, and outbound encodes never run Act. StartLoginPacket.Act
// carries out the state transition and JoinGamePacket send this would
// otherwise have done.
func (p *EndLoginPacket) Act(c *conn.Connection) error { return nil }

func beUint64(b []byte) uint64 {
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v
}
