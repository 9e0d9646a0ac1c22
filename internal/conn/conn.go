// Package conn implements the per-connection protocol state machine: the
// Connection type, its packet framing, and the read loop that drives
// Handshake -> Status | Login -> Play. The registry bootstrap lives in
// package packets (Bootstrap).
package conn

import (
	"net"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"blockkeep/internal/config"
	"blockkeep/internal/proto"
	"blockkeep/internal/world"
)

// Packet is any decodable/encodable protocol unit. Act is only ever
// invoked by the read loop after a successful inbound decode — per
// spec.md §9's resolved open question, outbound encodes never run Act.
type Packet interface {
	ID() uint32
	Encode(w proto.Writable) error
	Act(c *Connection) error
}

// Connection owns one accepted stream transport and the protocol state
// built up over its lifetime. Created when accept returns; destroyed
// when the read loop exits.
type Connection struct {
	Transport net.Conn
	State     proto.PacketState
	Registry  *proto.Registry
	Config    config.Snapshot
	Log       *logrus.Entry
	World     *world.Store

	Username    string
	UUID        uuid.UUID
	HasIdentity bool
}

// New wraps an accepted socket into a fresh Connection in the initial
// Handshake state, with an empty registry callers must bootstrap via
// Bootstrap (see register.go). store is the world this connection's
// Play-state packets read and write through; it is shared by every
// connection the listener accepts.
func New(transport net.Conn, cfg config.Snapshot, log *logrus.Entry, store *world.Store) *Connection {
	return &Connection{
		Transport: transport,
		State:     proto.StateHandshake,
		Registry:  proto.NewRegistry(),
		Config:    cfg,
		Log:       log,
		World:     store,
	}
}

// Read implements proto.Readable over the underlying socket, translating
// I/O faults into the protocol's error taxonomy.
func (c *Connection) Read(p []byte) (int, error) {
	n, err := c.Transport.Read(p)
	if err != nil {
		return n, proto.IoError{Err: err}
	}
	return n, nil
}

// Write implements proto.Writable over the underlying socket.
func (c *Connection) Write(p []byte) (int, error) {
	n, err := c.Transport.Write(p)
	if err != nil {
		return n, proto.IoError{Err: err}
	}
	return n, nil
}

// ReadPacket performs the inbound half of framing (§4.2): read a frame,
// look up its decoder for the connection's current state, and decode its
// body. It does not invoke Act — the caller's read loop does, after the
// frame has been fully consumed.
func (c *Connection) ReadPacket() (Packet, error) {
	_, decoded, err := proto.ReadFrame(c, c.Registry, c.State)
	if err != nil {
		return nil, err
	}
	packet, ok := decoded.(Packet)
	if !ok {
		return nil, proto.Refusal{Reason: "decoder did not yield a Packet"}
	}
	return packet, nil
}

// WritePacket performs the outbound half of framing (§4.2): write the id
// and the packet's encoded body to the transport. It never calls Act.
func (c *Connection) WritePacket(p Packet) error {
	return proto.WriteFrame(c, p.ID(), p.Encode)
}
