package packets

import (
	"encoding/json"

	"blockkeep/internal/conn"
	"blockkeep/internal/proto"
)

const (
	// MinecraftVersion and MinecraftProtocolVersion identify the wire
	// dialect this server speaks: Java Edition 1.17, protocol 755.
	MinecraftVersion         = "1.17.0"
	MinecraftProtocolVersion = 755
)

// RequestPacket is the client's status-list ping.
type RequestPacket struct{}

func (p *RequestPacket) ID() uint32 { return 0x00 }

// DecodeRequest decodes a RequestPacket, which has no body.
func DecodeRequest(r proto.Readable) (any, error) { return &RequestPacket{}, nil }

func (p *RequestPacket) Encode(w proto.Writable) error {
	return proto.Refusal{Reason: "RequestPacket is server-bound only"}
}

// Act replies with the server's status JSON document.
func (p *RequestPacket) Act(c *conn.Connection) error {
	return c.WritePacket(&ResponsePacket{status: buildStatus(c.Config.ServerMOTD)})
}

type statusVersion struct {
	Name     string `json:"name"`
	Protocol int    `json:"protocol"`
}

type statusPlayers struct {
	Max    int   `json:"max"`
	Online int   `json:"online"`
	Sample []any `json:"sample"`
}

type statusDescription struct {
	Text string `json:"text"`
}

type statusDocument struct {
	Version     statusVersion     `json:"version"`
	Players     statusPlayers     `json:"players"`
	Description statusDescription `json:"description"`
}

func buildStatus(motd string) string {
	doc := statusDocument{
		Version:     statusVersion{Name: "blockkeep " + MinecraftVersion, Protocol: MinecraftProtocolVersion},
		Players:     statusPlayers{Max: 100, Online: 0, Sample: []any{}},
		Description: statusDescription{Text: motd},
	}
	b, _ := json.Marshal(doc)
	return string(b)
}

// ResponsePacket carries the server's status JSON back to the client.
// It is never decoded — only ever constructed by RequestPacket.Act.
type ResponsePacket struct {
	status string
}

func (p *ResponsePacket) ID() uint32 { return 0x00 }

func (p *ResponsePacket) Encode(w proto.Writable) error {
	return proto.WriteString(w, p.status)
}

func (p *ResponsePacket) Act(c *conn.Connection) error { return nil }

// PingPongPacket carries an opaque u64 either direction; the server
// echoes back exactly what it reads.
type PingPongPacket struct {
	Payload uint64
}

func (p *PingPongPacket) ID() uint32 { return 0x01 }

func DecodePingPong(r proto.Readable) (any, error) {
	v, err := proto.ReadUint64(r)
	if err != nil {
		return nil, err
	}
	return &PingPongPacket{Payload: v}, nil
}

func (p *PingPongPacket) Encode(w proto.Writable) error {
	return proto.WriteUint64(w, p.Payload)
}

// Act echoes the ping payload back verbatim.
func (p *PingPongPacket) Act(c *conn.Connection) error {
	return c.WritePacket(&PingPongPacket{Payload: p.Payload})
}
