package packets

import (
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockkeep/internal/proto"
)

func TestDecodeStartLoginRejectsLongUsername(t *testing.T) {
	buf := &proto.Buffer{}
	require.NoError(t, proto.WriteString(buf, strings.Repeat("a", 16)))

	_, err := DecodeStartLogin(buf)
	require.Error(t, err)
	var tooLong proto.StringTooLong
	require.ErrorAs(t, err, &tooLong)
	assert.Equal(t, 16, tooLong.Actual)
}

func TestOfflineUUIDIsDeterministic(t *testing.T) {
	a, err := offlineUUID("Notch")
	require.NoError(t, err)
	b, err := offlineUUID("Notch")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := offlineUUID("Herobrine")
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestEndLoginEncodeRoundTrip(t *testing.T) {
	id, err := offlineUUID("Steve")
	require.NoError(t, err)

	p := &EndLoginPacket{UUID: id, Username: "Steve"}
	buf := &proto.Buffer{}
	require.NoError(t, p.Encode(buf))

	hi, lo, err := proto.ReadUint128(buf)
	require.NoError(t, err)
	assert.Equal(t, beUint64(id[:8]), hi)
	assert.Equal(t, beUint64(id[8:]), lo)

	name, err := proto.ReadString(buf, 17)
	require.NoError(t, err)
	assert.Equal(t, "Steve", name)
}

func TestStartLoginActTransitionsIdentity(t *testing.T) {
	c := newTestConnection(t)
	c.Config.WriteDebugNBT = false
	server, client := net.Pipe()
	c.Transport = server
	t.Cleanup(func() { server.Close(); client.Close() })

	reg := proto.NewRegistry()
	require.NoError(t, reg.When(proto.StatePlay, 0x02, func(r proto.Readable) (any, error) {
		return nil, nil
	}))
	require.NoError(t, reg.When(proto.StatePlay, 0x26, func(r proto.Readable) (any, error) {
		return nil, nil
	}))

	done := make(chan error, 1)
	go func() { done <- (&StartLoginPacket{Username: "Alex"}).Act(c) }()

	// EndLoginPacket, then the JoinGamePacket it triggers.
	_, _, err := proto.ReadFrame(client, reg, proto.StatePlay)
	require.NoError(t, err)
	_, _, err = proto.ReadFrame(client, reg, proto.StatePlay)
	require.NoError(t, err)
	require.NoError(t, <-done)

	assert.Equal(t, "Alex", c.Username)
	assert.True(t, c.HasIdentity)

	spawn, err := c.World.GetChunk(spawnChunk)
	require.NoError(t, err)
	assert.Equal(t, spawnChunk, spawn.Pos)
}
