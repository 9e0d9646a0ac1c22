package packets

import (
	"net"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockkeep/internal/config"
	"blockkeep/internal/conn"
	"blockkeep/internal/proto"
	"blockkeep/internal/world"
)

func newTestConnection(t *testing.T) *conn.Connection {
	t.Helper()
	server, client := net.Pipe()
	t.Cleanup(func() { server.Close(); client.Close() })

	log := logrus.New()
	log.SetOutput(nullWriter{})
	entry := logrus.NewEntry(log)

	store, err := world.NewStore(filepath.Join(t.TempDir(), "world.sng"), entry)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	c := conn.New(server, config.Defaults(), entry, store)
	require.NoError(t, Bootstrap(c))
	return c
}

type nullWriter struct{}

func (nullWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestRequestActWritesStatusResponse(t *testing.T) {
	c := newTestConnection(t)
	server, client := net.Pipe()
	c.Transport = server
	t.Cleanup(func() { server.Close(); client.Close() })

	reg := proto.NewRegistry()
	require.NoError(t, reg.When(proto.StateStatus, 0x00, func(r proto.Readable) (any, error) {
		s, err := proto.ReadString(r, 1<<20)
		return s, err
	}))

	done := make(chan error, 1)
	go func() { done <- (&RequestPacket{}).Act(c) }()

	_, packet, err := proto.ReadFrame(client, reg, proto.StateStatus)
	require.NoError(t, err)
	assert.Contains(t, packet.(string), "Hello, World!")
	require.NoError(t, <-done)
}

func TestPingPongEchoesPayload(t *testing.T) {
	p := &PingPongPacket{Payload: 0xdeadbeef}
	buf := &proto.Buffer{}
	require.NoError(t, p.Encode(buf))
	decoded, err := DecodePingPong(buf)
	require.NoError(t, err)
	assert.Equal(t, p.Payload, decoded.(*PingPongPacket).Payload)
}

func TestBuildStatusCarriesProtocolAndMOTD(t *testing.T) {
	doc := buildStatus("Welcome!")
	assert.Contains(t, doc, "Welcome!")
	assert.Contains(t, doc, "755")
}
