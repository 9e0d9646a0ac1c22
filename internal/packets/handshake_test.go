package packets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockkeep/internal/proto"
)

func TestDecodeHandshakeToStatus(t *testing.T) {
	buf := &proto.Buffer{}
	require.NoError(t, proto.WriteVarInt(buf, 755))
	require.NoError(t, proto.WriteString(buf, "localhost"))
	require.NoError(t, proto.WriteUint16(buf, 25565))
	require.NoError(t, proto.WriteVarInt(buf, 1))

	decoded, err := DecodeHandshake(buf)
	require.NoError(t, err)
	hs := decoded.(*HandshakePacket)
	assert.Equal(t, int32(755), hs.ProtocolVersion)
	assert.Equal(t, "localhost", hs.Address)
	assert.Equal(t, uint16(25565), hs.Port)
	assert.Equal(t, proto.StateStatus, hs.Next)
}

func TestDecodeHandshakeBadNext(t *testing.T) {
	buf := &proto.Buffer{}
	require.NoError(t, proto.WriteVarInt(buf, 755))
	require.NoError(t, proto.WriteString(buf, "localhost"))
	require.NoError(t, proto.WriteUint16(buf, 25565))
	require.NoError(t, proto.WriteVarInt(buf, 99))

	_, err := DecodeHandshake(buf)
	require.Error(t, err)
	var ioErr proto.IoError
	assert.ErrorAs(t, err, &ioErr)
}

func TestHandshakeEncodeRefused(t *testing.T) {
	p := &HandshakePacket{}
	err := p.Encode(&proto.Buffer{})
	require.Error(t, err)
	var refusal proto.Refusal
	assert.ErrorAs(t, err, &refusal)
}
