package proto

// ReadFrame implements the inbound half of framing: read a VarInt length,
// read exactly that many bytes into a scratch buffer, read a VarInt id
// from the scratch, look up a decoder for (state, id) in reg, and decode
// the packet body from whatever scratch bytes remain. Framing is
// strictly boundary-preserving: trailing bytes a decoder doesn't consume
// are discarded with the scratch buffer, so a second frame immediately
// following in the same transport is left untouched.
func ReadFrame(transport Readable, reg *Registry, state PacketState) (id uint32, packet any, err error) {
	length, err := ReadVarInt(transport)
	if err != nil {
		return 0, nil, err
	}
	if length < 0 {
		return 0, nil, Disconnected{}
	}
	body := make([]byte, length)
	if err := ReadFull(transport, body); err != nil {
		return 0, nil, err
	}
	scratch := NewBuffer(body)

	rawID, err := ReadVarInt(scratch)
	if err != nil {
		return 0, nil, err
	}
	id = uint32(rawID)

	decode, err := reg.Lookup(state, id)
	if err != nil {
		return 0, nil, err
	}
	packet, err = decode(scratch)
	if err != nil {
		return 0, nil, err
	}
	return id, packet, nil
}

// WriteFrame implements the outbound half of framing: write the id and
// body into a scratch buffer, then write a VarInt length followed by the
// scratch bytes to the transport. encode must not run any side effect
// beyond writing the packet's own body — outbound packets never run Act.
func WriteFrame(transport Writable, id uint32, encode func(Writable) error) error {
	scratch := &Buffer{}
	if err := WriteVarInt(scratch, int32(id)); err != nil {
		return err
	}
	if err := encode(scratch); err != nil {
		return err
	}
	if err := WriteVarInt(transport, int32(scratch.Len())); err != nil {
		return err
	}
	return writeAll(transport, scratch.Bytes())
}
