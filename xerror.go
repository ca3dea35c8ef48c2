package x11

// decodeError decodes a 32-byte error packet (first byte already known to
// be 0) per spec.md §3/§7 and
// original_source/crates/just_x11/src/xerror.rs's XGenericError layout:
// error(1) code(1) sequence_number(2) generic_value(4) minor_opcode(2)
// major_opcode(1) pad(21).
func decodeError(pkt []byte) (*X11Error, error) {
	if len(pkt) != 32 {
		return nil, ErrUnexpectedReply
	}
	d := newDecoder(pkt)
	d.Skip(1) // error marker byte, already classified by the caller
	code := ErrorCode(d.U8())
	seq := d.U16()
	value := d.U32()
	minor := d.U16()
	major := d.U8()

	if _, ok := errorCodeNames[code]; !ok {
		return nil, ErrUnknownErrorCode
	}

	return &X11Error{
		Code:         code,
		SequenceNo:   seq,
		GenericValue: value,
		MinorOpcode:  minor,
		MajorOpcode:  major,
	}, nil
}
