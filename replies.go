package x11

// Every core reply shares a 32-byte fixed header (reply marker, an
// opcode-specific byte, sequence number, reply length in 4-byte units
// beyond the fixed part) followed by reply-length*4 extra bytes. The
// decode functions below assume the caller (correlator.go) has already
// read the full reply packet (fixed header + trailing data) per
// spec.md §4.1's length-prefixed-packet rule.

// InternAtomReply is the result of an InternAtom request.
type InternAtomReply struct {
	SequenceNo uint16
	Atom       OrNone[AtomId]
}

func decodeInternAtomReply(pkt []byte) (*InternAtomReply, error) {
	if len(pkt) < 12 {
		return nil, ErrUnexpectedReply
	}
	d := newDecoder(pkt)
	d.Skip(2) // reply marker + unused
	seq := d.U16()
	d.Skip(4) // reply length
	atom := d.U32()
	return &InternAtomReply{SequenceNo: seq, Atom: orNoneFromWire[AtomId](atom)}, nil
}

// GetAtomNameReply is the result of a GetAtomName request.
type GetAtomNameReply struct {
	SequenceNo uint16
	Name       string
}

func decodeGetAtomNameReply(pkt []byte) (*GetAtomNameReply, error) {
	if len(pkt) < 32 {
		return nil, ErrUnexpectedReply
	}
	d := newDecoder(pkt)
	d.Skip(2)
	seq := d.U16()
	d.Skip(4)
	nameLen := d.U16()
	d.Skip(22)
	if d.Remaining() < int(nameLen) {
		return nil, ErrUnexpectedReply
	}
	name := d.String8(int(nameLen))
	return &GetAtomNameReply{SequenceNo: seq, Name: name}, nil
}

// QueryExtensionReply is the result of a QueryExtension request
// (spec.md §4.6's extension-registry cache entry).
type QueryExtensionReply struct {
	SequenceNo  uint16
	Present     bool
	MajorOpcode uint8
	FirstEvent  uint8
	FirstError  uint8
}

func decodeQueryExtensionReply(pkt []byte) (*QueryExtensionReply, error) {
	if len(pkt) < 12 {
		return nil, ErrUnexpectedReply
	}
	d := newDecoder(pkt)
	d.Skip(2)
	seq := d.U16()
	d.Skip(4)
	present := d.Bool8()
	major := d.U8()
	firstEvent := d.U8()
	firstError := d.U8()
	return &QueryExtensionReply{
		SequenceNo: seq, Present: present, MajorOpcode: major,
		FirstEvent: firstEvent, FirstError: firstError,
	}, nil
}

// GetInputFocusReply is the result of a GetInputFocus request.
type GetInputFocusReply struct {
	SequenceNo uint16
	RevertTo   uint8
	Focus      OrNone[WindowId]
}

func decodeGetInputFocusReply(pkt []byte) (*GetInputFocusReply, error) {
	if len(pkt) < 12 {
		return nil, ErrUnexpectedReply
	}
	d := newDecoder(pkt)
	d.Skip(1) // reply marker
	revertTo := d.U8()
	seq := d.U16()
	d.Skip(4)
	focus := d.U32()
	return &GetInputFocusReply{SequenceNo: seq, RevertTo: revertTo, Focus: orNoneFromWire[WindowId](focus)}, nil
}

// GetGeometryReply is the result of a GetGeometry request.
type GetGeometryReply struct {
	SequenceNo  uint16
	Depth       uint8
	Root        WindowId
	X, Y        int16
	Width, Height uint16
	BorderWidth uint16
}

func decodeGetGeometryReply(pkt []byte) (*GetGeometryReply, error) {
	if len(pkt) < 24 {
		return nil, ErrUnexpectedReply
	}
	d := newDecoder(pkt)
	d.Skip(1) // reply marker
	depth := d.U8()
	seq := d.U16()
	d.Skip(4)
	root := d.U32()
	x, y := d.I16(), d.I16()
	w, h := d.U16(), d.U16()
	bw := d.U16()
	return &GetGeometryReply{
		SequenceNo: seq, Depth: depth, Root: WindowId(root),
		X: x, Y: y, Width: w, Height: h, BorderWidth: bw,
	}, nil
}
