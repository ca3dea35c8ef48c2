package x11

// Core request opcodes used by this module (spec.md §6.1's core subset).
const (
	opCreateWindow    = 1
	opDestroyWindow   = 4
	opMapWindow       = 8
	opUnmapWindow     = 10
	opConfigureWindow = 12
	opInternAtom      = 16
	opGetAtomName     = 17
	opGetGeometry     = 14
	opGetInputFocus   = 43
	opQueryExtension  = 98
)

// request is the single encodable-request representation: an opcode, an
// opcode-specific "extra" byte the protocol overlays on unused header
// space (CreateWindow's depth, InternAtom's only-if-exists flag), a body
// following the 4-byte header, and whether the server answers with a
// reply (spec.md §3 "Pending reply" — only reply-bearing requests get a
// PendingReply handle back from Session.Send).
type request struct {
	opcode       uint8
	extra        uint8
	body         []byte
	expectsReply bool
}

func (r request) encode() []byte {
	total := 4 + len(r.body)
	e := newEncoder(total)
	e.U8(r.opcode)
	e.U8(r.extra)
	e.U16(uint16(total / 4))
	e.Bytes(r.body)
	return e.Buf
}

// CreateWindowValueMask bits select which optional CreateWindow/
// ChangeWindowAttributes values are present, in ascending bit order.
type CreateWindowValueMask uint32

const (
	CWBackPixmap       CreateWindowValueMask = 1 << 0
	CWBackPixel        CreateWindowValueMask = 1 << 1
	CWBorderPixmap     CreateWindowValueMask = 1 << 2
	CWBorderPixel      CreateWindowValueMask = 1 << 3
	CWBitGravity       CreateWindowValueMask = 1 << 4
	CWWinGravity       CreateWindowValueMask = 1 << 5
	CWBackingStore     CreateWindowValueMask = 1 << 6
	CWBackingPlanes    CreateWindowValueMask = 1 << 7
	CWBackingPixel     CreateWindowValueMask = 1 << 8
	CWOverrideRedirect CreateWindowValueMask = 1 << 9
	CWSaveUnder        CreateWindowValueMask = 1 << 10
	CWEventMask        CreateWindowValueMask = 1 << 11
	CWDontPropagate    CreateWindowValueMask = 1 << 12
	CWColormap         CreateWindowValueMask = 1 << 13
	CWCursor           CreateWindowValueMask = 1 << 14
)

// CreateWindow builds a CreateWindow request. Values must be supplied in
// ascending CreateWindowValueMask bit order, per the protocol's
// LISTofVALUE packing rule.
func CreateWindow(wid, parent WindowId, class uint16, depth uint8, visual uint32,
	x, y int16, width, height, borderWidth uint16, mask CreateWindowValueMask, values []uint32) request {
	e := newEncoder(24 + 4*len(values))
	e.U32(uint32(wid))
	e.U32(uint32(parent))
	e.I16(x)
	e.I16(y)
	e.U16(width)
	e.U16(height)
	e.U16(borderWidth)
	e.U16(class)
	e.U32(visual)
	e.U32(uint32(mask))
	for _, v := range values {
		e.U32(v)
	}
	return request{opcode: opCreateWindow, extra: depth, body: e.Buf}
}

// MapWindow encodes a MapWindow request.
func MapWindow(w WindowId) request {
	e := newEncoder(4)
	e.U32(uint32(w))
	return request{opcode: opMapWindow, body: e.Buf}
}

// UnmapWindow encodes an UnmapWindow request.
func UnmapWindow(w WindowId) request {
	e := newEncoder(4)
	e.U32(uint32(w))
	return request{opcode: opUnmapWindow, body: e.Buf}
}

// DestroyWindow encodes a DestroyWindow request.
func DestroyWindow(w WindowId) request {
	e := newEncoder(4)
	e.U32(uint32(w))
	return request{opcode: opDestroyWindow, body: e.Buf}
}

// ConfigureWindowValueMask bits select which ConfigureWindow fields are
// present, in ascending bit order.
type ConfigureWindowValueMask uint16

const (
	ConfigX           ConfigureWindowValueMask = 1 << 0
	ConfigY           ConfigureWindowValueMask = 1 << 1
	ConfigWidth       ConfigureWindowValueMask = 1 << 2
	ConfigHeight      ConfigureWindowValueMask = 1 << 3
	ConfigBorderWidth ConfigureWindowValueMask = 1 << 4
	ConfigSibling     ConfigureWindowValueMask = 1 << 5
	ConfigStackMode   ConfigureWindowValueMask = 1 << 6
)

// ConfigureWindow encodes ConfigureWindow. A zero Width or Height value
// is accepted here (spec.md requires the *server*, not the client, to
// reject it with a Value error, which arrives through xerror.go's decode
// path).
func ConfigureWindow(w WindowId, mask ConfigureWindowValueMask, values []uint32) request {
	e := newEncoder(8 + 4*len(values))
	e.U32(uint32(w))
	e.U16(uint16(mask))
	e.Pad(2)
	for _, v := range values {
		e.U32(v)
	}
	return request{opcode: opConfigureWindow, body: e.Buf}
}

// InternAtom encodes InternAtom (spec.md §8's "atom round-trip law").
func InternAtom(name string, onlyIfExists bool) request {
	e := newEncoder(4 + padLen4(len(name)))
	e.U16(uint16(len(name)))
	e.Pad(2)
	e.String8(name)
	e.AlignTo4()
	extra := uint8(0)
	if onlyIfExists {
		extra = 1
	}
	return request{opcode: opInternAtom, extra: extra, body: e.Buf, expectsReply: true}
}

// GetAtomName encodes GetAtomName (spec.md §8's atom round-trip and "bad
// atom" scenarios both exercise this alongside InternAtom).
func GetAtomName(atom AtomId) request {
	e := newEncoder(4)
	e.U32(uint32(atom))
	return request{opcode: opGetAtomName, body: e.Buf, expectsReply: true}
}

// QueryExtension encodes QueryExtension (spec.md §4.6).
func QueryExtension(name string) request {
	e := newEncoder(4 + padLen4(len(name)))
	e.U16(uint16(len(name)))
	e.Pad(2)
	e.String8(name)
	e.AlignTo4()
	return request{opcode: opQueryExtension, body: e.Buf, expectsReply: true}
}

// GetInputFocus encodes GetInputFocus, a cheap argument-less round-trip
// probe.
func GetInputFocus() request {
	return request{opcode: opGetInputFocus, expectsReply: true}
}

// GetGeometry encodes GetGeometry against any Drawable.
func GetGeometry(d DrawableId) request {
	e := newEncoder(4)
	e.U32(uint32(d))
	return request{opcode: opGetGeometry, body: e.Buf, expectsReply: true}
}
