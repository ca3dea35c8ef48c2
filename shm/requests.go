package shm

import "go.novaterm.dev/x11/internal/wire"

// Minor opcodes of the MIT-SHM extension (spec.md §6.1), grounded on
// original_source/crates/justshow_x11/src/extensions/mit_shm/requests.rs.
const (
	OpQueryVersion   uint8 = 1
	OpAttach         uint8 = 2
	OpDetach         uint8 = 3
	OpPutImage       uint8 = 4
	OpGetImage       uint8 = 5
	OpCreatePixmap   uint8 = 6
	OpAttachFd       uint8 = 7
	OpCreateSegment  uint8 = 8
)

// EncodedRequest is a body ready to be wrapped with an extension's major
// opcode and this request's minor opcode by Session.SendExtensionRequest
// (the major opcode rides outside this package, discovered once per
// session via QueryExtension).
type EncodedRequest struct {
	Minor        uint8
	Body         []byte
	ExpectsReply bool
}

// QueryVersion has no body.
func QueryVersion() EncodedRequest {
	return EncodedRequest{Minor: OpQueryVersion, ExpectsReply: true}
}

// Attach grants the server access to a previously-created SysV segment
// by numeric shmid (the "classic" MIT-SHM attach path, as opposed to
// AttachFd).
func Attach(shmseg uint32, shmid uint32, readOnly bool) EncodedRequest {
	e := wire.NewEncoder(12)
	e.U32(shmseg)
	e.U32(shmid)
	e.Bool8(readOnly)
	e.Pad(1)
	e.Pad(2)
	return EncodedRequest{Minor: OpAttach, Body: e.Buf}
}

// Detach revokes a previously attached segment. Callers must not call
// Segment.Free until the corresponding Detach has been sent and
// acknowledged (spec.md §4.7's Attach/Detach ordering invariant).
func Detach(shmseg uint32) EncodedRequest {
	e := wire.NewEncoder(4)
	e.U32(shmseg)
	return EncodedRequest{Minor: OpDetach, Body: e.Buf}
}

// PutImage uploads pixel data from an attached segment into a drawable.
func PutImage(drawable, gc uint32, totalWidth, totalHeight, srcX, srcY, srcWidth, srcHeight uint16,
	dstX, dstY int16, depth, format, sendEvent uint8, shmseg, offset uint32) EncodedRequest {
	e := wire.NewEncoder(36)
	e.U32(drawable)
	e.U32(gc)
	e.U16(totalWidth)
	e.U16(totalHeight)
	e.U16(srcX)
	e.U16(srcY)
	e.U16(srcWidth)
	e.U16(srcHeight)
	e.I16(dstX)
	e.I16(dstY)
	e.U8(depth)
	e.U8(format)
	e.U8(sendEvent)
	e.U8(0) // bpad
	e.U32(shmseg)
	e.U32(offset)
	return EncodedRequest{Minor: OpPutImage, Body: e.Buf}
}

// GetImage downloads pixel data from a drawable into an attached
// segment.
func GetImage(drawable uint32, x, y int16, width, height uint16, planeMask uint32, format uint8,
	shmseg, offset uint32) EncodedRequest {
	e := wire.NewEncoder(28)
	e.U32(drawable)
	e.I16(x)
	e.I16(y)
	e.U16(width)
	e.U16(height)
	e.U32(planeMask)
	e.U8(format)
	e.Pad(3)
	e.U32(shmseg)
	e.U32(offset)
	return EncodedRequest{Minor: OpGetImage, Body: e.Buf, ExpectsReply: true}
}

// CreatePixmap creates a pixmap backed directly by an attached segment's
// memory, avoiding a PutImage copy.
func CreatePixmap(pid, drawable uint32, width, height uint16, depth uint8, shmseg, offset uint32) EncodedRequest {
	e := wire.NewEncoder(24)
	e.U32(pid)
	e.U32(drawable)
	e.U16(width)
	e.U16(height)
	e.U8(depth)
	e.Pad(3)
	e.U32(shmseg)
	e.U32(offset)
	return EncodedRequest{Minor: OpCreatePixmap, Body: e.Buf}
}

// AttachFd grants the server access to a segment via a passed file
// descriptor instead of a numeric shmid (the modern, POSIX-shm-friendly
// attach path). The pad byte in the fourth position is 0, not a literal
// 16 — original_source's requests.rs writes a literal 16u8 there with
// no documented rationale; this module treats that as a bug rather than
// load-bearing wire shape.
func AttachFd(shmseg uint32, readOnly bool) EncodedRequest {
	e := wire.NewEncoder(8)
	e.U32(shmseg)
	e.Bool8(readOnly)
	e.Pad(2)
	e.U8(0) // pad; original_source emits 16 here, treated as a bug
	return EncodedRequest{Minor: OpAttachFd, Body: e.Buf}
}

// CreateSegment asks the server to allocate and return (via CreateSegment's
// reply plus an ancillary fd) a new shared-memory segment, rather than
// the client creating one itself. Same pad-byte note as AttachFd.
func CreateSegment(shmseg, size uint32, readOnly bool) EncodedRequest {
	e := wire.NewEncoder(12)
	e.U32(shmseg)
	e.U32(size)
	e.Bool8(readOnly)
	e.Pad(2)
	e.U8(0) // pad; original_source emits 16 here, treated as a bug
	return EncodedRequest{Minor: OpCreateSegment, Body: e.Buf, ExpectsReply: true}
}
