package shm

import (
	"errors"

	"go.novaterm.dev/x11/internal/wire"
)

// ErrShortReply reports a reply packet shorter than this extension's
// fixed reply layout requires.
var ErrShortReply = errors.New("shm: reply too short")

// QueryVersionReply is the result of a QueryVersion request, grounded on
// just_x11/src/extensions/mit_shm/replies.rs's QueryVersion.
type QueryVersionReply struct {
	SharedPixmaps bool
	MajorVersion  uint16
	MinorVersion  uint16
	Uid           uint16
	Gid           uint16
	PixmapFormat  uint8
}

// DecodeQueryVersionReply decodes a full 32-byte QueryVersion reply
// packet.
func DecodeQueryVersionReply(pkt []byte) (*QueryVersionReply, error) {
	if len(pkt) < 32 {
		return nil, ErrShortReply
	}
	d := wire.NewDecoder(pkt)
	d.Skip(1) // reply marker
	sharedPixmaps := d.Bool8()
	d.Skip(6) // sequence number + reply length
	major := d.U16()
	minor := d.U16()
	uid := d.U16()
	gid := d.U16()
	pixmapFormat := d.U8()
	return &QueryVersionReply{
		SharedPixmaps: sharedPixmaps, MajorVersion: major, MinorVersion: minor,
		Uid: uid, Gid: gid, PixmapFormat: pixmapFormat,
	}, nil
}

// GetImageReply is the result of a GetImage request.
type GetImageReply struct {
	Depth  uint8
	Visual uint32
	Size   uint32
}

// DecodeGetImageReply decodes a full 32-byte GetImage reply packet.
func DecodeGetImageReply(pkt []byte) (*GetImageReply, error) {
	if len(pkt) < 16 {
		return nil, ErrShortReply
	}
	d := wire.NewDecoder(pkt)
	d.Skip(1) // reply marker
	depth := d.U8()
	d.Skip(6)
	visual := d.U32()
	size := d.U32()
	return &GetImageReply{Depth: depth, Visual: visual, Size: size}, nil
}

// CreateSegmentReply is the result of a CreateSegment request: nfd
// reports how many file descriptors accompany the reply out-of-band
// (ancillary SCM_RIGHTS data this module's conn does not yet read; the
// MIT-SHM CreateSegment path is exposed for completeness but AttachFd
// and the classic numeric-shmid Attach remain the exercised paths).
type CreateSegmentReply struct {
	Nfd uint8
}

// DecodeCreateSegmentReply decodes a full 32-byte CreateSegment reply
// packet.
func DecodeCreateSegmentReply(pkt []byte) (*CreateSegmentReply, error) {
	if len(pkt) < 8 {
		return nil, ErrShortReply
	}
	d := wire.NewDecoder(pkt)
	d.Skip(1) // reply marker
	nfd := d.U8()
	return &CreateSegmentReply{Nfd: nfd}, nil
}
