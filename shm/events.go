package shm

import "go.novaterm.dev/x11/internal/wire"

// EventCompletion is MIT-SHM's sole event code offset (relative to this
// extension's first_event), delivered when a PutImage or GetImage
// request sent with its send_event flag set finishes.
const EventCompletion uint8 = 0

// CompletionEvent reports a shared-memory PutImage/GetImage completing.
// original_source's mit_shm/requests.rs defines PutImage's send_event
// field but has no event decoder of its own; the field order below
// follows the published MIT-SHM extension's ShmCompletion wire diagram.
type CompletionEvent struct {
	SequenceNo uint16
	Drawable   uint32
	MinorEvent uint16
	MajorEvent uint8
	Shmseg     uint32
	Offset     uint32
}

func decodeCompletion(pkt []byte) (*CompletionEvent, error) {
	if len(pkt) < 20 {
		return nil, ErrShortReply
	}
	d := wire.NewDecoder(pkt)
	d.Skip(2) // event code + pad
	seq := d.U16()
	drawable := d.U32()
	minorEvent := d.U16()
	majorEvent := d.U8()
	d.Skip(1)
	shmseg := d.U32()
	offset := d.U32()
	return &CompletionEvent{
		SequenceNo: seq, Drawable: drawable, MinorEvent: minorEvent,
		MajorEvent: majorEvent, Shmseg: shmseg, Offset: offset,
	}, nil
}

// DecodeEvent decodes an event packet whose code, relative to this
// extension's first_event offset, identifies MIT-SHM's Completion
// event. ok is false for any other relative code.
func DecodeEvent(relativeCode uint8, pkt []byte) (event any, ok bool, err error) {
	switch relativeCode {
	case EventCompletion:
		ev, err := decodeCompletion(pkt)
		return ev, true, err
	default:
		return nil, false, nil
	}
}
