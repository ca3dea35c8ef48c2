package randr

import "go.novaterm.dev/x11/internal/wire"

// Event-code offsets from this extension's first_event, as reported by
// QueryExtension (spec.md §4.6). RANDR multiplexes six change kinds
// behind a single Notify code rather than giving each its own event
// code the way the core protocol does.
const (
	EventScreenChangeNotify uint8 = 0
	EventNotify             uint8 = 1
)

// NotifySubCode identifies which change kind a Notify event reports.
type NotifySubCode uint8

const (
	NotifyCrtcChange       NotifySubCode = 0
	NotifyOutputChange     NotifySubCode = 1
	NotifyOutputProperty   NotifySubCode = 2
	NotifyProviderChange   NotifySubCode = 3
	NotifyProviderProperty NotifySubCode = 4
	NotifyResourceChange   NotifySubCode = 5
)

// ScreenChangeNotifyEvent reports a screen's size, rotation or refresh
// configuration changing. original_source has no RANDR event decoders
// to ground this on; the field order follows the published RandR
// protocol's RRScreenChangeNotify wire diagram (fixed 32-byte layout,
// no variable-length tail, unlike this extension's requests/replies).
type ScreenChangeNotifyEvent struct {
	SequenceNo          uint16
	Rotation             Rotation
	Timestamp            Timestamp
	ConfigTimestamp      Timestamp
	Root                 WindowId
	RequestWindow        WindowId
	SizeId               uint16
	SubpixelOrder        Subpixel
	WidthInPixels        uint16
	HeightInPixels       uint16
	WidthInMillimeters   uint16
	HeightInMillimeters  uint16
}

func decodeScreenChangeNotify(pkt []byte) (*ScreenChangeNotifyEvent, error) {
	if len(pkt) < 32 {
		return nil, ErrShortReply
	}
	d := wire.NewDecoder(pkt)
	d.Skip(1) // event code
	rotation := d.U8()
	seq := d.U16()
	timestamp := d.U32()
	configTimestamp := d.U32()
	root := d.U32()
	requestWindow := d.U32()
	sizeId := d.U16()
	subpixel := d.U16()
	widthPx := d.U16()
	heightPx := d.U16()
	widthMm := d.U16()
	heightMm := d.U16()
	return &ScreenChangeNotifyEvent{
		SequenceNo: seq, Rotation: Rotation(rotation), Timestamp: Timestamp(timestamp),
		ConfigTimestamp: Timestamp(configTimestamp), Root: WindowId(root), RequestWindow: WindowId(requestWindow),
		SizeId: sizeId, SubpixelOrder: Subpixel(subpixel),
		WidthInPixels: widthPx, HeightInPixels: heightPx,
		WidthInMillimeters: widthMm, HeightInMillimeters: heightMm,
	}, nil
}

// NotifyEvent is the generic RRNotify wrapper. SubCode identifies which
// of the six change kinds occurred; the remaining bytes are kept raw
// since their per-kind layouts aren't exercised by this module's
// SelectInput-only RANDR usage (a caller that needs, say, CrtcChange's
// full fields can decode Data itself).
type NotifyEvent struct {
	SequenceNo uint16
	SubCode    NotifySubCode
	Data       [28]byte
}

func decodeNotify(pkt []byte) (*NotifyEvent, error) {
	if len(pkt) < 32 {
		return nil, ErrShortReply
	}
	d := wire.NewDecoder(pkt)
	d.Skip(1) // event code
	subCode := NotifySubCode(d.U8())
	seq := d.U16()
	var data [28]byte
	copy(data[:], pkt[4:32])
	return &NotifyEvent{SequenceNo: seq, SubCode: subCode, Data: data}, nil
}

// DecodeEvent decodes an event packet whose code, relative to this
// extension's first_event offset, identifies one of RANDR's two event
// kinds. ok is false for any other relative code, leaving the caller
// free to fall back to a generic representation.
func DecodeEvent(relativeCode uint8, pkt []byte) (event any, ok bool, err error) {
	switch relativeCode {
	case EventScreenChangeNotify:
		ev, err := decodeScreenChangeNotify(pkt)
		return ev, true, err
	case EventNotify:
		ev, err := decodeNotify(pkt)
		return ev, true, err
	default:
		return nil, false, nil
	}
}
