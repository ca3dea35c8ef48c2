package x11

import (
	"go.novaterm.dev/x11/randr"
	"go.novaterm.dev/x11/shm"
)

// Event is implemented by every decoded event type. Code returns the
// core event code with the synthetic (SendEvent) bit masked off, so a
// synthetic ConfigureNotify compares equal in kind to a genuine one, per
// spec.md §8 "top-bit-set event decoding equivalence".
type Event interface {
	Code() uint8
	Synthetic() bool
}

type eventHeader struct {
	code      uint8
	synthetic bool
}

func (h eventHeader) Code() uint8      { return h.code }
func (h eventHeader) Synthetic() bool  { return h.synthetic }

const (
	EventKeyPress         = 2
	EventKeyRelease       = 3
	EventButtonPress      = 4
	EventButtonRelease    = 5
	EventMotionNotify     = 6
	EventEnterNotify      = 7
	EventLeaveNotify      = 8
	EventFocusIn          = 9
	EventFocusOut         = 10
	EventExpose           = 12
	EventDestroyNotify    = 17
	EventUnmapNotify      = 18
	EventMapNotify        = 19
	EventMapRequest       = 20
	EventConfigureNotify  = 22
	EventConfigureRequest = 23
	EventResizeRequest    = 25
	EventPropertyNotify   = 28
	EventClientMessage    = 33
)

// KeyEvent covers KeyPress and KeyRelease, which share a body layout.
type KeyEvent struct {
	eventHeader
	Detail     uint8
	SequenceNo uint16
	Time       uint32
	Root       WindowId
	Event      WindowId
	Child      OrNone[WindowId]
	RootX, RootY int16
	EventX, EventY int16
	State      uint16
	SameScreen bool
}

// ButtonEvent covers ButtonPress and ButtonRelease, byte-identical to
// KeyEvent apart from field naming in the source protocol.
type ButtonEvent = KeyEvent

// MotionNotifyEvent reports pointer motion.
type MotionNotifyEvent struct {
	eventHeader
	Detail     uint8
	SequenceNo uint16
	Time       uint32
	Root       WindowId
	Event      WindowId
	Child      OrNone[WindowId]
	RootX, RootY int16
	EventX, EventY int16
	State      uint16
	SameScreen bool
}

// ConfigureNotifyEvent reports a window's new geometry.
type ConfigureNotifyEvent struct {
	eventHeader
	SequenceNo     uint16
	Event          WindowId
	Window         WindowId
	AboveSibling   OrNone[WindowId]
	X, Y           int16
	Width, Height  uint16
	BorderWidth    uint16
	OverrideRedirect bool
}

// MapNotifyEvent reports a window becoming mapped.
type MapNotifyEvent struct {
	eventHeader
	SequenceNo       uint16
	Event            WindowId
	Window           WindowId
	OverrideRedirect bool
}

// MapRequestEvent reports a child asking to be mapped (sent to a
// window-manager substructure-redirect listener).
type MapRequestEvent struct {
	eventHeader
	SequenceNo uint16
	Parent     WindowId
	Window     WindowId
}

// ResizeRequestEvent reports a client's own resize request, delivered to
// a substructure-redirect listener instead of being applied directly.
type ResizeRequestEvent struct {
	eventHeader
	SequenceNo    uint16
	Window        WindowId
	Width, Height uint16
}

// RawEvent is the fallback for an event code this module has no typed
// decoder for: the full 32-byte packet verbatim, so callers can still
// route on Code() and read fields themselves.
type RawEvent struct {
	eventHeader
	Bytes [32]byte
}

// ExtensionEvent wraps an event decoded by a registered extension's own
// decoder (spec.md §4.5: "if none and the code ≥ any registered
// extension's first-event, route to that extension's decoder"). Payload
// holds the extension package's own event type (e.g. *randr.NotifyEvent,
// *shm.CompletionEvent); callers type-assert it themselves.
type ExtensionEvent struct {
	eventHeader
	Extension string
	Payload   any
}

// dispatchExtensionEvent routes a non-core event code to the named
// extension's own decoder, by the code's offset from that extension's
// first_event. ok is false if name is not one this module has a
// decoder for, or the extension itself doesn't recognize relativeCode.
func dispatchExtensionEvent(name string, relativeCode uint8, pkt []byte) (payload any, ok bool, err error) {
	switch name {
	case "RANDR":
		return randr.DecodeEvent(relativeCode, pkt)
	case "MIT-SHM":
		return shm.DecodeEvent(relativeCode, pkt)
	default:
		return nil, false, nil
	}
}

// decodeEvent classifies and decodes an event packet. The top bit of the
// first byte (0x80) flags a synthetic event (sent via SendEvent) and is
// masked off before dispatch, per spec.md's event-decoding equivalence
// property. ext resolves non-core codes to a registered extension's own
// decoder (spec.md §4.6); it may be nil, in which case every non-core
// code falls back to RawEvent.
func decodeEvent(pkt []byte, ext *extensionRegistry) (Event, error) {
	if len(pkt) != 32 {
		return nil, ErrUnexpectedReply
	}
	rawCode := pkt[0]
	code := rawCode &^ 0x80
	synthetic := rawCode&0x80 != 0
	hdr := eventHeader{code: code, synthetic: synthetic}
	d := newDecoder(pkt)
	d.Skip(1)

	switch code {
	case EventKeyPress, EventKeyRelease, EventButtonPress, EventButtonRelease:
		detail := d.U8()
		seq := d.U16()
		t := d.U32()
		root := WindowId(d.U32())
		ev := WindowId(d.U32())
		child := orNoneFromWire[WindowId](d.U32())
		rx, ry := d.I16(), d.I16()
		ex, ey := d.I16(), d.I16()
		state := d.U16()
		same := d.Bool8()
		return &KeyEvent{
			eventHeader: hdr, Detail: detail, SequenceNo: seq, Time: t,
			Root: root, Event: ev, Child: child,
			RootX: rx, RootY: ry, EventX: ex, EventY: ey,
			State: state, SameScreen: same,
		}, nil
	case EventMotionNotify:
		detail := d.U8()
		seq := d.U16()
		t := d.U32()
		root := WindowId(d.U32())
		ev := WindowId(d.U32())
		child := orNoneFromWire[WindowId](d.U32())
		rx, ry := d.I16(), d.I16()
		ex, ey := d.I16(), d.I16()
		state := d.U16()
		same := d.Bool8()
		return &MotionNotifyEvent{
			eventHeader: hdr, Detail: detail, SequenceNo: seq, Time: t,
			Root: root, Event: ev, Child: child,
			RootX: rx, RootY: ry, EventX: ex, EventY: ey,
			State: state, SameScreen: same,
		}, nil
	case EventConfigureNotify:
		d.Skip(1) // unused byte 1; ConfigureNotify has no detail field
		seq := d.U16()
		ev := WindowId(d.U32())
		win := WindowId(d.U32())
		above := orNoneFromWire[WindowId](d.U32())
		x, y := d.I16(), d.I16()
		w, h := d.U16(), d.U16()
		bw := d.U16()
		override := d.Bool8()
		return &ConfigureNotifyEvent{
			eventHeader: hdr, SequenceNo: seq, Event: ev, Window: win,
			AboveSibling: above, X: x, Y: y, Width: w, Height: h,
			BorderWidth: bw, OverrideRedirect: override,
		}, nil
	case EventMapNotify:
		d.Skip(1) // unused byte 1
		seq := d.U16()
		ev := WindowId(d.U32())
		win := WindowId(d.U32())
		override := d.Bool8()
		return &MapNotifyEvent{eventHeader: hdr, SequenceNo: seq, Event: ev, Window: win, OverrideRedirect: override}, nil
	case EventMapRequest:
		d.Skip(1) // unused byte 1
		seq := d.U16()
		parent := WindowId(d.U32())
		win := WindowId(d.U32())
		return &MapRequestEvent{eventHeader: hdr, SequenceNo: seq, Parent: parent, Window: win}, nil
	case EventResizeRequest:
		d.Skip(1) // unused byte 1
		seq := d.U16()
		win := WindowId(d.U32())
		w, h := d.U16(), d.U16()
		return &ResizeRequestEvent{eventHeader: hdr, SequenceNo: seq, Window: win, Width: w, Height: h}, nil
	default:
		if ext != nil {
			if extName, info, found := ext.ownerOf(code); found {
				payload, handled, derr := dispatchExtensionEvent(extName, code-info.firstEvent, pkt)
				if derr != nil {
					return nil, derr
				}
				if handled {
					return &ExtensionEvent{eventHeader: hdr, Extension: extName, Payload: payload}, nil
				}
			}
		}
		var raw RawEvent
		raw.eventHeader = hdr
		copy(raw.Bytes[:], pkt)
		return &raw, nil
	}
}
