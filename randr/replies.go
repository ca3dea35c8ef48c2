package randr

import (
	"errors"

	"go.novaterm.dev/x11/internal/wire"
)

// ErrShortReply reports a reply packet shorter than this extension's
// fixed reply layout requires.
var ErrShortReply = errors.New("randr: reply too short")

// QueryVersionReply is the result of a QueryVersion request.
type QueryVersionReply struct {
	MajorVersion uint32
	MinorVersion uint32
}

// DecodeQueryVersionReply decodes a full 32-byte QueryVersion reply.
func DecodeQueryVersionReply(pkt []byte) (*QueryVersionReply, error) {
	if len(pkt) < 16 {
		return nil, ErrShortReply
	}
	d := wire.NewDecoder(pkt)
	d.Skip(8) // reply type, pad, sequence number, reply length
	major := d.U32()
	minor := d.U32()
	return &QueryVersionReply{MajorVersion: major, MinorVersion: minor}, nil
}

// SetScreenConfigReply is the result of a SetScreenConfig request,
// grounded on justshow_x11/src/extensions/randr/replies.rs's
// SetScreenConfig (status in the reply's second byte, followed by two
// timestamps, the root window and the subpixel order, then 10 pad
// bytes out to the fixed 32-byte reply size).
type SetScreenConfigReply struct {
	Status                   ConfigStatus
	NewTimestamp             Timestamp
	NewConfigurationTimestamp Timestamp
	Root                     WindowId
	SubpixelOrder            Subpixel
}

// DecodeSetScreenConfigReply decodes a full 32-byte SetScreenConfig
// reply.
func DecodeSetScreenConfigReply(pkt []byte) (*SetScreenConfigReply, error) {
	if len(pkt) < 32 {
		return nil, ErrShortReply
	}
	d := wire.NewDecoder(pkt)
	d.Skip(1) // reply marker
	status := ConfigStatus(d.U8())
	d.Skip(2) // sequence number
	d.Skip(4) // reply length
	newTimestamp := d.U32()
	newConfigTimestamp := d.U32()
	root := d.U32()
	subpixel := d.U16()
	return &SetScreenConfigReply{
		Status: status, NewTimestamp: Timestamp(newTimestamp),
		NewConfigurationTimestamp: Timestamp(newConfigTimestamp),
		Root: WindowId(root), SubpixelOrder: Subpixel(subpixel),
	}, nil
}

// GetCrtcInfoReply is the result of a GetCrtcInfo request.
type GetCrtcInfoReply struct {
	Status             ConfigStatus
	Timestamp          Timestamp
	X, Y               int16
	Width, Height      uint16
	Mode               uint32
	CurrentRotation    Rotation
	AvailableRotations Rotation
	Outputs            []OutputId
	PossibleOutputs    []OutputId
}

// DecodeGetCrtcInfoReply decodes a GetCrtcInfo reply, including its two
// trailing variable-length output-id arrays.
func DecodeGetCrtcInfoReply(pkt []byte) (*GetCrtcInfoReply, error) {
	if len(pkt) < 32 {
		return nil, ErrShortReply
	}
	d := wire.NewDecoder(pkt)
	d.Skip(1) // reply marker
	status := ConfigStatus(d.U8())
	d.Skip(2) // sequence number
	d.Skip(4) // reply length
	timestamp := d.U32()
	x := d.I16()
	y := d.I16()
	width := d.U16()
	height := d.U16()
	mode := d.U32()
	currentRotation := d.U16()
	nOutputs := d.U16()
	availableRotations := d.U16()
	nPossibleOutputs := d.U16()

	if d.Remaining() < int(nOutputs)*4 {
		return nil, ErrShortReply
	}
	outputs := make([]OutputId, nOutputs)
	for i := range outputs {
		outputs[i] = OutputId(d.U32())
	}
	if d.Remaining() < int(nPossibleOutputs)*4 {
		return nil, ErrShortReply
	}
	possible := make([]OutputId, nPossibleOutputs)
	for i := range possible {
		possible[i] = OutputId(d.U32())
	}

	return &GetCrtcInfoReply{
		Status: status, Timestamp: Timestamp(timestamp), X: x, Y: y,
		Width: width, Height: height, Mode: mode,
		CurrentRotation: Rotation(currentRotation), AvailableRotations: Rotation(availableRotations),
		Outputs: outputs, PossibleOutputs: possible,
	}, nil
}

// GetMonitorsReply is the result of a GetMonitors request.
type GetMonitorsReply struct {
	Timestamp Timestamp
	Monitors  []MonitorInfo
}

// DecodeGetMonitorsReply decodes a GetMonitors reply, grounded on
// justshow_x11/src/extensions/randr/replies.rs's GetMonitors and
// randr.rs's MonitorInfo::from_le_bytes: timestamp, nmonitors, noutputs,
// 12 pad bytes, then nmonitors MonitorInfo records each carrying its own
// trailing ncrtcs-length CrtcId array.
func DecodeGetMonitorsReply(pkt []byte) (*GetMonitorsReply, error) {
	if len(pkt) < 32 {
		return nil, ErrShortReply
	}
	d := wire.NewDecoder(pkt)
	d.Skip(8) // reply type, pad, sequence number, reply length
	timestamp := d.U32()
	nMonitors := d.U32()
	d.U32() // noutputs, informational only; each monitor carries its own ncrtcs count
	d.Skip(12)

	const monitorFixedSize = 24 // name, primary, automatic, ncrtcs, x, y, width/height px, width/height mm

	monitors := make([]MonitorInfo, nMonitors)
	for i := range monitors {
		if d.Remaining() < monitorFixedSize {
			return nil, ErrShortReply
		}
		name := d.U32()
		primary := d.Bool8()
		automatic := d.Bool8()
		nCrtcs := d.U16()
		x := d.I16()
		y := d.I16()
		widthPx := d.U16()
		heightPx := d.U16()
		widthMm := d.U32()
		heightMm := d.U32()
		if d.Remaining() < int(nCrtcs)*4 {
			return nil, ErrShortReply
		}
		crtcs := make([]CrtcId, nCrtcs)
		for j := range crtcs {
			crtcs[j] = CrtcId(d.U32())
		}
		monitors[i] = MonitorInfo{
			Name: AtomId(name), Primary: primary, Automatic: automatic,
			X: x, Y: y, WidthInPixels: widthPx, HeightInPixels: heightPx,
			WidthInMillimeters: widthMm, HeightInMillimeters: heightMm,
			Crtcs: crtcs,
		}
	}

	return &GetMonitorsReply{Timestamp: Timestamp(timestamp), Monitors: monitors}, nil
}
