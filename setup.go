package x11

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DisplayVar is a parsed DISPLAY value: hostname:display_sequence.screen,
// matching justshow_x11/src/connection.rs's DisplayVar.
type DisplayVar struct {
	Hostname         string
	DisplaySequence  int
	Screen           int
}

// ParseDisplayVar parses a raw DISPLAY string (spec.md §4.4 step 1).
// An empty hostname means "local", which this module always resolves to
// the /tmp/.X11-unix unix-domain socket rather than TCP (spec.md §1
// explicitly excludes TCP/IPv6).
func ParseDisplayVar(raw string) (DisplayVar, error) {
	hostname, rest, ok := strings.Cut(raw, ":")
	if !ok {
		return DisplayVar{}, ErrInvalidDisplay
	}
	seqStr, screenStr, hasScreen := strings.Cut(rest, ".")
	seq, err := strconv.Atoi(seqStr)
	if err != nil {
		return DisplayVar{}, fmt.Errorf("%w: %v", ErrInvalidDisplay, err)
	}
	screen := 0
	if hasScreen {
		screen, err = strconv.Atoi(screenStr)
		if err != nil {
			return DisplayVar{}, fmt.Errorf("%w: %v", ErrInvalidDisplay, err)
		}
	}
	return DisplayVar{Hostname: hostname, DisplaySequence: seq, Screen: screen}, nil
}

// DisplayVarFromEnv reads and parses $DISPLAY.
func DisplayVarFromEnv() (DisplayVar, error) {
	raw, ok := os.LookupEnv("DISPLAY")
	if !ok || raw == "" {
		return DisplayVar{}, ErrNoDisplay
	}
	return ParseDisplayVar(raw)
}

// SocketPath returns the unix-domain socket path for this display,
// per spec.md §4.4 step 1.
func (d DisplayVar) SocketPath() string {
	return fmt.Sprintf("/tmp/.X11-unix/X%d", d.DisplaySequence)
}

// Format codes used by ConnectionSetup's pixmap-format list.
type PixmapFormat struct {
	Depth        uint8
	BitsPerPixel uint8
	ScanlinePad  uint8
}

// VisualClass enumerates the six core visual classes.
type VisualClass uint8

const (
	VisualStaticGray  VisualClass = 0
	VisualGrayScale   VisualClass = 1
	VisualStaticColor VisualClass = 2
	VisualPseudoColor VisualClass = 3
	VisualTrueColor   VisualClass = 4
	VisualDirectColor VisualClass = 5
)

// VisualType describes one entry of a Depth's visual list.
type VisualType struct {
	VisualId        uint32
	Class           VisualClass
	BitsPerRGBValue uint8
	ColormapEntries uint16
	RedMask         uint32
	GreenMask       uint32
	BlueMask        uint32
}

// Depth groups the VisualTypes available at one pixel depth on a Screen,
// matching the three-level Screen -> Depth -> VisualType structure
// original_source's xinfo walks (kept per the [SUPPLEMENT] notes in
// SPEC_FULL.md rather than flattened).
type Depth struct {
	Depth   uint8
	Visuals []VisualType
}

// BackingStore enumerates a screen's backing-store support level.
type BackingStore uint8

const (
	BackingStoreNever     BackingStore = 0
	BackingStoreWhenMapped BackingStore = 1
	BackingStoreAlways    BackingStore = 2
)

// Screen is one root screen advertised by the server in ConnectionSetup.
type Screen struct {
	Root               WindowId
	DefaultColormap    ColormapId
	WhitePixel         uint32
	BlackPixel         uint32
	CurrentInputMasks  uint32
	WidthInPixels      uint16
	HeightInPixels     uint16
	WidthInMillimeters uint16
	HeightInMillimeters uint16
	MinInstalledMaps   uint16
	MaxInstalledMaps   uint16
	RootVisual         uint32
	BackingStores      BackingStore
	SaveUnders         bool
	RootDepth          uint8
	Depths             []Depth
}

// SetupSuccess is the parsed body of a Success ConnectionSetup reply
// (spec.md §4.4 step 4 / §3 "Screen/visual/depth vectors").
type SetupSuccess struct {
	ProtocolMajorVersion uint16
	ProtocolMinorVersion uint16
	ReleaseNumber        uint32
	ResourceIdBase       uint32
	ResourceIdMask       uint32
	MotionBufferSize     uint32
	MaximumRequestLength uint16
	ImageByteOrder       uint8
	BitmapFormatBitOrder uint8
	BitmapFormatScanlineUnit uint8
	BitmapFormatScanlinePad  uint8
	MinKeycode           uint8
	MaxKeycode           uint8
	VendorName           string
	PixmapFormats        []PixmapFormat
	Screens              []Screen
}

const (
	setupStatusFailed       = 0
	setupStatusSuccess      = 1
	setupStatusAuthenticate = 2
)

// EncodeSetupRequest builds the ConnectionSetup request body (spec.md
// §4.4 step 3), little-endian, with the given auth protocol name/data.
func EncodeSetupRequest(authName, authData []byte) []byte {
	e := newEncoder(12 + padLen4(len(authName)) + padLen4(len(authData)))
	e.U8(byteOrderByteLittleEndian)
	e.Pad(1)
	e.U16(11) // protocol-major-version
	e.U16(0)  // protocol-minor-version
	e.U16(uint16(len(authName)))
	e.U16(uint16(len(authData)))
	e.Pad(2)
	e.Bytes(authName)
	e.Pad(pad4(len(authName)))
	e.Bytes(authData)
	e.Pad(pad4(len(authData)))
	return e.Buf
}

// DecodeSetupResponse reads the ConnectionSetup response header plus
// body from c (an already-connected conn), returning SetupSuccess or an
// error describing a Failed/Authenticate response.
func DecodeSetupResponse(c *conn) (*SetupSuccess, error) {
	head, err := c.drain(8)
	if err != nil {
		return nil, err
	}
	status := head[0]
	reasonLen := head[1]
	rest, err := c.drain(int(readU16LE(head[6:8])) * 4)
	if err != nil {
		return nil, err
	}

	switch status {
	case setupStatusFailed:
		reason := ""
		if int(reasonLen) <= len(rest) {
			reason = string(rest[:reasonLen])
		}
		return nil, fmt.Errorf("%w: %s", ErrSetupFailed, reason)
	case setupStatusAuthenticate:
		return nil, ErrAuthenticate
	case setupStatusSuccess:
		return decodeSetupSuccess(head, rest)
	default:
		return nil, fmt.Errorf("%w: unknown setup status %d", ErrInvalidResponse, status)
	}
}

func readU16LE(b []byte) uint16 { return littleEndian.Uint16(b) }

func decodeSetupSuccess(head, rest []byte) (setup *SetupSuccess, err error) {
	// The decoder does no bounds checking; a body shorter than its own
	// counts declare surfaces as ErrInvalidResponse instead of a panic.
	defer func() {
		if recover() != nil {
			setup, err = nil, fmt.Errorf("%w: truncated setup body", ErrInvalidResponse)
		}
	}()
	d := newDecoder(rest)
	s := &SetupSuccess{}
	s.ProtocolMajorVersion = readU16LE(head[2:4])
	s.ProtocolMinorVersion = readU16LE(head[4:6])

	s.ReleaseNumber = d.U32()
	s.ResourceIdBase = d.U32()
	s.ResourceIdMask = d.U32()
	s.MotionBufferSize = d.U32()
	vendorLen := d.U16()
	s.MaximumRequestLength = d.U16()
	numScreens := d.U8()
	numFormats := d.U8()
	s.ImageByteOrder = d.U8()
	s.BitmapFormatBitOrder = d.U8()
	s.BitmapFormatScanlineUnit = d.U8()
	s.BitmapFormatScanlinePad = d.U8()
	s.MinKeycode = d.U8()
	s.MaxKeycode = d.U8()
	d.Skip(4) // unused
	s.VendorName = d.String8(int(vendorLen))
	d.Skip(pad4(int(vendorLen)))

	s.PixmapFormats = make([]PixmapFormat, numFormats)
	for i := range s.PixmapFormats {
		s.PixmapFormats[i] = PixmapFormat{
			Depth:        d.U8(),
			BitsPerPixel: d.U8(),
			ScanlinePad:  d.U8(),
		}
		d.Skip(5)
	}

	s.Screens = make([]Screen, numScreens)
	for i := range s.Screens {
		scr, err := decodeScreen(d)
		if err != nil {
			return nil, err
		}
		s.Screens[i] = scr
	}
	return s, nil
}

func decodeScreen(d *decoder) (Screen, error) {
	var scr Screen
	scr.Root = WindowId(d.U32())
	scr.DefaultColormap = ColormapId(d.U32())
	scr.WhitePixel = d.U32()
	scr.BlackPixel = d.U32()
	scr.CurrentInputMasks = d.U32()
	scr.WidthInPixels = d.U16()
	scr.HeightInPixels = d.U16()
	scr.WidthInMillimeters = d.U16()
	scr.HeightInMillimeters = d.U16()
	scr.MinInstalledMaps = d.U16()
	scr.MaxInstalledMaps = d.U16()
	scr.RootVisual = d.U32()
	scr.BackingStores = BackingStore(d.U8())
	scr.SaveUnders = d.Bool8()
	scr.RootDepth = d.U8()
	numDepths := d.U8()

	scr.Depths = make([]Depth, numDepths)
	for i := range scr.Depths {
		depth := Depth{Depth: d.U8()}
		d.Skip(1)
		numVisuals := d.U16()
		d.Skip(4)
		depth.Visuals = make([]VisualType, numVisuals)
		for j := range depth.Visuals {
			depth.Visuals[j] = VisualType{
				VisualId:        d.U32(),
				Class:           VisualClass(d.U8()),
				BitsPerRGBValue: d.U8(),
				ColormapEntries: d.U16(),
				RedMask:         d.U32(),
				GreenMask:       d.U32(),
				BlueMask:        d.U32(),
			}
			d.Skip(4)
		}
		scr.Depths[i] = depth
	}
	return scr, nil
}
