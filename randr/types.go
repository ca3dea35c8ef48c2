// Package randr implements the RANDR 1.6 wire extension: screen, CRTC,
// output and monitor introspection and configuration requests.
package randr

// Rotation is the RANDR ROTATION bitmask, shared by a CRTC's current
// rotation and the set of rotations it supports.
type Rotation uint16

const (
	Rotate0   Rotation = 0x0001
	Rotate90  Rotation = 0x0002
	Rotate180 Rotation = 0x0004
	Rotate270 Rotation = 0x0008
	ReflectX  Rotation = 0x0010
	ReflectY  Rotation = 0x0020
)

// SelectMask is the RANDR RRSELECTMASK bitmask for SelectInput.
type SelectMask uint16

const (
	ScreenChangeNotifyMask   SelectMask = 0x0001
	CrtcChangeNotifyMask     SelectMask = 0x0002
	OutputChangeNotifyMask   SelectMask = 0x0004
	OutputPropertyNotifyMask SelectMask = 0x0008
	ProviderChangeNotifyMask SelectMask = 0x0010
	ProviderPropertyNotifyMask SelectMask = 0x0020
	ResourceChangeNotifyMask SelectMask = 0x0040
)

// ConfigStatus is the RANDR RRCONFIGSTATUS enum, the return status for
// requests that depend on a timestamp.
type ConfigStatus uint8

const (
	ConfigStatusSuccess           ConfigStatus = 0x0
	ConfigStatusInvalidConfigTime ConfigStatus = 0x1
	ConfigStatusInvalidTime       ConfigStatus = 0x2
	ConfigStatusFailed            ConfigStatus = 0x3
)

// Subpixel is the Render extension's SUBPIXELORDER enum, reused by
// RANDR's SetScreenConfig reply.
type Subpixel uint16

const (
	SubpixelUnknown        Subpixel = 0
	SubpixelHorizontalRGB  Subpixel = 1
	SubpixelHorizontalBGR  Subpixel = 2
	SubpixelVerticalRGB    Subpixel = 3
	SubpixelVerticalBGR    Subpixel = 4
	SubpixelNone           Subpixel = 5
)

// CrtcId, OutputId and Timestamp mirror the resource/time types the core
// x11 package defines, kept locally so this package has no import
// dependency back on it beyond the extension-request plumbing Session
// already provides.
type (
	CrtcId    uint32
	OutputId  uint32
	Timestamp uint32
	AtomId    uint32
	WindowId  uint32
)

// MonitorInfo describes one monitor as returned by GetMonitors, grounded
// on original_source/crates/just_x11/src/extensions/randr.rs's
// MonitorInfo (kept per the [SUPPLEMENT] notes in SPEC_FULL.md §3, since
// GetMonitors cannot be decoded without it).
type MonitorInfo struct {
	Name               AtomId
	Primary            bool
	Automatic          bool
	X, Y               int16
	WidthInPixels      uint16
	HeightInPixels     uint16
	WidthInMillimeters uint32
	HeightInMillimeters uint32
	Crtcs              []CrtcId
}
