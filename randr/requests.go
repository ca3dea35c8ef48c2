package randr

import "go.novaterm.dev/x11/internal/wire"

// Minor opcodes of the RANDR 1.6 extension (spec.md §6.1), grounded on
// original_source/crates/just_x11/src/extensions/randr/requests.rs.
const (
	OpQueryVersion              uint8 = 0
	OpSetScreenConfig           uint8 = 2
	OpSelectInput               uint8 = 4
	OpGetScreenInfo             uint8 = 5
	OpGetScreenSizeRange        uint8 = 6
	OpGetCrtcInfo               uint8 = 20
	OpGetScreenResourcesCurrent uint8 = 25
	OpGetMonitors               uint8 = 42
)

// EncodedRequest is a body ready to be wrapped with RANDR's major opcode
// (discovered once per session via Session.QueryExtension("RANDR")) and
// this request's minor opcode.
type EncodedRequest struct {
	Minor        uint8
	Body         []byte
	ExpectsReply bool
}

// QueryVersion negotiates the RANDR protocol version, sending
// majorVersion.minorVersion as the version the client supports (1.6 is
// the version original_source was built and tested against).
func QueryVersion(majorVersion, minorVersion uint32) EncodedRequest {
	e := wire.NewEncoder(8)
	e.U32(majorVersion)
	e.U32(minorVersion)
	return EncodedRequest{Minor: OpQueryVersion, Body: e.Buf, ExpectsReply: true}
}

// SetScreenConfig applies a screen size/rotation/refresh-rate change.
func SetScreenConfig(window WindowId, timestamp, configTimestamp Timestamp, sizeIndex uint16, rotation Rotation) EncodedRequest {
	e := wire.NewEncoder(20)
	e.U32(uint32(window))
	e.U32(uint32(timestamp))
	e.U32(uint32(configTimestamp))
	e.U16(sizeIndex)
	e.U16(uint16(rotation))
	e.U16(0) // refresh rate, deprecated
	e.U16(0) // pad
	return EncodedRequest{Minor: OpSetScreenConfig, Body: e.Buf, ExpectsReply: true}
}

// SelectInput subscribes to RANDR change-notification events on window.
func SelectInput(window WindowId, enable SelectMask) EncodedRequest {
	e := wire.NewEncoder(8)
	e.U32(uint32(window))
	e.U16(uint16(enable))
	e.U16(0)
	return EncodedRequest{Minor: OpSelectInput, Body: e.Buf}
}

// GetScreenInfo retrieves legacy (pre-1.2) per-screen configuration.
func GetScreenInfo(window WindowId) EncodedRequest {
	e := wire.NewEncoder(4)
	e.U32(uint32(window))
	return EncodedRequest{Minor: OpGetScreenInfo, Body: e.Buf, ExpectsReply: true}
}

// GetScreenSizeRange retrieves the minimum/maximum screen size the
// server accepts for window's screen.
func GetScreenSizeRange(window WindowId) EncodedRequest {
	e := wire.NewEncoder(4)
	e.U32(uint32(window))
	return EncodedRequest{Minor: OpGetScreenSizeRange, Body: e.Buf, ExpectsReply: true}
}

// GetCrtcInfo retrieves one CRTC's current configuration.
func GetCrtcInfo(crtc CrtcId, configTimestamp Timestamp) EncodedRequest {
	e := wire.NewEncoder(8)
	e.U32(uint32(crtc))
	e.U32(uint32(configTimestamp))
	return EncodedRequest{Minor: OpGetCrtcInfo, Body: e.Buf, ExpectsReply: true}
}

// GetScreenResourcesCurrent retrieves the server's current (not probed)
// CRTC/output/mode resource lists for window's screen.
func GetScreenResourcesCurrent(window WindowId) EncodedRequest {
	e := wire.NewEncoder(4)
	e.U32(uint32(window))
	return EncodedRequest{Minor: OpGetScreenResourcesCurrent, Body: e.Buf, ExpectsReply: true}
}

// GetMonitors retrieves monitor descriptions for window's screen.
//
// The request-length word this module writes resolves to 3, not the 2
// the published RANDR spec documents for an 8-byte body. original_source
// observed the same discrepancy directly against a live server and
// treated 2 as the bug (a comment there reads "The spec says 2 not 3,
// why? idk, probably a bug."); this module's generic request encoder
// always derives the length word from the actual body size, so it
// reproduces 3 here without a special case.
func GetMonitors(window WindowId, getActive bool) EncodedRequest {
	e := wire.NewEncoder(8)
	e.U32(uint32(window))
	e.Bool8(getActive)
	e.Pad(3)
	return EncodedRequest{Minor: OpGetMonitors, Body: e.Buf, ExpectsReply: true}
}
