package x11

import "testing"

func TestParseDisplayVar(t *testing.T) {
	cases := []struct {
		raw  string
		want DisplayVar
	}{
		{":0", DisplayVar{Hostname: "", DisplaySequence: 0, Screen: 0}},
		{":1.2", DisplayVar{Hostname: "", DisplaySequence: 1, Screen: 2}},
		{"myhost:3", DisplayVar{Hostname: "myhost", DisplaySequence: 3, Screen: 0}},
	}
	for _, c := range cases {
		got, err := ParseDisplayVar(c.raw)
		if err != nil {
			t.Fatalf("ParseDisplayVar(%q): %v", c.raw, err)
		}
		if got != c.want {
			t.Errorf("ParseDisplayVar(%q) = %+v, want %+v", c.raw, got, c.want)
		}
	}
}

func TestParseDisplayVarInvalid(t *testing.T) {
	if _, err := ParseDisplayVar("no-colon"); err != ErrInvalidDisplay {
		t.Fatalf("ParseDisplayVar(no colon) = %v, want ErrInvalidDisplay", err)
	}
	if _, err := ParseDisplayVar(":notanumber"); err == nil {
		t.Fatal("ParseDisplayVar(:notanumber) succeeded, want error")
	}
}

func TestSocketPath(t *testing.T) {
	dv := DisplayVar{DisplaySequence: 7}
	if got := dv.SocketPath(); got != "/tmp/.X11-unix/X7" {
		t.Errorf("SocketPath() = %q, want /tmp/.X11-unix/X7", got)
	}
}

// buildSetupSuccessBody builds a minimal but structurally complete
// Success ConnectionSetup response: one screen, one depth, one visual,
// no pixmap formats, matching the wire layout decodeSetupSuccess walks.
func buildSetupSuccessBody(vendor string) []byte {
	e := newEncoder(128)
	// fixed 8-byte head is handled by the caller (status/pad/proto
	// version/reason-or-reserved/length); this builds the "rest" that
	// follows it.
	e.U32(1)          // release number
	e.U32(0x04000000) // resource id base
	e.U32(0x001FFFFF) // resource id mask
	e.U32(0)          // motion buffer size
	e.U16(uint16(len(vendor)))
	e.U16(256) // maximum request length
	e.U8(1)    // num screens
	e.U8(0)    // num pixmap formats
	e.U8(0)    // image byte order
	e.U8(0)    // bitmap format bit order
	e.U8(8)    // bitmap format scanline unit
	e.U8(32)   // bitmap format scanline pad
	e.U8(8)    // min keycode
	e.U8(255)  // max keycode
	e.Pad(4)
	e.String8(vendor)
	e.Pad(pad4(len(vendor)))

	// one screen
	e.U32(0x57)   // root
	e.U32(0x20)   // default colormap
	e.U32(0xFFFFFF)
	e.U32(0x000000)
	e.U32(0)    // current input masks
	e.U16(1920) // width px
	e.U16(1080) // height px
	e.U16(508)  // width mm
	e.U16(285)  // height mm
	e.U16(1)    // min installed maps
	e.U16(1)    // max installed maps
	e.U32(0x21) // root visual
	e.U8(0)     // backing stores
	e.Bool8(false)
	e.U8(24) // root depth
	e.U8(1)  // num depths

	// one depth
	e.U8(24) // depth
	e.Pad(1)
	e.U16(1) // num visuals
	e.Pad(4)

	// one visual
	e.U32(0x21) // visual id
	e.U8(uint8(VisualTrueColor))
	e.U8(8) // bits per rgb value
	e.U16(256)
	e.U32(0xFF0000)
	e.U32(0x00FF00)
	e.U32(0x0000FF)
	e.Pad(4)

	return e.Buf
}

func TestDecodeSetupResponseSuccess(t *testing.T) {
	vendor := "Go X11"
	body := buildSetupSuccessBody(vendor)

	head := make([]byte, 8)
	head[0] = setupStatusSuccess
	littleEndian.PutUint16(head[2:4], 11)
	littleEndian.PutUint16(head[4:6], 0)
	littleEndian.PutUint16(head[6:8], uint16(len(body)/4))

	pkt := append(append([]byte{}, head...), body...)
	fc := newFakeConn(pkt)
	c := newConn(fc)

	setup, err := DecodeSetupResponse(c)
	if err != nil {
		t.Fatalf("DecodeSetupResponse: %v", err)
	}
	if setup.ProtocolMajorVersion != 11 {
		t.Errorf("ProtocolMajorVersion = %d, want 11", setup.ProtocolMajorVersion)
	}
	if setup.VendorName != vendor {
		t.Errorf("VendorName = %q, want %q", setup.VendorName, vendor)
	}
	if setup.ResourceIdBase != 0x04000000 || setup.ResourceIdMask != 0x001FFFFF {
		t.Errorf("resource id base/mask = %#x/%#x, want 0x04000000/0x001FFFFF",
			setup.ResourceIdBase, setup.ResourceIdMask)
	}
	if len(setup.Screens) != 1 {
		t.Fatalf("len(Screens) = %d, want 1", len(setup.Screens))
	}
	scr := setup.Screens[0]
	if scr.Root != 0x57 || scr.WidthInPixels != 1920 || scr.HeightInPixels != 1080 {
		t.Errorf("screen = %+v, unexpected fields", scr)
	}
	if len(scr.Depths) != 1 || len(scr.Depths[0].Visuals) != 1 {
		t.Fatalf("depths/visuals = %+v, want 1 depth with 1 visual", scr.Depths)
	}
	vis := scr.Depths[0].Visuals[0]
	if vis.VisualId != 0x21 || vis.Class != VisualTrueColor {
		t.Errorf("visual = %+v, unexpected fields", vis)
	}
}

func TestDecodeSetupResponseFailed(t *testing.T) {
	reason := "bad auth"
	head := make([]byte, 8)
	head[0] = setupStatusFailed
	head[1] = uint8(len(reason))
	bodyLen4 := padLen4(len(reason))
	littleEndian.PutUint16(head[6:8], uint16(bodyLen4/4))

	e := newEncoder(bodyLen4)
	e.String8(reason)
	e.AlignTo4()

	pkt := append(append([]byte{}, head...), e.Buf...)
	fc := newFakeConn(pkt)
	c := newConn(fc)

	_, err := DecodeSetupResponse(c)
	if err == nil {
		t.Fatal("DecodeSetupResponse succeeded, want ErrSetupFailed")
	}
}

func TestEncodeSetupRequestAligned(t *testing.T) {
	pkt := EncodeSetupRequest([]byte("MIT-MAGIC-COOKIE-1"), []byte{1, 2, 3})
	if len(pkt)%4 != 0 {
		t.Errorf("EncodeSetupRequest packet length %d not 4-byte aligned", len(pkt))
	}
	if pkt[0] != byteOrderByteLittleEndian {
		t.Errorf("byte-order byte = %#x, want %#x", pkt[0], byteOrderByteLittleEndian)
	}
}
