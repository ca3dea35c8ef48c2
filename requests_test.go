package x11

import "testing"

// TestRequestEncodeLengthInvariant checks that every encoded request's
// length word (bytes 2-3, in 4-byte units) matches the packet's actual
// byte length, and that the whole packet is 4-byte aligned, for requests
// spanning a range of body shapes.
func TestRequestEncodeLengthInvariant(t *testing.T) {
	reqs := []request{
		MapWindow(1),
		UnmapWindow(1),
		DestroyWindow(1),
		CreateWindow(1, 0, 1, 24, 0x21, 0, 0, 100, 100, 1, CWBackPixel, []uint32{0xffffff}),
		ConfigureWindow(1, ConfigWidth|ConfigHeight, []uint32{200, 300}),
		InternAtom("WM_PROTOCOLS", false),
		InternAtom("X", true),
		GetAtomName(42),
		QueryExtension("MIT-SHM"),
		GetInputFocus(),
		GetGeometry(7),
	}
	for i, r := range reqs {
		pkt := r.encode()
		if len(pkt)%4 != 0 {
			t.Errorf("req #%d: packet length %d not 4-byte aligned", i, len(pkt))
		}
		lengthWord := uint16(pkt[2]) | uint16(pkt[3])<<8
		if int(lengthWord)*4 != len(pkt) {
			t.Errorf("req #%d: length word says %d words (%d bytes), packet is %d bytes",
				i, lengthWord, int(lengthWord)*4, len(pkt))
		}
	}
}

func TestCreateWindowOpcodeAndDepth(t *testing.T) {
	r := CreateWindow(1, 0, 1, 24, 0x21, 0, 0, 100, 100, 0, 0, nil)
	if r.opcode != opCreateWindow {
		t.Errorf("opcode = %d, want opCreateWindow", r.opcode)
	}
	if r.extra != 24 {
		t.Errorf("extra (depth) = %d, want 24", r.extra)
	}
}

func TestInternAtomOnlyIfExistsFlag(t *testing.T) {
	r := InternAtom("X", true)
	if r.extra != 1 {
		t.Errorf("InternAtom(onlyIfExists=true).extra = %d, want 1", r.extra)
	}
	if !r.expectsReply {
		t.Error("InternAtom should expect a reply")
	}
	r2 := InternAtom("X", false)
	if r2.extra != 0 {
		t.Errorf("InternAtom(onlyIfExists=false).extra = %d, want 0", r2.extra)
	}
}

// TestInternAtomNamePadding checks the LISTofCARD8 padding rule: the
// request body must round up to a 4-byte boundary regardless of name
// length.
func TestInternAtomNamePadding(t *testing.T) {
	for _, name := range []string{"", "A", "AB", "ABC", "ABCD", "ABCDE"} {
		pkt := InternAtom(name, false).encode()
		if len(pkt)%4 != 0 {
			t.Errorf("InternAtom(%q) packet length %d not aligned", name, len(pkt))
		}
	}
}
