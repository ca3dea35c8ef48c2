package randr

import (
	"testing"

	"go.novaterm.dev/x11/internal/wire"
)

func buildRandrReplyHeader(total int) *wire.Encoder {
	e := wire.NewEncoder(total)
	e.U8(1) // reply marker
	e.U8(0) // opcode-specific byte, overwritten by callers that need it
	e.U16(3) // sequence number
	e.U32(uint32((total - 32) / 4))
	return e
}

func TestDecodeQueryVersionReply(t *testing.T) {
	e := buildRandrReplyHeader(32)
	e.U32(1) // major
	e.U32(6) // minor
	e.Pad(32 - len(e.Buf))
	reply, err := DecodeQueryVersionReply(e.Buf)
	if err != nil {
		t.Fatalf("DecodeQueryVersionReply: %v", err)
	}
	if reply.MajorVersion != 1 || reply.MinorVersion != 6 {
		t.Errorf("reply = %+v, want MajorVersion=1 MinorVersion=6", reply)
	}
}

func TestDecodeSetScreenConfigReply(t *testing.T) {
	e := buildRandrReplyHeader(32)
	e.Buf[1] = uint8(ConfigStatusSuccess)
	e.U32(1000) // new timestamp
	e.U32(2000) // new config timestamp
	e.U32(0x57) // root
	e.U16(uint16(SubpixelHorizontalRGB))
	e.Pad(32 - len(e.Buf))
	reply, err := DecodeSetScreenConfigReply(e.Buf)
	if err != nil {
		t.Fatalf("DecodeSetScreenConfigReply: %v", err)
	}
	if reply.Status != ConfigStatusSuccess || reply.Root != 0x57 {
		t.Errorf("reply = %+v, unexpected fields", reply)
	}
	if reply.NewTimestamp != 1000 || reply.NewConfigurationTimestamp != 2000 {
		t.Errorf("reply timestamps = %+v, want 1000/2000", reply)
	}
	if reply.SubpixelOrder != SubpixelHorizontalRGB {
		t.Errorf("SubpixelOrder = %v, want SubpixelHorizontalRGB", reply.SubpixelOrder)
	}
}

func TestDecodeGetCrtcInfoReply(t *testing.T) {
	e := buildRandrReplyHeader(44)
	e.Buf[1] = uint8(ConfigStatusSuccess)
	e.U32(42) // timestamp
	e.I16(10)
	e.I16(20)
	e.U16(1920)
	e.U16(1080)
	e.U32(7) // mode
	e.U16(uint16(Rotate0))
	e.U16(2) // nOutputs
	e.U16(uint16(Rotate0 | Rotate90))
	e.U16(1) // nPossibleOutputs
	e.U32(101)
	e.U32(102)
	e.U32(201)

	reply, err := DecodeGetCrtcInfoReply(e.Buf)
	if err != nil {
		t.Fatalf("DecodeGetCrtcInfoReply: %v", err)
	}
	if reply.X != 10 || reply.Y != 20 || reply.Width != 1920 || reply.Height != 1080 {
		t.Errorf("reply geometry = %+v, unexpected", reply)
	}
	if len(reply.Outputs) != 2 || reply.Outputs[0] != 101 || reply.Outputs[1] != 102 {
		t.Errorf("Outputs = %+v, want [101 102]", reply.Outputs)
	}
	if len(reply.PossibleOutputs) != 1 || reply.PossibleOutputs[0] != 201 {
		t.Errorf("PossibleOutputs = %+v, want [201]", reply.PossibleOutputs)
	}
}

func TestDecodeGetMonitorsReply(t *testing.T) {
	e := buildRandrReplyHeader(60)
	e.U32(55) // timestamp
	e.U32(1)  // nmonitors
	e.U32(1)  // noutputs informational
	e.Pad(12)

	e.U32(9001) // name atom
	e.Bool8(true)
	e.Bool8(false)
	e.U16(1) // ncrtcs
	e.I16(0)
	e.I16(0)
	e.U16(1920)
	e.U16(1080)
	e.U32(508)
	e.U32(285)
	e.U32(301) // crtc id

	reply, err := DecodeGetMonitorsReply(e.Buf)
	if err != nil {
		t.Fatalf("DecodeGetMonitorsReply: %v", err)
	}
	if reply.Timestamp != 55 {
		t.Errorf("Timestamp = %d, want 55", reply.Timestamp)
	}
	if len(reply.Monitors) != 1 {
		t.Fatalf("len(Monitors) = %d, want 1", len(reply.Monitors))
	}
	mon := reply.Monitors[0]
	if mon.Name != 9001 || !mon.Primary || mon.Automatic {
		t.Errorf("monitor = %+v, unexpected fields", mon)
	}
	if len(mon.Crtcs) != 1 || mon.Crtcs[0] != 301 {
		t.Errorf("Crtcs = %+v, want [301]", mon.Crtcs)
	}
}

// TestDecodeGetCrtcInfoReplyTruncatedArray checks that a server-declared
// nOutputs/nPossibleOutputs larger than the bytes actually present in the
// packet is rejected with ErrShortReply instead of panicking on an
// out-of-range slice read.
func TestDecodeGetCrtcInfoReplyTruncatedArray(t *testing.T) {
	e := buildRandrReplyHeader(36)
	e.Buf[1] = uint8(ConfigStatusSuccess)
	e.U32(42) // timestamp
	e.I16(10)
	e.I16(20)
	e.U16(1920)
	e.U16(1080)
	e.U32(7) // mode
	e.U16(uint16(Rotate0))
	e.U16(5) // nOutputs claims 5, but no output ids follow
	e.U16(uint16(Rotate0))
	e.U16(0) // nPossibleOutputs

	if _, err := DecodeGetCrtcInfoReply(e.Buf); err != ErrShortReply {
		t.Errorf("err = %v, want ErrShortReply", err)
	}
}

// TestDecodeGetMonitorsReplyTruncatedArray checks the same for a
// server-declared nmonitors/ncrtcs exceeding the packet's remaining bytes.
func TestDecodeGetMonitorsReplyTruncatedArray(t *testing.T) {
	e := buildRandrReplyHeader(32)
	e.U32(55) // timestamp
	e.U32(3)  // nmonitors claims 3, but no monitor records follow
	e.U32(0)  // noutputs
	e.Pad(12)

	if _, err := DecodeGetMonitorsReply(e.Buf); err != ErrShortReply {
		t.Errorf("err = %v, want ErrShortReply", err)
	}

	e2 := buildRandrReplyHeader(60)
	e2.U32(55) // timestamp
	e2.U32(1)  // nmonitors
	e2.U32(1)  // noutputs
	e2.Pad(12)
	e2.U32(9001) // name atom
	e2.Bool8(true)
	e2.Bool8(false)
	e2.U16(4) // ncrtcs claims 4, but only one id follows
	e2.I16(0)
	e2.I16(0)
	e2.U16(1920)
	e2.U16(1080)
	e2.U32(508)
	e2.U32(285)
	e2.U32(301) // only one crtc id present

	if _, err := DecodeGetMonitorsReply(e2.Buf); err != ErrShortReply {
		t.Errorf("err = %v, want ErrShortReply", err)
	}
}

func TestDecodeReplyShort(t *testing.T) {
	if _, err := DecodeQueryVersionReply([]byte{1, 2, 3}); err != ErrShortReply {
		t.Errorf("err = %v, want ErrShortReply", err)
	}
	if _, err := DecodeGetCrtcInfoReply(make([]byte, 10)); err != ErrShortReply {
		t.Errorf("err = %v, want ErrShortReply", err)
	}
}
