package x11

import "testing"

func TestDecodeErrorFields(t *testing.T) {
	pkt := buildErrorPacket(uint8(ErrorValue), 42, 12, 3, 0xBADF00D)
	xerr, err := decodeError(pkt)
	if err != nil {
		t.Fatalf("decodeError: %v", err)
	}
	if xerr.Code != ErrorValue {
		t.Errorf("Code = %v, want Value", xerr.Code)
	}
	if xerr.SequenceNo != 42 {
		t.Errorf("SequenceNo = %d, want 42", xerr.SequenceNo)
	}
	if xerr.MajorOpcode != 12 {
		t.Errorf("MajorOpcode = %d, want 12", xerr.MajorOpcode)
	}
	if xerr.MinorOpcode != 3 {
		t.Errorf("MinorOpcode = %d, want 3", xerr.MinorOpcode)
	}
	if xerr.BadValue() != 0xBADF00D {
		t.Errorf("BadValue() = %#x, want 0xBADF00D", xerr.BadValue())
	}
}

func TestDecodeErrorUnknownCode(t *testing.T) {
	pkt := buildErrorPacket(200, 1, 0, 0, 0)
	if _, err := decodeError(pkt); err != ErrUnknownErrorCode {
		t.Fatalf("decodeError = %v, want ErrUnknownErrorCode", err)
	}
}

func TestDecodeErrorWrongLength(t *testing.T) {
	if _, err := decodeError(make([]byte, 31)); err != ErrUnexpectedReply {
		t.Fatalf("decodeError(31 bytes) = %v, want ErrUnexpectedReply", err)
	}
}

func TestErrorCodeString(t *testing.T) {
	if got := ErrorWindow.String(); got != "Window" {
		t.Errorf("ErrorWindow.String() = %q, want Window", got)
	}
	if got := ErrorCode(99).String(); got != "Unknown" {
		t.Errorf("ErrorCode(99).String() = %q, want Unknown", got)
	}
}
