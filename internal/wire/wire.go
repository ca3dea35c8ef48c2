// Package wire implements the little-endian primitive codec the X11 core
// protocol and its extensions share: 4-byte alignment, unchecked scalar
// reads (callers check Remaining() before reading a server-declared
// count), and an append-only scalar writer. It is kept internal so
// the root x11 package and its shm/randr subpackages share one encoding
// rather than each re-deriving it, the same role the teacher's
// internal/bo package plays for byte-order selection.
package wire

import "encoding/binary"

// Order is the byte order every packet on an X11 connection uses once
// this module's handshake has selected little-endian (this module never
// requests big-endian).
var Order = binary.LittleEndian

// Pad4 returns the number of padding bytes needed to round n up to a
// multiple of 4.
func Pad4(n int) int { return (4 - n%4) % 4 }

// Len4 rounds n up to the next multiple of 4.
func Len4(n int) int { return n + Pad4(n) }

// Encoder accumulates a packet body with the padding/alignment helpers
// every request/reply encoder needs.
type Encoder struct {
	Buf []byte
}

func NewEncoder(capHint int) *Encoder {
	return &Encoder{Buf: make([]byte, 0, capHint)}
}

func (e *Encoder) U8(v uint8) *Encoder {
	e.Buf = append(e.Buf, v)
	return e
}

func (e *Encoder) Bool8(v bool) *Encoder {
	if v {
		return e.U8(1)
	}
	return e.U8(0)
}

func (e *Encoder) Pad(n int) *Encoder {
	for i := 0; i < n; i++ {
		e.Buf = append(e.Buf, 0)
	}
	return e
}

func (e *Encoder) U16(v uint16) *Encoder {
	var b [2]byte
	Order.PutUint16(b[:], v)
	e.Buf = append(e.Buf, b[:]...)
	return e
}

func (e *Encoder) I16(v int16) *Encoder { return e.U16(uint16(v)) }

func (e *Encoder) U32(v uint32) *Encoder {
	var b [4]byte
	Order.PutUint32(b[:], v)
	e.Buf = append(e.Buf, b[:]...)
	return e
}

func (e *Encoder) I32(v int32) *Encoder { return e.U32(uint32(v)) }

func (e *Encoder) Bytes(b []byte) *Encoder {
	e.Buf = append(e.Buf, b...)
	return e
}

func (e *Encoder) String8(s string) *Encoder {
	e.Buf = append(e.Buf, s...)
	return e
}

func (e *Encoder) AlignTo4() *Encoder { return e.Pad(Pad4(len(e.Buf))) }

// Decoder walks a received packet with primitive reads. It does not bounds
// check against Buf itself: fixed-size reply fields are safe because
// callers already verified len(pkt) against the reply's known minimum
// size, but a loop whose count comes from the server (an array length
// field) must check Remaining() against its per-element size before each
// read, or a malicious/buggy server can drive an out-of-range slice read.
type Decoder struct {
	Buf []byte
	pos int
}

func NewDecoder(buf []byte) *Decoder { return &Decoder{Buf: buf} }

func (d *Decoder) Remaining() int { return len(d.Buf) - d.pos }

func (d *Decoder) Skip(n int) { d.pos += n }

func (d *Decoder) U8() uint8 {
	v := d.Buf[d.pos]
	d.pos++
	return v
}

func (d *Decoder) Bool8() bool { return d.U8() != 0 }

func (d *Decoder) U16() uint16 {
	v := Order.Uint16(d.Buf[d.pos:])
	d.pos += 2
	return v
}

func (d *Decoder) I16() int16 { return int16(d.U16()) }

func (d *Decoder) U32() uint32 {
	v := Order.Uint32(d.Buf[d.pos:])
	d.pos += 4
	return v
}

func (d *Decoder) I32() int32 { return int32(d.U32()) }

func (d *Decoder) Bytes(n int) []byte {
	b := d.Buf[d.pos : d.pos+n]
	d.pos += n
	return b
}

func (d *Decoder) String8(n int) string { return string(d.Bytes(n)) }
