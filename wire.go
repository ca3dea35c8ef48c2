package x11

import "go.novaterm.dev/x11/internal/wire"

// littleEndian is the byte order this module's handshake always selects
// (byteOrderByteLittleEndian below); request/reply/event decoding shares
// the internal/wire codec with the shm and randr subpackages.
var littleEndian = wire.Order

// byteOrderByteLittleEndian is the first byte of a ConnectionSetup
// request: 0x6c ('l') requests little-endian, 0x42 ('B') requests
// big-endian. This module only ever sends 'l'.
const byteOrderByteLittleEndian = 0x6c

func pad4(n int) int { return wire.Pad4(n) }

func padLen4(n int) int { return wire.Len4(n) }

type encoder = wire.Encoder

func newEncoder(capHint int) *encoder { return wire.NewEncoder(capHint) }

type decoder = wire.Decoder

func newDecoder(buf []byte) *decoder { return wire.NewDecoder(buf) }
