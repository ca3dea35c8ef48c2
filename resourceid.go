package x11

// ResourceId is the generic 29-bit server resource identifier every
// specific resource type (window, pixmap, gcontext, ...) wraps. Values
// never exceed 29 bits; the top 3 bits are reserved by the protocol.
type ResourceId uint32

// WindowId, PixmapId, GContextId, AtomId, CrtcId, OutputId and ShmSegId
// are distinct phantom-typed views over the same 32-bit representation:
// they share encoding but are not interchangeable at compile time, the
// same newtype-per-resource-kind pattern xgb.go's Id alias family uses.
type (
	WindowId   uint32
	PixmapId   uint32
	GContextId uint32
	AtomId     uint32
	CrtcId     uint32
	OutputId   uint32
	ShmSegId   uint32
	FontId     uint32
	CursorId   uint32
	ColormapId uint32
	DrawableId uint32
)

// OrNone wraps a resource id type that the wire format allows to be the
// sentinel "None" value (0) instead of a real resource.
type OrNone[R ~uint32] struct {
	id    R
	valid bool
}

// Some wraps a concrete resource id.
func Some[R ~uint32](id R) OrNone[R] { return OrNone[R]{id: id, valid: true} }

// None returns the "no resource" sentinel for R.
func None[R ~uint32]() OrNone[R] { return OrNone[R]{} }

// Get reports the wrapped id and whether one was present.
func (o OrNone[R]) Get() (R, bool) { return o.id, o.valid }

// Wire returns the on-the-wire encoding: 0 for None, the id otherwise.
func (o OrNone[R]) Wire() uint32 {
	if !o.valid {
		return 0
	}
	return uint32(o.id)
}

// orNoneFromWire decodes a wire value into an OrNone, treating 0 as None.
func orNoneFromWire[R ~uint32](v uint32) OrNone[R] {
	if v == 0 {
		return None[R]()
	}
	return Some(R(v))
}

// IdAllocator hands out resource ids within the base/mask range the
// server granted during handshake (spec.md §4.3): each id is
// base | (next & mask), with next bumped by the lowest set bit of mask
// after every allocation and
// wraparound reported as exhaustion rather than silently reusing ids.
type IdAllocator struct {
	base uint32
	mask uint32
	next uint32
}

// NewIdAllocator constructs an allocator from the resource-id-base and
// resource-id-mask the server returned in ConnectionSetup's Success reply.
func NewIdAllocator(base, mask uint32) *IdAllocator {
	return &IdAllocator{base: base, mask: mask}
}

// Allocate returns the next free generic resource id, or
// ErrIDsExhausted once every slot within mask has been handed out.
func (a *IdAllocator) Allocate() (ResourceId, error) {
	if a.mask == 0 {
		return 0, ErrIDsExhausted
	}
	if a.next > a.mask {
		return 0, ErrIDsExhausted
	}
	id := a.base | (a.next & a.mask)
	a.next += a.mask & -a.mask // lowest set bit of mask
	return ResourceId(id), nil
}

// AllocateWindow, AllocatePixmap, ... allocate a generic id and wrap it
// in the matching phantom resource type.
func (a *IdAllocator) AllocateWindow() (WindowId, error) {
	id, err := a.Allocate()
	return WindowId(id), err
}

func (a *IdAllocator) AllocatePixmap() (PixmapId, error) {
	id, err := a.Allocate()
	return PixmapId(id), err
}

func (a *IdAllocator) AllocateGContext() (GContextId, error) {
	id, err := a.Allocate()
	return GContextId(id), err
}

func (a *IdAllocator) AllocateShmSeg() (ShmSegId, error) {
	id, err := a.Allocate()
	return ShmSegId(id), err
}

func (a *IdAllocator) AllocateFont() (FontId, error) {
	id, err := a.Allocate()
	return FontId(id), err
}

func (a *IdAllocator) AllocateCursor() (CursorId, error) {
	id, err := a.Allocate()
	return CursorId(id), err
}

func (a *IdAllocator) AllocateColormap() (ColormapId, error) {
	id, err := a.Allocate()
	return ColormapId(id), err
}
