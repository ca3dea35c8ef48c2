package x11

// extensionInfo is one entry of the extension registry cache: the
// server's answer to QueryExtension for a given extension name, kept so
// a second lookup never needs another round trip (spec.md §4.6).
type extensionInfo struct {
	cached      bool
	present     bool
	majorOpcode uint8
	firstEvent  uint8
	firstError  uint8
}

// extensionRegistry caches QueryExtension results by name, grounded on
// xgb.go's RegisterExtension/extensions map, extended with
// first_event/first_error (spec.md §4.6) and a present/cached
// distinction that lets a known-absent extension short-circuit (the
// [SUPPLEMENT] behavior recorded in SPEC_FULL.md §3).
type extensionRegistry struct {
	byName map[string]*extensionInfo
}

func newExtensionRegistry() *extensionRegistry {
	return &extensionRegistry{byName: make(map[string]*extensionInfo)}
}

// lookup returns the cached entry for name, if any, without a round
// trip.
func (r *extensionRegistry) lookup(name string) (*extensionInfo, bool) {
	info, ok := r.byName[name]
	return info, ok
}

// ownerOf returns the name of the present extension whose first_event
// is the largest value not exceeding code, consulting the registry in
// first_event order (spec.md §4.5/§4.6): an event code belongs to
// whichever registered extension's event range starts closest to it
// from below. ok is false if no present extension's first_event is
// <= code (the event path falls back to a generic decode).
func (r *extensionRegistry) ownerOf(code uint8) (name string, info *extensionInfo, ok bool) {
	var best *extensionInfo
	for n, i := range r.byName {
		if !i.cached || !i.present || code < i.firstEvent {
			continue
		}
		if best == nil || i.firstEvent > best.firstEvent {
			best, name = i, n
		}
	}
	if best == nil {
		return "", nil, false
	}
	return name, best, true
}

// record stores a QueryExtension reply for name.
func (r *extensionRegistry) record(name string, reply *QueryExtensionReply) *extensionInfo {
	info := &extensionInfo{
		cached:      true,
		present:     reply.Present,
		majorOpcode: reply.MajorOpcode,
		firstEvent:  reply.FirstEvent,
		firstError:  reply.FirstError,
	}
	r.byName[name] = info
	return info
}

// extensionRequest is a request carrying an extension's major opcode
// instead of a fixed core opcode, per spec.md §4.6
// "send_extension_request".
type extensionRequest struct {
	majorOpcode  uint8
	minorOpcode  uint8
	body         []byte
	expectsReply bool
}

func (r extensionRequest) encode() request {
	return request{opcode: r.majorOpcode, extra: r.minorOpcode, body: r.body, expectsReply: r.expectsReply}
}
