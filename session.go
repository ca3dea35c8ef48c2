package x11

import (
	"fmt"
	"log/slog"
)

// sessionState tracks the open -> normal -> closed lifecycle spec.md §4.8
// names for Session.
type sessionState uint8

const (
	stateOpen sessionState = iota
	stateNormal
	stateClosed
)

// Option configures a Session at construction time, following the
// functional-options pattern the teacher uses throughout (Option,
// WithByteOrder, WithReadLimit, ...).
type Option func(*sessionOptions)

type sessionOptions struct {
	logger  *slog.Logger
	metrics *Metrics
}

// WithLogger injects a structured logger. The default discards output,
// matching dittofs's internal/logger default of a quiet handler.
func WithLogger(l *slog.Logger) Option {
	return func(o *sessionOptions) { o.logger = l }
}

// WithMetrics injects a prometheus metrics bundle. The default is nil,
// which disables instrumentation without any call-site branching.
func WithMetrics(m *Metrics) Option {
	return func(o *sessionOptions) { o.metrics = m }
}

// Session is the façade spec.md §4.8 describes: it owns the connection,
// the reply correlator, the extension registry and the resource-id
// allocator, and is the only type most callers interact with directly.
type Session struct {
	conn       *conn
	corr       *correlator
	extensions *extensionRegistry
	ids        *IdAllocator
	log        *sessionLogger
	metrics    *Metrics

	setup *SetupSuccess
	state sessionState
}

// Open parses $DISPLAY, resolves and reads Xauthority, dials the
// display's unix-domain socket, performs the ConnectionSetup handshake,
// and returns a ready Session, per spec.md §4.4 and §4.8.
func Open(opts ...Option) (*Session, error) {
	o := &sessionOptions{}
	for _, opt := range opts {
		opt(o)
	}
	log := newSessionLogger(o.logger)

	dv, err := DisplayVarFromEnv()
	if err != nil {
		return nil, err
	}

	authName, authData := resolveAuth(dv, log)

	c, err := dialDisplay(dv.SocketPath())
	if err != nil {
		return nil, err
	}

	if err := c.writeAll(EncodeSetupRequest(authName, authData)); err != nil {
		c.close()
		return nil, err
	}
	setup, err := DecodeSetupResponse(c)
	if err != nil {
		c.close()
		return nil, err
	}
	log.debugHandshake("handshake complete",
		"screens", len(setup.Screens),
		"resource_id_base", setup.ResourceIdBase,
	)

	extensions := newExtensionRegistry()
	s := &Session{
		conn:       c,
		corr:       newCorrelator(c, log, o.metrics, extensions, setup.MaximumRequestLength),
		extensions: extensions,
		ids:        NewIdAllocator(setup.ResourceIdBase, setup.ResourceIdMask),
		log:        log,
		metrics:    o.metrics,
		setup:      setup,
		state:      stateNormal,
	}
	return s, nil
}

// resolveAuth looks up the Xauthority record matching dv, returning its
// name/data, or empty slices (no authentication) if none matches or the
// file cannot be read — matching spec.md §4.4 step 2's "best effort"
// framing: a missing or non-matching Xauthority is not fatal, some
// servers accept unauthenticated local connections.
func resolveAuth(dv DisplayVar, log *sessionLogger) (name, data []byte) {
	records, err := ReadAuthorityFile()
	if err != nil || len(records) == 0 {
		return nil, nil
	}
	hostname := dv.Hostname
	if hostname == "" {
		hostname = "localhost"
	}
	rec, ok := MatchAuthority(records, hostname, dv.DisplaySequence)
	if !ok {
		log.debugHandshake("no matching xauthority record", "hostname", hostname)
		return nil, nil
	}
	return rec.Name, rec.Data
}

// Setup returns the parsed ConnectionSetup Success body (screens,
// visuals, resource-id range, vendor info).
func (s *Session) Setup() *SetupSuccess { return s.setup }

// IdAllocator returns the session's resource-id allocator (C3).
func (s *Session) IdAllocator() *IdAllocator { return s.ids }

// Send writes req to the wire and returns a PendingReply if the request
// expects one, or nil otherwise.
func (s *Session) Send(req request) (*PendingReply, error) {
	if s.state == stateClosed {
		return nil, ErrClosed
	}
	return s.corr.send(req)
}

// Await blocks, pumping the connection, until p's reply or error has
// arrived, per spec.md §4.5's single await() operation.
func (s *Session) Await(p *PendingReply) ([]byte, error) {
	if s.state == stateClosed {
		return nil, ErrClosed
	}
	return s.corr.await(p)
}

// PollEvent returns the oldest queued event, pumping the connection
// non-blockingly first if the queue is empty.
func (s *Session) PollEvent() (Event, bool, error) {
	if s.state == stateClosed {
		return nil, false, ErrClosed
	}
	return s.corr.pollEvent()
}

// PollError returns the oldest unmatched protocol error, if any
// (spec.md §3 "first error" ordering).
func (s *Session) PollError() (*X11Error, bool) {
	return s.corr.pollError()
}

// Flush is a no-op on this transport (writeAll already blocks to
// completion); it is exposed so callers written against a buffered
// transport compile unchanged.
func (s *Session) Flush() error {
	if s.state == stateClosed {
		return ErrClosed
	}
	return s.conn.flush()
}

// Close releases the underlying socket. Sessions are not reusable after
// Close, matching spec.md §4.8's open -> normal -> closed lifecycle.
func (s *Session) Close() error {
	if s.state == stateClosed {
		return nil
	}
	s.state = stateClosed
	return s.conn.close()
}

// QueryExtension resolves an extension's major opcode, caching the
// result so a second call for the same name never round-trips, per
// spec.md §4.6 and the [SUPPLEMENT] present/cached distinction.
func (s *Session) QueryExtension(name string) (majorOpcode uint8, present bool, err error) {
	if info, ok := s.extensions.lookup(name); ok {
		return info.majorOpcode, info.present, nil
	}
	p, err := s.Send(QueryExtension(name))
	if err != nil {
		return 0, false, err
	}
	pkt, err := s.Await(p)
	if err != nil {
		return 0, false, err
	}
	reply, err := decodeQueryExtensionReply(pkt)
	if err != nil {
		return 0, false, err
	}
	info := s.extensions.record(name, reply)
	return info.majorOpcode, info.present, nil
}

// SendExtensionRequest routes req through the named extension's cached
// major opcode, failing with ErrExtensionNotPresent if QueryExtension
// previously reported the extension absent.
func (s *Session) SendExtensionRequest(extName string, minorOpcode uint8, body []byte, expectsReply bool) (*PendingReply, error) {
	info, ok := s.extensions.lookup(extName)
	if !ok {
		var err error
		_, _, err = s.QueryExtension(extName)
		if err != nil {
			return nil, err
		}
		info, _ = s.extensions.lookup(extName)
	}
	if !info.present {
		return nil, fmt.Errorf("%w: %s", ErrExtensionNotPresent, extName)
	}
	er := extensionRequest{
		majorOpcode:  info.majorOpcode,
		minorOpcode:  minorOpcode,
		body:         body,
		expectsReply: expectsReply,
	}
	return s.Send(er.encode())
}
