package x11

import "time"

// PendingReply is the handle Session.Send returns for a reply-bearing
// request (spec.md §3 "Pending reply"). Await consumes it exactly once;
// a second Await, or a reply arriving for a handle the caller abandoned,
// is reported rather than silently resolved twice.
type PendingReply struct {
	seq       uint16
	awaited   bool
	abandoned bool
	ready     bool
	bytes     []byte
	err       error
}

// SequenceNo returns the request sequence number this handle correlates
// replies and errors against.
func (p *PendingReply) SequenceNo() uint16 { return p.seq }

// Abandon marks a pending reply as one the caller will never Await. If a
// reply or error later arrives for it, the correlator sweeps it instead
// of delivering it, counting the sweep on Metrics.OrphansSwept.
func (p *PendingReply) Abandon() { p.abandoned = true }

// correlator implements C5: it assigns outgoing sequence numbers,
// matches incoming reply/error packets back to the pending request that
// produced them, and queues events and unmatched errors in arrival
// order. It is single-threaded and cooperative, per spec.md §5: Await
// only ever makes progress by pumping this same goroutine's connection,
// never by blocking on another goroutine.
type correlator struct {
	c   *conn
	log *sessionLogger
	met *Metrics
	ext *extensionRegistry

	maxRequestLength uint16

	nextSeq uint16
	pending map[uint16]*PendingReply

	events          []Event
	unmatchedErrors []*X11Error
}

func newCorrelator(c *conn, log *sessionLogger, met *Metrics, ext *extensionRegistry, maxRequestLength uint16) *correlator {
	return &correlator{
		c:                c,
		log:              log,
		met:              met,
		ext:              ext,
		maxRequestLength: maxRequestLength,
		nextSeq:          1,
		pending:          make(map[uint16]*PendingReply),
	}
}

// send writes req to the wire, assigning the next sequence number and,
// if the request expects a reply, registering and returning a
// PendingReply. Sequence assignment happens atomically with the write:
// nothing else runs between bumping nextSeq and committing the bytes to
// the socket, so sequence numbers and bytes-on-the-wire order never
// diverge (spec.md §5 "ordering guarantees"). A request whose encoded
// length exceeds maximum_request_length * 4 is rejected locally with an
// ErrorLength error before anything reaches the socket (spec.md line
// 239) and never consumes a sequence number, since the server never
// sees it.
func (c *correlator) send(req request) (*PendingReply, error) {
	pkt := req.encode()
	if c.maxRequestLength != 0 && len(pkt) > int(c.maxRequestLength)*4 {
		return nil, &X11Error{Code: ErrorLength}
	}

	seq := c.nextSeq
	c.nextSeq++ // wraps at 65536, matching the protocol's 16-bit sequence space

	if err := c.c.writeAll(pkt); err != nil {
		return nil, err
	}
	c.met.incRequestsSent()

	if !req.expectsReply {
		return nil, nil
	}
	p := &PendingReply{seq: seq}
	c.pending[seq] = p
	return p, nil
}

// await pumps the connection, classifying packets as they arrive, until
// p's reply or error has been delivered.
func (c *correlator) await(p *PendingReply) ([]byte, error) {
	if p.awaited {
		return nil, ErrPendingAlreadyAwaited
	}
	p.awaited = true
	start := time.Now()
	for !p.ready {
		if err := c.pumpOne(); err != nil {
			return nil, err
		}
	}
	if c.met != nil && c.met.AwaitLatency != nil {
		c.met.AwaitLatency.Observe(time.Since(start).Seconds())
	}
	delete(c.pending, p.seq)
	return p.bytes, p.err
}

// pumpOne blocks (cooperatively, via conn.ensure) until one full packet
// is available, classifies it by its first byte per spec.md §4.1 (0 =
// error, 1 = reply, anything else = event), and routes it.
func (c *correlator) pumpOne() error {
	head, err := c.c.peek(32)
	if err != nil {
		return err
	}
	marker := head[0]

	switch {
	case marker == 0:
		return c.handleError()
	case marker == 1:
		return c.handleReply(head)
	default:
		return c.handleEvent()
	}
}

func (c *correlator) handleError() error {
	pkt, err := c.c.drain(32)
	if err != nil {
		return err
	}
	xerr, err := decodeError(pkt)
	if err != nil {
		return err
	}
	c.met.incErrorsReceived()

	if p, ok := c.pending[xerr.SequenceNo]; ok {
		if p.abandoned {
			c.sweepOrphan(xerr.SequenceNo)
			return nil
		}
		p.ready = true
		p.err = xerr
		return nil
	}
	c.unmatchedErrors = append(c.unmatchedErrors, xerr)
	if c.log != nil {
		c.log.warnUnmatchedError(xerr)
	}
	return nil
}

func (c *correlator) handleReply(head []byte) error {
	seq := littleEndian.Uint16(head[2:4])
	extraWords := littleEndian.Uint32(head[4:8])
	total := 32 + int(extraWords)*4

	pkt, err := c.c.drain(total)
	if err != nil {
		return err
	}
	c.met.incRepliesReceived()

	p, ok := c.pending[seq]
	if !ok {
		// No request we tracked expects this sequence number; nothing
		// to deliver it to.
		return nil
	}
	if p.abandoned {
		c.sweepOrphan(seq)
		return nil
	}
	p.ready = true
	p.bytes = pkt
	return nil
}

func (c *correlator) handleEvent() error {
	pkt, err := c.c.drain(32)
	if err != nil {
		return err
	}
	ev, err := decodeEvent(pkt, c.ext)
	if err != nil {
		return err
	}
	c.met.incEventsReceived()
	c.events = append(c.events, ev)
	return nil
}

func (c *correlator) sweepOrphan(seq uint16) {
	delete(c.pending, seq)
	c.met.incOrphansSwept()
	if c.log != nil {
		c.log.debugOrphanSwept(seq)
	}
}

// PollEvent pumps the connection non-blockingly if nothing is queued,
// and pops the oldest queued event if one is available.
func (c *correlator) pollEvent() (Event, bool, error) {
	if len(c.events) == 0 {
		if err := c.pumpOneNonBlocking(); err != nil && err != ErrWouldBlock {
			return nil, false, err
		}
	}
	if len(c.events) == 0 {
		return nil, false, nil
	}
	ev := c.events[0]
	c.events = c.events[1:]
	return ev, true, nil
}

// PollError pops the oldest unmatched protocol error, if any.
func (c *correlator) pollError() (*X11Error, bool) {
	if len(c.unmatchedErrors) == 0 {
		return nil, false
	}
	xerr := c.unmatchedErrors[0]
	c.unmatchedErrors = c.unmatchedErrors[1:]
	return xerr, true
}

func (c *correlator) pumpOneNonBlocking() error {
	if c.c.buffered() < 32 {
		if err := c.c.fillOnce(); err != nil {
			return err
		}
	}
	if c.c.buffered() < 32 {
		return ErrWouldBlock
	}
	return c.pumpOne()
}
