// Package x11 implements an X11 core-protocol client: a non-blocking
// wire reader, a little-endian request/reply/event/error codec, a
// resource-id allocator, the ConnectionSetup handshake, a reply
// correlator, and an extension registry, fronted by a Session façade.
//
// The MIT-SHM and RANDR extensions live in the x11/shm and x11/randr
// subpackages.
package x11
