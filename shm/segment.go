// Package shm implements the SysV shared-memory transport (spec.md's
// "Framebuffer segment") and the MIT-SHM wire extension that grants an
// X server access to it.
package shm

import (
	"errors"

	"golang.org/x/sys/unix"
)

var (
	// ErrAlreadyFreed reports a Data/Free call on a Segment whose
	// memory has already been released.
	ErrAlreadyFreed = errors.New("shm: segment already freed")

	// ErrNotAttached reports a MarkDetached call on a segment never
	// marked attached by MarkAttached. Free also returns it for a segment
	// that is still marked attached.
	ErrNotAttached = errors.New("shm: segment not attached to a server")
)

// Id identifies a SysV shared-memory segment (the kernel-assigned
// shmid), grounded on just_shared_memory/src/lib.rs's SharedMemoryId.
type Id int32

// Segment is a zeroed SysV shared-memory region a client maps locally
// and can grant an X server access to via MIT-SHM's Attach request.
// Grounded on just_shared_memory/src/lib.rs's SharedMemory (zeroed,
// data/data_mut, free) and
// original_source/crates/just_immui/src/backend/x11_mit_shm.rs's
// client-owns-the-mapping, server-is-granted-access split (spec.md
// §4.7's shared-memory segment operations and Attach/Detach ordering
// invariant).
type Segment struct {
	id       Id
	size     uint32
	data     []byte
	attached bool
	freed    bool
}

// Zeroed allocates a new zeroed SysV shared-memory region of the given
// size in bytes, mapped read-write into this process.
func Zeroed(size uint32) (*Segment, error) {
	shmid, err := unix.SysvShmGet(unix.IPC_PRIVATE, int(size), unix.IPC_CREAT|0600)
	if err != nil {
		return nil, err
	}
	addr, err := unix.SysvShmAttach(shmid, 0, 0)
	if err != nil {
		return nil, err
	}
	data := sysvShmSlice(addr, int(size))
	for i := range data {
		data[i] = 0
	}
	return &Segment{id: Id(shmid), size: size, data: data}, nil
}

// Id returns the kernel shmid, the value MIT-SHM's wire requests
// reference via a client-chosen ShmSegId once attached.
func (s *Segment) Id() Id { return s.id }

// Size returns the segment's size in bytes.
func (s *Segment) Size() uint32 { return s.size }

// Data returns the segment's backing memory. Calling it after Free
// returns ErrAlreadyFreed.
func (s *Segment) Data() ([]byte, error) {
	if s.freed {
		return nil, ErrAlreadyFreed
	}
	return s.data, nil
}

// MarkAttached records that the segment has been granted to the server
// via a successful MIT-SHM Attach/AttachFd request. Free refuses to run
// while a segment is marked attached: spec.md §4.7 requires Detach
// before the client removes the OS-level segment, since removing it out
// from under a server that still has it attached is undefined.
func (s *Segment) MarkAttached() { s.attached = true }

// MarkDetached clears the attached flag after a successful MIT-SHM
// Detach request.
func (s *Segment) MarkDetached() error {
	if !s.attached {
		return ErrNotAttached
	}
	s.attached = false
	return nil
}

// Attached reports whether the segment is currently granted to a
// server.
func (s *Segment) Attached() bool { return s.attached }

// Free detaches the local mapping and marks the kernel segment for
// removal (IPC_RMID), which only takes effect once every attached
// process, including this one, has detached. It refuses to run while
// MarkAttached has not been balanced by MarkDetached, enforcing the
// Attach/Detach ordering invariant at the Go API boundary rather than
// leaving it to caller discipline alone.
func (s *Segment) Free() error {
	if s.freed {
		return ErrAlreadyFreed
	}
	if s.attached {
		return ErrNotAttached
	}
	addr := sysvShmAddr(s.data)
	if err := unix.SysvShmDetach(addr); err != nil {
		return err
	}
	if _, err := unix.SysvShmCtl(int(s.id), unix.IPC_RMID, nil); err != nil {
		return err
	}
	s.freed = true
	s.data = nil
	return nil
}
