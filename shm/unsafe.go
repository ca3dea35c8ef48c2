package shm

import "unsafe"

// sysvShmSlice wraps a raw SysV shared-memory attach address in a Go
// byte slice. golang.org/x/sys/unix.SysvShmAttach hands back a bare
// uintptr (it wraps the shmat(2) syscall directly, with no typed-slice
// convenience); this is the one unsafe boundary needed to turn that
// address into a normal Go slice for the rest of the package to use.
func sysvShmSlice(addr uintptr, size int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
}

// sysvShmAddr recovers the raw attach address backing data, the inverse
// of sysvShmSlice, needed to call shmdt(2) on Free.
func sysvShmAddr(data []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(data)))
}
