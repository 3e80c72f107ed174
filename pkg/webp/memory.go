package webp

// #include "safewebp.h"
import "C"

import (
	"bytes"
	"fmt"
	"io"
	"runtime"
	"unsafe"
)

// noCopy makes go vet's copylocks check flag accidental copies of types that
// own native memory.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Memory is a byte buffer allocated by libwebp. It is released with WebPFree
// exactly once, either by Close or, if the owner forgets, when it becomes
// unreachable. Slices returned by Bytes are only valid until Close.
type Memory struct {
	noCopy  noCopy
	ptr     unsafe.Pointer
	size    int
	cleanup runtime.Cleanup
}

func newMemory(ptr unsafe.Pointer, size int) *Memory {
	m := &Memory{ptr: ptr, size: size}
	m.cleanup = runtime.AddCleanup(m, func(p unsafe.Pointer) {
		C.WebPFree(p)
	}, ptr)
	return m
}

// Bytes returns a view of the native buffer bounded to its length. It returns
// nil once the buffer has been released.
func (m *Memory) Bytes() []byte {
	if m == nil || m.ptr == nil {
		return nil
	}
	return unsafe.Slice((*byte)(m.ptr), m.size)
}

// Len returns the buffer length, or 0 once released.
func (m *Memory) Len() int {
	if m == nil || m.ptr == nil {
		return 0
	}
	return m.size
}

// Clone copies the buffer into Go memory.
func (m *Memory) Clone() []byte {
	return bytes.Clone(m.Bytes())
}

// WriteTo writes the buffer to w.
func (m *Memory) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(m.Bytes())
	return int64(n), err
}

// Close frees the native buffer. Calling Close more than once is a no-op.
func (m *Memory) Close() error {
	if m == nil || m.ptr == nil {
		return nil
	}
	m.cleanup.Stop()
	C.WebPFree(m.ptr)
	m.ptr = nil
	m.size = 0
	return nil
}

func (m *Memory) String() string {
	return fmt.Sprintf("webp.Memory(%d bytes)", m.Len())
}
