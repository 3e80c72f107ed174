package webp

// #cgo LDFLAGS: -lwebpmux -lwebpdemux -lwebp
// #cgo darwin CFLAGS: -I/opt/homebrew/include -I/usr/local/include
// #cgo darwin LDFLAGS: -L/opt/homebrew/lib -L/usr/local/lib
// #include "safewebp.h"
import "C"

import "unsafe"

// cBytes returns a pointer to the first byte of b for the duration of a single
// native call. The caller has already checked that b is long enough.
func cBytes(b []byte) *C.uint8_t {
	if len(b) == 0 {
		return nil
	}
	return (*C.uint8_t)(unsafe.Pointer(&b[0]))
}

func cBool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}
