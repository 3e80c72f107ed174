package errs

import (
	"errors"
	"fmt"
	"io"
)

// Capture runs errFunc and joins its error, if any, onto *errPtr so that a
// failing cleanup never hides the error that is already being returned.
func Capture(errPtr *error, errFunc func() error, msg string) {
	err := errFunc()
	if err == nil {
		return
	}
	*errPtr = errors.Join(*errPtr, fmt.Errorf("%s: %w", msg, err))
}

// CaptureGeneric is Capture for cleanups that take an argument, such as os.RemoveAll.
func CaptureGeneric[K any](errPtr *error, errFunc func(value K) error, value K, msg string) {
	err := errFunc(value)
	if err == nil {
		return
	}
	*errPtr = errors.Join(*errPtr, fmt.Errorf("%s: %w", msg, err))
}

// CaptureClose closes c and joins a close failure onto *errPtr. A nil closer is ignored.
func CaptureClose(errPtr *error, c io.Closer, msg string) {
	if c == nil {
		return
	}
	Capture(errPtr, c.Close, msg)
}
