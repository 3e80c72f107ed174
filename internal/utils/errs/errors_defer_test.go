package errs

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestCapture(t *testing.T) {
	tests := []struct {
		name     string
		initial  error
		errFunc  func() error
		msg      string
		expected string
	}{
		{
			name:     "No error from errFunc",
			errFunc:  func() error { return nil },
			msg:      "release memory",
			expected: "",
		},
		{
			name:     "Error from errFunc with no initial error",
			errFunc:  func() error { return errors.New("free failed") },
			msg:      "release memory",
			expected: "release memory: free failed",
		},
		{
			name:     "Error from errFunc with initial error",
			initial:  errors.New("encode failed"),
			errFunc:  func() error { return errors.New("free failed") },
			msg:      "release memory",
			expected: "encode failed\nrelease memory: free failed",
		},
		{
			name:     "Error from errFunc with initial wrapped error",
			initial:  fmt.Errorf("frame 2: %w", errors.New("bad dimension")),
			errFunc:  func() error { return errors.New("free failed") },
			msg:      "release memory",
			expected: "frame 2: bad dimension\nrelease memory: free failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.initial
			Capture(&err, tt.errFunc, tt.msg)
			if tt.expected == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestCaptureGeneric(t *testing.T) {
	sentinel := errors.New("remove failed")
	var err error
	CaptureGeneric(&err, func(path string) error {
		assert.Equal(t, "/tmp/out", path)
		return sentinel
	}, "/tmp/out", "cleanup")
	assert.ErrorIs(t, err, sentinel)
}

func TestCaptureClose(t *testing.T) {
	var err error
	CaptureClose(&err, nil, "nothing")
	assert.NoError(t, err)

	var c io.Closer = closerFunc(func() error { return io.ErrClosedPipe })
	CaptureClose(&err, c, "close output")
	assert.ErrorIs(t, err, io.ErrClosedPipe)
	assert.Contains(t, err.Error(), "close output")
}
