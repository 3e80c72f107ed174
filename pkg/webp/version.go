package webp

// #include "safewebp.h"
import "C"

import "fmt"

// Version is a libwebp component version.
type Version struct {
	Major    int
	Minor    int
	Revision int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Revision)
}

// libwebp packs versions as 0xMMmmrr.
func unpackVersion(v C.int) Version {
	n := int(v)
	return Version{Major: (n >> 16) & 0xff, Minor: (n >> 8) & 0xff, Revision: n & 0xff}
}

// EncoderVersion reports the version of the linked encoder library.
func EncoderVersion() Version { return unpackVersion(C.WebPGetEncoderVersion()) }

// DecoderVersion reports the version of the linked decoder library.
func DecoderVersion() Version { return unpackVersion(C.WebPGetDecoderVersion()) }

// MuxVersion reports the version of the linked mux library.
func MuxVersion() Version { return unpackVersion(C.WebPGetMuxVersion()) }

// DemuxVersion reports the version of the linked demux library.
func DemuxVersion() Version { return unpackVersion(C.WebPGetDemuxVersion()) }
