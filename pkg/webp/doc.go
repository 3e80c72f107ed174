// Package webp is a memory-safe binding over the native libwebp codec.
//
// Every buffer handed to the native library is length-checked before the call,
// every buffer the native library allocates is wrapped in a *Memory that frees it
// exactly once, and every intermediate native structure (pictures, memory writers,
// animation encoder/decoder contexts, mux objects) is released on all exit paths.
//
// Encoding a single image:
//
//	enc, err := webp.FromRGBA(pix, width, height)
//	if err != nil {
//		return err
//	}
//	out, err := enc.EncodeLossless()
//	if err != nil {
//		return err
//	}
//	defer out.Close()
//	_, err = out.WriteTo(w)
//
// Animations use AnimEncoder and AnimDecoder. Frame timestamps are absolute
// milliseconds from the start of the animation.
//
// None of the owned types are safe for concurrent use. Independent encoders and
// decoders may run on separate goroutines.
package webp
