package webp

// Image is a decoded image whose pixels live in native memory. Close releases them.
type Image struct {
	data   *Memory
	layout PixelLayout
	width  uint32
	height uint32
}

// Bytes returns the pixels, valid until Close.
func (i *Image) Bytes() []byte       { return i.data.Bytes() }
func (i *Image) Width() uint32       { return i.width }
func (i *Image) Height() uint32      { return i.height }
func (i *Image) Layout() PixelLayout { return i.layout }

// Close releases the native pixel buffer.
func (i *Image) Close() error {
	return i.data.Close()
}
