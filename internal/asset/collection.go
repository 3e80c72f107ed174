package asset

// Collection is the set of images loaded from one folder, archive or file.
type Collection struct {
	// Path the collection was loaded from.
	Path string `json:"path" yaml:"path"`
	// Assets in load order.
	Assets []*Asset `json:"assets" yaml:"assets"`
}

// TotalSize is the sum of every asset's size in bytes.
func (c *Collection) TotalSize() uint64 {
	var total uint64
	for _, a := range c.Assets {
		total += a.Size
	}
	return total
}
