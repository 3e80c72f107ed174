package errors

// AssetIgnoredError reports an asset that was kept as-is instead of converted.
type AssetIgnoredError struct {
	s string
}

func (e *AssetIgnoredError) Error() string {
	return e.s
}

func NewAssetIgnored(text string) error {
	return &AssetIgnoredError{text}
}
