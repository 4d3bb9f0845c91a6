package brochure

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat = errors.New("brochure: unsupported image format")
	ErrEmptyImage        = errors.New("brochure: empty image data")
)

// ConfigurationError reports an invalid value handed to the engine by its
// caller. It is never recovered from.
type ConfigurationError struct {
	Field string
	Value string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("brochure: invalid %s %q", e.Field, e.Value)
}

// AssetLoadError reports an upload that could not be decoded into a texture.
type AssetLoadError struct {
	Slot Slot
	Name string
	Err  error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("brochure: load %s texture %q: %v", e.Slot, e.Name, e.Err)
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}
