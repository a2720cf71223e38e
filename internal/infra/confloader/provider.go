// Package confloader provides configuration loading for snotify.
package confloader

import "errors"

// ErrReadBytesNotSupported is returned when ReadBytes is called on a map
// provider.
var ErrReadBytesNotSupported = errors.New("confloader: map provider supports Read only")

// mapProvider is a koanf provider backed by a plain map. koanf uses
// Read() for providers that have no byte representation.
type mapProvider map[string]any

// ReadBytes is unsupported for maps.
func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

// Read returns the configuration map.
func (m mapProvider) Read() (map[string]any, error) {
	return m, nil
}
