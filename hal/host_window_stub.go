//go:build !tinygo && !cgo

package hal

import "fmt"

// RunWindow is unavailable without cgo; use -headless or -tui.
func RunWindow(_ func(h HAL) (Runner, error)) error {
	return fmt.Errorf("window: build with CGO_ENABLED=1: %w", ErrNotImplemented)
}
