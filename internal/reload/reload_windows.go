//go:build windows

package reload

import "fmt"

// ReloadWaybar is unsupported on Windows since waybar doesn't run on this platform.
func ReloadWaybar() ([]int, error) {
	return nil, fmt.Errorf("waybar reload is not supported on Windows")
}
