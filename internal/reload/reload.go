// Package reload signals running applications to pick up a rebuilt theme.
package reload

import (
	"fmt"

	"github.com/mitchellh/go-ps"
)

// Waybar is the executable name of the status bar reloaded after a build.
const Waybar = "waybar"

// processLister is swapped out in tests.
var processLister = ps.Processes

// FindProcessByName finds all PIDs of processes with the given executable
// name.
func FindProcessByName(name string) ([]int, error) {
	processes, err := processLister()
	if err != nil {
		return nil, fmt.Errorf("failed to get process list: %w", err)
	}

	var pids []int
	for _, p := range processes {
		if p.Executable() == name {
			pids = append(pids, p.Pid())
		}
	}
	return pids, nil
}
