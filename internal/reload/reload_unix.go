//go:build unix

package reload

import (
	"fmt"
	"syscall"
)

// signal is swapped out in tests.
var signal = func(pid int) error {
	return syscall.Kill(pid, syscall.SIGUSR2)
}

// ReloadWaybar sends SIGUSR2 to every running waybar so it re-reads its
// style sheet. It returns the signalled PIDs.
func ReloadWaybar() ([]int, error) {
	pids, err := FindProcessByName(Waybar)
	if err != nil {
		return nil, fmt.Errorf("failed to find waybar processes: %w", err)
	}
	if len(pids) == 0 {
		return nil, fmt.Errorf("no running waybar instances found to reload")
	}

	for _, pid := range pids {
		if err := signal(pid); err != nil {
			return nil, fmt.Errorf("failed to send reload signal to waybar (PID %d): %w", pid, err)
		}
	}
	return pids, nil
}
