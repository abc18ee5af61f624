//go:build unix

package reload

import (
	"errors"
	"slices"
	"testing"

	"github.com/mitchellh/go-ps"
)

type fakeProcess struct {
	pid  int
	name string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 1 }
func (p fakeProcess) Executable() string { return p.name }

func stubProcesses(t *testing.T, procs []ps.Process, err error) {
	t.Helper()
	orig := processLister
	processLister = func() ([]ps.Process, error) { return procs, err }
	t.Cleanup(func() { processLister = orig })
}

func stubSignal(t *testing.T, fn func(int) error) {
	t.Helper()
	orig := signal
	signal = fn
	t.Cleanup(func() { signal = orig })
}

func TestFindProcessByName(t *testing.T) {
	stubProcesses(t, []ps.Process{
		fakeProcess{10, "waybar"},
		fakeProcess{11, "hyprland"},
		fakeProcess{12, "waybar"},
	}, nil)

	pids, err := FindProcessByName("waybar")
	if err != nil {
		t.Fatalf("FindProcessByName: %v", err)
	}
	if !slices.Equal(pids, []int{10, 12}) {
		t.Errorf("pids = %v, want [10 12]", pids)
	}
}

func TestReloadWaybar(t *testing.T) {
	t.Run("signals every instance", func(t *testing.T) {
		stubProcesses(t, []ps.Process{fakeProcess{7, "waybar"}, fakeProcess{9, "waybar"}}, nil)
		var signalled []int
		stubSignal(t, func(pid int) error {
			signalled = append(signalled, pid)
			return nil
		})

		pids, err := ReloadWaybar()
		if err != nil {
			t.Fatalf("ReloadWaybar: %v", err)
		}
		if !slices.Equal(pids, []int{7, 9}) || !slices.Equal(signalled, pids) {
			t.Errorf("pids = %v, signalled = %v", pids, signalled)
		}
	})

	t.Run("no instances", func(t *testing.T) {
		stubProcesses(t, nil, nil)
		if _, err := ReloadWaybar(); err == nil {
			t.Error("expected error when waybar is not running")
		}
	})

	t.Run("listing fails", func(t *testing.T) {
		stubProcesses(t, nil, errors.New("boom"))
		if _, err := ReloadWaybar(); err == nil {
			t.Error("expected error when the process list is unavailable")
		}
	})

	t.Run("signal fails", func(t *testing.T) {
		stubProcesses(t, []ps.Process{fakeProcess{7, "waybar"}}, nil)
		stubSignal(t, func(int) error { return errors.New("denied") })
		if _, err := ReloadWaybar(); err == nil {
			t.Error("expected error when the signal cannot be sent")
		}
	})
}
