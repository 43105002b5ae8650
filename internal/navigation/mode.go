// Package navigation holds the hosts that own the current address: an
// in-memory history and wrappers around any navigator.
package navigation

import (
	"fmt"

	"taskDashboard/internal/filter/query"
)

// Mode decides whether a navigation adds a history entry.
type Mode int

const (
	// ModePush adds a new history entry.
	ModePush Mode = iota

	// ModeReplace overwrites the current entry, so filter clicks do not
	// fill the back button.
	ModeReplace
)

func (m Mode) String() string {
	switch m {
	case ModePush:
		return "push"
	case ModeReplace:
		return "replace"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode accepts "push" and "replace". An empty string is ModeReplace.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "replace":
		return ModeReplace, nil
	case "push":
		return ModePush, nil
	default:
		return ModeReplace, fmt.Errorf("unknown navigation mode %q", s)
	}
}

// Navigator receives navigation commands. It never reports failure back to
// the caller.
type Navigator interface {
	Navigate(addr query.Address, mode Mode)
}

// Func adapts a plain function to Navigator.
type Func func(addr query.Address, mode Mode)

func (f Func) Navigate(addr query.Address, mode Mode) {
	f(addr, mode)
}
