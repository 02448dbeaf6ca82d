// pkg/installer/state.go
package installer

import "github.com/arc-language/rocjpeg-setup/pkg/registry"

// State is a step of the install state machine:
// Idle -> Updating -> InstallingCommon -> InstallingCore ->
// InstallingCoreExtra -> InstallingRuntime -> Done, with Failed reachable
// from any non-terminal state.
type State int

const (
	StateIdle State = iota
	StateUpdating
	StateInstallingCommon
	StateInstallingCore
	StateInstallingCoreExtra
	StateInstallingRuntime
	StateDone
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:                "idle",
	StateUpdating:            "updating",
	StateInstallingCommon:    "installing-common",
	StateInstallingCore:      "installing-core",
	StateInstallingCoreExtra: "installing-core-extra",
	StateInstallingRuntime:   "installing-runtime",
	StateDone:                "done",
	StateFailed:              "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether no further transition is possible
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

func stateFor(tier registry.TierName) State {
	switch tier {
	case registry.TierCommon:
		return StateInstallingCommon
	case registry.TierCore:
		return StateInstallingCore
	case registry.TierCoreExtra:
		return StateInstallingCoreExtra
	case registry.TierRuntime:
		return StateInstallingRuntime
	default:
		return StateFailed
	}
}
