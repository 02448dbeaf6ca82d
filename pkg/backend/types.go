// pkg/backend/types.go
package backend

import (
	"github.com/pkg/errors"

	"github.com/arc-language/rocjpeg-setup/pkg/core"
	"github.com/arc-language/rocjpeg-setup/pkg/platform"
	"github.com/arc-language/rocjpeg-setup/pkg/runner"
)

// SudoExecutable is the privilege-escalation helper
const SudoExecutable = "sudo"

// SudoPackage is the package that provides SudoExecutable
const SudoPackage = "sudo"

// Profile is the package-manager command set for one OS family
type Profile struct {
	Name                string
	Family              platform.Family
	Executable          string   // e.g. apt-get
	ConfirmFlag         string   // assume-yes / non-interactive flag
	UnauthenticatedFlag string   // skip signature checks
	UpdateVerb          string   // refresh repository metadata
	InstallVerb         string   // install a package
	SudoFlags           []string // extra flags passed to sudo

	// ForceRuntimeOff disables the runtime tier regardless of the user's
	// choice.
	ForceRuntimeOff bool
}

// Select returns the profile for an OS family. Every supported family maps
// to exactly one profile; there is no fallback.
func Select(family platform.Family) (Profile, error) {
	switch family {
	case platform.FamilyRHEL:
		return YumProfile(), nil
	case platform.FamilyDebian:
		return AptProfile(), nil
	case platform.FamilySUSE:
		return ZypperProfile(), nil
	case platform.FamilyMariner:
		return TdnfProfile(), nil
	default:
		return Profile{}, errors.Wrapf(core.ErrPlatformNotSupported, "no package manager profile for %q", family)
	}
}

// ApplyPolicy returns cfg adjusted for profile policy
func (p Profile) ApplyPolicy(cfg core.Config) core.Config {
	if p.ForceRuntimeOff {
		cfg.Runtime = false
	}
	return cfg
}

// ValidateCommand refreshes the helper's cached credentials
func (p Profile) ValidateCommand() runner.Command {
	return runner.Command{Executable: SudoExecutable, Args: []string{"-v"}}
}

// UpdateCommand refreshes repository metadata through the helper
func (p Profile) UpdateCommand() runner.Command {
	return p.privileged(p.UpdateVerb)
}

// InstallCommand installs one package through the helper
func (p Profile) InstallCommand(pkg string) runner.Command {
	return p.privileged(p.InstallVerb, pkg)
}

// BareUpdateCommand refreshes metadata without the helper, for superusers
func (p Profile) BareUpdateCommand() runner.Command {
	return runner.Command{Executable: p.Executable, Args: p.managerArgs(false, p.UpdateVerb)}
}

// BareInstallCommand installs without the helper, for superusers
func (p Profile) BareInstallCommand(pkg string) runner.Command {
	return runner.Command{Executable: p.Executable, Args: p.managerArgs(false, p.InstallVerb, pkg)}
}

func (p Profile) privileged(verb string, operands ...string) runner.Command {
	args := append([]string{}, p.SudoFlags...)
	args = append(args, p.Executable)
	args = append(args, p.managerArgs(true, verb, operands...)...)
	return runner.Command{Executable: SudoExecutable, Args: args}
}

func (p Profile) managerArgs(unauthenticated bool, verb string, operands ...string) []string {
	args := []string{}
	if p.ConfirmFlag != "" {
		args = append(args, p.ConfirmFlag)
	}
	if unauthenticated && p.UnauthenticatedFlag != "" {
		args = append(args, p.UnauthenticatedFlag)
	}
	args = append(args, verb)
	return append(args, operands...)
}
