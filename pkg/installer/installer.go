// pkg/installer/installer.go
package installer

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/arc-language/rocjpeg-setup/pkg/backend"
	"github.com/arc-language/rocjpeg-setup/pkg/core"
	"github.com/arc-language/rocjpeg-setup/pkg/registry"
	"github.com/arc-language/rocjpeg-setup/pkg/runner"
)

// Step is one command together with the state it runs in
type Step struct {
	State   State
	Command runner.Command
}

// Observer is notified of state transitions and commands
type Observer interface {
	StateChanged(from, to State)
	CommandStarted(state State, cmd runner.Command)
}

// Options configures an Installer
type Options struct {
	// Superuser installs the helper with the bare package manager first
	Superuser bool
	Observer  Observer
	Log       logrus.FieldLogger
}

// Installer runs the package tiers of a plan one package at a time and
// stops at the first failure
type Installer struct {
	profile backend.Profile
	runner  runner.Runner
	opts    Options
	state   State
}

// New creates an installer in the Idle state
func New(profile backend.Profile, r runner.Runner, opts Options) *Installer {
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	return &Installer{
		profile: profile,
		runner:  r,
		opts:    opts,
		state:   StateIdle,
	}
}

// State returns the current state
func (i *Installer) State() State {
	return i.state
}

// Steps returns the full command sequence for plan. Every stage that
// installs anything starts with a helper validation.
func (i *Installer) Steps(plan registry.Plan) []Step {
	p := i.profile
	var steps []Step

	if i.opts.Superuser {
		steps = append(steps,
			Step{StateUpdating, p.BareUpdateCommand()},
			Step{StateUpdating, p.BareInstallCommand(backend.SudoPackage)},
		)
	}
	steps = append(steps,
		Step{StateUpdating, p.ValidateCommand()},
		Step{StateUpdating, p.UpdateCommand()},
	)

	for _, tier := range plan.Tiers {
		if len(tier.Packages) == 0 {
			continue
		}
		state := stateFor(tier.Name)
		steps = append(steps, Step{state, p.ValidateCommand()})
		for _, pkg := range tier.Packages {
			steps = append(steps, Step{state, p.InstallCommand(pkg)})
		}
	}

	return steps
}

// Run executes plan. It can only be called on an idle installer. On the
// first unsuccessful command the installer moves to Failed and returns a
// *core.CommandError with a stack trace attached.
func (i *Installer) Run(ctx context.Context, plan registry.Plan) error {
	if i.state != StateIdle {
		return errors.Errorf("installer already ran (state %s)", i.state)
	}

	for _, step := range i.Steps(plan) {
		if step.State != i.state {
			i.transition(step.State)
		}

		if err := ctx.Err(); err != nil {
			i.transition(StateFailed)
			return errors.Wrap(err, "install interrupted")
		}

		log := i.opts.Log.WithField("stage", i.state.String())
		log.WithField("command", step.Command.String()).Debug("Running step")
		if i.opts.Observer != nil {
			i.opts.Observer.CommandStarted(i.state, step.Command)
		}

		// A runner error with a zero status still fails the step
		st, err := i.runner.Run(ctx, step.Command)
		if !step.Command.Succeeded(st) || (err != nil && st.OK()) {
			stage := i.state
			i.transition(StateFailed)
			log.WithError(err).WithField("status", st.String()).Error("Command failed")
			return errors.WithStack(&core.CommandError{
				Command: step.Command.String(),
				Stage:   stage.String(),
				Status:  uint32(st),
				Code:    st.Code(),
				Err:     err,
			})
		}
	}

	i.transition(StateDone)
	return nil
}

func (i *Installer) transition(to State) {
	from := i.state
	i.state = to
	i.opts.Log.WithFields(logrus.Fields{"from": from.String(), "to": to.String()}).Debug("Installer state changed")
	if i.opts.Observer != nil {
		i.opts.Observer.StateChanged(from, to)
	}
}
