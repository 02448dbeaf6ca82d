package installer

import (
	"context"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/rocjpeg-setup/pkg/backend"
	"github.com/arc-language/rocjpeg-setup/pkg/core"
	"github.com/arc-language/rocjpeg-setup/pkg/registry"
	"github.com/arc-language/rocjpeg-setup/pkg/runner"
)

// fakeRunner fails the n-th command (1-based) when failAt > 0
type fakeRunner struct {
	commands []string
	failAt   int
	status   runner.Status
}

func (f *fakeRunner) Run(ctx context.Context, cmd runner.Command) (runner.Status, error) {
	f.commands = append(f.commands, cmd.String())
	if f.failAt > 0 && len(f.commands) == f.failAt {
		return f.status, errors.New("exit status")
	}
	return 0, nil
}

type transitionRecorder struct {
	states []State
	steps  map[State]int
}

func (r *transitionRecorder) StateChanged(from, to State) {
	r.states = append(r.states, to)
}

func (r *transitionRecorder) CommandStarted(state State, cmd runner.Command) {
	if r.steps == nil {
		r.steps = map[State]int{}
	}
	r.steps[state]++
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

var fullPlan = registry.Plan{Tiers: []registry.Tier{
	{Name: registry.TierCommon, Packages: []string{"gcc", "cmake"}},
	{Name: registry.TierCore, Packages: []string{"libva-amdgpu-dev"}},
	{Name: registry.TierCoreExtra, Packages: []string{"libstdc++-12-dev"}},
	{Name: registry.TierRuntime, Packages: []string{"vainfo"}},
}}

func TestRunOrder(t *testing.T) {
	r := &fakeRunner{}
	rec := &transitionRecorder{}
	inst := New(backend.AptProfile(), r, Options{Observer: rec, Log: quietLogger()})

	require.NoError(t, inst.Run(context.Background(), fullPlan))
	require.Equal(t, StateDone, inst.State())

	apt := "sudo -S apt-get -y --allow-unauthenticated "
	require.Equal(t, []string{
		"sudo -v",
		apt + "update",
		"sudo -v",
		apt + "install gcc",
		apt + "install cmake",
		"sudo -v",
		apt + "install libva-amdgpu-dev",
		"sudo -v",
		apt + "install libstdc++-12-dev",
		"sudo -v",
		apt + "install vainfo",
	}, r.commands)

	require.Equal(t, []State{
		StateUpdating,
		StateInstallingCommon,
		StateInstallingCore,
		StateInstallingCoreExtra,
		StateInstallingRuntime,
		StateDone,
	}, rec.states)
}

func TestValidationPrecedesInstallsInEveryStage(t *testing.T) {
	inst := New(backend.YumProfile(), &fakeRunner{}, Options{Superuser: true, Log: quietLogger()})

	validated := map[State]bool{}
	for _, step := range inst.Steps(fullPlan) {
		if step.Command.String() == "sudo -v" {
			validated[step.State] = true
			continue
		}
		if step.Command.Executable == backend.SudoExecutable {
			require.True(t, validated[step.State], "%s runs before validation in %s", step.Command, step.State)
		}
	}
}

func TestSuperuserInstallsHelperFirst(t *testing.T) {
	r := &fakeRunner{}
	inst := New(backend.ZypperProfile(), r, Options{Superuser: true, Log: quietLogger()})

	require.NoError(t, inst.Run(context.Background(), registry.Plan{}))
	require.Equal(t, []string{
		"zypper -n refresh",
		"zypper -n install sudo",
		"sudo -v",
		"sudo zypper -n --no-gpg-checks refresh",
	}, r.commands)
}

func TestFirstFailureAborts(t *testing.T) {
	// 1: sudo -v, 2: update, 3: sudo -v, 4: first common install
	r := &fakeRunner{failAt: 4, status: runner.ExitStatus(1)}
	rec := &transitionRecorder{}
	inst := New(backend.AptProfile(), r, Options{Observer: rec, Log: quietLogger()})

	err := inst.Run(context.Background(), fullPlan)
	require.Error(t, err)
	require.Equal(t, StateFailed, inst.State())
	require.Len(t, r.commands, 4, "no command may run after a failure")
	require.Zero(t, rec.steps[StateInstallingCore])

	var cmdErr *core.CommandError
	require.True(t, errors.As(err, &cmdErr))
	require.Equal(t, "installing-common", cmdErr.Stage)
	require.Equal(t, uint32(1<<8), cmdErr.Status)
	require.Equal(t, uint8(1), cmdErr.Code)
	require.Equal(t, 1, core.ExitCode(err))
	require.True(t, errors.Is(err, core.ErrCommandFailed))
}

func TestSignalFailureDecodes(t *testing.T) {
	r := &fakeRunner{failAt: 1, status: runner.Status(15)}
	inst := New(backend.TdnfProfile(), r, Options{Log: quietLogger()})

	err := inst.Run(context.Background(), fullPlan)
	require.Equal(t, 15, core.ExitCode(err))
}

func TestRunnerErrorWithZeroStatusFails(t *testing.T) {
	r := &fakeRunner{failAt: 2, status: 0}
	inst := New(backend.AptProfile(), r, Options{Log: quietLogger()})

	err := inst.Run(context.Background(), fullPlan)
	require.Error(t, err)
	require.Equal(t, StateFailed, inst.State())
	require.Len(t, r.commands, 2)

	var cmdErr *core.CommandError
	require.True(t, errors.As(err, &cmdErr))
	require.Equal(t, "updating", cmdErr.Stage)
	require.Equal(t, uint8(0), cmdErr.Code)
	require.Equal(t, core.ExitFailure, core.ExitCode(err))
}

func TestRunOnlyOnce(t *testing.T) {
	inst := New(backend.AptProfile(), &fakeRunner{}, Options{Log: quietLogger()})
	require.NoError(t, inst.Run(context.Background(), registry.Plan{}))
	require.Error(t, inst.Run(context.Background(), registry.Plan{}))
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &fakeRunner{}
	inst := New(backend.AptProfile(), r, Options{Log: quietLogger()})
	require.Error(t, inst.Run(ctx, fullPlan))
	require.Equal(t, StateFailed, inst.State())
	require.Empty(t, r.commands)
}

func TestEmptyTiersAreSkipped(t *testing.T) {
	plan := registry.Plan{Tiers: []registry.Tier{
		{Name: registry.TierCommon, Packages: []string{"cmake"}},
		{Name: registry.TierCore},
	}}
	inst := New(backend.AptProfile(), &fakeRunner{}, Options{Log: quietLogger()})

	steps := inst.Steps(plan)
	require.Len(t, steps, 4)
	require.Equal(t, StateInstallingCommon, steps[len(steps)-1].State)
}

func TestStateString(t *testing.T) {
	require.Equal(t, "idle", StateIdle.String())
	require.Equal(t, "installing-core-extra", StateInstallingCoreExtra.String())
	require.True(t, StateDone.Terminal())
	require.True(t, StateFailed.Terminal())
	require.False(t, StateInstallingRuntime.Terminal())
	require.Equal(t, "unknown", State(42).String())
}
