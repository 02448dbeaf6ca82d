// setup.go
package rocjpegsetup

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/arc-language/rocjpeg-setup/pkg/backend"
	"github.com/arc-language/rocjpeg-setup/pkg/core"
	"github.com/arc-language/rocjpeg-setup/pkg/installer"
	"github.com/arc-language/rocjpeg-setup/pkg/platform"
	"github.com/arc-language/rocjpeg-setup/pkg/registry"
	"github.com/arc-language/rocjpeg-setup/pkg/rocm"
	"github.com/arc-language/rocjpeg-setup/pkg/runner"
)

// Version is the setup tool version
const Version = "2.0.0"

// Re-export core types for convenience
type (
	Config   = core.Config
	Profile  = backend.Profile
	Platform = platform.Info
	Plan     = registry.Plan
	Step     = installer.Step
	Runner   = runner.Runner
)

// DefaultConfig returns a configuration with built-in defaults
func DefaultConfig() Config {
	return core.DefaultConfig()
}

// Options overrides the host-facing parts of a Manager. Zero values select
// the real host.
type Options struct {
	Runner        runner.Runner
	Registry      *registry.Registry
	Log           logrus.FieldLogger
	OSReleasePath string
	Superuser     *bool
	Observer      installer.Observer

	// CommandExists probes PATH, platform.CommandExists by default
	CommandExists func(name string) bool
}

// Manager runs the dependency setup pipeline
type Manager struct {
	config    core.Config
	runner    runner.Runner
	registry  *registry.Registry
	log       logrus.FieldLogger
	osRelease string
	superuser bool
	observer  installer.Observer
	exists    func(string) bool
}

// Prepared is everything derived before any package-manager call
type Prepared struct {
	Config   core.Config // after profile policy
	Platform platform.Info
	Profile  backend.Profile
	Plan     registry.Plan
	Steps    []installer.Step
}

// NewManager creates a setup manager for cfg
func NewManager(cfg core.Config, opts Options) (*Manager, error) {
	m := &Manager{
		config:    cfg,
		runner:    opts.Runner,
		registry:  opts.Registry,
		log:       opts.Log,
		osRelease: opts.OSReleasePath,
		observer:  opts.Observer,
		exists:    opts.CommandExists,
	}

	if m.log == nil {
		m.log = logrus.StandardLogger()
	}
	if m.exists == nil {
		m.exists = platform.CommandExists
	}
	if m.osRelease == "" {
		m.osRelease = platform.OSReleasePath
	}
	if opts.Superuser != nil {
		m.superuser = *opts.Superuser
	} else {
		m.superuser = unix.Geteuid() == 0
	}

	if m.registry == nil {
		reg, err := registry.Load(cfg.Catalog)
		if err != nil {
			return nil, errors.Wrap(err, "loading package catalog")
		}
		m.registry = reg
	}

	if m.runner == nil {
		return nil, errors.New("runner is required")
	}

	return m, nil
}

// Detect classifies the host and selects its package-manager profile
func (m *Manager) Detect() (platform.Info, backend.Profile, error) {
	info, err := platform.Detect(m.osRelease)
	if err != nil {
		return info, backend.Profile{}, err
	}

	profile, err := backend.Select(info.Family)
	if err != nil {
		return info, backend.Profile{}, err
	}

	return info, profile, nil
}

// HelperFound reports whether the privilege helper is in PATH. A superuser
// without it installs it first.
func (m *Manager) HelperFound() bool {
	return m.exists(backend.SudoExecutable)
}

// Prepare detects the platform and resolves the command sequence without
// running anything
func (m *Manager) Prepare() (*Prepared, error) {
	info, profile, err := m.Detect()
	if err != nil {
		return nil, err
	}

	cfg := profile.ApplyPolicy(m.config)
	if cfg.Runtime != m.config.Runtime {
		m.log.WithField("profile", profile.Name).Info("Runtime packages disabled for this platform")
	}

	plan, err := m.registry.Resolve(info, cfg.Runtime)
	if err != nil {
		return nil, err
	}

	inst := installer.New(profile, m.runner, installer.Options{Superuser: m.superuser, Log: m.log})
	return &Prepared{
		Config:   cfg,
		Platform: info,
		Profile:  profile,
		Plan:     plan,
		Steps:    inst.Steps(plan),
	}, nil
}

// Install verifies ROCm, detects the platform and installs every package
// tier. The first failure aborts the run.
func (m *Manager) Install(ctx context.Context) error {
	m.log.WithField("path", m.config.RocmPath).Info("ROCm path set")
	if err := rocm.Check(ctx, m.config.RocmPath, m.runner, m.log); err != nil {
		return err
	}

	prep, err := m.Prepare()
	if err != nil {
		return err
	}

	m.log.WithFields(logrus.Fields{
		"platform": prep.Platform.Name(),
		"profile":  prep.Profile.Name,
		"runtime":  prep.Config.Runtime,
	}).Info("Installing rocJPEG dependencies")

	if !m.superuser && !m.HelperFound() {
		m.log.WithField("helper", backend.SudoExecutable).Warn("Privilege helper not found in PATH, package-manager commands will fail")
	}

	inst := installer.New(prep.Profile, m.runner, installer.Options{
		Superuser: m.superuser,
		Observer:  m.observer,
		Log:       m.log,
	})
	return inst.Run(ctx, prep.Plan)
}
