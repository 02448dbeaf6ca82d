// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/arc-language/rocjpeg-setup/pkg/core"
	"github.com/arc-language/rocjpeg-setup/pkg/platform"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// TierName names a package tier
type TierName string

const (
	TierCommon    TierName = "common"
	TierCore      TierName = "core"
	TierCoreExtra TierName = "core-extra"
	TierRuntime   TierName = "runtime"
)

// Group is a package list that applies only to one version tag
type Group struct {
	When string   `yaml:"when"`
	Pkgs []string `yaml:"pkgs"`
}

// Substitution swaps one package name for another on one version tag
type Substitution struct {
	When string `yaml:"when"`
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Entry holds the package tiers of one OS family
type Entry struct {
	Common  []string       `yaml:"common"`
	Core    []string       `yaml:"core"`
	Extra   []Group        `yaml:"extra"`
	Runtime []string       `yaml:"runtime"`
	Replace []Substitution `yaml:"replace"`
}

// Tier is one ordered package list of a plan
type Tier struct {
	Name     TierName
	Packages []string
}

// Plan is the ordered list of tiers to install
type Plan struct {
	Tiers []Tier
}

// Packages returns every package of the plan in install order
func (p Plan) Packages() []string {
	var pkgs []string
	for _, t := range p.Tiers {
		pkgs = append(pkgs, t.Packages...)
	}
	return pkgs
}

// Registry provides lookup into the package catalog
type Registry struct {
	entries map[platform.Family]Entry
}

// New returns the registry for the built-in catalog
func New() (*Registry, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog file. An empty path selects the built-in catalog.
func Load(path string) (*Registry, error) {
	if path == "" {
		return New()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(core.ErrInvalidArgument, "registry: reading %s: %v", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates catalog YAML
func Parse(data []byte) (*Registry, error) {
	var entries map[platform.Family]Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrapf(core.ErrInvalidArgument, "registry: failed to parse catalog: %v", err)
	}

	for family, entry := range entries {
		names := append(append(append([]string{}, entry.Common...), entry.Core...), entry.Runtime...)
		for _, g := range entry.Extra {
			names = append(names, g.Pkgs...)
		}
		for _, s := range entry.Replace {
			names = append(names, s.From, s.To)
		}
		for _, name := range names {
			if err := validName(name); err != nil {
				return nil, errors.Wrapf(err, "registry: family %s", family)
			}
		}
	}

	return &Registry{entries: entries}, nil
}

// validName rejects names the package manager would read as options
func validName(name string) error {
	if name == "" || strings.HasPrefix(name, "-") || strings.ContainsAny(name, " \t\n") {
		return errors.Wrapf(core.ErrInvalidArgument, "invalid package name %q", name)
	}
	return nil
}

// Resolve returns the install plan for a platform. Tier order is fixed:
// common, core, core-extra when the version tag matches, runtime when
// enabled.
func (r *Registry) Resolve(info platform.Info, runtime bool) (Plan, error) {
	entry, ok := r.entries[info.Family]
	if !ok {
		return Plan{}, errors.Wrapf(core.ErrPlatformNotSupported, "registry: no packages for family %q", info.Family)
	}

	subst := func(pkgs []string) []string {
		out := make([]string, len(pkgs))
		for i, pkg := range pkgs {
			out[i] = pkg
			for _, s := range entry.Replace {
				if s.When == info.VersionTag && s.From == pkg {
					out[i] = s.To
				}
			}
		}
		return out
	}

	plan := Plan{Tiers: []Tier{
		{Name: TierCommon, Packages: subst(entry.Common)},
		{Name: TierCore, Packages: subst(entry.Core)},
	}}

	var extra []string
	for _, g := range entry.Extra {
		if g.When == info.VersionTag {
			extra = append(extra, g.Pkgs...)
		}
	}
	if len(extra) > 0 {
		plan.Tiers = append(plan.Tiers, Tier{Name: TierCoreExtra, Packages: subst(extra)})
	}

	if runtime {
		plan.Tiers = append(plan.Tiers, Tier{Name: TierRuntime, Packages: subst(entry.Runtime)})
	}

	return plan, nil
}
