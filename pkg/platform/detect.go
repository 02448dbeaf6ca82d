// pkg/platform/detect.go
package platform

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/arc-language/rocjpeg-setup/pkg/core"
)

// OSReleasePath is the standard OS descriptor file
const OSReleasePath = "/etc/os-release"

// UndefinedVersion is the tag suffix used when a family matched but its
// VERSION_ID is not one we know
const UndefinedVersion = "undefined-version"

// SupportedPlatforms is printed when detection fails
const SupportedPlatforms = "Ubuntu 20/22/24; Debian 11/12; CentOS 7/8; RedHat 7/8/9; SLES 15; Mariner"

// Family is an OS family sharing one package-manager profile
type Family string

const (
	FamilyRHEL        Family = "rhel"
	FamilyDebian      Family = "debian"
	FamilySUSE        Family = "suse"
	FamilyMariner     Family = "mariner"
	FamilyUnsupported Family = "unsupported"
)

// Info is the detected platform. It is derived once and never modified.
type Info struct {
	Family     Family
	Distro     string   // redhat, Ubuntu, Debian, SLES, Mariner
	VersionID  string   // raw VERSION_ID, may be empty
	VersionTag string   // e.g. -Ubuntu-22, -redhat-centos-undefined-version
	Available  []string // package managers found in PATH
}

// Name returns the platform name, e.g. linux-Ubuntu-22
func (i Info) Name() string {
	return "linux" + i.VersionTag
}

// String returns a string representation of the platform
func (i Info) String() string {
	return fmt.Sprintf("%s (family: %s, available: %v)", i.Name(), i.Family, i.Available)
}

type rule struct {
	family  Family
	markers []string
	distro  func(content string) string
	known   map[string][]string // distro -> known major versions
}

// rules are checked in order, first match wins
var rules = []rule{
	{
		family:  FamilyRHEL,
		markers: []string{"centos", "redhat", "rhel"},
		distro:  func(string) string { return "redhat" },
		known:   map[string][]string{"redhat": {"7", "8", "9"}},
	},
	{
		family:  FamilyDebian,
		markers: []string{"ubuntu", "debian"},
		distro: func(content string) string {
			if strings.Contains(content, "ubuntu") {
				return "Ubuntu"
			}
			return "Debian"
		},
		known: map[string][]string{
			"Ubuntu": {"20", "22", "24"},
			"Debian": {"11", "12"},
		},
	},
	{
		family:  FamilySUSE,
		markers: []string{"sles", "suse"},
		distro:  func(string) string { return "SLES" },
	},
	{
		family:  FamilyMariner,
		markers: []string{"mariner"},
		distro:  func(string) string { return "Mariner" },
	},
}

// Detect reads the OS descriptor at path and classifies it. A missing
// descriptor means the platform is unsupported.
func Detect(path string) (Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Info{Family: FamilyUnsupported}, unsupported(fmt.Sprintf("no OS descriptor at %s", path))
		}
		return Info{}, errors.Wrapf(err, "reading %s", path)
	}

	info, err := Classify(string(data))
	if err != nil {
		return info, err
	}
	info.Available = availableManagers()
	return info, nil
}

// Classify maps OS descriptor contents to a platform. Matching is by
// case-insensitive substring so unknown point releases still resolve.
func Classify(content string) (Info, error) {
	normalized := normalize(content)
	lower := strings.ToLower(normalized)
	versionID := versionID(normalized)

	for _, r := range rules {
		if !containsAny(lower, r.markers) {
			continue
		}

		distro := r.distro(lower)
		info := Info{
			Family:    r.family,
			Distro:    distro,
			VersionID: versionID,
		}

		known, versioned := r.known[distro]
		switch {
		case !versioned:
			info.VersionTag = "-" + distro
		case contains(known, major(versionID)):
			info.VersionTag = "-" + distro + "-" + major(versionID)
		case r.family == FamilyRHEL:
			info.VersionTag = "-redhat-centos-" + UndefinedVersion
		default:
			info.VersionTag = "-" + distro + "-" + UndefinedVersion
		}
		return info, nil
	}

	return Info{Family: FamilyUnsupported}, unsupported("unrecognized OS descriptor")
}

func unsupported(reason string) error {
	return errors.Wrapf(core.ErrPlatformNotSupported, "%s [supported on: %s]", reason, SupportedPlatforms)
}

// normalize folds the descriptor onto one line and drops quoting
func normalize(content string) string {
	content = strings.ReplaceAll(content, "\n", " ")
	content = strings.ReplaceAll(content, "\"", "")
	return strings.ReplaceAll(content, "'", "")
}

func versionID(normalized string) string {
	for _, field := range strings.Fields(normalized) {
		key, value, ok := strings.Cut(field, "=")
		if ok && strings.EqualFold(key, "VERSION_ID") {
			return value
		}
	}
	return ""
}

func major(version string) string {
	head, _, _ := strings.Cut(version, ".")
	return head
}
