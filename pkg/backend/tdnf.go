// pkg/backend/tdnf.go
package backend

import "github.com/arc-language/rocjpeg-setup/pkg/platform"

// TdnfProfile returns the profile for CBL-Mariner. The runtime packages are
// not published for Mariner, so the runtime tier is always off.
func TdnfProfile() Profile {
	return Profile{
		Name:                "tdnf",
		Family:              platform.FamilyMariner,
		Executable:          "tdnf",
		ConfirmFlag:         "-y",
		UnauthenticatedFlag: "--nogpgcheck",
		UpdateVerb:          "makecache",
		InstallVerb:         "install",
		ForceRuntimeOff:     true,
	}
}
