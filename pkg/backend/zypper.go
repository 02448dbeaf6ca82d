// pkg/backend/zypper.go
package backend

import "github.com/arc-language/rocjpeg-setup/pkg/platform"

// ZypperProfile returns the profile for SLES. zypper takes -n and
// --no-gpg-checks as global options ahead of the verb.
func ZypperProfile() Profile {
	return Profile{
		Name:                "zypper",
		Family:              platform.FamilySUSE,
		Executable:          "zypper",
		ConfirmFlag:         "-n",
		UnauthenticatedFlag: "--no-gpg-checks",
		UpdateVerb:          "refresh",
		InstallVerb:         "install",
	}
}
