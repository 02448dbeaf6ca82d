// pkg/backend/apt.go
package backend

import "github.com/arc-language/rocjpeg-setup/pkg/platform"

// AptProfile returns the profile for Debian and Ubuntu
func AptProfile() Profile {
	return Profile{
		Name:                "apt",
		Family:              platform.FamilyDebian,
		Executable:          "apt-get",
		ConfirmFlag:         "-y",
		UnauthenticatedFlag: "--allow-unauthenticated",
		UpdateVerb:          "update",
		InstallVerb:         "install",
		SudoFlags:           []string{"-S"},
	}
}
