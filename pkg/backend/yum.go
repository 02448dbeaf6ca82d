// pkg/backend/yum.go
package backend

import "github.com/arc-language/rocjpeg-setup/pkg/platform"

// YumProfile returns the profile for RHEL, CentOS and their rebuilds
func YumProfile() Profile {
	return Profile{
		Name:                "yum",
		Family:              platform.FamilyRHEL,
		Executable:          "yum",
		ConfirmFlag:         "-y",
		UnauthenticatedFlag: "--nogpgcheck",
		UpdateVerb:          "makecache",
		InstallVerb:         "install",
	}
}
