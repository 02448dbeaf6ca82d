// pkg/platform/utils.go
package platform

import (
	"os/exec"
	"strings"
)

// managers are the package-manager executables we know profiles for
var managers = []string{"apt-get", "yum", "zypper", "tdnf"}

// CommandExists checks if a command is available in PATH
func CommandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

func availableManagers() []string {
	available := []string{}
	for _, m := range managers {
		if CommandExists(m) {
			available = append(available, m)
		}
	}
	return available
}

// contains checks if a string slice contains a value
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
