package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/rocjpeg-setup/pkg/core"
)

const ubuntu2204 = `PRETTY_NAME="Ubuntu 22.04.4 LTS"
NAME="Ubuntu"
VERSION_ID="22.04"
VERSION="22.04.4 LTS (Jammy Jellyfish)"
ID=ubuntu
ID_LIKE=debian
`

const rhel9 = `NAME="Red Hat Enterprise Linux"
VERSION="9.3 (Plow)"
ID="rhel"
ID_LIKE="fedora"
VERSION_ID="9.3"
CPE_NAME="cpe:/o:redhat:enterprise_linux:9::baseos"
`

const sles15 = `NAME="SLES"
VERSION="15-SP5"
VERSION_ID="15.5"
ID="sles"
ID_LIKE="suse"
`

const mariner2 = `NAME="Common Base Linux Mariner"
VERSION="2.0.20240123"
ID=mariner
VERSION_ID="2.0"
`

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		content string
		family  Family
		tag     string
	}{
		{"ubuntu 22.04", ubuntu2204, FamilyDebian, "-Ubuntu-22"},
		{"ubuntu one line", `ID=ubuntu VERSION_ID="22.04"`, FamilyDebian, "-Ubuntu-22"},
		{"ubuntu 20.04", "ID=ubuntu\nVERSION_ID=\"20.04\"\n", FamilyDebian, "-Ubuntu-20"},
		{"ubuntu 24.04", "ID=ubuntu\nVERSION_ID=\"24.04\"\n", FamilyDebian, "-Ubuntu-24"},
		{"ubuntu unknown", "ID=ubuntu\nVERSION_ID=\"26.04\"\n", FamilyDebian, "-Ubuntu-" + UndefinedVersion},
		{"debian 12", "ID=debian\nVERSION_ID=\"12\"\n", FamilyDebian, "-Debian-12"},
		{"debian no version", "ID=debian\n", FamilyDebian, "-Debian-" + UndefinedVersion},
		{"rhel 9", rhel9, FamilyRHEL, "-redhat-9"},
		{"centos 7", "ID=\"centos\"\nVERSION_ID=\"7\"\n", FamilyRHEL, "-redhat-7"},
		{"rhel unknown", "ID=\"rhel\"\nVERSION_ID=\"10.0\"\n", FamilyRHEL, "-redhat-centos-" + UndefinedVersion},
		{"sles", sles15, FamilySUSE, "-SLES"},
		{"mariner", mariner2, FamilyMariner, "-Mariner"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			info, err := Classify(tc.content)
			require.NoError(t, err)
			require.Equal(t, tc.family, info.Family)
			require.Equal(t, tc.tag, info.VersionTag)
		})
	}
}

func TestClassifyRHELAnyCaseAnyPosition(t *testing.T) {
	for _, content := range []string{
		"ID=CentOS",
		"NAME=\"CENTOS Stream\"",
		"HOME_URL=https://www.redhat.com/",
		"foo=bar ID_LIKE=\"RHEL fedora\"",
		"PRETTY_NAME=\"Rocky\" ID_LIKE=\"rhel centos fedora\"",
	} {
		info, err := Classify(content)
		require.NoError(t, err, content)
		require.Equal(t, FamilyRHEL, info.Family, content)
	}
}

func TestClassifyPrecedence(t *testing.T) {
	// RHEL markers win over everything that follows them in the rule order
	info, err := Classify("ID=ubuntu ID_LIKE=centos")
	require.NoError(t, err)
	require.Equal(t, FamilyRHEL, info.Family)

	info, err = Classify("ID=sles ID_LIKE=debian")
	require.NoError(t, err)
	require.Equal(t, FamilyDebian, info.Family)
}

func TestClassifyUnsupported(t *testing.T) {
	info, err := Classify("ID=arch\nNAME=\"Arch Linux\"\n")
	require.Error(t, err)
	require.True(t, errors.Is(err, core.ErrPlatformNotSupported))
	require.Equal(t, FamilyUnsupported, info.Family)
	require.Contains(t, err.Error(), SupportedPlatforms)
}

func TestDetect(t *testing.T) {
	dir := t.TempDir()

	_, err := Detect(filepath.Join(dir, "os-release"))
	require.True(t, errors.Is(err, core.ErrPlatformNotSupported), "missing descriptor is unsupported")

	path := filepath.Join(dir, "os-release")
	require.NoError(t, os.WriteFile(path, []byte(ubuntu2204), 0644))
	info, err := Detect(path)
	require.NoError(t, err)
	require.Equal(t, FamilyDebian, info.Family)
	require.Equal(t, "22.04", info.VersionID)
	require.NotNil(t, info.Available)
}
