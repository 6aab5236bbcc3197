package release

import (
	"testing"

	"github.com/getcroc/getcroc/internal/platform"
)

func TestArchiveName(t *testing.T) {
	tests := []struct {
		name string
		info *platform.Info
		want string
	}{
		{
			name: "linux_64bit",
			info: &platform.Info{OS: "Linux", Arch: "64bit", Ext: "tar.gz"},
			want: "croc_v10.2.2_Linux-64bit.tar.gz",
		},
		{
			name: "macos_arm64",
			info: &platform.Info{OS: "macOS", Arch: "ARM64", Ext: "tar.gz"},
			want: "croc_v10.2.2_macOS-ARM64.tar.gz",
		},
		{
			name: "windows_zip",
			info: &platform.Info{OS: "Windows", Arch: "64bit", Ext: "zip"},
			want: "croc_v10.2.2_Windows-64bit.zip",
		},
		{
			name: "unknown_arch_still_forms_name",
			info: &platform.Info{OS: "Linux", Arch: "unknown", Ext: "tar.gz"},
			want: "croc_v10.2.2_Linux-unknown.tar.gz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Default.ArchiveName(tt.info); got != tt.want {
				t.Errorf("ArchiveName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArchiveURL(t *testing.T) {
	info := &platform.Info{OS: "Linux", Arch: "64bit", Ext: "tar.gz"}

	want := "https://github.com/schollz/croc/releases/download/v10.2.2/croc_v10.2.2_Linux-64bit.tar.gz"
	if got := Default.ArchiveURL(info); got != want {
		t.Errorf("ArchiveURL = %q, want %q", got, want)
	}
}

func TestChecksumNameAndURL(t *testing.T) {
	if got, want := Default.ChecksumName(), "croc_v10.2.2_checksums.txt"; got != want {
		t.Errorf("ChecksumName = %q, want %q", got, want)
	}

	want := "https://github.com/schollz/croc/releases/download/v10.2.2/croc_v10.2.2_checksums.txt"
	if got := Default.ChecksumURL(); got != want {
		t.Errorf("ChecksumURL = %q, want %q", got, want)
	}
}

func TestCustomCoordinates(t *testing.T) {
	coords := Coordinates{
		Binary:  "croc",
		Version: "9.0.0",
		BaseURL: "https://mirror.example.com/croc",
	}
	info := &platform.Info{OS: "Linux", Arch: "ARM64", Ext: "tar.gz"}

	want := "https://mirror.example.com/croc/v9.0.0/croc_v9.0.0_Linux-ARM64.tar.gz"
	if got := coords.ArchiveURL(info); got != want {
		t.Errorf("ArchiveURL = %q, want %q", got, want)
	}
}
