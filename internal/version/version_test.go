package version

import (
	"bytes"
	"strings"
	"testing"
)

func TestBuildInfoString(t *testing.T) {
	tests := []struct {
		name string
		info BuildInfo
		want string
	}{
		{
			name: "release",
			info: BuildInfo{Version: "1.2.3", GitCommit: "0123456789abcdef", BuildTime: "2024-05-01T10:20:30Z",
				GoVersion: "go1.23.4", Platform: "linux", Arch: "amd64"},
			want: "cyclenes 1.2.3 (commit 0123456) built 2024-05-01 10:20:30 go1.23.4 linux/amd64",
		},
		{
			name: "dev",
			info: BuildInfo{Version: "dev", GitCommit: "unknown", BuildTime: "unknown",
				GoVersion: "go1.23.4", Platform: "darwin", Arch: "arm64"},
			want: "cyclenes dev (commit unknown) go1.23.4 darwin/arm64",
		},
		{
			name: "unparsed time",
			info: BuildInfo{Version: "dev", GitCommit: "abc", BuildTime: "yesterday",
				GoVersion: "go1.23.4", Platform: "linux", Arch: "386"},
			want: "cyclenes dev (commit abc) built yesterday go1.23.4 linux/386",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetBuildInfoOverride(t *testing.T) {
	saved := Version
	defer func() { Version = saved }()

	Version = "1.2.3"
	if got := GetBuildInfo().Version; got != "1.2.3" {
		t.Errorf("Expected 1.2.3, got %s", got)
	}
	if !strings.HasPrefix(GetBuildInfo().String(), "cyclenes 1.2.3 ") {
		t.Errorf("Unexpected build line %q", GetBuildInfo().String())
	}
}

func TestPrintBuildInfo(t *testing.T) {
	var buf bytes.Buffer
	PrintBuildInfo(&buf)
	for _, field := range []string{"Version:", "Git Commit:", "Go Version:", "Platform:"} {
		if !strings.Contains(buf.String(), field) {
			t.Errorf("Build info missing %q", field)
		}
	}
}
