package cli

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/plzcli/plz/internal/buildinfo"
)

func TestCurrentVersionInfoFromBuildInfo(t *testing.T) {
	prevRead := readBuildInfo
	t.Cleanup(func() {
		readBuildInfo = prevRead
	})

	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			GoVersion: "go1.23.4",
			Main: debug.Module{
				Path:    "github.com/plzcli/plz",
				Version: "v1.2.3",
			},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc123"},
				{Key: "vcs.time", Value: "2026-02-14T17:00:00Z"},
				{Key: "vcs.modified", Value: "true"},
				{Key: "GOOS", Value: "windows"},
				{Key: "GOARCH", Value: "amd64"},
			},
		}, true
	}

	info := currentVersionInfo()

	if info.Version != "v1.2.3" {
		t.Fatalf("Version = %q, want %q", info.Version, "v1.2.3")
	}
	if info.Commit != "abc123" {
		t.Fatalf("Commit = %q, want %q", info.Commit, "abc123")
	}
	if info.CommitTime != "2026-02-14T17:00:00Z" {
		t.Fatalf("CommitTime = %q, want %q", info.CommitTime, "2026-02-14T17:00:00Z")
	}
	if !info.Modified {
		t.Fatal("Modified = false, want true")
	}
	if info.GoVersion != "go1.23.4" {
		t.Fatalf("GoVersion = %q, want %q", info.GoVersion, "go1.23.4")
	}
	if info.GOOS != "windows" {
		t.Fatalf("GOOS = %q, want %q", info.GOOS, "windows")
	}
	if info.GOARCH != "amd64" {
		t.Fatalf("GOARCH = %q, want %q", info.GOARCH, "amd64")
	}
}

func TestCurrentVersionInfoFallbackWhenBuildInfoMissing(t *testing.T) {
	prevRead := readBuildInfo
	t.Cleanup(func() {
		readBuildInfo = prevRead
	})

	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return nil, false
	}

	info := currentVersionInfo()

	if info.Version != "devel" {
		t.Fatalf("Version = %q, want %q", info.Version, "devel")
	}
	if info.GoVersion != runtime.Version() {
		t.Fatalf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if info.GOOS != runtime.GOOS {
		t.Fatalf("GOOS = %q, want %q", info.GOOS, runtime.GOOS)
	}
}

func TestCurrentVersionInfoUsesLdflagsFallback(t *testing.T) {
	prevRead := readBuildInfo
	prevVersion := buildinfo.Version
	prevCommit := buildinfo.Commit
	t.Cleanup(func() {
		readBuildInfo = prevRead
		buildinfo.Version = prevVersion
		buildinfo.Commit = prevCommit
	})

	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return nil, false
	}
	buildinfo.Version = "v9.9.9"
	buildinfo.Commit = "deadbeef"

	info := currentVersionInfo()

	if info.Version != "v9.9.9" {
		t.Fatalf("Version = %q, want %q", info.Version, "v9.9.9")
	}
	if info.Commit != "deadbeef" {
		t.Fatalf("Commit = %q, want %q", info.Commit, "deadbeef")
	}
}

func TestNormalizeVersion(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: "devel"},
		{input: "(devel)", want: "devel"},
		{input: "v0.3.1", want: "v0.3.1"},
	}
	for _, tt := range tests {
		if got := normalizeVersion(tt.input); got != tt.want {
			t.Fatalf("normalizeVersion(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
