package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plzcli/plz/internal/buildinfo"
)

type versionInfo struct {
	Version    string
	Commit     string
	CommitTime string
	Modified   bool
	GoVersion  string
	GOOS       string
	GOARCH     string
}

var readBuildInfo = debug.ReadBuildInfo

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show plz version and build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := currentVersionInfo()

			fmt.Printf("plz %s\n", info.Version)
			if info.Commit != "" {
				commit := info.Commit
				if info.Modified {
					commit += " (modified)"
				}
				fmt.Printf("commit: %s\n", commit)
			}
			if info.CommitTime != "" {
				fmt.Printf("commit_time: %s\n", info.CommitTime)
			}
			fmt.Printf("go: %s\n", info.GoVersion)
			fmt.Printf("platform: %s/%s\n", info.GOOS, info.GOARCH)

			return nil
		},
	}
}

// versionString is the short form used for the root command's --version.
func versionString() string {
	return currentVersionInfo().Version
}

func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:   "devel",
		GoVersion: runtime.Version(),
		GOOS:      runtime.GOOS,
		GOARCH:    runtime.GOARCH,
	}

	buildInfo, ok := readBuildInfo()
	if !ok || buildInfo == nil {
		applyLdflagsFallback(&info)
		return info
	}

	info.Version = normalizeVersion(buildInfo.Main.Version)
	if buildInfo.GoVersion != "" {
		info.GoVersion = buildInfo.GoVersion
	}
	if val := buildSetting(buildInfo, "GOOS"); val != "" {
		info.GOOS = val
	}
	if val := buildSetting(buildInfo, "GOARCH"); val != "" {
		info.GOARCH = val
	}

	info.Commit = buildSetting(buildInfo, "vcs.revision")
	info.CommitTime = buildSetting(buildInfo, "vcs.time")
	info.Modified = strings.EqualFold(buildSetting(buildInfo, "vcs.modified"), "true")
	applyLdflagsFallback(&info)

	return info
}

func normalizeVersion(version string) string {
	if version == "" || version == "(devel)" {
		return "devel"
	}
	return version
}

func buildSetting(info *debug.BuildInfo, key string) string {
	if info == nil {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == key {
			return setting.Value
		}
	}
	return ""
}

// applyLdflagsFallback fills gaps from the release-time ldflags values.
func applyLdflagsFallback(info *versionInfo) {
	if info == nil {
		return
	}

	if info.Version == "devel" && buildinfo.Version != "" {
		info.Version = normalizeVersion(buildinfo.Version)
	}
	if info.Commit == "" && buildinfo.Commit != "" {
		info.Commit = buildinfo.Commit
	}
	if info.CommitTime == "" && buildinfo.Date != "" {
		info.CommitTime = buildinfo.Date
	}
}
