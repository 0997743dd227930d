// Package platform identifies the operating system the current process is
// running on, so command trees can be filtered to platform-appropriate
// entries.
package platform

import (
	"fmt"
	"runtime"
)

// Tag names an operating system a command may be restricted to.
type Tag string

const (
	Linux   Tag = "linux"
	MacOS   Tag = "macos"
	Windows Tag = "windows"
)

// Provider reports the running platform. It is an interface so compilation
// can be exercised against a fixed platform in tests.
type Provider interface {
	Current() Tag
}

// OSProvider resolves the platform from runtime.GOOS.
type OSProvider struct{}

func (OSProvider) Current() Tag {
	switch runtime.GOOS {
	case "darwin":
		return MacOS
	case "windows":
		return Windows
	default:
		return Linux
	}
}

// Static is a Provider that always reports a fixed tag.
type Static Tag

func (s Static) Current() Tag { return Tag(s) }

// Parse converts a configuration value to a Tag. "darwin" is accepted as
// an alias for macos.
func Parse(s string) (Tag, error) {
	switch s {
	case "linux":
		return Linux, nil
	case "macos", "darwin":
		return MacOS, nil
	case "windows":
		return Windows, nil
	}
	return "", fmt.Errorf("unknown platform %q (expected linux, macos, or windows)", s)
}
