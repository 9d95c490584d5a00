// Package launcher starts post-pack collaborators: the default web browser
// and the operating system file manager. Launch failures never abort the
// caller; the primary artifact is complete before any launcher runs.
package launcher

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

const errorUnsupportedPlatformFormat = "unsupported platform: %s"

// browserCommandArguments returns the program and arguments that open url in
// the default browser on operatingSystem.
func browserCommandArguments(operatingSystem string, url string) ([]string, error) {
	switch operatingSystem {
	case "darwin":
		return []string{"open", url}, nil
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler", url}, nil
	case "linux":
		return []string{"xdg-open", url}, nil
	default:
		return nil, fmt.Errorf(errorUnsupportedPlatformFormat, operatingSystem)
	}
}

// revealCommandArguments returns the program and arguments that focus the
// file manager on artifactPath. Windows selects the file itself; other
// platforms open the containing directory.
func revealCommandArguments(operatingSystem string, artifactPath string) []string {
	switch operatingSystem {
	case "windows":
		return []string{"explorer", "/select," + artifactPath}
	case "darwin":
		return []string{"open", filepath.Dir(artifactPath)}
	default:
		return []string{"xdg-open", filepath.Dir(artifactPath)}
	}
}

// OpenBrowser opens url in the default browser without waiting for it to exit.
func OpenBrowser(url string) error {
	commandArguments, argumentsError := browserCommandArguments(runtime.GOOS, url)
	if argumentsError != nil {
		return argumentsError
	}
	// #nosec G204
	return exec.Command(commandArguments[0], commandArguments[1:]...).Start()
}

// RevealArtifact opens the file manager focused on artifactPath without
// waiting for it to exit.
func RevealArtifact(artifactPath string) error {
	commandArguments := revealCommandArguments(runtime.GOOS, artifactPath)
	// #nosec G204
	return exec.Command(commandArguments[0], commandArguments[1:]...).Start()
}
