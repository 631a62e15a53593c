// Package report builds the follow-up instructions printed after a project
// has been created.
package report

import (
	"path/filepath"
	"strings"
)

// UserAgentEnv is set by npm, yarn and pnpm when they launch a binary.
const UserAgentEnv = "npm_config_user_agent"

// DefaultPackageManager is assumed when no user agent is available.
const DefaultPackageManager = "npm"

// PackageManager identifies the front-end that launched the process.
type PackageManager struct {
	Name    string
	Version string
}

// PackageManagerFromUserAgent parses a "<name>/<version> ..." user agent.
// It reports false for an empty user agent.
func PackageManagerFromUserAgent(ua string) (PackageManager, bool) {
	fields := strings.Fields(ua)
	if len(fields) == 0 {
		return PackageManager{}, false
	}
	name, version, _ := strings.Cut(fields[0], "/")
	if name == "" {
		return PackageManager{}, false
	}
	return PackageManager{Name: name, Version: version}, true
}

// ManagerName returns the package manager named by ua, or npm.
func ManagerName(ua string) string {
	if pm, ok := PackageManagerFromUserAgent(ua); ok {
		return pm.Name
	}
	return DefaultPackageManager
}

// NextSteps returns the commands a user runs to start working in root.
// A cd step is included when root differs from cwd.
func NextSteps(cwd, root, manager string) []string {
	var steps []string
	if filepath.Clean(root) != filepath.Clean(cwd) {
		rel, err := filepath.Rel(cwd, root)
		if err != nil {
			rel = root
		}
		steps = append(steps, "cd "+quoteIfNeeded(rel))
	}
	steps = append(steps, "git init")

	switch manager {
	case "yarn":
		steps = append(steps, "yarn", "yarn dev")
	case "pnpm":
		steps = append(steps, "pnpm i", "pnpm dev")
	default:
		steps = append(steps, manager+" i", manager+" run dev")
	}
	return steps
}

func quoteIfNeeded(p string) string {
	if strings.ContainsAny(p, " \t'\"") {
		return `"` + strings.ReplaceAll(p, `"`, `\"`) + `"`
	}
	return p
}
