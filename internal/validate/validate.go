// Package validate holds the syntactic checks and normalizers applied to
// project names, versions and target directories.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	// npm package-name grammar with optional @scope/ prefix
	projectNamePattern = regexp.MustCompile(`^(?:@[a-z0-9-*~][a-z0-9-*._~]*/)?[a-z0-9-~][a-z0-9-._~]*$`)

	versionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9]+((\.[a-zA-Z0-9]+)|[a-zA-Z0-9]+)?)?$`)

	whitespaceRun  = regexp.MustCompile(`\s+`)
	leadingDotOrUS = regexp.MustCompile(`^[._]`)
	invalidNameRun = regexp.MustCompile(`[^a-z0-9-~]+`)
	trailingSlash  = regexp.MustCompile(`[/\s]+$`)
)

// IsValidProjectName reports whether s is usable as a package.json name.
func IsValidProjectName(s string) bool {
	return projectNamePattern.MatchString(s)
}

// IsValidVersion reports whether s is a MAJOR.MINOR.PATCH version with an
// optional prerelease tag.
func IsValidVersion(s string) bool {
	return versionPattern.MatchString(s)
}

// NormalizeProjectName turns an arbitrary directory name into a candidate
// package name.
func NormalizeProjectName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = leadingDotOrUS.ReplaceAllString(s, "")
	return invalidNameRun.ReplaceAllString(s, "-")
}

// NormalizeTargetDirectory trims whitespace and trailing slashes. Whitespace
// exposed by stripping a slash is trimmed too, so the result is stable.
func NormalizeTargetDirectory(s string) string {
	return trailingSlash.ReplaceAllString(strings.TrimSpace(s), "")
}

// FallbackVersion formats t as YYYY.MMDD.HHmm.
func FallbackVersion(t time.Time) string {
	return t.Format("2006.0102.1504")
}

// ProjectNameValidator adapts IsValidProjectName to a prompt validator.
func ProjectNameValidator(ans interface{}) error {
	s, ok := ans.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", ans)
	}
	if !IsValidProjectName(s) {
		return fmt.Errorf("invalid package.json name: %q", s)
	}
	return nil
}

// VersionValidator adapts IsValidVersion to a prompt validator.
func VersionValidator(ans interface{}) error {
	s, ok := ans.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", ans)
	}
	if !IsValidVersion(s) {
		return fmt.Errorf("invalid package.json version: %q (expected e.g. 1.0.0 or 1.0.0-beta.1)", s)
	}
	return nil
}
