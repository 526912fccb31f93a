package config

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// DevVersion is the version string of builds without ldflags.
const DevVersion = "dev"

// CheckRequiredVersion fails when current does not satisfy the semver
// constraint in required_version. Development builds always pass.
func (c *Config) CheckRequiredVersion(current string) error {
	return checkVersion(c.RequiredVersion, current)
}

func checkVersion(constraint, current string) error {
	if constraint == "" || current == "" || current == DevVersion {
		return nil
	}

	cons, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing required_version %q: %w", constraint, err)
	}
	v, err := parseSemver(current)
	if err != nil {
		return fmt.Errorf("parsing current version %q: %w", current, err)
	}
	if !cons.Check(v) {
		return fmt.Errorf("version %s does not satisfy required_version %q", current, constraint)
	}
	return nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
