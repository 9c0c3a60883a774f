package config

import (
	"strings"
	"time"

	"github.com/arthur-debert/brewtap/pkg/errors"
)

// Defaults applied before any file or environment values are loaded
const (
	DefaultCommitOwner   = "brewtap"
	DefaultCommitEmail   = "brewtap@example.com"
	DefaultFormulaFolder = "Formula"
	DefaultTimeoutSecs   = 60
	DefaultWorkdir       = "."
)

// Config is the full configuration surface for a release run. It is
// populated once at startup and passed by value into the releaser; no
// ambient environment lookups happen past this point.
type Config struct {
	// Required
	GithubToken   string `koanf:"github_token"`
	Install       string `koanf:"install"`
	HomebrewOwner string `koanf:"homebrew_owner"`
	HomebrewTap   string `koanf:"homebrew_tap"`

	// Source repository, defaulted from GITHUB_REPOSITORY (owner/repo)
	GithubOwner string `koanf:"github_owner"`
	GithubRepo  string `koanf:"github_repo"`

	// Optional
	CommitOwner       string `koanf:"commit_owner"`
	CommitEmail       string `koanf:"commit_email"`
	Test              string `koanf:"test"`
	SkipPublish       bool   `koanf:"skip_publish"`
	UpdateReadmeTable bool   `koanf:"update_readme_table"`
	FormulaFolder     string `koanf:"formula_folder"`
	TimeoutSeconds    int    `koanf:"timeout_seconds"`
	Workdir           string `koanf:"workdir"`
}

// Timeout returns the per-operation time budget for network fetches,
// checksum computation and git invocations.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate checks that every required value is present. It runs before
// any network activity so a missing value never costs an API call.
func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"github_token", c.GithubToken},
		{"install", c.Install},
		{"homebrew_owner", c.HomebrewOwner},
		{"homebrew_tap", c.HomebrewTap},
		{"github_owner", c.GithubOwner},
		{"github_repo", c.GithubRepo},
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.key)
		}
	}

	if len(missing) > 0 {
		return errors.Newf(errors.ErrConfigMissing,
			"missing required configuration: %s", strings.Join(missing, ", ")).
			WithDetail("missing", missing)
	}

	return nil
}
