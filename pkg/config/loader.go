package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/brewtap/pkg/errors"
)

// envPrefix is the CI input convention: INPUT_GITHUB_TOKEN, INPUT_INSTALL, ...
const envPrefix = "INPUT_"

// configFiles are checked in order in the working directory; the first
// one found wins.
var configFiles = []string{".brewtap.toml", "brewtap.toml", ".brewtap.yaml", "brewtap.yaml"}

// Load builds the configuration in three layers, later layers winning:
// built-in defaults, an optional config file, then INPUT_-prefixed
// environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	defaults := map[string]interface{}{
		"commit_owner":    DefaultCommitOwner,
		"commit_email":    DefaultCommitEmail,
		"formula_folder":  DefaultFormulaFolder,
		"timeout_seconds": DefaultTimeoutSecs,
		"workdir":         DefaultWorkdir,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default configuration")
	}

	// 2. Config file, if one exists
	if path, parser := findConfigFile("."); path != "" {
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", path)
		}
	}

	// 3. Environment variables (INPUT_GITHUB_TOKEN -> github_token)
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment configuration")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	applyRepositoryFallback(&cfg)

	return &cfg, nil
}

// findConfigFile returns the first config file present in dir along with
// the parser matching its extension, or "" when none exists.
func findConfigFile(dir string) (string, koanf.Parser) {
	for _, name := range configFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if strings.HasSuffix(name, ".yaml") {
			return path, yaml.Parser()
		}
		return path, toml.Parser()
	}
	return "", nil
}

// applyRepositoryFallback fills github_owner/github_repo from the
// GITHUB_REPOSITORY variable ("owner/repo") when they were not set
// explicitly. This matches the CI environment the tool usually runs in.
func applyRepositoryFallback(cfg *Config) {
	if cfg.GithubOwner != "" && cfg.GithubRepo != "" {
		return
	}

	parts := strings.SplitN(os.Getenv("GITHUB_REPOSITORY"), "/", 2)
	if len(parts) != 2 {
		return
	}
	if cfg.GithubOwner == "" {
		cfg.GithubOwner = parts[0]
	}
	if cfg.GithubRepo == "" {
		cfg.GithubRepo = parts[1]
	}
}
