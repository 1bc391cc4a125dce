// Package spec loads the configuration of a gitch run.
package spec

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// ConfigFile is the name of the optional configuration file at the repository root.
	ConfigFile = ".gitch.yaml"

	// EnvPrefix is the prefix of environment variables read as configuration.
	EnvPrefix = "GITCH_"

	DefaultChangelog    = "CHANGELOG.md"
	DefaultGitHubHost   = "github.com"
	DefaultGitHubAPIURL = "https://api.github.com"
)

// Keys for overriding configuration values.
const (
	KeyChangelog    = "changelog"
	KeyDebug        = "debug"
	KeyGitHubToken  = "github_token"
	KeyGitHubHost   = "github_host"
	KeyGitHubAPIURL = "github_api_url"
	KeyVerifyTag    = "verify_tag"
	KeyTimeout      = "timeout"
	KeyOverwrite    = "overwrite"
	KeyDryRun       = "dry_run"
)

// Spec has all the specifications required for syncing changelog entries to releases.
type Spec struct {
	Changelog    string        `koanf:"changelog"`
	Debug        bool          `koanf:"debug"`
	GitHubToken  string        `koanf:"github_token"`
	GitHubHost   string        `koanf:"github_host"`
	GitHubAPIURL string        `koanf:"github_api_url"`
	VerifyTag    bool          `koanf:"verify_tag"`
	Timeout      time.Duration `koanf:"timeout"`
	Overwrite    bool          `koanf:"overwrite"`
	DryRun       bool          `koanf:"dry_run"`
}

// Default returns specifications with default values.
func Default() Spec {
	return Spec{
		Changelog:    DefaultChangelog,
		Debug:        false,
		GitHubToken:  "",
		GitHubHost:   DefaultGitHubHost,
		GitHubAPIURL: DefaultGitHubAPIURL,
		VerifyTag:    true,
		Timeout:      0,
		Overwrite:    false,
		DryRun:       false,
	}
}

func defaults() map[string]any {
	d := Default()

	return map[string]any{
		KeyChangelog:    d.Changelog,
		KeyDebug:        d.Debug,
		KeyGitHubToken:  d.GitHubToken,
		KeyGitHubHost:   d.GitHubHost,
		KeyGitHubAPIURL: d.GitHubAPIURL,
		KeyVerifyTag:    d.VerifyTag,
		KeyTimeout:      d.Timeout,
		KeyOverwrite:    d.Overwrite,
		KeyDryRun:       d.DryRun,
	}
}

// Load reads the specifications for a repository root.
// Values are applied in order: defaults, the config file at the root, GITCH_* environment variables, and overrides.
// Overrides are keyed by the Key* constants and usually come from command-line flags.
func Load(root string, overrides map[string]any) (Spec, error) {
	return load(filepath.Join(root, ConfigFile), overrides)
}

func load(path string, overrides map[string]any) (Spec, error) {
	k := koanf.New(".")

	for key, val := range defaults() {
		_ = k.Set(key, val)
	}

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Spec{}, fmt.Errorf("loading config file %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Spec{}, fmt.Errorf("loading config file %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return Spec{}, fmt.Errorf("loading environment variables: %w", err)
	}

	for key, val := range overrides {
		_ = k.Set(key, val)
	}

	var s Spec
	if err := k.Unmarshal("", &s); err != nil {
		return Spec{}, fmt.Errorf("decoding config: %w", err)
	}

	if s.Changelog == "" {
		s.Changelog = DefaultChangelog
	}

	if s.GitHubHost == "" {
		s.GitHubHost = DefaultGitHubHost
	}

	if s.GitHubAPIURL == "" {
		s.GitHubAPIURL = DefaultGitHubAPIURL
	}
	s.GitHubAPIURL = strings.TrimSuffix(s.GitHubAPIURL, "/")

	return s, nil
}

// envTransform converts environment variable names to config keys.
// Example: GITCH_GITHUB_TOKEN -> github_token
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// ReleaseURL returns the web address of the release for a tag.
func (s Spec) ReleaseURL(owner, name, tag string) string {
	return fmt.Sprintf("https://%s/%s/%s/releases/tag/%s", s.GitHubHost, owner, name, tag)
}
