// Package config loads and validates the provisioning configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

var (
	ErrNotFound   = errors.New("config file not found")
	ErrParsing    = errors.New("config parsing failed")
	ErrValidation = errors.New("config validation failed")
)

// repoNameRegexp matches the character set GitHub accepts in repository names.
var repoNameRegexp = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Config holds the repository settings read from the user's config file.
// Loaded once at startup; the only mutation afterwards is the token override
// applied from the environment before validation.
type Config struct {
	GitHubToken       string `yaml:"github_token"`
	RepoName          string `yaml:"repo_name"`
	Private           bool   `yaml:"private"`
	Description       string `yaml:"description"`
	Homepage          string `yaml:"homepage"`
	HasIssues         bool   `yaml:"has_issues"`
	HasWiki           bool   `yaml:"has_wiki"`
	AutoInit          bool   `yaml:"auto_init"`
	GitignoreTemplate string `yaml:"gitignore_template"`
	FallbackGitignore bool   `yaml:"fallback_gitignore"`
}

// Default returns a Config carrying GitHub's own defaults for the optional
// repository flags.
func Default() *Config {
	return &Config{
		HasIssues: true,
		HasWiki:   true,
	}
}

// Load reads and parses the config file at path. It does not validate: the
// caller applies the environment token override first, then calls Validate.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParsing, err)
	}
	return cfg, nil
}

// Validate checks the required fields. It must pass before any network call
// is made.
func (c *Config) Validate() error {
	if c.GitHubToken == "" {
		return fmt.Errorf("%w: github_token must be set", ErrValidation)
	}
	if c.RepoName == "" {
		return fmt.Errorf("%w: repo_name must be set", ErrValidation)
	}
	if !repoNameRegexp.MatchString(c.RepoName) {
		return fmt.Errorf("%w: repo_name %q contains characters GitHub does not accept", ErrValidation, c.RepoName)
	}
	return nil
}
