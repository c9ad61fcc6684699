// internal/config/config.go
//
// This package handles configuration and the .polkaguard directory structure.
// Every project that runs PolkaGuard gets a .polkaguard/ folder created in its root.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// Dir is the name of the directory we create in each project
	Dir = ".polkaguard"

	defaultIDPrefix     = "PG-2024-001-"
	defaultIDDigits     = 6
	defaultAccount      = "5D34...8f2a"
	defaultCouncilView  = "/council"
	defaultMaxBytes     = 10 << 20
	maxSubmissionDigits = 13
)

var defaultExtensions = []string{".json", ".zip"}

const defaultProjectConfigYAML = `# polkaguard project configuration
version: 1

# Account label shown once the (stub) Polkadot.js wallet is connected.
wallet:
  account: 5D34...8f2a

# Submission ids are the prefix followed by the last N digits of the
# Unix millisecond clock. Set regenerate: true to mint a fresh id every
# time the confirm step is entered.
submission_id:
  prefix: PG-2024-001-
  digits: 6
  regenerate: false

# Proof packages accepted by the upload step.
artifact:
  extensions: [.json, .zip]
  max_bytes: 10485760

# Where the user is directed after a successful submission.
council_view: /council
`

// WalletConfig configures the stub wallet connector.
type WalletConfig struct {
	Account string `yaml:"account"`
}

// SubmissionIDConfig controls submission id formatting.
type SubmissionIDConfig struct {
	Prefix     string `yaml:"prefix"`
	Digits     int    `yaml:"digits"`
	Regenerate bool   `yaml:"regenerate"`
}

// ArtifactConfig bounds the proof packages accepted by the loader.
type ArtifactConfig struct {
	Extensions []string `yaml:"extensions"`
	MaxBytes   int64    `yaml:"max_bytes"`
}

// ProjectConfig models .polkaguard/config.yaml.
type ProjectConfig struct {
	Version      int                `yaml:"version"`
	Wallet       WalletConfig       `yaml:"wallet"`
	SubmissionID SubmissionIDConfig `yaml:"submission_id"`
	Artifact     ArtifactConfig     `yaml:"artifact"`
	CouncilView  string             `yaml:"council_view"`
}

// Config holds the runtime configuration for PolkaGuard.
type Config struct {
	// ProjectDir is the directory where the user ran `polkaguard` from
	ProjectDir string

	// StateDir is ProjectDir/.polkaguard
	StateDir string

	Project ProjectConfig
}

// InitDir creates the .polkaguard directory structure in the given project directory.
//
// Structure created:
// .polkaguard/
// ├── logs/         <- journey.log
// └── config.yaml   <- written once with defaults
func InitDir(projectDir string) error {
	root := filepath.Join(projectDir, Dir)
	if err := os.MkdirAll(filepath.Join(root, "logs"), 0o755); err != nil {
		return err
	}
	return ensureProjectConfig(filepath.Join(root, "config.yaml"))
}

// NewConfig creates a new Config instance populated with project settings.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir: projectDir,
		StateDir:   filepath.Join(projectDir, Dir),
		Project:    defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.StateDir, "logs")
}

// JourneyLogPath returns the path of the journey logbook.
func (c *Config) JourneyLogPath() string {
	return filepath.Join(c.LogsDir(), "journey.log")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.StateDir, "config.yaml")
}

// WalletAccount returns the account label reported by the stub wallet.
func (c *Config) WalletAccount() string {
	return c.Project.Wallet.Account
}

// SubmissionID returns the submission id settings.
func (c *Config) SubmissionID() SubmissionIDConfig {
	return c.Project.SubmissionID
}

// Artifact returns the proof package limits.
func (c *Config) Artifact() ArtifactConfig {
	return c.Project.Artifact
}

// CouncilView returns the navigation hint shown after completion.
func (c *Config) CouncilView() string {
	return c.Project.CouncilView
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	pc := ProjectConfig{}
	pc.applyDefaults()
	return pc
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Wallet.Account) == "" {
		pc.Wallet.Account = defaultAccount
	}
	if pc.SubmissionID.Prefix == "" {
		pc.SubmissionID.Prefix = defaultIDPrefix
	}
	if pc.SubmissionID.Digits == 0 {
		pc.SubmissionID.Digits = defaultIDDigits
	}
	if len(pc.Artifact.Extensions) == 0 {
		pc.Artifact.Extensions = append([]string(nil), defaultExtensions...)
	}
	if pc.Artifact.MaxBytes == 0 {
		pc.Artifact.MaxBytes = defaultMaxBytes
	}
	if strings.TrimSpace(pc.CouncilView) == "" {
		pc.CouncilView = defaultCouncilView
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Wallet.Account = strings.TrimSpace(pc.Wallet.Account)
	pc.CouncilView = strings.TrimSpace(pc.CouncilView)
	exts := make([]string, 0, len(pc.Artifact.Extensions))
	for _, ext := range pc.Artifact.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !contains(exts, ext) {
			exts = append(exts, ext)
		}
	}
	pc.Artifact.Extensions = exts
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.SubmissionID.Digits < 1 || pc.SubmissionID.Digits > maxSubmissionDigits {
		return fmt.Errorf("submission_id.digits must be between 1 and %d", maxSubmissionDigits)
	}
	if pc.Artifact.MaxBytes < 0 {
		return fmt.Errorf("artifact.max_bytes must not be negative")
	}
	if len(pc.Artifact.Extensions) == 0 {
		return fmt.Errorf("artifact.extensions must list at least one extension")
	}
	return nil
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), target) {
			return true
		}
	}
	return false
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644)
}
