package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/appstager/internal/logfields"
)

// Environment variable overriding the publish tool path regardless of file settings.
const EnvTool = "APPSTAGER_DOTNET"

// Default knob values applied by Default and Load.
const (
	DefaultTool           = "dotnet"
	DefaultPublishTimeout = 5 * time.Minute
	DefaultMaxRetries     = 3
	DefaultInitialDelay   = 100 * time.Millisecond
	DefaultMaxDelay       = time.Second
)

// Settings holds harness configuration: which publish tool to run, how long a
// publish may take, where staging directories are created, and the retry knobs
// applied when staged directories are deleted. Duration knobs are strings in
// time.ParseDuration syntax; accessor methods parse them with fallbacks so a
// zero Settings is usable.
type Settings struct {
	Tool              string           `yaml:"tool,omitempty"`
	PublishTimeout    string           `yaml:"publish_timeout,omitempty"`
	StagingRoot       string           `yaml:"staging_root,omitempty"`
	MaxRetries        int              `yaml:"max_retries,omitempty"`
	RetryBackoff      RetryBackoffMode `yaml:"retry_backoff,omitempty"`
	RetryInitialDelay string           `yaml:"retry_initial_delay,omitempty"`
	RetryMaxDelay     string           `yaml:"retry_max_delay,omitempty"`
}

// Default returns settings with every knob at its default value.
func Default() *Settings {
	s := &Settings{}
	s.applyDefaults()
	return s
}

// Load loads settings from the specified YAML file.
func Load(path string) (*Settings, error) {
	// Load .env file if it exists; absence is not an error, but a file that
	// is present and unreadable deserves a note.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Debug("Could not load .env file", logfields.Error(err))
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("settings file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var s Settings
	if err := yaml.Unmarshal([]byte(expanded), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	s.applyDefaults()

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) applyDefaults() {
	if v := os.Getenv(EnvTool); v != "" {
		s.Tool = v
	}
	if s.Tool == "" {
		s.Tool = DefaultTool
	}
	if s.PublishTimeout == "" {
		s.PublishTimeout = DefaultPublishTimeout.String()
	}
	if s.MaxRetries == 0 {
		s.MaxRetries = DefaultMaxRetries
	}
	if mode := NormalizeRetryBackoff(string(s.RetryBackoff)); mode != "" {
		s.RetryBackoff = mode
	} else {
		s.RetryBackoff = RetryBackoffFixed
	}
	if s.RetryInitialDelay == "" {
		s.RetryInitialDelay = DefaultInitialDelay.String()
	}
	if s.RetryMaxDelay == "" {
		s.RetryMaxDelay = DefaultMaxDelay.String()
	}
}

// Validate checks that every duration knob parses and counters are sane.
func (s *Settings) Validate() error {
	if s.Tool == "" {
		return fmt.Errorf("tool must not be empty")
	}
	if _, err := time.ParseDuration(s.PublishTimeout); err != nil {
		return fmt.Errorf("invalid publish_timeout %q: %w", s.PublishTimeout, err)
	}
	if s.MaxRetries < 0 {
		return fmt.Errorf("max_retries cannot be negative")
	}
	if _, err := time.ParseDuration(s.RetryInitialDelay); err != nil {
		return fmt.Errorf("invalid retry_initial_delay %q: %w", s.RetryInitialDelay, err)
	}
	if _, err := time.ParseDuration(s.RetryMaxDelay); err != nil {
		return fmt.Errorf("invalid retry_max_delay %q: %w", s.RetryMaxDelay, err)
	}
	return nil
}

// PublishTimeoutDuration parses the publish timeout, falling back to the
// default when unset or unparseable.
func (s *Settings) PublishTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(s.PublishTimeout)
	if err != nil || d <= 0 {
		return DefaultPublishTimeout
	}
	return d
}

// RetryInitialDuration parses the initial cleanup backoff delay.
func (s *Settings) RetryInitialDuration() time.Duration {
	d, err := time.ParseDuration(s.RetryInitialDelay)
	if err != nil || d <= 0 {
		return DefaultInitialDelay
	}
	return d
}

// RetryMaxDuration parses the cleanup backoff delay cap.
func (s *Settings) RetryMaxDuration() time.Duration {
	d, err := time.ParseDuration(s.RetryMaxDelay)
	if err != nil || d <= 0 {
		return DefaultMaxDelay
	}
	return d
}
