package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultValues(t *testing.T) {
	t.Setenv(EnvTool, "")
	s := Default()
	if s.Tool != DefaultTool {
		t.Fatalf("expected tool %q got %q", DefaultTool, s.Tool)
	}
	if d := s.PublishTimeoutDuration(); d != DefaultPublishTimeout {
		t.Fatalf("expected publish timeout %v got %v", DefaultPublishTimeout, d)
	}
	if s.MaxRetries != DefaultMaxRetries {
		t.Fatalf("expected max retries %d got %d", DefaultMaxRetries, s.MaxRetries)
	}
	if s.RetryBackoff != RetryBackoffFixed {
		t.Fatalf("expected fixed backoff default got %s", s.RetryBackoff)
	}
	if d := s.RetryInitialDuration(); d != DefaultInitialDelay {
		t.Fatalf("expected initial delay %v got %v", DefaultInitialDelay, d)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("default settings should validate: %v", err)
	}
}

func TestLoadAppliesDefaultsForOmittedFields(t *testing.T) {
	t.Setenv(EnvTool, "")
	dir := t.TempDir()
	path := filepath.Join(dir, "appstager.yaml")
	raw := "publish_timeout: 30s\n"
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if d := s.PublishTimeoutDuration(); d != 30*time.Second {
		t.Fatalf("expected explicit 30s timeout got %v", d)
	}
	if s.Tool != DefaultTool {
		t.Fatalf("expected tool default when omitted, got %q", s.Tool)
	}
	if s.MaxRetries != DefaultMaxRetries {
		t.Fatalf("expected retry default when omitted, got %d", s.MaxRetries)
	}
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_STAGING_ROOT", "/var/stage")
	dir := t.TempDir()
	path := filepath.Join(dir, "appstager.yaml")
	raw := "staging_root: ${TEST_STAGING_ROOT}\n"
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.StagingRoot != "/var/stage" {
		t.Fatalf("expected expanded staging root, got %q", s.StagingRoot)
	}
}

func TestLoadToleratesBrokenEnvFile(t *testing.T) {
	t.Setenv(EnvTool, "")
	dir := t.TempDir()
	t.Chdir(dir)

	// A .env that exists but cannot be parsed is noted, never fatal.
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("not-a-valid-line\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	path := filepath.Join(dir, "appstager.yaml")
	if err := os.WriteFile(path, []byte("tool: dotnet\n"), 0o600); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load with broken .env: %v", err)
	}
	if s.Tool != "dotnet" {
		t.Fatalf("expected settings to load despite broken .env, got tool %q", s.Tool)
	}
}

func TestToolEnvOverride(t *testing.T) {
	t.Setenv(EnvTool, "/opt/dotnet/dotnet")
	s := Default()
	if s.Tool != "/opt/dotnet/dotnet" {
		t.Fatalf("expected env override to win, got %q", s.Tool)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing settings file")
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "appstager.yaml")
	if err := os.WriteFile(path, []byte("publish_timeout: soon\n"), 0o600); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unparseable publish_timeout")
	}
}

func TestValidateNegativeRetries(t *testing.T) {
	s := Default()
	s.MaxRetries = -1
	if err := s.Validate(); err == nil {
		t.Fatalf("expected error for negative max_retries")
	}
}

func TestDurationAccessorFallbacks(t *testing.T) {
	s := &Settings{PublishTimeout: "bogus", RetryInitialDelay: "", RetryMaxDelay: "-5s"}
	if d := s.PublishTimeoutDuration(); d != DefaultPublishTimeout {
		t.Fatalf("expected fallback timeout %v got %v", DefaultPublishTimeout, d)
	}
	if d := s.RetryInitialDuration(); d != DefaultInitialDelay {
		t.Fatalf("expected fallback initial %v got %v", DefaultInitialDelay, d)
	}
	if d := s.RetryMaxDuration(); d != DefaultMaxDelay {
		t.Fatalf("expected fallback max %v got %v", DefaultMaxDelay, d)
	}
}

func TestNormalizeRetryBackoff(t *testing.T) {
	cases := []struct {
		raw  string
		want RetryBackoffMode
	}{
		{"fixed", RetryBackoffFixed},
		{" Linear ", RetryBackoffLinear},
		{"EXPONENTIAL", RetryBackoffExponential},
		{"jittered", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeRetryBackoff(c.raw); got != c.want {
			t.Fatalf("normalize %q: expected %q got %q", c.raw, c.want, got)
		}
	}
}
