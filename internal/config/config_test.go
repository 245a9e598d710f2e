package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", cfg.Version, CurrentVersion)
	}
	if cfg.DefaultBranch != "main" {
		t.Errorf("DefaultBranch = %q, want main", cfg.DefaultBranch)
	}
	if cfg.CleanThreshold != 7 {
		t.Errorf("CleanThreshold = %d, want 7", cfg.CleanThreshold)
	}
	if cfg.AutoClean {
		t.Error("AutoClean should default to false")
	}
	if cfg.LastAutoCleanTime != nil {
		t.Error("LastAutoCleanTime should default to nil")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() should be valid: %v", err)
	}
}

func TestLastAutoClean(t *testing.T) {
	t.Parallel()

	var cfg Config
	if _, ok := cfg.LastAutoClean(); ok {
		t.Fatal("expected no last auto-clean on zero config")
	}

	now := time.Date(2026, 3, 1, 12, 30, 0, 123_000_000, time.UTC)
	cfg.SetLastAutoClean(now)

	if *cfg.LastAutoCleanTime != now.UnixMilli() {
		t.Errorf("LastAutoCleanTime = %d, want %d", *cfg.LastAutoCleanTime, now.UnixMilli())
	}
	got, ok := cfg.LastAutoClean()
	if !ok || !got.Equal(now) {
		t.Errorf("LastAutoClean() = %v, %v; want %v, true", got, ok, now)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"zero threshold", func(c *Config) { c.CleanThreshold = 0 }, ""},
		{"negative threshold", func(c *Config) { c.CleanThreshold = -1 }, "cleanThreshold"},
		{"empty default branch", func(c *Config) { c.DefaultBranch = " " }, "defaultBranch"},
		{"format without branch", func(c *Config) { c.WorktreeFormat = "../{repo}" }, "{branch}"},
		{"empty format uses default", func(c *Config) { c.WorktreeFormat = "" }, ""},
		{"glob pattern", func(c *Config) { c.CopyFiles = []string{".env*", "config/*.json"} }, ""},
		{"absolute pattern", func(c *Config) { c.CopyFiles = []string{"/etc/passwd"} }, "relative"},
		{"escaping pattern", func(c *Config) { c.CopyFiles = []string{"../secrets"} }, "leave"},
		{"bad glob", func(c *Config) { c.CopyFiles = []string{"[abc"} }, "copyFiles[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestGetSet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key   string
		value string
		want  string
	}{
		{"defaultBranch", "develop", "develop"},
		{"worktreeFormat", "~/wt/{repo}/{branch}", "~/wt/{repo}/{branch}"},
		{"copyFiles", ".env, .env.local ,", ".env,.env.local"},
		{"copyFiles", "", ""},
		{"hooks.postCreate", "npm install,make setup", "npm install,make setup"},
		{"hooks.preRemove", "make stop", "make stop"},
		{"hooks.postRemove", "echo gone", "echo gone"},
		{"autoClean", "true", "true"},
		{"autoClean", "0", "false"},
		{"cleanThreshold", " 14 ", "14"},
		{"cleanThreshold", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			if err := cfg.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set(%q, %q) failed: %v", tt.key, tt.value, err)
			}
			got, err := cfg.Get(tt.key)
			if err != nil {
				t.Fatalf("Get(%q) failed: %v", tt.key, err)
			}
			if got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestSet_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key, value, wantErr string
	}{
		{"cleanThreshold", "-3", ">= 0"},
		{"cleanThreshold", "week", "number of days"},
		{"autoClean", "maybe", "true or false"},
		{"defaultBranch", "", "must not be empty"},
		{"worktreeFormat", "../{repo}", "{branch}"},
		{"copyFiles", "/abs", "relative"},
		{"lastAutoCleanTime", "1", "unknown key"},
		{"nope", "x", `"defaultBranch"`},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			before := cfg
			err := cfg.Set(tt.key, tt.value)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Set(%q, %q) error = %v, want containing %q", tt.key, tt.value, err, tt.wantErr)
			}
			if cfg.CleanThreshold != before.CleanThreshold || cfg.AutoClean != before.AutoClean || cfg.DefaultBranch != before.DefaultBranch {
				t.Error("failed Set should not modify the config")
			}
		})
	}
}

func TestGet_Unknown(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if _, err := cfg.Get("bogus"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestFormatOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		opts []string
		want string
	}{
		{[]string{"a"}, `"a"`},
		{[]string{"a", "b"}, `"a" or "b"`},
		{[]string{"a", "b", "c"}, `"a", "b", or "c"`},
	}
	for _, tt := range tests {
		if got := formatOptions(tt.opts); got != tt.want {
			t.Errorf("formatOptions(%v) = %s, want %s", tt.opts, got, tt.want)
		}
	}
}
