package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadGlobalFrom_Missing(t *testing.T) {
	t.Parallel()

	g, err := LoadGlobalFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadGlobalFrom failed: %v", err)
	}
	if g.WorktreeFormat != DefaultWorktreeFormat || *g.CleanThreshold != DefaultCleanThreshold {
		t.Errorf("expected defaults, got %+v", g)
	}
}

func TestLoadGlobalFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, g Global)
		wantErr string
	}{
		{
			name: "all fields",
			content: `worktree_format = "~/wt/{repo}/{branch}"
default_branch = "develop"
clean_threshold = 0
auto_clean = true
copy_files = [".env"]
`,
			check: func(t *testing.T, g Global) {
				cfg := g.Defaults()
				if cfg.WorktreeFormat != "~/wt/{repo}/{branch}" || cfg.DefaultBranch != "develop" {
					t.Errorf("unexpected defaults: %+v", cfg)
				}
				if cfg.CleanThreshold != 0 || !cfg.AutoClean {
					t.Errorf("CleanThreshold/AutoClean = %d/%v, want 0/true", cfg.CleanThreshold, cfg.AutoClean)
				}
				if len(cfg.CopyFiles) != 1 || cfg.CopyFiles[0] != ".env" {
					t.Errorf("CopyFiles = %v", cfg.CopyFiles)
				}
			},
		},
		{
			name:    "partial keeps defaults",
			content: "auto_clean = true\n",
			check: func(t *testing.T, g Global) {
				if *g.CleanThreshold != DefaultCleanThreshold || g.WorktreeFormat != DefaultWorktreeFormat {
					t.Errorf("defaults lost: %+v", g)
				}
			},
		},
		{name: "unknown key", content: "stale_days = 3\n", wantErr: "unknown keys"},
		{name: "negative threshold", content: "clean_threshold = -1\n", wantErr: "clean_threshold"},
		{name: "format without branch", content: `worktree_format = "../{repo}"`, wantErr: "{branch}"},
		{name: "bad toml", content: "auto_clean = \n", wantErr: "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			g, err := LoadGlobalFrom(path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadGlobalFrom failed: %v", err)
			}
			tt.check(t, g)
		})
	}
}

func TestInitGlobal(t *testing.T) {
	// Cannot use t.Parallel(): t.Setenv mutates process env
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	t.Setenv(EnvGlobalConfig, path)

	got, err := InitGlobal(false)
	if err != nil {
		t.Fatalf("InitGlobal failed: %v", err)
	}
	if got != path {
		t.Errorf("path = %q, want %q", got, path)
	}

	// The commented template parses to defaults.
	g, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal failed: %v", err)
	}
	if g.DefaultBranch != DefaultBranch {
		t.Errorf("DefaultBranch = %q, want %q", g.DefaultBranch, DefaultBranch)
	}

	if _, err := InitGlobal(false); err == nil {
		t.Error("second InitGlobal without force should fail")
	}
	if _, err := InitGlobal(true); err != nil {
		t.Errorf("InitGlobal with force failed: %v", err)
	}
}
