package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.UI.Mode != ModeAuto {
		t.Errorf("default ui mode = %q, want %q", cfg.UI.Mode, ModeAuto)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("default log level = %q, want %q", cfg.Log.Level, "info")
	}
	if cfg.Log.File != "" {
		t.Errorf("default log file = %q, want empty", cfg.Log.File)
	}
	if cfg.Seed.Path != "" {
		t.Errorf("default seed path = %q, want empty", cfg.Seed.Path)
	}
}

func TestLoad_ValidFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	writeFile(t, cfgPath, `
ui:
  mode: plain
log:
  level: debug
  file: /tmp/phonebook.log
seed:
  path: contacts.yaml
`)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Config{
		UI:   UI{Mode: ModePlain},
		Log:  Log{Level: "debug", File: "/tmp/phonebook.log"},
		Seed: Seed{Path: "contacts.yaml"},
	}
	if *cfg != want {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/config.yaml")
	if err != nil {
		t.Fatalf("Load() should return defaults for missing file, got error: %v", err)
	}
	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("Load(missing) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, cfgPath, "{{invalid yaml")

	if _, err := Load(cfgPath); err == nil {
		t.Fatal("Load(invalid YAML) should return error")
	}
}

func TestLoad_UnknownField(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, cfgPath, `
ui:
  mdoe: plain
`)

	if _, err := Load(cfgPath); err == nil {
		t.Fatal("Load() should return error for unknown field 'mdoe'")
	}
}

func TestLoad_CommentOnlyFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, cfgPath, "# just a comment\n")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load(comment-only) error = %v", err)
	}
	if want := DefaultConfig(); *cfg != want {
		t.Errorf("Load(comment-only) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, cfgPath, "")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load(empty) error = %v", err)
	}
	if want := DefaultConfig(); *cfg != want {
		t.Errorf("Load(empty) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoadLayered_Priority(t *testing.T) {
	// Given a user config and a project config
	dir := t.TempDir()
	userPath := filepath.Join(dir, "user.yaml")
	projectPath := filepath.Join(dir, "project.yaml")
	writeFile(t, userPath, `
ui:
  mode: tui
log:
  level: warn
  file: user.log
`)
	writeFile(t, projectPath, `
log:
  level: debug
`)

	// When both are layered
	cfg, err := LoadLayered(userPath, projectPath)
	if err != nil {
		t.Fatalf("LoadLayered() error = %v", err)
	}

	// Then the project overrides only what it sets
	if cfg.UI.Mode != ModeTUI {
		t.Errorf("ui mode = %q, want %q (from user)", cfg.UI.Mode, ModeTUI)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want %q (from project)", cfg.Log.Level, "debug")
	}
	if cfg.Log.File != "user.log" {
		t.Errorf("log file = %q, want %q (from user)", cfg.Log.File, "user.log")
	}
}

func TestLoadLayered_AllMissing(t *testing.T) {
	cfg, err := LoadLayered("/nonexistent/a.yaml", "/nonexistent/b.yaml")
	if err != nil {
		t.Fatalf("LoadLayered() error = %v", err)
	}
	if want := DefaultConfig(); *cfg != want {
		t.Errorf("LoadLayered(missing) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoadLayered_InvalidLayer(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "seed:\n  paht: x\n")

	if _, err := LoadLayered(bad); err == nil {
		t.Fatal("LoadLayered() should reject unknown fields")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PHONEBOOK_UI_MODE", "plain")
	t.Setenv("PHONEBOOK_LOG_LEVEL", "error")
	t.Setenv("PHONEBOOK_LOG_FILE", "env.log")
	t.Setenv("PHONEBOOK_SEED", "env.yaml")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	want := Config{
		UI:   UI{Mode: ModePlain},
		Log:  Log{Level: "error", File: "env.log"},
		Seed: Seed{Path: "env.yaml"},
	}
	if cfg != want {
		t.Errorf("ApplyEnv() = %+v, want %+v", cfg, want)
	}
}

func TestApplyEnv_UnsetKeepsValues(t *testing.T) {
	t.Setenv("PHONEBOOK_UI_MODE", "")
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	if cfg.UI.Mode != ModeAuto {
		t.Errorf("ui mode = %q, want %q", cfg.UI.Mode, ModeAuto)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:   "plain mode",
			modify: func(c *Config) { c.UI.Mode = ModePlain },
		},
		{
			name:   "empty level means info",
			modify: func(c *Config) { c.Log.Level = "" },
		},
		{
			name:    "unknown mode",
			modify:  func(c *Config) { c.UI.Mode = "gui" },
			wantErr: true,
		},
		{
			name:    "empty mode",
			modify:  func(c *Config) { c.UI.Mode = "" },
			wantErr: true,
		},
		{
			name:    "unknown level",
			modify:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
