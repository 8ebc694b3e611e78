package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Micfood1011/ApartmentManagementSystem/internal/auth"
)

func TestConfigSaveAndLoad(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("VV_DB", "")
	t.Setenv("VV_DEV_MODE", "")

	cfg := Config{
		DBPath:  "/srv/vv/records.db",
		DevMode: true,
		Auth:    auth.Config{Username: "admin", PasswordHash: "$2a$10$abc"},
	}

	if err := saveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	path := filepath.Join(tmp, ".config", "vv", "config.yaml")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not found: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config mode = %o, want 600", perm)
	}

	loaded, err := loadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != cfg {
		t.Errorf("loaded = %+v, want %+v", loaded, cfg)
	}
}

func TestConfigLoadMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("VV_DB", "")
	t.Setenv("VV_DEV_MODE", "")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if cfg != (Config{}) {
		t.Errorf("expected zero-value config for missing file, got %+v", cfg)
	}
}

func TestConfigEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if err := saveConfig(Config{DBPath: "/from/file.db"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	t.Setenv("VV_DB", "/from/env.db")
	t.Setenv("VV_DEV_MODE", "true")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/from/env.db" {
		t.Errorf("db_path = %q, want env value", cfg.DBPath)
	}
	if !cfg.DevMode {
		t.Error("expected dev mode from VV_DEV_MODE")
	}

	stored, err := readConfigFile()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if stored.DBPath != "/from/file.db" {
		t.Errorf("stored db_path = %q, env value leaked into file view", stored.DBPath)
	}
}

func TestConfigBadDevMode(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("VV_DEV_MODE", "sometimes")

	if _, err := loadConfig(); err == nil {
		t.Fatal("expected error for invalid VV_DEV_MODE")
	}
}

func TestConfigMalformed(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	path := filepath.Join(tmp, ".config", "vv", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("auth: [not, a, map"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := readConfigFile(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestResolveDBPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Cleanup(func() { flagDB = "" })

	flagDB = ""
	got, err := resolveDBPath(Config{})
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".config", "vv", "vistaverde.db"); got != want {
		t.Errorf("default = %q, want %q", got, want)
	}

	got, _ = resolveDBPath(Config{DBPath: "/cfg.db"})
	if got != "/cfg.db" {
		t.Errorf("config path = %q, want /cfg.db", got)
	}

	flagDB = "/flag.db"
	got, _ = resolveDBPath(Config{DBPath: "/cfg.db"})
	if got != "/flag.db" {
		t.Errorf("flag path = %q, want /flag.db", got)
	}
}
