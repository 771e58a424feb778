package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/encoding/charmap"

	"luqy/internal/config"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		"LUQY_OUTPUT_DIR", "LUQY_LOG_DIR", "LUQY_LOG_LEVEL", "LUQY_LOG_FORMAT",
		"LUQY_ENCODING", "LUQY_EXPORT_FORMAT", "LUQY_WORKERS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Chdir(t.TempDir())
	return home
}

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	home := isolateEnv(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(home, ".config", "luqy", "config.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if want := filepath.Join(home, ".local", "share", "luqy", "entries"); cfg.Paths.OutputDir != want {
		t.Fatalf("unexpected output dir: got %q want %q", cfg.Paths.OutputDir, want)
	}
	if cfg.Paths.LogDir != "" {
		t.Fatalf("expected empty log dir by default, got %q", cfg.Paths.LogDir)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Export.Format != "json" {
		t.Fatalf("unexpected export format: %q", cfg.Export.Format)
	}
	if cfg.Batch.Workers != 4 {
		t.Fatalf("unexpected worker count: %d", cfg.Batch.Workers)
	}
	cm, err := cfg.Parser.Charmap()
	if err != nil {
		t.Fatalf("Charmap: %v", err)
	}
	if cm != charmap.Windows1252 {
		t.Fatal("expected windows-1252 as the default code page")
	}
}

func TestLoadReadsFileAndNormalizes(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "luqy.toml")

	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(dir, "out")
	cfg.Logging.Format = " JSON "
	cfg.Logging.Level = "Debug"
	cfg.Parser.Encoding = "ISO-8859-15"
	cfg.Export.Format = "xlsx"
	cfg.Batch.Workers = 8
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	loaded, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected existing config at %s, got %q exists=%v", path, resolved, exists)
	}
	if loaded.Logging.Format != "json" || loaded.Logging.Level != "debug" {
		t.Fatalf("expected lower-cased logging values, got %+v", loaded.Logging)
	}
	if loaded.Parser.Encoding != "iso-8859-15" {
		t.Fatalf("unexpected encoding: %q", loaded.Parser.Encoding)
	}
	cm, err := loaded.Parser.Charmap()
	if err != nil || cm != charmap.ISO8859_15 {
		t.Fatalf("expected ISO-8859-15 charmap, got %v (%v)", cm, err)
	}
	if loaded.Export.Format != "xlsx" || loaded.Batch.Workers != 8 {
		t.Fatalf("unexpected export/batch: %+v %+v", loaded.Export, loaded.Batch)
	}
}

func TestLoadAppliesEnvironmentOverrides(t *testing.T) {
	isolateEnv(t)
	out := t.TempDir()
	t.Setenv("LUQY_OUTPUT_DIR", out)
	t.Setenv("LUQY_LOG_LEVEL", "warn")
	t.Setenv("LUQY_WORKERS", "2")
	t.Setenv("LUQY_EXPORT_FORMAT", "xlsx")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Paths.OutputDir != out {
		t.Fatalf("expected output dir from env, got %q", cfg.Paths.OutputDir)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected log level from env, got %q", cfg.Logging.Level)
	}
	if cfg.Batch.Workers != 2 {
		t.Fatalf("expected 2 workers from env, got %d", cfg.Batch.Workers)
	}
	if cfg.Export.Format != "xlsx" {
		t.Fatalf("expected xlsx from env, got %q", cfg.Export.Format)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"log format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"log level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
		{"export format", "[export]\nformat = \"csv\"\n", "export.format"},
		{"workers", "[batch]\nworkers = 500\n", "batch.workers"},
		{"encoding", "[parser]\nencoding = \"utf-16\"\n", "parser.encoding"},
		{"unknown key", "[paths]\nstaging_dir = \"/tmp\"\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestCreateSampleLoadsCleanly(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Parser.Encoding != "windows-1252" {
		t.Fatalf("unexpected sample encoding: %q", cfg.Parser.Encoding)
	}
}

func TestEnsureDirectoriesCreatesOutputAndLogDirs(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.OutputDir, cfg.Paths.LogDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", dir, err)
		}
	}
}
