package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, env := range []string{"CEREALDASH_CONFIG", "LISTEN_ADDRESS", "DATA_PATH", "REDIS_URL", "RABBIT_URL", "TABLE_SIZE", "BAR_LIMIT"} {
		t.Setenv(env, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dash.yaml")
	content := []byte("listen_address: \":9000\"\ntable_size: 8\ntreemap_padding: 4\nrabbit_url: amqp://file\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CEREALDASH_CONFIG", path)
	t.Setenv("RABBIT_URL", "amqp://env")
	t.Setenv("BAR_LIMIT", "not-a-number")
	t.Setenv("CHART_WIDTH", "1200")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ListenAddress != ":9000" || cfg.TableSize != 8 || cfg.TreemapPadding != 4 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.RabbitURL != "amqp://env" {
		t.Errorf("env should override file, got %q", cfg.RabbitURL)
	}
	if cfg.BarLimit != 20 {
		t.Errorf("invalid BAR_LIMIT should keep default, got %d", cfg.BarLimit)
	}
	if cfg.ChartWidth != 1200 {
		t.Errorf("Expected CHART_WIDTH 1200, got %d", cfg.ChartWidth)
	}
	if cfg.DataPath != "data/cereals.csv" {
		t.Errorf("unset keys should keep defaults, got %q", cfg.DataPath)
	}
}

func TestLoadBadFile(t *testing.T) {
	t.Setenv("CEREALDASH_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a missing config file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("table_size: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CEREALDASH_CONFIG", path)
	if _, err := Load(); err == nil {
		t.Fatal("expected a parse error")
	}
}
