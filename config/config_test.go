package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	config, err := Load("config.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Http.Port != 8501 || config.ML.ModelPath != "models/decision_tree_model_for_sale.json" {
		t.Fatalf("unexpected defaults: %+v", config)
	}
	if err := config.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Cleanup(func() { os.Unsetenv("APTPRICE_LOG_LEVEL") })

	yamlBody := `
http:
  port: 9000
  timeout: 5s
ml:
  model_path: /srv/model.json
database:
  path: estimates.db
log:
  level: debug
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yamlBody), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("APTPRICE_LOG_LEVEL=warn\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("APTPRICE_PORT", "9100")

	config, err := Load("config.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Http.Port != 9100 {
		t.Fatalf("expected env port override, got %d", config.Http.Port)
	}
	if config.Http.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout %v", config.Http.Timeout)
	}
	if config.ML.ModelPath != "/srv/model.json" || config.Database.Path != "estimates.db" {
		t.Fatalf("unexpected file values: %+v", config)
	}
	if config.Log.Level != "warn" {
		t.Fatalf("expected .env level, got %q", config.Log.Level)
	}
}

func TestLoadBadEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APTPRICE_PORT", "eighty")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for bad port")
	}
}

func TestValidate(t *testing.T) {
	config := Default()
	config.Http.Port = 0
	if err := config.Validate(); err == nil {
		t.Fatal("expected port error")
	}
	config = Default()
	config.ML.ModelPath = ""
	if err := config.Validate(); err == nil {
		t.Fatal("expected model path error")
	}
}
