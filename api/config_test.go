package api

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"pdf_assembler/pdf"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Port != DefaultPort || config.MaxFileSize != DefaultMaxFileSize {
		t.Errorf("config = %+v", config)
	}
	if config.CanvasSize() != pdf.A4 {
		t.Errorf("canvas = %s, want A4", config.CanvasSize())
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
port: "9090"
canvas: Letter
max_concurrent_jobs: 4
optimize_output: true
log_format: json
`)
	t.Setenv("PORT", "7070")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Port != "7070" {
		t.Errorf("port = %q, env should win over file", config.Port)
	}
	if config.CanvasSize() != pdf.Letter {
		t.Errorf("canvas = %s, want Letter", config.CanvasSize())
	}
	if config.MaxConcurrentJobs != 4 || !config.OptimizeOutput {
		t.Errorf("config = %+v", config)
	}

	logger, err := config.NewLogger()
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %s", logger.GetLevel())
	}
	if _, ok := logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("formatter = %T, want JSON", logger.Formatter)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"unknown canvas": "canvas: tabloid\n",
		"zero jobs":      "max_concurrent_jobs: 0\n",
		"bad port":       "port: http\n",
		"bad log level":  "log_level: loud\n",
		"bad yaml":       "canvas: [a4\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, content)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
