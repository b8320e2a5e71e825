package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kataras/figma-mcp/pkg/figma"
	"github.com/kataras/figma-mcp/pkg/formatter"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    Config
		wantErr bool
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			want: Default(),
		},
		{
			name: "all set",
			env: map[string]string{
				EnvAPIKey:      "secret",
				EnvAPIBase:     "http://localhost:9000/v1",
				EnvOutput:      "JSON",
				EnvLogLevel:    "debug",
				EnvLogsDir:     "/tmp/figma",
				EnvHTTPTimeout: "5s",
			},
			want: Config{
				APIKey:       "secret",
				APIBase:      "http://localhost:9000/v1",
				OutputFormat: formatter.JSON,
				LogLevel:     "debug",
				LogsDir:      "/tmp/figma",
				HTTPTimeout:  5 * time.Second,
			},
		},
		{
			name:    "bad format",
			env:     map[string]string{EnvOutput: "xml"},
			wantErr: true,
		},
		{
			name:    "bad timeout",
			env:     map[string]string{EnvHTTPTimeout: "soon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromEnv(lookupFrom(tt.env))
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromEnv() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("FromEnv() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(file, []byte("FIGMA_API_KEY=from-file\nOUTPUT_FORMAT=json\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvAPIKey, "from-env")
	t.Setenv(EnvOutput, "")
	os.Unsetenv(EnvOutput)

	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIKey != "from-env" {
		t.Errorf("APIKey = %q, want the environment to win", cfg.APIKey)
	}
	if cfg.OutputFormat != formatter.JSON {
		t.Errorf("OutputFormat = %q, want json from the file", cfg.OutputFormat)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("Load() error = %v, want missing file ignored", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "ok", cfg: Config{APIKey: "k", APIBase: figma.DefaultBaseURL, OutputFormat: formatter.YAML, HTTPTimeout: time.Second}},
		{name: "no key", cfg: Config{OutputFormat: formatter.YAML, HTTPTimeout: time.Second}, wantErr: true},
		{name: "bad format", cfg: Config{APIKey: "k", OutputFormat: "xml", HTTPTimeout: time.Second}, wantErr: true},
		{name: "no timeout", cfg: Config{APIKey: "k", OutputFormat: formatter.JSON}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
