package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestServiceConfigApplyDefaults(t *testing.T) {
	cfg := ServiceConfig{Name: "svc"}
	cfg.ApplyDefaults()
	if cfg.Environment != "development" {
		t.Errorf("expected 'development', got %q", cfg.Environment)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected logging defaults to be applied, got %q", cfg.Logging.Level)
	}
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr bool
		errMsg  string
	}{
		{"valid", ServiceConfig{Name: "svc", Environment: "staging"}, false, ""},
		{"missing name", ServiceConfig{Environment: "production"}, true, "config.name is required"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "qa"}, true, "config.environment must be one of"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Logging.ApplyDefaults()
			err := tc.cfg.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tc.errMsg) {
					t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: orders-api
environment: staging
logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var cfg ServiceConfig
	if err := LoadConfig("orders-api", &cfg, WithConfigFile(configPath), WithEnvPrefix("FEIGNKIT_TEST")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "orders-api" {
		t.Errorf("expected name 'orders-api', got %q", cfg.Name)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected logging.level 'debug', got %q", cfg.Logging.Level)
	}
}

func TestLoadSourceWithYAMLAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	yamlContent := `
compression:
  response:
    enabled: true
  request:
    enabled: false
http2:
  enabled: false
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("FEIGNKIT_TEST_COMPRESSION_REQUEST_ENABLED", "true")

	src := LoadSource("orders-api", WithConfigFile(configPath), WithEnvPrefix("FEIGNKIT_TEST"))

	resp, err := src.Bool("compression.response.enabled", false)
	if err != nil || !resp {
		t.Errorf("expected response compression from file, got %v (err %v)", resp, err)
	}
	req, err := src.Bool("compression.request.enabled", false)
	if err != nil || !req {
		t.Errorf("expected env to override request compression, got %v (err %v)", req, err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg ServiceConfig
	err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"), WithEnvPrefix("FEIGNKIT_TEST"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestResolverFindsServiceConfig(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/api/config.yml": true,
		"./.env":               true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("orders-api", LoaderConfig{})
	if files.ConfigFile != "./cmd/api/config.yml" {
		t.Errorf("expected short-name config file, got %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env" {
		t.Errorf("expected root .env, got %q", files.EnvFile)
	}
}

func TestResolverPrefersExplicitPaths(t *testing.T) {
	resolver := &Resolver{FileSystem: &mockFS{}}
	files := resolver.ResolveFiles("svc", LoaderConfig{ConfigFile: "/a.yml", EnvFile: "/b.env"})
	if files.ConfigFile != "/a.yml" || files.EnvFile != "/b.env" {
		t.Errorf("expected explicit paths, got %+v", files)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	variants := envKeyVariants("HTTP2_ENABLED")
	want := map[string]bool{"http2_enabled": true, "http2.enabled": true}
	for _, v := range variants {
		delete(want, v)
	}
	if len(want) != 0 {
		t.Errorf("missing variants %v in %v", want, variants)
	}

	variants = envKeyVariants("COMPRESSION_REQUEST_MIN_REQUEST_SIZE")
	found := false
	for _, v := range variants {
		if v == "compression.request.min_request_size" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected nested snake_case leaf variant, got %v", variants)
	}
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	WithFileSystem(&mockFS{})(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	WithEnvPrefix("feign")(&lc)
	if lc.FileSystem == nil || lc.ConfigFile == "" || lc.EnvFile == "" {
		t.Errorf("options not applied: %+v", lc)
	}
	if lc.EnvPrefix != "FEIGN" {
		t.Errorf("expected upper-cased prefix, got %q", lc.EnvPrefix)
	}
}
