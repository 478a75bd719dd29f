package environment_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrazmi/zentask/sdk/environment"
)

type sampleConfig struct {
	Port     string        `env:"PORT" default:":3000"`
	TTL      time.Duration `env:"TTL" default:"168h"`
	Cost     int           `env:"COST" default:"12"`
	Debug    bool          `env:"DEBUG"`
	Origins  []string      `env:"ORIGINS" default:"http://a, http://b"`
	Key      string        `env:"KEY" required:"true"`
	internal string
}

func TestParseEnvTags(t *testing.T) {
	t.Setenv("TEST_KEY", "secret")
	t.Setenv("TEST_COST", "4")
	t.Setenv("TEST_DEBUG", "true")

	var cfg sampleConfig
	if err := environment.ParseEnvTags("TEST", &cfg); err != nil {
		t.Fatalf("ParseEnvTags() error = %v", err)
	}

	if cfg.Port != ":3000" {
		t.Errorf("Port = %q, want :3000", cfg.Port)
	}
	if cfg.TTL != 168*time.Hour {
		t.Errorf("TTL = %v, want 168h", cfg.TTL)
	}
	if cfg.Cost != 4 {
		t.Errorf("Cost = %d, want 4", cfg.Cost)
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
	if len(cfg.Origins) != 2 || cfg.Origins[1] != "http://b" {
		t.Errorf("Origins = %v", cfg.Origins)
	}
	if cfg.Key != "secret" {
		t.Errorf("Key = %q", cfg.Key)
	}
	_ = cfg.internal
}

func TestParseEnvTagsRequired(t *testing.T) {
	var cfg sampleConfig
	if err := environment.ParseEnvTags("MISSING", &cfg); err == nil {
		t.Fatal("expected error for missing required variable")
	}
}

func TestParseEnvTagsRejectsNonPointer(t *testing.T) {
	if err := environment.ParseEnvTags("", sampleConfig{}); err == nil {
		t.Fatal("expected error for non-pointer config")
	}
}

func TestLoadPath(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, ".env")
	if err := os.WriteFile(p, []byte("ZT_LOADED=yes\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("ZT_LOADED") })

	if err := environment.LoadPath(p); err != nil {
		t.Fatalf("LoadPath() error = %v", err)
	}
	if got := os.Getenv("ZT_LOADED"); got != "yes" {
		t.Errorf("ZT_LOADED = %q, want yes", got)
	}

	if err := environment.LoadPath(filepath.Join(dir, "nope.env")); err != nil {
		t.Errorf("missing file should be ignored, got %v", err)
	}
}

func TestGetPrefixEnvOrDefault(t *testing.T) {
	t.Setenv("APP_MODE", "dev")
	if got := environment.GetPrefixEnvOrDefault("APP", "MODE", "prod"); got != "dev" {
		t.Errorf("got %q, want dev", got)
	}
	if got := environment.GetPrefixEnvOrDefault("APP", "OTHER", "x"); got != "x" {
		t.Errorf("got %q, want x", got)
	}
}

type poolConfig struct {
	MaxConns int32  `env:"MAX_CONNS" default:"25"`
	Driver   string `env:"DRIVER" default:"sqlite" oneof:"postgres,sqlite"`
}

func TestParseEnvTagsNestedAndOneOf(t *testing.T) {
	t.Setenv("NEST_MAX_CONNS", "7")

	var pc struct {
		Pool  poolConfig
		Route string `env:"ROUTE" default:"/api"`
	}
	if err := environment.ParseEnvTags("NEST", &pc); err != nil {
		t.Fatalf("ParseEnvTags() error = %v", err)
	}
	if pc.Pool.MaxConns != 7 || pc.Pool.Driver != "sqlite" || pc.Route != "/api" {
		t.Errorf("cfg = %+v", pc)
	}

	t.Setenv("NEST_DRIVER", "mysql")
	if err := environment.ParseEnvTags("NEST", &pc); err == nil {
		t.Error("expected oneof violation")
	}
}

func TestParseEnvTagsOverflow(t *testing.T) {
	t.Setenv("OVER_MAX_CONNS", "3000000000")
	var cfg poolConfig
	if err := environment.ParseEnvTags("OVER", &cfg); err == nil {
		t.Error("expected overflow error for int32")
	}
}
