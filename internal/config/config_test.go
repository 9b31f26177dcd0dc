package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/masonry/pkg/cache"
	"github.com/matzehuels/masonry/pkg/pipeline"
)

func writeConfig(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MASONRY_CONFIG", path)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MASONRY_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Layout.Width != pipeline.DefaultWidth || c.Layout.Gap != pipeline.DefaultGap || c.Layout.ColumnWidth != pipeline.DefaultColumnWidth {
		t.Errorf("layout defaults = %+v", c.Layout)
	}
	if c.Cache.Backend != cache.BackendFile || c.Cache.Dir != "/tmp/xdg/masonry" {
		t.Errorf("cache defaults = %+v", c.Cache)
	}
	if c.Server.Addr != ":8080" || c.Log.Level != "info" {
		t.Errorf("server/log defaults = %+v %+v", c.Server, c.Log)
	}
}

func TestLoadFile(t *testing.T) {
	writeConfig(t, `
[layout]
width = 900
gap = 0
columns = 3

[layout.breakpoints]
md = 2
xl = 4

[cache]
backend = "redis"

[cache.redis]
addr = "redis:6379"
db = 2

[server]
addr = ":9000"
`)

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Layout.Width != 900 || c.Layout.Gap != 0 || c.Layout.Columns != 3 {
		t.Errorf("layout = %+v", c.Layout)
	}
	if c.Layout.Breakpoints["md"] != 2 || c.Layout.Breakpoints["xl"] != 4 {
		t.Errorf("breakpoints = %v", c.Layout.Breakpoints)
	}
	if c.Cache.Backend != "redis" || c.Cache.Redis.Addr != "redis:6379" || c.Cache.Redis.DB != 2 {
		t.Errorf("cache = %+v", c.Cache)
	}
	if c.Server.Addr != ":9000" {
		t.Errorf("server = %+v", c.Server)
	}

	opts := c.PipelineOptions()
	if opts.Gap == nil || *opts.Gap != 0 || opts.Columns != 3 {
		t.Errorf("pipeline options = %+v", opts)
	}
	co := c.CacheOptions()
	if co.Backend != "redis" || co.Redis.Addr != "redis:6379" || co.Mongo.Database != cache.DefaultMongoDatabase {
		t.Errorf("cache options = %+v", co)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	writeConfig(t, "[server]\naddr = \":9000\"\n")
	t.Setenv("MASONRY_SERVER_ADDR", ":7000")
	t.Setenv("MASONRY_CACHE_BACKEND", "none")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Server.Addr != ":7000" {
		t.Errorf("env should win over file, got %q", c.Server.Addr)
	}
	if c.Cache.Backend != "none" {
		t.Errorf("backend = %q", c.Cache.Backend)
	}
}

func TestLoadMalformed(t *testing.T) {
	writeConfig(t, "[layout\nwidth = ")
	if _, err := Load(); err == nil {
		t.Error("malformed config should fail")
	}
}

func TestPath(t *testing.T) {
	t.Setenv("MASONRY_CONFIG", "/etc/masonry.toml")
	if got := Path(); got != "/etc/masonry.toml" {
		t.Errorf("Path = %q", got)
	}
}
