package config

import (
	"errors"
	"flag"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/codecrafters-io/http-server-go/internal/request"
)

func TestDefaults(t *testing.T) {
	cfg, err := Parse(nil, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Directory != "" {
		t.Errorf("directory: got %q, want empty", cfg.Directory)
	}
	if cfg.Addr != "127.0.0.1:4221" {
		t.Errorf("addr: got %q", cfg.Addr)
	}
	if cfg.ReadTimeout != 10*time.Second || cfg.WriteTimeout != 10*time.Second {
		t.Errorf("timeouts: got %v/%v", cfg.ReadTimeout, cfg.WriteTimeout)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("log level: got %v", cfg.LogLevel)
	}
	if cfg.Limits() != request.DefaultLimits {
		t.Errorf("limits: got %+v", cfg.Limits())
	}
}

func TestDirectory(t *testing.T) {
	cfg, err := Parse([]string{"--directory", "/tmp/data/"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Directory != filepath.Clean("/tmp/data") {
		t.Errorf("got %q", cfg.Directory)
	}

	cfg, err = Parse([]string{"--directory", "rel"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(cfg.Directory) {
		t.Errorf("got %q, want absolute path", cfg.Directory)
	}
}

func TestOverrides(t *testing.T) {
	args := []string{
		"-addr", "0.0.0.0:8080",
		"-read-timeout", "1s",
		"-write-timeout", "0",
		"-max-body", "42",
		"-log-level", "debug",
		"-no-color",
	}
	cfg, err := Parse(args, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != "0.0.0.0:8080" || cfg.ReadTimeout != time.Second || cfg.WriteTimeout != 0 {
		t.Errorf("got %+v", cfg)
	}
	if !cfg.NoColor || cfg.LogLevel != slog.LevelDebug {
		t.Errorf("got %+v", cfg)
	}
	if cfg.Limits().MaxBody != 42 {
		t.Errorf("max body: got %d", cfg.Limits().MaxBody)
	}
}

func TestParseErrors(t *testing.T) {
	for _, args := range [][]string{
		{"--unknown"},
		{"--read-timeout", "soon"},
		{"--read-timeout", "-1s"},
		{"--log-level", "loud"},
		{"extra"},
	} {
		if _, err := Parse(args, io.Discard); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestHelp(t *testing.T) {
	_, err := Parse([]string{"-h"}, io.Discard)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("got %v, want %v", err, flag.ErrHelp)
	}
}
