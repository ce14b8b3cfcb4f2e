// Package config parses the server's command line.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/codecrafters-io/http-server-go/internal/request"
)

const DefaultAddr = "127.0.0.1:4221"

type Config struct {
	// Directory is the root for /file requests. Empty means the working
	// directory; it is never checked for existence.
	Directory    string
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxBody      uint64
	LogLevel     slog.Level
	NoColor      bool
}

// Parse reads flags from args (without the program name). Usage and errors
// go to output. flag.ErrHelp is returned as is for -h.
func Parse(args []string, output io.Writer) (Config, error) {
	var cfg Config
	fs := flag.NewFlagSet("http-server", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&cfg.Directory, "directory", "", "directory to serve files from")
	fs.StringVar(&cfg.Addr, "addr", DefaultAddr, "address to listen on")
	fs.DurationVar(&cfg.ReadTimeout, "read-timeout", 10*time.Second, "deadline for reading a request (0 disables)")
	fs.DurationVar(&cfg.WriteTimeout, "write-timeout", 10*time.Second, "deadline for writing a response (0 disables)")
	fs.Uint64Var(&cfg.MaxBody, "max-body", request.DefaultLimits.MaxBody, "largest accepted request body in bytes")
	fs.TextVar(&cfg.LogLevel, "log-level", slog.LevelInfo, "log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable colored console output")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	// report our own errors the way flag reports its own
	fail := func(err error) (Config, error) {
		fmt.Fprintln(output, err)
		fs.Usage()
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return fail(fmt.Errorf("unexpected argument %q", fs.Arg(0)))
	}
	if cfg.ReadTimeout < 0 || cfg.WriteTimeout < 0 {
		return fail(errors.New("timeouts must not be negative"))
	}

	if cfg.Directory != "" {
		if abs, err := filepath.Abs(cfg.Directory); err == nil {
			cfg.Directory = abs
		}
	}
	return cfg, nil
}

// Limits returns the request limits derived from cfg.
func (c Config) Limits() request.Limits {
	lim := request.DefaultLimits
	if c.MaxBody > 0 {
		lim.MaxBody = c.MaxBody
	}
	return lim
}
