package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/codecrafters-io/http-server-go/internal/config"
	"github.com/codecrafters-io/http-server-go/internal/filestore"
	"github.com/codecrafters-io/http-server-go/internal/router"
	"github.com/codecrafters-io/http-server-go/internal/server"
)

func main() {
	cfg, err := config.Parse(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}
	if cfg.NoColor {
		color.NoColor = true
	}

	color.New(color.FgCyan).Println("Logs from your program will appear here!")

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	store := filestore.New(cfg.Directory)
	rt := router.New(store, router.WithLogger(logger))
	srv := server.New(rt, server.Options{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		Limits:       cfg.Limits(),
		Logger:       logger,
	})

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Failed to bind to %s: %v\n", cfg.Addr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	color.New(color.FgGreen).Printf("Listening on %s, serving files from %s\n", ln.Addr(), store.Root())
	if err := srv.Serve(ctx, ln); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
	color.New(color.FgYellow).Println("Shut down")
}
