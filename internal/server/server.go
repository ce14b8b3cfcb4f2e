// Package server accepts TCP connections and answers one request on each.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/codecrafters-io/http-server-go/internal/request"
	"github.com/codecrafters-io/http-server-go/internal/response"
	"github.com/codecrafters-io/http-server-go/internal/router"
)

type Options struct {
	ReadTimeout  time.Duration // 0 means no deadline
	WriteTimeout time.Duration
	Limits       request.Limits
	Logger       *slog.Logger
}

type Server struct {
	router *router.Router
	opts   Options
	log    *slog.Logger
	wg     sync.WaitGroup
}

func New(rt *router.Router, opts Options) *Server {
	if opts.Limits.MaxHeader == 0 {
		opts.Limits.MaxHeader = request.DefaultLimits.MaxHeader
	}
	if opts.Limits.MaxBody == 0 {
		opts.Limits.MaxBody = request.DefaultLimits.MaxBody
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{router: rt, opts: opts, log: logger}
}

// Serve accepts connections on ln until ctx is cancelled, handling each one
// in its own goroutine. It closes ln and waits for in-flight connections
// before returning. The returned error is nil after a cancellation.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()
	defer s.wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			s.log.Error("accept connection", "err", err)
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(conn) // the goroutine owns conn
		}()
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	start := time.Now()
	remote := conn.RemoteAddr().String()

	if s.opts.ReadTimeout > 0 {
		conn.SetReadDeadline(start.Add(s.opts.ReadTimeout))
	}

	route := "rejected"
	req, err := request.Read(conn, s.opts.Limits)
	if err != nil {
		if errors.Is(err, io.EOF) {
			s.log.Debug("connection closed before request", "remote", remote)
			return
		}
		var nerr net.Error
		if errors.As(err, &nerr) && nerr.Timeout() {
			s.log.Warn("read timed out", "remote", remote)
			return
		}
		if !isRequestError(err) {
			s.log.Error("read request", "remote", remote, "err", err)
			return
		}
		s.log.Warn("bad request", "remote", remote, "err", err)
	}

	var res *response.Response
	if err != nil {
		res = s.router.Reject(err)
	} else {
		route, res = s.router.Serve(req)
	}

	if s.opts.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout))
	}
	n, werr := res.WriteTo(conn)
	if werr != nil {
		s.log.Error("write response", "remote", remote, "err", werr)
		return
	}

	s.log.Info("request",
		"remote", remote,
		"method", req.Method,
		"target", req.Target,
		"route", route,
		"status", res.Status,
		"bytes", n,
		"duration", time.Since(start),
	)
}

func isRequestError(err error) bool {
	return errors.Is(err, request.ErrMalformedRequest) ||
		errors.Is(err, request.ErrInvalidContentLength) ||
		errors.Is(err, request.ErrHeaderTooLarge) ||
		errors.Is(err, request.ErrBodyTooLarge)
}
