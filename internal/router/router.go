// Package router picks a handler for a request target and runs it.
//
// Matching is a literal string prefix check, not path-segment aware:
// "/echoXYZ" is an echo request and "/files/a" is a file request. Handlers
// then look at the "/"-split target and fall back when the segment count
// is not what they expect.
package router

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/codecrafters-io/http-server-go/internal/request"
	"github.com/codecrafters-io/http-server-go/internal/response"
)

// FileStore is the filesystem capability used by the file routes.
type FileStore interface {
	Get(name string) ([]byte, error)
	Put(name string, data []byte) error
}

// Handler produces a response for one request.
type Handler func(req request.Request) *response.Response

// Route names, as reported to the access log.
const (
	RouteRoot      = "root"
	RouteEcho      = "echo"
	RouteUserAgent = "user-agent"
	RouteFileGet   = "file-get"
	RouteFilePost  = "file-post"
	RouteNotFound  = "not-found"
)

type Router struct {
	files FileStore
	log   *slog.Logger
}

type Option func(*Router)

func WithLogger(l *slog.Logger) Option {
	return func(rt *Router) { rt.log = l }
}

func New(files FileStore, opts ...Option) *Router {
	rt := &Router{
		files: files,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Match returns the route name and handler for req. It always returns a
// handler; unmatched requests get the not-found handler.
func (rt *Router) Match(req request.Request) (string, Handler) {
	target := req.Target
	switch {
	case target == "/":
		return RouteRoot, rt.root
	case strings.HasPrefix(target, "/echo"):
		return RouteEcho, rt.echo
	case strings.HasPrefix(target, "/file"):
		switch req.Method {
		case "GET":
			return RouteFileGet, rt.fileGet
		case "POST":
			return RouteFilePost, rt.filePost
		}
		return RouteNotFound, rt.notFound
	case strings.HasPrefix(target, "/user-agent"):
		return RouteUserAgent, rt.userAgent
	default:
		return RouteNotFound, rt.notFound
	}
}

// Serve routes req and returns the route name with the handler's response.
func (rt *Router) Serve(req request.Request) (string, *response.Response) {
	route, h := rt.Match(req)
	res := h(req)
	if req.Version == "HTTP/1.0" || req.Version == "HTTP/1.1" {
		res.Version = req.Version
	}
	return route, res
}

// Reject maps an error from request.Read to the response sent instead of
// routing.
func (rt *Router) Reject(err error) *response.Response {
	var status int
	switch {
	case errors.Is(err, request.ErrBodyTooLarge):
		status = 413
	case errors.Is(err, request.ErrHeaderTooLarge):
		status = 431
	case errors.Is(err, request.ErrMalformedRequest),
		errors.Is(err, request.ErrInvalidContentLength):
		status = 400
	default:
		status = 500
	}
	return response.Text(status, response.StatusText(status))
}
