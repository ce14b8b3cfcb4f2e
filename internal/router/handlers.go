package router

import (
	"errors"

	"github.com/codecrafters-io/http-server-go/internal/filestore"
	"github.com/codecrafters-io/http-server-go/internal/request"
	"github.com/codecrafters-io/http-server-go/internal/response"
)

// fixed body for root, echo fallback and not-found
const placeholder = "test"

func (rt *Router) root(req request.Request) *response.Response {
	return response.Text(200, placeholder)
}

func (rt *Router) notFound(req request.Request) *response.Response {
	return response.Text(404, placeholder)
}

// echo answers "/echo/<text>" with <text>; any other shape gets the
// placeholder body. Accept-Encoding is ignored: bodies are never encoded,
// so no Content-Encoding is advertised.
func (rt *Router) echo(req request.Request) *response.Response {
	body := placeholder
	if segs := req.Segments(); len(segs) == 3 {
		body = segs[2]
	}
	return response.Text(200, body)
}

func (rt *Router) userAgent(req request.Request) *response.Response {
	return response.Text(200, req.Headers.Get(request.HeaderUserAgent))
}

func (rt *Router) fileGet(req request.Request) *response.Response {
	segs := req.Segments()
	if len(segs) != 3 {
		return response.Text(404, placeholder)
	}
	data, err := rt.files.Get(segs[2])
	if err != nil {
		if !isMissing(err) {
			rt.log.Error("file get", "name", segs[2], "err", err)
		}
		return response.Text(404, placeholder)
	}
	return response.New(200).
		Set("Content-Type", response.ContentTypeBinary).
		WithBody(data)
}

func (rt *Router) filePost(req request.Request) *response.Response {
	segs := req.Segments()
	if len(segs) != 3 {
		return response.Text(404, placeholder)
	}
	if err := rt.files.Put(segs[2], []byte(req.Body)); err != nil {
		if errors.Is(err, filestore.ErrOutsideRoot) {
			return response.Text(404, placeholder)
		}
		rt.log.Error("file post", "name", segs[2], "err", err)
		return response.Text(500, response.StatusText(500))
	}
	return response.New(201)
}

func isMissing(err error) bool {
	return errors.Is(err, filestore.ErrNotFound) || errors.Is(err, filestore.ErrOutsideRoot)
}
