// Package response builds byte-exact HTTP/1.1 responses.
package response

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

const (
	DefaultVersion = "HTTP/1.1"

	ContentTypeText   = "text/plain"
	ContentTypeBinary = "application/octet-stream"
)

var statusText = map[int]string{
	200: "OK",
	201: "Created",
	400: "Bad Request",
	404: "Not Found",
	408: "Request Timeout",
	413: "Content Too Large",
	431: "Request Header Fields Too Large",
	500: "Internal Server Error",
}

// StatusText returns the reason phrase for code, or "" if unknown.
func StatusText(code int) string {
	return statusText[code]
}

type Header struct {
	Name  string
	Value string
}

// Response is written as status line, headers in insertion order, and body.
// Content-Length is always derived from Body when the response is written.
type Response struct {
	Version string
	Status  int
	Headers []Header
	Body    []byte
}

func New(status int) *Response {
	return &Response{Version: DefaultVersion, Status: status}
}

// Text returns a response with a text/plain body.
func Text(status int, body string) *Response {
	return New(status).Set("Content-Type", ContentTypeText).WithBody([]byte(body))
}

// Set replaces the value of name, or appends it if missing.
func (r *Response) Set(name, value string) *Response {
	for i := range r.Headers {
		if r.Headers[i].Name == name {
			r.Headers[i].Value = value
			return r
		}
	}
	r.Headers = append(r.Headers, Header{name, value})
	return r
}

// Get returns the first value for name.
func (r *Response) Get(name string) string {
	for _, h := range r.Headers {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}

func (r *Response) WithBody(body []byte) *Response {
	r.Body = body
	return r
}

// Bytes renders the response as it goes on the wire.
func (r *Response) Bytes() []byte {
	var buf bytes.Buffer
	r.WriteTo(&buf)
	return buf.Bytes()
}

// WriteTo writes the response to w in a single Write call.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	version := r.Version
	if version == "" {
		version = DefaultVersion
	}

	var buf bytes.Buffer
	buf.Grow(64 + len(r.Body))
	fmt.Fprintf(&buf, "%s %d %s\r\n", version, r.Status, StatusText(r.Status))
	for _, h := range r.Headers {
		if h.Name == "Content-Length" {
			continue
		}
		fmt.Fprintf(&buf, "%s: %s\r\n", h.Name, h.Value)
	}
	buf.WriteString("Content-Length: " + strconv.Itoa(len(r.Body)) + "\r\n")
	buf.WriteString("\r\n")
	buf.Write(r.Body)

	n, err := w.Write(buf.Bytes())
	return int64(n), err
}
