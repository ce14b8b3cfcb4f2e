// Package request turns raw HTTP/1.1 request bytes into a Request.
package request

import (
	"strconv"
	"strings"
)

const crlf = "\r\n"

// Recognized header names. Anything else on the wire is dropped.
const (
	HeaderHost           = "Host"
	HeaderUserAgent      = "User-Agent"
	HeaderAccept         = "Accept"
	HeaderAcceptEncoding = "Accept-Encoding"
	HeaderContentLength  = "Content-Length"
	HeaderContentType    = "Content-Type"
)

var recognized = []string{
	HeaderHost,
	HeaderUserAgent,
	HeaderAccept,
	HeaderAcceptEncoding,
	HeaderContentLength,
	HeaderContentType,
}

// Headers maps each recognized header name to its value.
// Not map[string][]string, unlike http.Header: first match wins.
type Headers map[string]string

// Get returns the value for name, or "" when the header was not sent.
func (h Headers) Get(name string) string {
	return h[name]
}

type Request struct {
	Method        string
	Target        string
	Version       string
	Headers       Headers
	ContentLength uint64
	ContentType   string
	Body          string
}

// Segments splits the target on "/". "/echo/abc" gives ["", "echo", "abc"].
func (r Request) Segments() []string {
	return strings.Split(r.Target, "/")
}

// Parse builds a Request from a single buffer. It never fails: missing
// request-line tokens and headers become "", and an unparsable
// Content-Length becomes 0. The body is cut to ContentLength.
func Parse(raw []byte) Request {
	lines := strings.Split(string(raw), crlf)

	var req Request
	fields := strings.Fields(lines[0])
	req.Method = field(fields, 0)
	req.Target = field(fields, 1)
	req.Version = field(fields, 2)

	// header block runs until the first empty line
	end := len(lines)
	for i := 1; i < len(lines); i++ {
		if lines[i] == "" {
			end = i
			break
		}
	}
	req.Headers = parseHeaders(lines[1:end])

	var bodyLines []string
	if end < len(lines) {
		bodyLines = lines[end+1:]
	}

	length := req.Headers.Get(HeaderContentLength)
	req.ContentType = req.Headers.Get(HeaderContentType)

	// Some clients have been seen putting these after the blank line.
	for len(bodyLines) > 0 {
		line := bodyLines[0]
		if v, ok := strings.CutPrefix(line, HeaderContentLength+": "); ok {
			if length == "" {
				length = v
			}
		} else if v, ok := strings.CutPrefix(line, HeaderContentType+": "); ok {
			if req.ContentType == "" {
				req.ContentType = v
			}
		} else {
			break
		}
		bodyLines = bodyLines[1:]
	}

	req.ContentLength, _ = strconv.ParseUint(length, 10, 64)

	body := strings.Join(bodyLines, crlf)
	if uint64(len(body)) > req.ContentLength {
		body = body[:req.ContentLength]
	}
	req.Body = body
	return req
}

func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

func parseHeaders(lines []string) Headers {
	h := make(Headers, len(recognized))
	for _, name := range recognized {
		prefix := name + ": "
		h[name] = ""
		for _, line := range lines {
			if v, ok := strings.CutPrefix(line, prefix); ok {
				h[name] = v
				break
			}
		}
	}
	return h
}
