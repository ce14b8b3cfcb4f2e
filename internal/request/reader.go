package request

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	// ErrMalformedRequest is returned when the request line has fewer than
	// two tokens or the stream ends inside the header block or body.
	ErrMalformedRequest = errors.New("request: malformed request")

	// ErrInvalidContentLength is returned for a non-numeric Content-Length.
	ErrInvalidContentLength = errors.New("request: invalid Content-Length")

	// ErrHeaderTooLarge is returned when no blank line shows up within
	// Limits.MaxHeader bytes.
	ErrHeaderTooLarge = errors.New("request: header block too large")

	// ErrBodyTooLarge is returned when Content-Length exceeds Limits.MaxBody.
	ErrBodyTooLarge = errors.New("request: body too large")
)

type Limits struct {
	MaxHeader int
	MaxBody   uint64
}

var DefaultLimits = Limits{
	MaxHeader: 8 << 10,
	MaxBody:   10 << 20,
}

// Read reads one request from r: the header block up to the first blank
// line, then exactly Content-Length bytes of body, however many reads that
// takes. Unlike Parse it reports malformed input.
//
// io.EOF is returned as is when r ends before any byte was read.
func Read(r io.Reader, lim Limits) (Request, error) {
	var br *bufio.Reader
	if casted, ok := r.(*bufio.Reader); ok {
		br = casted
	} else {
		br = bufio.NewReader(r)
	}

	head, err := readHead(br, lim.MaxHeader)
	if err != nil {
		return Request{}, err
	}

	requestLine, _, _ := strings.Cut(head, crlf)
	if len(strings.Fields(requestLine)) < 2 {
		return Request{}, fmt.Errorf("%w: request line %q", ErrMalformedRequest, requestLine)
	}

	req := Parse([]byte(head))

	length := req.Headers.Get(HeaderContentLength)
	if length != "" {
		n, err := strconv.ParseUint(length, 10, 64)
		if err != nil {
			return Request{}, fmt.Errorf("%w: %q", ErrInvalidContentLength, length)
		}
		req.ContentLength = n
	}
	if req.ContentLength > lim.MaxBody {
		return Request{}, fmt.Errorf("%w: %d > %d", ErrBodyTooLarge, req.ContentLength, lim.MaxBody)
	}

	if req.ContentLength > 0 {
		body := make([]byte, req.ContentLength)
		if _, err := io.ReadFull(br, body); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return Request{}, fmt.Errorf("%w: body shorter than Content-Length %d", ErrMalformedRequest, req.ContentLength)
			}
			return Request{}, fmt.Errorf("reading body: %w", err)
		}
		req.Body = string(body)
	}
	return req, nil
}

// readHead returns everything up to and including the blank line.
func readHead(br *bufio.Reader, limit int) (string, error) {
	var sb strings.Builder
	lineStart := 0
	for {
		chunk, err := br.ReadSlice('\n')
		sb.Write(chunk)
		if sb.Len() > limit {
			return "", fmt.Errorf("%w: over %d bytes", ErrHeaderTooLarge, limit)
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				if sb.Len() == 0 {
					return "", io.EOF
				}
				return "", fmt.Errorf("%w: stream ended inside header block", ErrMalformedRequest)
			}
			return "", fmt.Errorf("reading header block: %w", err)
		}
		head := sb.String()
		if head[lineStart:] == crlf {
			return head, nil
		}
		lineStart = len(head)
	}
}
