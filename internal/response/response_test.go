package response

import (
	"bytes"
	"errors"
	"testing"
)

func expectEqual(t *testing.T, expect, actual string) {
	t.Helper()
	if expect != actual {
		t.Errorf("got %q, want %q", actual, expect)
	}
}

func TestText(t *testing.T) {
	res := Text(200, "test")
	expectEqual(t, "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 4\r\n\r\ntest", string(res.Bytes()))
}

func TestNotFound(t *testing.T) {
	res := Text(404, "test")
	expectEqual(t, "HTTP/1.1 404 Not Found\r\nContent-Type: text/plain\r\nContent-Length: 4\r\n\r\ntest", string(res.Bytes()))
}

func TestEmptyBody(t *testing.T) {
	res := New(201)
	expectEqual(t, "HTTP/1.1 201 Created\r\nContent-Length: 0\r\n\r\n", string(res.Bytes()))
}

func TestContentLengthIsByteLength(t *testing.T) {
	res := Text(200, "héllo, 世界")
	expect := "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 14\r\n\r\nhéllo, 世界"
	expectEqual(t, expect, string(res.Bytes()))
}

func TestContentLengthOverridden(t *testing.T) {
	res := Text(200, "abc").Set("Content-Length", "999")
	expectEqual(t, "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 3\r\n\r\nabc", string(res.Bytes()))
}

func TestVersion(t *testing.T) {
	res := Text(200, "")
	res.Version = "HTTP/1.0"
	expectEqual(t, "HTTP/1.0 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 0\r\n\r\n", string(res.Bytes()))
}

func TestSetReplaces(t *testing.T) {
	res := New(200).Set("Content-Type", "a").Set("X-Other", "b").Set("Content-Type", "c")
	if len(res.Headers) != 2 {
		t.Fatalf("got %d headers, want 2", len(res.Headers))
	}
	expectEqual(t, "c", res.Get("Content-Type"))
	expectEqual(t, "Content-Type", res.Headers[0].Name)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWriteToError(t *testing.T) {
	if _, err := Text(200, "x").WriteTo(failWriter{}); err == nil {
		t.Error("expected error")
	}
}

func TestWriteToCount(t *testing.T) {
	var buf bytes.Buffer
	n, err := Text(200, "test").WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if int(n) != buf.Len() {
		t.Errorf("got %d, want %d", n, buf.Len())
	}
}
