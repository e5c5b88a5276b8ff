package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// bufferedWriter holds the body and status until the handler chain returns.
type bufferedWriter struct {
	gin.ResponseWriter
	buf     bytes.Buffer
	status  int
	written bool
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	w.written = true
	return w.buf.Write(b)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// WriteHeader may change the status until the first write, as gin's own writer does.
func (w *bufferedWriter) WriteHeader(code int) {
	if code > 0 && !w.written {
		w.status = code
	}
}

func (w *bufferedWriter) WriteHeaderNow() {
	w.written = true
}

func (w *bufferedWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func (w *bufferedWriter) Size() int {
	return w.buf.Len()
}

func (w *bufferedWriter) Written() bool {
	return w.written
}

// ETag tags successful GET responses with a weak validator over the body and
// answers 304 when the client already holds it.
func ETag() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		orig := c.Writer
		bw := &bufferedWriter{ResponseWriter: orig}
		c.Writer = bw
		// restored on panic too so recovery writes to the real connection
		defer func() { c.Writer = orig }()
		c.Next()
		c.Writer = orig

		status := bw.Status()
		body := bw.buf.Bytes()
		if status == http.StatusOK && len(body) > 0 {
			sum := sha256.Sum256(body)
			etag := `W/"` + hex.EncodeToString(sum[:16]) + `"`
			orig.Header().Set("ETag", etag)
			if etagMatches(c.GetHeader("If-None-Match"), etag) {
				orig.Header().Del("Content-Length")
				orig.WriteHeader(http.StatusNotModified)
				orig.WriteHeaderNow()
				return
			}
		}

		orig.WriteHeader(status)
		if len(body) > 0 {
			_, _ = orig.Write(body)
		} else {
			orig.WriteHeaderNow()
		}
	}
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}
