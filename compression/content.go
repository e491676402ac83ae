package compression

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// ContentGzipEncodingName is the registration name of the content-gzip interceptor.
const ContentGzipEncodingName = "feignContentGzipEncodingInterceptor"

// ContentGzipEncoding gzips request bodies of the configured media types
// once they reach the minimum size.
type ContentGzipEncoding struct {
	mimeTypes map[string]struct{}
	minSize   int64
}

// NewContentGzipEncoding creates the content-gzip interceptor.
func NewContentGzipEncoding(p RequestProperties) *ContentGzipEncoding {
	types := make(map[string]struct{}, len(p.MimeTypes))
	for _, mt := range p.MimeTypes {
		types[strings.ToLower(strings.TrimSpace(mt))] = struct{}{}
	}
	return &ContentGzipEncoding{mimeTypes: types, minSize: int64(p.MinRequestSize)}
}

// Order runs compression after every other interceptor has shaped the body.
func (c *ContentGzipEncoding) Order() int { return 1000 }

// Apply compresses the body in place when the request qualifies.
func (c *ContentGzipEncoding) Apply(req *http.Request) error {
	if req.Body == nil || req.Body == http.NoBody {
		return nil
	}
	if req.Header.Get("Content-Encoding") != "" || !c.matchesType(req.Header.Get("Content-Type")) {
		return nil
	}
	if req.ContentLength > 0 && req.ContentLength < c.minSize {
		return nil
	}

	data, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if err != nil {
		return fmt.Errorf("read request body: %w", err)
	}

	if int64(len(data)) < c.minSize {
		setBody(req, data)
		return nil
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return fmt.Errorf("gzip request body: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("gzip request body: %w", err)
	}

	setBody(req, buf.Bytes())
	req.Header.Set("Content-Encoding", "gzip")
	return nil
}

func (c *ContentGzipEncoding) matchesType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	_, ok := c.mimeTypes[mediaType]
	return ok
}

func setBody(req *http.Request, data []byte) {
	req.Body = io.NopCloser(bytes.NewReader(data))
	req.ContentLength = int64(len(data))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	req.Header.Del("Content-Length")
}
