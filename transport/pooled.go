package transport

import (
	"io"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Pooled is a connection-pooling transport over net/http that decodes
// gzip and deflate response bodies itself.
//
// net/http's implicit compression is disabled so an explicitly set
// Accept-Encoding header (as added by the accept-gzip interceptor) is sent
// verbatim and the response is still handed back decoded.
type Pooled struct {
	base *http.Transport
}

var (
	_ Handle             = (*Pooled)(nil)
	_ CompressionCapable = (*Pooled)(nil)
)

// NewPooled creates a pooled transport from cfg.
func NewPooled(cfg Config) *Pooled {
	cfg.ApplyDefaults()

	base := http.DefaultTransport.(*http.Transport).Clone()
	base.DisableCompression = true
	base.MaxIdleConns = cfg.MaxIdleConns
	base.MaxIdleConnsPerHost = cfg.MaxIdleConnsPerHost
	base.IdleConnTimeout = cfg.IdleConnTimeout

	return &Pooled{base: base}
}

// Kind returns KindPooled.
func (p *Pooled) Kind() string { return KindPooled }

// SupportsCompressionWiring reports true: Pooled decodes compressed responses.
func (p *Pooled) SupportsCompressionWiring() bool { return true }

// Close releases idle connections.
func (p *Pooled) Close() error {
	p.base.CloseIdleConnections()
	return nil
}

// RoundTrip sends req and decodes a gzip or deflate response body.
func (p *Pooled) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := p.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if req.Method == http.MethodHead || resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	encoding := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))
	var open func(io.Reader) (io.ReadCloser, error)
	switch encoding {
	case "gzip", "x-gzip":
		open = func(r io.Reader) (io.ReadCloser, error) {
			zr, err := gzip.NewReader(r)
			if err != nil {
				return nil, err
			}
			return zr, nil
		}
	case "deflate":
		open = zlib.NewReader
	default:
		return resp, nil
	}

	resp.Body = &decodingBody{body: resp.Body, open: open}
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true
	return resp, nil
}

// decodingBody opens the decoder on first Read so empty bodies on
// 204/304 responses never fail header parsing.
type decodingBody struct {
	body    io.ReadCloser
	open    func(io.Reader) (io.ReadCloser, error)
	decoder io.ReadCloser
	err     error
}

func (d *decodingBody) Read(p []byte) (int, error) {
	if d.err != nil {
		return 0, d.err
	}
	if d.decoder == nil {
		d.decoder, d.err = d.open(d.body)
		if d.err != nil {
			return 0, d.err
		}
	}
	return d.decoder.Read(p)
}

func (d *decodingBody) Close() error {
	if d.decoder != nil && d.err == nil {
		_ = d.decoder.Close()
	}
	return d.body.Close()
}
