package compression

import "net/http"

// AcceptGzipEncodingName is the registration name of the accept-gzip interceptor.
const AcceptGzipEncodingName = "feignAcceptGzipEncodingInterceptor"

const acceptEncodingValue = "gzip, deflate"

// AcceptGzipEncoding advertises gzip and deflate support on every request.
type AcceptGzipEncoding struct{}

// NewAcceptGzipEncoding creates the accept-gzip interceptor.
func NewAcceptGzipEncoding() *AcceptGzipEncoding {
	return &AcceptGzipEncoding{}
}

// Apply sets Accept-Encoding unless the request already has one.
func (a *AcceptGzipEncoding) Apply(req *http.Request) error {
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", acceptEncodingValue)
	}
	return nil
}
