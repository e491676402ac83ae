// Package httpclient provides a named HTTP client over a caller-supplied
// round tripper.
//
// The adapter owns URL resolution, default headers, JSON body encoding and
// error classification. Everything that shapes the wire request (auth,
// compression, tracing) lives in the round tripper, typically an
// interceptor.RoundTripper built by the feign package.
//
//	a, err := httpclient.New(httpclient.Config{
//	    Name:    "orders",
//	    BaseURL: "https://orders.internal",
//	}, rt)
//
//	var order Order
//	_, err = a.DoJSON(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "/orders/123",
//	}, &order)
package httpclient
