package compression

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/feignkit/errors"
	"github.com/kbukum/feignkit/interceptor"
	"github.com/kbukum/feignkit/logger"
	"github.com/kbukum/feignkit/transport"
)

// opaqueTransport hides the pooled transport behind a wrapper with no Unwrap.
type opaqueTransport struct{ next http.RoundTripper }

func (o opaqueTransport) RoundTrip(r *http.Request) (*http.Response, error) { return o.next.RoundTrip(r) }

func props(response, request bool) Properties {
	p := DefaultProperties()
	p.Response.Enabled = response
	p.Request.Enabled = request
	return p
}

func TestRegister(t *testing.T) {
	pooled := transport.NewPooled(transport.Config{})
	h2 := transport.NewHTTP2(transport.Config{})

	tests := []struct {
		name  string
		props Properties
		rt    http.RoundTripper
		want  []string
	}{
		{"both enabled on pooled", props(true, true), pooled, []string{AcceptGzipEncodingName, ContentGzipEncodingName}},
		{"both enabled on http2", props(true, true), h2, nil},
		{"both enabled behind opaque wrapper", props(true, true), opaqueTransport{next: pooled}, nil},
		{"both enabled behind logging wrapper", props(true, true), transport.WithLogging(pooled, logger.Nop()), []string{AcceptGzipEncodingName, ContentGzipEncodingName}},
		{"response only", props(true, false), pooled, []string{AcceptGzipEncodingName}},
		{"request only", props(false, true), pooled, []string{ContentGzipEncodingName}},
		{"both disabled", props(false, false), pooled, nil},
		{"nil transport", props(true, true), nil, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg := interceptor.NewRegistry()
			require.NoError(t, Register(tc.props, tc.rt, reg))

			got := interceptor.Instances[interceptor.Interceptor](reg, "foo")
			require.NotNil(t, got)
			assert.Len(t, got, len(tc.want))
			for _, name := range tc.want {
				assert.Contains(t, got, name)
			}
		})
	}
}

func TestRegister_ConcreteTypes(t *testing.T) {
	reg := interceptor.NewRegistry()
	require.NoError(t, Register(props(true, true), transport.NewPooled(transport.Config{}), reg))

	got := interceptor.Instances[interceptor.Interceptor](reg, "foo")
	require.Len(t, got, 2)
	assert.IsType(t, &AcceptGzipEncoding{}, got[AcceptGzipEncodingName])
	assert.IsType(t, &ContentGzipEncoding{}, got[ContentGzipEncodingName])
}

func TestRegister_VisibleToEveryClient(t *testing.T) {
	reg := interceptor.NewRegistry()
	require.NoError(t, Register(props(true, false), transport.NewPooled(transport.Config{}), reg))

	assert.Len(t, interceptor.Instances[interceptor.Interceptor](reg, "foo"), 1)
	assert.Len(t, interceptor.Instances[interceptor.Interceptor](reg, "bar"), 1)
}

func TestRegister_OverwritesExisting(t *testing.T) {
	reg := interceptor.NewRegistry()
	placeholder := interceptor.Func(func(*http.Request) error { return nil })
	require.NoError(t, reg.Register(AcceptGzipEncodingName, placeholder))

	require.NoError(t, Register(props(true, false), transport.NewPooled(transport.Config{}), reg))

	got := interceptor.Instances[interceptor.Interceptor](reg, "foo")
	assert.IsType(t, &AcceptGzipEncoding{}, got[AcceptGzipEncodingName])
}

func TestRegister_SealedRegistry(t *testing.T) {
	reg := interceptor.NewRegistry()
	reg.Seal()

	err := Register(props(true, true), transport.NewPooled(transport.Config{}), reg)
	assert.True(t, stderrors.Is(err, errors.ErrRegistrySealed))

	// Disabled flags or a non-capable transport never touch the registry.
	assert.NoError(t, Register(props(false, false), transport.NewPooled(transport.Config{}), reg))
	assert.NoError(t, Register(props(true, true), transport.NewHTTP2(transport.Config{}), reg))
}

func TestRegistrationNames(t *testing.T) {
	assert.Equal(t, "feignAcceptGzipEncodingInterceptor", AcceptGzipEncodingName)
	assert.Equal(t, "feignContentGzipEncodingInterceptor", ContentGzipEncodingName)
}
