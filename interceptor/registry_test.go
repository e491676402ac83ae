package interceptor

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/feignkit/errors"
)

type tagInterceptor struct{ tag string }

func (t *tagInterceptor) Apply(req *http.Request) error {
	req.Header.Add("X-Tag", t.tag)
	return nil
}

// decoder is a second capability type stored alongside interceptors.
type decoder interface{ Decode() }

type jsonDecoder struct{}

func (jsonDecoder) Decode() {}

func TestInstances_EmptyRegistry(t *testing.T) {
	r := NewRegistry()
	got := Instances[Interceptor](r, "foo")
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestInstances_UnknownClientWithoutDefaults(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterFor("foo", "a", &tagInterceptor{"a"}))

	got := Instances[Interceptor](r, "bar")
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestInstances_DefaultsVisibleToEveryClient(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("a", &tagInterceptor{"a"}))

	assert.Len(t, Instances[Interceptor](r, "foo"), 1)
	assert.Len(t, Instances[Interceptor](r, "bar"), 1)
}

func TestInstances_ClientOverridesDefault(t *testing.T) {
	r := NewRegistry()
	global := &tagInterceptor{"global"}
	scoped := &tagInterceptor{"scoped"}
	require.NoError(t, r.Register("a", global))
	require.NoError(t, r.Register("b", &tagInterceptor{"b"}))
	require.NoError(t, r.RegisterFor("foo", "a", scoped))

	foo := Instances[Interceptor](r, "foo")
	assert.Len(t, foo, 2)
	assert.Same(t, scoped, foo["a"])

	bar := Instances[Interceptor](r, "bar")
	assert.Same(t, global, bar["a"])
}

func TestInstances_FiltersByCapability(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("tag", &tagInterceptor{"x"}))
	require.NoError(t, r.Register("json", jsonDecoder{}))

	interceptors := Instances[Interceptor](r, "foo")
	assert.Len(t, interceptors, 1)
	assert.Contains(t, interceptors, "tag")

	decoders := Instances[decoder](r, "foo")
	assert.Len(t, decoders, 1)
	assert.Contains(t, decoders, "json")

	assert.Len(t, r.Lookup("foo"), 2)
}

func TestRegister_LastWriteWins(t *testing.T) {
	r := NewRegistry()
	second := &tagInterceptor{"second"}
	require.NoError(t, r.Register("a", &tagInterceptor{"first"}))
	require.NoError(t, r.Register("a", second))
	require.NoError(t, r.RegisterFor("foo", "b", &tagInterceptor{"first"}))
	require.NoError(t, r.RegisterFor("foo", "b", second))

	got := Instances[Interceptor](r, "foo")
	assert.Len(t, got, 2)
	assert.Same(t, second, got["a"])
	assert.Same(t, second, got["b"])
}

func TestSeal_RejectsWrites(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("a", &tagInterceptor{"a"}))
	r.Seal()
	assert.True(t, r.Sealed())

	err := r.Register("b", &tagInterceptor{"b"})
	assert.True(t, stderrors.Is(err, errors.ErrRegistrySealed))
	err = r.RegisterFor("foo", "b", &tagInterceptor{"b"})
	assert.True(t, stderrors.Is(err, errors.ErrRegistrySealed))

	assert.Len(t, Instances[Interceptor](r, "foo"), 1)
}

func TestLookup_ReturnsCopy(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("a", &tagInterceptor{"a"}))

	m := r.Lookup("foo")
	delete(m, "a")
	assert.Len(t, r.Lookup("foo"), 1)
}

func TestClients(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterFor("zeta", "a", 1))
	require.NoError(t, r.RegisterFor("alpha", "a", 1))
	assert.Equal(t, []string{"alpha", "zeta"}, r.Clients())
}

func TestInstances_ConcurrentReadsAfterSeal(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 10; i++ {
		require.NoError(t, r.Register(fmt.Sprintf("i%d", i), &tagInterceptor{"x"}))
	}
	r.Seal()

	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 100; n++ {
				if len(Instances[Interceptor](r, "foo")) != 10 {
					t.Error("unexpected instance count")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestRegistry_ClientNamesIgnoreCase(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterFor("Orders", "a", &tagInterceptor{"a"}))
	require.NoError(t, r.RegisterFor("orders", "b", &tagInterceptor{"b"}))

	for _, name := range []string{"orders", "Orders", "ORDERS"} {
		assert.Len(t, Instances[Interceptor](r, name), 2, name)
	}
	assert.Equal(t, []string{"orders"}, r.Clients())
	assert.Equal(t, "orders", ClientKey("OrDeRs"))
}
