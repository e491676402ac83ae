package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kbukum/feignkit/component"
	"github.com/kbukum/feignkit/compression"
	"github.com/kbukum/feignkit/config"
	"github.com/kbukum/feignkit/logger"
)

type testConfig struct {
	config.ServiceConfig
}

func newTestConfig(name string) *testConfig {
	return &testConfig{ServiceConfig: config.ServiceConfig{Name: name}}
}

type mockComponent struct {
	name     string
	startErr error
	started  bool
	stopped  bool
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	m.started = true
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	m.stopped = true
	return nil
}
func (m *mockComponent) Health(ctx context.Context) component.Health {
	return component.Health{Name: m.name, Status: component.StatusHealthy}
}

func mustSource(t *testing.T, pairs ...string) *config.Source {
	t.Helper()
	src, err := config.FromPairs(pairs...)
	if err != nil {
		t.Fatalf("FromPairs failed: %v", err)
	}
	return src
}

func TestNewApp(t *testing.T) {
	src := mustSource(t, "compression.response.enabled=true", "compression.request.enabled=true")
	app, err := NewApp(newTestConfig("test-svc"), src, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.Name != "test-svc" {
		t.Errorf("expected name 'test-svc', got %q", app.Name)
	}
	if app.Cfg.Environment != "development" {
		t.Errorf("expected defaults applied, got environment %q", app.Cfg.Environment)
	}
	if app.Components.Get("feign") == nil {
		t.Error("expected client context to be registered as a component")
	}
	if got := app.Feign.Instances("foo"); len(got) != 2 {
		t.Errorf("expected 2 interceptors, got %d", len(got))
	}
	if _, ok := app.Feign.Instances("foo")[compression.AcceptGzipEncodingName]; !ok {
		t.Error("expected accept-gzip interceptor")
	}
}

func TestNewApp_InvalidConfig(t *testing.T) {
	if _, err := NewApp(newTestConfig(""), nil, WithLogger(logger.Nop())); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestNewApp_MalformedSource(t *testing.T) {
	src := mustSource(t, "compression.request.enabled=perhaps")
	if _, err := NewApp(newTestConfig("svc"), src, WithLogger(logger.Nop())); err == nil {
		t.Error("expected malformed flag to fail startup")
	}
}

func TestRunTask_Lifecycle(t *testing.T) {
	app, err := NewApp(newTestConfig("svc"), nil, WithLogger(logger.Nop()), WithGracefulTimeout(time.Second))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	comp := &mockComponent{name: "worker"}
	if err := app.RegisterComponent(comp); err != nil {
		t.Fatalf("RegisterComponent failed: %v", err)
	}

	var order []string
	app.OnReady(func(ctx context.Context) error {
		order = append(order, "ready")
		return nil
	})
	app.OnStop(func(ctx context.Context) error {
		order = append(order, "stop")
		return nil
	})

	err = app.RunTask(context.Background(), func(ctx context.Context) error {
		order = append(order, "task")
		if _, err := app.Feign.Client("orders"); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}

	want := []string{"ready", "task", "stop"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("step %d: expected %s, got %s", i, want[i], order[i])
		}
	}
	if !comp.started || !comp.stopped {
		t.Error("expected component to be started and stopped")
	}
	if h := app.Feign.Health(context.Background()); h.Status != component.StatusUnhealthy {
		t.Errorf("expected client context stopped, got %s", h.Status)
	}
}

func TestRunTask_ReturnsTaskError(t *testing.T) {
	app, err := NewApp(newTestConfig("svc"), nil, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	boom := errors.New("boom")
	if err := app.RunTask(context.Background(), func(context.Context) error { return boom }); !errors.Is(err, boom) {
		t.Errorf("expected task error, got %v", err)
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	app, err := NewApp(newTestConfig("svc"), nil, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := app.Run(ctx); err != nil {
		t.Errorf("Run failed: %v", err)
	}
}

func TestStart_ComponentFailure(t *testing.T) {
	app, err := NewApp(newTestConfig("svc"), nil, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	_ = app.RegisterComponent(&mockComponent{name: "broken", startErr: errors.New("no db")})
	if err := app.Run(context.Background()); err == nil {
		t.Error("expected start failure")
	}
}
