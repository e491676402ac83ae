package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/feignkit/component"
	"github.com/kbukum/feignkit/config"
	"github.com/kbukum/feignkit/feign"
	"github.com/kbukum/feignkit/logger"
	"github.com/kbukum/feignkit/version"
)

// App wires a service config, a logger, the feign client context and any
// further lifecycle components.
type App[C Config] struct {
	Name       string
	Cfg        C
	Feign      *feign.Context
	Components *component.Registry
	Logger     *logger.Logger

	gracefulTimeout time.Duration
	onReady         []Hook
	onStop          []Hook
}

// NewApp validates cfg, initialises logging and builds the client context
// from src. A nil src behaves like an empty configuration.
func NewApp[C Config](cfg C, src *config.Source, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	base := cfg.GetServiceConfig()
	o := resolveOptions(opts)

	log := o.logger
	if log == nil {
		log = logger.New(&base.Logging, base.Name)
		logger.SetGlobalLogger(log)
	}

	feignOpts := append([]feign.Option{feign.WithLogger(log.WithComponent("feign"))}, o.feignOpts...)
	fc, err := feign.NewContext(src, feignOpts...)
	if err != nil {
		return nil, fmt.Errorf("client context: %w", err)
	}

	app := &App[C]{
		Name:            base.Name,
		Cfg:             cfg,
		Feign:           fc,
		Components:      component.NewRegistry(component.WithRegistryLogger(log.WithComponent("lifecycle"))),
		Logger:          log,
		gracefulTimeout: o.gracefulTimeout,
	}
	if err := app.Components.Register(fc); err != nil {
		return nil, err
	}
	return app, nil
}

// RegisterComponent adds a component after the client context.
func (a *App[C]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// Start starts every component, logs a summary and runs the ready hooks.
func (a *App[C]) Start(ctx context.Context) error {
	a.Logger.Info("starting application", logger.Fields(
		"name", a.Name,
		"version", version.Short(),
	))
	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("start components: %w", err)
	}
	a.logSummary(ctx)
	if err := runHooks(ctx, a.onReady); err != nil {
		return fmt.Errorf("onReady hook failed: %w", err)
	}
	return nil
}

// Run starts the application and blocks until a shutdown signal or ctx
// cancellation, then shuts down gracefully.
func (a *App[C]) Run(ctx context.Context) error {
	if err := a.Start(ctx); err != nil {
		_ = a.Shutdown()
		return err
	}
	a.waitForSignal(ctx)
	return a.Shutdown()
}

// RunTask starts the application, runs task and shuts down when it returns.
// SIGINT and SIGTERM cancel the task's context.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.Start(ctx); err != nil {
		_ = a.Shutdown()
		return err
	}

	taskCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	taskErr := task(taskCtx)
	if stopErr := a.Shutdown(); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

// Shutdown runs the stop hooks and stops components in reverse order
// within the graceful timeout.
func (a *App[C]) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var shutdownErr error
	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("onStop hook error", logger.Fields(logger.FieldError, err.Error()))
		shutdownErr = err
	}
	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("shutdown completed with errors", logger.Fields(logger.FieldError, err.Error()))
		shutdownErr = err
	}
	a.Logger.Info("application shutdown complete")
	return shutdownErr
}

func (a *App[C]) waitForSignal(ctx context.Context) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("received shutdown signal", logger.Fields("signal", sig.String()))
	case <-ctx.Done():
		a.Logger.Info("context canceled, shutting down")
	}
}

func (a *App[C]) logSummary(ctx context.Context) {
	for _, s := range a.Components.Summaries(ctx) {
		fields := logger.Fields(logger.FieldComponent, s.Health.Name, "status", string(s.Status))
		if s.Type != "" {
			fields["type"] = s.Type
			fields["details"] = s.Details
		}
		a.Logger.Info("component ready", fields)
	}
}
