// Package app provides the application context and dependency management
// for the appdex CLI. It centralizes configuration, logging, and the
// appdex instance behind a single type the commands share.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/appdex/appdex"
)

// App represents the appdex application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Appdex instance (lazy-initialized, singleton)
	mu  sync.Mutex
	dex *appdex.Appdex
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Appdex returns the appdex instance, creating it lazily from the
// current configuration.
func (a *App) Appdex() (*appdex.Appdex, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.dex != nil {
		return a.dex, nil
	}

	opts := []appdex.Option{appdex.WithDocument(a.config.DocumentPath)}
	if a.config.ExportDir != "" {
		opts = append(opts, appdex.WithExportDir(a.config.ExportDir))
	}

	dex, err := appdex.New(opts...)
	if err != nil {
		return nil, err
	}
	a.dex = dex
	return dex, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithAppdex sets a custom appdex instance (useful for testing).
func WithAppdex(dex *appdex.Appdex) Option {
	return func(a *App) error {
		a.dex = dex
		return nil
	}
}
