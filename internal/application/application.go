package application

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eugenenazirov/layered-settings/internal/profile"
	"github.com/eugenenazirov/layered-settings/internal/settings"
	"github.com/eugenenazirov/layered-settings/internal/source"
)

// App loads settings for registered profiles.
type App struct {
	profiles *profile.Registry
	resolver *source.Resolver
	logger   *zap.Logger
	tolerant bool
}

type options struct {
	baseDir  string
	tolerant bool
}

// Option configures an App.
type Option func(*options)

// WithBaseDir resolves relative env file paths against dir.
func WithBaseDir(dir string) Option {
	return func(o *options) {
		o.baseDir = dir
	}
}

// WithTolerantFiles logs unreadable env files and binds whatever could be
// read instead of failing the profile.
func WithTolerantFiles(enabled bool) Option {
	return func(o *options) {
		o.tolerant = enabled
	}
}

// Result is the outcome of loading one profile.
type Result struct {
	Profile  string
	Settings *settings.Settings
	Err      error
}

// New creates an App over profiles. env is snapshotted once here and never
// re-read.
func New(profiles *profile.Registry, env source.Env, logger *zap.Logger, opts ...Option) (*App, error) {
	if profiles == nil {
		return nil, fmt.Errorf("profile registry is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	resolver := source.NewResolver(env,
		source.WithBaseDir(o.baseDir),
		source.WithLogger(logger),
	)

	return &App{
		profiles: profiles,
		resolver: resolver,
		logger:   logger,
		tolerant: o.tolerant,
	}, nil
}

// Load resolves and binds the named profile.
func (a *App) Load(name string) (*settings.Settings, error) {
	p, err := a.profiles.Get(name)
	if err != nil {
		return nil, err
	}
	return a.load(p)
}

// LoadAll loads every registered profile concurrently. Results follow
// declaration order; the returned error is that of the first failing profile
// in that order.
func (a *App) LoadAll() ([]Result, error) {
	return a.loadProfiles(a.profiles.List())
}

// LoadNames loads the named profiles concurrently, in the given order.
func (a *App) LoadNames(names []string) ([]Result, error) {
	profiles := make([]profile.Profile, 0, len(names))
	for _, name := range names {
		p, err := a.profiles.Get(name)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return a.loadProfiles(profiles)
}

func (a *App) loadProfiles(profiles []profile.Profile) ([]Result, error) {
	results := make([]Result, len(profiles))

	var g errgroup.Group
	for i, p := range profiles {
		i, p := i, p
		g.Go(func() error {
			s, err := a.load(p)
			results[i] = Result{Profile: p.Name, Settings: s, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		if r.Err != nil {
			return results, r.Err
		}
	}
	return results, nil
}

func (a *App) load(p profile.Profile) (*settings.Settings, error) {
	logger := a.logger.With(zap.String("profile", p.Name))

	view, err := a.resolver.Resolve(p.Prefix, p.Files)
	if err != nil {
		if !a.tolerant {
			return nil, fmt.Errorf("profile %q: resolve: %w", p.Name, err)
		}
		for _, fileErr := range multierr.Errors(err) {
			logger.Warn("skipping unreadable env file", zap.Error(fileErr))
		}
	}

	for _, key := range view.Keys() {
		logger.Debug("resolved key", zap.String("key", key), zap.String("origin", view.Origin(key)))
	}

	s, err := settings.Bind(view, p.Schema, p.AllowExtra)
	if err != nil {
		return nil, fmt.Errorf("profile %q: bind: %w", p.Name, err)
	}

	logger.Info("settings loaded",
		zap.Strings("files", view.LoadedFiles()),
		zap.Object("settings", s),
	)
	return s, nil
}
