package source

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// OriginEnv marks values supplied by the process environment.
const OriginEnv = "env"

// FileReadError reports an env file that exists but could not be read or decoded.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("read env file %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

// View is the merged key/value mapping for one profile. Keys are uppercased
// and carry no prefix.
//
// File keys that lack the prefix are kept apart, uppercased but otherwise
// unchanged. Lookup and Keys never return them; they are reachable only
// through ExtraKeys and LookupExtra.
type View struct {
	values  map[string]string
	origins map[string]string
	extras  map[string]string
	loaded  []string
	skipped []string
}

func newView() *View {
	return &View{
		values:  make(map[string]string),
		origins: make(map[string]string),
		extras:  make(map[string]string),
	}
}

func (v *View) set(key, value, origin string) {
	v.values[key] = value
	v.origins[key] = origin
}

// Lookup returns the value stored for key. Key matching is exact; callers
// pass uppercased keys.
func (v *View) Lookup(key string) (string, bool) {
	value, ok := v.values[key]
	return value, ok
}

// Keys returns all keys in the view, sorted.
func (v *View) Keys() []string {
	keys := make([]string, 0, len(v.values))
	for key := range v.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of keys in the view.
func (v *View) Len() int {
	return len(v.values)
}

// Origin reports which source supplied key: a file path or OriginEnv.
func (v *View) Origin(key string) string {
	return v.origins[key]
}

// ExtraKeys returns the unprefixed file keys, sorted.
func (v *View) ExtraKeys() []string {
	keys := make([]string, 0, len(v.extras))
	for key := range v.extras {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// LookupExtra returns the value of an unprefixed file key.
func (v *View) LookupExtra(key string) (string, bool) {
	value, ok := v.extras[key]
	return value, ok
}

// Map returns a copy of the merged values.
func (v *View) Map() map[string]string {
	return maps.Clone(v.values)
}

// LoadedFiles lists the env files that were merged, in merge order.
func (v *View) LoadedFiles() []string {
	return append([]string(nil), v.loaded...)
}

// SkippedFiles lists the env files that did not exist.
func (v *View) SkippedFiles() []string {
	return append([]string(nil), v.skipped...)
}

// Resolver builds Views from env files and an environment snapshot.
type Resolver struct {
	env     Env
	baseDir string
	logger  *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithBaseDir resolves relative env file paths against dir.
func WithBaseDir(dir string) Option {
	return func(r *Resolver) {
		r.baseDir = dir
	}
}

// WithLogger sets the logger used to report skipped files.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a Resolver over a private copy of env.
func NewResolver(env Env, opts ...Option) *Resolver {
	r := &Resolver{
		env:    maps.Clone(env),
		logger: zap.NewNop(),
	}
	if r.env == nil {
		r.env = Env{}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve merges files in listed order, then overlays environment variables
// carrying prefix. Missing files are skipped. Files that exist but cannot be
// read are reported as *FileReadError values combined into the returned error;
// the View is still returned and holds everything that could be read.
func (r *Resolver) Resolve(prefix string, files []string) (*View, error) {
	view := newView()

	var errs error
	for _, name := range files {
		path := r.path(name)

		values, err := readEnvFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debug("env file not found, skipping", zap.String("path", path))
			view.skipped = append(view.skipped, path)
			continue
		}
		if err != nil {
			errs = multierr.Append(errs, &FileReadError{Path: path, Err: err})
			continue
		}

		for key, value := range values {
			if !hasPrefix(key, prefix) {
				view.extras[key] = value
				continue
			}
			if stripped, ok := stripPrefix(key, prefix); ok {
				view.set(stripped, value, path)
			}
		}
		view.loaded = append(view.loaded, path)
	}

	// Sorted so that names differing only in case resolve the same way every run.
	names := make([]string, 0, len(r.env))
	for key := range r.env {
		names = append(names, key)
	}
	sort.Strings(names)
	for _, key := range names {
		if stripped, ok := stripPrefix(key, prefix); ok {
			view.set(stripped, r.env[key], OriginEnv)
		}
	}

	return view, errs
}

func (r *Resolver) path(name string) string {
	if r.baseDir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(r.baseDir, name)
}

func readEnvFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseEnvFile(f)
}
