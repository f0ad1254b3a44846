package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/layered-settings/internal/application"
	"github.com/eugenenazirov/layered-settings/internal/logging"
	"github.com/eugenenazirov/layered-settings/internal/profile"
	"github.com/eugenenazirov/layered-settings/internal/settings"
	"github.com/eugenenazirov/layered-settings/internal/source"
)

var newLogger = logging.NewWithLevel

func main() {
	err := run(os.Args[1:], source.OSEnv(), os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "settingsctl: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	profilesFile string
	profiles     []string
	dir          string
	reveal       bool
	format       string
	tolerant     bool
	logLevel     string
	showEnv      bool
}

func parseArgs(args []string) (options, error) {
	var opts options

	app := kingpin.New("settingsctl", "Resolve layered settings profiles from env files and environment variables")
	app.Flag("profiles", "Path to YAML profile catalog (default: built-in profiles)").StringVar(&opts.profilesFile)
	app.Flag("profile", "Profile to load; repeatable (default: all, in declaration order)").Short('p').StringsVar(&opts.profiles)
	app.Flag("dir", "Directory that relative env file paths are resolved against").StringVar(&opts.dir)
	app.Flag("reveal", "Print secret values instead of masking them").BoolVar(&opts.reveal)
	app.Flag("format", "Output format").Default("text").EnumVar(&opts.format, "text", "yaml")
	app.Flag("tolerant", "Skip unreadable env files with a warning instead of failing").BoolVar(&opts.tolerant)
	app.Flag("log-level", "Log level (DEBUG, INFO, WARNING, ERROR, CRITICAL)").Default(profile.LogLevelWarning).StringVar(&opts.logLevel)
	app.Flag("show-env", "List environment variables carrying each profile prefix").BoolVar(&opts.showEnv)

	if _, err := app.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func run(args []string, env source.Env, stdout io.Writer) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(opts.logLevel)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	registry, err := loadRegistry(opts.profilesFile)
	if err != nil {
		return err
	}

	app, err := application.New(registry, env, logger,
		application.WithBaseDir(opts.dir),
		application.WithTolerantFiles(opts.tolerant),
	)
	if err != nil {
		return err
	}

	if opts.showEnv {
		printEnv(stdout, env, registry, opts.reveal)
	}

	var results []application.Result
	if len(opts.profiles) == 0 {
		results, err = app.LoadAll()
	} else {
		results, err = app.LoadNames(opts.profiles)
	}
	if results == nil {
		return err
	}

	switch opts.format {
	case "yaml":
		if writeErr := writeYAML(stdout, results, opts.reveal); writeErr != nil {
			return writeErr
		}
	default:
		writeText(stdout, results, opts.reveal)
	}

	if err != nil {
		logger.Error("failed to load settings", zap.Error(err))
	}
	return err
}

func loadRegistry(path string) (*profile.Registry, error) {
	if path == "" {
		return profile.NewRegistry(profile.Defaults()...)
	}
	registry, err := profile.LoadCatalogFile(path, profile.Schemas())
	if err != nil {
		return nil, fmt.Errorf("load profile catalog: %w", err)
	}
	return registry, nil
}

func printEnv(w io.Writer, env source.Env, registry *profile.Registry, reveal bool) {
	seen := make(map[string]struct{})
	for _, p := range registry.List() {
		if _, ok := seen[p.Prefix]; ok {
			continue
		}
		seen[p.Prefix] = struct{}{}

		vars := env.WithPrefix(p.Prefix)
		if len(vars) == 0 {
			fmt.Fprintf(w, "No %s environment variables found.\n\n", p.Prefix)
			continue
		}
		fmt.Fprintf(w, "Existing %s environment variables:\n", p.Prefix)
		for _, v := range vars {
			value := settings.Redacted
			if reveal {
				value = v.Value
			}
			fmt.Fprintf(w, "%s: %s\n", v.Name, value)
		}
		fmt.Fprintln(w)
	}
}

func writeText(w io.Writer, results []application.Result, reveal bool) {
	mode := "secrets masked"
	if reveal {
		mode = "secrets exposed"
	}
	for _, r := range results {
		title := fmt.Sprintf("Settings for %s (%s):", r.Profile, mode)
		fmt.Fprintln(w, title)
		fmt.Fprintln(w, strings.Repeat("-", len(title)))
		if r.Err != nil {
			fmt.Fprintf(w, "error loading settings: %v\n\n", r.Err)
			continue
		}
		rendered := r.Settings.Render(!reveal)
		for _, name := range r.Settings.Fields() {
			fmt.Fprintf(w, "%s: %s\n", name, rendered[name])
		}
		fmt.Fprintln(w)
	}
}

func writeYAML(w io.Writer, results []application.Result, reveal bool) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, r := range results {
		body := &yaml.Node{Kind: yaml.MappingNode}
		if r.Err != nil {
			body.Content = append(body.Content, scalar("error"), scalar(r.Err.Error()))
		} else {
			rendered := r.Settings.Render(!reveal)
			for _, name := range r.Settings.Fields() {
				body.Content = append(body.Content, scalar(name), scalar(rendered[name]))
			}
		}
		root.Content = append(root.Content, scalar(r.Profile), body)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	return enc.Close()
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}
