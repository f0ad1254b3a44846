package source

import (
	"os"
	"sort"
	"strings"
)

// Env is a read-only snapshot of process environment variables.
type Env map[string]string

// Snapshot builds an Env from KEY=VALUE entries in the format returned by os.Environ.
// Entries without a separator are ignored; for duplicated keys the last one wins.
func Snapshot(environ []string) Env {
	env := make(Env, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}

// OSEnv snapshots the current process environment.
func OSEnv() Env {
	return Snapshot(os.Environ())
}

// WithPrefix returns the variables whose name starts with prefix (case-insensitive),
// sorted by name. Names are returned as they appear in the environment.
func (e Env) WithPrefix(prefix string) []Variable {
	vars := make([]Variable, 0)
	for key, value := range e {
		if _, ok := stripPrefix(key, prefix); ok {
			vars = append(vars, Variable{Name: key, Value: value})
		}
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}

// Variable is a single environment entry.
type Variable struct {
	Name  string
	Value string
}

func hasPrefix(key, prefix string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(key)), strings.ToUpper(prefix))
}

// stripPrefix uppercases key and removes prefix from it. It reports false when
// key does not carry the prefix or nothing is left after stripping it.
func stripPrefix(key, prefix string) (string, bool) {
	upper := strings.ToUpper(strings.TrimSpace(key))
	p := strings.ToUpper(prefix)
	if !strings.HasPrefix(upper, p) {
		return "", false
	}
	rest := upper[len(p):]
	if rest == "" {
		return "", false
	}
	return rest, true
}
