package profile

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/eugenenazirov/layered-settings/internal/settings"
)

func TestDefaultsRegisterInOrder(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry(Defaults()...)
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}

	if want := []string{"default", "dev", "prod", "custom"}; !slices.Equal(registry.Names(), want) {
		t.Fatalf("expected %v, got %v", want, registry.Names())
	}

	prod, err := registry.Get("prod")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !slices.Equal(prod.Files, []string{".env", ".env.prod"}) || prod.Prefix != "MYAPP_" || !prod.AllowExtra {
		t.Fatalf("unexpected prod profile %+v", prod)
	}
}

func TestRegistryReturnsCopies(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry(Defaults()...)
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}

	dev, _ := registry.Get("dev")
	dev.Files[0] = "mutated"

	again, _ := registry.Get("dev")
	if again.Files[0] != ".env" {
		t.Fatalf("expected defensive copy, got %v", again.Files)
	}
}

func TestRegistryCopiesEnumMembers(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry(Defaults()...)
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}

	dev, _ := registry.Get("dev")
	i := slices.IndexFunc(dev.Schema, func(f settings.FieldSpec) bool { return f.Name == FieldLogLevel })
	dev.Schema[i].Members[0] = "MUTATED"

	for _, p := range registry.List() {
		if got := p.Schema[i].Members[0]; got != LogLevelDebug {
			t.Fatalf("%s: registry schema was mutated through a copy: %s", p.Name, got)
		}
	}
}

func TestAppSchemaRejectsBlankLogLevel(t *testing.T) {
	t.Parallel()

	view := settings.MapView{
		"DATABASE_URL":   "sqlite:///default.db",
		"DATABASE_TOKEN": "t",
		"API_KEY":        "k",
		"DEBUG_MODE":     "true",
	}
	s, err := settings.Bind(view, AppSchema(), false)
	if err != nil || s.Enum(FieldLogLevel) != LogLevelInfo {
		t.Fatalf("expected INFO when log_level is absent, got %v", err)
	}

	for _, raw := range []string{"", "  "} {
		view["LOG_LEVEL"] = raw
		if _, err := settings.Bind(view, AppSchema(), false); !errors.Is(err, settings.ErrInvalidEnum) {
			t.Fatalf("%q: expected ErrInvalidEnum, got %v", raw, err)
		}
	}
}

func TestRegisterRejectsInvalidProfiles(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry(Profile{Name: "base", Prefix: "APP_", Schema: AppSchema()})
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}

	tests := []struct {
		name    string
		profile Profile
		wantErr error
	}{
		{name: "Duplicate", profile: Profile{Name: "base", Prefix: "APP_", Schema: AppSchema()}, wantErr: ErrDuplicateProfile},
		{name: "LongerPrefix", profile: Profile{Name: "x", Prefix: "app_x_", Schema: AppSchema()}, wantErr: ErrPrefixCollision},
		{name: "ShorterPrefix", profile: Profile{Name: "y", Prefix: "AP", Schema: AppSchema()}, wantErr: ErrPrefixCollision},
		{name: "NoName", profile: Profile{Prefix: "OTHER_", Schema: AppSchema()}, wantErr: ErrInvalidProfile},
		{name: "NoSchema", profile: Profile{Name: "z", Prefix: "OTHER_"}, wantErr: ErrInvalidProfile},
		{name: "BadSchema", profile: Profile{Name: "w", Prefix: "OTHER_", Schema: settings.Schema{settings.Enum("e")}}, wantErr: settings.ErrInvalidSchema},
	}
	for _, tc := range tests {
		if err := registry.Register(tc.profile); !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}

	if err := registry.Register(Profile{Name: "same", Prefix: "app_", Schema: AppSchema()}); err != nil {
		t.Fatalf("identical prefix must be allowed: %v", err)
	}
	if _, err := registry.Get("missing"); !errors.Is(err, ErrUnknownProfile) {
		t.Fatalf("expected ErrUnknownProfile, got %v", err)
	}
}

func TestRegisterDefaultsPrefix(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry(Profile{Name: "p", Schema: AppSchema()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, _ := registry.Get("p")
	if p.Prefix != DefaultPrefix {
		t.Fatalf("expected default prefix, got %q", p.Prefix)
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = registry.Register(Profile{Name: string(rune('a' + i)), Prefix: "MYAPP_", Schema: AppSchema()})
			_ = registry.List()
		}(i)
	}
	wg.Wait()

	if got := len(registry.List()); got != 20 {
		t.Fatalf("expected 20 profiles, got %d", got)
	}
}

func TestLoadCatalog(t *testing.T) {
	t.Parallel()

	input := `
profiles:
  - name: prod
    prefix: myapp_
    files: [.env, .env.prod]
    allow_extra: true
  - name: worker
    prefix: WORKER_
    files: [.env.worker]
    schema: app
`
	registry, err := LoadCatalog(strings.NewReader(input), Schemas())
	if err != nil {
		t.Fatalf("LoadCatalog returned error: %v", err)
	}
	if want := []string{"prod", "worker"}; !slices.Equal(registry.Names(), want) {
		t.Fatalf("expected %v, got %v", want, registry.Names())
	}
	prod, _ := registry.Get("prod")
	if prod.Prefix != "MYAPP_" || !prod.AllowExtra || len(prod.Schema) != len(AppSchema()) {
		t.Fatalf("unexpected prod profile %+v", prod)
	}
	worker, _ := registry.Get("worker")
	if worker.AllowExtra {
		t.Fatalf("expected extras disabled by default")
	}
}

func TestLoadCatalogErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		wantErr error
	}{
		"UnknownSchema": {input: "profiles:\n  - name: a\n    schema: nope\n", wantErr: ErrUnknownSchema},
		"Empty":         {input: "profiles: []\n", wantErr: ErrInvalidProfile},
		"Duplicate":     {input: "profiles:\n  - name: a\n  - name: a\n", wantErr: ErrDuplicateProfile},
	}
	for name, tc := range tests {
		if _, err := LoadCatalog(strings.NewReader(tc.input), Schemas()); !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", name, tc.wantErr, err)
		}
	}

	if _, err := LoadCatalog(strings.NewReader("profiles:\n  - name: a\n    unknown: 1\n"), Schemas()); err == nil {
		t.Fatalf("expected error for unknown YAML field")
	}
}

func TestLoadCatalogFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "profiles.yaml")
	if err := os.WriteFile(path, []byte("profiles:\n  - name: only\n    files: [.env]\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	registry, err := LoadCatalogFile(path, Schemas())
	if err != nil {
		t.Fatalf("LoadCatalogFile returned error: %v", err)
	}
	if got := registry.Names(); len(got) != 1 || got[0] != "only" {
		t.Fatalf("unexpected names %v", got)
	}

	if _, err := LoadCatalogFile(filepath.Join(t.TempDir(), "missing.yaml"), Schemas()); err == nil {
		t.Fatalf("expected error for missing catalog")
	}
}
