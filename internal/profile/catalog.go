package profile

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/layered-settings/internal/settings"
)

// yamlCatalog represents the YAML catalog file structure.
type yamlCatalog struct {
	Profiles []yamlProfile `yaml:"profiles"`
}

// yamlProfile represents one profile entry in YAML.
type yamlProfile struct {
	Name       string   `yaml:"name"`
	Prefix     string   `yaml:"prefix"`
	Files      []string `yaml:"files"`
	Schema     string   `yaml:"schema"`
	AllowExtra bool     `yaml:"allow_extra"`
}

// LoadCatalogFile loads a YAML catalog from path.
func LoadCatalogFile(path string, schemas map[string]settings.Schema) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return LoadCatalog(f, schemas)
}

// LoadCatalog decodes a YAML catalog and registers its profiles in file
// order. Each profile's schema is looked up by name in schemas; an omitted
// schema name means AppSchemaName.
func LoadCatalog(r io.Reader, schemas map[string]settings.Schema) (*Registry, error) {
	var catalog yamlCatalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	if len(catalog.Profiles) == 0 {
		return nil, fmt.Errorf("%w: catalog declares no profiles", ErrInvalidProfile)
	}

	registry, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	for _, entry := range catalog.Profiles {
		schemaName := entry.Schema
		if schemaName == "" {
			schemaName = AppSchemaName
		}
		schema, ok := schemas[schemaName]
		if !ok {
			return nil, fmt.Errorf("%w: %q referenced by profile %q", ErrUnknownSchema, schemaName, entry.Name)
		}

		if err := registry.Register(Profile{
			Name:       entry.Name,
			Prefix:     entry.Prefix,
			Files:      entry.Files,
			Schema:     schema,
			AllowExtra: entry.AllowExtra,
		}); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
