// Package profile describes named configuration profiles (prefix, ordered env
// files, schema, extras policy) and keeps them in a registry that preserves
// declaration order. Profiles can be declared in code or loaded from a YAML
// catalog that references schemas by name.
package profile
