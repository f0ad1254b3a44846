// Package settings binds a merged key/value view to a typed schema. Each field
// declares its kind (string, secret, boolean, bounded integer, enum), an
// optional default, and an optional validator. Binding is fail-fast: the first
// invalid field in schema order is reported and no Settings is produced.
//
// Secret fields are wrapped in Secret, which renders as a redaction marker
// everywhere except through Secret.Reveal or Render(false).
package settings
