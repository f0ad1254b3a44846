// Package source gathers raw key/value pairs for a profile from env files and
// the process environment and flattens them into a single View. Precedence:
// Environment variables > later env files > earlier env files. Keys are
// uppercased and the profile prefix is stripped before they reach the binder.
package source
