// Package application wires the source resolver and the settings binder
// together for the profiles in a registry. It decides how unreadable env files
// are treated, logs provenance, and loads several profiles concurrently while
// keeping results in declaration order.
package application
