// Package config handles configuration loading, parsing, and validation
// from various sources (defaults, an optional YAML file, environment
// variables). Store holds the live configuration for the process and can
// reload it in place.
package config
