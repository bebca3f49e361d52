// Package ciutil detects CI environments and resolves the environment
// variables tests use to find external services.
package ciutil
