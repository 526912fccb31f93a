// Package config resolves the collector settings from flags, RELCOLLECT_*
// environment variables, an optional relcollect.yaml, and built-in defaults,
// in that order of precedence. Config files are validated against an
// embedded JSON schema before any value is applied.
package config
