// Package config loads, normalizes, and validates riftscope configuration
// from TOML.
//
// Defaults live in defaults.go, path expansion and fallback handling in
// normalize.go, and semantic checks in validate.go. Load never fails on a
// missing file: the defaults are complete enough to run against a local
// matches directory.
package config
