// Package config loads, normalizes, and validates luqy configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and applies LUQY_* environment overrides. The
// Config type centralizes the output directory, logging, parser code page,
// export format, and batch parallelism so the CLI resolves them in one pass.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical lower-case enums, and clear validation errors.
package config
