// Package config loads, normalizes, and validates scribe configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// AZURE_STORAGE_CONNECTION_STRING and SMTP_PASSWORD, applying a local .env
// file first. The Config type centralizes every knob the pipeline and CLI
// need: blob containers, batch sizing, the run-guard staleness window,
// whisper subprocess settings, and report delivery.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
