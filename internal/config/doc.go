// Package config loads, normalizes, and validates xray configuration data.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours environment fallbacks such as XRAY_CHROME_PATH.
// The CLI reads every knob through this package so the dedupe pipeline and
// the scraper receive sanitized paths and canonical format names.
package config
