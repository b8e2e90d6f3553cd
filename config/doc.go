// Package config loads formfill settings from an optional YAML file and
// FORMFILL_ environment variables, for example FORMFILL_TEMPLATES_DIR or
// FORMFILL_FALLBACK_BARCODES.
package config
