// Package config loads, normalizes, and validates ytharvest configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), and
// reads TOML files, or YAML files for setups carried over from the original
// config.yaml layout. The Config type centralizes every knob the CLI needs so
// commands only apply their flag overrides on top of one validated value.
//
// The per-root reply cap is fixed and deliberately absent from Config.
package config
