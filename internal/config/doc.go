// Package config provides the configuration of treeverify: command options,
// the optional .treeverify YAML file with layout overrides, and
// TREEVERIFY_* environment overrides.
package config
