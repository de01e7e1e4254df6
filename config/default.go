package config

import _ "embed"

// DefaultConfigYAML is the embedded default configuration, overridable by an
// external config file and CAISSE_* environment variables.
//
//go:embed default.yaml
var DefaultConfigYAML []byte
