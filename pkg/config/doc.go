// Package config loads orgrun settings.
//
// Sources are layered with koanf: embedded defaults first, then the user
// config file ($XDG_CONFIG_HOME/orgrun/config.toml, or the file named by
// ORGRUN_CONFIG), then ORGRUN_* environment variables, then explicit
// overrides supplied by the caller (usually command-line flags).
package config
