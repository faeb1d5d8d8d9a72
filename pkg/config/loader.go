package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/orgrun/pkg/errors"
)

const (
	envPrefix      = "ORGRUN_"
	envConfigFile  = "ORGRUN_CONFIG"
	configFileName = "orgrun/config.toml"
)

// Overrides are dotted keys applied after every other source.
type Overrides map[string]any

// Load resolves the configuration from all sources.
func Load(overrides Overrides) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	source, err := userConfigPath()
	if err != nil {
		return nil, err
	}
	if source != "" {
		if err := k.Load(file.Provider(source), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", source).
				WithDetail("path", source)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	cfg.Source = source

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps ORGRUN_ENGINE_SCRIPT_NAME to engine.script_name: only the
// first underscore separates section from key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if key == "config" {
		// ORGRUN_CONFIG names the file, it is not a setting
		return ""
	}
	return strings.Replace(key, "_", ".", 1)
}

// userConfigPath returns the user config file to merge, or "" if none exists.
// An explicit ORGRUN_CONFIG must exist.
func userConfigPath() (string, error) {
	if explicit := os.Getenv(envConfigFile); explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not readable", explicit).
				WithDetail("path", explicit)
		}
		return explicit, nil
	}

	xdg.Reload()
	path, err := xdg.SearchConfigFile(configFileName)
	if err != nil {
		return "", nil
	}
	return path, nil
}

func validate(cfg *Config) error {
	switch {
	case strings.TrimSpace(cfg.Engine.Name) == "":
		return errors.New(errors.ErrConfigParse, "engine.name must not be empty")
	case strings.TrimSpace(cfg.Engine.ScriptName) == "":
		return errors.New(errors.ErrConfigParse, "engine.script_name must not be empty")
	case cfg.Decoder.ProgressOffset <= 0:
		return errors.Newf(errors.ErrConfigParse, "decoder.progress_offset must be positive, got %v", cfg.Decoder.ProgressOffset)
	case cfg.Decoder.ProgressCap <= 0 || cfg.Decoder.ProgressCap >= 100:
		return errors.Newf(errors.ErrConfigParse, "decoder.progress_cap must be between 0 and 100, got %v", cfg.Decoder.ProgressCap)
	case cfg.Runner.KillTimeout <= 0:
		return errors.Newf(errors.ErrConfigParse, "runner.kill_timeout must be positive, got %s", cfg.Runner.KillTimeout)
	}
	return nil
}

// Default returns the configuration built from embedded defaults only.
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic(fmt.Sprintf("embedded defaults are invalid: %v", err))
	}
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		panic(fmt.Sprintf("embedded defaults are invalid: %v", err))
	}
	return &cfg
}
