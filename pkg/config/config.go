package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	perrors "github.com/arthur-debert/patrule/pkg/errors"
	"github.com/arthur-debert/patrule/pkg/logging"
	"github.com/arthur-debert/patrule/pkg/ui"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "PATRULE_"

	appDir = "patrule"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// Config holds all settings.
type Config struct {
	Rules  RulesConfig  `koanf:"rules"`
	Output OutputConfig `koanf:"output"`
	Log    LogConfig    `koanf:"log"`

	// Source is the config file that was loaded, empty when none was.
	Source string `koanf:"-"`
}

type RulesConfig struct {
	Builtin     bool     `koanf:"builtin"`
	Files       []string `koanf:"files"`
	Concurrency int      `koanf:"concurrency"`
}

type OutputConfig struct {
	Format string `koanf:"format"`
}

type LogConfig struct {
	Verbosity int `koanf:"verbosity"`
}

// Options controls where Load looks.
type Options struct {
	// File is an explicit config file. It must exist.
	File string
	// WorkDir is searched for .patrule.toml and .patrule.yaml. Defaults to ".".
	WorkDir string
	// ConfigHome replaces $XDG_CONFIG_HOME when set.
	ConfigHome string
	// Overrides are applied last, keyed by dotted path ("rules.builtin").
	Overrides map[string]interface{}
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Load builds the configuration from every source.
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, perrors.Wrap(err, perrors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Config file
	path, err := findConfigFile(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, perrors.Wrapf(err, perrors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("file", path)
		}
		logger := logging.GetLogger("config")
		logger.Debug().Str("file", path).Msg("Config file loaded")
	}

	// 3. Environment
	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, perrors.Wrap(err, perrors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Explicit overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, perrors.Wrap(err, perrors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, perrors.Wrap(err, perrors.ErrConfigParse, "failed to unmarshal configuration")
	}
	cfg.Source = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if _, err := ui.ParseFormat(c.Output.Format); err != nil {
		return perrors.Wrapf(err, perrors.ErrConfigParse, "invalid output.format %q", c.Output.Format).
			WithDetail("key", "output.format")
	}
	if c.Rules.Concurrency < 0 {
		return perrors.Newf(perrors.ErrConfigParse, "rules.concurrency must not be negative, got %d", c.Rules.Concurrency).
			WithDetail("key", "rules.concurrency")
	}
	return nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

func findConfigFile(opts Options) (string, error) {
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return "", perrors.Wrapf(err, perrors.ErrConfigLoad, "config file %s not found", opts.File).
				WithDetail("file", opts.File)
		}
		return opts.File, nil
	}

	workDir := opts.WorkDir
	if workDir == "" {
		workDir = "."
	}
	for _, name := range []string{".patrule.toml", ".patrule.yaml"} {
		path := filepath.Join(workDir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	for _, name := range []string{"config.toml", "config.yaml"} {
		if opts.ConfigHome != "" {
			path := filepath.Join(opts.ConfigHome, appDir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
			continue
		}
		if path, err := xdg.SearchConfigFile(filepath.Join(appDir, name)); err == nil {
			return path, nil
		}
	}

	return "", nil
}
