package ruledb

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/patrule/pkg/errors"
	"github.com/arthur-debert/patrule/pkg/logging"
	"github.com/arthur-debert/patrule/pkg/rules"
	"github.com/arthur-debert/patrule/pkg/targets"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is the serialization of a rule database file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Newf(errors.ErrRuleDBFormat, "unsupported rule database format %q", filepath.Ext(path)).
			WithDetail("file", path)
	}
}

// File is a parsed rule database.
type File struct {
	Path          string       `toml:"-" yaml:"-"`
	Suffixes      []string     `toml:"suffixes" yaml:"suffixes"`
	ResetSuffixes bool         `toml:"reset_suffixes" yaml:"reset_suffixes"`
	Patterns      []PatternDef `toml:"pattern" yaml:"pattern"`
	Targets       []TargetDef  `toml:"target" yaml:"target"`
}

// PatternDef is a native pattern rule entry.
type PatternDef struct {
	Targets  []string `toml:"targets" yaml:"targets"`
	Deps     []string `toml:"deps" yaml:"deps"`
	Recipe   string   `toml:"recipe" yaml:"recipe"`
	Terminal bool     `toml:"terminal" yaml:"terminal"`
}

// TargetDef is an explicit target entry.
type TargetDef struct {
	Name   string   `toml:"name" yaml:"name"`
	Deps   []string `toml:"deps" yaml:"deps"`
	Recipe string   `toml:"recipe" yaml:"recipe"`
}

// Parse decodes data in the given format and validates the result. path
// is used for error reporting and recipe origins only.
func Parse(path string, format Format, data []byte) (*File, error) {
	f := &File{}

	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, f)
	case FormatYAML:
		err = yaml.Unmarshal(data, f)
	default:
		return nil, errors.Newf(errors.ErrRuleDBFormat, "unsupported rule database format %q", format).
			WithDetail("file", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRuleDBParse, "failed to parse %s", path).
			WithDetail("file", path).
			WithDetail("format", string(format))
	}

	f.Path = path
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks every entry. Pattern targets need an unquoted wildcard
// and explicit targets need a name.
func (f *File) Validate() error {
	for i, p := range f.Patterns {
		if len(p.Targets) == 0 {
			return f.invalid("pattern", i, "pattern rule has no targets")
		}
		for _, t := range p.Targets {
			if _, pct := rules.FindPercent(t); pct < 0 {
				return f.invalid("pattern", i, fmt.Sprintf("target %q has no %c wildcard", t, rules.Wildcard))
			}
		}
		for _, d := range p.Deps {
			if d == "" {
				return f.invalid("pattern", i, "empty dependency name")
			}
		}
	}

	for i, t := range f.Targets {
		if strings.TrimSpace(t.Name) == "" {
			return f.invalid("target", i, "target has no name")
		}
	}

	for _, s := range f.Suffixes {
		if s == "" {
			return errors.New(errors.ErrRuleInvalid, "empty suffix").WithDetail("file", f.Path)
		}
	}
	return nil
}

func (f *File) invalid(section string, i int, msg string) error {
	return errors.Newf(errors.ErrRuleInvalid, "%s: %s %d: %s", f.Path, section, i+1, msg).
		WithDetail("file", f.Path).
		WithDetail("section", section).
		WithDetail("entry", i+1)
}

// Apply installs the file's contents in order: suffix list changes, then
// pattern rules, then explicit targets.
func (f *File) Apply(reg *rules.Registry, db *targets.Database) (Stats, error) {
	logger := logging.GetLogger("ruledb").With().Str("file", f.Path).Logger()
	var stats Stats

	if f.ResetSuffixes {
		db.ClearSuffixes()
	}
	if len(f.Suffixes) > 0 {
		if err := db.Define(targets.SuffixesTarget, f.Suffixes, nil); err != nil {
			return stats, err
		}
	}

	for i, p := range f.Patterns {
		cmds := f.commands(p.Recipe, i)
		if reg.Create(p.Targets, p.Deps, cmds, p.Terminal, true) {
			stats.Patterns++
		}
	}

	for i, t := range f.Targets {
		if err := db.Define(t.Name, t.Deps, f.commands(t.Recipe, i)); err != nil {
			return stats, errors.Wrapf(err, errors.ErrRuleInvalid, "%s: target %d", f.Path, i+1).
				WithDetail("file", f.Path)
		}
		stats.Targets++
	}

	logger.Debug().
		Int("patterns", stats.Patterns).
		Int("targets", stats.Targets).
		Int("suffixes", len(f.Suffixes)).
		Msg("Rule database applied")
	return stats, nil
}

func (f *File) commands(recipe string, i int) *rules.Commands {
	if recipe == "" {
		return nil
	}
	return &rules.Commands{
		Recipe: recipe,
		Origin: rules.Origin{File: f.Path, Index: i + 1},
	}
}

// Stats counts what Apply kept.
type Stats struct {
	Patterns int
	Targets  int
}
