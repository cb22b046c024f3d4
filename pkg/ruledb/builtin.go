package ruledb

import (
	_ "embed"

	"github.com/arthur-debert/patrule/pkg/errors"
	"github.com/arthur-debert/patrule/pkg/logging"
	"github.com/arthur-debert/patrule/pkg/rules"
	"github.com/arthur-debert/patrule/pkg/targets"
	toml "github.com/pelletier/go-toml/v2"
)

//go:embed builtin.toml
var builtinData []byte

// Builtin is the built-in rule set.
type Builtin struct {
	Suffixes    []string            `toml:"suffixes"`
	Rules       []rules.BuiltinRule `toml:"rule"`
	Terminal    []rules.BuiltinRule `toml:"terminal"`
	SuffixRules []TargetDef         `toml:"suffix_rule"`
}

// LoadBuiltin decodes the embedded rule set.
func LoadBuiltin() (*Builtin, error) {
	var b Builtin
	if err := toml.Unmarshal(builtinData, &b); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to parse built-in rules")
	}
	return &b, nil
}

// Install adds the default suffixes and suffix rules to db, then installs
// the pattern rules followed by the terminal rules. It returns how many
// pattern rules were kept.
func (b *Builtin) Install(reg *rules.Registry, db *targets.Database) (int, error) {
	if len(b.Suffixes) > 0 {
		if err := db.Define(targets.SuffixesTarget, b.Suffixes, nil); err != nil {
			return 0, err
		}
	}

	for _, sr := range b.SuffixRules {
		if err := db.Define(sr.Name, sr.Deps, &rules.Commands{Recipe: sr.Recipe}); err != nil {
			return 0, err
		}
	}

	kept := 0
	for _, r := range b.Rules {
		if reg.InstallBuiltin(r, false) {
			kept++
		}
	}
	for _, r := range b.Terminal {
		if reg.InstallBuiltin(r, true) {
			kept++
		}
	}

	logger := logging.GetLogger("ruledb")
	logger.Debug().
		Int("suffixes", len(b.Suffixes)).
		Int("suffixRules", len(b.SuffixRules)).
		Int("patternRules", kept).
		Msg("Built-in rules installed")
	return kept, nil
}
