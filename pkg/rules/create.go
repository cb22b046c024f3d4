package rules

import (
	"strings"

	"github.com/arthur-debert/patrule/pkg/errors"
)

// FindPercent removes quoting from pattern and returns the result with the
// offset of its first unquoted wildcard, or -1 if there is none.
//
// A run of n backslashes in front of a '%' is replaced by n/2 backslashes;
// the '%' is the wildcard when n is even and a literal percent when n is
// odd. Backslashes anywhere else are kept.
func FindPercent(pattern string) (string, int) {
	if !strings.ContainsRune(pattern, Wildcard) {
		return pattern, -1
	}

	var b strings.Builder
	b.Grow(len(pattern))

	i := 0
	for i < len(pattern) {
		j := strings.IndexByte(pattern[i:], Wildcard)
		if j < 0 {
			break
		}
		j += i

		k := j
		for k > i && pattern[k-1] == '\\' {
			k--
		}
		n := j - k

		b.WriteString(pattern[i:k])
		b.WriteString(strings.Repeat(`\`, n/2))
		if n%2 == 0 {
			offset := b.Len()
			b.WriteString(pattern[j:])
			return b.String(), offset
		}

		b.WriteByte(Wildcard)
		i = j + 1
	}

	b.WriteString(pattern[i:])
	return b.String(), -1
}

// NewRule builds a pattern rule. Targets are unquoted with FindPercent; a
// target without a wildcard is a caller bug and panics.
func NewRule(targets, deps []string, cmds *Commands, terminal bool) *Rule {
	rule := &Rule{
		Targets:  make([]string, len(targets)),
		Percents: make([]int, len(targets)),
		Deps:     make([]Dep, len(deps)),
		Cmds:     cmds,
		Terminal: terminal,
	}

	for i, target := range targets {
		name, p := FindPercent(target)
		if p < 0 {
			panic(errors.Newf(errors.ErrInvalidInput, "target pattern %q has no %c wildcard", target, Wildcard))
		}
		rule.Targets[i] = name
		rule.Percents[i] = p
	}

	for i, dep := range deps {
		rule.Deps[i] = Dep{Name: dep}
	}

	return rule
}

// Create builds a rule with NewRule and installs it. It reports whether the
// rule was kept. Names are interned after unquoting.
func (r *Registry) Create(targets, deps []string, cmds *Commands, terminal, override bool) bool {
	rule := NewRule(targets, deps, cmds, terminal)
	r.internRule(rule)
	return r.Install(rule, override)
}

// BuiltinRule is one entry of the built-in rule set. Deps holds
// whitespace-separated dependency patterns.
type BuiltinRule struct {
	Target string `toml:"target" yaml:"target"`
	Deps   string `toml:"deps" yaml:"deps"`
	Recipe string `toml:"recipe" yaml:"recipe"`
}

// InstallBuiltin installs a built-in rule without override, so that any
// identical rule already present wins.
func (r *Registry) InstallBuiltin(spec BuiltinRule, terminal bool) bool {
	cmds := &Commands{Recipe: spec.Recipe}
	kept := r.Create([]string{spec.Target}, strings.Fields(spec.Deps), cmds, terminal, false)
	if !kept {
		r.logger.Debug().
			Str("target", spec.Target).
			Msg("Built-in rule shadowed by an existing rule")
	}
	return kept
}
