// Package targets holds explicitly named (non-pattern) targets. Suffix
// rules such as ".c.o" and the special ".SUFFIXES" target live here until
// the rule registry converts them to pattern rules.
package targets

import (
	"slices"

	"github.com/arthur-debert/patrule/pkg/errors"
	"github.com/arthur-debert/patrule/pkg/logging"
	"github.com/arthur-debert/patrule/pkg/registry"
	"github.com/arthur-debert/patrule/pkg/rules"
	"github.com/rs/zerolog"
)

// SuffixesTarget is the special target whose dependencies are the known suffixes.
const SuffixesTarget = ".SUFFIXES"

// Target is an explicit target definition.
type Target struct {
	Name string
	Deps []string
	Cmds *rules.Commands
}

// Database stores targets by name.
type Database struct {
	reg      registry.Registry[*Target]
	interner rules.Interner
	logger   zerolog.Logger
}

// Option configures a Database.
type Option func(*Database)

// WithInterner shares names with the rest of the rule set.
func WithInterner(in rules.Interner) Option {
	return func(d *Database) {
		d.interner = in
	}
}

// New creates an empty Database.
func New(opts ...Option) *Database {
	d := &Database{
		reg:    registry.New[*Target](),
		logger: logging.GetLogger("targets"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Define adds or extends a target. Repeated definitions append new
// dependencies; a later recipe replaces an earlier one. Defining
// .SUFFIXES with neither dependencies nor a recipe empties the suffix list.
//
// A dependency already listed is not added again, except for .SUFFIXES:
// the suffix list keeps repeats and suffix conversion absorbs the
// duplicate rules they produce.
func (d *Database) Define(name string, deps []string, cmds *rules.Commands) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "target name cannot be empty")
	}
	if name == SuffixesTarget && len(deps) == 0 && cmds == nil {
		d.ClearSuffixes()
		return nil
	}
	name = d.intern(name)

	t, ok := d.reg.Lookup(name)
	if !ok {
		t = &Target{Name: name}
		if err := d.reg.Register(name, t); err != nil {
			return err
		}
	}

	keepRepeats := name == SuffixesTarget
	for _, dep := range deps {
		if dep == "" || (!keepRepeats && slices.Contains(t.Deps, dep)) {
			continue
		}
		t.Deps = append(t.Deps, d.intern(dep))
	}

	if cmds != nil {
		if t.Cmds != nil {
			ev := d.logger.Warn().Str("target", name)
			if !cmds.Origin.IsBuiltin() {
				ev = ev.Str("file", cmds.Origin.File).Int("rule", cmds.Origin.Index)
			}
			ev.Msg("Overriding recipe for target")
		}
		t.Cmds = cmds
	}

	d.logger.Trace().
		Str("target", name).
		Int("deps", len(t.Deps)).
		Bool("recipe", t.Cmds != nil).
		Msg("Target defined")
	return nil
}

// ClearSuffixes empties the suffix list by dropping the .SUFFIXES target.
func (d *Database) ClearSuffixes() {
	if !d.reg.Has(SuffixesTarget) {
		return
	}
	if err := d.reg.Remove(SuffixesTarget); err != nil {
		return
	}
	d.logger.Debug().Msg("Suffix list cleared")
}

// Lookup returns the target called name.
func (d *Database) Lookup(name string) (*Target, bool) {
	return d.reg.Lookup(name)
}

// Commands returns the recipe of name, or nil when the target is unknown
// or has none.
func (d *Database) Commands(name string) *rules.Commands {
	t, ok := d.reg.Lookup(name)
	if !ok {
		return nil
	}
	return t.Cmds
}

// Suffixes returns a copy of the current suffix list in order.
func (d *Database) Suffixes() []string {
	t, ok := d.reg.Lookup(SuffixesTarget)
	if !ok {
		return nil
	}
	return slices.Clone(t.Deps)
}

// Len returns the number of targets.
func (d *Database) Len() int {
	return d.reg.Count()
}

func (d *Database) intern(s string) string {
	if d.interner == nil {
		return s
	}
	return d.interner.Add(s)
}
