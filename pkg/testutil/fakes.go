package testutil

import "github.com/arthur-debert/patrule/pkg/rules"

// Dirs is a rules.DirChecker backed by a set of existing directories.
type Dirs map[string]bool

// DirExists reports whether dir is in the set.
func (d Dirs) DirExists(dir string) bool { return d[dir] }

// Targets is a rules.TargetIndex mapping target names to recipes.
type Targets map[string]*rules.Commands

// Commands returns the recipe for name.
func (t Targets) Commands(name string) *rules.Commands { return t[name] }

// Recipe returns builtin commands with the given text.
func Recipe(text string) *rules.Commands {
	return &rules.Commands{Recipe: text}
}
