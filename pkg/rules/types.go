package rules

import (
	"strings"
)

// Wildcard is the character standing for the stem in a pattern.
const Wildcard = '%'

// ArchiveMemberTarget is the target pattern synthesized for ".X.a" suffix rules.
const ArchiveMemberTarget = "(%.o)"

// Origin locates the definition of a recipe. A zero Origin means built-in.
type Origin struct {
	File  string
	Index int // 1-based position of the entry within its section of File
}

// IsBuiltin reports whether the recipe came from the built-in rule set.
func (o Origin) IsBuiltin() bool {
	return o.File == ""
}

// Commands is a recipe shared by every rule and target defined from the
// same source entry. Rules hold it by pointer and never modify it.
type Commands struct {
	Recipe string
	Origin Origin
}

// Lines returns the recipe split into command lines.
func (c *Commands) Lines() []string {
	if c == nil || c.Recipe == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(c.Recipe, "\n"), "\n")
}

// Dep is one dependency pattern of a rule.
type Dep struct {
	Name string

	// MissingSubdir is true when the directory part of Name does not exist.
	// Set by ComputeLimits and read by the rule-selection engine.
	MissingSubdir bool
}

// Rule is a pattern rule.
type Rule struct {
	Targets  []string
	Percents []int // offset of the wildcard in each target
	Deps     []Dep
	Cmds     *Commands
	Terminal bool

	// InUse is reserved for the rule-selection engine's recursion guard.
	InUse bool

	id RuleID
}

// Len returns the number of targets.
func (r *Rule) Len() int {
	return len(r.Targets)
}

// Prefix returns the text of target i before the wildcard.
func (r *Rule) Prefix(i int) string {
	return r.Targets[i][:r.Percents[i]]
}

// Suffix returns the text of target i after the wildcard.
func (r *Rule) Suffix(i int) string {
	return r.Targets[i][r.Percents[i]+1:]
}

// DepNames returns the dependency names in order.
func (r *Rule) DepNames() []string {
	names := make([]string, len(r.Deps))
	for i, d := range r.Deps {
		names[i] = d.Name
	}
	return names
}

// Installed reports whether the rule is live in a registry.
func (r *Rule) Installed() bool {
	return r.id != noRule
}

// String renders the rule header the way the diagnostics printer does.
func (r *Rule) String() string {
	var b strings.Builder
	writeRuleHeader(&b, r)
	return b.String()
}

// TargetRef identifies one target slot of an installed rule.
type TargetRef struct {
	Rule *Rule
	Slot int
}

// Limits are the global maxima computed over the installed rules.
type Limits struct {
	RuleCount     int
	MaxTargets    int
	MaxDeps       int
	MaxDepNameLen int
}

// DirChecker answers whether a directory exists.
type DirChecker interface {
	DirExists(dir string) bool
}

// TargetIndex gives access to explicitly defined (non-pattern) targets.
// Commands returns nil when the target is unknown or has no recipe.
type TargetIndex interface {
	Commands(name string) *Commands
}

// Interner returns a canonical copy of a string.
type Interner interface {
	Add(s string) string
}
