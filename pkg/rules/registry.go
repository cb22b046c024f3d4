package rules

import (
	"slices"

	"github.com/arthur-debert/patrule/pkg/errors"
	"github.com/arthur-debert/patrule/pkg/logging"
	"github.com/rs/zerolog"
)

// RuleID is a stable handle of an installed rule. Handles of removed rules
// may be reused for later installs.
type RuleID int

const noRule RuleID = 0

type node struct {
	rule       *Rule
	prev, next RuleID
}

// Registry holds the installed pattern rules in installation order and
// indexes them by target pattern.
type Registry struct {
	nodes      []node // nodes[id-1]
	free       []RuleID
	head, tail RuleID
	count      int

	byTarget map[string][]TargetRef

	limits   Limits
	counted  bool
	interner Interner
	logger   zerolog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithInterner makes synthesized rule names go through in.
func WithInterner(in Interner) Option {
	return func(r *Registry) {
		r.interner = in
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		byTarget: make(map[string][]TargetRef),
		logger:   logging.GetLogger("rules.registry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) node(id RuleID) *node {
	return &r.nodes[id-1]
}

// Install adds rule to the registry unless it duplicates an installed
// rule. A duplicate is an installed rule that declares every target of
// rule and has the identical dependency list. With override the duplicate
// is removed and rule is appended; without it rule is dropped. Install
// reports whether rule was kept.
func (r *Registry) Install(rule *Rule, override bool) bool {
	mustBeWellFormed(rule)
	rule.InUse = false

	for id := r.head; id != noRule; id = r.node(id).next {
		existing := r.node(id).rule
		if !targetsSubset(rule, existing) || !depsEqual(rule, existing) {
			continue
		}

		if override {
			r.logger.Debug().
				Strs("targets", rule.Targets).
				Strs("deps", rule.DepNames()).
				Msg("Overriding pattern rule")
			r.Remove(existing)
			r.add(rule)
			return true
		}

		r.logger.Trace().
			Strs("targets", rule.Targets).
			Strs("deps", rule.DepNames()).
			Msg("Discarding duplicate pattern rule")
		return false
	}

	r.add(rule)
	return true
}

// Remove deletes rule from the ordered list and the target index.
// Removing a rule that is not installed, or whose index entries are
// missing, panics: both mean the registry invariants are broken.
func (r *Registry) Remove(rule *Rule) {
	if rule.id == noRule || int(rule.id) > len(r.nodes) || r.node(rule.id).rule != rule {
		panic(errors.Newf(errors.ErrInconsistent, "removing pattern rule %q that is not installed", rule.String()))
	}

	for i, target := range rule.Targets {
		chain := r.byTarget[target]
		at := slices.IndexFunc(chain, func(ref TargetRef) bool {
			return ref.Rule == rule && ref.Slot == i
		})
		if at < 0 {
			panic(errors.Newf(errors.ErrInconsistent, "no index entry for target %q slot %d", target, i).
				WithDetail("target", target).
				WithDetail("slot", i))
		}
		chain = slices.Delete(chain, at, at+1)
		if len(chain) == 0 {
			delete(r.byTarget, target)
		} else {
			r.byTarget[target] = chain
		}
	}

	id := rule.id
	n := r.node(id)
	if n.prev != noRule {
		r.node(n.prev).next = n.next
	} else {
		r.head = n.next
	}
	if n.next != noRule {
		r.node(n.next).prev = n.prev
	} else {
		r.tail = n.prev
	}

	*n = node{}
	r.free = append(r.free, id)
	rule.id = noRule
	r.count--
}

func (r *Registry) add(rule *Rule) {
	var id RuleID
	if len(r.free) > 0 {
		id = r.free[len(r.free)-1]
		r.free = r.free[:len(r.free)-1]
	} else {
		r.nodes = append(r.nodes, node{})
		id = RuleID(len(r.nodes))
	}

	*r.node(id) = node{rule: rule, prev: r.tail}
	if r.tail != noRule {
		r.node(r.tail).next = id
	} else {
		r.head = id
	}
	r.tail = id
	rule.id = id
	r.count++

	for i, target := range rule.Targets {
		chain := r.byTarget[target]
		r.byTarget[target] = append([]TargetRef{{Rule: rule, Slot: i}}, chain...)
	}

	r.logger.Trace().
		Int("id", int(id)).
		Strs("targets", rule.Targets).
		Msg("Installed pattern rule")
}

// FindByTarget returns every (rule, slot) pair declaring the target pattern.
func (r *Registry) FindByTarget(target string) []TargetRef {
	chain := r.byTarget[target]
	if len(chain) == 0 {
		return nil
	}
	return slices.Clone(chain)
}

// Len returns the number of installed rules.
func (r *Registry) Len() int {
	return r.count
}

// Each calls fn for every installed rule, oldest first, until fn returns false.
func (r *Registry) Each(fn func(*Rule) bool) {
	for id := r.head; id != noRule; {
		n := r.node(id)
		next := n.next
		if !fn(n.rule) {
			return
		}
		id = next
	}
}

// All returns the installed rules, oldest first.
func (r *Registry) All() []*Rule {
	all := make([]*Rule, 0, r.count)
	r.Each(func(rule *Rule) bool {
		all = append(all, rule)
		return true
	})
	return all
}

// Lookup returns the installed rule with the given handle.
func (r *Registry) Lookup(id RuleID) (*Rule, bool) {
	if id == noRule || int(id) > len(r.nodes) {
		return nil, false
	}
	rule := r.node(id).rule
	return rule, rule != nil
}

// ID returns the handle of an installed rule.
func (r *Registry) ID(rule *Rule) (RuleID, bool) {
	if rule.id == noRule {
		return noRule, false
	}
	return rule.id, true
}

// Limits returns the limits from the last ComputeLimits run, if any.
func (r *Registry) Limits() (Limits, bool) {
	return r.limits, r.counted
}

func (r *Registry) intern(s string) string {
	if r.interner == nil {
		return s
	}
	return r.interner.Add(s)
}

func (r *Registry) internRule(rule *Rule) {
	for i, t := range rule.Targets {
		rule.Targets[i] = r.intern(t)
	}
	for i := range rule.Deps {
		rule.Deps[i].Name = r.intern(rule.Deps[i].Name)
	}
}

// targetsSubset reports whether every target of a is among the targets of b.
func targetsSubset(a, b *Rule) bool {
	for _, t := range a.Targets {
		if !slices.Contains(b.Targets, t) {
			return false
		}
	}
	return true
}

func depsEqual(a, b *Rule) bool {
	if len(a.Deps) != len(b.Deps) {
		return false
	}
	for i := range a.Deps {
		if a.Deps[i].Name != b.Deps[i].Name {
			return false
		}
	}
	return true
}

func mustBeWellFormed(rule *Rule) {
	if rule.id != noRule {
		panic(errors.Newf(errors.ErrInconsistent, "pattern rule %q is already installed", rule.String()))
	}
	if len(rule.Targets) == 0 {
		panic(errors.New(errors.ErrInvalidInput, "pattern rule has no targets"))
	}
	if len(rule.Targets) != len(rule.Percents) {
		panic(errors.Newf(errors.ErrInvalidInput, "pattern rule has %d targets but %d wildcard offsets",
			len(rule.Targets), len(rule.Percents)))
	}
	for i, target := range rule.Targets {
		p := rule.Percents[i]
		if p < 0 || p >= len(target) || target[p] != Wildcard {
			panic(errors.Newf(errors.ErrInvalidInput, "target pattern %q has no wildcard at offset %d", target, p))
		}
	}
}
