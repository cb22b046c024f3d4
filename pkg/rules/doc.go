// Package rules is the pattern-rule database of patrule.
//
// A pattern rule says how to make any file whose name matches a target
// pattern from files whose names are derived from the same stem:
//
//	%.o: %.c
//
// The package owns the registry of installed rules, the translation of
// old-fashioned suffix rules into pattern rules, and the limits that the
// rule-selection engine uses to size its scratch space.
//
// # Patterns
//
// Every target pattern holds exactly one wildcard, the '%' character. A
// backslash quotes a '%' ("\%" is a literal percent) and backslashes in
// front of a '%' quote each other in pairs. The offset of the wildcard is
// stored next to each target after quoting has been removed.
//
// # Installation
//
// Rules are kept in installation order. Installing a rule whose targets are
// all among the targets of an existing rule with the very same dependency
// list either replaces that rule (override) or is dropped (no override):
//
//	reg := rules.NewRegistry()
//	reg.Create([]string{"%.o"}, []string{"%.c"}, cmds, false, true)
//
// User rules install with override, built-in and suffix-derived rules
// without, so the user always wins.
//
// # Suffix rules
//
// ConvertSuffixRules reads the .SUFFIXES list and turns every defined
// two-suffix target such as ".c.o" into "%.o: %.c". Each known suffix also
// gets a marker rule with no dependencies and no recipe.
//
// # Lifecycle
//
// The registry is filled sequentially, then ComputeLimits runs once and the
// registry is treated as read-only. It is not safe for concurrent mutation.
package rules
