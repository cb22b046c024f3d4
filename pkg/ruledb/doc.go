// Package ruledb reads rule database files and the built-in rule set.
//
// A rule database is a TOML or YAML document with three parts: suffixes
// to add to the suffix list, native pattern rules, and explicit targets.
// Suffix rules such as ".c.o" are ordinary explicit targets; they become
// pattern rules only when the registry converts them.
//
//	suffixes = [".c", ".o"]
//	reset_suffixes = false
//
//	[[pattern]]
//	targets = ["%.o"]
//	deps = ["%.c"]
//	recipe = "$(CC) -c $<"
//	terminal = false
//
//	[[target]]
//	name = ".c.o"
//	recipe = "$(CC) -c -o $@ $<"
//
// Pattern rules from a database replace any installed rule of the same
// shape. Files are parsed concurrently and applied in the order given.
package ruledb
