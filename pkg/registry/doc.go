// Package registry provides a generic, type-safe registry that stores
// items by name and remembers the order in which names were first
// registered. The explicit-target database is built on it.
package registry
