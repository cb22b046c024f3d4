// Package testutil provides helpers shared by patrule tests: filesystem
// fixtures, an isolated environment, and fake collaborators for the rule
// registry.
//
// All test data should be defined inline, not in external files, and each
// test should leave no state behind.
package testutil
