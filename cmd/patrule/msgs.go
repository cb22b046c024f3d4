package patrule

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Build and inspect an implicit rule database"
	MsgPrintShort      = "Print every implicit rule and a summary"
	MsgLimitsShort     = "Show the limits computed over the rule database"
	MsgLookupShort     = "List the rules declaring a target pattern"
	MsgSuffixesShort   = "Show the effective suffix list"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgCompletionLong  = "Generate a completion script for bash, zsh, fish or powershell and write it to stdout."

	// Status messages
	MsgNoRulesForTarget = "No rules declare target %s"
	MsgNoSuffixes       = "The suffix list is empty."
	MsgVersionFormat    = "patrule %s (commit %s, built %s)\n"

	// Error messages
	MsgErrNoCommand    = "no command specified"
	MsgErrLoadConfig   = "failed to load configuration: %w"
	MsgErrLoadDatabase = "failed to load rule database: %w"
	MsgErrFormat       = "invalid output format: %w"

	// Flag descriptions
	MsgFlagVerbose        = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig         = "Read configuration from this file"
	MsgFlagFormat         = "Output format: auto, term, text or json"
	MsgFlagNoBuiltinRules = "Do not install the built-in rules and suffixes"
	MsgFlagFile           = "Apply a rule database file (repeatable)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)
)
