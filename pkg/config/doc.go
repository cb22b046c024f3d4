// Package config loads patrule settings.
//
// Sources are layered, later ones winning: the embedded defaults, one
// config file, PATRULE_* environment variables and finally explicit
// overrides (command-line flags). The config file is the first that
// exists of:
//
//   - the path given in Options.File
//   - ./.patrule.toml or ./.patrule.yaml in the working directory
//   - $XDG_CONFIG_HOME/patrule/config.toml or config.yaml
//
// Environment variables map to keys by dropping the prefix and replacing
// '_' with '.': PATRULE_RULES_BUILTIN=false sets rules.builtin. List
// values are comma separated.
package config
