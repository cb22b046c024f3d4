// Package database assembles the implicit rule database: built-in rules,
// rule database files, suffix rule conversion and limits, in that order.
// Once Load returns the rules are read-only.
package database

import (
	"context"

	"github.com/arthur-debert/patrule/pkg/dircache"
	"github.com/arthur-debert/patrule/pkg/errors"
	"github.com/arthur-debert/patrule/pkg/logging"
	"github.com/arthur-debert/patrule/pkg/ruledb"
	"github.com/arthur-debert/patrule/pkg/rules"
	"github.com/arthur-debert/patrule/pkg/strcache"
	"github.com/arthur-debert/patrule/pkg/targets"
)

// Options selects the rule sources.
type Options struct {
	// Builtin installs the built-in rule set first.
	Builtin bool
	// Files are rule databases applied after the built-in rules, in order.
	Files []string
	// Concurrency bounds parallel file parsing; 0 means no bound.
	Concurrency int
	// BaseDir resolves relative dependency directories. Empty means the
	// working directory.
	BaseDir string
	// Dirs replaces the on-disk directory check when set.
	Dirs rules.DirChecker
}

// Database is a fully built rule set.
type Database struct {
	Rules      *rules.Registry
	Targets    *targets.Database
	Strings    *strcache.Cache
	Conversion rules.Conversion
	Limits     rules.Limits

	// BuiltinRules is the number of built-in pattern rules kept.
	BuiltinRules int
	// Files holds what each rule database contributed, in load order.
	Files []FileStats
}

// FileStats reports what one rule database contributed.
type FileStats struct {
	Path string
	ruledb.Stats
}

// Load builds the rule database.
func Load(ctx context.Context, opts Options) (*Database, error) {
	logger := logging.GetLogger("database").With().Bool("builtin", opts.Builtin).Int("files", len(opts.Files)).Logger()
	done := logging.LogOperationStart(logger, "load")
	defer done()

	strs := strcache.New()
	db := &Database{
		Rules:   rules.NewRegistry(rules.WithInterner(strs)),
		Targets: targets.New(targets.WithInterner(strs)),
		Strings: strs,
	}

	// (a) built-in rules
	if opts.Builtin {
		b, err := ruledb.LoadBuiltin()
		if err != nil {
			return nil, err
		}
		n, err := b.Install(db.Rules, db.Targets)
		if err != nil {
			return nil, err
		}
		db.BuiltinRules = n
	}

	// (b) rule databases: parsed in parallel, applied in order
	files, err := ruledb.ReadFiles(ctx, opts.Files, opts.Concurrency)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		stats, err := f.Apply(db.Rules, db.Targets)
		if err != nil {
			return nil, err
		}
		db.Files = append(db.Files, FileStats{Path: f.Path, Stats: stats})
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "rule database load cancelled")
	}

	// (c) suffix rules
	db.Conversion = db.Rules.ConvertSuffixRules(db.Targets.Suffixes(), db.Targets)

	// (d) limits
	dirs := opts.Dirs
	if dirs == nil {
		dirs = dircache.New(opts.BaseDir)
	}
	db.Limits = db.Rules.ComputeLimits(dirs)

	logger.Info().
		Int("rules", db.Limits.RuleCount).
		Int("targets", db.Targets.Len()).
		Int("suffixes", db.Conversion.Suffixes).
		Msg("Rule database loaded")

	return db, nil
}
