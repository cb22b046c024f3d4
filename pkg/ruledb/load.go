package ruledb

import (
	"context"
	"os"

	"github.com/arthur-debert/patrule/pkg/errors"
	"github.com/arthur-debert/patrule/pkg/logging"
	"golang.org/x/sync/errgroup"
)

// ReadFile reads and parses one rule database.
func ReadFile(path string) (*File, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRuleDBRead, "failed to read %s", path).
			WithDetail("file", path)
	}

	return Parse(path, format, data)
}

// ReadFiles parses paths concurrently, at most limit at a time (no limit
// when limit <= 0). The result keeps the order of paths. The first error
// cancels the remaining reads.
func ReadFiles(ctx context.Context, paths []string, limit int) ([]*File, error) {
	logger := logging.GetLogger("ruledb")
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	// Each goroutine owns one slot.
	files := make([]*File, len(paths))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			f, err := ReadFile(path)
			if err != nil {
				return err
			}
			logger.Trace().Str("file", path).
				Int("patterns", len(f.Patterns)).
				Int("targets", len(f.Targets)).
				Msg("Rule database parsed")
			files[i] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}
