package rules_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/patrule/pkg/dircache"
	"github.com/arthur-debert/patrule/pkg/rules"
	"github.com/arthur-debert/patrule/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLimits(t *testing.T) {
	reg := rules.NewRegistry()
	require.True(t, reg.Install(newRule([]string{"%.o"}, "%.c", "%.h"), false))
	require.True(t, reg.Install(newRule([]string{"%.tab.c", "%.tab.h"}), false))
	require.True(t, reg.Install(newRule([]string{"%.x"}, "%.a", "include/%.defs", "%.b"), false))

	lim := reg.ComputeLimits(testutil.Dirs{"include": true})

	assert.Equal(t, rules.Limits{
		RuleCount:     3,
		MaxTargets:    2,
		MaxDeps:       3,
		MaxDepNameLen: len("include/%.defs"),
	}, lim)

	got, ok := reg.Limits()
	assert.True(t, ok)
	assert.Equal(t, lim, got)
}

func TestComputeLimits_EmptyRegistry(t *testing.T) {
	reg := rules.NewRegistry()

	_, ok := reg.Limits()
	assert.False(t, ok)

	lim := reg.ComputeLimits(nil)
	assert.Equal(t, rules.Limits{}, lim)

	_, ok = reg.Limits()
	assert.True(t, ok)
}

func TestComputeLimits_SubdirFlag(t *testing.T) {
	reg := rules.NewRegistry()
	rule := newRule([]string{"%.o"}, "sub/%.h", "%.h", "inc/%.h")
	require.True(t, reg.Install(rule, false))

	reg.ComputeLimits(testutil.Dirs{"inc": true})

	assert.True(t, rule.Deps[0].MissingSubdir, "sub does not exist")
	assert.False(t, rule.Deps[1].MissingSubdir, "no directory part")
	assert.False(t, rule.Deps[2].MissingSubdir, "inc exists")
}

func TestComputeLimits_SubdirFlagOnDisk(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "RCS"), 0755))

	reg := rules.NewRegistry()
	rcs := newRule([]string{"%"}, "RCS/%,v")
	sccs := newRule([]string{"%"}, "SCCS/s.%")
	require.True(t, reg.Install(rcs, false))
	require.True(t, reg.Install(sccs, false))

	reg.ComputeLimits(dircache.New(base))

	assert.False(t, rcs.Deps[0].MissingSubdir)
	assert.True(t, sccs.Deps[0].MissingSubdir)
}

func TestComputeLimits_IsIdempotent(t *testing.T) {
	reg := rules.NewRegistry()
	require.True(t, reg.Install(newRule([]string{"%.o"}, "sub/%.c"), false))

	dirs := testutil.Dirs{}
	first := reg.ComputeLimits(dirs)
	second := reg.ComputeLimits(dirs)

	assert.Equal(t, first, second)
	assert.True(t, reg.All()[0].Deps[0].MissingSubdir)
}

func TestComputeLimits_FlagClearedWhenDirectoryAppears(t *testing.T) {
	reg := rules.NewRegistry()
	rule := newRule([]string{"%.o"}, "sub/%.c")
	require.True(t, reg.Install(rule, false))

	reg.ComputeLimits(testutil.Dirs{})
	require.True(t, rule.Deps[0].MissingSubdir)

	reg.ComputeLimits(testutil.Dirs{"sub": true})
	assert.False(t, rule.Deps[0].MissingSubdir)
}
