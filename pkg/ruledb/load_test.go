package ruledb_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/patrule/pkg/errors"
	"github.com/arthur-debert/patrule/pkg/ruledb"
	"github.com/arthur-debert/patrule/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "rules.yml", sampleYAML)

	f, err := ruledb.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path)
	assert.Len(t, f.Patterns, 2)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ruledb.ReadFile(filepath.Join(t.TempDir(), "nope.toml"))

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRuleDBRead))
}

func TestReadFiles_KeepsOrder(t *testing.T) {
	dir := t.TempDir()

	var paths []string
	for i := 0; i < 8; i++ {
		content := fmt.Sprintf("[[pattern]]\ntargets = [\"%%.o%d\"]\ndeps = [\"%%.c\"]\n", i)
		paths = append(paths, testutil.CreateFile(t, dir, fmt.Sprintf("r%d.toml", i), content))
	}

	files, err := ruledb.ReadFiles(context.Background(), paths, 3)
	require.NoError(t, err)
	require.Len(t, files, len(paths))

	for i, f := range files {
		assert.Equal(t, paths[i], f.Path)
		assert.Equal(t, []string{fmt.Sprintf("%%.o%d", i)}, f.Patterns[0].Targets)
	}
}

func TestReadFiles_Empty(t *testing.T) {
	files, err := ruledb.ReadFiles(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestReadFiles_FirstErrorWins(t *testing.T) {
	dir := t.TempDir()
	good := testutil.CreateFile(t, dir, "good.toml", sampleTOML)
	bad := testutil.CreateFile(t, dir, "bad.toml", "[[pattern]]\ntargets = [\"no-wildcard\"]\n")

	files, err := ruledb.ReadFiles(context.Background(), []string{good, bad}, 0)

	require.Error(t, err)
	assert.Nil(t, files)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRuleInvalid))
}

func TestReadFiles_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "rules.toml", sampleTOML)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ruledb.ReadFiles(ctx, []string{path}, 0)
	assert.ErrorIs(t, err, context.Canceled)
}
