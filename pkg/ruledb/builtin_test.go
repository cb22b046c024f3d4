package ruledb_test

import (
	"testing"

	"github.com/arthur-debert/patrule/pkg/rules"
	"github.com/arthur-debert/patrule/pkg/ruledb"
	"github.com/arthur-debert/patrule/pkg/targets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBuiltin(t *testing.T) {
	b, err := ruledb.LoadBuiltin()
	require.NoError(t, err)

	assert.Contains(t, b.Suffixes, ".c")
	assert.Contains(t, b.Suffixes, ".o")
	assert.Equal(t, ".out", b.Suffixes[0])
	assert.Len(t, b.Rules, 4)
	assert.Len(t, b.Terminal, 5)

	names := make([]string, len(b.SuffixRules))
	for i, sr := range b.SuffixRules {
		names[i] = sr.Name
		assert.NotEmpty(t, sr.Recipe, sr.Name)
	}
	assert.Contains(t, names, ".c.o")
	assert.Contains(t, names, ".y.c")
}

func TestBuiltinInstall(t *testing.T) {
	b, err := ruledb.LoadBuiltin()
	require.NoError(t, err)

	reg := rules.NewRegistry()
	db := targets.New()

	kept, err := b.Install(reg, db)
	require.NoError(t, err)
	assert.Equal(t, 9, kept)

	headers := make([]string, 0, reg.Len())
	for _, r := range reg.All() {
		headers = append(headers, r.String())
	}
	assert.Equal(t, []string{
		"(%): %",
		"%.out: %",
		"%.c: %.w %.ch",
		"%.tex: %.w %.ch",
		"%:: %,v",
		"%:: RCS/%,v",
		"%:: RCS/%",
		"%:: s.%",
		"%:: SCCS/s.%",
	}, headers)

	for _, r := range reg.All() {
		require.NotNil(t, r.Cmds)
		assert.True(t, r.Cmds.Origin.IsBuiltin())
	}
	assert.Equal(t, []string{"@rm -f $@", "cp $< $@"}, reg.All()[1].Cmds.Lines())

	assert.Equal(t, b.Suffixes, db.Suffixes())
	require.NotNil(t, db.Commands(".c.o"))
	assert.Equal(t, "$(COMPILE.c) $(OUTPUT_OPTION) $<", db.Commands(".c.o").Recipe)
}

func TestBuiltinInstall_ExistingRuleWins(t *testing.T) {
	b, err := ruledb.LoadBuiltin()
	require.NoError(t, err)

	reg := rules.NewRegistry()
	user := &rules.Commands{Recipe: "co -q $<", Origin: rules.Origin{File: "mine.toml", Index: 1}}
	require.True(t, reg.Create([]string{"%"}, []string{"RCS/%,v"}, user, true, true))

	kept, err := b.Install(reg, targets.New())
	require.NoError(t, err)
	assert.Equal(t, 8, kept)

	refs := reg.FindByTarget("%")
	var rcs *rules.Rule
	for _, ref := range refs {
		if ref.Rule.String() == "%:: RCS/%,v" {
			rcs = ref.Rule
		}
	}
	require.NotNil(t, rcs)
	assert.Same(t, user, rcs.Cmds)
}
