package rules_test

import (
	"testing"

	"github.com/arthur-debert/patrule/pkg/rules"
	"github.com/arthur-debert/patrule/pkg/strcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPercent(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
		offset  int
	}{
		{"plain", "%.o", "%.o", 0},
		{"prefix", "lib%.a", "lib%.a", 3},
		{"no wildcard", "foo.o", "foo.o", -1},
		{"quoted percent only", `100\%.txt`, "100%.txt", -1},
		{"quoted then wildcard", `a\%b%.o`, "a%b%.o", 3},
		{"escaped backslash", `dir\\%.o`, `dir\%.o`, 4},
		{"three backslashes quote", `x\\\%y%`, `x\%y%`, 4},
		{"backslash elsewhere kept", `a\b%.o`, `a\b%.o`, 3},
		{"first wildcard wins", "%.%", "%.%", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, off := rules.FindPercent(tt.pattern)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.offset, off)
			if off >= 0 {
				assert.Equal(t, byte('%'), got[off])
			}
		})
	}
}

func TestNewRule(t *testing.T) {
	cmds := &rules.Commands{Recipe: "$(CC) -c $<"}
	rule := rules.NewRule([]string{"%.o", `lib\%%.a`}, []string{"%.c", "%.h"}, cmds, true)

	assert.Equal(t, []string{"%.o", "lib%%.a"}, rule.Targets)
	assert.Equal(t, []int{0, 4}, rule.Percents)
	assert.Equal(t, []string{"%.c", "%.h"}, rule.DepNames())
	assert.Equal(t, "lib%", rule.Prefix(1))
	assert.Equal(t, ".a", rule.Suffix(1))
	assert.True(t, rule.Terminal)
	assert.Same(t, cmds, rule.Cmds)
	assert.False(t, rule.Installed())
	assert.Equal(t, "%.o lib%%.a:: %.c %.h", rule.String())
}

func TestNewRule_TargetWithoutWildcardPanics(t *testing.T) {
	assert.Panics(t, func() {
		rules.NewRule([]string{"%.o", "foo.o"}, nil, nil, false)
	})
	assert.Panics(t, func() {
		rules.NewRule([]string{`\%.o`}, nil, nil, false)
	})
}

func TestCreate_InternsNames(t *testing.T) {
	cache := strcache.New()
	reg := rules.NewRegistry(rules.WithInterner(cache))

	targets := []string{"%.o"}
	require.True(t, reg.Create(targets, []string{"%.c"}, nil, false, false))
	require.True(t, reg.Create([]string{"%.obj"}, []string{"%.c"}, nil, false, false))

	assert.Equal(t, 3, cache.Len())
	assert.Equal(t, []string{"%.o"}, targets, "caller slices are not modified")
}

func TestCreate_InternsUnquotedTarget(t *testing.T) {
	cache := strcache.New()
	reg := rules.NewRegistry(rules.WithInterner(cache))

	require.True(t, reg.Create([]string{`100\%-%.txt`}, []string{"%.in"}, nil, false, false))

	rule := reg.All()[0]
	assert.Equal(t, `100%-%.txt`, rule.Targets[0])
	assert.Equal(t, 2, cache.Len())

	cache.Add(`100%-%.txt`)
	assert.Equal(t, 2, cache.Len(), "the quoted form is never stored")
}

func TestCreate_TerminalOnlyWhenKept(t *testing.T) {
	reg := rules.NewRegistry()

	require.True(t, reg.Create([]string{"%"}, []string{"%,v"}, nil, false, false))
	assert.False(t, reg.Create([]string{"%"}, []string{"%,v"}, nil, true, false))

	assert.False(t, reg.All()[0].Terminal)
}

func TestInstallBuiltin(t *testing.T) {
	reg := rules.NewRegistry()

	user := &rules.Commands{Recipe: "my-weave $<", Origin: rules.Origin{File: "rules.toml", Index: 1}}
	require.True(t, reg.Create([]string{"%.tex"}, []string{"%.w", "%.ch"}, user, false, true))

	assert.True(t, reg.InstallBuiltin(rules.BuiltinRule{Target: "%", Deps: "SCCS/s.%", Recipe: "$(GET) $<"}, true))
	assert.False(t, reg.InstallBuiltin(rules.BuiltinRule{Target: "%.tex", Deps: "%.w %.ch", Recipe: "$(WEAVE) $^"}, false),
		"user rule with the same shape wins")

	all := reg.All()
	require.Len(t, all, 2)
	assert.Same(t, user, all[0].Cmds)

	builtin := all[1]
	assert.True(t, builtin.Terminal)
	assert.True(t, builtin.Cmds.Origin.IsBuiltin())
	assert.Equal(t, []string{"SCCS/s.%"}, builtin.DepNames())
}
