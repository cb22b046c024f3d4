package rules_test

import (
	"bytes"
	"errors"
	"testing"

	perrors "github.com/arthur-debert/patrule/pkg/errors"
	"github.com/arthur-debert/patrule/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrint_Empty(t *testing.T) {
	reg := rules.NewRegistry()

	var buf bytes.Buffer
	require.NoError(t, reg.Print(&buf))

	assert.Equal(t, "\n# Implicit Rules\n\n# No implicit rules.\n", buf.String())
}

func TestPrint_Rules(t *testing.T) {
	reg := rules.NewRegistry()
	user := &rules.Commands{
		Recipe: "$(CC) -c $<\n@echo done\n",
		Origin: rules.Origin{File: "rules.toml", Index: 2},
	}
	require.True(t, reg.Create([]string{"%.o"}, []string{"%.c", "%.h"}, user, false, true))
	require.True(t, reg.InstallBuiltin(rules.BuiltinRule{Target: "%", Deps: "RCS/%,v", Recipe: "$(CHECKOUT,v)"}, true))
	require.True(t, reg.Create([]string{"%.tab.c", "%.tab.h"}, []string{"%.y"}, nil, false, false))

	var buf bytes.Buffer
	require.NoError(t, reg.Print(&buf))

	want := "\n# Implicit Rules\n" +
		"\n%.o: %.c %.h\n" +
		"#  recipe to execute (from 'rules.toml', rule 2):\n" +
		"\t$(CC) -c $<\n" +
		"\t@echo done\n" +
		"\n%:: RCS/%,v\n" +
		"#  recipe to execute (built-in):\n" +
		"\t$(CHECKOUT,v)\n" +
		"\n%.tab.c %.tab.h: %.y\n" +
		"\n# 3 implicit rules, 1 (33.3%) terminal.\n"
	assert.Equal(t, want, buf.String())
}

func TestPrint_DoesNotMutate(t *testing.T) {
	reg := rules.NewRegistry()
	require.True(t, reg.Install(newRule([]string{"%.o"}, "%.c"), false))
	reg.ComputeLimits(nil)

	var first, second bytes.Buffer
	require.NoError(t, reg.Print(&first))
	require.NoError(t, reg.Print(&second))

	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, 1, reg.Len())
}

func TestPrint_CountMismatchIsInconsistent(t *testing.T) {
	reg := rules.NewRegistry()
	require.True(t, reg.Install(newRule([]string{"%.o"}, "%.c"), false))
	reg.ComputeLimits(nil)

	// Installing after limits were taken breaks the lifecycle.
	require.True(t, reg.Install(newRule([]string{"%.s"}, "%.S"), false))

	var buf bytes.Buffer
	err := reg.Print(&buf)

	require.Error(t, err)
	assert.True(t, perrors.IsErrorCode(err, perrors.ErrInconsistent))
	assert.Contains(t, err.Error(), "limits counted 1, registry holds 2")
	assert.Contains(t, buf.String(), "# 2 implicit rules, 0 (0.0%) terminal.")
}

func TestPrint_NoLimitsYetIsFine(t *testing.T) {
	reg := rules.NewRegistry()
	require.True(t, reg.Install(newRule([]string{"%.o"}, "%.c"), false))

	assert.NoError(t, reg.Print(&bytes.Buffer{}))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestPrint_WriteError(t *testing.T) {
	reg := rules.NewRegistry()
	require.True(t, reg.Install(newRule([]string{"%.o"}, "%.c"), false))

	err := reg.Print(failingWriter{})
	require.Error(t, err)
	assert.True(t, perrors.IsErrorCode(err, perrors.ErrInternal))
}
