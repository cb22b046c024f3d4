package rules

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/patrule/pkg/errors"
)

// errWriter keeps the first write error so printing code can stay linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

// Print writes every installed rule and a summary line to w. It never
// modifies the registry.
//
// When limits have been computed and their rule count differs from the
// number of rules now installed, the rules are still printed and an
// ErrInconsistent error is returned: the registry changed after the limits
// were taken.
func (r *Registry) Print(w io.Writer) error {
	ew := &errWriter{w: w}

	ew.printf("\n# Implicit Rules\n")

	rules, terminal := 0, 0
	r.Each(func(rule *Rule) bool {
		rules++
		if rule.Terminal {
			terminal++
		}

		ew.printf("\n")
		printRule(ew, rule)
		return ew.err == nil
	})

	if rules == 0 {
		ew.printf("\n# No implicit rules.\n")
	} else {
		pct := float64(terminal) / float64(rules) * 100.0
		ew.printf("\n# %d implicit rules, %d (%.1f%%) terminal.\n", rules, terminal, pct)
	}

	if ew.err != nil {
		return errors.Wrap(ew.err, errors.ErrInternal, "failed to print implicit rules")
	}

	if lim, ok := r.Limits(); ok && lim.RuleCount != rules {
		return errors.Newf(errors.ErrInconsistent,
			"implicit rule count is wrong: limits counted %d, registry holds %d", lim.RuleCount, rules).
			WithDetail("expected", lim.RuleCount).
			WithDetail("actual", rules)
	}

	return nil
}

func printRule(ew *errWriter, rule *Rule) {
	var b strings.Builder
	writeRuleHeader(&b, rule)
	ew.printf("%s\n", b.String())

	if rule.Cmds != nil {
		printCommands(ew, rule.Cmds)
	}
}

// writeRuleHeader renders "t1 t2: d1 d2", with "::" for terminal rules.
func writeRuleHeader(b *strings.Builder, rule *Rule) {
	b.WriteString(strings.Join(rule.Targets, " "))
	b.WriteByte(':')
	if rule.Terminal {
		b.WriteByte(':')
	}
	for _, d := range rule.Deps {
		b.WriteByte(' ')
		b.WriteString(d.Name)
	}
}

func printCommands(ew *errWriter, cmds *Commands) {
	if cmds.Origin.IsBuiltin() {
		ew.printf("#  recipe to execute (built-in):\n")
	} else {
		ew.printf("#  recipe to execute (from '%s', rule %d):\n", cmds.Origin.File, cmds.Origin.Index)
	}
	for _, line := range cmds.Lines() {
		ew.printf("\t%s\n", line)
	}
}
