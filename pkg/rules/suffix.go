package rules

import (
	"github.com/arthur-debert/patrule/pkg/logging"
)

// Conversion summarizes one ConvertSuffixRules run.
type Conversion struct {
	Suffixes     int
	MaxSuffixLen int
	SuffixRules  int // two-suffix and null-suffix targets found with a recipe
	Installed    int // synthesized rules kept by the registry
}

// ConvertSuffixRules synthesizes pattern rules from the suffix list and the
// suffix-rule targets defined in targets. All synthesized rules install
// without override, so any rule of the same shape already present wins.
//
// For every suffix S a marker rule "%S" with no dependencies and no recipe
// is installed. If S itself has a recipe, "%: %S" is installed. For every
// other suffix S2 whose target "S S2" has a recipe, "%S2: %S" is
// installed, preceded by "(%.o): %S" when S2 is ".a".
func (r *Registry) ConvertSuffixRules(suffixes []string, targets TargetIndex) Conversion {
	logger := logging.GetLogger("rules.suffix")
	done := logging.LogOperationStart(logger, "convert-suffix-rules")
	defer done()

	conv := Conversion{Suffixes: len(suffixes)}
	for _, s := range suffixes {
		if len(s) > conv.MaxSuffixLen {
			conv.MaxSuffixLen = len(s)
		}
	}

	install := func(rule *Rule) {
		if r.Install(rule, false) {
			conv.Installed++
		}
	}

	for _, s := range suffixes {
		install(r.suffixRule(s, "", false, nil))

		if cmds := targets.Commands(s); cmds != nil {
			conv.SuffixRules++
			install(r.suffixRule("", s, true, cmds))
		}

		for _, s2 := range suffixes {
			if s == s2 {
				continue
			}

			name := s + s2
			cmds := targets.Commands(name)
			if cmds == nil {
				continue
			}
			conv.SuffixRules++

			logger.Trace().
				Str("rule", name).
				Str("from", s).
				Str("to", s2).
				Msg("Converting suffix rule")

			if s2 == ".a" {
				install(r.archiveRule(s, cmds))
			}
			install(r.suffixRule(s2, s, true, cmds))
		}
	}

	logger.Debug().
		Int("suffixes", conv.Suffixes).
		Int("suffixRules", conv.SuffixRules).
		Int("installed", conv.Installed).
		Int("maxSuffixLen", conv.MaxSuffixLen).
		Msg("Suffix rules converted")

	return conv
}

// suffixRule builds "%target" with the single dependency "%source" when
// hasSource is set, and no dependencies otherwise.
func (r *Registry) suffixRule(target, source string, hasSource bool, cmds *Commands) *Rule {
	rule := &Rule{
		Targets:  []string{r.intern(string(Wildcard) + target)},
		Percents: []int{0},
		Cmds:     cmds,
	}
	if hasSource {
		rule.Deps = []Dep{{Name: r.intern(string(Wildcard) + source)}}
	}
	return rule
}

func (r *Registry) archiveRule(source string, cmds *Commands) *Rule {
	return &Rule{
		Targets:  []string{r.intern(ArchiveMemberTarget)},
		Percents: []int{1},
		Deps:     []Dep{{Name: r.intern(string(Wildcard) + source)}},
		Cmds:     cmds,
	}
}
