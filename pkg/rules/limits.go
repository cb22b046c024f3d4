package rules

import (
	"strings"
)

// ComputeLimits scans the installed rules once, records the global maxima
// and sets MissingSubdir on every dependency. A dependency lives in a
// subdirectory when a '/' comes before its wildcard; the directory is the
// text up to the last '/', or "/" when that slash is the first character.
// A nil dirs treats every directory as existing.
//
// It must run after all rules are installed. Running it again recomputes
// the same values.
func (r *Registry) ComputeLimits(dirs DirChecker) Limits {
	var lim Limits

	r.Each(func(rule *Rule) bool {
		lim.RuleCount++
		lim.MaxTargets = max(lim.MaxTargets, len(rule.Targets))
		lim.MaxDeps = max(lim.MaxDeps, len(rule.Deps))

		for i := range rule.Deps {
			dep := &rule.Deps[i]
			lim.MaxDepNameLen = max(lim.MaxDepNameLen, len(dep.Name))
			dep.MissingSubdir = missingSubdir(dep.Name, dirs)
		}
		return true
	})

	r.limits = lim
	r.counted = true

	r.logger.Debug().
		Int("rules", lim.RuleCount).
		Int("maxTargets", lim.MaxTargets).
		Int("maxDeps", lim.MaxDeps).
		Int("maxDepNameLen", lim.MaxDepNameLen).
		Msg("Implicit rule limits computed")

	return lim
}

func missingSubdir(name string, dirs DirChecker) bool {
	slash := strings.LastIndexByte(name, '/')
	percent := strings.IndexByte(name, Wildcard)
	if slash < 0 || percent < slash {
		return false
	}

	dir := name[:slash]
	if slash == 0 {
		dir = "/"
	}
	if dirs == nil {
		return false
	}
	return !dirs.DirExists(dir)
}
