package patrule

import (
	"fmt"
	"io"

	"github.com/arthur-debert/patrule/pkg/database"
	"github.com/arthur-debert/patrule/pkg/rules"
)

// ruleView is the JSON form of one rule.
type ruleView struct {
	Targets  []string `json:"targets"`
	Deps     []string `json:"deps"`
	Terminal bool     `json:"terminal,omitempty"`
	Recipe   []string `json:"recipe,omitempty"`
	Origin   string   `json:"origin,omitempty"`
}

func newRuleView(r *rules.Rule) ruleView {
	v := ruleView{
		Targets:  r.Targets,
		Deps:     r.DepNames(),
		Terminal: r.Terminal,
	}
	if r.Cmds != nil {
		v.Recipe = r.Cmds.Lines()
		if r.Cmds.Origin.IsBuiltin() {
			v.Origin = "built-in"
		} else {
			v.Origin = fmt.Sprintf("%s:%d", r.Cmds.Origin.File, r.Cmds.Origin.Index)
		}
	}
	return v
}

// printResult renders the whole database. Text output is the registry's
// own diagnostics dump.
type printResult struct {
	Rules    []ruleView `json:"rules"`
	Total    int        `json:"total"`
	Terminal int        `json:"terminal"`

	reg *rules.Registry
}

func newPrintResult(reg *rules.Registry) *printResult {
	res := &printResult{Rules: []ruleView{}, reg: reg}
	reg.Each(func(r *rules.Rule) bool {
		res.Rules = append(res.Rules, newRuleView(r))
		res.Total++
		if r.Terminal {
			res.Terminal++
		}
		return true
	})
	return res
}

func (p *printResult) WriteText(w io.Writer) error {
	return p.reg.Print(w)
}

type limitsResult struct {
	Rules         int `json:"rules"`
	MaxTargets    int `json:"maxTargets"`
	MaxDeps       int `json:"maxDeps"`
	MaxDepNameLen int `json:"maxDepNameLen"`
	Suffixes      int `json:"suffixes"`
	MaxSuffixLen  int `json:"maxSuffixLen"`
	SuffixRules   int `json:"suffixRules"`
	Converted     int `json:"converted"`
	Strings       int `json:"strings"`
	StringBytes   int `json:"stringBytes"`
	StringHits    int `json:"stringHits"`
}

func newLimitsResult(db *database.Database) limitsResult {
	strs := db.Strings.Stats()
	return limitsResult{
		Rules:         db.Limits.RuleCount,
		MaxTargets:    db.Limits.MaxTargets,
		MaxDeps:       db.Limits.MaxDeps,
		MaxDepNameLen: db.Limits.MaxDepNameLen,
		Suffixes:      db.Conversion.Suffixes,
		MaxSuffixLen:  db.Conversion.MaxSuffixLen,
		SuffixRules:   db.Conversion.SuffixRules,
		Converted:     db.Conversion.Installed,
		Strings:       strs.Strings,
		StringBytes:   strs.Bytes,
		StringHits:    strs.Hits,
	}
}

func (l limitsResult) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"rules:             %d\n"+
			"max targets:       %d\n"+
			"max deps:          %d\n"+
			"max dep name len:  %d\n"+
			"suffixes:          %d\n"+
			"max suffix len:    %d\n"+
			"suffix rules:      %d\n"+
			"converted:         %d\n"+
			"interned strings:  %d (%d bytes, %d hits)\n",
		l.Rules, l.MaxTargets, l.MaxDeps, l.MaxDepNameLen,
		l.Suffixes, l.MaxSuffixLen, l.SuffixRules, l.Converted,
		l.Strings, l.StringBytes, l.StringHits)
	return err
}

type lookupMatch struct {
	Slot int `json:"slot"`
	ruleView
}

type lookupResult struct {
	Pattern string        `json:"pattern"`
	Rules   []lookupMatch `json:"rules"`

	headers []string
}

func newLookupResult(pattern string, refs []rules.TargetRef) *lookupResult {
	res := &lookupResult{Pattern: pattern, Rules: []lookupMatch{}}
	for _, ref := range refs {
		res.Rules = append(res.Rules, lookupMatch{Slot: ref.Slot, ruleView: newRuleView(ref.Rule)})
		res.headers = append(res.headers, ref.Rule.String())
	}
	return res
}

func (l *lookupResult) WriteText(w io.Writer) error {
	for i, m := range l.Rules {
		if _, err := fmt.Fprintf(w, "%s\t# target %d\n", l.headers[i], m.Slot); err != nil {
			return err
		}
	}
	return nil
}

type suffixesResult struct {
	Suffixes []string `json:"suffixes"`
}

func (s suffixesResult) WriteText(w io.Writer) error {
	for _, suffix := range s.Suffixes {
		if _, err := fmt.Fprintln(w, suffix); err != nil {
			return err
		}
	}
	return nil
}
