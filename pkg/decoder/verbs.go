package decoder

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/orgrun/pkg/types"
)

// verb describes one operation line shape. New verbs are added here.
type verb struct {
	word    string
	status  types.Status
	tag     types.Tag
	hasDest bool
}

var verbs = []verb{
	{"Moving", types.StatusMoved, types.TagMove, true},
	{"Would move", types.StatusWouldMove, types.TagMove, true},
	{"Copying", types.StatusCopied, types.TagCopy, true},
	{"Would copy", types.StatusWouldCopy, types.TagCopy, true},
	{"Renaming", types.StatusRenamed, types.TagRename, true},
	{"Would rename", types.StatusWouldRename, types.TagRename, true},
	{"Deleting", types.StatusDeleted, types.TagDelete, false},
	{"Would delete", types.StatusWouldDelete, types.TagDelete, false},
}

// Paths are either double quoted or bare. A bare source stops at the first
// " to "; a bare destination runs to the end of the line.
const (
	quotedOrLazy   = `("[^"]*"|.+?)`
	quotedOrGreedy = `("[^"]*"|.+)`
)

type compiledVerb struct {
	verb
	re *regexp.Regexp
}

var compiledVerbs = compileVerbs(verbs)

func compileVerbs(vs []verb) []compiledVerb {
	out := make([]compiledVerb, 0, len(vs))
	for _, v := range vs {
		word := strings.ReplaceAll(regexp.QuoteMeta(v.word), " ", `\s+`)
		var pattern string
		if v.hasDest {
			pattern = `^` + word + `\s+` + quotedOrLazy + `\s+to\s+` + quotedOrGreedy + `$`
		} else {
			pattern = `^` + word + `\s+` + quotedOrGreedy + `$`
		}
		out = append(out, compiledVerb{verb: v, re: regexp.MustCompile(pattern)})
	}
	return out
}

var (
	ruleHeaderRe = regexp.MustCompile(`^Rule\s+"([^"]+)"`)
	itemMarkerRe = regexp.MustCompile(`^[✓✗]\s+(.*)$`)
	skippedRe    = regexp.MustCompile(`^Skipped\b`)
	errorRe      = regexp.MustCompile(`(?i)^error:`)
	quotedPathRe = regexp.MustCompile(`"([^"]+)"`)
)

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
