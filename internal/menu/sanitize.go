package menu

import (
	"regexp"
	"strings"
)

// Rule is one named repair applied by Sanitize.
type Rule struct {
	Name  string
	Apply func(string) string
}

var (
	smartDoubleQuotes = strings.NewReplacer("“", `"`, "”", `"`)
	smartSingleQuotes = strings.NewReplacer("‘", "'", "’", "'")
	trailingComma     = regexp.MustCompile(`(?:,\s*)+([}\]])`)
)

// Rules is the complete, ordered list of repairs. Structural defects such as
// unbalanced brackets or truncated output are left for the decoder to reject.
var Rules = []Rule{
	{Name: "smart-double-quotes", Apply: smartDoubleQuotes.Replace},
	{Name: "smart-single-quotes", Apply: smartSingleQuotes.Replace},
	{Name: "trailing-commas", Apply: func(s string) string {
		return trailingComma.ReplaceAllString(s, "$1")
	}},
}

// Sanitize applies every rule in order.
func Sanitize(s string) string {
	for _, r := range Rules {
		s = r.Apply(s)
	}
	return s
}
