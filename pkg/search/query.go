package search

import (
	"regexp"
	"strings"
)

// ResultLimit caps every per-kind lookup.
const ResultLimit = 20

type Strategy int

const (
	// StrategyFullText matches a precomputed tsvector against a tsquery.
	StrategyFullText Strategy = iota
	// StrategySubstring matches the raw query anywhere in the text, case-insensitively.
	StrategySubstring
)

func (s Strategy) String() string {
	if s == StrategyFullText {
		return "fulltext"
	}
	return "substring"
}

var nonWord = regexp.MustCompile(`\W`)

// LikeEscape is the escape character used in Pattern.
const LikeEscape = `\`

var likeEscaper = strings.NewReplacer(LikeEscape, LikeEscape+LikeEscape, "%", LikeEscape+"%", "_", LikeEscape+"_")

// EscapeLike makes LIKE wildcards in s match literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Query carries both renderings of one free-text query.
type Query struct {
	Raw     string
	Tokens  []string
	TSQuery string // tokens conjoined with "&"
	Pattern string // escaped raw query wrapped in "%"
}

// ParseQuery trims the query, splits it on whitespace, strips non-word
// characters from each token and drops tokens left empty.
func ParseQuery(raw string) Query {
	raw = strings.TrimSpace(raw)
	q := Query{Raw: raw, Pattern: "%" + EscapeLike(raw) + "%"}
	for _, field := range strings.Fields(raw) {
		token := nonWord.ReplaceAllString(field, "")
		if token != "" {
			q.Tokens = append(q.Tokens, token)
		}
	}
	q.TSQuery = strings.Join(q.Tokens, " & ")
	return q
}

func (q Query) Blank() bool {
	return q.Raw == ""
}

// StrategyFor picks the strategy for one lookup. A query with no usable
// tokens cannot form a tsquery and always takes the substring path.
func (q Query) StrategyFor(indexed bool) Strategy {
	if indexed && len(q.Tokens) > 0 {
		return StrategyFullText
	}
	return StrategySubstring
}
