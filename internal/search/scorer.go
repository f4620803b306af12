// Package search ranks a tenant's context snippets against an incoming chat
// message. It is deterministic, side-effect free and safe for concurrent use:
//
//   - No logging in the library (callers decide how/what to log)
//   - Accent-insensitive matching (NFD decomposition, combining marks removed)
//   - Functional options for the scoring weights
//   - Stable order for ties
//
// Scoring, per snippet: each keyword contributes 3 points when it occurs in
// the normalized message, else 2 when it equals a message word, else 1 when
// it occurs inside a message word. The snippet's priority adds
// priority*PriorityWeight unconditionally.
package search

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Keyword match weights.
const (
	SubstringPoints = 3
	WordPoints      = 2
	PartialPoints   = 1
)

// Doc is one scorable snippet.
type Doc struct {
	ID       string
	Category string
	Content  string
	Keywords []string
	Priority int
}

// Match is a ranked snippet.
//
// Fields:
//   - Score: keyword points plus the priority bonus; 0 for fallback results.
//   - Matched: up to three keywords that contributed points.
//   - Fallback: true when no snippet matched and the result was picked by
//     priority alone.
type Match struct {
	Doc      Doc
	Score    int
	Matched  []string
	Fallback bool
}

// ----------------------------------------------------------------------------
// Options

type Option func(*config)

type config struct {
	priorityWeight int
	pinnedPriority int
	defaultMax     int
}

func defaultConfig() config {
	return config{
		priorityWeight: 2,
		pinnedPriority: 10,
		defaultMax:     3,
	}
}

// WithPriorityWeight sets the multiplier applied to a snippet's priority.
func WithPriorityWeight(w int) Option {
	return func(c *config) {
		if w >= 0 {
			c.priorityWeight = w
		}
	}
}

// WithPinnedPriority sets the priority at or above which a snippet is always
// kept, even without keyword matches.
func WithPinnedPriority(p int) Option {
	return func(c *config) { c.pinnedPriority = p }
}

// WithDefaultMax sets the result cap used when Rank is called with limit <= 0.
func WithDefaultMax(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.defaultMax = n
		}
	}
}

// ----------------------------------------------------------------------------
// Implementation

// Scorer ranks snippets. The zero value is not usable; call NewScorer.
type Scorer struct {
	cfg config
}

// NewScorer builds a Scorer with the given options applied over the defaults
// (priority weight 2, pinned priority 10, default max 3).
func NewScorer(opts ...Option) *Scorer {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Scorer{cfg: cfg}
}

// Rank scores docs against message and returns at most limit matches, best
// first by (score, priority). Snippets with a positive score or a pinned
// priority are kept. When none is kept, the limit highest-priority docs are
// returned with Score 0 and Fallback set.
func (s *Scorer) Rank(message string, docs []Doc, limit int) []Match {
	if limit <= 0 {
		limit = s.cfg.defaultMax
	}
	msg := Normalize(message)
	words := wordSet(msg)

	kept := make([]Match, 0, len(docs))
	for _, d := range docs {
		score, matched := s.scoreDoc(msg, words, d)
		if score > 0 || d.Priority >= s.cfg.pinnedPriority {
			kept = append(kept, Match{Doc: d, Score: score, Matched: matched})
		}
	}

	if len(kept) == 0 {
		fallback := make([]Doc, len(docs))
		copy(fallback, docs)
		sort.SliceStable(fallback, func(a, b int) bool {
			return fallback[a].Priority > fallback[b].Priority
		})
		if limit > len(fallback) {
			limit = len(fallback)
		}
		out := make([]Match, 0, limit)
		for _, d := range fallback[:limit] {
			out = append(out, Match{Doc: d, Fallback: true})
		}
		return out
	}

	sort.SliceStable(kept, func(a, b int) bool {
		if kept[a].Score != kept[b].Score {
			return kept[a].Score > kept[b].Score
		}
		return kept[a].Doc.Priority > kept[b].Doc.Priority
	})
	if limit > len(kept) {
		limit = len(kept)
	}
	return kept[:limit]
}

// scoreDoc expects msg already normalized and words built from it.
func (s *Scorer) scoreDoc(msg string, words map[string]struct{}, d Doc) (int, []string) {
	score, matched := scoreKeywords(msg, words, d.Keywords)
	return score + d.Priority*s.cfg.priorityWeight, matched
}

func scoreKeywords(msg string, words map[string]struct{}, keywords []string) (int, []string) {
	score := 0
	var matched []string
	for _, kw := range keywords {
		nk := Normalize(kw)
		if nk == "" {
			continue
		}
		points := 0
		if strings.Contains(msg, nk) {
			points = SubstringPoints
		} else if _, ok := words[nk]; ok {
			points = WordPoints
		} else {
			for w := range words {
				if strings.Contains(w, nk) {
					points = PartialPoints
					break
				}
			}
		}
		if points > 0 {
			score += points
			if len(matched) < 3 {
				matched = append(matched, kw)
			}
		}
	}
	return score, matched
}

// ----------------------------------------------------------------------------
// Helpers

func wordSet(msg string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(msg) {
		words[w] = struct{}{}
	}
	return words
}

// Normalize strips diacritics, lowercases and collapses whitespace:
// "  Horário  do Check-In " becomes "horario do check-in".
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	lower := cases.Lower(language.Und).String(stripped)
	return strings.Join(strings.Fields(lower), " ")
}
