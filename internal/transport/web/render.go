package web

import (
	"fmt"
	"net/url"
	"slices"
)

const (
	// TruncateRunes is the collapsed body length.
	TruncateRunes = 300

	labelReadMore = "Read more"
	labelShowLess = "Show less"
)

// Truncate shortens text to TruncateRunes runes plus "..." when collapsed.
// Expanded or short text is returned unchanged.
func Truncate(text string, expanded bool) string {
	r := []rune(text)
	if expanded || len(r) <= TruncateRunes {
		return text
	}
	return string(r[:TruncateRunes]) + "..."
}

// NeedsToggle reports whether the card shows a Read more/Show less link.
func NeedsToggle(text string) bool {
	return len([]rune(text)) > TruncateRunes
}

// ToggleLabel is the link text for the card's current state.
func ToggleLabel(expanded bool) string {
	if expanded {
		return labelShowLess
	}
	return labelReadMore
}

// FormatSimilarity renders a score in [0,1] as "Similarity: NN.N%".
func FormatSimilarity(similarity float64) string {
	return fmt.Sprintf("Similarity: %.1f%%", similarity*100)
}

// Expanded is the set of post ids whose full text is shown.
type Expanded map[string]struct{}

// ParseExpanded collects the expanded ids from query values.
func ParseExpanded(values []string) Expanded {
	e := make(Expanded, len(values))
	for _, v := range values {
		if v != "" {
			e[v] = struct{}{}
		}
	}
	return e
}

// Has reports whether id is expanded.
func (e Expanded) Has(id string) bool {
	_, ok := e[id]
	return ok
}

// Toggled returns a copy of the set with id flipped.
func (e Expanded) Toggled(id string) Expanded {
	out := make(Expanded, len(e)+1)
	for k := range e {
		out[k] = struct{}{}
	}
	if e.Has(id) {
		delete(out, id)
	} else {
		out[id] = struct{}{}
	}
	return out
}

// ToggleURL builds the page link that keeps the question and flips id.
func ToggleURL(question string, e Expanded, id string) string {
	next := e.Toggled(id)
	ids := make([]string, 0, len(next))
	for k := range next {
		ids = append(ids, k)
	}
	slices.Sort(ids)

	q := url.Values{}
	q.Set("q", question)
	for _, k := range ids {
		q.Add("expanded", k)
	}
	return "/?" + q.Encode() + "#post-" + url.PathEscape(id)
}
