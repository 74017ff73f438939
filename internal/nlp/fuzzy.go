package nlp

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Fuzzy is the optional edit-distance fallback used by the service and
// master extractors. A nil *Fuzzy disables the stage: the extractors then
// run on regex and literal matching only.
type Fuzzy struct{}

func NewFuzzy() *Fuzzy { return &Fuzzy{} }

// Ratio returns a normalized similarity score in 0..100, with 100 for
// identical strings.
func (f *Fuzzy) Ratio(a, b string) int {
	la := utf8.RuneCountInString(a)
	lb := utf8.RuneCountInString(b)
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 100
	}
	d := levenshtein.ComputeDistance(a, b)
	return (longest - d) * 100 / longest
}

// BestMatch scores word against every choice and returns the best-scoring
// one if it clears the threshold.
func (f *Fuzzy) BestMatch(word string, choices []string, threshold int) (string, bool) {
	if f == nil {
		return "", false
	}
	best := ""
	bestScore := 0
	for _, c := range choices {
		if s := f.Ratio(word, c); s > bestScore {
			best, bestScore = c, s
		}
	}
	if bestScore >= threshold {
		return best, true
	}
	return "", false
}
