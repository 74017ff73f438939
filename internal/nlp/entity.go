package nlp

import "regexp"

// entity is one canonical service or master. Declaration order inside the
// entity slices is the tie-break priority: on ambiguous text the
// earlier-declared entity wins, so the slices must stay ordered lists, not
// maps.
type entity struct {
	canonical string
	patterns  []*regexp.Regexp
	variants  []string
}

// stemPattern matches a Cyrillic stem at a word start followed by any
// in-word continuation. Go's \b is ASCII-only, so word boundaries around
// Cyrillic are spelled out.
func stemPattern(stem string) *regexp.Regexp {
	return regexp.MustCompile(`(^|[^а-яёa-z])` + stem + `[а-яё]*`)
}

func matchEntity(lower string, entities []entity) (string, bool) {
	for _, e := range entities {
		for _, p := range e.patterns {
			if p.MatchString(lower) {
				return e.canonical, true
			}
		}
	}
	return "", false
}

// fuzzyEntity tokenizes the message and matches each token against the
// flattened union of every entity's surface forms, mapping an accepted
// variant back to its canonical entity.
func fuzzyEntity(words []string, entities []entity, fz *Fuzzy, threshold int) (string, bool) {
	if fz == nil {
		return "", false
	}
	var all []string
	for _, e := range entities {
		all = append(all, e.variants...)
	}
	for _, w := range words {
		best, ok := fz.BestMatch(w, all, threshold)
		if !ok {
			continue
		}
		for _, e := range entities {
			for _, v := range e.variants {
				if v == best {
					return e.canonical, true
				}
			}
		}
	}
	return "", false
}
