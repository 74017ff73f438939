package nlp

import (
	"regexp"
	"strings"
)

// Masters need a tighter fuzzy threshold than services: short first names
// collide with common words far more easily.
const masterFuzzyThreshold = 75

var masterEntities = []entity{
	{
		canonical: "Арина",
		patterns: []*regexp.Regexp{
			stemPattern("арин"),  // арина, арины, арине, арину, ариной
			stemPattern("аринк"), // аринка, ариночка
		},
		variants: []string{
			"арина", "арины", "арине", "арину", "ариной", "аринка", "ариночка",
		},
	},
	{
		canonical: "Екатерина",
		patterns: []*regexp.Regexp{
			stemPattern("екатерин"), // полное имя во всех падежах
			stemPattern("кат"),      // катя, кати, кате, катю, катей, катенька
			stemPattern("катюш"),    // катюша, катюши, катюшу, катюшка
		},
		variants: []string{
			"екатерина", "екатерины", "екатерине", "екатерину", "екатериной",
			"катя", "кати", "кате", "катю", "катей",
			"катюша", "катюши", "катюше", "катюшу", "катюшей",
			"катенька", "катюшка",
		},
	},
	{
		canonical: "Полина",
		patterns: []*regexp.Regexp{
			stemPattern("полин"),
			stemPattern("полинк"),
		},
		variants: []string{
			"полина", "полины", "полине", "полину", "полиной", "полинка", "полиночка",
		},
	},
}

// masterAliases is the legacy literal fallback; every alias collapses to
// the canonical display spelling of the first name.
var masterAliases = []struct {
	alias     string
	canonical string
}{
	{"арина", "Арина"},
	{"екатерина", "Екатерина"},
	{"полина", "Полина"},
	{"катя", "Екатерина"},
	{"катюша", "Екатерина"},
}

// FindMaster extracts the canonical master name mentioned in the message.
// Same cascade as FindService; all diminutives normalize to one canonical
// display form.
func FindMaster(text string, fz *Fuzzy) (string, bool) {
	lower := strings.ToLower(text)

	if m, ok := matchEntity(lower, masterEntities); ok {
		return m, true
	}
	if m, ok := fuzzyEntity(strings.Fields(lower), masterEntities, fz, masterFuzzyThreshold); ok {
		return m, true
	}
	for _, a := range masterAliases {
		if strings.Contains(lower, a.alias) {
			return a.canonical, true
		}
	}
	return "", false
}
