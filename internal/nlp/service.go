package nlp

import (
	"regexp"
	"strings"
)

const serviceFuzzyThreshold = 70

var serviceEntities = []entity{
	{
		canonical: "маникюр",
		patterns: []*regexp.Regexp{
			stemPattern("маникюр"),  // маникюр, маникюра, маникюру, маникюром
			stemPattern("маникюрн"), // маникюрный, маникюрная
			stemPattern("маник"),    // разговорные сокращения
		},
		variants: []string{
			"маникюр", "маникюра", "маникюру", "маникюром", "маникюре",
			"маникюрный", "маникюрная", "маник", "маника",
		},
	},
	{
		canonical: "педикюр",
		patterns: []*regexp.Regexp{
			stemPattern("педикюр"),
			stemPattern("педикюрн"),
			stemPattern("педик"),
		},
		variants: []string{
			"педикюр", "педикюра", "педикюру", "педикюром", "педикюре",
			"педикюрный", "педикюрная", "педик", "педика",
		},
	},
	{
		canonical: "массаж",
		patterns: []*regexp.Regexp{
			stemPattern("массаж"),
			stemPattern("массажн"),
			stemPattern("масаж"),       // частая опечатка
			stemPattern(`мас[а-яё]*ж`), // прочие искажения
		},
		variants: []string{
			"массаж", "массажа", "массажу", "массажем", "массаже",
			"масаж", "масажа", "массажный", "массажная",
		},
	},
}

// servicePhrases is the legacy literal list kept for compatibility; long
// composite titles come first so they win over their bare stems.
var servicePhrases = []string{
	"маникюр с покрытием гель-лак", "маникюр",
	"педикюр с покрытием гель-лак", "педикюр",
	"массаж оздоровительный", "массаж",
	"маникюр в 4 руки", "педикюр в 4 руки",
}

// FindService extracts the canonical service mentioned in the message.
// Stages, first hit wins: regex cascade in declared entity order, fuzzy
// fallback over the variant union, then the literal phrase list.
func FindService(text string, fz *Fuzzy) (string, bool) {
	lower := strings.ToLower(text)

	if svc, ok := matchEntity(lower, serviceEntities); ok {
		return svc, true
	}
	if svc, ok := fuzzyEntity(strings.Fields(lower), serviceEntities, fz, serviceFuzzyThreshold); ok {
		return svc, true
	}
	for _, phrase := range servicePhrases {
		if strings.Contains(lower, phrase) {
			return phrase, true
		}
	}
	return "", false
}
