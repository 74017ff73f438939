package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	fz := NewFuzzy()

	assert.Equal(t, 100, fz.Ratio("маникюр", "маникюр"))
	assert.Equal(t, 100, fz.Ratio("", ""))

	// One substitution across seven runes.
	assert.Equal(t, 85, fz.Ratio("миникюр", "маникюр"))

	assert.Equal(t, 0, fz.Ratio("абв", "xyz"))
}

func TestBestMatch(t *testing.T) {
	fz := NewFuzzy()
	choices := []string{"маникюр", "педикюр", "массаж"}

	got, ok := fz.BestMatch("миникюр", choices, 70)
	assert.True(t, ok)
	assert.Equal(t, "маникюр", got)

	_, ok = fz.BestMatch("стрижка", choices, 70)
	assert.False(t, ok)
}

func TestBestMatchNilReceiver(t *testing.T) {
	var fz *Fuzzy
	_, ok := fz.BestMatch("маникюр", []string{"маникюр"}, 70)
	assert.False(t, ok)
}
