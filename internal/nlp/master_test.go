package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindMaster(t *testing.T) {
	fz := NewFuzzy()

	tests := []struct {
		text string
		want string
	}{
		{"запишите к Арине", "Арина"},
		{"хочу к ариночке", "Арина"},
		{"к Екатерине на завтра", "Екатерина"},
		{"можно к Кате?", "Екатерина"},
		{"катюша свободна?", "Екатерина"},
		{"к Полине в 14:00", "Полина"},
		{"полину пожалуйста", "Полина"},
	}
	for _, tt := range tests {
		got, ok := FindMaster(tt.text, fz)
		assert.True(t, ok, "text %q", tt.text)
		assert.Equal(t, tt.want, got, "text %q", tt.text)
	}
}

func TestFindMasterDiminutivesCollapse(t *testing.T) {
	// Every surface form of the same master resolves to one display name.
	for _, text := range []string{"екатерина", "катя", "кате", "катюшка", "катенька"} {
		got, ok := FindMaster(text, nil)
		assert.True(t, ok, "text %q", text)
		assert.Equal(t, "Екатерина", got, "text %q", text)
	}
}

func TestFindMasterFuzzyFallback(t *testing.T) {
	got, ok := FindMaster("запишите к орине", NewFuzzy())
	assert.True(t, ok)
	assert.Equal(t, "Арина", got)

	// Below the threshold nothing is guessed.
	_, ok = FindMaster("запишите к маше", NewFuzzy())
	assert.False(t, ok)
}

func TestFindMasterNone(t *testing.T) {
	_, ok := FindMaster("хочу маникюр завтра", NewFuzzy())
	assert.False(t, ok)
}
