package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercases", "Game Boy COLOR", "game boy color"},
		{"folds accents", "console très abîmée", "console tres abimee"},
		{"collapses whitespace", "  a \t b\n\nc ", "a b c"},
		{"strips non-ascii leftovers", "prix: 30€ ferme", "prix: 30 ferme"},
		{"nbsp treated as whitespace", "1 234", "1 234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeTerms(t *testing.T) {
	t.Parallel()

	assert.Nil(t, NormalizeTerms(nil))
	assert.Nil(t, NormalizeTerms([]string{"", "  "}))
	assert.Equal(t,
		[]string{"envoi", "tres bon etat"},
		NormalizeTerms([]string{"Envoi", " Très  Bon État "}),
	)
}

func TestNormalizeGroups(t *testing.T) {
	t.Parallel()

	assert.Nil(t, NormalizeGroups(nil))

	got := NormalizeGroups([][]string{
		{"Mint", "NEUF"},
		{"", " "}, // collapses to nothing, group dropped
		{"Boîte"},
	})
	assert.Equal(t, [][]string{{"mint", "neuf"}, {"boite"}}, got)
}
