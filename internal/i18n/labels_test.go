package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/searchnav/pkg/types"
)

func TestLabels(t *testing.T) {
	tests := []struct {
		locale      string
		wantTitle   string
		wantResults string
	}{
		{locale: "", wantTitle: "search", wantResults: "Search results"},
		{locale: "en", wantTitle: "search", wantResults: "Search results"},
		{locale: "fr", wantTitle: "recherche", wantResults: "Résultats de recherche"},
		{locale: "de-AT", wantTitle: "Suche", wantResults: "Suchergebnisse"},
		{locale: "ja", wantTitle: "search", wantResults: "Search results"},
	}

	for _, tt := range tests {
		t.Run("locale "+tt.locale, func(t *testing.T) {
			l, err := New(tt.locale)
			require.NoError(t, err)

			assert.Equal(t, tt.wantTitle, l.SearchTitle())
			assert.Equal(t, tt.wantResults, l.StateName(types.StateSearchResults))
		})
	}
}

func TestLabels_UnknownIDs(t *testing.T) {
	l, err := New("en")
	require.NoError(t, err)

	assert.Equal(t, "image", l.StateName("image"))
	assert.Equal(t, "NoSuchMessage", l.Message("NoSuchMessage"))
	assert.Equal(t, language.English.String(), l.Tag().String())
}

func TestLabels_MalformedLocale(t *testing.T) {
	_, err := New("not a locale!")
	assert.Error(t, err)
}
