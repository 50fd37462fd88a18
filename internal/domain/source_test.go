package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	reg, err := NewRegistry([]Source{
		{ID: "cnn-news", Name: "CNN Indonesia", Endpoint: "/api/cnn-news", ImageStyle: StandardStyle},
		{ID: "voa-news", Name: "VOA Indonesia", Endpoint: "/api/voa-news"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, reg.Len())
	src, ok := reg.Lookup("voa-news")
	require.True(t, ok)
	assert.Equal(t, "VOA Indonesia", src.Name)
	assert.Equal(t, UnknownStyle, src.ImageStyle, "missing style should default to unknown")

	_, ok = reg.Lookup("tempo")
	assert.False(t, ok)

	all := reg.All()
	assert.Equal(t, "cnn-news", all[0].ID, "registration order must be kept")
	all[0].ID = "mutated"
	src, _ = reg.Lookup("cnn-news")
	assert.Equal(t, "cnn-news", src.ID, "All must return a copy")
}

func TestNewRegistry_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		sources []Source
	}{
		{name: "empty", sources: nil},
		{name: "blank id", sources: []Source{{ID: " ", Name: "x", Endpoint: "/x"}}},
		{name: "blank name", sources: []Source{{ID: "x", Endpoint: "/x"}}},
		{name: "blank endpoint", sources: []Source{{ID: "x", Name: "x"}}},
		{name: "duplicate", sources: []Source{
			{ID: "x", Name: "x", Endpoint: "/x"},
			{ID: "x", Name: "y", Endpoint: "/y"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.sources)
			assert.Error(t, err)
		})
	}
}

func TestArticle_Matches(t *testing.T) {
	a := Article{Title: "Harga Beras Naik", ContentSnippet: "Pasar induk Cipinang"}
	assert.True(t, a.Matches(""))
	assert.True(t, a.Matches("beras"))
	assert.True(t, a.Matches("  CIPINANG "))
	assert.False(t, a.Matches("jagung"))
}
