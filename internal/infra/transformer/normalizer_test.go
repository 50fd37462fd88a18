package transformer

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/BeritaKita/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kumparan = domain.Source{ID: "kumparan-news", Name: "Kumparan", Endpoint: "/api/kumparan-news", ImageStyle: domain.KumparanStyle}

func TestInspectImage(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		style domain.ImageStyle
		want  *domain.Image
	}{
		{
			name:  "kumparan all resolutions",
			raw:   `{"small":"http://s","medium":"http://m","large":"http://l","extraLarge":"http://xl"}`,
			style: domain.KumparanStyle,
			want:  &domain.Image{Small: "http://s", Large: "http://xl"},
		},
		{
			name:  "kumparan without extraLarge",
			raw:   `{"small":"http://s","medium":"http://m","large":"http://l"}`,
			style: domain.KumparanStyle,
			want:  &domain.Image{Small: "http://s", Large: "http://l"},
		},
		{
			name:  "only medium",
			raw:   `{"medium":"http://m"}`,
			style: domain.KumparanStyle,
			want:  &domain.Image{Small: "http://m", Large: "http://m"},
		},
		{
			name:  "only extraLarge",
			raw:   `{"extraLarge":"http://xl"}`,
			style: domain.KumparanStyle,
			want:  &domain.Image{Large: "http://xl"},
		},
		{
			name:  "standard small and large",
			raw:   `{"small":"http://s","large":"http://l"}`,
			style: domain.StandardStyle,
			want:  &domain.Image{Small: "http://s", Large: "http://l"},
		},
		{
			name:  "standard only small",
			raw:   `{"small":"http://s"}`,
			style: domain.StandardStyle,
			want:  &domain.Image{Small: "http://s"},
		},
		{
			name:  "standard only large",
			raw:   `{"large":"http://l"}`,
			style: domain.StandardStyle,
			want:  &domain.Image{Large: "http://l"},
		},
		{
			name:  "voa url string",
			raw:   `"https://gdb.voanews.com/x.jpg"`,
			style: domain.VoaStyle,
			want:  &domain.Image{Small: "https://gdb.voanews.com/x.jpg", Large: "https://gdb.voanews.com/x.jpg"},
		},
		{name: "relative string", raw: `"/img/x.jpg"`, style: domain.UnknownStyle},
		{name: "all fields absent", raw: `{}`, style: domain.UnknownStyle},
		{name: "empty strings", raw: `{"small":"","large":""}`, style: domain.UnknownStyle},
		{name: "null", raw: `null`, style: domain.UnknownStyle},
		{name: "number", raw: `42`, style: domain.UnknownStyle},
		{name: "absent", raw: ``, style: domain.UnknownStyle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape := inspectImage(json.RawMessage(tt.raw))
			assert.Equal(t, tt.style, shape.style)
			assert.Equal(t, tt.want, shape.resolve())
		})
	}
}

func TestNormalize_FieldPrecedence(t *testing.T) {
	tr := NewNewsTransformer()

	tests := []struct {
		name        string
		raw         string
		wantContent string
		wantDate    string
	}{
		{
			name:        "contentSnippet and isoDate win",
			raw:         `{"contentSnippet":"a","content":"b","description":"c","isoDate":"2024-01-02T03:04:05Z","pubDate":"Tue, 02 Jan 2024"}`,
			wantContent: "a",
			wantDate:    "2024-01-02T03:04:05Z",
		},
		{
			name:        "content then pubDate",
			raw:         `{"contentSnippet":"","content":"b","description":"c","pubDate":"Tue, 02 Jan 2024 03:04:05 +0700"}`,
			wantContent: "b",
			wantDate:    "Tue, 02 Jan 2024 03:04:05 +0700",
		},
		{
			name:        "description",
			raw:         `{"description":"c"}`,
			wantContent: "c",
		},
		{
			name:        "non-string fields are ignored",
			raw:         `{"content":{"html":"x"},"description":"c","isoDate":123}`,
			wantContent: "c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, ok := decodeObject(json.RawMessage(tt.raw))
			require.True(t, ok)
			a := tr.Normalize(obj, kumparan)
			assert.Equal(t, tt.wantContent, a.ContentSnippet)
			assert.Equal(t, tt.wantDate, a.PubDate)
			assert.Equal(t, "Kumparan", a.Source)
			assert.Equal(t, "kumparan-news", a.SourceID)
		})
	}
}

func TestTransform_DropsItemsWithoutTitleOrLink(t *testing.T) {
	payload := `{"total": 40, "data": [
		{"title":"ok","link":"https://k.com/1","isoDate":"2024-01-01T00:00:00Z"},
		{"title":"","link":"https://k.com/2"},
		{"link":"https://k.com/3"},
		{"title":"no link"},
		{"title":"null link","link":null},
		"not an object",
		{"title":"ok too","link":"https://k.com/4","image":{"medium":"http://m"}}
	]}`

	batch, err := NewNewsTransformer().Transform(strings.NewReader(payload), kumparan, 0)
	require.NoError(t, err)

	assert.Equal(t, 7, batch.Received)
	assert.Equal(t, 5, batch.Dropped)
	assert.Equal(t, 40, batch.Total)
	require.Len(t, batch.Articles, 2)
	for _, a := range batch.Articles {
		assert.NotEmpty(t, a.Title)
		assert.NotEmpty(t, a.Link)
	}
	assert.Nil(t, batch.Articles[0].Image)
	assert.Equal(t, &domain.Image{Small: "http://m", Large: "http://m"}, batch.Articles[1].Image)
}

func TestTransform_CapsRawItemsBeforeNormalization(t *testing.T) {
	payload := `{"data": [
		{"title":"1"},
		{"title":"2","link":"l2"},
		{"title":"3","link":"l3"},
		{"title":"4","link":"l4"}
	]}`

	batch, err := NewNewsTransformer().Transform(strings.NewReader(payload), kumparan, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, batch.Received)
	assert.Equal(t, 1, batch.Dropped)
	require.Len(t, batch.Articles, 1)
	assert.Equal(t, "2", batch.Articles[0].Title)
}

func TestTransform_InvalidPayload(t *testing.T) {
	tests := map[string]string{
		"not json":        `<html>`,
		"missing data":    `{"total": 3}`,
		"data not array":  `{"data": {"title":"x"}}`,
		"data null":       `{"data": null}`,
		"top-level array": `[{"title":"x"}]`,
	}
	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewNewsTransformer().Transform(strings.NewReader(payload), kumparan, 0)
			assert.Error(t, err)
		})
	}
}

func TestTransform_EmptyData(t *testing.T) {
	batch, err := NewNewsTransformer().Transform(strings.NewReader(`{"data": []}`), kumparan, 8)
	require.NoError(t, err)
	assert.Empty(t, batch.Articles)
	assert.Equal(t, 0, batch.Total)
}

func TestTransform_Idempotent(t *testing.T) {
	payload := `{"data": [
		{"title":"a","link":"https://x/a","contentSnippet":"s","isoDate":"2024-05-01T10:00:00Z","image":{"small":"http://s","large":"http://l"}},
		{"title":"b","link":"https://x/b","pubDate":"garbage","image":"https://img/b.jpg"}
	]}`

	encode := func() []byte {
		batch, err := NewNewsTransformer().Transform(strings.NewReader(payload), kumparan, 0)
		require.NoError(t, err)
		out, err := json.Marshal(batch.Articles)
		require.NoError(t, err)
		return out
	}

	assert.Equal(t, encode(), encode())
}

func TestArticleJSONShape(t *testing.T) {
	a := domain.Article{Title: "t", Link: "l", Source: "Kumparan", SourceID: "kumparan-news"}
	out, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"title":"t","link":"l","contentSnippet":"","pubDate":"","image":null,"source":"Kumparan","sourceId":"kumparan-news"}`,
		string(out))
}

func TestGetTransformer(t *testing.T) {
	tr, err := GetTransformer("")
	require.NoError(t, err)
	assert.IsType(t, &NewsTransformer{}, tr)

	_, err = GetTransformer("pulselive")
	assert.Error(t, err)
}

func TestParseImageStyle(t *testing.T) {
	style, err := ParseImageStyle(" Kumparan ")
	require.NoError(t, err)
	assert.Equal(t, domain.KumparanStyle, style)

	style, err = ParseImageStyle("")
	require.NoError(t, err)
	assert.Equal(t, domain.UnknownStyle, style)

	_, err = ParseImageStyle("gif")
	assert.Error(t, err)
}
