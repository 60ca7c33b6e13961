package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrontMatter(t *testing.T) {
	tests := []struct {
		name    string
		content string
		format  string
		fm      map[string]interface{}
		body    string
	}{
		{
			name:    "yaml",
			content: "---\ntitle: Hello\ntags: [a, b]\n---\n\nBody text\n",
			format:  "yaml",
			fm:      map[string]interface{}{"title": "Hello", "tags": []interface{}{"a", "b"}},
			body:    "Body text",
		},
		{
			name:    "yaml crlf",
			content: "---\r\ntitle: Hello\r\n---\r\nBody",
			format:  "yaml",
			fm:      map[string]interface{}{"title": "Hello"},
			body:    "Body",
		},
		{
			name:    "toml",
			content: "+++\ntitle = \"Hello\"\nweight = 3\n+++\nBody",
			format:  "toml",
			fm:      map[string]interface{}{"title": "Hello", "weight": int64(3)},
			body:    "Body",
		},
		{
			name:    "json",
			content: `{"title": "Hello"}`,
			format:  "json",
			fm:      map[string]interface{}{"title": "Hello"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body, format, err := ParseFrontMatter([]byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, tt.fm, fm)
			assert.Equal(t, tt.body, body)
		})
	}
}

func TestParseFrontMatterErrors(t *testing.T) {
	_, _, _, err := ParseFrontMatter([]byte("no front matter"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, _, _, err = ParseFrontMatter([]byte("---\ntitle: [unclosed\n---\n"))
	assert.Error(t, err)
}

func TestParseDataFile(t *testing.T) {
	data, err := ParseDataFile([]byte("site_name = \"Acme\"\n"), ".toml")
	require.NoError(t, err)
	assert.Equal(t, "Acme", data["site_name"])

	data, err = ParseDataFile([]byte("logo: /img/logo.png\n"), "yml")
	require.NoError(t, err)
	assert.Equal(t, "/img/logo.png", data["logo"])

	_, err = ParseDataFile([]byte("x"), ".csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
