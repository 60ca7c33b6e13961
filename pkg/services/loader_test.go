package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkitsaini/sveltia-cms/pkg/models"
)

const loaderConfig = `
site_url: https://example.com
media_folder: static/img
public_folder: /img
i18n:
  structure: multiple_files
  locales: [en, fr]
  default_locale: en
collections:
  - name: posts
    folder: content/posts
    i18n: true
    fields:
      - {name: title, widget: string}
      - {name: cover, widget: image}
  - name: docs
    folder: content/docs
    i18n: {structure: multiple_folders}
    fields:
      - {name: title, widget: string}
  - name: faq
    folder: content/faq
    extension: yml
    i18n: {structure: single_file}
    fields:
      - {name: question, widget: string}
  - name: pages
    folder: content/pages
    fields:
      - {name: title, widget: string}
  - name: settings
    i18n: true
    files:
      - name: general
        file: data/general.toml
        fields:
          - {name: logo, widget: image}
`

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func newLoaderRepo(t *testing.T) string {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"static/admin/config.yml":      loaderConfig,
		"content/posts/hello.en.md":    "---\ntitle: Hello\ncover: /img/a.png\n---\nBody text\n",
		"content/posts/hello.fr.md":    "---\ntitle: Bonjour\ncover: /img/a.png\n---\n",
		"content/posts/hello.de.md":    "---\ntitle: Hallo\n---\n",
		"content/docs/en/guide.md":     "+++\ntitle = \"Guide\"\n+++\n",
		"content/docs/fr/guide.md":     "+++\ntitle = \"Guide FR\"\n+++\n",
		"content/faq/one.yml":          "en:\n  question: Why?\nfr:\n  question: Pourquoi ?\n",
		"content/pages/about.md":       "---\ntitle: About\n---\n",
		"content/pages/nested/team.md": "{\"title\": \"Team\"}",
		"content/pages/broken.md":      "no front matter here",
		"data/general.en.toml":         "logo = \"/img/logo.png\"\n",
		"data/general.fr.toml":         "logo = \"/img/logo-fr.png\"\n",
	})
	return root
}

func TestLoadContent(t *testing.T) {
	root := newLoaderRepo(t)
	cfg, err := LoadSiteConfig(filepath.Join(root, "static/admin/config.yml"))
	require.NoError(t, err)

	paths, entries, err := LoadContent(context.Background(), root, cfg, 4)
	require.NoError(t, err)

	byID := map[string]*models.Entry{}
	for _, e := range entries {
		byID[e.ID] = e
	}

	hello := byID["posts/hello"]
	require.NotNil(t, hello)
	assert.Equal(t, "hello", hello.Slug)
	assert.Len(t, hello.Locales, 2, "unknown locale files are ignored")
	assert.Equal(t, "Hello", hello.Locales["en"].Content["title"])
	assert.Equal(t, "Body text", hello.Locales["en"].Content["body"])
	assert.Equal(t, "content/posts/hello.fr.md", hello.Locales["fr"].Path)

	guide := byID["docs/guide"]
	require.NotNil(t, guide)
	assert.Equal(t, "Guide FR", guide.Locales["fr"].Content["title"])

	faq := byID["faq/one"]
	require.NotNil(t, faq)
	assert.Equal(t, "Pourquoi ?", faq.Locales["fr"].Content["question"])

	require.NotNil(t, byID["pages/about"])
	assert.Equal(t, "Team", byID["pages/nested/team"].Locales[models.DefaultLocaleKey].Content["title"])
	assert.Nil(t, byID["pages/broken"])

	general := byID["settings/general"]
	require.NotNil(t, general)
	assert.Equal(t, "general", general.FileName)
	assert.Equal(t, "/img/logo-fr.png", general.Locales["fr"].Content["logo"])

	assert.Len(t, entries, 6)
	assert.Len(t, paths, 9)
}

func TestLoadContentMissingFolder(t *testing.T) {
	root := t.TempDir()
	cfg := &models.CMSConfig{Collections: []models.Collection{{Name: "posts", Folder: "content/posts"}}}

	paths, entries, err := LoadContent(context.Background(), root, cfg, 1)
	require.NoError(t, err)
	assert.Empty(t, paths)
	assert.Empty(t, entries)
}

func TestLoadSiteConfigErrors(t *testing.T) {
	root := t.TempDir()
	_, err := LoadSiteConfig(filepath.Join(root, "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	writeFiles(t, root, map[string]string{"bad.yml": "collections:\n  - name: x\n    i18n: [en]\n"})
	_, err = LoadSiteConfig(filepath.Join(root, "bad.yml"))
	assert.Error(t, err)
}

func TestStateReload(t *testing.T) {
	root := newLoaderRepo(t)
	s := NewState(nil)
	assert.False(t, s.DataLoaded())

	require.NoError(t, s.Reload(context.Background(), root, "static/admin/config.yml", 2))
	assert.True(t, s.DataLoaded())
	assert.Equal(t, "https://example.com", s.SiteConfig().SiteURL)

	posts := s.GetEntriesByCollection("posts")
	require.Len(t, posts, 1)

	got, err := s.GetEntriesByAssetURL(context.Background(), "https://example.com/img/logo.png", &PublicFolderResolver{State: s})
	require.NoError(t, err)
	assert.Equal(t, []string{"settings/general"}, entryIDs(got))
}

func TestParseContentFile(t *testing.T) {
	fm, err := ParseContentFile([]byte("---\r\ntitle: Hi\r\n---\r\nText"), ".md")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "Hi", "body": "Text"}, fm)

	_, err = ParseContentFile([]byte("plain"), ".md")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = ParseContentFile([]byte("a: 1"), ".ini")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	data, err := ParseContentFile([]byte(`{"a": [1, {"b": 2}]}`), ".json")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": []any{1.0, map[string]any{"b": 2.0}}}, data)
}
