package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nkitsaini/sveltia-cms/pkg/models"
)

const testSiteConfig = `
site_url: https://example.com
media_folder: static/img
public_folder: /img
i18n:
  structure: multiple_files
  locales: [en, fr]
  default_locale: fr
collections:
  - name: posts
    folder: content/posts
    i18n: true
    fields:
      - {name: title, widget: string}
      - {name: cover, widget: image}
      - name: authors
        widget: list
        field: {name: name, widget: string}
      - name: blocks
        widget: list
        types:
          - name: image
            widget: object
            fields:
              - {name: src, widget: file}
              - {name: alt, widget: string}
          - {name: text, widget: string}
  - name: news
    folder: content/posts
    filter: {field: category, value: news}
    fields:
      - {name: title, widget: string}
      - {name: category, widget: string}
  - name: pages
    folder: content/pages
    fields:
      - {name: title, widget: string}
      - name: gallery
        widget: list
        field: {name: photo, widget: image}
      - name: slides
        widget: list
        fields:
          - {name: image, widget: image}
          - {name: caption, widget: string}
  - name: settings
    files:
      - name: general
        file: data/general.yml
        fields:
          - {name: logo, widget: image}
          - {name: tagline, widget: string}
`

func loadTestConfig(t *testing.T) *models.CMSConfig {
	t.Helper()
	var cfg models.CMSConfig
	require.NoError(t, yaml.Unmarshal([]byte(testSiteConfig), &cfg))
	return &cfg
}

func newTestState(t *testing.T, entries ...*models.Entry) *State {
	t.Helper()
	s := NewState(loadTestConfig(t))
	s.SetContent(nil, entries)
	return s
}

func newEntry(id, collection string, locales map[string]map[string]any) *models.Entry {
	e := &models.Entry{
		ID:             id,
		Slug:           id,
		CollectionName: collection,
		Locales:        map[string]models.LocalizedEntry{},
	}
	for locale, content := range locales {
		e.Locales[locale] = models.LocalizedEntry{Content: content}
	}
	return e
}
