package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkitsaini/sveltia-cms/pkg/models"
)

func entryIDs(entries []*models.Entry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestGetEntriesByCollectionKeepsOrder(t *testing.T) {
	s := newTestState(t,
		newEntry("b", "posts", map[string]map[string]any{"fr": {"title": "B"}}),
		newEntry("x", "pages", map[string]map[string]any{"default": {"title": "X"}}),
		newEntry("a", "posts", map[string]map[string]any{"fr": {"title": "A"}}),
	)

	assert.Equal(t, []string{"b", "a"}, entryIDs(s.GetEntriesByCollection("posts")))
	assert.Equal(t, []string{"x"}, entryIDs(s.GetEntriesByCollection("pages")))
}

func TestGetEntriesByCollectionUnknown(t *testing.T) {
	s := newTestState(t, newEntry("a", "posts", nil))

	got := s.GetEntriesByCollection("missing")
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetEntriesByCollectionFilter(t *testing.T) {
	s := newTestState(t,
		newEntry("n1", "news", map[string]map[string]any{"default": {"category": "news"}}),
		newEntry("n2", "news", map[string]map[string]any{"default": {"category": "blog"}}),
		newEntry("n3", "news", map[string]map[string]any{"default": {}}),
		newEntry("n4", "news", map[string]map[string]any{"fr": {"category": "news"}}),
	)

	assert.Equal(t, []string{"n1"}, entryIDs(s.GetEntriesByCollection("news")))
}

func TestGetEntriesByCollectionFilterUsesDefaultLocale(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.Collections[0].Filter = &models.CollectionFilter{Field: "draft", Value: false}
	s := NewState(cfg)
	s.SetContent(nil, []*models.Entry{
		newEntry("p1", "posts", map[string]map[string]any{"en": {"draft": true}, "fr": {"draft": false}}),
		newEntry("p2", "posts", map[string]map[string]any{"en": {"draft": false}, "fr": {"draft": true}}),
	})

	assert.Equal(t, []string{"p1"}, entryIDs(s.GetEntriesByCollection("posts")))
}

func TestValuesEqual(t *testing.T) {
	assert.True(t, valuesEqual(int64(3), 3))
	assert.True(t, valuesEqual(3.0, 3))
	assert.False(t, valuesEqual("3", 3))
	assert.True(t, valuesEqual("news", "news"))
	assert.True(t, valuesEqual(true, true))
	assert.False(t, valuesEqual(nil, "news"))
	assert.True(t, valuesEqual([]any{"a"}, []any{"a"}))
}

func TestGetEntry(t *testing.T) {
	s := newTestState(t, newEntry("posts/a", "posts", nil))
	assert.NotNil(t, s.GetEntry("posts/a"))
	assert.Nil(t, s.GetEntry("posts/b"))
}

func TestContentLocale(t *testing.T) {
	s := newTestState(t)

	posts := s.GetCollection("posts")
	assert.Equal(t, "fr", ContentLocale(posts, ""))
	assert.Equal(t, "en", ContentLocale(posts, "en"))

	assert.Equal(t, models.DefaultLocaleKey, ContentLocale(s.GetCollection("pages"), ""))
	assert.Equal(t, models.DefaultLocaleKey, ContentLocale(nil, ""))
}
