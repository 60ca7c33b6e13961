package models

// DefaultLocaleKey is the locale key of entries in collections without locales.
const DefaultLocaleKey = "default"

// Entry is one loaded content item, with a localized copy per locale.
type Entry struct {
	ID             string                    `json:"id"`
	Slug           string                    `json:"slug"`
	CollectionName string                    `json:"collectionName"`
	FileName       string                    `json:"fileName,omitempty"` // file collections only
	Locales        map[string]LocalizedEntry `json:"locales"`
}

// LocalizedEntry is the content of an entry in one locale.
type LocalizedEntry struct {
	Path    string         `json:"path"`
	Content map[string]any `json:"content"`
}

// ContentPath is a content file discovered while loading.
type ContentPath struct {
	CollectionName string `json:"collectionName"`
	FileName       string `json:"fileName,omitempty"`
	Locale         string `json:"locale,omitempty"`
	Path           string `json:"path"`
}
