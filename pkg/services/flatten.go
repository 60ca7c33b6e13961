package services

import (
	"strconv"
	"strings"

	"github.com/nkitsaini/sveltia-cms/pkg/models"
)

// Flatten turns nested content into a map of dot-joined key paths to leaf
// values. List items use their index as a segment ("authors.0.name"). Empty
// maps and lists are kept as leaves.
func Flatten(content map[string]any) map[string]any {
	out := make(map[string]any)
	for k, v := range content {
		flattenValue(out, k, v)
	}
	return out
}

func flattenValue(out map[string]any, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		if len(v) == 0 {
			out[prefix] = v
			return
		}
		for k, inner := range v {
			flattenValue(out, prefix+"."+k, inner)
		}
	case []any:
		if len(v) == 0 {
			out[prefix] = v
			return
		}
		for i, inner := range v {
			flattenValue(out, prefix+"."+strconv.Itoa(i), inner)
		}
	default:
		out[prefix] = v
	}
}

// GetPropertyValue reads a (possibly dotted) field of an entry in one locale.
// "slug" falls back to the entry slug when the content has no such field.
func GetPropertyValue(entry *models.Entry, locale, key string) any {
	localized, ok := entry.Locales[locale]
	if !ok {
		return nil
	}
	if v, ok := localized.Content[key]; ok {
		return v
	}
	if strings.Contains(key, ".") {
		if v, ok := Flatten(localized.Content)[key]; ok {
			return v
		}
	}
	if key == "slug" {
		return entry.Slug
	}
	return nil
}
