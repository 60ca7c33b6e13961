package services

import (
	"reflect"

	"github.com/nkitsaini/sveltia-cms/pkg/models"
)

// GetEntriesByCollection returns the loaded entries of a collection in load
// order. When the collection declares a filter, only entries whose
// default-locale value at the filter field equals the filter value are kept.
func (s *State) GetEntriesByCollection(collectionName string) []*models.Entry {
	col := s.GetCollection(collectionName)
	if col.Name == "" {
		return []*models.Entry{}
	}

	locale := ContentLocale(col, "")

	out := []*models.Entry{}
	for _, entry := range s.AllEntries() {
		if entry.CollectionName != collectionName {
			continue
		}
		if col.Filter != nil && !valuesEqual(GetPropertyValue(entry, locale, col.Filter.Field), col.Filter.Value) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// ContentLocale returns the locale key to read entry content of col under:
// requested when set, else the resolved default locale, else "default".
func ContentLocale(col *models.Collection, requested string) string {
	if requested != "" {
		return requested
	}
	if col != nil && col.ResolvedI18n.DefaultLocale != "" {
		return col.ResolvedI18n.DefaultLocale
	}
	return models.DefaultLocaleKey
}

// valuesEqual compares front matter values, treating numbers of different
// decoded types (int, int64, float64) as equal when their values are.
func valuesEqual(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// GetEntry returns the loaded entry with the given ID, or nil.
func (s *State) GetEntry(id string) *models.Entry {
	for _, entry := range s.AllEntries() {
		if entry.ID == id {
			return entry
		}
	}
	return nil
}
