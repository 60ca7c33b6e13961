package services

import (
	"github.com/nkitsaini/sveltia-cms/pkg/models"
)

// GetCollection returns a copy of the named collection with its resolved i18n
// configuration. An unknown name yields a collection whose only populated
// attribute is ResolvedI18n; callers check Name before using it.
func (s *State) GetCollection(name string) *models.Collection {
	cfg := s.SiteConfig()
	col := findCollection(cfg, name)
	if col == nil {
		return &models.Collection{ResolvedI18n: ResolveI18n(cfg, nil)}
	}
	out := *col
	out.ResolvedI18n = ResolveI18n(cfg, col)
	return &out
}

// GetFile returns a file definition of a file collection, or nil.
func (s *State) GetFile(collectionName, fileName string) *models.CollectionFile {
	col := findCollection(s.SiteConfig(), collectionName)
	if col == nil {
		return nil
	}
	return findFile(col, fileName)
}

func findCollection(cfg *models.CMSConfig, name string) *models.Collection {
	if cfg == nil {
		return nil
	}
	for i := range cfg.Collections {
		if cfg.Collections[i].Name == name {
			return &cfg.Collections[i]
		}
	}
	return nil
}

func findFile(col *models.Collection, fileName string) *models.CollectionFile {
	for i := range col.Files {
		if col.Files[i].Name == fileName {
			return &col.Files[i]
		}
	}
	return nil
}
