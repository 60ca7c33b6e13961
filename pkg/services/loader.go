package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/nkitsaini/sveltia-cms/pkg/models"
)

// LoadSiteConfig reads the CMS configuration file.
func LoadSiteConfig(configPath string) (*models.CMSConfig, error) {
	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read site config: %w", err)
	}

	var cfg models.CMSConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("parse site config %s: %w", configPath, err)
	}
	return &cfg, nil
}

// contentFile is one file to load, with the entry it belongs to.
type contentFile struct {
	models.ContentPath
	slug       string
	singleFile []string // locales stored as top-level keys of this file
}

// LoadContent reads every entry of every collection in cfg from repoPath.
// Files that cannot be parsed are logged and skipped.
func LoadContent(ctx context.Context, repoPath string, cfg *models.CMSConfig, concurrency int) ([]models.ContentPath, []*models.Entry, error) {
	var files []contentFile
	for i := range cfg.Collections {
		col := &cfg.Collections[i]
		found, err := discoverCollection(repoPath, col, ResolveI18n(cfg, col))
		if err != nil {
			return nil, nil, fmt.Errorf("collection %s: %w", col.Name, err)
		}
		files = append(files, found...)
	}

	contents := make([]map[string]any, len(files))
	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := os.ReadFile(filepath.Join(repoPath, filepath.FromSlash(f.Path)))
			if err != nil {
				log.Printf("load content: %s: %v", f.Path, err)
				return nil
			}
			content, err := ParseContentFile(raw, path.Ext(f.Path))
			if err != nil {
				log.Printf("load content: %s: %v", f.Path, err)
				return nil
			}
			contents[i] = content
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	paths := make([]models.ContentPath, 0, len(files))
	entries := []*models.Entry{}
	byID := map[string]*models.Entry{}
	for i, f := range files {
		if contents[i] == nil {
			continue
		}
		paths = append(paths, f.ContentPath)

		id := f.CollectionName + "/" + f.slug
		entry, ok := byID[id]
		if !ok {
			entry = &models.Entry{
				ID:             id,
				Slug:           f.slug,
				CollectionName: f.CollectionName,
				FileName:       f.FileName,
				Locales:        map[string]models.LocalizedEntry{},
			}
			byID[id] = entry
			entries = append(entries, entry)
		}

		if f.singleFile != nil {
			for _, locale := range f.singleFile {
				if localized, ok := contents[i][locale].(map[string]any); ok {
					entry.Locales[locale] = models.LocalizedEntry{Path: f.Path, Content: localized}
				}
			}
			continue
		}
		entry.Locales[f.Locale] = models.LocalizedEntry{Path: f.Path, Content: contents[i]}
	}
	return paths, entries, nil
}

func discoverCollection(repoPath string, col *models.Collection, i18n models.I18nConfig) ([]contentFile, error) {
	if col.IsFileCollection() {
		var files []contentFile
		for _, file := range col.Files {
			files = append(files, localizedFiles(col.Name, file.Name, file.Name, filepath.ToSlash(file.File), i18n)...)
		}
		return files, nil
	}
	if col.Folder == "" {
		return nil, nil
	}

	ext := col.Extension
	if ext == "" {
		ext = "md"
	}
	folder := strings.TrimSuffix(filepath.ToSlash(col.Folder), "/")
	root := filepath.Join(repoPath, filepath.FromSlash(folder))

	var files []contentFile
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), "."+ext) {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if f, ok := folderFile(col.Name, folder, rel, ext, i18n); ok {
			files = append(files, f)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("load content: folder %s of collection %s does not exist", folder, col.Name)
		return nil, nil
	}
	return files, err
}

// folderFile maps a file inside a folder collection to its entry slug and locale.
func folderFile(collectionName, folder, rel, ext string, i18n models.I18nConfig) (contentFile, bool) {
	f := contentFile{ContentPath: models.ContentPath{
		CollectionName: collectionName,
		Locale:         models.DefaultLocaleKey,
		Path:           folder + "/" + rel,
	}}
	stem := strings.TrimSuffix(rel, "."+ext)

	if !i18n.HasLocales {
		f.slug = stem
		return f, true
	}

	switch i18n.Structure {
	case models.MultipleFiles:
		dot := strings.LastIndex(stem, ".")
		if dot < 0 || !slices.Contains(i18n.Locales, stem[dot+1:]) {
			return f, false
		}
		f.slug, f.Locale = stem[:dot], stem[dot+1:]
	case models.MultipleFolders:
		locale, slug, ok := strings.Cut(stem, "/")
		if !ok || !slices.Contains(i18n.Locales, locale) {
			return f, false
		}
		f.slug, f.Locale = slug, locale
	default:
		f.slug, f.Locale = stem, ""
		f.singleFile = i18n.Locales
	}
	return f, true
}

// localizedFiles expands one file of a file collection into a file per locale.
func localizedFiles(collectionName, fileName, slug, file string, i18n models.I18nConfig) []contentFile {
	base := contentFile{
		ContentPath: models.ContentPath{
			CollectionName: collectionName,
			FileName:       fileName,
			Locale:         models.DefaultLocaleKey,
			Path:           file,
		},
		slug: slug,
	}
	if !i18n.HasLocales {
		return []contentFile{base}
	}

	ext := path.Ext(file)
	dir, name := path.Split(strings.TrimSuffix(file, ext))
	var files []contentFile
	switch i18n.Structure {
	case models.MultipleFiles:
		for _, locale := range i18n.Locales {
			f := base
			f.Locale = locale
			f.Path = dir + name + "." + locale + ext
			files = append(files, f)
		}
	case models.MultipleFolders:
		for _, locale := range i18n.Locales {
			f := base
			f.Locale = locale
			f.Path = dir + locale + "/" + name + ext
			files = append(files, f)
		}
	default:
		base.Locale = ""
		base.singleFile = i18n.Locales
		files = append(files, base)
	}
	return files
}

// Reload loads the site config and content from repoPath and publishes them.
func (s *State) Reload(ctx context.Context, repoPath, configPath string, concurrency int) error {
	cfg, err := LoadSiteConfig(filepath.Join(repoPath, configPath))
	if err != nil {
		return err
	}
	paths, entries, err := LoadContent(ctx, repoPath, cfg, concurrency)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.siteConfig = cfg
	s.allContentPaths = paths
	s.allEntries = entries
	s.dataLoaded = true
	s.mu.Unlock()
	log.Printf("loaded %d entries from %d files in %d collections", len(entries), len(paths), len(cfg.Collections))
	return nil
}
