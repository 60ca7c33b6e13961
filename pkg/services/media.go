package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nkitsaini/sveltia-cms/pkg/models"
)

var ErrNoMediaFolder = errors.New("media_folder not configured")

type MediaFile struct {
	Name string `json:"name"`
	Path string `json:"path"` // Repo-relative path of the file
	Size int64  `json:"size"`
	URL  string `json:"url"` // Public URL used in content

	// Entries lists the IDs of entries referencing URL, when requested.
	Entries []string `json:"entries,omitempty"`
}

// GetMediaConfig returns the media and public folders of a collection,
// falling back to the site-wide settings.
func GetMediaConfig(cfg *models.CMSConfig, collectionName string) (string, string, error) {
	if cfg == nil {
		return "", "", ErrNoMediaFolder
	}

	// Check collection override
	if col := findCollection(cfg, collectionName); col != nil && col.MediaFolder != "" {
		return col.MediaFolder, col.PublicFolder, nil
	}

	if cfg.MediaFolder == "" {
		return "", "", ErrNoMediaFolder
	}
	return cfg.MediaFolder, cfg.PublicFolder, nil
}

// publicPath builds the URL under which a file stored in mediaFolder is served.
func publicPath(mediaFolder, publicFolder, name string) string {
	usagePath := ""
	if publicFolder != "" {
		usagePath = path.Join(publicFolder, name)
	} else {
		cleaned := filepath.ToSlash(mediaFolder)
		if strings.HasPrefix(cleaned, "static/") {
			usagePath = "/" + strings.TrimPrefix(cleaned, "static/") + "/" + name
		} else if strings.HasPrefix(cleaned, "content/") {
			// Page bundle resources are referenced by bare name.
			usagePath = name
		} else {
			usagePath = "/" + cleaned + "/" + name
		}
	}
	if !strings.HasPrefix(usagePath, "/") {
		usagePath = "/" + usagePath
	}
	return strings.ReplaceAll(usagePath, "//", "/")
}

func ListMediaFiles(repoPath string, cfg *models.CMSConfig, collectionName string) ([]MediaFile, error) {
	mediaFolder, publicFolder, err := GetMediaConfig(cfg, collectionName)
	if err != nil {
		return nil, err
	}

	fullMediaPath := filepath.Join(repoPath, mediaFolder)
	entries, err := os.ReadDir(fullMediaPath)
	if errors.Is(err, os.ErrNotExist) {
		return []MediaFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read media folder: %w", err)
	}

	files := []MediaFile{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, MediaFile{
			Name: entry.Name(),
			Path: filepath.ToSlash(filepath.Join(mediaFolder, entry.Name())),
			Size: info.Size(),
			URL:  publicPath(mediaFolder, publicFolder, entry.Name()),
		})
	}
	return files, nil
}

// PublicFolderResolver resolves media values the way the site serves them:
// absolute URLs and root-relative paths are used as is, bare file names are
// placed under the public folder of the entry's collection.
type PublicFolderResolver struct {
	State *State
}

func (r *PublicFolderResolver) ResolveURL(_ context.Context, value any, entry *models.Entry) (string, error) {
	str, ok := value.(string)
	if !ok || str == "" {
		return "", nil
	}
	if isAbsoluteURL(str) || strings.HasPrefix(str, "/") {
		return str, nil
	}
	mediaFolder, publicFolder, err := GetMediaConfig(r.State.SiteConfig(), entry.CollectionName)
	if err != nil {
		return "", err
	}
	return publicPath(mediaFolder, publicFolder, str), nil
}

func isAbsoluteURL(s string) bool {
	for _, prefix := range []string{"http://", "https://", "//", "data:", "blob:"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// CachedResolver memoizes successful resolutions of another resolver.
type CachedResolver struct {
	next  MediaURLResolver
	cache *lru.Cache[string, string]
}

func NewCachedResolver(next MediaURLResolver, size int) (*CachedResolver, error) {
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &CachedResolver{next: next, cache: cache}, nil
}

func (r *CachedResolver) ResolveURL(ctx context.Context, value any, entry *models.Entry) (string, error) {
	key := entry.ID + "\x00" + fmt.Sprint(value)
	if url, ok := r.cache.Get(key); ok {
		return url, nil
	}
	url, err := r.next.ResolveURL(ctx, value, entry)
	if err != nil {
		return "", err
	}
	r.cache.Add(key, url)
	return url, nil
}

// Purge drops all memoized URLs, e.g. after content is reloaded.
func (r *CachedResolver) Purge() {
	r.cache.Purge()
}
