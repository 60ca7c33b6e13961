package services

import (
	"context"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/nkitsaini/sveltia-cms/pkg/models"
)

// MediaURLResolver turns a stored media field value into the URL it points to.
// An empty URL means the value references nothing. Implementations may do I/O
// and are called concurrently.
type MediaURLResolver interface {
	ResolveURL(ctx context.Context, value any, entry *models.Entry) (string, error)
}

// ResolverFunc adapts a function to MediaURLResolver.
type ResolverFunc func(ctx context.Context, value any, entry *models.Entry) (string, error)

func (f ResolverFunc) ResolveURL(ctx context.Context, value any, entry *models.Entry) (string, error) {
	return f(ctx, value, entry)
}

// DefaultScanConcurrency bounds GetEntriesByAssetURL when ScanConcurrency is unset.
const DefaultScanConcurrency = 20

// assetCandidate is one media field value that may reference the asset.
type assetCandidate struct {
	entry int
	value any
}

// GetEntriesByAssetURL returns the entries that contain a media field whose
// resolved URL equals assetURL, in load order and without duplicates.
// Resolution failures count as non-matches. The only error returned is the
// context's.
func (s *State) GetEntriesByAssetURL(ctx context.Context, assetURL string, resolver MediaURLResolver) ([]*models.Entry, error) {
	cfg, entries := s.snapshot()
	siteURL := ""
	if cfg != nil {
		siteURL = cfg.SiteURL
	}
	target := trimSiteURL(assetURL, siteURL)
	if target == "" || target == "/" {
		return []*models.Entry{}, ctx.Err()
	}

	candidates := s.collectAssetCandidates(cfg, entries)
	matched := make([]bool, len(candidates))

	limit := s.ScanConcurrency
	if limit <= 0 {
		limit = DefaultScanConcurrency
	}
	var g errgroup.Group
	g.SetLimit(limit)
	for i, c := range candidates {
		if ctx.Err() != nil {
			break
		}
		i, c := i, c
		g.Go(func() error {
			url, err := resolver.ResolveURL(ctx, c.value, entries[c.entry])
			if err != nil {
				log.Printf("asset scan: resolve %v for entry %s: %v", c.value, entries[c.entry].ID, err)
				return nil
			}
			matched[i] = url != "" && trimSiteURL(url, siteURL) == target
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hit := make([]bool, len(entries))
	for i, ok := range matched {
		if ok {
			hit[candidates[i].entry] = true
		}
	}
	out := []*models.Entry{}
	for i, entry := range entries {
		if hit[i] {
			out = append(out, entry)
		}
	}
	return out, nil
}

// collectAssetCandidates flattens every locale of every entry and keeps the
// values governed by a media field.
func (s *State) collectAssetCandidates(cfg *models.CMSConfig, entries []*models.Entry) []assetCandidate {
	opts := FieldPathOptions{Strict: s.StrictKeyPaths}
	var candidates []assetCandidate
	for i, entry := range entries {
		fields := entryFields(cfg, entry)
		if fields == nil {
			continue
		}
		for _, localized := range entry.Locales {
			valueMap := Flatten(localized.Content)
			for keyPath, value := range valueMap {
				field := ResolveFieldPath(fields, keyPath, valueMap, opts)
				if field == nil || !field.IsMedia() {
					continue
				}
				candidates = append(candidates, assetCandidate{entry: i, value: value})
			}
		}
	}
	return candidates
}

// entryFields returns the schema an entry is stored with, or nil when its
// collection or file is no longer configured.
func entryFields(cfg *models.CMSConfig, entry *models.Entry) []models.Field {
	col := findCollection(cfg, entry.CollectionName)
	if col == nil || CheckFileScope(col, entry.FileName) != nil {
		return nil
	}
	if entry.FileName == "" {
		return col.Fields
	}
	if file := findFile(col, entry.FileName); file != nil {
		return file.Fields
	}
	return nil
}

func trimSiteURL(url, siteURL string) string {
	siteURL = strings.TrimSuffix(siteURL, "/")
	if siteURL == "" {
		return url
	}
	return strings.TrimPrefix(url, siteURL)
}
