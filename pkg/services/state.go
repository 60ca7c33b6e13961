package services

import (
	"sync"

	"github.com/nkitsaini/sveltia-cms/pkg/models"
)

// State holds the loaded site configuration and content. It starts empty and
// is filled by SetSiteConfig and SetContent once loading has finished.
// Slices handed out by the getters must be treated as read-only.
type State struct {
	mu sync.RWMutex

	siteConfig         *models.CMSConfig
	dataLoaded         bool
	allContentPaths    []models.ContentPath
	allEntries         []*models.Entry
	selectedCollection *models.Collection
	selectedEntries    []*models.Entry

	// StrictKeyPaths makes GetFieldByKeyPath fail on the first unmatched segment.
	StrictKeyPaths bool
	// ScanConcurrency bounds concurrent URL resolutions in GetEntriesByAssetURL.
	ScanConcurrency int
}

func NewState(cfg *models.CMSConfig) *State {
	return &State{siteConfig: cfg}
}

func (s *State) SiteConfig() *models.CMSConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.siteConfig
}

func (s *State) SetSiteConfig(cfg *models.CMSConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.siteConfig = cfg
}

// SetContent publishes a finished load and marks the data as loaded.
func (s *State) SetContent(paths []models.ContentPath, entries []*models.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allContentPaths = paths
	s.allEntries = entries
	s.dataLoaded = true
}

func (s *State) DataLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataLoaded
}

func (s *State) AllContentPaths() []models.ContentPath {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.allContentPaths
}

func (s *State) AllEntries() []*models.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.allEntries
}

func (s *State) SelectedCollection() *models.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedCollection
}

func (s *State) SetSelectedCollection(c *models.Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedCollection = c
}

func (s *State) SelectedEntries() []*models.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedEntries
}

func (s *State) SetSelectedEntries(entries []*models.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedEntries = entries
}

// snapshot returns the config and entries under a single read lock.
func (s *State) snapshot() (*models.CMSConfig, []*models.Entry) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.siteConfig, s.allEntries
}
