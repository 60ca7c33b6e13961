package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/nkitsaini/sveltia-cms/pkg/config"
	"github.com/nkitsaini/sveltia-cms/pkg/services"

	"github.com/gin-gonic/gin"
)

// API serves the loaded schema and content.
type API struct {
	State    *services.State
	Resolver services.MediaURLResolver
}

func (a *API) Register(r gin.IRouter) {
	r.GET("/status", a.Status)
	r.GET("/config", a.GetConfig)
	r.POST("/reload", a.HandleReload)
	r.POST("/sync", a.HandleSync)

	loaded := r.Group("/", a.RequireData)
	{
		loaded.GET("/collections/:name", a.GetCollection)
		loaded.GET("/collections/:name/files/:file", a.GetFile)
		loaded.GET("/collections/:name/entries", a.ListEntries)
		loaded.GET("/collections/:name/field", a.GetField)
		loaded.GET("/assets/references", a.AssetReferences)
		loaded.GET("/media", a.ListMedia)
	}
}

// RequireData rejects requests until content has been loaded.
func (a *API) RequireData(c *gin.Context) {
	if !a.State.DataLoaded() {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Content not loaded"})
		return
	}
	c.Next()
}

func (a *API) Status(c *gin.Context) {
	selected := ""
	if col := a.State.SelectedCollection(); col != nil {
		selected = col.Name
	}
	c.JSON(http.StatusOK, gin.H{
		"dataLoaded":         a.State.DataLoaded(),
		"entries":            len(a.State.AllEntries()),
		"contentPaths":       len(a.State.AllContentPaths()),
		"selectedCollection": selected,
		"selectedEntries":    len(a.State.SelectedEntries()),
	})
}

func (a *API) GetConfig(c *gin.Context) {
	cfg := a.State.SiteConfig()
	if cfg == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Config not loaded"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (a *API) HandleReload(c *gin.Context) {
	if err := a.State.Reload(c.Request.Context(), config.RepoPath, config.SiteConfigPath, config.ScanConcurrency); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
		return
	}
	a.purgeResolver()
	c.JSON(http.StatusOK, gin.H{"status": "ok", "entries": len(a.State.AllEntries())})
}

func (a *API) HandleSync(c *gin.Context) {
	token := sessionToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	log, err := a.State.SyncRepo(c.Request.Context(), config.RepoPath, config.SiteConfigPath, config.GitRemote, config.GitBranch, token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "log": log})
		return
	}
	a.purgeResolver()
	c.JSON(http.StatusOK, gin.H{"status": "ok", "log": log})
}

func (a *API) purgeResolver() {
	if cached, ok := a.Resolver.(*services.CachedResolver); ok {
		cached.Purge()
	}
}

func (a *API) GetCollection(c *gin.Context) {
	col := a.State.GetCollection(c.Param("name"))
	if col.Name == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
		return
	}
	c.JSON(http.StatusOK, col)
}

func (a *API) GetFile(c *gin.Context) {
	file := a.State.GetFile(c.Param("name"), c.Param("file"))
	if file == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	c.JSON(http.StatusOK, file)
}

func (a *API) ListEntries(c *gin.Context) {
	col := a.State.GetCollection(c.Param("name"))
	if col.Name == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
		return
	}
	entries := a.State.GetEntriesByCollection(col.Name)
	a.State.SetSelectedCollection(col)
	a.State.SetSelectedEntries(entries)
	c.JSON(http.StatusOK, entries)
}

// GetField resolves ?path= against the collection schema. The optional
// ?entry= and ?locale= pick the content used to select variant types.
func (a *API) GetField(c *gin.Context) {
	keyPath := c.Query("path")
	if keyPath == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing path"})
		return
	}
	col := a.State.GetCollection(c.Param("name"))
	if col.Name == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
		return
	}
	fileName := c.Query("file")
	if err := services.CheckFileScope(col, fileName); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	valueMap := map[string]any{}
	if id := c.Query("entry"); id != "" {
		entry := a.State.GetEntry(id)
		if entry == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		valueMap = services.Flatten(entry.Locales[services.ContentLocale(col, c.Query("locale"))].Content)
	}

	field := a.State.GetFieldByKeyPath(col.Name, fileName, keyPath, valueMap)
	if field == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Field not found"})
		return
	}
	c.JSON(http.StatusOK, field)
}

func (a *API) AssetReferences(c *gin.Context) {
	assetURL := c.Query("url")
	if assetURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing url"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), config.ScanTimeout)
	defer cancel()

	entries, err := a.State.GetEntriesByAssetURL(ctx, assetURL, a.Resolver)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// ListMedia lists the media folder; ?with_refs=1 adds referencing entry IDs.
func (a *API) ListMedia(c *gin.Context) {
	files, err := services.ListMediaFiles(config.RepoPath, a.State.SiteConfig(), c.Query("collection"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrNoMediaFolder) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "Failed to list media: " + err.Error()})
		return
	}

	if c.Query("with_refs") != "" {
		ctx, cancel := context.WithTimeout(c.Request.Context(), config.ScanTimeout)
		defer cancel()
		for i := range files {
			entries, err := a.State.GetEntriesByAssetURL(ctx, files[i].URL, a.Resolver)
			if err != nil {
				c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error()})
				return
			}
			files[i].Entries = make([]string, 0, len(entries))
			for _, e := range entries {
				files[i].Entries = append(files[i].Entries, e.ID)
			}
		}
	}
	c.JSON(http.StatusOK, files)
}
