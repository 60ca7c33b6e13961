package main

import (
	"context"
	"log"

	"github.com/nkitsaini/sveltia-cms/pkg/config"
	"github.com/nkitsaini/sveltia-cms/pkg/handlers"
	"github.com/nkitsaini/sveltia-cms/pkg/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize config
	config.Init()

	state := services.NewState(nil)
	state.StrictKeyPaths = config.StrictKeyPaths
	state.ScanConcurrency = config.ScanConcurrency

	ctx, cancel := context.WithTimeout(context.Background(), config.ScanTimeout)
	if err := state.Reload(ctx, config.RepoPath, config.SiteConfigPath, config.ScanConcurrency); err != nil {
		log.Printf("initial load failed: %v", err)
	}
	cancel()

	resolver, err := services.NewCachedResolver(&services.PublicFolderResolver{State: state}, config.MediaURLCacheSize)
	if err != nil {
		log.Fatalf("media url cache: %v", err)
	}
	api := &handlers.API{State: state, Resolver: resolver}

	r := gin.Default()

	// Session Setup
	store := cookie.NewStore([]byte(config.SessionSecret))
	r.Use(sessions.Sessions("cmssession", store))

	// --- Auth Routes ---
	r.GET("/login/github", handlers.GithubLogin)
	r.GET("/auth/callback", handlers.AuthCallback)
	r.GET("/logout", handlers.Logout)

	// --- API (Authorized) ---
	authorized := r.Group("/api")
	authorized.Use(handlers.AuthRequired)
	api.Register(authorized)

	if err := r.Run(":" + config.Port); err != nil {
		log.Fatal(err)
	}
}
