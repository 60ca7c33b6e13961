package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

var (
	RepoPath       = "./repo"
	SiteConfigPath = "static/admin/config.yml"
	Port           = "8080"

	// Scan settings
	ScanConcurrency   = 20
	ScanTimeout       = 30 * time.Second
	MediaURLCacheSize = 1024

	// Key path resolution fails fast on the first unmatched segment when set.
	StrictKeyPaths = false

	// Git settings
	GitBranch = "main"
	GitRemote = "origin"

	SessionSecret = ""
)

var OauthConf *oauth2.Config

// Helper to get env with default
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it.")
	}

	appURL := GetAppURL()
	redirectURL := getEnv("GITHUB_REDIRECT_URL", appURL+"/auth/callback")

	RepoPath = getEnv("REPO_PATH", "./repo")
	SiteConfigPath = getEnv("SITE_CONFIG_PATH", "static/admin/config.yml")
	Port = getEnv("PORT", "8080")

	GitBranch = getEnv("GIT_BRANCH", "main")
	GitRemote = getEnv("GIT_REMOTE", "origin")
	SessionSecret = os.Getenv("SESSION_SECRET")

	if v := os.Getenv("SCAN_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ScanConcurrency = n
		}
	}
	if v := os.Getenv("SCAN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			ScanTimeout = d
		}
	}
	if v := os.Getenv("MEDIA_URL_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			MediaURLCacheSize = n
		}
	}
	if v := os.Getenv("STRICT_KEY_PATHS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			StrictKeyPaths = b
		}
	}

	OauthConf = &oauth2.Config{
		ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		Scopes:       []string{"repo"},
		Endpoint:     github.Endpoint,
		RedirectURL:  redirectURL,
	}
}

func GetAppURL() string {
	return getEnv("APP_URL", "http://localhost:"+getEnv("PORT", "8080"))
}
