package handlers

import (
	"net/http"
	"strings"

	"github.com/nkitsaini/sveltia-cms/pkg/config"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

const sessionTokenKey = "access_token"

func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	if _, ok := session.Get(sessionTokenKey).(string); !ok {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		} else {
			c.Redirect(http.StatusFound, "/login/github")
			c.Abort()
		}
		return
	}
	c.Next()
}

func GithubLogin(c *gin.Context) {
	url := config.OauthConf.AuthCodeURL("state", oauth2.AccessTypeOffline)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

func AuthCallback(c *gin.Context) {
	code := c.Query("code")
	token, err := config.OauthConf.Exchange(c.Request.Context(), code)
	if err != nil {
		c.String(http.StatusInternalServerError, "OAuth Exchange Failed")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionTokenKey, token.AccessToken)
	if err := session.Save(); err != nil {
		c.String(http.StatusInternalServerError, "Failed to save session")
		return
	}

	c.Redirect(http.StatusFound, "/api/status")
}

func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

func sessionToken(c *gin.Context) string {
	token, _ := sessions.Default(c).Get(sessionTokenKey).(string)
	return token
}
