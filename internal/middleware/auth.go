package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tguillot/plume/internal/logs"
	"github.com/tguillot/plume/internal/session"
	"github.com/tguillot/plume/internal/user"
)

// RequireAuth resolves the session to a User record and redirects anonymous
// requests to the login page. Handlers behind it can read "user_id" and
// "username" from the request context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := session.UserID(c)
		if !ok {
			loginRedirect(c)
			return
		}

		u, err := user.FindByID(id)
		if err != nil {
			logs.LogJSON("ERROR", "User lookup failed", map[string]interface{}{
				"error":   err.Error(),
				"route":   c.FullPath(),
				"user_id": id,
			})
			c.HTML(http.StatusInternalServerError, "500.html", nil)
			c.Abort()
			return
		}
		if u == nil {
			// Stale cookie pointing at a user that no longer exists.
			_ = session.ClearUser(c)
			loginRedirect(c)
			return
		}

		c.Set("user_id", u.ID)
		c.Set("username", u.Username)
		c.Next()
	}
}

func loginRedirect(c *gin.Context) {
	session.Flash(c, "danger", "Please log in to access this page.")
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
	logs.LogJSON("WARN", "Unauthenticated user", map[string]interface{}{
		"route": c.FullPath(),
	})
}

// RedirectIfAuthenticated sends logged-in users away from the register and
// login forms, back to the home page.
func RedirectIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := session.UserID(c); ok {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
