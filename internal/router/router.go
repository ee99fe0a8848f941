package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/tguillot/plume/internal/auth"
	"github.com/tguillot/plume/internal/config"
	"github.com/tguillot/plume/internal/like"
	"github.com/tguillot/plume/internal/middleware"
	"github.com/tguillot/plume/internal/post"
)

// New builds the gin engine: session store, templates and the route table.
func New(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   86400 * 14,
	})
	r.Use(sessions.Sessions("plume_session", store))

	r.LoadHTMLGlob(cfg.TemplateGlob)

	r.GET("/", post.Home)

	guest := r.Group("/", middleware.RedirectIfAuthenticated())
	guest.GET("/register", auth.ShowRegister)
	guest.POST("/register", auth.Register)
	guest.GET("/login", auth.ShowLogin)
	guest.POST("/login", auth.Login)

	private := r.Group("/", middleware.RequireAuth())
	private.GET("/logout", auth.Logout)
	private.GET("/create", post.ShowCreate)
	private.POST("/create", post.Create)
	private.GET("/post/:id", post.Detail)
	private.POST("/post/:id", post.AddComment)
	private.GET("/like/:id", like.TogglePostLike)
	private.POST("/like_comment/:id", like.ToggleCommentLike)
	private.POST("/delete_comment/:id", post.DeleteComment)
	private.POST("/delete_post/:id", post.DeletePost)

	return r
}
