package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/tguillot/plume/internal/config"
	"github.com/tguillot/plume/internal/database"
	"github.com/tguillot/plume/internal/like"
	"github.com/tguillot/plume/internal/logs"
	"github.com/tguillot/plume/internal/post"
	"github.com/tguillot/plume/internal/router"
	"github.com/tguillot/plume/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadConfig()

	if err := database.Connect(cfg.DatabaseURL, cfg.SQLitePath); err != nil {
		logs.LogJSON("FATAL", "Database connection failed", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Create the schema if absent. No migration tooling beyond this.
	if err := database.Migrate(
		&user.User{},
		&post.Post{},
		&post.Comment{},
		&like.PostLike{},
		&like.CommentLike{},
	); err != nil {
		logs.LogJSON("FATAL", "Migration failed", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	r := router.New(cfg)
	logs.LogJSON("INFO", "App running", map[string]interface{}{"addr": cfg.Addr})
	if err := r.Run(cfg.Addr); err != nil {
		logs.LogJSON("FATAL", "Server stopped", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}
}
