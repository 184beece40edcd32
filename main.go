package main

import (
	"github.com/conduit-dev/conduit/config"
	"github.com/conduit-dev/conduit/models"
	"github.com/conduit-dev/conduit/routes"
	"github.com/conduit-dev/conduit/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Article{},
		&models.Tag{},
		&models.ArticleTag{},
		&models.Comment{},
		&models.ArticleComment{},
		&models.Follow{},
		&models.Favorite{},
	)

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
