package main

import (
	"log"

	"github.com/web3_voting/config"
	"github.com/web3_voting/handler"
	"github.com/web3_voting/model"
	"github.com/web3_voting/repository"
	"github.com/web3_voting/router"
	"github.com/web3_voting/service"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// TranslateError maps driver duplicate-key errors to gorm.ErrDuplicatedKey,
	// which the vote repository relies on for the already-voted path.
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	nonceRepo := repository.NewNonceRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	projectRepo := repository.NewProjectRepository(db)

	nonceSvc := service.NewNonceService(nonceRepo)
	voteSvc := service.NewVoteService(nonceSvc, voteRepo)
	projectSvc := service.NewProjectService(projectRepo, voteRepo)

	r := router.SetupRouter(
		handler.NewHealthHandler(db),
		handler.NewNonceHandler(nonceSvc),
		handler.NewProjectHandler(projectSvc),
		handler.NewVoteHandler(voteSvc),
	)

	log.Println("Voting API running on :" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
