package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/web3_voting/handler"
)

func SetupRouter(
	healthHandler *handler.HealthHandler,
	nonceHandler *handler.NonceHandler,
	projectHandler *handler.ProjectHandler,
	voteHandler *handler.VoteHandler,
) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	r.GET("/", healthHandler.Root)
	r.GET("/test", healthHandler.TestDatabase)

	api := r.Group("/api")
	{
		api.POST("/nonce", nonceHandler.IssueNonce)
		api.POST("/projects", projectHandler.CreateProject)
		api.GET("/projects", projectHandler.ListProjects)
		api.POST("/vote", voteHandler.CastVote)
		api.GET("/projects/:id/votes", voteHandler.ProjectVotes)
	}

	return r
}
