package routes

import (
	"github.com/akazakov/polls-api/internal/handlers"
	"github.com/gin-gonic/gin"
)

func RegisterPublicRoutes(rg *gin.RouterGroup, authHandler *handlers.AuthHandler, pollsHandler *handlers.PollsHandler) {
	{
		rg.POST("/register", authHandler.Register)
		rg.POST("/login", authHandler.Login)

		rg.GET("/polls", pollsHandler.GetPolls)
		rg.GET("/polls/:id", pollsHandler.GetPollByID)
		rg.GET("/polls/:id/results", pollsHandler.GetResults)
	}
}

func RegisterPrivateRoutes(rg *gin.RouterGroup, pollsHandler *handlers.PollsHandler) {
	{
		rg.POST("/polls", pollsHandler.CreatePoll)
		rg.DELETE("/polls/:id", pollsHandler.DeletePoll)

		rg.POST("/polls/:id/vote", pollsHandler.CastVote)
	}
}
