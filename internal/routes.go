package internal

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.Engine, config *Config, incidentService *IncidentService, slackService *SlackService) {
	router.GET("/health", HealthHandler(slackService))
	router.POST("/incident", IncidentCommandHandler(config, incidentService))
	router.POST("/interaction", InteractionHandler(config, incidentService))
}
