package router

import (
	"github.com/gin-gonic/gin"

	"compass.app/intake/internal/http/handler"
	"compass.app/intake/internal/service"
)

type RouterConfig struct {
	Region string
	DB     handler.Pinger
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Region)
	router.GET("/api/health", healthHandler.Check)

	v1 := router.Group("/api/v1")
	{
		intakeHandler := handler.NewIntakeHandler(services.Intakes())
		IntakeRouter(v1, intakeHandler)
	}
}
