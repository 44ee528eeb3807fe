package router

import (
	"github.com/gin-gonic/gin"

	"compass.app/intake/internal/http/handler"
)

func IntakeRouter(rg *gin.RouterGroup, h *handler.IntakeHandler) {
	rg.GET("/intake/services", h.ListServices)
	rg.POST("/intake/submit", h.Submit)
	rg.GET("/intakes", h.List)
	rg.GET("/intake/:referenceNumber", h.GetByReference)
	rg.POST("/intake/draft", h.SaveDraft)
	rg.GET("/intake/draft/:sessionId", h.GetDraft)
	rg.DELETE("/intake/draft/:sessionId", h.DeleteDraft)
}
