package attendance

import (
	"workzen/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.GET("", middleware.RateLimitByUser(2, 5), h.GetAll)
		attendances.POST("/clock-in", middleware.RateLimitByUser(1, 3), h.ClockIn)
		attendances.POST("/clock-out", middleware.RateLimitByUser(1, 3), h.ClockOut)
	}
}
