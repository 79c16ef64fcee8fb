package settings

import (
	"workzen/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	group := r.Group("/payroll-settings")
	group.Use(middleware.AuthMiddleware())
	{
		group.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RequireRoles("ADMIN", "HR"),
			handler.Get,
		)
		group.PUT("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RequireRoles("ADMIN"),
			handler.Upsert,
		)
	}
}
