package leave

import (
	"workzen/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", middleware.RateLimitByUser(2, 5), handler.GetAll)
		leaves.GET("/:id", middleware.RateLimitByUser(2, 5), handler.GetById)
		leaves.POST("", middleware.RateLimitByUser(1, 3), handler.Create)
		leaves.POST("/:id/submit", middleware.RateLimitByUser(1, 3), handler.Submit)
		leaves.POST("/:id/approve",
			middleware.RateLimitByUser(1, 3),
			middleware.RequireRoles("ADMIN", "HR", "MANAGER"),
			handler.Approve,
		)
		leaves.POST("/:id/reject",
			middleware.RateLimitByUser(1, 3),
			middleware.RequireRoles("ADMIN", "HR", "MANAGER"),
			handler.Reject,
		)
		leaves.POST("/:id/cancel", middleware.RateLimitByUser(1, 3), handler.Cancel)
		leaves.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RequireRoles("ADMIN", "HR"),
			handler.Delete,
		)
	}
}
