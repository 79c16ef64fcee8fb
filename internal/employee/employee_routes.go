package employee

import (
	"workzen/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	logger *zap.Logger,
) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RequireRoles("ADMIN", "HR", "MANAGER"),
			handler.GetAll,
		)

		employees.GET("/options",
			middleware.RateLimitByUser(5, 20),
			middleware.RequireRoles("ADMIN", "HR", "MANAGER"),
			handler.GetOptions,
		)

		employees.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RequireRoles("ADMIN", "HR", "MANAGER"),
			handler.GetById,
		)

		employees.POST("",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RequireRoles("ADMIN", "HR"),
			handler.Create,
		)

		employees.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RequireRoles("ADMIN", "HR"),
			handler.Update,
		)

		employees.POST("/:id/terminate",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RequireRoles("ADMIN", "HR"),
			handler.Terminate,
		)
	}
}
