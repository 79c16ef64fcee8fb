package salarystructure

import (
	"workzen/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	structures := r.Group("/salary-structures")
	structures.Use(middleware.AuthMiddleware())
	{
		structures.GET("",
			middleware.RateLimitByUser(1, 5),
			middleware.RequireRoles("ADMIN", "HR"),
			handler.GetAll,
		)
		structures.GET("/resolve",
			middleware.RateLimitByUser(2, 5),
			middleware.RequireRoles("ADMIN", "HR"),
			handler.Resolve,
		)
		structures.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RequireRoles("ADMIN", "HR"),
			handler.GetById,
		)
		structures.POST("",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RequireRoles("ADMIN", "HR"),
			handler.Create,
		)
		structures.POST("/preview",
			middleware.RateLimitByUser(5, 10),
			middleware.RequireRoles("ADMIN", "HR"),
			handler.Preview,
		)
	}
}
