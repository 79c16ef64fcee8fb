package payrun

import (
	"workzen/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	payruns := r.Group("/payruns")
	payruns.Use(middleware.AuthMiddleware())
	{
		payruns.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RequireRoles("ADMIN", "HR"),
			handler.GetAll,
		)
		payruns.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RequireRoles("ADMIN", "HR"),
			handler.GetById,
		)
		payruns.GET("/:id/payslips",
			middleware.RateLimitByUser(2, 5),
			middleware.RequireRoles("ADMIN", "HR"),
			handler.GetPayslips,
		)
		payruns.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RequireRoles("ADMIN", "HR"),
			handler.Create,
		)
		payruns.POST("/:id/process",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RequireRoles("ADMIN", "HR"),
			middleware.Idempotency(rdb),
			handler.Process,
		)
		payruns.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RequireRoles("ADMIN"),
			handler.Delete,
		)
	}

	payslips := r.Group("/payslips")
	payslips.Use(middleware.AuthMiddleware())
	{
		payslips.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RequireRoles("ADMIN", "HR"),
			handler.GetPayslip,
		)
		payslips.POST("/:id/validate",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RequireRoles("ADMIN", "HR"),
			handler.ValidatePayslip,
		)
	}
}
