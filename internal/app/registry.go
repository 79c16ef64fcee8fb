package app

import (
	"database/sql"

	"workzen/internal/attendance"
	"workzen/internal/employee"
	"workzen/internal/leave"
	"workzen/internal/messaging/kafka"
	"workzen/internal/middleware"
	"workzen/internal/payrun"
	"workzen/internal/salarystructure"
	"workzen/internal/settings"
	"workzen/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrunRepo := payrun.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)
	structureRepo := salarystructure.NewRepository(gormDB)

	// --- Services ---
	attendanceService := attendance.NewService(db, attendanceRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb)
	leaveService := leave.NewService(db, leaveRepo)
	settingsService := settings.NewService(db, settingsRepo)
	structureService := salarystructure.NewService(db, structureRepo)
	payrunService := payrun.NewService(db, payrunRepo, outboxRepo, structureService)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandler(leaveService)
	payrunHandler := payrun.NewHandler(payrunService, rdb)
	settingsHandler := settings.NewHandler(settingsService)
	structureHandler := salarystructure.NewHandler(structureService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler)
		employee.RegisterRoutes(api, employeeHandler, logger)
		leave.RegisterRoutes(api, leaveHandler)
		payrun.RegisterRoutes(api, payrunHandler, rdb)
		salarystructure.RegisterRoutes(api, structureHandler)
		settings.RegisterRoutes(api, settingsHandler)
	}

	return nil
}
