package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/pkg/config"
	"gearguard/pkg/middleware"
	"gearguard/pkg/service"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	logger.Info("InitRouter: Начало создания маршрутов")

	// --- 0. ОБЩИЕ КОМПОНЕНТЫ ---
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	txManager := repositories.NewTxManager(dbConn)

	// --- 1. РЕПОЗИТОРИИ ---
	userRepo := repositories.NewUserRepository(dbConn)
	teamRepo := repositories.NewTeamRepository(dbConn)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	requestRepo := repositories.NewRequestRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- 2. СЕРВИСЫ ---
	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, logger, &cfg.Auth)
	teamService := services.NewTeamService(teamRepo, logger)
	equipmentService := services.NewEquipmentService(equipmentRepo, logger)
	requestService := services.NewRequestService(txManager, requestRepo, equipmentRepo, userRepo, logger)
	reportService := services.NewReportService(equipmentRepo, logger)

	// --- 3. КОНТРОЛЛЕРЫ ---
	authCtrl := controllers.NewAuthController(authService, logger)
	teamCtrl := controllers.NewTeamController(teamService, logger)
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, reportService, logger)
	requestCtrl := controllers.NewRequestController(requestService, logger)

	// --- 4. РОУТЕРЫ ---
	// Всё, кроме аутентификации, закрыто middleware.
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, authCtrl)
	runTeamRouter(secureGroup, teamCtrl)
	runEquipmentRouter(secureGroup, equipmentCtrl)
	runRequestRouter(secureGroup, requestCtrl)

	logger.Info("InitRouter: Создание маршрутов завершено")
}
