package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/uai-sistemas/planning-api/api/swagger"
	"github.com/uai-sistemas/planning-api/internal/handler"
	"github.com/uai-sistemas/planning-api/internal/middleware"
	"github.com/uai-sistemas/planning-api/internal/models"
	"github.com/uai-sistemas/planning-api/internal/repository"
	"github.com/uai-sistemas/planning-api/internal/service"
	"github.com/uai-sistemas/planning-api/pkg/cache"
	"github.com/uai-sistemas/planning-api/pkg/config"
	"github.com/uai-sistemas/planning-api/pkg/database"
	"github.com/uai-sistemas/planning-api/pkg/logger"
	corsmiddleware "github.com/uai-sistemas/planning-api/pkg/middleware/cors"
	reqidmiddleware "github.com/uai-sistemas/planning-api/pkg/middleware/requestid"
)

// @title UAI Planning API
// @version 1.0.0
// @description Academic planning, schedule conflict detection and hour compliance
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, continuing without cache", "error", err)
		} else {
			defer redisClient.Close()
		}
	}

	offeringRepo := repository.NewClassOfferingRepository(db)
	groupRepo := repository.NewClassGroupRepository(db)
	meetingRepo := repository.NewClassMeetingRepository(db)
	classTeacherRepo := repository.NewClassTeacherRepository(db)
	groupTeacherRepo := repository.NewClassGroupTeacherRepository(db)
	requirementRepo := repository.NewHourRequirementRepository(db)
	conflictRepo := repository.NewConflictRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	validate := validator.New()
	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, cfg.JWT, logr)
	planningSvc := service.NewPlanningService(
		offeringRepo, groupRepo, meetingRepo,
		classTeacherRepo, groupTeacherRepo, requirementRepo,
		validate, logr,
	)
	conflictSvc := service.NewConflictService(
		offeringRepo, meetingRepo, groupRepo,
		groupTeacherRepo, classTeacherRepo, conflictRepo,
		cacheRepo, cfg.Planning.ConflictCacheTTL, logr,
	)
	hoursSvc := service.NewHoursService(offeringRepo, requirementRepo, groupRepo, meetingRepo, logr)
	exportSvc := service.NewExportService(conflictSvc, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	planningHandler := handler.NewPlanningHandler(planningSvc)
	conflictHandler := handler.NewConflictHandler(conflictSvc, exportSvc, metricsSvc)
	hoursHandler := handler.NewHoursHandler(hoursSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))

	authed.GET("/auth/me", authHandler.Me)

	write := middleware.RBAC(models.RoleAdmin, models.RolePlanner)
	admin := middleware.RBAC(models.RoleAdmin)

	planning := authed.Group("/planning")
	{
		planning.GET("/class-offerings", planningHandler.ListOfferings)
		planning.GET("/class-offerings/:id", planningHandler.GetOffering)
		planning.POST("/class-offerings", write, planningHandler.CreateOffering)
		planning.PATCH("/class-offerings/:id", write, planningHandler.UpdateOffering)
		planning.DELETE("/class-offerings/:id", write, planningHandler.DeleteOffering)
		planning.DELETE("/semesters/:semesterId/offerings", admin, planningHandler.PurgeSemester)

		planning.GET("/class-groups", planningHandler.ListGroups)
		planning.POST("/class-groups", write, planningHandler.CreateGroup)
		planning.PATCH("/class-groups/:id", write, planningHandler.UpdateGroup)
		planning.DELETE("/class-groups/:id", write, planningHandler.DeleteGroup)

		planning.GET("/class-meetings", planningHandler.ListMeetings)
		planning.POST("/class-meetings", write, planningHandler.CreateMeeting)
		planning.PATCH("/class-meetings/:id", write, planningHandler.UpdateMeeting)
		planning.DELETE("/class-meetings/:id", write, planningHandler.DeleteMeeting)

		planning.GET("/class-teachers", planningHandler.ListClassTeachers)
		planning.POST("/class-teachers", write, planningHandler.CreateClassTeacher)
		planning.PATCH("/class-teachers/:id", write, planningHandler.UpdateClassTeacher)
		planning.DELETE("/class-teachers/:id", write, planningHandler.DeleteClassTeacher)

		planning.GET("/class-group-teachers", planningHandler.ListGroupTeachers)
		planning.POST("/class-group-teachers", write, planningHandler.CreateGroupTeacher)
		planning.PATCH("/class-group-teachers/:id", write, planningHandler.UpdateGroupTeacher)
		planning.DELETE("/class-group-teachers/:id", write, planningHandler.DeleteGroupTeacher)

		planning.GET("/hour-requirements", planningHandler.ListHourRequirements)
		planning.POST("/hour-requirements", write, planningHandler.CreateHourRequirement)
		planning.PATCH("/hour-requirements/:id", write, planningHandler.UpdateHourRequirement)
		planning.DELETE("/hour-requirements/:id", write, planningHandler.DeleteHourRequirement)

		planning.GET("/schedule-conflicts", conflictHandler.List)
		planning.POST("/schedule-conflicts/detect/:semesterId", write, conflictHandler.Detect)
		planning.GET("/schedule-conflicts/export", conflictHandler.Export)

		planning.GET("/hours-validation/:classOfferingId", hoursHandler.Validate)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
