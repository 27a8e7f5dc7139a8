package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/backendac/actividades-api/api/swagger"
	"github.com/backendac/actividades-api/internal/handler"
	"github.com/backendac/actividades-api/internal/middleware"
	"github.com/backendac/actividades-api/internal/repository"
	"github.com/backendac/actividades-api/internal/service"
	"github.com/backendac/actividades-api/pkg/cache"
	"github.com/backendac/actividades-api/pkg/config"
	"github.com/backendac/actividades-api/pkg/database"
	"github.com/backendac/actividades-api/pkg/logger"
	corsmiddleware "github.com/backendac/actividades-api/pkg/middleware/cors"
	reqidmiddleware "github.com/backendac/actividades-api/pkg/middleware/requestid"
)

// @title Actividades API
// @version 1.0.0
// @description Gestión de actividades extracurriculares
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
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close() //nolint:errcheck

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	waitlistRepo := repository.NewWaitlistRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	participationRepo := repository.NewParticipationRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	sessionRepo := repository.NewSessionRepository(redisClient, cfg.Sessions.TTL)

	authService := service.NewAuthService(userRepo, sessionRepo, validate, logr, service.AuthConfig{
		Secret:            cfg.JWT.Secret,
		Expiration:        cfg.JWT.Expiration,
		RefreshExpiration: cfg.JWT.RefreshExpiration,
		Issuer:            cfg.JWT.Issuer,
	})
	userService := service.NewUserService(userRepo, profileRepo, validate, logr)
	profileService := service.NewProfileService(profileRepo, userRepo, validate, logr)
	roleService := service.NewRoleService(roleRepo, logr)
	activityService := service.NewActivityService(activityRepo, validate, logr)
	groupService := service.NewGroupService(groupRepo, activityRepo, userRepo, validate, logr, service.GroupConfig{
		CapacityMax:  cfg.Groups.CapacityMax,
		ManagerRoles: cfg.Groups.ManagerRoles,
	})
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, waitlistRepo, groupRepo, userRepo, validate, logr)
	waitlistService := service.NewWaitlistService(waitlistRepo, enrollmentRepo, activityRepo, userRepo, validate, logr)
	attendanceService := service.NewAttendanceService(attendanceRepo, groupRepo, validate, logr)
	participationService := service.NewParticipationService(participationRepo, groupRepo, validate, logr)
	evaluationService := service.NewEvaluationService(evaluationRepo, attendanceService, groupRepo, validate, logr, service.GradingConfig{
		AttendanceWeight: cfg.Grading.AttendanceWeight,
		ScoreWeight:      cfg.Grading.ScoreWeight,
		ClampMin:         cfg.Grading.ClampMin,
		ClampMax:         cfg.Grading.ClampMax,
	})
	metricsService := service.NewMetricsService()

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := roleService.Seed(seedCtx); err != nil {
		logr.Sugar().Warnw("failed to seed roles", "error", err)
	}
	cancel()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
			return
		}
		if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "redis unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsService.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, authService, handler.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		Users:         handler.NewUserHandler(userService),
		Profiles:      handler.NewProfileHandler(profileService),
		Roles:         handler.NewRoleHandler(roleService),
		Activities:    handler.NewActivityHandler(activityService, groupService),
		Groups:        handler.NewGroupHandler(groupService),
		Enrollments:   handler.NewEnrollmentHandler(enrollmentService, metricsService),
		Waitlist:      handler.NewWaitlistHandler(waitlistService),
		Attendance:    handler.NewAttendanceHandler(attendanceService),
		Participation: handler.NewParticipationHandler(participationService),
		Evaluations:   handler.NewEvaluationHandler(evaluationService),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
