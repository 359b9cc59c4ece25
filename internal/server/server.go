package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"todo/internal/auth"
	"todo/internal/config"
	"todo/internal/database"
	"todo/internal/handler"
	"todo/internal/metrics"
	"todo/internal/middleware"
	"todo/internal/model"
	"todo/internal/repository"
	"todo/internal/service"

	"github.com/cockroachdb/errors"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Logger *slog.Logger
}

// Init connects to the configured database and builds the server around it.
func Init(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to DB")
	}
	logger.Info("connected to database", "driver", cfg.DBDriver)

	return New(cfg, db, logger, prometheus.NewRegistry())
}

// New wires repositories, services and handlers onto a gin engine. Metrics are
// registered on reg and exposed at /metrics.
func New(cfg *config.Config, db *gorm.DB, logger *slog.Logger, reg *prometheus.Registry) (*Server, error) {
	colours, err := model.ColourPolicyByName(cfg.ColourPolicy)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORSOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Initialize services
	store := repository.NewStore(db)
	opts := service.Options{
		Notifier:     metrics.NewRecorder(reg),
		ColourPolicy: colours,
	}
	tagService := service.NewTagService(store)
	itemTagService := service.NewItemTagService(store)
	todoService := service.NewTodoService(store, opts)
	queryService := service.NewItemQueryService(store)
	deleteService := service.NewSoftDeleteService(store, opts)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour)

	// Initialize handlers
	userHandler := handler.NewUserHandler(store.Users, tokens)
	tagHandler := handler.NewTagHandler(tagService)
	listHandler := handler.NewTodoListHandler(todoService, deleteService)
	itemHandler := handler.NewTodoItemHandler(todoService, queryService, itemTagService, deleteService)

	// Operational routes
	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)

	// Protected routes - require authentication
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(tokens))
	{
		// Tag routes
		api.GET("/tags", tagHandler.List)
		api.POST("/tags", tagHandler.Create)
		api.DELETE("/tags/:id", tagHandler.Delete)

		// List routes
		api.GET("/todo-lists", listHandler.List)
		api.POST("/todo-lists", listHandler.Create)
		api.DELETE("/todo-lists/:id", listHandler.Delete)

		// Item routes
		api.GET("/todo-items", itemHandler.List)
		api.POST("/todo-items", itemHandler.Create)
		api.PUT("/todo-items/:id", itemHandler.Update)
		api.PUT("/todo-items/:id/detail", itemHandler.UpdateDetail)
		api.DELETE("/todo-items/:id", itemHandler.Delete)
		api.PUT("/todo-items/:id/tags", itemHandler.ReplaceTags)
		api.POST("/todo-items/:id/tags/:tagId", itemHandler.AddTag)
		api.DELETE("/todo-items/:id/tags/:tagId", itemHandler.RemoveTag)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
		Logger: logger,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		s.Logger.Info("server running", "port", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Logger.Error("failed to listen", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	s.Logger.Info("server exited properly")
}
