package config

import (
	"context"
	"fmt"
	"time"

	"roomkeeper/middleware"
	"roomkeeper/models"
	"roomkeeper/services/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const serviceName = "roomkeeper"

// App holds the long-lived components built at startup.
type App struct {
	Config Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	Melody *melody.Melody
	Cron   *cron.Cron
	Logger *zap.Logger
}

func InitApp(cfg Config) (*App, error) {
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, serviceName)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	app := &App{Config: cfg, Logger: log}
	if err := app.initComponents(); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize components: %w", err)
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	app.Router = NewRouter(log)
	app.Melody = melody.New()
	app.Cron = cron.New()
	return app, nil
}

func (a *App) initComponents() error {
	var err error
	a.DB, err = ConnectDB(a.Config.Database, a.Config.Debug)
	if err != nil {
		return err
	}
	a.Logger.Info("connected to database")

	if a.Config.Migrate {
		if err := models.AutoMigrate(a.DB); err != nil {
			return fmt.Errorf("failed to migrate tables: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.Redis, err = ConnectRedis(ctx, a.Config.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	if a.Redis == nil {
		a.Logger.Info("redis address not set, list caching disabled")
	}

	a.Logger.Info("all components initialized successfully")
	return nil
}

// NewRouter builds the engine with the shared middleware chain.
func NewRouter(log logger.Logger) *gin.Engine {
	router := gin.New()

	configCors := cors.DefaultConfig()
	configCors.AllowAllOrigins = true
	configCors.AddAllowHeaders(middleware.RequestIDHeader)
	configCors.AddExposeHeaders(middleware.RequestIDHeader)

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		gin.Recovery(),
		cors.New(configCors),
		middleware.ErrorHandler(log),
	)
	router.SetTrustedProxies(nil)
	return router
}

// Close releases what InitApp opened. It is safe on a partially built App.
func (a *App) Close() {
	if a.Cron != nil {
		<-a.Cron.Stop().Done()
	}
	if a.Melody != nil {
		a.Melody.Close()
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
	if a.Logger != nil {
		a.Logger.Sync()
	}
}
