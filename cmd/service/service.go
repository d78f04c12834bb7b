// @title        Volunteer Hub API
// @version      1.0
// @description  志工與活動管理系統的後端 API 文件
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"volunteer-hub/internal/cache"
	"volunteer-hub/internal/config"
	"volunteer-hub/internal/database"
	"volunteer-hub/internal/handler"
	"volunteer-hub/internal/logging"
	"volunteer-hub/internal/mailer"
	"volunteer-hub/internal/router"
	"volunteer-hub/internal/service"
	"volunteer-hub/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	_ "volunteer-hub/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

const shutdownTimeout = 10 * time.Second

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig      = config.Load
	setupLogging    = logging.Setup
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newWorkerPool   = worker.NewPool
	newGmailMailer  = func(ctx context.Context, m config.Mail) (mailer.Mailer, error) {
		return mailer.NewGmailMailer(ctx, m.CredentialsFile, m.TokenFile, m.From)
	}
	startServer = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc    = os.Exit
)

// newEcho 建立 Echo 實例並掛上共用中介層
func newEcho(cfg config.Config, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = handler.ErrorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request_id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				logger.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	return e
}

// newMailer 有 Gmail 憑證時寄真信，否則只寫 log
func newMailer(ctx context.Context, cfg config.Mail) (mailer.Mailer, error) {
	if !cfg.GmailEnabled() {
		zap.L().Info("gmail credentials not configured, notifications are only logged")
		return mailer.LogMailer{}, nil
	}
	return newGmailMailer(ctx, cfg)
}

func run(ctx context.Context) error {
	cfg, err := loadConfig("")
	if err != nil {
		return err
	}

	logger, flush, err := setupLogging(cfg.Log)
	if err != nil {
		return fmt.Errorf("初始化 logger 失敗: %w", err)
	}
	defer flush()

	service.SetSigningSecret(cfg.JWT.Secret)

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer rdb.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	m, err := newMailer(ctx, cfg.Mail)
	if err != nil {
		return fmt.Errorf("初始化 mailer 失敗: %w", err)
	}
	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()

	e := newEcho(cfg, logger)
	router.Setup(e, db, rdb, mailer.NewDispatcher(m, wp, 0), router.Options{
		TokenTTL: cfg.JWT.TTL,
		CacheTTL: cfg.CacheTTL,
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() { errCh <- startServer(e, addr) }()
	logger.Info("server started", zap.String("addr", addr), zap.Int("workers", cfg.WorkerCount))

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("伺服器啟動失敗: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("伺服器關閉失敗: %w", err)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
