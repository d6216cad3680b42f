package main

import (
	"net/http"
	"os"

	"formhub/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"formhub/internal/auth"
	"formhub/internal/cache"
	"formhub/internal/captcha"
	"formhub/internal/config"
	"formhub/internal/db"
	"formhub/internal/handler"
	"formhub/internal/model"
	"formhub/internal/repository"
	"formhub/internal/router"
	"formhub/internal/service"
)

// @title Forms API
// @version 1.0
// @description Form management API with registration, role-gated endpoints and bearer-token authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("database init")
	}

	if err := gormDB.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Form{},
		&model.FormSubmission{},
	); err != nil {
		logger.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	roleRepo := repository.NewRoleRepository(gormDB)
	formRepo := repository.NewFormRepository(gormDB)
	submissionRepo := repository.NewSubmissionRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	sessionStore := auth.NewSessionStore(cacheClient)

	var verifier captcha.Verifier
	if cfg.CaptchaEnabled {
		verifier = captcha.NewHCaptcha(cfg.HCaptchaSecret, cfg.HCaptchaVerifyURL, cfg.HCaptchaTimeout)
	} else {
		logger.Warn().Msg("captcha verification disabled")
		verifier = captcha.Disabled{}
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, jwtService, sessionStore, verifier)
	userService := service.NewUserService(userRepo, roleRepo, sessionStore)
	formService := service.NewFormService(formRepo, submissionRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	formHandler := handler.NewFormHandler(formService)

	// Register routes
	router.Register(
		e,
		cfg,
		sessionStore,
		userRepo,
		authHandler,
		userHandler,
		formHandler,
	)

	addr := ":" + cfg.ServerPort
	logger.Info().Str("addr", addr).Msg("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server start")
	}
}
