package router

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"formhub/internal/auth"
	"formhub/internal/authz"
	"formhub/internal/config"
	"formhub/internal/handler"
	"formhub/internal/repository"
	"formhub/internal/validation"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sessionStore auth.SessionStoreInterface,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	formHandler *handler.FormHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = validation.New()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	// Secured routes: JWT signature first, then session liveness and
	// role resolution. Role gates run before any handler executes.
	secured := api.Group("",
		echojwt.WithConfig(echojwt.Config{
			SigningKey: []byte(cfg.JWTSecret),
			NewClaimsFunc: func(c echo.Context) jwt.Claims {
				return new(auth.Claims)
			},
		}),
		authz.Authenticate(sessionStore, userRepo),
	)

	// User tier (admins hold this role too)
	userRoutes := secured.Group("", authz.RequireRole(authz.User))
	userRoutes.POST("/logout", authHandler.Logout)
	userRoutes.GET("/user", authHandler.Profile)
	userRoutes.PUT("/user", authHandler.UpdateCredentials)
	userRoutes.GET("/forms", formHandler.ListForms)
	userRoutes.GET("/forms/:id", formHandler.GetForm)
	userRoutes.POST("/forms/:id/submit", formHandler.SubmitForm)

	// Admin tier
	adminRoutes := secured.Group("", authz.RequireRole(authz.Admin))
	adminRoutes.GET("/users", userHandler.ListUsers)
	adminRoutes.GET("/user/:id", userHandler.GetUser)
	adminRoutes.PUT("/user/:id/update-user", userHandler.UpdateUser)
	adminRoutes.DELETE("/user/:id", userHandler.DeleteUser)
	adminRoutes.GET("/list-roles", userHandler.ListRoles)
	adminRoutes.PUT("/user/:id/add-role", userHandler.AssignRole)
	adminRoutes.DELETE("/user/:id/remove-role", userHandler.RemoveRole)
	adminRoutes.POST("/forms", formHandler.CreateForm)
	adminRoutes.PUT("/forms/:id", formHandler.UpdateForm)
	adminRoutes.DELETE("/forms/:id", formHandler.DeleteForm)
	adminRoutes.GET("/forms/:id/answers", formHandler.FormAnswers)
	adminRoutes.DELETE("/answers/:id", formHandler.DeleteAnswer)
}
