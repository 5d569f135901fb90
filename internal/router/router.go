package router

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"smartblog/internal/auth"
	apperrors "smartblog/internal/errors"
	"smartblog/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	resolver *auth.IdentityResolver,
	authHandler *handler.AuthHandler,
	postHandler *handler.PostHandler,
	aiHandler *handler.AIHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"name":    "Smart Blog Editor API",
			"version": "1.0.0",
			"status":  "running",
			"docs":    "/swagger/index.html",
		})
	})

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":  "healthy",
			"service": "Smart Blog Editor API",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Secured routes: every request resolves the bearer token to an active
	// user before any handler logic runs.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ContextKey: auth.ContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return resolver.Resolve(c.Request().Context(), token)
		},
		ErrorHandler: identityErrorHandler,
	}))

	secured.GET("/auth/me", authHandler.Me)

	// Post routes
	secured.POST("/posts", postHandler.Create)
	secured.GET("/posts", postHandler.List)
	secured.GET("/posts/:id", postHandler.Get)
	secured.PATCH("/posts/:id", postHandler.Update)
	secured.POST("/posts/:id/publish", postHandler.Publish)

	// AI routes
	secured.POST("/ai/generate", aiHandler.Generate)
}

// identityErrorHandler maps resolution failures to the fixed status codes:
// inactive accounts are 403, everything else (missing header, bad or expired
// token, unknown subject) is a generic 401.
func identityErrorHandler(c echo.Context, err error) error {
	if errors.Is(err, apperrors.ErrAccountInactive) {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrAccountInactive)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthorized)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
