package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"rsvp/docs"
	"rsvp/internal/auth"
	"rsvp/internal/config"
	apperrors "rsvp/internal/errors"
	"rsvp/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sessions *auth.JWTService,
	authHandler *handler.AuthHandler,
	guestHandler *handler.GuestHandler,
	contactHandler *handler.ContactHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/ping", handler.Ping)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/user-register", authHandler.Register)
	e.POST("/email-verification", authHandler.VerifyEmail)
	e.POST("/login", authHandler.Login)
	e.POST("/forget-password", authHandler.ForgetPassword)
	e.POST("/reset-password", authHandler.ResetPassword)
	e.GET("/contact_info", contactHandler.GetContacts)
	e.POST("/send_message", contactHandler.SendMessage)

	// Secured routes (require a bearer session)
	secured := e.Group("", SessionMiddleware(sessions))
	secured.GET("/guest-info", guestHandler.GetGuests)
	secured.POST("/guest-info", guestHandler.UpdateGuests)
}

// SessionMiddleware validates bearer tokens with sessions and stores the claims
// under handler.SessionContextKey.
func SessionMiddleware(sessions *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: handler.SessionContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return sessions.Validate(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: "Could not validate credentials",
				Code:  "UNAUTHORIZED",
			})
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
