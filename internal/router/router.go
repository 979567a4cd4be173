package router

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"foodparadise/internal/auth"
	"foodparadise/internal/config"
	"foodparadise/internal/handler"
	"foodparadise/internal/model"
)

// ServiceName identifies this service in traces.
const ServiceName = "foodparadise-api"

// Handlers groups the HTTP handlers the router dispatches to.
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Cart    *handler.CartHandler
	Menu    *handler.MenuHandler
	Payment *handler.PaymentHandler
	Stats   *handler.StatsHandler
	Seed    *handler.SeedHandler
}

// Register wires routes and middleware. Guards run in order: token, then role or identity.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	logger *slog.Logger,
	tokens *auth.TokenService,
	revocations *auth.TokenStore,
	authority *auth.Authority,
	h Handlers,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(otelecho.Middleware(ServiceName))
	e.Use(requestLogger(logger))

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Working Service")
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	token := auth.RequireToken(tokens, revocations, logger)
	admin := auth.RequireRole(authority, model.RoleAdmin)

	e.POST("/jwt", h.Auth.IssueToken)

	// Users
	e.POST("/users", h.User.CreateUser)
	e.GET("/users", h.User.ListUsers, token, admin)
	e.GET("/users/admin/:email", h.User.CheckAdmin, token, auth.RequireSelf(authority, "email"))
	e.PATCH("/users/admin/:id", h.User.MakeAdmin, token, admin)
	e.DELETE("/users/:id", h.User.DeleteUser, token, admin)

	// Carts
	e.GET("/carts", h.Cart.ListCart, token)
	e.POST("/carts", h.Cart.AddToCart)
	e.DELETE("/carts/:id", h.Cart.RemoveFromCart, token)

	// Menu
	e.GET("/menu", h.Menu.ListMenu)
	e.GET("/menu/:id", h.Menu.GetMenuItem)
	e.POST("/menu", h.Menu.CreateMenuItem, token, admin)
	e.PATCH("/menu/:id", h.Menu.UpdateMenuItem, token, admin)
	e.DELETE("/menu/:id", h.Menu.DeleteMenuItem, token, admin)
	e.GET("/reviews", h.Menu.ListReviews)
	e.POST("/seed", h.Seed.SeedMenu, token, admin)

	// Payments
	e.POST("/create-payment-intent", h.Payment.CreatePaymentIntent, token)
	e.GET("/payments/:email", h.Payment.ListPayments)
	e.POST("/payments", h.Payment.SettlePayment)

	// Stats
	e.GET("/admin-stats", h.Stats.AdminStats)
	e.GET("/order-stats", h.Stats.OrderStats)
	e.GET("/order-stats/categories", h.Stats.CategoryStats)
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				logger.ErrorContext(c.Request().Context(), "request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
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
