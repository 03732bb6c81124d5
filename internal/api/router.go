package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/ashkelon/forum/docs"
	"github.com/ashkelon/forum/internal/api/handler"
	"github.com/ashkelon/forum/internal/api/middleware"
	"github.com/ashkelon/forum/internal/core/domain"
	"github.com/ashkelon/forum/internal/core/ports"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Accounts      ports.AccountService
	Forum         ports.ForumService
	Authenticator ports.Authenticator
	Issuer        ports.TokenIssuer
	HealthChecks  map[string]handler.HealthCheck
	Logger        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddleware("forum"))

	accountHandler := handler.NewAccountHandler(d.Accounts, d.Issuer)
	forumHandler := handler.NewForumHandler(d.Forum)
	healthHandler := handler.NewHealthHandler(d.HealthChecks)

	authn := middleware.Auth(d.Authenticator, false)
	authnExpired := middleware.Auth(d.Authenticator, true)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Account routes ---
	account := e.Group("/account")
	account.POST("", accountHandler.Register) // token decoded by the service; no stored account yet
	account.POST("/login", accountHandler.Login, authn)
	account.PUT("", accountHandler.Edit, authn)
	account.PUT("/password", accountHandler.ChangePassword, authnExpired)
	account.DELETE("/:login", accountHandler.Remove, authn)
	account.PUT("/:login/role/:role", accountHandler.GrantRole, authn, adminOnly)
	account.DELETE("/:login/role/:role", accountHandler.RevokeRole, authn, adminOnly)

	// --- Forum routes ---
	forum := e.Group("/forum")
	forum.POST("/post", forumHandler.CreatePost)
	forum.GET("/post/:id", forumHandler.GetPost)
	forum.DELETE("/post/:id", forumHandler.DeletePost, authn)
	forum.PUT("/post/:id", forumHandler.UpdatePost, authn)
	forum.PUT("/post/:id/like", forumHandler.AddLike)
	forum.PUT("/post/:id/comment", forumHandler.AddComment)
	forum.POST("/posts/tags", forumHandler.FindByTags)
	forum.GET("/posts/author/:author", forumHandler.FindByAuthor)
	forum.POST("/posts/period", forumHandler.FindByPeriod)

	// --- Operations ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger logs one line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			login, _ := c.Get(middleware.ContextLogin).(string)
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("login", login).
				Msg("request")
			return nil
		},
	})
}
