package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AYUSHMAAN1812/chatify/internal/api/handler"
	"github.com/AYUSHMAAN1812/chatify/internal/api/middleware"
	"github.com/AYUSHMAAN1812/chatify/internal/core/ports"
	"github.com/AYUSHMAAN1812/chatify/internal/realtime"
)

// Deps carries the wired services the router mounts. Construction happens in
// main so the router stays free of infrastructure concerns.
type Deps struct {
	Auth     ports.AuthService
	Verifier ports.IdentityVerifier
	Messages ports.MessageService
	Realtime *realtime.Handler

	DB    *mongo.Database
	Redis *redis.Client

	ClientURL  string
	Production bool
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("chatify"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{d.ClientURL},
		AllowCredentials: true,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Production)
	messageHandler := handler.NewMessageHandler(d.Messages)
	requireAuth := middleware.Auth(d.Verifier)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.PUT("/update-profile", authHandler.UpdateProfile, requireAuth)
	auth.GET("/check", authHandler.Check, requireAuth)

	// --- Message routes (all authenticated) ---
	messages := e.Group("/api/messages", requireAuth)
	messages.GET("/contacts", messageHandler.Contacts)
	messages.GET("/chats", messageHandler.ChatPartners)
	messages.GET("/:id", messageHandler.Conversation)
	messages.POST("/send/:id", messageHandler.Send)

	// --- Realtime endpoint ---
	// Credential verification happens inside the handshake itself, so no
	// auth middleware here.
	e.GET("/ws", d.Realtime.Serve)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.DB, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
