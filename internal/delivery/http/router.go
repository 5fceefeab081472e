package http

import (
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kindredapp/kindred-backend/internal/delivery/http/handler"
	"github.com/kindredapp/kindred-backend/internal/delivery/http/middleware"
)

// usernamePattern admits lowercase handles with underscores, 3 to 32 runes.
var usernamePattern = regexp.MustCompile(`^[a-z0-9_]{3,32}$`)

func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
	}
}

type Router struct {
	authHandler       *handler.AuthHandler
	profileHandler    *handler.ProfileHandler
	interestHandler   *handler.InterestHandler
	matchHandler      *handler.MatchHandler
	connectionHandler *handler.ConnectionHandler
	messageHandler    *handler.MessageHandler
	authMiddleware    *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	interestHandler *handler.InterestHandler,
	matchHandler *handler.MatchHandler,
	connectionHandler *handler.ConnectionHandler,
	messageHandler *handler.MessageHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:       authHandler,
		profileHandler:    profileHandler,
		interestHandler:   interestHandler,
		matchHandler:      matchHandler,
		connectionHandler: connectionHandler,
		messageHandler:    messageHandler,
		authMiddleware:    authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()
	router.Use(middleware.RequestID())
	registerValidations()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/logout", r.authMiddleware.RequireAuth(), r.authHandler.Logout)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		// Interest catalog (public, read-only)
		v1.GET("/interests", r.interestHandler.ListRoots)
		v1.GET("/interests/:id/children", r.interestHandler.ListChildren)

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Profile routes
			profile := protected.Group("/profile")
			{
				profile.POST("", r.profileHandler.CreateProfile)
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.UpdateMyProfile)
				profile.PUT("/me/location", r.profileHandler.UpdateLocation)
				profile.DELETE("/me/location", r.profileHandler.ClearLocation)
				profile.GET("/:user_id", r.profileHandler.GetProfileByUserID)
			}

			// Interest routes
			interests := protected.Group("/interests")
			{
				interests.POST("", r.interestHandler.CreateCustom)
				interests.GET("/mine", r.interestHandler.ListMine)
				interests.POST("/mine/:id", r.interestHandler.Declare)
				interests.DELETE("/mine/:id", r.interestHandler.Remove)
			}

			// Match discovery
			protected.GET("/matches", r.matchHandler.GetMatches)

			// Connection routes
			connections := protected.Group("/connections")
			{
				connections.POST("", r.connectionHandler.Create)
				connections.GET("", r.connectionHandler.ListAccepted)
				connections.GET("/incoming", r.connectionHandler.ListIncoming)
				connections.GET("/outgoing", r.connectionHandler.ListOutgoing)
				connections.POST("/:id/accept", r.connectionHandler.Accept)
				connections.POST("/:id/reject", r.connectionHandler.Reject)
				connections.POST("/:id/block", r.connectionHandler.Block)
			}

			// Message routes
			messages := protected.Group("/messages")
			{
				messages.POST("", r.messageHandler.Send)
				messages.GET("/unread/count", r.messageHandler.UnreadCount)
				messages.GET("/:user_id", r.messageHandler.ListThread)
				messages.POST("/:user_id/read", r.messageHandler.MarkRead)
			}
		}
	}

	return router
}
