package server

import (
	"net/http"

	"ctchen222/Crypto-Tracker/internal/api/controller"
	"ctchen222/Crypto-Tracker/internal/api/service"
	"ctchen222/Crypto-Tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Server owns the Gin engine and the route table. Every collaborator,
// including the response cache behind the coin controller, is injected —
// there is no package-level state.
type Server struct {
	engine *gin.Engine
}

// NewServer assembles the engine and registers all routes.
func NewServer(
	tokens *service.TokenManager,
	auth *controller.AuthController,
	coins *controller.CoinController,
	watchlist *controller.WatchlistController,
) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS())

	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Crypto backend is up!")
	})

	api := engine.Group("/api")
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", auth.Signup)
		authGroup.POST("/login", auth.Login)
		authGroup.POST("/forgot-password", auth.ForgotPassword)
		authGroup.POST("/reset-password", auth.ResetPassword)
	}

	coinGroup := api.Group("/coins")
	{
		// The static news route must precede the :id route.
		coinGroup.GET("/markets", coins.Markets)
		coinGroup.GET("/news", coins.News)
		coinGroup.GET("/chart/:id", coins.Chart)
		coinGroup.GET("/:id", coins.Coin)
	}

	requireAuth := middleware.RequireAuth(tokens)

	watchlistGroup := api.Group("/watchlist", requireAuth)
	{
		watchlistGroup.GET("", watchlist.Get)
		watchlistGroup.POST("", watchlist.Add)
		watchlistGroup.DELETE("/:coinId", watchlist.Remove)
	}

	userGroup := api.Group("/user", requireAuth)
	{
		userGroup.GET("/watchlist", watchlist.Get)
		userGroup.POST("/watchlist", watchlist.UserAdd)
		userGroup.POST("/watchlist/remove", watchlist.UserRemove)
	}

	return &Server{engine: engine}
}

// Engine exposes the underlying handler for the HTTP server and tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
