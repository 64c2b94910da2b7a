package api

import (
	"webshop-partner-server/internal/config"
	"webshop-partner-server/internal/middleware"
	"webshop-partner-server/internal/services"

	"github.com/gin-gonic/gin"
)

// purchaseConsumer is the consume client used by the PNS and
// force-consume handlers; swapped for a fake in tests
var purchaseConsumer services.PurchaseConsumer

// SetupRoutes sets up all routes
func SetupRoutes(r *gin.Engine) {
	purchaseConsumer = services.NewOneStoreClient(services.NewCredentialSource())

	// OneStore PNS webhook endpoints
	pns := r.Group("/onestore_pns")
	{
		pns.POST("/notification", ReceivePNSNotification)
		pns.POST("/sandbox", ReceivePNSSandboxNotification)
	}

	// OneStore webshop callbacks
	webshop := r.Group("/onestore_webshop")
	{
		webshop.POST("/consume", ForceConsume)
		webshop.POST("/serverlist", WebshopServerList)
	}

	// Client environment registry (admin)
	env := r.Group("/onestore/env")
	env.Use(middleware.AdminAuthMiddleware())
	{
		env.POST("", CreateClientEnvironment)
		env.GET("", ListClientEnvironments)
		env.GET("/:client_id", GetClientEnvironment)
		env.PUT("/:client_id", UpdateClientEnvironment)
		env.DELETE("/:client_id", DeleteClientEnvironment)
	}

	// Game server registry
	gameserver := r.Group("/gameserver")
	{
		gameserver.POST("/create", CreateGameServers)
		gameserver.GET("/:game_id/list", ListGameServers)
		gameserver.DELETE("/:game_id", DeleteGameServers)
	}

	// Game user registry
	gameuser := r.Group("/gameuser")
	{
		gameuser.POST("/create", CreateGameUsers)
		gameuser.POST("/check", CheckGameUser)
		gameuser.GET("/:game_id/list", ListGameUsers)
		gameuser.DELETE("/:game_id/:user_id", DeleteGameUser)
	}

	// Service banner
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": config.AppConfig.ServiceName + " is running!",
			"status":  "healthy",
			"endpoints": gin.H{
				"health":     "/health",
				"gameserver": "/gameserver",
				"gameuser":   "/gameuser",
			},
		})
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})
}
