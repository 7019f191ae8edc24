package router

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sambutracy/filterfund/internal/auth"
	"github.com/sambutracy/filterfund/internal/handler"
	"github.com/sambutracy/filterfund/internal/ledger"
	"github.com/sambutracy/filterfund/internal/logic"
)

// Setup 组装HTTP路由。读操作无需身份，变更操作经过访问门。
func Setup(l *ledger.Ledger, profileLogic *logic.ProfileLogic, assetLogic *logic.AssetLogic, gate *auth.Gate) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())
	r.Use(requestIdMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "filterfund-service",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		authHandler := handler.NewAuthHandler(gate)
		v1.POST("/auth/token", authHandler.IssueToken)

		// 活动相关路由
		campaignHandler := handler.NewCampaignHandler(l)
		v1.GET("/campaign-count", campaignHandler.GetCampaignCount)
		campaigns := v1.Group("/campaigns")
		{
			campaigns.GET("", campaignHandler.GetCampaigns)
			campaigns.GET("/:id", campaignHandler.GetCampaign)
			campaigns.GET("/:id/donors", campaignHandler.GetCampaignDonors)

			campaigns.POST("", gate.Middleware(), campaignHandler.CreateCampaign)
			campaigns.POST("/:id/contribute", gate.Middleware(), campaignHandler.Contribute)
			campaigns.PUT("/:id/status", gate.Middleware(), campaignHandler.UpdateStatus)
		}

		// 用户资料路由
		profileHandler := handler.NewProfileHandler(profileLogic)
		profiles := v1.Group("/profiles")
		{
			profiles.GET("/:address", profileHandler.GetProfile)

			profiles.POST("", gate.Middleware(), profileHandler.CreateProfile)
			profiles.PUT("", gate.Middleware(), profileHandler.UpdateProfile)
			profiles.PUT("/stats", gate.Middleware(), profileHandler.UpdateStats)
			profiles.DELETE("", gate.Middleware(), profileHandler.DeleteProfile)
		}

		// 资源路由
		assetHandler := handler.NewAssetHandler(assetLogic)
		assets := v1.Group("/assets")
		{
			assets.GET("/:address", assetHandler.GetAsset)

			assets.POST("", gate.Middleware(), assetHandler.StoreAsset)
			assets.DELETE("", gate.Middleware(), assetHandler.DeleteAsset)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// 请求ID中间件
func requestIdMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader("X-Request-Id")
		if requestId == "" {
			requestId = uuid.NewString()
		}
		c.Header("X-Request-Id", requestId)
		c.Next()
	}
}
