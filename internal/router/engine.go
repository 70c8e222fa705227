package router

import (
	"log/slog"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"ecocart.dev/ecocart/api/pkg/global"
	"ecocart.dev/ecocart/api/pkg/images"
)

// NewEngine builds the gin engine with the middleware every route shares.
func NewEngine(cfg global.Config, log *slog.Logger) *gin.Engine {
	switch {
	case cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	case cfg.Env == "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.MaxMultipartMemory = MaxProductImageSize + 1<<20
	engine.Use(RequestID(), RequestLogger(log), gin.Recovery())
	engine.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	return engine
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Length", RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// InitializeRoutes mounts the storefront API and the stored images.
func InitializeRoutes(engine *gin.Engine, h *Handler, cfg global.Config) {
	engine.Static(images.URLPrefix, cfg.ImagesDir)

	engine.GET("/products", h.ListProducts)
	engine.POST("/add-product", h.AddProduct)
	engine.DELETE("/products/:id", h.DeleteProduct)

	comments := engine.Group("/products/:id/comments")
	{
		comments.GET("", h.ListComments)
		comments.POST("", h.AddComment)
		comments.GET("/summary", h.CommentSummary)
		comments.PUT("/:commentId", h.UpdateComment)
		comments.DELETE("/:commentId", h.DeleteComment)
	}

	engine.POST("/register", h.Register)
	engine.POST("/login", h.Login)
	engine.POST("/update_profile", h.UpdateProfile)
	engine.POST("/change_password", h.ChangePassword)

	api := engine.Group("/api")
	{
		api.GET("/health", h.HealthCheck)
		api.POST("/orders", h.PlaceOrder)
		api.POST("/ask-ai", RateLimit(cfg.AIRequestsPerMinute, time.Minute), h.AskAI)
	}
}
