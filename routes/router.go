package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"TIMEGATE/config"
	"TIMEGATE/controllers/auth"
	"TIMEGATE/controllers/face"
	"TIMEGATE/controllers/location"
	"TIMEGATE/controllers/punch"
	"TIMEGATE/middleware"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch cfg.GinMode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	punchController := punch.NewController(db)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", auth.RegisterHandler)
	authGroup.POST("/login", auth.LoginHandler)
	authGroup.GET("/me", middleware.AuthRequired(), auth.MeHandler)

	api.GET("/locations", location.ListHandler)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())
	protected.POST("/punch", punchController.PunchHandler)
	protected.GET("/punches", punchController.HistoryHandler)
	protected.POST("/face/enroll", face.EnrollHandler)
	protected.GET("/face/status", face.StatusHandler)
	protected.POST("/locations", location.CreateHandler)
	protected.POST("/locations/assign", location.AssignHandler)

	return r
}
