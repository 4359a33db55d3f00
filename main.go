package main

import (
	"os"

	"auth"
	"core"
	"cwl-api/config"
	_ "cwl-api/docs" // Swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           Clan War League Leaderboard API
// @version         1.0
// @description     Track seven wars per clan, tally net stars and serve ranked leaderboards.

// @license.name  MIT
// @license.url   http://opensource.org/licenses/MIT

// @host      localhost:5000
// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger, err := zap.NewProduction()
	if gin.Mode() != gin.ReleaseMode {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		logger.Fatal("JWT_SECRET is not set; create a .env file based on .env.example")
	}

	config.ConnectDatabase(logger)

	r := gin.Default()
	r.Use(corsMiddleware())

	authModule := auth.NewModule(config.DB)
	authModule.SetupRoutes(r)
	if err := authModule.StartScheduler(); err != nil {
		logger.Fatal("Failed to start token cleanup scheduler", zap.Error(err))
	}
	defer authModule.StopScheduler()

	coreModule := core.NewModule(config.DB)
	coreModule.SetupRoutes(r, auth.JWTMiddleware())

	// Swagger endpoint
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/", rootHandler)
	r.GET("/health", healthHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	logger.Info("Server starting", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}

// corsMiddleware allows the known frontend origins plus FRONTEND_URL.
func corsMiddleware() gin.HandlerFunc {
	origins := []string{
		"http://localhost:5173",
		"http://localhost:3000",
		"http://127.0.0.1:5173",
	}
	if frontend := os.Getenv("FRONTEND_URL"); frontend != "" {
		origins = append(origins, frontend)
	}

	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Content-Type", "Authorization"}
	return cors.New(cfg)
}

// StatusResponse is the root/health payload
type StatusResponse struct {
	Status  string `json:"status" example:"ok"`
	Message string `json:"message,omitempty" example:"Clan War League Leaderboard API"`
}

// @Summary Service Status
// @Tags health
// @Produce json
// @Success 200 {object} StatusResponse
// @Router / [get]
func rootHandler(c *gin.Context) {
	c.JSON(200, StatusResponse{
		Status:  "ok",
		Message: "Clan War League Leaderboard API",
	})
}

// @Summary Health Check
// @Description Check if the server is running
// @Tags health
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /health [get]
func healthHandler(c *gin.Context) {
	c.JSON(200, StatusResponse{
		Status: "healthy",
	})
}
