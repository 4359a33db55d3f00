package auth

import (
	"auth/cron"
	"auth/handlers"
	"auth/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	Handler   *handlers.AuthHandler
	Scheduler *cron.Scheduler
}

func NewModule(db *gorm.DB) *Module {
	return &Module{
		Handler:   handlers.NewAuthHandler(db),
		Scheduler: cron.NewScheduler(db),
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", m.Handler.Register)
		auth.POST("/login", m.Handler.Login)
		auth.GET("/me", middleware.JWTMiddleware(), m.Handler.Me)
		auth.POST("/refresh", m.Handler.RefreshToken)
		auth.POST("/logout", m.Handler.Logout)
		auth.POST("/logout-all", middleware.JWTMiddleware(), m.Handler.LogoutAll)
	}
}

// StartScheduler starts the hourly refresh token cleanup.
func (m *Module) StartScheduler() error {
	return m.Scheduler.Start()
}

func (m *Module) StopScheduler() {
	m.Scheduler.Stop()
}

func JWTMiddleware() gin.HandlerFunc {
	return middleware.JWTMiddleware()
}

func OptionalJWTMiddleware() gin.HandlerFunc {
	return middleware.OptionalJWTMiddleware()
}

func GetUserID(c *gin.Context) (uint, bool) {
	return middleware.GetUserID(c)
}

func GetUserEmail(c *gin.Context) (string, bool) {
	return middleware.GetUserEmail(c)
}
