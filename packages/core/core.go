package core

import (
	"core/handlers"
	"core/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	ClanHandler   *handlers.ClanHandler
	PlayerHandler *handlers.PlayerHandler
	PublicHandler *handlers.PublicHandler
	ClanService   *services.ClanService
	PlayerService *services.PlayerService
	db            *gorm.DB
}

func NewModule(db *gorm.DB) *Module {
	clanService := services.NewClanService(db)
	playerService := services.NewPlayerService(db)

	return &Module{
		ClanHandler:   handlers.NewClanHandler(clanService),
		PlayerHandler: handlers.NewPlayerHandler(playerService, clanService),
		PublicHandler: handlers.NewPublicHandler(clanService, playerService),
		ClanService:   clanService,
		PlayerService: playerService,
		db:            db,
	}
}

// SetupRoutes mounts the clan, player and public routes. The auth module
// owns the JWT middleware, so it is injected rather than imported.
func (m *Module) SetupRoutes(r *gin.Engine, requireAuth gin.HandlerFunc) {
	clans := r.Group("/api/clans")
	clans.Use(requireAuth)
	{
		clans.GET("/me", m.ClanHandler.GetMyClan)
		clans.POST("", m.ClanHandler.CreateClan)
	}

	players := r.Group("/api/players")
	players.Use(requireAuth, m.PlayerHandler.RequireClan())
	{
		players.GET("", m.PlayerHandler.ListPlayers)
		players.POST("", m.PlayerHandler.CreatePlayer)
		players.GET("/leaderboard", m.PlayerHandler.GetLeaderboard)
		players.GET("/leaderboard.csv", m.PlayerHandler.ExportLeaderboardCSV)
		players.PUT("/:id", m.PlayerHandler.RenamePlayer)
		players.DELETE("/:id", m.PlayerHandler.DeletePlayer)
		players.PUT("/:id/war/:warIndex", m.PlayerHandler.UpdateWar)
		players.POST("/reset-war/:warIndex", m.PlayerHandler.ResetWar)
	}

	public := r.Group("/api/public")
	{
		public.GET("/clans", m.PublicHandler.ListClans)
		public.GET("/clans/:slug/players", m.PublicHandler.GetClanPlayers)
		public.GET("/clans/:slug/leaderboard", m.PublicHandler.GetClanLeaderboard)
	}
}
