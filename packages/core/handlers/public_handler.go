package handlers

import (
	"errors"
	"net/http"

	"core/models"
	"core/services"
	"core/warstats"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves the unauthenticated, read-only clan views.
type PublicHandler struct {
	clanService   *services.ClanService
	playerService *services.PlayerService
}

func NewPublicHandler(clanService *services.ClanService, playerService *services.PlayerService) *PublicHandler {
	return &PublicHandler{
		clanService:   clanService,
		playerService: playerService,
	}
}

// ListClans lists all clans
// @Summary List clans
// @Tags public
// @Produce json
// @Success 200 {array} models.ClanSummary
// @Router /api/public/clans [get]
func (h *PublicHandler) ListClans(c *gin.Context) {
	clans, err := h.clanService.ListClans()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, clans)
}

// GetClanPlayers returns a clan and its roster by slug
// @Summary Get a clan's players
// @Tags public
// @Produce json
// @Param slug path string true "Clan slug"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /api/public/clans/{slug}/players [get]
func (h *PublicHandler) GetClanPlayers(c *gin.Context) {
	clan, players, ok := h.resolveClan(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clan":    clan.Summary(),
		"players": players,
	})
}

// GetClanLeaderboard returns a clan's ranked leaderboard by slug
// @Summary Get a clan's leaderboard
// @Tags public
// @Produce json
// @Param slug path string true "Clan slug"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /api/public/clans/{slug}/leaderboard [get]
func (h *PublicHandler) GetClanLeaderboard(c *gin.Context) {
	clan, players, ok := h.resolveClan(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clan":        clan.Summary(),
		"leaderboard": warstats.BuildLeaderboard(players),
	})
}

func (h *PublicHandler) resolveClan(c *gin.Context) (*models.Clan, []models.Player, bool) {
	clan, err := h.clanService.GetClanBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Clan not found."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return nil, nil, false
	}

	players, err := h.playerService.ListPlayers(clan.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return nil, nil, false
	}

	return clan, players, true
}
