package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"core/models"
	"core/services"
	"core/warstats"

	"github.com/gin-gonic/gin"
)

type PlayerHandler struct {
	playerService *services.PlayerService
	clanService   *services.ClanService
}

func NewPlayerHandler(playerService *services.PlayerService, clanService *services.ClanService) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
		clanService:   clanService,
	}
}

// RequireClan resolves the caller's clan and stores it in the context.
// Every player route is scoped to the owner's clan, so a user without one
// cannot proceed.
func (h *PlayerHandler) RequireClan() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		clan, err := h.clanService.GetClanByOwner(userID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Create a clan first."})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			c.Abort()
			return
		}

		c.Set("clan", clan)
		c.Next()
	}
}

func contextClan(c *gin.Context) *models.Clan {
	return c.MustGet("clan").(*models.Clan)
}

func parsePlayerID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid player ID"})
		return 0, false
	}
	return uint(id), true
}

func parseWarIndex(c *gin.Context) (int, bool) {
	idx, err := strconv.Atoi(c.Param("warIndex"))
	if err != nil || idx < 0 || idx >= models.WarCount {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid war index."})
		return 0, false
	}
	return idx, true
}

// ListPlayers returns the caller's roster
// @Summary List clan players
// @Description List all players in the authenticated owner's clan
// @Tags players
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Player
// @Failure 400 {object} map[string]string
// @Router /api/players [get]
func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	clan := contextClan(c)

	players, err := h.playerService.ListPlayers(clan.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, players)
}

// CreatePlayer adds a player to the caller's clan
// @Summary Add a player
// @Description Add a player with an empty war record to the owner's clan
// @Tags players
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param player body models.CreatePlayerRequest true "Player name"
// @Success 201 {object} models.Player
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/players [post]
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	clan := contextClan(c)

	var req models.CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Player name is required."})
		return
	}

	player, err := h.playerService.CreatePlayer(clan.ID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Player name is required."})
		case errors.Is(err, models.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Player name already exists."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, player)
}

// RenamePlayer updates a player's name
// @Summary Rename a player
// @Tags players
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Player ID"
// @Param player body models.RenamePlayerRequest true "New name"
// @Success 200 {object} models.Player
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/players/{id} [put]
func (h *PlayerHandler) RenamePlayer(c *gin.Context) {
	clan := contextClan(c)

	playerID, ok := parsePlayerID(c)
	if !ok {
		return
	}

	var req models.RenamePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Player name is required."})
		return
	}

	player, err := h.playerService.RenamePlayer(clan.ID, playerID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Player name is required."})
		case errors.Is(err, models.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Player name already exists."})
		case errors.Is(err, models.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Player not found."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, player)
}

// DeletePlayer removes a player
// @Summary Remove a player
// @Tags players
// @Security BearerAuth
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string
// @Router /api/players/{id} [delete]
func (h *PlayerHandler) DeletePlayer(c *gin.Context) {
	clan := contextClan(c)

	playerID, ok := parsePlayerID(c)
	if !ok {
		return
	}

	if err := h.playerService.DeletePlayer(clan.ID, playerID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Player not found."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// UpdateWar commits one war slot for a player
// @Summary Update a war slot
// @Description Replace one war slot with the client's full copy; values are
// @Description strictly validated and out-of-range input is rejected
// @Tags players
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Player ID"
// @Param warIndex path int true "War index (0-based)"
// @Param war body models.UpdateWarRequest true "War slot"
// @Success 200 {object} models.Player
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/players/{id}/war/{warIndex} [put]
func (h *PlayerHandler) UpdateWar(c *gin.Context) {
	clan := contextClan(c)

	playerID, ok := parsePlayerID(c)
	if !ok {
		return
	}
	warIndex, ok := parseWarIndex(c)
	if !ok {
		return
	}

	var req models.UpdateWarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All war values must be numbers."})
		return
	}

	// A partial payload would zero the omitted fields; the commit boundary
	// rejects it instead.
	slot, ok := req.Slot()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All war values must be numbers."})
		return
	}

	player, err := h.playerService.UpdateWarSlot(clan.ID, playerID, warIndex, slot)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "War values out of range."})
		case errors.Is(err, models.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Player not found."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, player)
}

// ResetWar zeroes one war slot for the whole clan
// @Summary Reset a war for the clan
// @Description Atomically zero one war slot for every player in the clan
// @Tags players
// @Security BearerAuth
// @Produce json
// @Param warIndex path int true "War index (0-based)"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Router /api/players/reset-war/{warIndex} [post]
func (h *PlayerHandler) ResetWar(c *gin.Context) {
	clan := contextClan(c)

	warIndex, ok := parseWarIndex(c)
	if !ok {
		return
	}

	if err := h.playerService.ResetWarForClan(clan.ID, warIndex); err != nil {
		if errors.Is(err, models.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid war index."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetLeaderboard returns the ranked roster
// @Summary Get the admin leaderboard
// @Tags players
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.LeaderboardRow
// @Router /api/players/leaderboard [get]
func (h *PlayerHandler) GetLeaderboard(c *gin.Context) {
	clan := contextClan(c)

	players, err := h.playerService.ListPlayers(clan.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, warstats.BuildLeaderboard(players))
}

// ExportLeaderboardCSV streams the leaderboard as CSV
// @Summary Export the leaderboard as CSV
// @Description Columns: Rank, Player, Total Net Stars, Total Net %
// @Tags players
// @Security BearerAuth
// @Produce text/csv
// @Success 200 {string} string
// @Router /api/players/leaderboard.csv [get]
func (h *PlayerHandler) ExportLeaderboardCSV(c *gin.Context) {
	clan := contextClan(c)

	players, err := h.playerService.ListPlayers(clan.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var buf bytes.Buffer
	if err := warstats.WriteCSV(&buf, warstats.BuildLeaderboard(players)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="cwl-leaderboard.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
