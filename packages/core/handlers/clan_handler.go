package handlers

import (
	"errors"
	"net/http"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type ClanHandler struct {
	clanService *services.ClanService
}

func NewClanHandler(clanService *services.ClanService) *ClanHandler {
	return &ClanHandler{
		clanService: clanService,
	}
}

// currentUserID reads the authenticated user id placed in the context by the
// JWT middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}

// GetMyClan returns the caller's clan
// @Summary Get own clan
// @Description Get the clan owned by the authenticated user, or null
// @Tags clans
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /api/clans/me [get]
func (h *ClanHandler) GetMyClan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	clan, err := h.clanService.GetClanByOwner(userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"clan": nil})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clan": clan})
}

// CreateClan creates the caller's clan
// @Summary Create a clan
// @Description Create the authenticated user's clan; one clan per owner
// @Tags clans
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param clan body models.CreateClanRequest true "Clan name"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/clans [post]
func (h *ClanHandler) CreateClan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateClanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Clan name is required."})
		return
	}

	clan, err := h.clanService.CreateClan(userID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Clan name is invalid."})
		case errors.Is(err, services.ErrAlreadyOwned):
			c.JSON(http.StatusConflict, gin.H{"error": "You already have a clan."})
		case errors.Is(err, models.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Clan name already exists."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"clan": clan})
}
