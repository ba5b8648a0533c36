package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"famboard/internal/model"
	"famboard/internal/repository"
)

type HouseholdHandler struct {
	householdRepo *repository.HouseholdRepository
}

func NewHouseholdHandler(householdRepo *repository.HouseholdRepository) *HouseholdHandler {
	return &HouseholdHandler{householdRepo: householdRepo}
}

type HouseholdRequest struct {
	Name string `json:"name" binding:"required"`
}

type HouseholdResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Create registers a new household
// @Summary  Create a household
// @Tags     Households
// @Security BearerAuth
// @Router   /households [post]
func (h *HouseholdHandler) Create(c *gin.Context) {
	if _, ok := authenticatedUser(c); !ok {
		return
	}

	var req HouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	household := &model.Household{Name: req.Name}
	if err := h.householdRepo.Create(c.Request.Context(), household); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create household"})
		return
	}

	c.JSON(http.StatusCreated, HouseholdResponse{
		ID:   household.ID.String(),
		Name: household.Name,
	})
}
