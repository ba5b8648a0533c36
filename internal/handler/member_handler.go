package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"famboard/internal/model"
	"famboard/internal/repository"
	"famboard/internal/taskboard"
)

type MemberHandler struct {
	memberRepo    *repository.MemberRepository
	householdRepo *repository.HouseholdRepository
	boards        *taskboard.Boards
}

func NewMemberHandler(
	memberRepo *repository.MemberRepository,
	householdRepo *repository.HouseholdRepository,
	boards *taskboard.Boards,
) *MemberHandler {
	return &MemberHandler{
		memberRepo:    memberRepo,
		householdRepo: householdRepo,
		boards:        boards,
	}
}

type MemberRequest struct {
	HouseholdID string `json:"household_id" binding:"required,uuid"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	AvatarColor string `json:"avatar_color"`
}

type MemberUpdateRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	AvatarColor string `json:"avatar_color"`
}

type MemberResponse struct {
	ID          string `json:"id"`
	HouseholdID string `json:"household_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	AvatarColor string `json:"avatar_color,omitempty"`
}

func toMemberResponse(m model.Member) MemberResponse {
	return MemberResponse{
		ID:          m.ID.String(),
		HouseholdID: m.HouseholdID.String(),
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       m.Email,
		AvatarColor: m.AvatarColor,
	}
}

// Create adds a member to a household
// @Summary  Add a household member
// @Tags     Members
// @Security BearerAuth
// @Router   /members [post]
func (h *MemberHandler) Create(c *gin.Context) {
	if _, ok := authenticatedUser(c); !ok {
		return
	}

	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	householdID, err := uuid.Parse(req.HouseholdID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid household ID format"})
		return
	}

	household, err := h.householdRepo.GetByID(c.Request.Context(), householdID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve household"})
		return
	}
	if household == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Household not found"})
		return
	}

	member := &model.Member{
		HouseholdID: householdID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       strings.ToLower(req.Email),
		AvatarColor: req.AvatarColor,
	}
	if err := h.memberRepo.Create(c.Request.Context(), member); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create member"})
		return
	}

	c.JSON(http.StatusCreated, toMemberResponse(*member))
}

// GetByID returns one member
// @Summary  Get a member
// @Tags     Members
// @Security BearerAuth
// @Router   /members/{id} [get]
func (h *MemberHandler) GetByID(c *gin.Context) {
	if _, ok := authenticatedUser(c); !ok {
		return
	}

	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID format"})
		return
	}

	member, err := h.memberRepo.GetByID(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve member"})
		return
	}
	if member == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	c.JSON(http.StatusOK, toMemberResponse(*member))
}

// GetByHousehold lists a household's members
// @Summary  List household members
// @Tags     Members
// @Security BearerAuth
// @Router   /households/{id}/members [get]
func (h *MemberHandler) GetByHousehold(c *gin.Context) {
	if _, ok := authenticatedUser(c); !ok {
		return
	}

	householdID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid household ID format"})
		return
	}

	members, err := h.memberRepo.GetByHousehold(c.Request.Context(), householdID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve members"})
		return
	}

	response := make([]MemberResponse, len(members))
	for i, m := range members {
		response[i] = toMemberResponse(m)
	}
	c.JSON(http.StatusOK, response)
}

// Update changes a member's profile fields
// @Summary  Update a member
// @Tags     Members
// @Security BearerAuth
// @Router   /members/{id} [put]
func (h *MemberHandler) Update(c *gin.Context) {
	if _, ok := authenticatedUser(c); !ok {
		return
	}

	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID format"})
		return
	}

	var req MemberUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	member, err := h.memberRepo.GetByID(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve member"})
		return
	}
	if member == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	member.FirstName = req.FirstName
	member.LastName = req.LastName
	member.AvatarColor = req.AvatarColor
	if err := h.memberRepo.Update(c.Request.Context(), member); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update member"})
		return
	}

	c.JSON(http.StatusOK, toMemberResponse(*member))
}

// Delete removes a member; their tasks go with them and the cached board is
// dropped
// @Summary  Delete a member
// @Tags     Members
// @Security BearerAuth
// @Router   /members/{id} [delete]
func (h *MemberHandler) Delete(c *gin.Context) {
	if _, ok := authenticatedUser(c); !ok {
		return
	}

	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID format"})
		return
	}

	if err := h.memberRepo.Delete(c.Request.Context(), memberID); err != nil {
		if err == repository.ErrMemberNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete member"})
		}
		return
	}
	h.boards.Invalidate(memberID)

	c.JSON(http.StatusOK, gin.H{"message": "Member deleted successfully"})
}
