package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"ecohub.backend/internal/domain/entities"
	domainerrors "ecohub.backend/internal/domain/errors"
	"ecohub.backend/internal/domain/repositories"
	"ecohub.backend/internal/interfaces/http/middleware"
	"ecohub.backend/internal/interfaces/http/response"
	"ecohub.backend/internal/usecases"
)

// AdminHandler handles moderation endpoints. Routes are mounted behind
// RequireAuth + RequireAdmin.
type AdminHandler struct {
	moderationUsecase *usecases.ModerationUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(moderationUsecase *usecases.ModerationUsecase) *AdminHandler {
	return &AdminHandler{moderationUsecase: moderationUsecase}
}

// ListUsers lists accounts with optional search and filters
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	filter := repositories.AccountFilter{
		Search: c.Query("search"),
		Role:   entities.Role(c.Query("role")),
		Status: entities.AccountStatus(c.Query("status")),
	}

	accounts, err := h.moderationUsecase.ListAccounts(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"users": accounts})
}

// SuspendUser suspends an account
// PUT /api/v1/admin/users/:id/suspend
func (h *AdminHandler) SuspendUser(c *gin.Context) {
	id, admin, ok := h.targetAndActor(c)
	if !ok {
		return
	}

	var input struct {
		Reason string `json:"reason"`
	}
	// Reason is optional; an empty body is fine.
	_ = c.ShouldBindJSON(&input)

	if err := h.moderationUsecase.Suspend(c.Request.Context(), id, admin.ID, input.Reason); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Account suspended"})
}

// ActivateUser reactivates an account
// PUT /api/v1/admin/users/:id/activate
func (h *AdminHandler) ActivateUser(c *gin.Context) {
	id, admin, ok := h.targetAndActor(c)
	if !ok {
		return
	}

	if err := h.moderationUsecase.Activate(c.Request.Context(), id, admin.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Account activated"})
}

// ChangeRole overwrites an account's role
// PUT /api/v1/admin/users/:id/role
func (h *AdminHandler) ChangeRole(c *gin.Context) {
	id, admin, ok := h.targetAndActor(c)
	if !ok {
		return
	}

	var input struct {
		Role entities.Role `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	if err := h.moderationUsecase.ChangeRole(c.Request.Context(), id, input.Role, admin.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Role updated", "role": input.Role})
}

// PendingProfiles returns the verification queue
// GET /api/v1/admin/profiles/pending
func (h *AdminHandler) PendingProfiles(c *gin.Context) {
	kind := entities.ProfileKind(c.Query("kind"))
	if kind != "" && !kind.Valid() {
		response.Error(c, domainerrors.Validation("Invalid profile kind"))
		return
	}

	profiles, err := h.moderationUsecase.PendingProfiles(c.Request.Context(), kind)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profiles": profiles})
}

// VerifyProfile applies an admin decision to a pending profile
// PUT /api/v1/admin/profiles/:id/verify
func (h *AdminHandler) VerifyProfile(c *gin.Context) {
	id, admin, ok := h.targetAndActor(c)
	if !ok {
		return
	}

	var input entities.VerifyProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	if err := h.moderationUsecase.VerifyProfile(c.Request.Context(), id, admin.ID, input.Decision, input.Notes); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Profile " + string(input.Decision)})
}

// AuditLog returns audit trail entries
// GET /api/v1/admin/audit-log
func (h *AdminHandler) AuditLog(c *gin.Context) {
	var targetID *uuid.UUID
	if raw := c.Query("targetId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, domainerrors.Validation("Invalid target ID"))
			return
		}
		targetID = &id
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	entries, err := h.moderationUsecase.AuditTrail(c.Request.Context(), targetID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"entries": entries})
}

// GetStats returns dashboard counts
// GET /api/v1/admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.moderationUsecase.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

func (h *AdminHandler) targetAndActor(c *gin.Context) (uuid.UUID, *entities.Account, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.Validation("Invalid ID"))
		return uuid.Nil, nil, false
	}

	admin, ok := middleware.GetAccount(c)
	if !ok {
		response.Error(c, domainerrors.TokenInvalid())
		return uuid.Nil, nil, false
	}

	return id, admin, true
}
