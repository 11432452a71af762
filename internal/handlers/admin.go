package handlers

import (
	"net/http"
	"strconv"

	"clap-go/internal/models"
	"clap-go/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler covers the organization / cohort / participant admin tables
// and the cached per-organization statistics.
type AdminHandler struct {
	log          *zap.Logger
	participants *repository.Participants
	attempts     *repository.Attempts
	questions    *repository.Questions
	stats        *repository.Stats
}

func NewAdminHandler(log *zap.Logger, participants *repository.Participants, attempts *repository.Attempts, questions *repository.Questions, stats *repository.Stats) *AdminHandler {
	return &AdminHandler{
		log:          log,
		participants: participants,
		attempts:     attempts,
		questions:    questions,
		stats:        stats,
	}
}

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *AdminHandler) CreateOrganization(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "name is required"})
		return
	}

	org := &models.Organization{Name: req.Name}
	if err := h.participants.CreateOrganization(c.Request.Context(), org); err != nil {
		h.log.Error("Failed to create organization", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action_failed", "message": "could not create organization"})
		return
	}
	c.JSON(http.StatusCreated, org)
}

func (h *AdminHandler) ListOrganizations(c *gin.Context) {
	orgs, err := h.participants.ListOrganizations(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list organizations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action_failed", "message": "could not load organizations"})
		return
	}
	c.JSON(http.StatusOK, orgs)
}

func (h *AdminHandler) UpdateOrganization(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "name is required"})
		return
	}
	if err := h.participants.UpdateOrganization(c.Request.Context(), id, req.Name); err != nil {
		h.log.Error("Failed to update organization", zap.Uint("orgID", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action_failed", "message": "could not update organization"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) DeleteOrganization(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.participants.DeleteOrganization(c.Request.Context(), id); err != nil {
		h.log.Error("Failed to delete organization", zap.Uint("orgID", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action_failed", "message": "could not delete organization"})
		return
	}
	h.stats.Invalidate(id)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type createCohortRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *AdminHandler) CreateCohort(c *gin.Context) {
	orgID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req createCohortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "name is required"})
		return
	}

	cohort := &models.Cohort{OrganizationID: orgID, Name: req.Name}
	if err := h.participants.CreateCohort(c.Request.Context(), cohort); err != nil {
		h.log.Error("Failed to create cohort", zap.Uint("orgID", orgID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action_failed", "message": "could not create cohort"})
		return
	}
	c.JSON(http.StatusCreated, cohort)
}

func (h *AdminHandler) ListCohorts(c *gin.Context) {
	orgID, ok := pathID(c, "id")
	if !ok {
		return
	}
	cohorts, err := h.participants.ListCohorts(c.Request.Context(), orgID)
	if err != nil {
		h.log.Error("Failed to list cohorts", zap.Uint("orgID", orgID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action_failed", "message": "could not load cohorts"})
		return
	}
	c.JSON(http.StatusOK, cohorts)
}

func (h *AdminHandler) DeleteCohort(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.participants.DeleteCohort(c.Request.Context(), id); err != nil {
		h.log.Error("Failed to delete cohort", zap.Uint("cohortID", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action_failed", "message": "could not delete cohort"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type createParticipantRequest struct {
	CohortID  uint   `json:"cohortId" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required"`
}

func (h *AdminHandler) CreateParticipant(c *gin.Context) {
	var req createParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "cohortId, firstName, lastName and email are required"})
		return
	}

	participant := &models.Participant{
		CohortID:  req.CohortID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if err := h.participants.CreateParticipant(c.Request.Context(), participant); err != nil {
		h.log.Error("Failed to create participant", zap.Uint("cohortID", req.CohortID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action_failed", "message": "could not create participant"})
		return
	}
	h.invalidateStatsForParticipant(c, participant.ID)
	c.JSON(http.StatusCreated, participant)
}

func (h *AdminHandler) ListParticipants(c *gin.Context) {
	cohortID, ok := pathID(c, "id")
	if !ok {
		return
	}
	participants, err := h.participants.ListParticipants(c.Request.Context(), cohortID)
	if err != nil {
		h.log.Error("Failed to list participants", zap.Uint("cohortID", cohortID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action_failed", "message": "could not load participants"})
		return
	}
	c.JSON(http.StatusOK, participants)
}

type updateParticipantRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required"`
}

func (h *AdminHandler) UpdateParticipant(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "firstName, lastName and email are required"})
		return
	}
	if err := h.participants.UpdateParticipant(c.Request.Context(), id, req.FirstName, req.LastName, req.Email); err != nil {
		h.log.Error("Failed to update participant", zap.Uint("participantID", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action_failed", "message": "could not update participant"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) DeleteParticipant(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.invalidateStatsForParticipant(c, id)
	if err := h.participants.DeleteParticipant(c.Request.Context(), id); err != nil {
		h.log.Error("Failed to delete participant", zap.Uint("participantID", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action_failed", "message": "could not delete participant"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ParticipantAttempts lists a participant's attempt history for the admin
// detail page.
func (h *AdminHandler) ParticipantAttempts(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	attempts, err := h.attempts.ListForParticipant(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Failed to list attempts", zap.Uint("participantID", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action_failed", "message": "could not load attempts"})
		return
	}
	c.JSON(http.StatusOK, attempts)
}

// ListQuestions returns the full question bank for an assessment, in
// position order with options, for the admin preview page.
func (h *AdminHandler) ListQuestions(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	questions, err := h.questions.ListByAssessment(c.Request.Context(), int(id))
	if err != nil {
		h.log.Error("Failed to list questions", zap.Uint("assessmentID", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action_failed", "message": "could not load questions"})
		return
	}
	c.JSON(http.StatusOK, questions)
}

func (h *AdminHandler) OrgStats(c *gin.Context) {
	orgID, ok := pathID(c, "id")
	if !ok {
		return
	}
	stats, err := h.stats.OrgStats(c.Request.Context(), orgID)
	if err != nil {
		h.log.Error("Failed to compute org stats", zap.Uint("orgID", orgID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action_failed", "message": "could not load statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) invalidateStatsForParticipant(c *gin.Context, participantID uint) {
	participant, err := h.participants.GetParticipant(c.Request.Context(), participantID)
	if err != nil {
		return
	}
	h.stats.Invalidate(participant.Cohort.OrganizationID)
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
