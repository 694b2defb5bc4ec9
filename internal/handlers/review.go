package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/peopledesk/peopledesk/internal/config"
	"github.com/peopledesk/peopledesk/internal/middleware"
	"github.com/peopledesk/peopledesk/internal/services"
	"github.com/peopledesk/peopledesk/pkg/response"
	"gorm.io/gorm"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
	authService   *services.AuthService
}

func NewReviewHandler(db *gorm.DB, cfg *config.Config) *ReviewHandler {
	return &ReviewHandler{
		reviewService: services.NewReviewService(db),
		authService:   services.NewAuthService(db, &cfg.JWT),
	}
}

func (h *ReviewHandler) principal(c *gin.Context) services.Principal {
	return h.authService.PrincipalForUser(middleware.GetUserID(c), middleware.GetRole(c))
}

// Create opens a performance review
// POST /api/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	review, err := h.reviewService.Create(&req, h.principal(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, review)
}

// List returns reviews visible to the caller
// GET /api/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	var req services.ReviewListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.reviewService.List(&req, h.principal(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, resp)
}

// GetByID returns a single review
// GET /api/reviews/:id
func (h *ReviewHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid review id")
		return
	}

	review, err := h.reviewService.Get(uint(id), h.principal(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, review)
}

// Transition moves a review to a new stage
// POST /api/reviews/:id/transition
func (h *ReviewHandler) Transition(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid review id")
		return
	}

	var req services.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	review, err := h.reviewService.Transition(uint(id), &req, h.principal(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, review)
}

// Delete removes a review (administrative, outside the workflow)
// DELETE /api/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid review id")
		return
	}

	if err := h.reviewService.Delete(uint(id), h.principal(c)); err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "review deleted"})
}
