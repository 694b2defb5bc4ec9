package services

import (
	"errors"
	"strconv"
	"time"

	"github.com/peopledesk/peopledesk/internal/models"
	"gorm.io/gorm"
)

type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

type CreateReviewRequest struct {
	Employee      string     `json:"employee" binding:"required"` // slug or numeric id
	ProjectID     *uint      `json:"project_id"`
	ScheduledDate *time.Time `json:"scheduled_date"`
}

type TransitionRequest struct {
	Stage         string     `json:"stage" binding:"required"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	Feedback      string     `json:"feedback"`
	ReviewedBy    string     `json:"reviewed_by"` // employee slug or id, defaults to the acting principal
	ApprovedBy    string     `json:"approved_by"`
}

type ReviewListRequest struct {
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	Employee   string `form:"employee"`
	ProjectID  *uint  `form:"project"`
	Department string `form:"department"`
	Stage      string `form:"stage"`
}

type ReviewListResponse struct {
	Total    int64                      `json:"total"`
	Page     int                        `json:"page"`
	PageSize int                        `json:"page_size"`
	Items    []models.PerformanceReview `json:"items"`
}

// Create opens a review for an employee. Manager only. The review starts in
// pending, or directly in scheduled when a scheduled date is supplied.
func (s *ReviewService) Create(req *CreateReviewRequest, p Principal) (*models.PerformanceReview, error) {
	if p.Role != models.RoleManager {
		return nil, &ForbiddenError{Reason: "only managers can create reviews"}
	}

	employee, err := findEmployeeByRef(s.db, req.Employee)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &InvalidReferenceError{Entity: "employee", Ref: req.Employee}
		}
		return nil, err
	}

	review := models.PerformanceReview{
		EmployeeID: employee.ID,
		Stage:      models.StagePending,
	}

	if req.ProjectID != nil {
		var project models.Project
		if err := s.db.First(&project, *req.ProjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &InvalidReferenceError{Entity: "project", Ref: strconv.FormatUint(uint64(*req.ProjectID), 10)}
			}
			return nil, err
		}
		review.ProjectID = req.ProjectID
	}

	if req.ScheduledDate != nil {
		review.Stage = models.StageScheduled
		review.ScheduledDate = req.ScheduledDate
	}

	if err := s.db.Create(&review).Error; err != nil {
		return nil, err
	}

	return s.load(review.ID)
}

// Get retrieves a single review, subject to the read guard.
func (s *ReviewService) Get(id uint, p Principal) (*models.PerformanceReview, error) {
	review, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if !CanReadReview(p, review) {
		return nil, &ForbiddenError{Reason: "you are not allowed to view this review"}
	}
	return review, nil
}

// List returns reviews visible to the principal, optionally filtered by
// employee, project, department or stage.
func (s *ReviewService) List(req *ReviewListRequest, p Principal) (*ReviewListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	query := ScopeReviews(p, s.db.Model(&models.PerformanceReview{}))
	if query == nil {
		return &ReviewListResponse{Page: req.Page, PageSize: req.PageSize, Items: []models.PerformanceReview{}}, nil
	}

	if req.Employee != "" {
		employee, err := findEmployeeByRef(s.db, req.Employee)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &InvalidReferenceError{Entity: "employee", Ref: req.Employee}
			}
			return nil, err
		}
		query = query.Where("employee_id = ?", employee.ID)
	}
	if req.ProjectID != nil {
		query = query.Where("project_id = ?", *req.ProjectID)
	}
	if req.Department != "" {
		query = query.Where("employee_id IN (?)",
			s.db.Model(&models.Employee{}).Select("employees.id").
				Joins("JOIN departments ON departments.id = employees.department_id").
				Where("departments.slug = ?", req.Department))
	}
	if req.Stage != "" {
		query = query.Where("stage = ?", req.Stage)
	}

	var total int64
	query.Count(&total)

	var reviews []models.PerformanceReview
	offset := (req.Page - 1) * req.PageSize
	if err := query.Preload("Employee").Preload("Project").
		Offset(offset).Limit(req.PageSize).Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}

	return &ReviewListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    reviews,
	}, nil
}

// Transition moves a review to the requested stage. The order of checks is
// fixed: stage validity and the transition table first, then the
// authorization guard, then stage-specific payload fields. The write is a
// single UPDATE guarded by the stage read at fetch time, so a concurrent
// transition on the same review makes exactly one caller lose with
// ConcurrentModificationError. Nothing is persisted on any failure.
func (s *ReviewService) Transition(id uint, req *TransitionRequest, p Principal) (*models.PerformanceReview, error) {
	review, err := s.load(id)
	if err != nil {
		return nil, err
	}

	target := models.ReviewStage(req.Stage)
	if !target.Valid() || !review.CanTransitionTo(target) {
		return nil, &InvalidTransitionError{From: review.Stage, To: target}
	}

	if err := CheckTransition(p, review, target); err != nil {
		return nil, err
	}

	updates, err := s.stageUpdates(review, target, req, p)
	if err != nil {
		return nil, err
	}
	updates["stage"] = target
	updates["updated_at"] = time.Now()

	// Compare-and-swap on the stage read above; a lost race affects zero rows.
	result := s.db.Model(&models.PerformanceReview{}).
		Where("id = ? AND stage = ?", review.ID, review.Stage).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, &ConcurrentModificationError{ReviewID: review.ID, Expected: review.Stage}
	}

	return s.load(review.ID)
}

// Delete removes a review. This is an administrative escape hatch outside
// the workflow; the lifecycle itself never deletes records.
func (s *ReviewService) Delete(id uint, p Principal) error {
	if p.Role != models.RoleAdmin {
		return &ForbiddenError{Reason: "only admins can delete reviews"}
	}
	result := s.db.Delete(&models.PerformanceReview{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Entity: "review", Ref: strconv.FormatUint(uint64(id), 10)}
	}
	return nil
}

// stageUpdates builds the column updates specific to the target stage.
// ReviewedBy/ApprovedBy fall back to the acting principal's own employee
// profile; prior values survive rework loops until explicitly overwritten.
// Approval and rejection require a resolvable approver.
func (s *ReviewService) stageUpdates(review *models.PerformanceReview, target models.ReviewStage, req *TransitionRequest, p Principal) (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	switch target {
	case models.StageScheduled:
		if req.ScheduledDate == nil {
			return nil, &MissingFieldError{Field: "scheduled_date"}
		}
		updates["scheduled_date"] = *req.ScheduledDate

	case models.StageFeedbackProvided:
		if req.Feedback == "" {
			return nil, &MissingFieldError{Field: "feedback"}
		}
		updates["feedback"] = req.Feedback
		reviewerID, err := s.actorEmployeeID(req.ReviewedBy, p)
		if err != nil {
			return nil, err
		}
		if reviewerID != nil {
			updates["reviewed_by_id"] = *reviewerID
		}

	case models.StageApproved, models.StageRejected:
		// A decision always records who made it. A manager without an
		// employee profile must name the approver explicitly.
		approverID, err := s.actorEmployeeID(req.ApprovedBy, p)
		if err != nil {
			return nil, err
		}
		if approverID == nil {
			return nil, &MissingFieldError{Field: "approved_by"}
		}
		updates["approved_by_id"] = *approverID
	}

	return updates, nil
}

// actorEmployeeID resolves an explicit employee reference from the payload,
// falling back to the principal's own employee profile when absent.
func (s *ReviewService) actorEmployeeID(ref string, p Principal) (*uint, error) {
	if ref == "" {
		return p.EmployeeID, nil
	}
	employee, err := findEmployeeByRef(s.db, ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &InvalidReferenceError{Entity: "employee", Ref: ref}
		}
		return nil, err
	}
	return &employee.ID, nil
}

func (s *ReviewService) load(id uint) (*models.PerformanceReview, error) {
	var review models.PerformanceReview
	if err := s.db.Preload("Employee").Preload("Project").
		Preload("ReviewedBy").Preload("ApprovedBy").
		First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "review", Ref: strconv.FormatUint(uint64(id), 10)}
		}
		return nil, err
	}
	return &review, nil
}
