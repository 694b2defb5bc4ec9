package services

import (
	"github.com/peopledesk/peopledesk/internal/models"
	"gorm.io/gorm"
)

// Principal is the authenticated actor making a request. EmployeeID is nil
// when the user has no employee profile (admins, managers without one).
type Principal struct {
	UserID     uint
	Role       string
	EmployeeID *uint
}

// IsEmployee reports whether the principal is linked to an employee profile.
func (p Principal) IsEmployee() bool {
	return p.EmployeeID != nil
}

// CheckTransition decides whether the principal may move the review to the
// target stage. The transition table itself is validated by the caller
// beforehand; this is purely the authorization rule set:
//
//   - scheduling and approval decisions are manager-only
//   - feedback and submission for approval belong to the review's subject
//     employee, matched by identity rather than role
//
// Denials carry a reason distinguishing a wrong role from an identity
// mismatch.
func CheckTransition(p Principal, review *models.PerformanceReview, target models.ReviewStage) error {
	switch target {
	case models.StageScheduled:
		if p.Role != models.RoleManager {
			return &ForbiddenError{Reason: "only managers can schedule reviews"}
		}
	case models.StageApproved, models.StageRejected:
		if p.Role != models.RoleManager {
			return &ForbiddenError{Reason: "only managers can approve or reject reviews"}
		}
	case models.StageFeedbackProvided, models.StageUnderApproval:
		if p.Role == models.RoleManager {
			return &ForbiddenError{Reason: "managers cannot act for the reviewed employee"}
		}
		if !p.IsEmployee() {
			return &ForbiddenError{Reason: "no employee profile linked to this account"}
		}
		if *p.EmployeeID != review.EmployeeID {
			return &ForbiddenError{Reason: "not the assigned employee for this review"}
		}
	}
	return nil
}

// CanReadReview reports whether the principal may see the given review.
// Managers and admins see all reviews; an employee sees only their own.
func CanReadReview(p Principal, review *models.PerformanceReview) bool {
	switch p.Role {
	case models.RoleAdmin, models.RoleManager:
		return true
	case models.RoleEmployee:
		return p.IsEmployee() && *p.EmployeeID == review.EmployeeID
	}
	return false
}

// ScopeReviews narrows a review query to what the principal may list.
// Returns nil when the principal may see nothing at all.
func ScopeReviews(p Principal, query *gorm.DB) *gorm.DB {
	switch p.Role {
	case models.RoleAdmin, models.RoleManager:
		return query
	case models.RoleEmployee:
		if !p.IsEmployee() {
			return nil
		}
		return query.Where("employee_id = ?", *p.EmployeeID)
	}
	return nil
}
