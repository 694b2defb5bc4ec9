package models

import (
	"time"
)

// ReviewStage is one of the closed set of performance review stages.
type ReviewStage string

const (
	StagePending          ReviewStage = "pending"
	StageScheduled        ReviewStage = "scheduled"
	StageFeedbackProvided ReviewStage = "feedback_provided"
	StageUnderApproval    ReviewStage = "under_approval"
	StageApproved         ReviewStage = "approved"
	StageRejected         ReviewStage = "rejected"
)

// reviewTransitions is the authoritative transition table. Approved is
// terminal; rejected loops back to feedback_provided for rework.
var reviewTransitions = map[ReviewStage][]ReviewStage{
	StagePending:          {StageScheduled},
	StageScheduled:        {StageFeedbackProvided},
	StageFeedbackProvided: {StageUnderApproval},
	StageUnderApproval:    {StageApproved, StageRejected},
	StageRejected:         {StageFeedbackProvided},
	StageApproved:         {},
}

// Valid reports whether s belongs to the closed stage enumeration.
func (s ReviewStage) Valid() bool {
	_, ok := reviewTransitions[s]
	return ok
}

// AllowedTransitions returns the target stages reachable from "from".
func AllowedTransitions(from ReviewStage) []ReviewStage {
	return reviewTransitions[from]
}

// PerformanceReview tracks one employee review through its lifecycle.
// The employee reference is set at creation and never changes; the project
// reference is cleared when the project is deleted.
type PerformanceReview struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	EmployeeID    uint        `gorm:"index;not null" json:"employee_id"`
	Employee      *Employee   `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	ProjectID     *uint       `gorm:"index" json:"project_id"`
	Project       *Project    `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Stage         ReviewStage `gorm:"size:32;default:pending;index" json:"stage"`
	ScheduledDate *time.Time  `json:"scheduled_date"`
	Feedback      string      `gorm:"type:text" json:"feedback"`
	ReviewedByID  *uint       `json:"reviewed_by_id"`
	ReviewedBy    *Employee   `gorm:"foreignKey:ReviewedByID" json:"reviewed_by,omitempty"`
	ApprovedByID  *uint       `json:"approved_by_id"`
	ApprovedBy    *Employee   `gorm:"foreignKey:ApprovedByID" json:"approved_by,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func (PerformanceReview) TableName() string { return "performance_reviews" }

// CanTransitionTo reports whether the review may move to the target stage.
// A stage is never reachable from itself.
func (r *PerformanceReview) CanTransitionTo(target ReviewStage) bool {
	for _, next := range reviewTransitions[r.Stage] {
		if next == target {
			return true
		}
	}
	return false
}
