package services

import (
	"testing"
	"time"

	"github.com/peopledesk/peopledesk/internal/models"
)

func TestDashboardService_GetStats(t *testing.T) {
	f := newReviewFixture(t)
	svc := NewDashboardService(f.db)

	f.createPending(t)
	review := f.createPending(t)
	date := time.Now().AddDate(0, 0, 7)
	if _, err := f.svc.Transition(review.ID, &TransitionRequest{
		Stage: "scheduled", ScheduledDate: &date,
	}, f.manager); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	resp, err := svc.GetStats()
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}

	if resp.Stats.Companies != 1 {
		t.Errorf("Companies = %d, expected 1", resp.Stats.Companies)
	}
	if resp.Stats.Employees != 3 {
		t.Errorf("Employees = %d, expected 3", resp.Stats.Employees)
	}
	if resp.Stats.Reviews != 2 {
		t.Errorf("Reviews = %d, expected 2", resp.Stats.Reviews)
	}

	if resp.ReviewsByStage[string(models.StagePending)] != 1 {
		t.Errorf("pending count = %d, expected 1", resp.ReviewsByStage[string(models.StagePending)])
	}
	if resp.ReviewsByStage[string(models.StageScheduled)] != 1 {
		t.Errorf("scheduled count = %d, expected 1", resp.ReviewsByStage[string(models.StageScheduled)])
	}
}
