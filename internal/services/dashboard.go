package services

import (
	"github.com/peopledesk/peopledesk/internal/models"
	"gorm.io/gorm"
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type DashboardStats struct {
	Companies   int64 `json:"companies"`
	Departments int64 `json:"departments"`
	Employees   int64 `json:"employees"`
	Projects    int64 `json:"projects"`
	Reviews     int64 `json:"reviews"`
}

type DashboardResponse struct {
	Stats          DashboardStats   `json:"stats"`
	ReviewsByStage map[string]int64 `json:"reviews_by_stage"`
}

// GetStats returns entity counts and a per-stage review breakdown. Count
// aggregates are the only reporting this API does.
func (s *DashboardService) GetStats() (*DashboardResponse, error) {
	var stats DashboardStats
	s.db.Model(&models.Company{}).Count(&stats.Companies)
	s.db.Model(&models.Department{}).Count(&stats.Departments)
	s.db.Model(&models.Employee{}).Count(&stats.Employees)
	s.db.Model(&models.Project{}).Count(&stats.Projects)
	s.db.Model(&models.PerformanceReview{}).Count(&stats.Reviews)

	type stageCount struct {
		Stage string
		Count int64
	}
	var rows []stageCount
	if err := s.db.Model(&models.PerformanceReview{}).
		Select("stage, COUNT(*) as count").
		Group("stage").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	byStage := make(map[string]int64, len(rows))
	for _, row := range rows {
		byStage[row.Stage] = row.Count
	}

	return &DashboardResponse{Stats: stats, ReviewsByStage: byStage}, nil
}
