package services

import (
	"errors"
	"strconv"
	"time"

	"github.com/peopledesk/peopledesk/internal/models"
	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type ProjectListRequest struct {
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	Company    string `form:"company"`    // company slug
	Department string `form:"department"` // department slug
	Name       string `form:"name"`
}

type ProjectListResponse struct {
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Items    []models.Project `json:"items"`
}

type CreateProjectRequest struct {
	CompanyID    uint       `json:"company_id" binding:"required"`
	DepartmentID uint       `json:"department_id" binding:"required"`
	Name         string     `json:"name" binding:"required"`
	Description  string     `json:"description"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Employees    []string   `json:"employees"` // employee slugs to assign
}

type UpdateProjectRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Employees   *[]string  `json:"employees"` // replaces the roster when present
}

func (s *ProjectService) List(req *ProjectListRequest) (*ProjectListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	query := s.db.Model(&models.Project{})

	if req.Company != "" {
		query = query.Where("company_id IN (?)",
			s.db.Model(&models.Company{}).Select("id").Where("slug = ?", req.Company))
	}
	if req.Department != "" {
		query = query.Where("department_id IN (?)",
			s.db.Model(&models.Department{}).Select("id").Where("slug = ?", req.Department))
	}
	if req.Name != "" {
		query = query.Where("name LIKE ?", "%"+req.Name+"%")
	}

	var total int64
	query.Count(&total)

	var projects []models.Project
	offset := (req.Page - 1) * req.PageSize
	if err := query.Preload("Company").Preload("Department").
		Offset(offset).Limit(req.PageSize).Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}

	return &ProjectListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    projects,
	}, nil
}

func (s *ProjectService) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.Preload("Company").Preload("Department").Preload("AssignedEmployees").
		First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "project", Ref: strconv.FormatUint(uint64(id), 10)}
		}
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) Create(req *CreateProjectRequest) (*models.Project, error) {
	if err := (&EmployeeService{db: s.db}).checkOrgRefs(s.db, req.CompanyID, req.DepartmentID); err != nil {
		return nil, err
	}

	assigned, err := s.resolveEmployees(req.Employees)
	if err != nil {
		return nil, err
	}

	project := models.Project{
		CompanyID:         req.CompanyID,
		DepartmentID:      req.DepartmentID,
		Name:              req.Name,
		Description:       req.Description,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		AssignedEmployees: assigned,
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}
	return s.GetByID(project.ID)
}

func (s *ProjectService) Update(id uint, req *UpdateProjectRequest) (*models.Project, error) {
	project, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.StartDate != nil {
		updates["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}

	if len(updates) > 0 {
		if err := s.db.Model(project).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if req.Employees != nil {
		assigned, err := s.resolveEmployees(*req.Employees)
		if err != nil {
			return nil, err
		}
		if err := s.db.Model(project).Association("AssignedEmployees").Replace(assigned); err != nil {
			return nil, err
		}
	}

	return s.GetByID(id)
}

// Delete removes a project and clears the project reference on any reviews
// pointing at it (set-null), in one transaction.
func (s *ProjectService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "project", Ref: strconv.FormatUint(uint64(id), 10)}
			}
			return err
		}

		if err := tx.Model(&models.PerformanceReview{}).
			Where("project_id = ?", id).
			Update("project_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&project).Error
	})
}

func (s *ProjectService) resolveEmployees(refs []string) ([]models.Employee, error) {
	employees := make([]models.Employee, 0, len(refs))
	for _, ref := range refs {
		employee, err := findEmployeeByRef(s.db, ref)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &InvalidReferenceError{Entity: "employee", Ref: ref}
			}
			return nil, err
		}
		employees = append(employees, *employee)
	}
	return employees, nil
}
