package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/peopledesk/peopledesk/internal/models"
	"github.com/peopledesk/peopledesk/internal/utils"
	"gorm.io/gorm"
)

type EmployeeService struct {
	db *gorm.DB
}

func NewEmployeeService(db *gorm.DB) *EmployeeService {
	return &EmployeeService{db: db}
}

type EmployeeListRequest struct {
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	Company    string `form:"company"`    // company slug
	Department string `form:"department"` // department slug
	Name       string `form:"name"`
}

type EmployeeListResponse struct {
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Items    []models.Employee `json:"items"`
}

type CreateEmployeeRequest struct {
	UserID       uint       `json:"user_id" binding:"required"`
	CompanyID    uint       `json:"company_id" binding:"required"`
	DepartmentID uint       `json:"department_id" binding:"required"`
	Name         string     `json:"name" binding:"required"`
	Email        string     `json:"email" binding:"required,email"`
	Mobile       string     `json:"mobile"`
	Address      string     `json:"address"`
	Position     string     `json:"position"`
	HiredOn      *time.Time `json:"hired_on"`
}

type UpdateEmployeeRequest struct {
	DepartmentID *uint      `json:"department_id"`
	Name         string     `json:"name"`
	Mobile       string     `json:"mobile"`
	Address      string     `json:"address"`
	Position     string     `json:"position"`
	HiredOn      *time.Time `json:"hired_on"`
}

func (s *EmployeeService) List(req *EmployeeListRequest) (*EmployeeListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	query := s.db.Model(&models.Employee{})

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

	var employees []models.Employee
	offset := (req.Page - 1) * req.PageSize
	if err := query.Preload("Company").Preload("Department").
		Offset(offset).Limit(req.PageSize).Order("name ASC").
		Find(&employees).Error; err != nil {
		return nil, err
	}

	return &EmployeeListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    employees,
	}, nil
}

func (s *EmployeeService) GetBySlug(slug string) (*models.Employee, error) {
	var employee models.Employee
	if err := s.db.Preload("User").Preload("Company").Preload("Department").
		Where("slug = ?", slug).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "employee", Ref: slug}
		}
		return nil, err
	}
	return &employee, nil
}

// Create adds a directory profile for an existing user.
func (s *EmployeeService) Create(req *CreateEmployeeRequest) (*models.Employee, error) {
	var user models.User
	if err := s.db.First(&user, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &InvalidReferenceError{Entity: "user", Ref: strconv.FormatUint(uint64(req.UserID), 10)}
		}
		return nil, err
	}
	if err := s.checkOrgRefs(s.db, req.CompanyID, req.DepartmentID); err != nil {
		return nil, err
	}

	employee := models.Employee{
		UserID:       req.UserID,
		CompanyID:    req.CompanyID,
		DepartmentID: req.DepartmentID,
		Name:         req.Name,
		Email:        req.Email,
		Mobile:       req.Mobile,
		Address:      req.Address,
		Position:     req.Position,
		HiredOn:      req.HiredOn,
	}
	employee.Slug = uniqueEmployeeSlug(s.db, req.Email)

	if err := s.db.Create(&employee).Error; err != nil {
		return nil, err
	}
	return s.GetBySlug(employee.Slug)
}

func (s *EmployeeService) Update(slug string, req *UpdateEmployeeRequest) (*models.Employee, error) {
	employee, err := s.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.DepartmentID != nil {
		var department models.Department
		if err := s.db.First(&department, *req.DepartmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &InvalidReferenceError{Entity: "department", Ref: strconv.FormatUint(uint64(*req.DepartmentID), 10)}
			}
			return nil, err
		}
		updates["department_id"] = *req.DepartmentID
	}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Mobile != "" {
		updates["mobile"] = req.Mobile
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.Position != "" {
		updates["position"] = req.Position
	}
	if req.HiredOn != nil {
		updates["hired_on"] = *req.HiredOn
	}

	if len(updates) > 0 {
		if err := s.db.Model(employee).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetBySlug(slug)
}

func (s *EmployeeService) Delete(slug string) error {
	result := s.db.Where("slug = ?", slug).Delete(&models.Employee{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Entity: "employee", Ref: slug}
	}
	return nil
}

// EmployeeIDForUser is the explicit presence lookup for a user's employee
// profile. Returns (nil, false) when the user has none.
func (s *EmployeeService) EmployeeIDForUser(userID uint) (*uint, bool) {
	var employee models.Employee
	if err := s.db.Select("id").Where("user_id = ?", userID).First(&employee).Error; err != nil {
		return nil, false
	}
	return &employee.ID, true
}

func (s *EmployeeService) checkOrgRefs(tx *gorm.DB, companyID, departmentID uint) error {
	var company models.Company
	if err := tx.First(&company, companyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &InvalidReferenceError{Entity: "company", Ref: strconv.FormatUint(uint64(companyID), 10)}
		}
		return err
	}
	var department models.Department
	if err := tx.First(&department, departmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &InvalidReferenceError{Entity: "department", Ref: strconv.FormatUint(uint64(departmentID), 10)}
		}
		return err
	}
	return nil
}

// findEmployeeByRef resolves an opaque employee reference: a slug, or a
// numeric id for callers that carry ids around.
func findEmployeeByRef(db *gorm.DB, ref string) (*models.Employee, error) {
	var employee models.Employee
	if id, err := strconv.ParseUint(ref, 10, 32); err == nil {
		if err := db.First(&employee, uint(id)).Error; err != nil {
			return nil, err
		}
		return &employee, nil
	}
	if err := db.Where("slug = ?", ref).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// uniqueEmployeeSlug derives a slug from the email local part, suffixing a
// counter on collision.
func uniqueEmployeeSlug(db *gorm.DB, email string) string {
	base := utils.EmailSlug(email)
	slug := base
	for i := 2; ; i++ {
		var count int64
		db.Model(&models.Employee{}).Where("slug = ?", slug).Count(&count)
		if count == 0 {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
