package services

import (
	"errors"

	"github.com/peopledesk/peopledesk/internal/models"
	"github.com/peopledesk/peopledesk/internal/utils"
	"gorm.io/gorm"
)

type CompanyService struct {
	db *gorm.DB
}

func NewCompanyService(db *gorm.DB) *CompanyService {
	return &CompanyService{db: db}
}

func (s *CompanyService) List() ([]models.Company, error) {
	var companies []models.Company
	if err := s.db.Order("name ASC").Find(&companies).Error; err != nil {
		return nil, err
	}
	for i := range companies {
		s.fillCompanyCounts(&companies[i])
	}
	return companies, nil
}

func (s *CompanyService) GetBySlug(slug string) (*models.Company, error) {
	var company models.Company
	if err := s.db.Where("slug = ?", slug).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "company", Ref: slug}
		}
		return nil, err
	}
	s.fillCompanyCounts(&company)
	return &company, nil
}

// Create is used by seeding and admin tooling; the public API surface for
// companies is read-only.
func (s *CompanyService) Create(name string) (*models.Company, error) {
	company := models.Company{
		Name: name,
		Slug: utils.Slugify(name),
	}
	if err := s.db.Create(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (s *CompanyService) fillCompanyCounts(c *models.Company) {
	s.db.Model(&models.Department{}).Where("company_id = ?", c.ID).Count(&c.DepartmentCount)
	s.db.Model(&models.Employee{}).Where("company_id = ?", c.ID).Count(&c.EmployeeCount)
	s.db.Model(&models.Project{}).Where("company_id = ?", c.ID).Count(&c.ProjectCount)
}

type DepartmentService struct {
	db *gorm.DB
}

func NewDepartmentService(db *gorm.DB) *DepartmentService {
	return &DepartmentService{db: db}
}

func (s *DepartmentService) List(companySlug string) ([]models.Department, error) {
	query := s.db.Preload("Company").Order("name ASC")
	if companySlug != "" {
		query = query.Where("company_id IN (?)",
			s.db.Model(&models.Company{}).Select("id").Where("slug = ?", companySlug))
	}

	var departments []models.Department
	if err := query.Find(&departments).Error; err != nil {
		return nil, err
	}
	for i := range departments {
		s.fillDepartmentCounts(&departments[i])
	}
	return departments, nil
}

func (s *DepartmentService) GetBySlug(slug string) (*models.Department, error) {
	var department models.Department
	if err := s.db.Preload("Company").Where("slug = ?", slug).First(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "department", Ref: slug}
		}
		return nil, err
	}
	s.fillDepartmentCounts(&department)
	return &department, nil
}

// Create derives the department slug from its name and company slug, so two
// companies can both have an "engineering" department.
func (s *DepartmentService) Create(companySlug, name string) (*models.Department, error) {
	var company models.Company
	if err := s.db.Where("slug = ?", companySlug).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &InvalidReferenceError{Entity: "company", Ref: companySlug}
		}
		return nil, err
	}

	department := models.Department{
		CompanyID: company.ID,
		Name:      name,
		Slug:      utils.Slugify(name) + "-" + company.Slug,
	}
	if err := s.db.Create(&department).Error; err != nil {
		return nil, err
	}
	department.Company = &company
	return &department, nil
}

func (s *DepartmentService) fillDepartmentCounts(d *models.Department) {
	s.db.Model(&models.Employee{}).Where("department_id = ?", d.ID).Count(&d.EmployeeCount)
	s.db.Model(&models.Project{}).Where("department_id = ?", d.ID).Count(&d.ProjectCount)
}
