package models

import (
	"time"

	"gorm.io/gorm"
)

// Company is the top-level organizational unit.
type Company struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Slug      string         `gorm:"uniqueIndex;size:255" json:"slug"`
	Name      string         `gorm:"uniqueIndex;size:255;not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Aggregates filled by the service layer, not stored.
	DepartmentCount int64 `gorm:"-" json:"department_count"`
	EmployeeCount   int64 `gorm:"-" json:"employee_count"`
	ProjectCount    int64 `gorm:"-" json:"project_count"`
}

// Department belongs to a company.
type Department struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Slug      string         `gorm:"uniqueIndex;size:255" json:"slug"`
	CompanyID uint           `gorm:"index;not null" json:"company_id"`
	Company   *Company       `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	EmployeeCount int64 `gorm:"-" json:"employee_count"`
	ProjectCount  int64 `gorm:"-" json:"project_count"`
}

func (Company) TableName() string    { return "companies" }
func (Department) TableName() string { return "departments" }
