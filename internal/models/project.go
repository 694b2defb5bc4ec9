package models

import (
	"time"

	"gorm.io/gorm"
)

// Project belongs to a company and department and carries an assignment roster.
type Project struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	CompanyID         uint           `gorm:"index;not null" json:"company_id"`
	Company           *Company       `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	DepartmentID      uint           `gorm:"index;not null" json:"department_id"`
	Department        *Department    `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Name              string         `gorm:"size:255;not null" json:"name"`
	Description       string         `gorm:"type:text" json:"description"`
	StartDate         *time.Time     `json:"start_date"`
	EndDate           *time.Time     `json:"end_date"`
	AssignedEmployees []Employee     `gorm:"many2many:project_employees" json:"assigned_employees,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Project) TableName() string { return "projects" }
