package models

import (
	"time"

	"gorm.io/gorm"
)

// Employee is the directory profile linked one-to-one to a User.
type Employee struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	User         *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Slug         string         `gorm:"uniqueIndex;size:255" json:"slug"`
	CompanyID    uint           `gorm:"index;not null" json:"company_id"`
	Company      *Company       `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	DepartmentID uint           `gorm:"index;not null" json:"department_id"`
	Department   *Department    `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Mobile       string         `gorm:"size:20" json:"mobile"`
	Address      string         `gorm:"type:text" json:"address"`
	Position     string         `gorm:"size:100" json:"position"`
	HiredOn      *time.Time     `json:"hired_on"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	DaysEmployed int `gorm:"-" json:"days_employed"`
}

func (Employee) TableName() string { return "employees" }

// AfterFind computes the derived employment duration.
func (e *Employee) AfterFind(tx *gorm.DB) error {
	if e.HiredOn != nil {
		e.DaysEmployed = int(time.Since(*e.HiredOn).Hours() / 24)
	}
	return nil
}
