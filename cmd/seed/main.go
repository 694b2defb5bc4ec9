package main

import (
	"os"
	"time"

	"github.com/peopledesk/peopledesk/internal/config"
	"github.com/peopledesk/peopledesk/internal/models"
	"github.com/peopledesk/peopledesk/internal/utils"
	"github.com/peopledesk/peopledesk/pkg/logger"
	"gorm.io/gorm"
)

// Seeds a small demo org: one company, two departments, a manager and
// two employees, a project and a review mid-workflow. Safe to re-run;
// it skips seeding when the demo company already exists.
func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Init("info")
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()

	var existing int64
	db.Model(&models.Company{}).Where("slug = ?", "acme").Count(&existing)
	if existing > 0 {
		logger.Info().Msg("Demo data already present, nothing to do")
		return
	}

	if err := db.Transaction(seed); err != nil {
		logger.Fatalf("Seeding failed: %v", err)
	}
	logger.Info().Msg("Demo data seeded")
}

func seed(tx *gorm.DB) error {
	company := &models.Company{Slug: "acme", Name: "Acme"}
	if err := tx.Create(company).Error; err != nil {
		return err
	}

	engineering := &models.Department{Slug: "engineering-acme", CompanyID: company.ID, Name: "Engineering"}
	sales := &models.Department{Slug: "sales-acme", CompanyID: company.ID, Name: "Sales"}
	if err := tx.Create(engineering).Error; err != nil {
		return err
	}
	if err := tx.Create(sales).Error; err != nil {
		return err
	}

	hired := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	manager, err := seedPerson(tx, person{
		username: "mward", email: "maria.ward@acme.example", role: models.RoleManager,
		name: "Maria Ward", position: "Engineering Manager",
		departmentID: engineering.ID, companyID: company.ID, hiredOn: hired,
	})
	if err != nil {
		return err
	}

	jdoe, err := seedPerson(tx, person{
		username: "jdoe", email: "john.doe@acme.example", role: models.RoleEmployee,
		name: "John Doe", position: "Backend Engineer",
		departmentID: engineering.ID, companyID: company.ID, hiredOn: hired.AddDate(0, 2, 0),
	})
	if err != nil {
		return err
	}

	asmit, err := seedPerson(tx, person{
		username: "asmit", email: "ana.smit@acme.example", role: models.RoleEmployee,
		name: "Ana Smit", position: "Account Executive",
		departmentID: sales.ID, companyID: company.ID, hiredOn: hired.AddDate(0, 4, 0),
	})
	if err != nil {
		return err
	}

	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	project := &models.Project{
		CompanyID:         company.ID,
		DepartmentID:      engineering.ID,
		Name:              "Billing Platform",
		Description:       "Rebuild of the invoicing pipeline",
		StartDate:         &start,
		AssignedEmployees: []models.Employee{*manager, *jdoe},
	}
	if err := tx.Create(project).Error; err != nil {
		return err
	}

	scheduled := time.Now().AddDate(0, 0, 14)
	reviews := []models.PerformanceReview{
		{EmployeeID: jdoe.ID, ProjectID: &project.ID, Stage: models.StageScheduled, ScheduledDate: &scheduled},
		{EmployeeID: asmit.ID, Stage: models.StagePending},
	}
	return tx.Create(&reviews).Error
}

type person struct {
	username     string
	email        string
	role         string
	name         string
	position     string
	companyID    uint
	departmentID uint
	hiredOn      time.Time
}

func seedPerson(tx *gorm.DB, p person) (*models.Employee, error) {
	hash, err := utils.HashPassword("changeme")
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: p.username,
		Email:    p.email,
		Password: hash,
		Role:     p.role,
		IsActive: true,
	}
	if err := tx.Create(user).Error; err != nil {
		return nil, err
	}

	employee := &models.Employee{
		UserID:       user.ID,
		Slug:         utils.EmailSlug(p.email),
		CompanyID:    p.companyID,
		DepartmentID: p.departmentID,
		Name:         p.name,
		Email:        p.email,
		Position:     p.position,
		HiredOn:      &p.hiredOn,
	}
	if err := tx.Create(employee).Error; err != nil {
		return nil, err
	}
	return employee, nil
}
