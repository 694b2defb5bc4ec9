package services

import (
	"errors"
	"testing"

	"github.com/peopledesk/peopledesk/internal/models"
)

func TestEmployeeService_ListFilters(t *testing.T) {
	f := newReviewFixture(t)
	svc := NewEmployeeService(f.db)

	all, err := svc.List(&EmployeeListRequest{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if all.Total != 3 {
		t.Errorf("Total = %d, expected 3", all.Total)
	}

	byDept, err := svc.List(&EmployeeListRequest{Department: "eng-acme"})
	if err != nil {
		t.Fatalf("List by department: %v", err)
	}
	if byDept.Total != 3 {
		t.Errorf("department filter Total = %d, expected 3", byDept.Total)
	}

	byName, err := svc.List(&EmployeeListRequest{Name: "subject"})
	if err != nil {
		t.Fatalf("List by name: %v", err)
	}
	if byName.Total != 1 {
		t.Errorf("name filter Total = %d, expected 1", byName.Total)
	}
}

func TestEmployeeService_GetBySlug(t *testing.T) {
	f := newReviewFixture(t)
	svc := NewEmployeeService(f.db)

	employee, err := svc.GetBySlug("subject")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if employee.Company == nil || employee.Department == nil {
		t.Error("org relations not preloaded")
	}

	_, err = svc.GetBySlug("ghost")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestEmployeeService_Create_Validations(t *testing.T) {
	f := newReviewFixture(t)
	svc := NewEmployeeService(f.db)

	var invalidRef *InvalidReferenceError

	_, err := svc.Create(&CreateEmployeeRequest{
		UserID: 999, CompanyID: f.employee.CompanyID, DepartmentID: f.employee.DepartmentID,
		Name: "Ghost", Email: "ghost@acme.example",
	})
	if !errors.As(err, &invalidRef) {
		t.Errorf("unknown user: expected InvalidReferenceError, got %v", err)
	}

	user := models.User{Username: "new", Email: "new@acme.example", Password: "x", Role: models.RoleEmployee, IsActive: true}
	if err := f.db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	_, err = svc.Create(&CreateEmployeeRequest{
		UserID: user.ID, CompanyID: 999, DepartmentID: f.employee.DepartmentID,
		Name: "New Person", Email: "new@acme.example",
	})
	if !errors.As(err, &invalidRef) {
		t.Errorf("unknown company: expected InvalidReferenceError, got %v", err)
	}

	created, err := svc.Create(&CreateEmployeeRequest{
		UserID: user.ID, CompanyID: f.employee.CompanyID, DepartmentID: f.employee.DepartmentID,
		Name: "New Person", Email: "new@acme.example",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Slug != "new" {
		t.Errorf("Slug = %q, expected new", created.Slug)
	}
}

func TestEmployeeService_UpdateAndDelete(t *testing.T) {
	f := newReviewFixture(t)
	svc := NewEmployeeService(f.db)

	updated, err := svc.Update("subject", &UpdateEmployeeRequest{Position: "Senior Engineer"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Position != "Senior Engineer" {
		t.Errorf("Position = %q", updated.Position)
	}

	badDept := uint(999)
	var invalidRef *InvalidReferenceError
	if _, err := svc.Update("subject", &UpdateEmployeeRequest{DepartmentID: &badDept}); !errors.As(err, &invalidRef) {
		t.Errorf("unknown department: expected InvalidReferenceError, got %v", err)
	}

	if err := svc.Delete("subject"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	var notFound *NotFoundError
	if err := svc.Delete("subject"); !errors.As(err, &notFound) {
		t.Errorf("double delete: expected NotFoundError, got %v", err)
	}
}

func TestEmployeeIDForUser(t *testing.T) {
	f := newReviewFixture(t)
	svc := NewEmployeeService(f.db)

	id, ok := svc.EmployeeIDForUser(f.subject.UserID)
	if !ok || id == nil || *id != f.employee.ID {
		t.Errorf("EmployeeIDForUser(subject) = (%v, %v), expected (%d, true)", id, ok, f.employee.ID)
	}

	if _, ok := svc.EmployeeIDForUser(99999); ok {
		t.Error("EmployeeIDForUser should report false for unknown user")
	}
}
