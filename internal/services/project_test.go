package services

import (
	"errors"
	"testing"
)

func TestProjectService_CreateWithRoster(t *testing.T) {
	f := newReviewFixture(t)
	svc := NewProjectService(f.db)

	project, err := svc.Create(&CreateProjectRequest{
		CompanyID:    f.employee.CompanyID,
		DepartmentID: f.employee.DepartmentID,
		Name:         "Billing Platform",
		Employees:    []string{"subject", "other"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(project.AssignedEmployees) != 2 {
		t.Errorf("roster size = %d, expected 2", len(project.AssignedEmployees))
	}
}

func TestProjectService_Create_BadRefs(t *testing.T) {
	f := newReviewFixture(t)
	svc := NewProjectService(f.db)

	var invalidRef *InvalidReferenceError

	_, err := svc.Create(&CreateProjectRequest{
		CompanyID: 999, DepartmentID: f.employee.DepartmentID, Name: "x",
	})
	if !errors.As(err, &invalidRef) {
		t.Errorf("unknown company: expected InvalidReferenceError, got %v", err)
	}

	_, err = svc.Create(&CreateProjectRequest{
		CompanyID:    f.employee.CompanyID,
		DepartmentID: f.employee.DepartmentID,
		Name:         "x",
		Employees:    []string{"ghost"},
	})
	if !errors.As(err, &invalidRef) {
		t.Errorf("unknown employee: expected InvalidReferenceError, got %v", err)
	}
}

func TestProjectService_Update_ReplacesRoster(t *testing.T) {
	f := newReviewFixture(t)
	svc := NewProjectService(f.db)

	project, err := svc.Create(&CreateProjectRequest{
		CompanyID:    f.employee.CompanyID,
		DepartmentID: f.employee.DepartmentID,
		Name:         "Billing Platform",
		Employees:    []string{"subject"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	roster := []string{"other"}
	project, err = svc.Update(project.ID, &UpdateProjectRequest{Employees: &roster})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(project.AssignedEmployees) != 1 || project.AssignedEmployees[0].Slug != "other" {
		t.Errorf("roster after replace = %v", project.AssignedEmployees)
	}

	// nil roster field leaves the assignment untouched
	project, err = svc.Update(project.ID, &UpdateProjectRequest{Name: "Billing v2"})
	if err != nil {
		t.Fatalf("Update name: %v", err)
	}
	if project.Name != "Billing v2" {
		t.Errorf("Name = %q", project.Name)
	}
	if len(project.AssignedEmployees) != 1 {
		t.Errorf("roster changed by unrelated update: %v", project.AssignedEmployees)
	}
}

// Deleting a project keeps its reviews but clears their project reference.
func TestProjectService_Delete_UnlinksReviews(t *testing.T) {
	f := newReviewFixture(t)
	svc := NewProjectService(f.db)

	project, err := svc.Create(&CreateProjectRequest{
		CompanyID:    f.employee.CompanyID,
		DepartmentID: f.employee.DepartmentID,
		Name:         "Billing Platform",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	review, err := f.svc.Create(&CreateReviewRequest{
		Employee:  f.employee.Slug,
		ProjectID: &project.ID,
	}, f.manager)
	if err != nil {
		t.Fatalf("Create review: %v", err)
	}
	if review.ProjectID == nil {
		t.Fatal("review not linked to project")
	}

	if err := svc.Delete(project.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, err := f.svc.Get(review.ID, f.manager)
	if err != nil {
		t.Fatalf("Get review after project delete: %v", err)
	}
	if got.ProjectID != nil {
		t.Errorf("review still references deleted project %d", *got.ProjectID)
	}

	var notFound *NotFoundError
	if err := svc.Delete(project.ID); !errors.As(err, &notFound) {
		t.Errorf("double delete: expected NotFoundError, got %v", err)
	}
}

func TestProjectService_List_Filters(t *testing.T) {
	f := newReviewFixture(t)
	svc := NewProjectService(f.db)

	for _, name := range []string{"Billing Platform", "Mobile App"} {
		if _, err := svc.Create(&CreateProjectRequest{
			CompanyID:    f.employee.CompanyID,
			DepartmentID: f.employee.DepartmentID,
			Name:         name,
		}); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	all, err := svc.List(&ProjectListRequest{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if all.Total != 2 {
		t.Errorf("Total = %d, expected 2", all.Total)
	}

	byName, err := svc.List(&ProjectListRequest{Name: "Billing"})
	if err != nil {
		t.Fatalf("List by name: %v", err)
	}
	if byName.Total != 1 {
		t.Errorf("name filter Total = %d, expected 1", byName.Total)
	}

	byCompany, err := svc.List(&ProjectListRequest{Company: "acme"})
	if err != nil {
		t.Fatalf("List by company: %v", err)
	}
	if byCompany.Total != 2 {
		t.Errorf("company filter Total = %d, expected 2", byCompany.Total)
	}

	none, err := svc.List(&ProjectListRequest{Company: "ghost"})
	if err != nil {
		t.Fatalf("List unknown company: %v", err)
	}
	if none.Total != 0 {
		t.Errorf("unknown company Total = %d, expected 0", none.Total)
	}
}

func TestProjectService_GetByID_NotFound(t *testing.T) {
	f := newReviewFixture(t)
	svc := NewProjectService(f.db)

	_, err := svc.GetByID(42)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Entity != "project" {
		t.Errorf("Entity = %q, expected project", notFound.Entity)
	}
}
