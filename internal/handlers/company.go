package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/peopledesk/peopledesk/internal/services"
	"github.com/peopledesk/peopledesk/pkg/response"
	"gorm.io/gorm"
)

type CompanyHandler struct {
	companyService    *services.CompanyService
	departmentService *services.DepartmentService
}

func NewCompanyHandler(db *gorm.DB) *CompanyHandler {
	return &CompanyHandler{
		companyService:    services.NewCompanyService(db),
		departmentService: services.NewDepartmentService(db),
	}
}

// ListCompanies returns all companies with aggregate counts
// GET /api/companies
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	companies, err := h.companyService.List()
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, companies)
}

// GetCompany returns one company by slug
// GET /api/companies/:slug
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	company, err := h.companyService.GetBySlug(c.Param("slug"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, company)
}

type createCompanyRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateCompany creates a company (admin)
// POST /api/companies
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	company, err := h.companyService.Create(req.Name)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Created(c, company)
}

// ListDepartments returns departments, optionally filtered by company slug
// GET /api/departments?company=acme
func (h *CompanyHandler) ListDepartments(c *gin.Context) {
	departments, err := h.departmentService.List(c.Query("company"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, departments)
}

// GetDepartment returns one department by slug
// GET /api/departments/:slug
func (h *CompanyHandler) GetDepartment(c *gin.Context) {
	department, err := h.departmentService.GetBySlug(c.Param("slug"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, department)
}

type createDepartmentRequest struct {
	Company string `json:"company" binding:"required"`
	Name    string `json:"name" binding:"required"`
}

// CreateDepartment creates a department under a company (admin)
// POST /api/departments
func (h *CompanyHandler) CreateDepartment(c *gin.Context) {
	var req createDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	department, err := h.departmentService.Create(req.Company, req.Name)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Created(c, department)
}
