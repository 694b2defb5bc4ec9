package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/peopledesk/peopledesk/internal/services"
	"github.com/peopledesk/peopledesk/pkg/response"
	"gorm.io/gorm"
)

type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

func NewEmployeeHandler(db *gorm.DB) *EmployeeHandler {
	return &EmployeeHandler{employeeService: services.NewEmployeeService(db)}
}

// List returns a page of employees
// GET /api/employees
func (h *EmployeeHandler) List(c *gin.Context) {
	var req services.EmployeeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.employeeService.List(&req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, resp)
}

// GetBySlug returns one employee
// GET /api/employees/:slug
func (h *EmployeeHandler) GetBySlug(c *gin.Context) {
	employee, err := h.employeeService.GetBySlug(c.Param("slug"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, employee)
}

// Create adds an employee profile for an existing user (admin)
// POST /api/employees
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req services.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	employee, err := h.employeeService.Create(&req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Created(c, employee)
}

// Update modifies an employee profile (admin)
// PUT /api/employees/:slug
func (h *EmployeeHandler) Update(c *gin.Context) {
	var req services.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	employee, err := h.employeeService.Update(c.Param("slug"), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, employee)
}

// Delete removes an employee profile (admin)
// DELETE /api/employees/:slug
func (h *EmployeeHandler) Delete(c *gin.Context) {
	if err := h.employeeService.Delete(c.Param("slug")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "employee deleted"})
}
