package main

import (
	"github.com/gin-gonic/gin"
	"github.com/peopledesk/peopledesk/internal/handlers"
	"github.com/peopledesk/peopledesk/internal/middleware"
	"github.com/peopledesk/peopledesk/internal/models"
	"github.com/peopledesk/peopledesk/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(middleware.RequestID())
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "peopledesk"})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", svc.authHandler.Register)
			auth.POST("/login", svc.authHandler.Login)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(), middleware.AuditLog())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)
			protected.POST("/auth/change-password", svc.authHandler.ChangePassword)

			// Dashboard
			dashboardHandler := handlers.NewDashboardHandler(models.GetDB())
			protected.GET("/dashboard/stats", dashboardHandler.GetStats)

			// Companies and departments (read for all users)
			protected.GET("/companies", svc.companyHandler.ListCompanies)
			protected.GET("/companies/:slug", svc.companyHandler.GetCompany)
			protected.GET("/departments", svc.companyHandler.ListDepartments)
			protected.GET("/departments/:slug", svc.companyHandler.GetDepartment)

			// Employees (read for all users)
			employeeHandler := handlers.NewEmployeeHandler(models.GetDB())
			protected.GET("/employees", employeeHandler.List)
			protected.GET("/employees/:slug", employeeHandler.GetBySlug)

			// Projects (read for all users)
			projectHandler := handlers.NewProjectHandler(models.GetDB())
			protected.GET("/projects", projectHandler.List)
			protected.GET("/projects/:id", projectHandler.GetByID)

			// Performance reviews: visibility and transition rights are
			// enforced per request inside the service layer
			protected.GET("/reviews", svc.reviewHandler.List)
			protected.GET("/reviews/:id", svc.reviewHandler.GetByID)
			protected.POST("/reviews", svc.reviewHandler.Create)
			protected.POST("/reviews/:id/transition", svc.reviewHandler.Transition)
		}

		// Manager routes
		manager := api.Group("")
		manager.Use(middleware.AuthRequired(), middleware.ManagerRequired(), middleware.AuditLog())
		{
			projectHandler := handlers.NewProjectHandler(models.GetDB())
			manager.POST("/projects", projectHandler.Create)
			manager.PUT("/projects/:id", projectHandler.Update)
		}

		// Admin only routes
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired(), middleware.AuditLog())
		{
			// Organization structure
			admin.POST("/companies", svc.companyHandler.CreateCompany)
			admin.POST("/departments", svc.companyHandler.CreateDepartment)

			// Employees (write operations)
			employeeHandler := handlers.NewEmployeeHandler(models.GetDB())
			admin.POST("/employees", employeeHandler.Create)
			admin.PUT("/employees/:slug", employeeHandler.Update)
			admin.DELETE("/employees/:slug", employeeHandler.Delete)

			// Projects (delete unlinks reviews)
			projectHandler := handlers.NewProjectHandler(models.GetDB())
			admin.DELETE("/projects/:id", projectHandler.Delete)

			// Reviews (administrative removal)
			admin.DELETE("/reviews/:id", svc.reviewHandler.Delete)

			// Users
			userHandler := handlers.NewUserHandler(models.GetDB())
			admin.GET("/users", userHandler.List)
			admin.PUT("/users/:id", userHandler.Update)
			admin.DELETE("/users/:id", userHandler.Delete)

			// System Logs
			systemLogHandler := handlers.NewSystemLogHandler(models.GetDB(), svc.cfg.Audit.RetentionDays)
			admin.GET("/system-logs", systemLogHandler.List)
			admin.POST("/system-logs/cleanup", systemLogHandler.Cleanup)
			admin.GET("/system-logs/retention", systemLogHandler.GetRetentionDays)
			admin.PUT("/system-logs/retention", systemLogHandler.SetRetentionDays)
		}
	}
}
