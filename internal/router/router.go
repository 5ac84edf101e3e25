package router

import (
	"fmt"
	"net/http"

	"careerconnect/internal/handlers"
	"careerconnect/internal/middleware"
	"careerconnect/internal/models"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Deps carries everything the route table needs. main wires it up.
type Deps struct {
	Logger          *zap.Logger
	Guard           *middleware.AuthMiddleware
	Auth            *handlers.AuthHandler
	Courses         *handlers.CourseHandler
	Jobs            *handlers.JobHandler
	Applications    *handlers.ApplicationHandler
	JobApplications *handlers.JobApplicationHandler
	Documents       *handlers.DocumentHandler
	Institutions    *handlers.InstitutionHandler
	Companies       *handlers.CompanyHandler
	Admin           *handlers.AdminHandler
	FilesDir        string
}

func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recover(d.Logger))
	r.Use(middleware.CORS)
	r.Use(middleware.Logging(d.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})

	// Uploaded documents, served by locator.
	if d.FilesDir != "" {
		fs := http.StripPrefix("/files/", http.FileServer(http.Dir(d.FilesDir)))
		r.Get("/files/*", fs.ServeHTTP)
	}

	// Public surface: browse catalogs, register, sign in, open a shared link.
	r.Post("/api/auth/register", d.Auth.Register)
	r.Post("/api/auth/login", d.Auth.Login)
	r.Get("/api/courses", d.Courses.List)
	r.Get("/api/jobs", d.Jobs.List)
	r.Get("/api/institutions", d.Institutions.List)
	r.Get("/api/share/application", d.Applications.SharedView)

	r.Group(func(r chi.Router) {
		r.Use(d.Guard.Authenticate)

		r.Post("/api/auth/logout", d.Auth.Logout)
		r.Get("/api/auth/me", d.Auth.Me)
		r.Get("/api/faculties", d.Institutions.ListFaculties)

		// Student surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleStudent))
			r.Post("/api/applications", d.Applications.Apply)
			r.Get("/api/applications", d.Applications.ListMine)
			r.Post("/api/applications/{id}/share", d.Applications.Share)
			r.Get("/api/applications/{id}/qrcode", d.Applications.QRCode)
			r.Post("/api/job-applications", d.JobApplications.Apply)
			r.Get("/api/job-applications", d.JobApplications.ListMine)
			r.Post("/api/documents", d.Documents.Upload)
			r.Get("/api/documents", d.Documents.List)
			r.Get("/api/admissions", d.Applications.ListAdmissions)
		})

		// Institute surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleInstitute))
			r.Get("/api/institute/applications", d.Applications.ListInstitute)
			r.Get("/api/institute/stats", d.Applications.InstituteStats)
			r.Post("/api/admissions", d.Applications.PublishAdmission)
		})

		// Catalog management, shared by institutes and the admin.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleInstitute, models.RoleAdmin))
			r.Post("/api/courses", d.Courses.Create)
			r.Put("/api/courses/{id}", d.Courses.Update)
			r.Delete("/api/courses/{id}", d.Courses.Delete)
			r.Post("/api/institutions", d.Institutions.Create)
			r.Put("/api/institutions/{id}", d.Institutions.Update)
			r.Post("/api/faculties", d.Institutions.CreateFaculty)
			r.Delete("/api/faculties/{id}", d.Institutions.DeleteFaculty)
			r.Patch("/api/applications/{id}/status", d.Applications.UpdateStatus)
		})

		// Company surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleCompany))
			r.Post("/api/jobs", d.Jobs.Create)
			r.Get("/api/company/jobs", d.Jobs.ListMine)
			r.Put("/api/company/profile", d.Companies.UpsertProfile)
			r.Get("/api/company/applicants", d.Companies.ListApplicants)
			r.Get("/api/company/applicants/qualified", d.Companies.ListQualifiedApplicants)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleCompany, models.RoleAdmin))
			r.Delete("/api/jobs/{id}", d.Jobs.Delete)
		})

		// Admin surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin))
			r.Get("/api/admin/summary", d.Admin.Summary)
			r.Get("/api/admin/users", d.Admin.Users)
			r.Get("/api/companies", d.Companies.List)
			r.Patch("/api/companies/{id}/status", d.Companies.UpdateStatus)
			r.Delete("/api/institutions/{id}", d.Institutions.Delete)
		})
	})

	return r
}
