// Package store defines the persistence contracts for the flat collections
// backing the marketplace. Implementations: gormstore (Postgres) and memstore
// (in-memory, local development and tests).
package store

import (
	"context"

	"careerconnect/internal/models"
)

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type CourseStore interface {
	Create(ctx context.Context, c *models.Course) error
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
	ListByInstitution(ctx context.Context, institution string) ([]models.Course, error)
	Update(ctx context.Context, c *models.Course) error
	Delete(ctx context.Context, id uint) error
}

type JobStore interface {
	Create(ctx context.Context, j *models.Job) error
	GetByID(ctx context.Context, id uint) (*models.Job, error)
	List(ctx context.Context) ([]models.Job, error)
	ListByCompany(ctx context.Context, company string) ([]models.Job, error)
	Update(ctx context.Context, j *models.Job) error
	Delete(ctx context.Context, id uint) error
}

type ApplicationStore interface {
	Create(ctx context.Context, a *models.Application) error
	GetByID(ctx context.Context, id uint) (*models.Application, error)
	List(ctx context.Context) ([]models.Application, error)
	ListByStudent(ctx context.Context, studentEmail string) ([]models.Application, error)
	ListByInstitution(ctx context.Context, institution string) ([]models.Application, error)
	Update(ctx context.Context, a *models.Application) error
}

type JobApplicationStore interface {
	Create(ctx context.Context, a *models.JobApplication) error
	ListByStudent(ctx context.Context, studentEmail string) ([]models.JobApplication, error)
	ListByCompany(ctx context.Context, company string) ([]models.JobApplication, error)
}

type DocumentStore interface {
	Create(ctx context.Context, d *models.Document) error
	ListByStudent(ctx context.Context, studentEmail string) ([]models.Document, error)
}

type InstitutionStore interface {
	Create(ctx context.Context, i *models.Institution) error
	GetByID(ctx context.Context, id uint) (*models.Institution, error)
	List(ctx context.Context) ([]models.Institution, error)
	Update(ctx context.Context, i *models.Institution) error
	Delete(ctx context.Context, id uint) error
}

type FacultyStore interface {
	Create(ctx context.Context, f *models.Faculty) error
	GetByID(ctx context.Context, id uint) (*models.Faculty, error)
	ListByInstitution(ctx context.Context, institution string) ([]models.Faculty, error)
	Delete(ctx context.Context, id uint) error
}

type CompanyStore interface {
	Create(ctx context.Context, c *models.Company) error
	GetByID(ctx context.Context, id uint) (*models.Company, error)
	GetByName(ctx context.Context, name string) (*models.Company, error)
	List(ctx context.Context) ([]models.Company, error)
	Update(ctx context.Context, c *models.Company) error
}

type AdmissionStore interface {
	Create(ctx context.Context, a *models.Admission) error
	ListByStudent(ctx context.Context, studentEmail string) ([]models.Admission, error)
	ListByInstitution(ctx context.Context, institution string) ([]models.Admission, error)
}

// Stores bundles every collection accessor for wiring.
type Stores struct {
	Users           UserStore
	Courses         CourseStore
	Jobs            JobStore
	Applications    ApplicationStore
	JobApplications JobApplicationStore
	Documents       DocumentStore
	Institutions    InstitutionStore
	Faculties       FacultyStore
	Companies       CompanyStore
	Admissions      AdmissionStore
}
