// Package workflow orchestrates course and job applications: precondition
// checks, duplicate and per-institution cap enforcement, and the status
// lifecycle. Nothing is written to the store until every precondition holds.
package workflow

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"careerconnect/internal/apperr"
	"careerconnect/internal/models"
	"careerconnect/internal/store"
)

// MaxPerInstitution caps how many courses a student may apply to at one
// institution.
const MaxPerInstitution = 2

// ScoreFunc computes an optional application score from the student's
// profile, documents and the course. A nil return attaches no score.
type ScoreFunc func(profile *models.User, docs []models.Document, course *models.Course) *float64

// QualifiedFunc decides whether a student may apply to a job at all.
type QualifiedFunc func(profile *models.User, docs []models.Document, job *models.Job) bool

type Service struct {
	applications    store.ApplicationStore
	jobApplications store.JobApplicationStore
	courses         store.CourseStore
	jobs            store.JobStore
	users           store.UserStore
	documents       store.DocumentStore
	admissions      store.AdmissionStore
	score           ScoreFunc
	qualified       QualifiedFunc
	logger          *zap.Logger
}

func NewService(stores store.Stores, score ScoreFunc, qualified QualifiedFunc, logger *zap.Logger) *Service {
	if qualified == nil {
		qualified = DefaultQualifier
	}
	return &Service{
		applications:    stores.Applications,
		jobApplications: stores.JobApplications,
		courses:         stores.Courses,
		jobs:            stores.Jobs,
		users:           stores.Users,
		documents:       stores.Documents,
		admissions:      stores.Admissions,
		score:           score,
		qualified:       qualified,
		logger:          logger,
	}
}

func newApplicationID() string {
	return fmt.Sprintf("APP-%d", time.Now().UnixMilli())
}

func hasRequiredDocuments(docs []models.Document) bool {
	uploaded := make(map[models.DocumentType]bool)
	for _, d := range docs {
		if d.Uploaded {
			uploaded[d.Type] = true
		}
	}
	for _, required := range models.RequiredDocuments {
		if !uploaded[required] {
			return false
		}
	}
	return true
}

// ApplyToCourse runs the full precondition chain and creates a pending
// application. Order matters: profile, documents, duplicate, institution cap.
func (s *Service) ApplyToCourse(ctx context.Context, studentEmail string, courseID uint) (*models.Application, error) {
	student, err := s.users.GetByEmail(ctx, studentEmail)
	if err != nil {
		return nil, err
	}
	if student.Name == "" {
		return nil, apperr.Precondition("complete your profile before applying", "profile")
	}

	docs, err := s.documents.ListByStudent(ctx, studentEmail)
	if err != nil {
		return nil, err
	}
	if !hasRequiredDocuments(docs) {
		return nil, apperr.Precondition("upload transcript, certificate and ID before applying", "documents")
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	existing, err := s.applications.ListByStudent(ctx, studentEmail)
	if err != nil {
		return nil, err
	}
	perInstitution := 0
	for _, a := range existing {
		if a.CourseID == courseID {
			return nil, apperr.New(apperr.CodeConflict, "already applied to this course", nil)
		}
		if a.Institution == course.Institution {
			perInstitution++
		}
	}
	if perInstitution >= MaxPerInstitution {
		return nil, apperr.Precondition("application limit for this institution reached", "")
	}

	app := &models.Application{
		ApplicationID: newApplicationID(),
		StudentEmail:  student.Email,
		Student:       student.Name,
		CourseID:      course.ID,
		Course:        course.Title,
		Institution:   course.Institution,
		Faculty:       course.Faculty,
		Status:        models.StatusPending,
		AppliedDate:   time.Now().UTC(),
	}
	if s.score != nil {
		app.Score = s.score(student, docs, course)
	}

	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}
	s.logger.Info("application created",
		zap.String("application_id", app.ApplicationID),
		zap.String("student", app.StudentEmail),
		zap.String("course", app.Course),
	)
	return app, nil
}

// ApplyToJob mirrors the course flow with a duplicate check on the job id
// and the qualification predicate in place of the document gate.
func (s *Service) ApplyToJob(ctx context.Context, studentEmail string, jobID uint) (*models.JobApplication, error) {
	student, err := s.users.GetByEmail(ctx, studentEmail)
	if err != nil {
		return nil, err
	}
	if student.Name == "" {
		return nil, apperr.Precondition("complete your profile before applying", "profile")
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	existing, err := s.jobApplications.ListByStudent(ctx, studentEmail)
	if err != nil {
		return nil, err
	}
	for _, a := range existing {
		if a.JobID == jobID {
			return nil, apperr.New(apperr.CodeConflict, "already applied to this job", nil)
		}
	}

	docs, err := s.documents.ListByStudent(ctx, studentEmail)
	if err != nil {
		return nil, err
	}
	if !s.qualified(student, docs, job) {
		return nil, apperr.Precondition("you do not meet the qualifications for this job", "")
	}

	app := &models.JobApplication{
		ApplicationID: newApplicationID(),
		StudentEmail:  student.Email,
		Student:       student.Name,
		JobID:         job.ID,
		JobTitle:      job.Title,
		Company:       job.Company,
		Status:        models.StatusPending,
		AppliedDate:   time.Now().UTC(),
	}
	if err := s.jobApplications.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// QualifiedApplicants narrows a company's applicants to the ones whose
// current profile and documents still pass the qualification predicate.
// Applicants whose records have since disappeared are skipped.
func (s *Service) QualifiedApplicants(ctx context.Context, company string) ([]models.JobApplication, error) {
	apps, err := s.jobApplications.ListByCompany(ctx, company)
	if err != nil {
		return nil, err
	}
	out := make([]models.JobApplication, 0, len(apps))
	for _, a := range apps {
		student, err := s.users.GetByEmail(ctx, a.StudentEmail)
		if err != nil {
			if apperr.Is(err, apperr.CodeNotFound) {
				continue
			}
			return nil, err
		}
		job, err := s.jobs.GetByID(ctx, a.JobID)
		if err != nil {
			if apperr.Is(err, apperr.CodeNotFound) {
				continue
			}
			return nil, err
		}
		docs, err := s.documents.ListByStudent(ctx, a.StudentEmail)
		if err != nil {
			return nil, err
		}
		if s.qualified(student, docs, job) {
			out = append(out, a)
		}
	}
	return out, nil
}

// UpdateStatus moves a pending application to admitted or rejected.
// Terminal statuses are frozen.
func (s *Service) UpdateStatus(ctx context.Context, applicationID uint, next models.ApplicationStatus) (*models.Application, error) {
	if next != models.StatusAdmitted && next != models.StatusRejected {
		return nil, apperr.New(apperr.CodeValidation, "status must be admitted or rejected", nil)
	}

	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status.Terminal() {
		return nil, apperr.New(apperr.CodeConflict, "application status is final", nil)
	}

	now := time.Now().UTC()
	app.Status = next
	app.UpdatedDate = &now
	if err := s.applications.Update(ctx, app); err != nil {
		return nil, err
	}
	s.logger.Info("application status changed",
		zap.String("application_id", app.ApplicationID),
		zap.String("status", string(next)),
	)
	return app, nil
}

// PublishAdmission records the published result for an admitted application.
func (s *Service) PublishAdmission(ctx context.Context, applicationID uint) (*models.Admission, error) {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != models.StatusAdmitted {
		return nil, apperr.New(apperr.CodeValidation, "only admitted applications can be published", nil)
	}

	published, err := s.admissions.ListByStudent(ctx, app.StudentEmail)
	if err != nil {
		return nil, err
	}
	for _, existing := range published {
		if existing.ApplicationID == app.ApplicationID {
			return nil, apperr.New(apperr.CodeConflict, "admission already published", nil)
		}
	}

	admission := &models.Admission{
		ApplicationID: app.ApplicationID,
		StudentEmail:  app.StudentEmail,
		Course:        app.Course,
		Institution:   app.Institution,
		Decision:      string(models.StatusAdmitted),
		PublishedAt:   time.Now().UTC(),
	}
	if err := s.admissions.Create(ctx, admission); err != nil {
		return nil, err
	}
	return admission, nil
}

// Stats aggregates application totals for one institution.
type Stats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Admitted int `json:"admitted"`
	Rejected int `json:"rejected"`
}

func (s *Service) InstitutionStats(ctx context.Context, institution string) (*Stats, error) {
	apps, err := s.applications.ListByInstitution(ctx, institution)
	if err != nil {
		return nil, err
	}
	stats := &Stats{Total: len(apps)}
	for _, a := range apps {
		switch a.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusAdmitted:
			stats.Admitted++
		case models.StatusRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}
