// Package memstore is the in-memory fallback store. It simulates the
// persistence tier for local development and test fixtures; each Store is an
// explicitly constructed instance, never shared process-wide state.
package memstore

import (
	"context"
	"strings"
	"sync"
	"time"

	"careerconnect/internal/apperr"
	"careerconnect/internal/models"
	"careerconnect/internal/store"
)

type Store struct {
	mu sync.RWMutex

	users           map[string]models.User
	courses         map[uint]models.Course
	jobs            map[uint]models.Job
	applications    map[uint]models.Application
	jobApplications map[uint]models.JobApplication
	documents       map[uint]models.Document
	institutions    map[uint]models.Institution
	faculties       map[uint]models.Faculty
	companies       map[uint]models.Company
	admissions      map[uint]models.Admission

	nextID uint
}

func New() *Store {
	return &Store{
		users:           make(map[string]models.User),
		courses:         make(map[uint]models.Course),
		jobs:            make(map[uint]models.Job),
		applications:    make(map[uint]models.Application),
		jobApplications: make(map[uint]models.JobApplication),
		documents:       make(map[uint]models.Document),
		institutions:    make(map[uint]models.Institution),
		faculties:       make(map[uint]models.Faculty),
		companies:       make(map[uint]models.Company),
		admissions:      make(map[uint]models.Admission),
	}
}

// Stores exposes the single memory store behind every collection interface.
func (s *Store) Stores() store.Stores {
	return store.Stores{
		Users:           (*userStore)(s),
		Courses:         (*courseStore)(s),
		Jobs:            (*jobStore)(s),
		Applications:    (*applicationStore)(s),
		JobApplications: (*jobApplicationStore)(s),
		Documents:       (*documentStore)(s),
		Institutions:    (*institutionStore)(s),
		Faculties:       (*facultyStore)(s),
		Companies:       (*companyStore)(s),
		Admissions:      (*admissionStore)(s),
	}
}

func (s *Store) nextSeq() uint {
	s.nextID++
	return s.nextID
}

func notFound(what string) error {
	return apperr.New(apperr.CodeNotFound, what+" not found", nil)
}

// ---- users ----

type userStore Store

func (s *userStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return apperr.New(apperr.CodeConflict, "email already registered", nil)
		}
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	s.users[u.ID] = *u
	return nil
}

func (s *userStore) GetByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		out := u
		return &out, nil
	}
	return nil, notFound("user")
}

func (s *userStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			out := u
			return &out, nil
		}
	}
	return nil, notFound("user")
}

func (s *userStore) List(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

// ---- courses ----

type courseStore Store

func (s *courseStore) Create(_ context.Context, c *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = (*Store)(s).nextSeq()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	s.courses[c.ID] = *c
	return nil
}

func (s *courseStore) GetByID(_ context.Context, id uint) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.courses[id]; ok {
		out := c
		return &out, nil
	}
	return nil, notFound("course")
}

func (s *courseStore) List(_ context.Context) ([]models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Course, 0, len(s.courses))
	for _, c := range s.courses {
		out = append(out, c)
	}
	return out, nil
}

func (s *courseStore) ListByInstitution(_ context.Context, institution string) ([]models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Course
	for _, c := range s.courses {
		if c.Institution == institution {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *courseStore) Update(_ context.Context, c *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[c.ID]; !ok {
		return notFound("course")
	}
	s.courses[c.ID] = *c
	return nil
}

func (s *courseStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[id]; !ok {
		return notFound("course")
	}
	delete(s.courses, id)
	return nil
}

// ---- jobs ----

type jobStore Store

func (s *jobStore) Create(_ context.Context, j *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	j.ID = (*Store)(s).nextSeq()
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now().UTC()
	}
	s.jobs[j.ID] = *j
	return nil
}

func (s *jobStore) GetByID(_ context.Context, id uint) (*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if j, ok := s.jobs[id]; ok {
		out := j
		return &out, nil
	}
	return nil, notFound("job")
}

func (s *jobStore) List(_ context.Context) ([]models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, j)
	}
	return out, nil
}

func (s *jobStore) ListByCompany(_ context.Context, company string) ([]models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Job
	for _, j := range s.jobs {
		if j.Company == company {
			out = append(out, j)
		}
	}
	return out, nil
}

func (s *jobStore) Update(_ context.Context, j *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[j.ID]; !ok {
		return notFound("job")
	}
	s.jobs[j.ID] = *j
	return nil
}

func (s *jobStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[id]; !ok {
		return notFound("job")
	}
	delete(s.jobs, id)
	return nil
}

// ---- applications ----

type applicationStore Store

func (s *applicationStore) Create(_ context.Context, a *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = (*Store)(s).nextSeq()
	if a.AppliedDate.IsZero() {
		a.AppliedDate = time.Now().UTC()
	}
	s.applications[a.ID] = *a
	return nil
}

func (s *applicationStore) GetByID(_ context.Context, id uint) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.applications[id]; ok {
		out := a
		return &out, nil
	}
	return nil, notFound("application")
}

func (s *applicationStore) List(_ context.Context) ([]models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Application, 0, len(s.applications))
	for _, a := range s.applications {
		out = append(out, a)
	}
	return out, nil
}

func (s *applicationStore) ListByStudent(_ context.Context, studentEmail string) ([]models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Application
	for _, a := range s.applications {
		if strings.EqualFold(a.StudentEmail, studentEmail) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *applicationStore) ListByInstitution(_ context.Context, institution string) ([]models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Application
	for _, a := range s.applications {
		if a.Institution == institution {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *applicationStore) Update(_ context.Context, a *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.applications[a.ID]; !ok {
		return notFound("application")
	}
	s.applications[a.ID] = *a
	return nil
}

// ---- job applications ----

type jobApplicationStore Store

func (s *jobApplicationStore) Create(_ context.Context, a *models.JobApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = (*Store)(s).nextSeq()
	if a.AppliedDate.IsZero() {
		a.AppliedDate = time.Now().UTC()
	}
	s.jobApplications[a.ID] = *a
	return nil
}

func (s *jobApplicationStore) ListByStudent(_ context.Context, studentEmail string) ([]models.JobApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.JobApplication
	for _, a := range s.jobApplications {
		if strings.EqualFold(a.StudentEmail, studentEmail) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *jobApplicationStore) ListByCompany(_ context.Context, company string) ([]models.JobApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.JobApplication
	for _, a := range s.jobApplications {
		if a.Company == company {
			out = append(out, a)
		}
	}
	return out, nil
}

// ---- documents ----

type documentStore Store

func (s *documentStore) Create(_ context.Context, d *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = (*Store)(s).nextSeq()
	if d.UploadedAt.IsZero() {
		d.UploadedAt = time.Now().UTC()
	}
	s.documents[d.ID] = *d
	return nil
}

func (s *documentStore) ListByStudent(_ context.Context, studentEmail string) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Document
	for _, d := range s.documents {
		if strings.EqualFold(d.StudentEmail, studentEmail) {
			out = append(out, d)
		}
	}
	return out, nil
}

// ---- institutions ----

type institutionStore Store

func (s *institutionStore) Create(_ context.Context, i *models.Institution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i.ID = (*Store)(s).nextSeq()
	s.institutions[i.ID] = *i
	return nil
}

func (s *institutionStore) GetByID(_ context.Context, id uint) (*models.Institution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i, ok := s.institutions[id]; ok {
		out := i
		return &out, nil
	}
	return nil, notFound("institution")
}

func (s *institutionStore) List(_ context.Context) ([]models.Institution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Institution, 0, len(s.institutions))
	for _, i := range s.institutions {
		out = append(out, i)
	}
	return out, nil
}

func (s *institutionStore) Update(_ context.Context, i *models.Institution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.institutions[i.ID]; !ok {
		return notFound("institution")
	}
	s.institutions[i.ID] = *i
	return nil
}

func (s *institutionStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.institutions[id]; !ok {
		return notFound("institution")
	}
	// no cascade: dependent faculties and courses stay behind
	delete(s.institutions, id)
	return nil
}

// ---- faculties ----

type facultyStore Store

func (s *facultyStore) Create(_ context.Context, f *models.Faculty) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f.ID = (*Store)(s).nextSeq()
	s.faculties[f.ID] = *f
	return nil
}

func (s *facultyStore) GetByID(_ context.Context, id uint) (*models.Faculty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if f, ok := s.faculties[id]; ok {
		out := f
		return &out, nil
	}
	return nil, notFound("faculty")
}

func (s *facultyStore) ListByInstitution(_ context.Context, institution string) ([]models.Faculty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Faculty
	for _, f := range s.faculties {
		if f.Institution == institution {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *facultyStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.faculties[id]; !ok {
		return notFound("faculty")
	}
	delete(s.faculties, id)
	return nil
}

// ---- companies ----

type companyStore Store

func (s *companyStore) Create(_ context.Context, c *models.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = (*Store)(s).nextSeq()
	if c.Status == "" {
		c.Status = models.CompanyPending
	}
	s.companies[c.ID] = *c
	return nil
}

func (s *companyStore) GetByID(_ context.Context, id uint) (*models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.companies[id]; ok {
		out := c
		return &out, nil
	}
	return nil, notFound("company")
}

func (s *companyStore) GetByName(_ context.Context, name string) (*models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.companies {
		if strings.EqualFold(c.Name, name) {
			out := c
			return &out, nil
		}
	}
	return nil, notFound("company")
}

func (s *companyStore) List(_ context.Context) ([]models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Company, 0, len(s.companies))
	for _, c := range s.companies {
		out = append(out, c)
	}
	return out, nil
}

func (s *companyStore) Update(_ context.Context, c *models.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.companies[c.ID]; !ok {
		return notFound("company")
	}
	s.companies[c.ID] = *c
	return nil
}

// ---- admissions ----

type admissionStore Store

func (s *admissionStore) Create(_ context.Context, a *models.Admission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = (*Store)(s).nextSeq()
	if a.PublishedAt.IsZero() {
		a.PublishedAt = time.Now().UTC()
	}
	s.admissions[a.ID] = *a
	return nil
}

func (s *admissionStore) ListByStudent(_ context.Context, studentEmail string) ([]models.Admission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Admission
	for _, a := range s.admissions {
		if strings.EqualFold(a.StudentEmail, studentEmail) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *admissionStore) ListByInstitution(_ context.Context, institution string) ([]models.Admission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Admission
	for _, a := range s.admissions {
		if a.Institution == institution {
			out = append(out, a)
		}
	}
	return out, nil
}
