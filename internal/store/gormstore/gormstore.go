// Package gormstore implements the collection stores on Postgres via GORM.
package gormstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"careerconnect/internal/apperr"
	"careerconnect/internal/models"
	"careerconnect/internal/store"
)

// gormConfig enables dialect error translation so unique-index violations
// surface as gorm.ErrDuplicatedKey instead of raw driver errors.
func gormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

// Open connects to Postgres and migrates every collection table.
func Open(dsn string, maxOpen, maxIdle int) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Job{},
		&models.Application{},
		&models.JobApplication{},
		&models.Document{},
		&models.Institution{},
		&models.Faculty{},
		&models.Company{},
		&models.Admission{},
	); err != nil {
		return nil, err
	}
	return db, nil
}

// New wraps an open connection in the collection store interfaces.
func New(db *gorm.DB) store.Stores {
	return store.Stores{
		Users:           &userStore{db},
		Courses:         &courseStore{db},
		Jobs:            &jobStore{db},
		Applications:    &applicationStore{db},
		JobApplications: &jobApplicationStore{db},
		Documents:       &documentStore{db},
		Institutions:    &institutionStore{db},
		Faculties:       &facultyStore{db},
		Companies:       &companyStore{db},
		Admissions:      &admissionStore{db},
	}
}

func translate(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.CodeNotFound, what+" not found", err)
	}
	return apperr.New(apperr.CodeInternal, "database error", err)
}

type userStore struct{ db *gorm.DB }

func translateUser(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.New(apperr.CodeConflict, "email already registered", err)
	}
	return translate(err, "user")
}

func (s *userStore) Create(ctx context.Context, u *models.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return translateUser(err)
	}
	return nil
}

func (s *userStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (s *userStore) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, translate(err, "user")
	}
	return users, nil
}

type courseStore struct{ db *gorm.DB }

func (s *courseStore) Create(ctx context.Context, c *models.Course) error {
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return translate(err, "course")
	}
	return nil
}

func (s *courseStore) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	var c models.Course
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err, "course")
	}
	return &c, nil
}

func (s *courseStore) List(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&courses).Error; err != nil {
		return nil, translate(err, "course")
	}
	return courses, nil
}

func (s *courseStore) ListByInstitution(ctx context.Context, institution string) ([]models.Course, error) {
	var courses []models.Course
	if err := s.db.WithContext(ctx).Where("institution = ?", institution).Find(&courses).Error; err != nil {
		return nil, translate(err, "course")
	}
	return courses, nil
}

func (s *courseStore) Update(ctx context.Context, c *models.Course) error {
	if err := s.db.WithContext(ctx).Save(c).Error; err != nil {
		return translate(err, "course")
	}
	return nil
}

func (s *courseStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Course{}, id)
	if res.Error != nil {
		return translate(res.Error, "course")
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.CodeNotFound, "course not found", nil)
	}
	return nil
}

type jobStore struct{ db *gorm.DB }

func (s *jobStore) Create(ctx context.Context, j *models.Job) error {
	if err := s.db.WithContext(ctx).Create(j).Error; err != nil {
		return translate(err, "job")
	}
	return nil
}

func (s *jobStore) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	var j models.Job
	if err := s.db.WithContext(ctx).First(&j, id).Error; err != nil {
		return nil, translate(err, "job")
	}
	return &j, nil
}

func (s *jobStore) List(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&jobs).Error; err != nil {
		return nil, translate(err, "job")
	}
	return jobs, nil
}

func (s *jobStore) ListByCompany(ctx context.Context, company string) ([]models.Job, error) {
	var jobs []models.Job
	if err := s.db.WithContext(ctx).Where("company = ?", company).Find(&jobs).Error; err != nil {
		return nil, translate(err, "job")
	}
	return jobs, nil
}

func (s *jobStore) Update(ctx context.Context, j *models.Job) error {
	if err := s.db.WithContext(ctx).Save(j).Error; err != nil {
		return translate(err, "job")
	}
	return nil
}

func (s *jobStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Job{}, id)
	if res.Error != nil {
		return translate(res.Error, "job")
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.CodeNotFound, "job not found", nil)
	}
	return nil
}

type applicationStore struct{ db *gorm.DB }

func (s *applicationStore) Create(ctx context.Context, a *models.Application) error {
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return translate(err, "application")
	}
	return nil
}

func (s *applicationStore) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	var a models.Application
	if err := s.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, translate(err, "application")
	}
	return &a, nil
}

func (s *applicationStore) List(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	if err := s.db.WithContext(ctx).Order("applied_date desc").Find(&apps).Error; err != nil {
		return nil, translate(err, "application")
	}
	return apps, nil
}

func (s *applicationStore) ListByStudent(ctx context.Context, studentEmail string) ([]models.Application, error) {
	var apps []models.Application
	if err := s.db.WithContext(ctx).Where("student_email = ?", studentEmail).Order("applied_date desc").Find(&apps).Error; err != nil {
		return nil, translate(err, "application")
	}
	return apps, nil
}

func (s *applicationStore) ListByInstitution(ctx context.Context, institution string) ([]models.Application, error) {
	var apps []models.Application
	if err := s.db.WithContext(ctx).Where("institution = ?", institution).Order("applied_date desc").Find(&apps).Error; err != nil {
		return nil, translate(err, "application")
	}
	return apps, nil
}

func (s *applicationStore) Update(ctx context.Context, a *models.Application) error {
	if err := s.db.WithContext(ctx).Save(a).Error; err != nil {
		return translate(err, "application")
	}
	return nil
}

type jobApplicationStore struct{ db *gorm.DB }

func (s *jobApplicationStore) Create(ctx context.Context, a *models.JobApplication) error {
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return translate(err, "job application")
	}
	return nil
}

func (s *jobApplicationStore) ListByStudent(ctx context.Context, studentEmail string) ([]models.JobApplication, error) {
	var apps []models.JobApplication
	if err := s.db.WithContext(ctx).Where("student_email = ?", studentEmail).Find(&apps).Error; err != nil {
		return nil, translate(err, "job application")
	}
	return apps, nil
}

func (s *jobApplicationStore) ListByCompany(ctx context.Context, company string) ([]models.JobApplication, error) {
	var apps []models.JobApplication
	if err := s.db.WithContext(ctx).Where("company = ?", company).Order("applied_date desc").Find(&apps).Error; err != nil {
		return nil, translate(err, "job application")
	}
	return apps, nil
}

type documentStore struct{ db *gorm.DB }

func (s *documentStore) Create(ctx context.Context, d *models.Document) error {
	if err := s.db.WithContext(ctx).Create(d).Error; err != nil {
		return translate(err, "document")
	}
	return nil
}

func (s *documentStore) ListByStudent(ctx context.Context, studentEmail string) ([]models.Document, error) {
	var docs []models.Document
	if err := s.db.WithContext(ctx).Where("student_email = ?", studentEmail).Find(&docs).Error; err != nil {
		return nil, translate(err, "document")
	}
	return docs, nil
}

type institutionStore struct{ db *gorm.DB }

func (s *institutionStore) Create(ctx context.Context, i *models.Institution) error {
	if err := s.db.WithContext(ctx).Create(i).Error; err != nil {
		return translate(err, "institution")
	}
	return nil
}

func (s *institutionStore) GetByID(ctx context.Context, id uint) (*models.Institution, error) {
	var i models.Institution
	if err := s.db.WithContext(ctx).First(&i, id).Error; err != nil {
		return nil, translate(err, "institution")
	}
	return &i, nil
}

func (s *institutionStore) List(ctx context.Context) ([]models.Institution, error) {
	var institutions []models.Institution
	if err := s.db.WithContext(ctx).Find(&institutions).Error; err != nil {
		return nil, translate(err, "institution")
	}
	return institutions, nil
}

func (s *institutionStore) Update(ctx context.Context, i *models.Institution) error {
	if err := s.db.WithContext(ctx).Save(i).Error; err != nil {
		return translate(err, "institution")
	}
	return nil
}

func (s *institutionStore) Delete(ctx context.Context, id uint) error {
	// no cascade: faculties and courses referencing the name stay behind
	res := s.db.WithContext(ctx).Delete(&models.Institution{}, id)
	if res.Error != nil {
		return translate(res.Error, "institution")
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.CodeNotFound, "institution not found", nil)
	}
	return nil
}

type facultyStore struct{ db *gorm.DB }

func (s *facultyStore) Create(ctx context.Context, f *models.Faculty) error {
	if err := s.db.WithContext(ctx).Create(f).Error; err != nil {
		return translate(err, "faculty")
	}
	return nil
}

func (s *facultyStore) GetByID(ctx context.Context, id uint) (*models.Faculty, error) {
	var f models.Faculty
	if err := s.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, translate(err, "faculty")
	}
	return &f, nil
}

func (s *facultyStore) ListByInstitution(ctx context.Context, institution string) ([]models.Faculty, error) {
	var faculties []models.Faculty
	if err := s.db.WithContext(ctx).Where("institution = ?", institution).Find(&faculties).Error; err != nil {
		return nil, translate(err, "faculty")
	}
	return faculties, nil
}

func (s *facultyStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Faculty{}, id)
	if res.Error != nil {
		return translate(res.Error, "faculty")
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.CodeNotFound, "faculty not found", nil)
	}
	return nil
}

type companyStore struct{ db *gorm.DB }

func (s *companyStore) Create(ctx context.Context, c *models.Company) error {
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return translate(err, "company")
	}
	return nil
}

func (s *companyStore) GetByID(ctx context.Context, id uint) (*models.Company, error) {
	var c models.Company
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err, "company")
	}
	return &c, nil
}

func (s *companyStore) GetByName(ctx context.Context, name string) (*models.Company, error) {
	var c models.Company
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&c).Error; err != nil {
		return nil, translate(err, "company")
	}
	return &c, nil
}

func (s *companyStore) List(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	if err := s.db.WithContext(ctx).Find(&companies).Error; err != nil {
		return nil, translate(err, "company")
	}
	return companies, nil
}

func (s *companyStore) Update(ctx context.Context, c *models.Company) error {
	if err := s.db.WithContext(ctx).Save(c).Error; err != nil {
		return translate(err, "company")
	}
	return nil
}

type admissionStore struct{ db *gorm.DB }

func (s *admissionStore) Create(ctx context.Context, a *models.Admission) error {
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return translate(err, "admission")
	}
	return nil
}

func (s *admissionStore) ListByStudent(ctx context.Context, studentEmail string) ([]models.Admission, error) {
	var admissions []models.Admission
	if err := s.db.WithContext(ctx).Where("student_email = ?", studentEmail).Find(&admissions).Error; err != nil {
		return nil, translate(err, "admission")
	}
	return admissions, nil
}

func (s *admissionStore) ListByInstitution(ctx context.Context, institution string) ([]models.Admission, error) {
	var admissions []models.Admission
	if err := s.db.WithContext(ctx).Where("institution = ?", institution).Find(&admissions).Error; err != nil {
		return nil, translate(err, "admission")
	}
	return admissions, nil
}
