package models

import "time"

// ApplicationStatus lifecycle: pending -> admitted | rejected.
// Terminal statuses are frozen; there is no way back to pending.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusAdmitted ApplicationStatus = "admitted"
	StatusRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Terminal() bool {
	return s == StatusAdmitted || s == StatusRejected
}

// DocumentType for uploaded student documents. Transcript, certificate and
// national ID together gate course applications.
type DocumentType string

const (
	DocTranscript     DocumentType = "transcript"
	DocCertificate    DocumentType = "certificate"
	DocID             DocumentType = "id"
	DocPhoto          DocumentType = "photo"
	DocRecommendation DocumentType = "recommendation"
	DocOther          DocumentType = "other"
)

// RequiredDocuments must all be uploaded before a student may apply to a course.
var RequiredDocuments = []DocumentType{DocTranscript, DocCertificate, DocID}

func ParseDocumentType(s string) (DocumentType, bool) {
	switch DocumentType(s) {
	case DocTranscript, DocCertificate, DocID, DocPhoto, DocRecommendation, DocOther:
		return DocumentType(s), true
	default:
		return "", false
	}
}

// CompanyStatus is set by admins; only approved companies may post jobs.
type CompanyStatus string

const (
	CompanyPending   CompanyStatus = "pending"
	CompanyApproved  CompanyStatus = "approved"
	CompanySuspended CompanyStatus = "suspended"
)

// User is the profile record carrying the role claim, keyed by principal id.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name         string    `gorm:"size:255" json:"name"`
	Role         Role      `gorm:"size:20;not null" json:"role"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Course struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `json:"description"`
	Duration     string    `gorm:"size:100" json:"duration"`
	Requirements string    `json:"requirements,omitempty"`
	Institution  string    `gorm:"size:255;index" json:"institution"`
	Faculty      string    `gorm:"size:255" json:"faculty,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Job struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	Description    string    `json:"description"`
	Qualifications string    `json:"qualifications,omitempty"`
	Requirements   string    `json:"requirements,omitempty"`
	Company        string    `gorm:"size:255;index" json:"company"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Application is a course application. Institution and faculty names are
// denormalized copies for display; the course record stays the source of truth.
type Application struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	ApplicationID string            `gorm:"uniqueIndex;size:40" json:"applicationId"`
	StudentEmail  string            `gorm:"size:255;index" json:"studentEmail"`
	Student       string            `gorm:"size:255" json:"student"`
	CourseID      uint              `gorm:"index" json:"courseId"`
	Course        string            `gorm:"size:255" json:"course"`
	Institution   string            `gorm:"size:255;index" json:"institution"`
	Faculty       string            `gorm:"size:255" json:"faculty,omitempty"`
	Status        ApplicationStatus `gorm:"size:20;not null" json:"status"`
	Score         *float64          `json:"score,omitempty"`
	AppliedDate   time.Time         `json:"appliedDate"`
	UpdatedDate   *time.Time        `json:"updatedDate,omitempty"`
}

type JobApplication struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	ApplicationID string            `gorm:"uniqueIndex;size:40" json:"applicationId"`
	StudentEmail  string            `gorm:"size:255;index" json:"studentEmail"`
	Student       string            `gorm:"size:255" json:"student"`
	JobID         uint              `gorm:"index" json:"jobId"`
	JobTitle      string            `gorm:"size:255" json:"jobTitle"`
	Company       string            `gorm:"size:255;index" json:"company"`
	Status        ApplicationStatus `gorm:"size:20;not null" json:"status"`
	AppliedDate   time.Time         `json:"appliedDate"`
}

type Document struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	StudentEmail string       `gorm:"size:255;index" json:"studentEmail"`
	Type         DocumentType `gorm:"size:30;not null" json:"type"`
	Name         string       `gorm:"size:255" json:"name"`
	Size         int64        `json:"size"`
	ContentType  string       `gorm:"size:100" json:"contentType"`
	URL          string       `gorm:"size:512" json:"url"`
	Uploaded     bool         `json:"uploaded"`
	UploadedAt   time.Time    `json:"uploadedAt"`
}

type Institution struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Location string `gorm:"size:255" json:"location,omitempty"`
	About    string `json:"about,omitempty"`
}

type Faculty struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Institution string `gorm:"size:255;index" json:"institution"`
}

type Company struct {
	ID      uint          `gorm:"primaryKey" json:"id"`
	Name    string        `gorm:"uniqueIndex;size:255;not null" json:"name"`
	About   string        `json:"about,omitempty"`
	Website string        `gorm:"size:255" json:"website,omitempty"`
	Status  CompanyStatus `gorm:"size:20;not null;default:pending" json:"status"`
}

// Admission is the published result for an admitted application.
type Admission struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ApplicationID string    `gorm:"size:40;index" json:"applicationId"`
	StudentEmail  string    `gorm:"size:255;index" json:"studentEmail"`
	Course        string    `gorm:"size:255" json:"course"`
	Institution   string    `gorm:"size:255" json:"institution"`
	Decision      string    `gorm:"size:40" json:"decision"`
	PublishedAt   time.Time `json:"publishedAt"`
}
