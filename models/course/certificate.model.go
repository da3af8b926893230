package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate represents an issued certificate for course completion.
// Only learners in the student identity space receive certificates.
type Certificate struct {
	gorm.Model
	StudentID       uint       `json:"student_id" gorm:"index;not null"`
	CourseID        uint       `json:"course_id" gorm:"index;not null"`
	CertificateCode string     `json:"certificate_code" gorm:"unique"` // PREFIX-YEAR-XXXXX
	VerificationKey string     `json:"verification_key"`               // opaque key for share links
	IssuedAt        time.Time  `json:"issued_at"`
	ExpiresAt       *time.Time `json:"expires_at"`
	IsDeleted       bool       `gorm:"default:false"`
}
