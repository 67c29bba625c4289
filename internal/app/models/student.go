package models

import (
	"time"

	"github.com/google/uuid"
)

// Student defines the student model based on the 'students' table
type Student struct {
	ID             uuid.UUID `json:"id" db:"id" example:"6f2fb3e1-9c1c-4f7e-8f24-1f6a0f3a9b11"` // Unique identifier, assigned by the server
	FirstName      string    `json:"firstName" db:"first_name" example:"John"`
	LastName       string    `json:"lastName" db:"last_name" example:"Doe"`
	EnrollmentDate time.Time `json:"enrollmentDate" db:"enrollment_date" example:"2024-09-01T00:00:00Z"`
	Major          string    `json:"major" db:"major" example:"Computer Engineering"`
}
