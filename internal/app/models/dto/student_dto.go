package dto

import "time"

// CreateStudentRequest represents the payload for creating a student
type CreateStudentRequest struct {
	FirstName      string     `json:"firstName" binding:"required"`
	LastName       string     `json:"lastName" binding:"required"`
	EnrollmentDate *time.Time `json:"enrollmentDate,omitempty"`
	Major          string     `json:"major" binding:"required"`
}

// EnrollmentOrNow returns the requested enrollment date, defaulting to the
// current time when the caller omitted it. Defaulting happens here at the
// boundary so the service stays deterministic.
func (r *CreateStudentRequest) EnrollmentOrNow() time.Time {
	if r.EnrollmentDate != nil {
		return *r.EnrollmentDate
	}
	return time.Now().UTC()
}

// UpdateStudentRequest represents a partial student update. Nil fields are
// left unchanged; only non-nil fields overwrite the stored values.
type UpdateStudentRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Major     *string `json:"major,omitempty"`
}
