package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yigit/studentregistry/internal/app/models"
	"github.com/yigit/studentregistry/internal/app/models/dto"
	"github.com/yigit/studentregistry/internal/pkg/apperrors"
)

// StudentStore is the data access surface the student service needs.
// *repositories.StudentRepository satisfies it.
type StudentStore interface {
	GetAll(ctx context.Context) ([]*models.Student, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error)
	Add(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StudentService handles student-related operations
type StudentService struct {
	repo StudentStore
}

// NewStudentService creates a new student service instance
func NewStudentService(repo StudentStore) *StudentService {
	return &StudentService{
		repo: repo,
	}
}

// GetAll retrieves all students. An empty collection is a valid result.
func (s *StudentService) GetAll(ctx context.Context) ([]*models.Student, error) {
	students, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, nil
}

// GetOne retrieves a student by ID. Absence is reported as (nil, nil).
func (s *StudentService) GetOne(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// Create assigns a fresh identifier, persists the student and returns the
// stored entity. The enrollment date was already defaulted at the boundary.
func (s *StudentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	student := &models.Student{
		ID:             uuid.New(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		EnrollmentDate: req.EnrollmentOrNow(),
		Major:          req.Major,
	}

	if err := s.repo.Add(ctx, student); err != nil {
		return nil, fmt.Errorf("error creating student: %w", err)
	}

	return student, nil
}

// Update merges the non-nil fields of req into the stored entity. A nil
// field means "no change". A missing id yields apperrors.ErrStudentNotFound.
func (s *StudentService) Update(ctx context.Context, req *dto.UpdateStudentRequest, id uuid.UUID) (*models.Student, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.Major != nil {
		student.Major = *req.Major
	}

	if err := s.repo.Update(ctx, student); err != nil {
		return nil, fmt.Errorf("error updating student: %w", err)
	}

	return student, nil
}

// Delete removes a student by ID. Deleting a missing student is a no-op.
func (s *StudentService) Delete(ctx context.Context, id uuid.UUID) error {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("error retrieving student: %w", err)
	}
	if student == nil {
		return nil
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	return nil
}
