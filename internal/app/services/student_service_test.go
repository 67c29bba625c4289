package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studentregistry/internal/app/models"
	"github.com/yigit/studentregistry/internal/app/models/dto"
	"github.com/yigit/studentregistry/internal/pkg/apperrors"
)

// fakeStudentStore is an in-memory StudentStore for service tests
type fakeStudentStore struct {
	students map[uuid.UUID]*models.Student
	failWith error
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[uuid.UUID]*models.Student)}
}

func (f *fakeStudentStore) GetAll(ctx context.Context) ([]*models.Student, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]*models.Student, 0, len(f.students))
	for _, s := range f.students {
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeStudentStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	s, ok := f.students[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStudentStore) Add(ctx context.Context, student *models.Student) error {
	if f.failWith != nil {
		return f.failWith
	}
	copied := *student
	f.students[student.ID] = &copied
	return nil
}

func (f *fakeStudentStore) Update(ctx context.Context, student *models.Student) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	copied := *student
	f.students[student.ID] = &copied
	return nil
}

func (f *fakeStudentStore) Delete(ctx context.Context, id uuid.UUID) error {
	if f.failWith != nil {
		return f.failWith
	}
	delete(f.students, id)
	return nil
}

func strPtr(s string) *string { return &s }

func createRequest() *dto.CreateStudentRequest {
	return &dto.CreateStudentRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Major:     "Mathematics",
	}
}

func TestCreate_AssignsUniqueIDs(t *testing.T) {
	store := newFakeStudentStore()
	svc := NewStudentService(store)

	seen := make(map[uuid.UUID]bool)
	for i := 0; i < 20; i++ {
		student, err := svc.Create(context.Background(), createRequest())
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, student.ID)
		assert.False(t, seen[student.ID], "identifier must be unique")
		seen[student.ID] = true
	}
}

func TestCreate_DefaultsEnrollmentDate(t *testing.T) {
	store := newFakeStudentStore()
	svc := NewStudentService(store)

	before := time.Now().UTC()
	student, err := svc.Create(context.Background(), createRequest())
	after := time.Now().UTC()

	require.NoError(t, err)
	assert.False(t, student.EnrollmentDate.Before(before))
	assert.False(t, student.EnrollmentDate.After(after))
}

func TestCreate_KeepsExplicitEnrollmentDate(t *testing.T) {
	store := newFakeStudentStore()
	svc := NewStudentService(store)

	when := time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC)
	req := createRequest()
	req.EnrollmentDate = &when

	student, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, student.EnrollmentDate.Equal(when))
}

func TestCreate_RoundTripThroughGetOne(t *testing.T) {
	store := newFakeStudentStore()
	svc := NewStudentService(store)

	created, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	fetched, err := svc.GetOne(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, created, fetched)
}

func TestGetOne_AbsentIsNotAnError(t *testing.T) {
	store := newFakeStudentStore()
	svc := NewStudentService(store)

	student, err := svc.GetOne(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, student)
}

func TestGetAll_EmptyIsValid(t *testing.T) {
	store := newFakeStudentStore()
	svc := NewStudentService(store)

	students, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestUpdate_MergesOnlyProvidedFields(t *testing.T) {
	store := newFakeStudentStore()
	svc := NewStudentService(store)

	created, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), &dto.UpdateStudentRequest{
		Major: strPtr("Computer Engineering"),
	}, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "Ada", updated.FirstName)
	assert.Equal(t, "Lovelace", updated.LastName)
	assert.Equal(t, "Computer Engineering", updated.Major)
	assert.True(t, updated.EnrollmentDate.Equal(created.EnrollmentDate))
}

func TestUpdate_MissingStudentIsTypedNotFound(t *testing.T) {
	store := newFakeStudentStore()
	svc := NewStudentService(store)

	_, err := svc.Update(context.Background(), &dto.UpdateStudentRequest{
		Major: strPtr("Physics"),
	}, uuid.New())

	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestDelete_IsIdempotent(t *testing.T) {
	store := newFakeStudentStore()
	svc := NewStudentService(store)

	created, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	require.NoError(t, svc.Delete(context.Background(), created.ID))

	student, err := svc.GetOne(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, student)
}

func TestService_PropagatesStoreErrors(t *testing.T) {
	store := newFakeStudentStore()
	store.failWith = errors.New("connection reset")
	svc := NewStudentService(store)

	_, err := svc.GetAll(context.Background())
	assert.Error(t, err)

	_, err = svc.GetOne(context.Background(), uuid.New())
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), createRequest())
	assert.Error(t, err)

	err = svc.Delete(context.Background(), uuid.New())
	assert.Error(t, err)
}
