package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerconnect/internal/apperr"
	"careerconnect/internal/models"
)

func TestCourseRoundTrip(t *testing.T) {
	stores := New().Stores()
	ctx := context.Background()

	course := &models.Course{Title: "Physics", Institution: "NUL", Faculty: "Science"}
	require.NoError(t, stores.Courses.Create(ctx, course))
	assert.NotZero(t, course.ID)

	got, err := stores.Courses.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Physics", got.Title)

	byInstitution, err := stores.Courses.ListByInstitution(ctx, "NUL")
	require.NoError(t, err)
	assert.Len(t, byInstitution, 1)

	course.Title = "Applied Physics"
	require.NoError(t, stores.Courses.Update(ctx, course))
	got, err = stores.Courses.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Applied Physics", got.Title)

	require.NoError(t, stores.Courses.Delete(ctx, course.ID))
	_, err = stores.Courses.GetByID(ctx, course.ID)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestUserEmailConflict(t *testing.T) {
	stores := New().Stores()
	ctx := context.Background()

	require.NoError(t, stores.Users.Create(ctx, &models.User{ID: "u-1", Email: "a@x.com", Role: models.RoleStudent}))

	err := stores.Users.Create(ctx, &models.User{ID: "u-2", Email: "A@X.com", Role: models.RoleCompany})
	assert.True(t, apperr.Is(err, apperr.CodeConflict))

	got, err := stores.Users.GetByEmail(ctx, "A@X.COM")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
}

func TestInstitutionDeleteLeavesDependents(t *testing.T) {
	stores := New().Stores()
	ctx := context.Background()

	inst := &models.Institution{Name: "NUL"}
	require.NoError(t, stores.Institutions.Create(ctx, inst))
	require.NoError(t, stores.Faculties.Create(ctx, &models.Faculty{Name: "Science", Institution: "NUL"}))
	require.NoError(t, stores.Courses.Create(ctx, &models.Course{Title: "Physics", Institution: "NUL"}))

	require.NoError(t, stores.Institutions.Delete(ctx, inst.ID))

	faculties, err := stores.Faculties.ListByInstitution(ctx, "NUL")
	require.NoError(t, err)
	assert.Len(t, faculties, 1)

	courses, err := stores.Courses.ListByInstitution(ctx, "NUL")
	require.NoError(t, err)
	assert.Len(t, courses, 1)
}

func TestSequenceIsSharedAcrossCollections(t *testing.T) {
	stores := New().Stores()
	ctx := context.Background()

	course := &models.Course{Title: "Physics"}
	job := &models.Job{Title: "Engineer"}
	require.NoError(t, stores.Courses.Create(ctx, course))
	require.NoError(t, stores.Jobs.Create(ctx, job))

	assert.NotEqual(t, course.ID, job.ID)
}
