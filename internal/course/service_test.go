package course

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/academy-lambda/internal/apperr"
)

type fakeRepo struct {
	courses  map[uuid.UUID]*Course
	enrolled map[[2]uuid.UUID]bool
	reviews  map[[2]uuid.UUID]Review
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		courses:  map[uuid.UUID]*Course{},
		enrolled: map[[2]uuid.UUID]bool{},
		reviews:  map[[2]uuid.UUID]Review{},
	}
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Course, error) {
	return f.courses[id], nil
}

func (f *fakeRepo) GetOutline(ctx context.Context, id uuid.UUID) (*Course, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeRepo) IsEnrolled(_ context.Context, userID, courseID uuid.UUID) (bool, error) {
	return f.enrolled[[2]uuid.UUID{userID, courseID}], nil
}

func (f *fakeRepo) UpsertReview(_ context.Context, r *Review) error {
	k := [2]uuid.UUID{r.UserID, r.CourseID}
	if existing, ok := f.reviews[k]; ok {
		existing.Rating = r.Rating
		existing.Comment = r.Comment
		existing.UpdatedAt = r.UpdatedAt
		f.reviews[k] = existing
		return nil
	}
	f.reviews[k] = *r
	return nil
}

func (f *fakeRepo) FindReview(_ context.Context, userID, courseID uuid.UUID) (*Review, error) {
	r, ok := f.reviews[[2]uuid.UUID{userID, courseID}]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeRepo) ListReviews(_ context.Context, courseID uuid.UUID) ([]Review, error) {
	var out []Review
	for _, r := range f.reviews {
		if r.CourseID == courseID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeEnroller struct {
	calls    int
	existing map[[2]uuid.UUID]bool
}

func (f *fakeEnroller) Enroll(_ context.Context, userID, courseID uuid.UUID) (bool, error) {
	f.calls++
	key := [2]uuid.UUID{userID, courseID}
	if f.existing[key] {
		return false, nil
	}
	f.existing[key] = true
	return true, nil
}

func seedCourse(repo *fakeRepo, status CourseStatus, price int64) *Course {
	c := &Course{ID: uuid.New(), Title: "Go in Practice", Status: status, Price: price}
	repo.courses[c.ID] = c
	return c
}

func TestGetOutlineHidesUnpublished(t *testing.T) {
	repo := newFakeRepo()
	draft := seedCourse(repo, StatusDraft, 0)
	svc := NewService(repo, &fakeEnroller{existing: map[[2]uuid.UUID]bool{}})

	_, err := svc.GetOutline(context.Background(), draft.ID)
	assert.ErrorIs(t, err, ErrCourseNotFound)

	_, err = svc.GetOutline(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestEnrollFree(t *testing.T) {
	repo := newFakeRepo()
	enroller := &fakeEnroller{existing: map[[2]uuid.UUID]bool{}}
	svc := NewService(repo, enroller)
	userID := uuid.New()

	t.Run("FreeCourseTwice", func(t *testing.T) {
		free := seedCourse(repo, StatusPublished, 0)

		first, err := svc.EnrollFree(context.Background(), userID, free.ID)
		require.NoError(t, err)
		assert.False(t, first.AlreadyEnrolled)

		second, err := svc.EnrollFree(context.Background(), userID, free.ID)
		require.NoError(t, err)
		assert.True(t, second.AlreadyEnrolled)
	})

	t.Run("PaidCourseNeedsCheckout", func(t *testing.T) {
		paid := seedCourse(repo, StatusPublished, 4900)
		calls := enroller.calls

		_, err := svc.EnrollFree(context.Background(), userID, paid.ID)
		assert.ErrorIs(t, err, ErrPaidCourse)
		assert.Equal(t, calls, enroller.calls)
	})
}

func TestSubmitReview(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeEnroller{existing: map[[2]uuid.UUID]bool{}})
	c := seedCourse(repo, StatusPublished, 0)
	userID := uuid.New()

	t.Run("MalformedRating", func(t *testing.T) {
		_, err := svc.SubmitReview(context.Background(), userID, c.ID, ReviewDTO{Rating: 6})
		assert.True(t, errors.Is(err, apperr.ErrValidation))
	})

	t.Run("NotEnrolled", func(t *testing.T) {
		_, err := svc.SubmitReview(context.Background(), userID, c.ID, ReviewDTO{Rating: 5})
		assert.ErrorIs(t, err, ErrNotEnrolled)
	})

	t.Run("EnrolledUpdatesExisting", func(t *testing.T) {
		repo.enrolled[[2]uuid.UUID{userID, c.ID}] = true

		first, err := svc.SubmitReview(context.Background(), userID, c.ID, ReviewDTO{Rating: 2})
		require.NoError(t, err)
		second, err := svc.SubmitReview(context.Background(), userID, c.ID, ReviewDTO{Rating: 5, Comment: "better on second read"})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
		assert.Equal(t, 5, second.Rating)
		assert.Equal(t, "better on second read", second.Comment)

		resp, err := svc.ListReviews(context.Background(), c.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Count)
		assert.Equal(t, 5.0, resp.AverageRating)
	})
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, averageRating(nil))
	assert.Equal(t, 3.7, averageRating([]Review{{Rating: 5}, {Rating: 4}, {Rating: 2}}))
}
