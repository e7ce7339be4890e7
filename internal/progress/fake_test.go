package progress

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

type key [2]uuid.UUID

type fakeRepo struct {
	lessons     map[uuid.UUID]LessonRef
	completed   map[key]time.Time
	enrollments map[key]*Enrollment

	updateErr error
	updates   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		lessons:     map[uuid.UUID]LessonRef{},
		completed:   map[key]time.Time{},
		enrollments: map[key]*Enrollment{},
	}
}

func (f *fakeRepo) addLesson(courseID uuid.UUID, published bool) uuid.UUID {
	id := uuid.New()
	f.lessons[id] = LessonRef{LessonID: id, CourseID: courseID, IsPublished: published, Type: "video"}
	return id
}

func (f *fakeRepo) FindLesson(_ context.Context, id uuid.UUID) (*LessonRef, error) {
	l, ok := f.lessons[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (f *fakeRepo) PublishedLessonIDs(_ context.Context, courseID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, l := range f.lessons {
		if l.CourseID == courseID && l.IsPublished {
			ids = append(ids, l.LessonID)
		}
	}
	return ids, nil
}

func (f *fakeRepo) CountCompleted(ctx context.Context, userID uuid.UUID, lessonIDs []uuid.UUID) (int64, error) {
	ids, err := f.CompletedLessonIDs(ctx, userID, lessonIDs)
	return int64(len(ids)), err
}

func (f *fakeRepo) CompletedLessonIDs(_ context.Context, userID uuid.UUID, lessonIDs []uuid.UUID) ([]uuid.UUID, error) {
	out := []uuid.UUID{}
	for _, id := range lessonIDs {
		if _, ok := f.completed[key{userID, id}]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeRepo) MarkLessonComplete(_ context.Context, userID, lessonID uuid.UUID, at time.Time) error {
	k := key{userID, lessonID}
	if _, ok := f.completed[k]; !ok {
		f.completed[k] = at
	}
	return nil
}

func (f *fakeRepo) FindEnrollment(_ context.Context, userID, courseID uuid.UUID) (*Enrollment, error) {
	e, ok := f.enrollments[key{userID, courseID}]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (f *fakeRepo) CreateEnrollment(_ context.Context, e *Enrollment) (bool, error) {
	k := key{e.UserID, e.CourseID}
	if _, ok := f.enrollments[k]; ok {
		return false, nil
	}
	cp := *e
	f.enrollments[k] = &cp
	return true, nil
}

func (f *fakeRepo) UpdateEnrollmentProgress(_ context.Context, userID, courseID uuid.UUID, percent int, completedAt *time.Time) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates++
	e, ok := f.enrollments[key{userID, courseID}]
	if !ok {
		return nil
	}
	e.ProgressPercent = percent
	if completedAt == nil || e.CompletedAt == nil {
		e.CompletedAt = completedAt
	}
	return nil
}

func (f *fakeRepo) ListIncompleteEnrollments(_ context.Context, afterID uuid.UUID, limit int) ([]Enrollment, error) {
	var all []Enrollment
	for _, e := range f.enrollments {
		if e.CompletedAt == nil && e.ID.String() > afterID.String() {
			all = append(all, *e)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID.String() < all[j].ID.String() })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeRepo) Transaction(_ context.Context, fn func(repo ProgressRepository) error) error {
	return fn(f)
}
