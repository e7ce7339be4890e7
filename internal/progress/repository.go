package progress

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/academy-lambda/internal/course"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository interface {
	FindLesson(ctx context.Context, lessonID uuid.UUID) (*LessonRef, error)
	PublishedLessonIDs(ctx context.Context, courseID uuid.UUID) ([]uuid.UUID, error)
	CountCompleted(ctx context.Context, userID uuid.UUID, lessonIDs []uuid.UUID) (int64, error)
	CompletedLessonIDs(ctx context.Context, userID uuid.UUID, lessonIDs []uuid.UUID) ([]uuid.UUID, error)
	MarkLessonComplete(ctx context.Context, userID, lessonID uuid.UUID, at time.Time) error

	FindEnrollment(ctx context.Context, userID, courseID uuid.UUID) (*Enrollment, error)
	CreateEnrollment(ctx context.Context, e *Enrollment) (bool, error)
	UpdateEnrollmentProgress(ctx context.Context, userID, courseID uuid.UUID, percent int, completedAt *time.Time) error
	ListIncompleteEnrollments(ctx context.Context, afterID uuid.UUID, limit int) ([]Enrollment, error)

	Transaction(ctx context.Context, fn func(repo ProgressRepository) error) error
}

type progressRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) FindLesson(ctx context.Context, lessonID uuid.UUID) (*LessonRef, error) {
	var ref LessonRef
	res := r.db.WithContext(ctx).
		Table("lessons").
		Select("lessons.id AS lesson_id, sections.course_id AS course_id, lessons.is_published AS is_published, lessons.type AS type").
		Joins("JOIN sections ON sections.id = lessons.section_id").
		Where("lessons.id = ?", lessonID).
		Limit(1).
		Scan(&ref)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &ref, nil
}

func (r *progressRepository) PublishedLessonIDs(ctx context.Context, courseID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&course.Lesson{}).
		Joins("JOIN sections ON sections.id = lessons.section_id").
		Where("sections.course_id = ? AND lessons.is_published = ?", courseID, true).
		Pluck("lessons.id", &ids).Error
	return ids, err
}

func (r *progressRepository) CountCompleted(ctx context.Context, userID uuid.UUID, lessonIDs []uuid.UUID) (int64, error) {
	if len(lessonIDs) == 0 {
		return 0, nil
	}
	var n int64
	err := r.db.WithContext(ctx).
		Model(&LessonProgress{}).
		Where("user_id = ? AND is_completed = ? AND lesson_id IN ?", userID, true, lessonIDs).
		Count(&n).Error
	return n, err
}

func (r *progressRepository) CompletedLessonIDs(ctx context.Context, userID uuid.UUID, lessonIDs []uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	if len(lessonIDs) == 0 {
		return ids, nil
	}
	err := r.db.WithContext(ctx).
		Model(&LessonProgress{}).
		Where("user_id = ? AND is_completed = ? AND lesson_id IN ?", userID, true, lessonIDs).
		Pluck("lesson_id", &ids).Error
	return ids, err
}

// MarkLessonComplete inserts the completion row; an existing row for the
// pair is left untouched so the first completed_at wins.
func (r *progressRepository) MarkLessonComplete(ctx context.Context, userID, lessonID uuid.UUID, at time.Time) error {
	row := LessonProgress{
		ID:          uuid.New(),
		UserID:      userID,
		LessonID:    lessonID,
		IsCompleted: true,
		CompletedAt: &at,
		CreatedAt:   at,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
			DoNothing: true,
		}).
		Create(&row).Error
}

func (r *progressRepository) FindEnrollment(ctx context.Context, userID, courseID uuid.UUID) (*Enrollment, error) {
	var e Enrollment
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Limit(1).
		Find(&e)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &e, nil
}

// CreateEnrollment reports false when the (user, course) pair already exists.
func (r *progressRepository) CreateEnrollment(ctx context.Context, e *Enrollment) (bool, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(e)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// UpdateEnrollmentProgress keeps an existing completed_at while the course
// stays complete.
func (r *progressRepository) UpdateEnrollmentProgress(ctx context.Context, userID, courseID uuid.UUID, percent int, completedAt *time.Time) error {
	var completed interface{} = gorm.Expr("NULL")
	if completedAt != nil {
		completed = gorm.Expr("COALESCE(completed_at, ?)", *completedAt)
	}
	return r.db.WithContext(ctx).
		Model(&Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Updates(map[string]interface{}{
			"progress_percent": percent,
			"completed_at":     completed,
			"updated_at":       time.Now(),
		}).Error
}

func (r *progressRepository) ListIncompleteEnrollments(ctx context.Context, afterID uuid.UUID, limit int) ([]Enrollment, error) {
	var out []Enrollment
	err := r.db.WithContext(ctx).
		Where("id > ? AND completed_at IS NULL", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *progressRepository) Transaction(ctx context.Context, fn func(repo ProgressRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&progressRepository{db: tx})
	})
}
