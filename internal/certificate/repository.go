package certificate

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CertificateRepository interface {
	Find(ctx context.Context, userID, courseID uuid.UUID) (*Certificate, error)
	// Insert stores c unless (user, course) already has a certificate, and
	// returns whichever row is stored afterwards.
	Insert(ctx context.Context, c *Certificate) (*Certificate, error)
	FindVerified(ctx context.Context, code string) (*Verified, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Owned, error)
	CourseTitle(ctx context.Context, courseID uuid.UUID) (string, error)
}

type certificateRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) CertificateRepository {
	return &certificateRepository{db: db}
}

func (r *certificateRepository) Find(ctx context.Context, userID, courseID uuid.UUID) (*Certificate, error) {
	var c Certificate
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Limit(1).
		Find(&c)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &c, nil
}

func (r *certificateRepository) Insert(ctx context.Context, c *Certificate) (*Certificate, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(c).Error
	if err != nil {
		return nil, err
	}
	return r.Find(ctx, c.UserID, c.CourseID)
}

func (r *certificateRepository) FindVerified(ctx context.Context, code string) (*Verified, error) {
	var v Verified
	res := r.db.WithContext(ctx).
		Table("certificates").
		Select("certificates.*, COALESCE(profiles.full_name, '') AS user_name, courses.title AS course_title").
		Joins("LEFT JOIN profiles ON profiles.id = certificates.user_id").
		Joins("JOIN courses ON courses.id = certificates.course_id").
		Where("certificates.unique_code = ?", code).
		Limit(1).
		Scan(&v)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &v, nil
}

func (r *certificateRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Owned, error) {
	out := []Owned{}
	err := r.db.WithContext(ctx).
		Table("certificates").
		Select("certificates.*, courses.title AS course_title").
		Joins("JOIN courses ON courses.id = certificates.course_id").
		Where("certificates.user_id = ?", userID).
		Order("certificates.created_at DESC").
		Scan(&out).Error
	return out, err
}

func (r *certificateRepository) CourseTitle(ctx context.Context, courseID uuid.UUID) (string, error) {
	var titles []string
	err := r.db.WithContext(ctx).
		Table("courses").
		Where("id = ?", courseID).
		Limit(1).
		Pluck("title", &titles).Error
	if err != nil || len(titles) == 0 {
		return "", err
	}
	return titles[0], nil
}
