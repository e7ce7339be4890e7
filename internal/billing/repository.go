package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/academy-lambda/internal/course"
	"github.com/saulo-duarte/academy-lambda/internal/progress"
	"github.com/saulo-duarte/academy-lambda/internal/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BillingRepository interface {
	FindCourse(ctx context.Context, id uuid.UUID) (*course.Course, error)
	FindProfile(ctx context.Context, id uuid.UUID) (*user.Profile, error)
	IsEnrolled(ctx context.Context, userID, courseID uuid.UUID) (bool, error)

	CreatePurchase(ctx context.Context, p *Purchase) (bool, error)
	CreateEnrollment(ctx context.Context, userID, courseID uuid.UUID, at time.Time) (bool, error)
	PurchasesWithoutEnrollment(ctx context.Context, limit int) ([]Purchase, error)

	ActivatePro(ctx context.Context, userID uuid.UUID, customerID, subscriptionID string) (bool, error)
	DeactivatePro(ctx context.Context, subscriptionID string) (bool, error)

	Transaction(ctx context.Context, fn func(repo BillingRepository) error) error
}

type billingRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) BillingRepository {
	return &billingRepository{db: db}
}

func (r *billingRepository) FindCourse(ctx context.Context, id uuid.UUID) (*course.Course, error) {
	var c course.Course
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *billingRepository) FindProfile(ctx context.Context, id uuid.UUID) (*user.Profile, error) {
	var p user.Profile
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *billingRepository) IsEnrolled(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&progress.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&n).Error
	return n > 0, err
}

// CreatePurchase reports false when the checkout session was already recorded.
func (r *billingRepository) CreatePurchase(ctx context.Context, p *Purchase) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "stripe_session_id"}},
			DoNothing: true,
		}).
		Create(p)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// CreateEnrollment reports false when the user is already enrolled.
func (r *billingRepository) CreateEnrollment(ctx context.Context, userID, courseID uuid.UUID, at time.Time) (bool, error) {
	e := progress.Enrollment{
		ID:        uuid.New(),
		UserID:    userID,
		CourseID:  courseID,
		CreatedAt: at,
		UpdatedAt: at,
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(&e)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *billingRepository) PurchasesWithoutEnrollment(ctx context.Context, limit int) ([]Purchase, error) {
	var out []Purchase
	err := r.db.WithContext(ctx).
		Model(&Purchase{}).
		Where("NOT EXISTS (SELECT 1 FROM enrollments e WHERE e.user_id = purchases.user_id AND e.course_id = purchases.course_id)").
		Order("purchases.created_at ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *billingRepository) ActivatePro(ctx context.Context, userID uuid.UUID, customerID, subscriptionID string) (bool, error) {
	updates := map[string]interface{}{
		"is_pro":     true,
		"updated_at": time.Now(),
	}
	if customerID != "" {
		updates["stripe_customer_id"] = customerID
	}
	if subscriptionID != "" {
		updates["stripe_subscription_id"] = subscriptionID
	}

	res := r.db.WithContext(ctx).
		Model(&user.Profile{}).
		Where("id = ?", userID).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *billingRepository) DeactivatePro(ctx context.Context, subscriptionID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&user.Profile{}).
		Where("stripe_subscription_id = ?", subscriptionID).
		Updates(map[string]interface{}{
			"is_pro":                 false,
			"stripe_subscription_id": gorm.Expr("NULL"),
			"updated_at":             time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *billingRepository) Transaction(ctx context.Context, fn func(repo BillingRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&billingRepository{db: tx})
	})
}
