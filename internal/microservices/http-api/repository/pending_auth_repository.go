package repository

import (
	"context"

	"yamdb/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PendingAuthRepository stores at most one outstanding confirmation code per user.
type PendingAuthRepository interface {
	Upsert(ctx context.Context, p *models.PendingAuth) error
	FindByUserID(ctx context.Context, userID string) (*models.PendingAuth, error)
	Delete(ctx context.Context, userID string) error
}

type pendingAuthRepository struct {
	db *gorm.DB
}

func NewPendingAuthRepository(db *gorm.DB) PendingAuthRepository {
	return &pendingAuthRepository{db: db}
}

// Upsert replaces any earlier code so only the latest one verifies.
func (r *pendingAuthRepository) Upsert(ctx context.Context, p *models.PendingAuth) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"code_hash", "issued_at", "expires_at"}),
		}).
		Create(p).Error
	return translateError(err, "pending confirmation")
}

func (r *pendingAuthRepository) FindByUserID(ctx context.Context, userID string) (*models.PendingAuth, error) {
	var p models.PendingAuth
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, translateError(err, "pending confirmation")
	}
	return &p, nil
}

func (r *pendingAuthRepository) Delete(ctx context.Context, userID string) error {
	return translateError(
		r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.PendingAuth{}).Error,
		"pending confirmation",
	)
}
