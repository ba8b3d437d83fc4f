package repository

import (
	"context"

	"yamdb/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScoreStats is the aggregate of all review scores of one title.
type ScoreStats struct {
	TitleID    int64
	ScoreSum   int64
	ScoreCount int64
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	ExistsForAuthor(ctx context.Context, titleID int64, authorID string) (bool, error)
	ListByTitle(ctx context.Context, titleID int64, page Page) ([]models.Review, int64, error)
	ScoreStats(ctx context.Context, titleIDs []int64) (map[int64]ScoreStats, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create relies on uq_reviews_title_author to reject a second review by the same author.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error, "review")
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	err := r.db.WithContext(ctx).
		Model(&models.Review{ID: review.ID}).
		Select("text", "score").
		Updates(review).Error
	return translateError(err, "review")
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Review{})
	if result.Error != nil {
		return translateError(result.Error, "review")
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "review")
	}
	return nil
}

// GetByID only finds the review under its own title.
func (r *reviewRepository) GetByID(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ? AND title_id = ?", reviewID, titleID).
		First(&review).Error
	if err != nil {
		return nil, translateError(err, "review")
	}
	return &review, nil
}

func (r *reviewRepository) ExistsForAuthor(ctx context.Context, titleID int64, authorID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("title_id = ? AND author_id = ?", titleID, authorID).
		Count(&count).Error
	if err != nil {
		return false, translateError(err, "review")
	}
	return count > 0, nil
}

func (r *reviewRepository) ListByTitle(ctx context.Context, titleID int64, page Page) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Review{}).Where("title_id = ?", titleID).Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "review")
	}

	err := r.db.WithContext(ctx).
		Where("title_id = ?", titleID).
		Preload("Author").
		Order("pub_date asc, id asc").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, translateError(err, "review")
	}
	return reviews, total, nil
}

// ScoreStats aggregates scores for a batch of titles in one query. Titles without
// reviews are absent from the result.
func (r *reviewRepository) ScoreStats(ctx context.Context, titleIDs []int64) (map[int64]ScoreStats, error) {
	out := make(map[int64]ScoreStats, len(titleIDs))
	if len(titleIDs) == 0 {
		return out, nil
	}

	var rows []ScoreStats
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("title_id, COALESCE(SUM(score), 0) AS score_sum, COUNT(*) AS score_count").
		Where("title_id IN ?", titleIDs).
		Group("title_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err, "review")
	}

	for _, row := range rows {
		out[row.TitleID] = row
	}
	return out, nil
}
