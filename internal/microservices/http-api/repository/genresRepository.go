package repository

import (
	"context"

	"yamdb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type GenreRepository interface {
	List(ctx context.Context, search string, page Page) ([]models.Genre, int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Genre, error)
	GetBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error)
	Create(ctx context.Context, g *models.Genre) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type genreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) List(ctx context.Context, search string, page Page) ([]models.Genre, int64, error) {
	var list []models.Genre
	var total int64

	if err := searchByName(r.db.WithContext(ctx).Model(&models.Genre{}), search).Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "genre")
	}
	err := searchByName(r.db.WithContext(ctx), search).
		Order("name asc, id asc").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&list).Error
	if err != nil {
		return nil, 0, translateError(err, "genre")
	}
	return list, total, nil
}

func (r *genreRepository) GetBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	var g models.Genre
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&g).Error; err != nil {
		return nil, translateError(err, "genre")
	}
	return &g, nil
}

// GetBySlugs returns the genres that exist among slugs; callers compare lengths to
// detect unknown ones.
func (r *genreRepository) GetBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	var list []models.Genre
	if len(slugs) == 0 {
		return list, nil
	}
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Order("slug asc").Find(&list).Error; err != nil {
		return nil, translateError(err, "genre")
	}
	return list, nil
}

func (r *genreRepository) Create(ctx context.Context, g *models.Genre) error {
	return translateError(r.db.WithContext(ctx).Create(g).Error, "genre")
}

// DeleteBySlug removes the genre and, through the FK cascade, its title links only.
func (r *genreRepository) DeleteBySlug(ctx context.Context, slug string) error {
	result := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&models.Genre{})
	if result.Error != nil {
		return translateError(result.Error, "genre")
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "genre")
	}
	return nil
}
