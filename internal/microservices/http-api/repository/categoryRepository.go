package repository

import (
	"context"

	"yamdb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	List(ctx context.Context, search string, page Page) ([]models.Category, int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context, search string, page Page) ([]models.Category, int64, error) {
	var list []models.Category
	var total int64

	if err := searchByName(r.db.WithContext(ctx).Model(&models.Category{}), search).Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "category")
	}
	err := searchByName(r.db.WithContext(ctx), search).
		Order("name asc, id asc").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&list).Error
	if err != nil {
		return nil, 0, translateError(err, "category")
	}
	return list, total, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error; err != nil {
		return nil, translateError(err, "category")
	}
	return &c, nil
}

func (r *categoryRepository) Create(ctx context.Context, c *models.Category) error {
	return translateError(r.db.WithContext(ctx).Create(c).Error, "category")
}

// DeleteBySlug removes the category; titles keep existing with category_id set to NULL.
func (r *categoryRepository) DeleteBySlug(ctx context.Context, slug string) error {
	result := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&models.Category{})
	if result.Error != nil {
		return translateError(result.Error, "category")
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "category")
	}
	return nil
}

func searchByName(db *gorm.DB, search string) *gorm.DB {
	if search == "" {
		return db
	}
	return db.Where("LOWER(name) LIKE ?", containsPattern(search))
}
