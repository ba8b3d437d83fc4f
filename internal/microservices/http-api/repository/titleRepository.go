package repository

import (
	"context"

	"yamdb/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TitleFilter narrows a title listing. Zero values mean "no constraint"; set fields
// combine with AND. Text fields match case-insensitively as substrings.
type TitleFilter struct {
	Name     string
	Year     *int
	Category string
	Genre    string
}

type TitleRepository interface {
	List(ctx context.Context, filter TitleFilter, page Page) ([]models.Title, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	Exists(ctx context.Context, id int64) (bool, error)
	// Create and Update replace the title's genre links with genreIDs inside one
	// transaction. Update leaves links untouched when genreIDs is nil.
	Create(ctx context.Context, title *models.Title, genreIDs []int64) error
	Update(ctx context.Context, title *models.Title, genreIDs []int64) error
	Delete(ctx context.Context, id int64) error
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) List(ctx context.Context, filter TitleFilter, page Page) ([]models.Title, int64, error) {
	var titles []models.Title
	var total int64

	if err := applyTitleFilter(r.db.WithContext(ctx).Model(&models.Title{}), filter).Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "title")
	}

	err := withTitleAssociations(applyTitleFilter(r.db.WithContext(ctx), filter)).
		Order("titles.id asc").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&titles).Error
	if err != nil {
		return nil, 0, translateError(err, "title")
	}
	return titles, total, nil
}

func (r *titleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var title models.Title
	if err := withTitleAssociations(r.db.WithContext(ctx)).First(&title, "titles.id = ?", id).Error; err != nil {
		return nil, translateError(err, "title")
	}
	return &title, nil
}

func (r *titleRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Title{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translateError(err, "title")
	}
	return count > 0, nil
}

func (r *titleRepository) Create(ctx context.Context, title *models.Title, genreIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(title).Error; err != nil {
			return translateError(err, "title")
		}
		return replaceGenreLinks(tx, title.ID, genreIDs)
	})
}

func (r *titleRepository) Update(ctx context.Context, title *models.Title, genreIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Title{ID: title.ID}).
			Select("name", "year", "description", "category_id").
			Updates(title)
		if result.Error != nil {
			return translateError(result.Error, "title")
		}
		if result.RowsAffected == 0 {
			return translateError(gorm.ErrRecordNotFound, "title")
		}
		if genreIDs == nil {
			return nil
		}
		return replaceGenreLinks(tx, title.ID, genreIDs)
	})
}

// Delete removes the title together with its reviews, their comments and genre links.
func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Title{})
	if result.Error != nil {
		return translateError(result.Error, "title")
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "title")
	}
	return nil
}

func replaceGenreLinks(tx *gorm.DB, titleID int64, genreIDs []int64) error {
	if err := tx.Where("title_id = ?", titleID).Delete(&models.TitleGenre{}).Error; err != nil {
		return translateError(err, "genre link")
	}

	seen := make(map[int64]struct{}, len(genreIDs))
	links := make([]models.TitleGenre, 0, len(genreIDs))
	for _, id := range genreIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		links = append(links, models.TitleGenre{TitleID: titleID, GenreID: id})
	}
	if len(links) == 0 {
		return nil
	}
	return translateError(tx.Create(&links).Error, "genre link")
}

func withTitleAssociations(db *gorm.DB) *gorm.DB {
	return db.Preload("Category").Preload("Genres", func(db *gorm.DB) *gorm.DB {
		return db.Order("genres.slug asc")
	})
}

func applyTitleFilter(db *gorm.DB, f TitleFilter) *gorm.DB {
	if f.Name != "" {
		db = db.Where("LOWER(titles.name) LIKE ?", containsPattern(f.Name))
	}
	if f.Year != nil {
		db = db.Where("titles.year = ?", *f.Year)
	}
	if f.Category != "" {
		db = db.Where(
			"titles.category_id IN (SELECT c.id FROM categories c WHERE LOWER(c.slug) LIKE ?)",
			containsPattern(f.Category),
		)
	}
	if f.Genre != "" {
		db = db.Where(
			"EXISTS (SELECT 1 FROM title_genres tg JOIN genres g ON g.id = tg.genre_id WHERE tg.title_id = titles.id AND LOWER(g.slug) LIKE ?)",
			containsPattern(f.Genre),
		)
	}
	return db
}
