package service

import (
	"context"
	"fmt"
	"time"

	domainerrors "yamdb/internal/errors"
	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/validation"
)

type TitleService interface {
	List(ctx context.Context, q dto.TitleQuery) (*dto.Paginated[dto.TitleResponse], error)
	Get(ctx context.Context, id int64) (*dto.TitleResponse, error)
	Create(ctx context.Context, req dto.CreateTitleDTO) (*dto.TitleResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateTitleDTO) (*dto.TitleResponse, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
	ratings      RatingService
	validator    *validation.Validator
	now          func() time.Time
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
	ratings RatingService,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		ratings:      ratings,
		validator:    validation.New(),
		now:          time.Now,
	}
}

func (s *titleService) List(ctx context.Context, q dto.TitleQuery) (*dto.Paginated[dto.TitleResponse], error) {
	page := repository.NewPage(q.Page, q.PageSize)
	filter := repository.TitleFilter{
		Name:     q.Name,
		Year:     q.Year,
		Category: q.Category,
		Genre:    q.Genre,
	}

	titles, total, err := s.titleRepo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(titles))
	for _, t := range titles {
		ids = append(ids, t.ID)
	}
	ratings, err := s.ratings.Ratings(ctx, ids)
	if err != nil {
		return nil, err
	}

	data := make([]dto.TitleResponse, 0, len(titles))
	for _, t := range titles {
		data = append(data, dto.FromTitle(t, ratings[t.ID]))
	}
	return dto.NewPaginated(data, total, page.Number, page.Size), nil
}

func (s *titleService) Get(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rating, err := s.ratings.Rating(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromTitle(*title, rating)
	return &resp, nil
}

func (s *titleService) Create(ctx context.Context, req dto.CreateTitleDTO) (*dto.TitleResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if err := s.checkYear(*req.Year); err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        req.Name,
		Year:        *req.Year,
		Description: req.Description,
	}
	if req.Category != "" {
		category, err := s.resolveCategory(ctx, req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	genreIDs, err := s.resolveGenres(ctx, req.Genre)
	if err != nil {
		return nil, err
	}
	if genreIDs == nil {
		genreIDs = []int64{}
	}

	if err := s.titleRepo.Create(ctx, title, genreIDs); err != nil {
		return nil, err
	}
	return s.Get(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, id int64, req dto.UpdateTitleDTO) (*dto.TitleResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if err := s.checkYear(*req.Year); err != nil {
			return nil, err
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = *req.Description
	}
	if req.Category != nil {
		if *req.Category == "" {
			title.CategoryID = nil
		} else {
			category, err := s.resolveCategory(ctx, *req.Category)
			if err != nil {
				return nil, err
			}
			title.CategoryID = &category.ID
		}
	}

	// nil keeps the current links
	var genreIDs []int64
	if req.Genre != nil {
		if genreIDs, err = s.resolveGenres(ctx, req.Genre); err != nil {
			return nil, err
		}
		if genreIDs == nil {
			genreIDs = []int64{}
		}
	}

	title.Category = nil
	title.Genres = nil
	if err := s.titleRepo.Update(ctx, title, genreIDs); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	return s.titleRepo.Delete(ctx, id)
}

// checkYear bounds the year by the current calendar year at call time.
func (s *titleService) checkYear(year int) error {
	if current := s.now().Year(); year > current {
		return domainerrors.FieldInvalid("year", fmt.Sprintf("must not be later than %d", current))
	}
	return nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		if domainerrors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.FieldInvalid("category", fmt.Sprintf("unknown category %q", slug))
		}
		return nil, err
	}
	return category, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]int64, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	unique := make([]string, 0, len(slugs))
	seen := make(map[string]struct{}, len(slugs))
	for _, slug := range slugs {
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		unique = append(unique, slug)
	}

	genres, err := s.genreRepo.GetBySlugs(ctx, unique)
	if err != nil {
		return nil, err
	}

	found := make(map[string]int64, len(genres))
	for _, g := range genres {
		found[g.Slug] = g.ID
	}
	ids := make([]int64, 0, len(unique))
	for _, slug := range unique {
		id, ok := found[slug]
		if !ok {
			return nil, domainerrors.FieldInvalid("genre", fmt.Sprintf("unknown genre %q", slug))
		}
		ids = append(ids, id)
	}
	return ids, nil
}
