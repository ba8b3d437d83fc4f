package service

import (
	"context"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/validation"
)

// CategoryService and GenreService manage the two slug-addressed catalog lists.
// Both are admin-writable; the handlers enforce that before calling in.
type CategoryService interface {
	List(ctx context.Context, search string, page repository.Page) (*dto.Paginated[dto.CategoryResponse], error)
	Create(ctx context.Context, req dto.CreateCategoryDTO) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, slug string) error
}

type GenreService interface {
	List(ctx context.Context, search string, page repository.Page) (*dto.Paginated[dto.GenreResponse], error)
	Create(ctx context.Context, req dto.CreateGenreDTO) (*dto.GenreResponse, error)
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	repo      repository.CategoryRepository
	validator *validation.Validator
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo, validator: validation.New()}
}

func (s *categoryService) List(ctx context.Context, search string, page repository.Page) (*dto.Paginated[dto.CategoryResponse], error) {
	list, total, err := s.repo.List(ctx, search, page)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		data = append(data, dto.FromCategory(c))
	}
	return dto.NewPaginated(data, total, page.Number, page.Size), nil
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryDTO) (*dto.CategoryResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	c := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, slugConflict(err)
	}
	resp := dto.FromCategory(*c)
	return &resp, nil
}

func (s *categoryService) Delete(ctx context.Context, slug string) error {
	return s.repo.DeleteBySlug(ctx, slug)
}

type genreService struct {
	repo      repository.GenreRepository
	validator *validation.Validator
}

func NewGenreService(repo repository.GenreRepository) GenreService {
	return &genreService{repo: repo, validator: validation.New()}
}

func (s *genreService) List(ctx context.Context, search string, page repository.Page) (*dto.Paginated[dto.GenreResponse], error) {
	list, total, err := s.repo.List(ctx, search, page)
	if err != nil {
		return nil, err
	}
	data := make([]dto.GenreResponse, 0, len(list))
	for _, g := range list {
		data = append(data, dto.FromGenre(g))
	}
	return dto.NewPaginated(data, total, page.Number, page.Size), nil
}

func (s *genreService) Create(ctx context.Context, req dto.CreateGenreDTO) (*dto.GenreResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	g := &models.Genre{Name: req.Name, Slug: req.Slug}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, slugConflict(err)
	}
	resp := dto.FromGenre(*g)
	return &resp, nil
}

func (s *genreService) Delete(ctx context.Context, slug string) error {
	return s.repo.DeleteBySlug(ctx, slug)
}
