package dto

import "yamdb/internal/microservices/http-api/models"

// CreateCategoryDTO used for POST /categories
type CreateCategoryDTO struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

// CategoryResponse is the public shape of a category.
type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Genres share the category wire shape and validation rules.
type (
	CreateGenreDTO = CreateCategoryDTO
	GenreResponse  = CategoryResponse
)

func FromCategory(c models.Category) CategoryResponse {
	return CategoryResponse{Name: c.Name, Slug: c.Slug}
}

func FromGenre(g models.Genre) GenreResponse {
	return GenreResponse{Name: g.Name, Slug: g.Slug}
}
