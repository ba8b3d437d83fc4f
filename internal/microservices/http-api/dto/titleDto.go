package dto

import "yamdb/internal/microservices/http-api/models"

// CreateTitleDTO used for POST /titles. Genre and category are referenced by slug.
type CreateTitleDTO struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        *int     `json:"year" validate:"required,gte=0"`
	Description string   `json:"description" validate:"max=256"`
	Genre       []string `json:"genre" validate:"dive,slug"`
	Category    string   `json:"category" validate:"omitempty,slug"`
}

// UpdateTitleDTO used for PATCH /titles/:title_id. Absent fields stay unchanged;
// an empty category string detaches the category, an empty genre list clears genres.
type UpdateTitleDTO struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=256"`
	Year        *int     `json:"year,omitempty" validate:"omitempty,gte=0"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=256"`
	Genre       []string `json:"genre,omitempty" validate:"omitempty,dive,slug"`
	Category    *string  `json:"category,omitempty"`
}

// TitleResponse DTO for responses; Rating is null until the title has a review.
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Description string            `json:"description"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

// TitleQuery carries the listing filters from the query string.
type TitleQuery struct {
	Genre    string `form:"genre"`
	Category string `form:"category"`
	Name     string `form:"name"`
	Year     *int   `form:"year"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

func FromTitle(t models.Title, rating *float64) TitleResponse {
	resp := TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      rating,
		Description: t.Description,
		Genre:       make([]GenreResponse, 0, len(t.Genres)),
	}
	for _, g := range t.Genres {
		resp.Genre = append(resp.Genre, FromGenre(g))
	}
	if t.Category != nil {
		c := FromCategory(*t.Category)
		resp.Category = &c
	}
	return resp
}
