package dto

import "reviewhub/internal/api/models"

// CreateGenreDTO used for POST /api/v1/genres
type CreateGenreDTO struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50"`
}

// UpdateGenreDTO used for PATCH /api/v1/genres/:slug (partial)
type UpdateGenreDTO struct {
	Name *string `json:"name,omitempty" binding:"omitempty,max=256"`
	Slug *string `json:"slug,omitempty" binding:"omitempty,max=50"`
}

// GenreResponse DTO for responses
type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (d CreateGenreDTO) ToModel() models.Genre {
	return models.Genre{
		Name: d.Name,
		Slug: d.Slug,
	}
}

func (d UpdateGenreDTO) ApplyTo(g *models.Genre) {
	if d.Name != nil {
		g.Name = *d.Name
	}
	if d.Slug != nil {
		g.Slug = *d.Slug
	}
}

func GenreFromModel(g models.Genre) GenreResponse {
	return GenreResponse{
		Name: g.Name,
		Slug: g.Slug,
	}
}
