package dto

import "reviewhub/internal/api/models"

// CreateCategoryDTO used for POST /api/v1/categories
type CreateCategoryDTO struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50"`
}

// UpdateCategoryDTO used for PATCH /api/v1/categories/:slug (partial)
type UpdateCategoryDTO struct {
	Name *string `json:"name,omitempty" binding:"omitempty,max=256"`
	Slug *string `json:"slug,omitempty" binding:"omitempty,max=50"`
}

// CategoryResponse DTO for responses
type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (d CreateCategoryDTO) ToModel() models.Category {
	return models.Category{
		Name: d.Name,
		Slug: d.Slug,
	}
}

func (d UpdateCategoryDTO) ApplyTo(c *models.Category) {
	if d.Name != nil {
		c.Name = *d.Name
	}
	if d.Slug != nil {
		c.Slug = *d.Slug
	}
}

func CategoryFromModel(c models.Category) CategoryResponse {
	return CategoryResponse{
		Name: c.Name,
		Slug: c.Slug,
	}
}
