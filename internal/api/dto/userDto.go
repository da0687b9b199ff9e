package dto

import "reviewhub/internal/api/models"

// CreateUserDTO used by admins for POST /api/v1/users
type CreateUserDTO struct {
	Username  string `json:"username" binding:"required,max=150"`
	Email     string `json:"email" binding:"required,email,max=254"`
	FirstName string `json:"first_name,omitempty" binding:"omitempty,max=150"`
	LastName  string `json:"last_name,omitempty" binding:"omitempty,max=150"`
	Bio       string `json:"bio,omitempty"`
	Role      string `json:"role,omitempty" binding:"omitempty,oneof=user moderator admin"`
}

// UpdateUserDTO for PATCH /api/v1/users/:username and /users/me.
// Role is accepted but ignored on self-service updates.
type UpdateUserDTO struct {
	Email     *string `json:"email,omitempty" binding:"omitempty,email,max=254"`
	FirstName *string `json:"first_name,omitempty" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name,omitempty" binding:"omitempty,max=150"`
	Bio       *string `json:"bio,omitempty"`
	Role      *string `json:"role,omitempty" binding:"omitempty,oneof=user moderator admin"`
}

// UserResponse for returning account information
type UserResponse struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

func (d CreateUserDTO) ToModel() models.User {
	role := models.RoleUser
	if d.Role != "" {
		role = models.Role(d.Role)
	}
	return models.User{
		Username:  d.Username,
		Email:     d.Email,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Bio:       d.Bio,
		Role:      role,
	}
}

// ApplyTo copies the changed fields onto the user. Role is applied only when
// allowRole is set; a user may never promote themselves.
func (d UpdateUserDTO) ApplyTo(u *models.User, allowRole bool) {
	if d.Email != nil {
		u.Email = *d.Email
	}
	if d.FirstName != nil {
		u.FirstName = *d.FirstName
	}
	if d.LastName != nil {
		u.LastName = *d.LastName
	}
	if d.Bio != nil {
		u.Bio = *d.Bio
	}
	if allowRole && d.Role != nil {
		u.Role = models.Role(*d.Role)
	}
}

func FromModelToUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      string(u.Role),
	}
}
