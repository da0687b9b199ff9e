package service

import (
	"context"
	"testing"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func TestUserCreate_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	mockUserRepo.On("FindByUsername", mock.Anything, "newadmin").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByEmail", mock.Anything, "admin@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Username == "newadmin" && u.Role == models.RoleAdmin && u.IsActive
	})).Return(nil)

	resp, err := userService.Create(context.Background(), dto.CreateUserDTO{
		Username: "newadmin",
		Email:    "admin@example.com",
		Role:     "admin",
	})

	assert.NoError(t, err)
	assert.Equal(t, "newadmin", resp.Username)
	assert.Equal(t, "admin", resp.Role)
	mockUserRepo.AssertExpectations(t)
}

func TestUserCreate_DefaultsToUserRole(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	mockUserRepo.On("FindByUsername", mock.Anything, "plain").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByEmail", mock.Anything, "plain@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Role == models.RoleUser
	})).Return(nil)

	resp, err := userService.Create(context.Background(), dto.CreateUserDTO{
		Username: "plain",
		Email:    "plain@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, "user", resp.Role)
}

func TestUserCreate_ReservedUsername(t *testing.T) {
	userService := NewUserService(new(MockUserRepository))

	resp, err := userService.Create(context.Background(), dto.CreateUserDTO{
		Username: "me",
		Email:    "me@example.com",
	})

	assert.Nil(t, resp)
	assert.Equal(t, ErrReservedUsername, err)
}

func TestUserCreate_UsernameTaken(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	mockUserRepo.On("FindByUsername", mock.Anything, "taken").Return(&models.User{Username: "taken"}, nil)

	resp, err := userService.Create(context.Background(), dto.CreateUserDTO{
		Username: "taken",
		Email:    "taken@example.com",
	})

	assert.Nil(t, resp)
	assert.Equal(t, ErrUsernameInUse, err)
}

func TestUserUpdate_RoleIgnoredWithoutPermission(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	user := &models.User{Username: "selfish", Email: "self@example.com", Role: models.RoleUser}
	mockUserRepo.On("FindByUsername", mock.Anything, "selfish").Return(user, nil)
	mockUserRepo.On("Save", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Role == models.RoleUser && u.Bio == "new bio"
	})).Return(nil)

	resp, err := userService.Update(context.Background(), "selfish", dto.UpdateUserDTO{
		Bio:  strPtr("new bio"),
		Role: strPtr("admin"),
	}, false)

	assert.NoError(t, err)
	assert.Equal(t, "user", resp.Role)
	mockUserRepo.AssertExpectations(t)
}

func TestUserUpdate_AdminChangesRole(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	user := &models.User{Username: "promoted", Email: "p@example.com", Role: models.RoleUser}
	mockUserRepo.On("FindByUsername", mock.Anything, "promoted").Return(user, nil)
	mockUserRepo.On("Save", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Role == models.RoleModerator
	})).Return(nil)

	resp, err := userService.Update(context.Background(), "promoted", dto.UpdateUserDTO{
		Role: strPtr("moderator"),
	}, true)

	assert.NoError(t, err)
	assert.Equal(t, "moderator", resp.Role)
}

func TestUserUpdate_NotFound(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	mockUserRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	resp, err := userService.Update(context.Background(), "ghost", dto.UpdateUserDTO{}, true)

	assert.Nil(t, resp)
	assert.Equal(t, ErrUserNotFound, err)
}

func TestUserDelete_NotFound(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	mockUserRepo.On("Delete", mock.Anything, "ghost").Return(gorm.ErrRecordNotFound)

	err := userService.Delete(context.Background(), "ghost")

	assert.Equal(t, ErrUserNotFound, err)
}
