package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/inkstore/app/models"
	"github.com/shashiranjanraj/inkstore/app/repositories"
	"github.com/shashiranjanraj/inkstore/pkg/auth"
	"github.com/shashiranjanraj/inkstore/pkg/logger"
	"github.com/shashiranjanraj/inkstore/pkg/validate"
)

type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Register creates a customer account. Everyone self-registers as a plain
// user; admin accounts only come from seeding or a manual promotion.
func (s *AuthService) Register(in RegisterInput) (models.User, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.User{}, &ValidationError{Fields: errs}
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	if _, err := s.users.FindByEmail(email); err == nil {
		return models.User{}, Invalid("email", "email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, err
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: hashed,
		Role:     models.RoleUser,
	}
	if err := s.users.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, Invalid("email", "email is already registered")
		}
		return models.User{}, err
	}

	logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login verifies credentials and issues an access/refresh token pair.
// Unknown email and wrong password deliberately return the same error.
func (s *AuthService) Login(in LoginInput) (models.User, TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, TokenPair{}, ErrInvalidCredentials
		}
		return models.User{}, TokenPair{}, err
	}

	if !auth.CheckPassword(user.Password, in.Password) {
		return models.User{}, TokenPair{}, ErrInvalidCredentials
	}

	access, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}
	refresh, err := auth.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}

	return user, TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Me loads the account behind a principal.
func (s *AuthService) Me(p auth.Principal) (models.User, error) {
	user, err := s.users.FindByID(p.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
