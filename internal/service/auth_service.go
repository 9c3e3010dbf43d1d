package service

import (
	"context"
	"strings"

	"connectin/internal/models"
	"connectin/internal/repository"
	"connectin/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AuthService implements registration and credential checking.
type AuthService struct {
	userRepo repository.UserRepository
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register validates the input, reporting every violation at once, then
// stores the user with a lower-cased email and a bcrypt password hash.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	var violations []string
	if err := validation.ValidateName(in.Name); err != nil {
		violations = append(violations, err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		violations = append(violations, err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		violations = append(violations, err.Error())
	}
	if len(violations) > 0 {
		return nil, models.NewValidationError(violations...)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewDuplicateEmailError()
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewStorageError(err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: string(hashed),
	}
	// Create maps a unique violation back to DuplicateEmailError, which also
	// covers two concurrent registrations racing past the existence check.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates by lower-cased email and password. A missing row and a
// hash mismatch are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewInvalidCredentialsError()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewInvalidCredentialsError()
	}
	return user, nil
}
