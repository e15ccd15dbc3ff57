package service

import (
	"context"
	"strings"

	"pawmatch/internal/authz"
	"pawmatch/internal/models"
	"pawmatch/internal/repository"
	"pawmatch/internal/validation"
)

type AuthService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
}

type SignupInput struct {
	Username string
	Email    string
	Password string
	Role     models.Role
	Name     string
	Phone    string
	Address  string
}

type LoginInput struct {
	Email    string
	Password string
}

func NewAuthService(userRepo repository.UserRepository, hasher PasswordHasher) *AuthService {
	return &AuthService{userRepo: userRepo, hasher: hasher}
}

// Signup registers a new adopter or shelter account. Admin accounts cannot
// be self-registered.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	role := in.Role
	if role == "" {
		role = models.RoleAdopter
	}
	if !authz.SignupRoleAllowed(role) {
		return nil, models.NewValidationError("Role must be adopter or shelter")
	}

	// Email conflicts are reported before username conflicts.
	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("Email already registered")
	}
	if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("Username already taken")
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hashed,
		Role:     role,
		Name:     strings.TrimSpace(in.Name),
		Phone:    strings.TrimSpace(in.Phone),
		Address:  strings.TrimSpace(in.Address),
		Status:   models.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns the account. Failures are
// deliberately indistinguishable so the response never reveals whether the
// email exists.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if user.Status == models.UserStatusDisabled {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := s.hasher.Compare(user.Password, in.Password); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

// Me returns the current account for an authenticated actor.
func (s *AuthService) Me(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
