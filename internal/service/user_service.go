package service

import (
	"context"
	"strings"

	"pawmatch/internal/authz"
	"pawmatch/internal/models"
	"pawmatch/internal/repository"
	"pawmatch/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
	petRepo  repository.PetRepository
	hasher   PasswordHasher
}

type UpdateProfileInput struct {
	UserID  uint
	Name    string
	Email   string
	Phone   string
	Address string
}

// AdminUpdateUserInput carries an admin edit of another account. Nil or
// empty fields are left unchanged.
type AdminUpdateUserInput struct {
	TargetID uint
	Role     models.Role
	Status   models.UserStatus
	Name     string
	Phone    string
	Address  string
	Password string
}

// PlatformStats is the admin dashboard payload.
type PlatformStats struct {
	TotalUsers          int64                     `json:"total_users"`
	TotalShelters       int64                     `json:"total_shelters"`
	TotalAdopters       int64                     `json:"total_adopters"`
	TotalPets           int64                     `json:"total_pets"`
	AdoptedPets         int64                     `json:"adopted_pets"`
	AvailablePets       int64                     `json:"available_pets"`
	SpeciesDistribution []repository.SpeciesCount `json:"species_distribution"`
	RecentUsers         []models.User             `json:"recent_users"`
	RecentPets          []models.Pet              `json:"recent_pets"`
}

func NewUserService(userRepo repository.UserRepository, petRepo repository.PetRepository, hasher PasswordHasher) *UserService {
	return &UserService{userRepo: userRepo, petRepo: petRepo, hasher: hasher}
}

func (s *UserService) ListUsers(ctx context.Context, actor authz.Actor, limit, offset int) ([]models.User, error) {
	if !authz.CanManageUsers(actor) {
		return nil, models.NewForbiddenError("Admin access required", "role "+string(actor.Role)+" cannot manage users")
	}
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUser(ctx context.Context, actor authz.Actor, id uint) (*models.User, error) {
	if !authz.CanManageUsers(actor) && actor.ID != id {
		return nil, models.NewForbiddenError("Admin access required", "role "+string(actor.Role)+" cannot read other accounts")
	}
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile lets an account edit its own contact details.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		if len(name) > 100 {
			return nil, models.NewValidationError("Name too long (max 100 characters)")
		}
		user.Name = name
	}
	if email := strings.ToLower(strings.TrimSpace(in.Email)); email != "" {
		if err := validation.ValidateEmail(email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = email
	}
	if phone := strings.TrimSpace(in.Phone); phone != "" {
		if len(phone) > 30 {
			return nil, models.NewValidationError("Phone too long (max 30 characters)")
		}
		user.Phone = phone
	}
	if address := strings.TrimSpace(in.Address); address != "" {
		if len(address) > 200 {
			return nil, models.NewValidationError("Address too long (max 200 characters)")
		}
		user.Address = address
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AdminUpdateUser applies an admin edit, including role and status changes.
func (s *UserService) AdminUpdateUser(ctx context.Context, actor authz.Actor, in AdminUpdateUserInput) (*models.User, error) {
	if !authz.CanManageUsers(actor) {
		return nil, models.NewForbiddenError("Admin access required", "role "+string(actor.Role)+" cannot manage users")
	}

	user, err := s.userRepo.GetByID(ctx, in.TargetID)
	if err != nil {
		return nil, err
	}

	if in.Role != "" {
		if !in.Role.Valid() {
			return nil, models.NewValidationError("Unknown role")
		}
		user.Role = in.Role
	}
	if in.Status != "" {
		if in.Status != models.UserStatusActive && in.Status != models.UserStatusDisabled {
			return nil, models.NewValidationError("Unknown status")
		}
		user.Status = in.Status
	}
	if in.Name != "" {
		user.Name = strings.TrimSpace(in.Name)
	}
	if in.Phone != "" {
		user.Phone = strings.TrimSpace(in.Phone)
	}
	if in.Address != "" {
		user.Address = strings.TrimSpace(in.Address)
	}
	if in.Password != "" {
		if err := validation.ValidatePassword(in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hashed, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account. Pets the account supplied are removed with
// it so no listing is left pointing at a missing shelter.
func (s *UserService) DeleteUser(ctx context.Context, actor authz.Actor, id uint) error {
	if !authz.CanManageUsers(actor) {
		return models.NewForbiddenError("Admin access required", "role "+string(actor.Role)+" cannot manage users")
	}
	if actor.ID == id {
		return models.NewValidationError("Admins cannot delete their own account")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Cascade by supplier id, not role: a demoted shelter still owns
	// the pets it listed.
	if _, err := s.petRepo.DeleteBySupplier(ctx, user.ID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, user.ID)
}

// Stats assembles the admin dashboard aggregates.
func (s *UserService) Stats(ctx context.Context, actor authz.Actor) (*PlatformStats, error) {
	if !authz.CanManageUsers(actor) {
		return nil, models.NewForbiddenError("Admin access required", "role "+string(actor.Role)+" cannot view stats")
	}

	stats := &PlatformStats{}
	var err error

	if stats.TotalUsers, err = s.userRepo.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.TotalShelters, err = s.userRepo.CountByRole(ctx, models.RoleShelter); err != nil {
		return nil, err
	}
	if stats.TotalAdopters, err = s.userRepo.CountByRole(ctx, models.RoleAdopter); err != nil {
		return nil, err
	}
	if stats.TotalPets, err = s.petRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.AdoptedPets, err = s.petRepo.CountAdopted(ctx); err != nil {
		return nil, err
	}
	stats.AvailablePets = stats.TotalPets - stats.AdoptedPets

	if stats.SpeciesDistribution, err = s.petRepo.SpeciesDistribution(ctx); err != nil {
		return nil, err
	}
	if stats.RecentUsers, err = s.userRepo.Recent(ctx, 5); err != nil {
		return nil, err
	}
	if stats.RecentPets, err = s.petRepo.Recent(ctx, 5); err != nil {
		return nil, err
	}
	return stats, nil
}
