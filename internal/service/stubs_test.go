package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pawmatch/internal/models"
	"pawmatch/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
	listFn          func(context.Context, int, int) ([]models.User, error)
	countAllFn      func(context.Context) (int64, error)
	countByRoleFn   func(context.Context, models.Role) (int64, error)
	recentFn        func(context.Context, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) CountAll(ctx context.Context) (int64, error) {
	return s.countAllFn(ctx)
}
func (s *userRepoStub) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	return s.countByRoleFn(ctx, role)
}
func (s *userRepoStub) Recent(ctx context.Context, limit int) ([]models.User, error) {
	return s.recentFn(ctx, limit)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		deleteFn:        func(context.Context, uint) error { return nil },
		listFn:          func(context.Context, int, int) ([]models.User, error) { return nil, nil },
		countAllFn:      func(context.Context) (int64, error) { return 0, nil },
		countByRoleFn:   func(context.Context, models.Role) (int64, error) { return 0, nil },
		recentFn:        func(context.Context, int) ([]models.User, error) { return nil, nil },
	}
}

type petRepoStub struct {
	getByIDFn             func(context.Context, uint) (*models.Pet, error)
	createFn              func(context.Context, *models.Pet) error
	updateFn              func(context.Context, *models.Pet) error
	deleteFn              func(context.Context, uint) error
	listFn                func(context.Context, repository.PetFilter, int, int) ([]models.Pet, error)
	listAvailableFn       func(context.Context) ([]models.Pet, error)
	adoptIfAvailableFn    func(context.Context, uint, uint, time.Time) error
	deleteBySupplierFn    func(context.Context, uint) (int64, error)
	countFn               func(context.Context) (int64, error)
	countAdoptedFn        func(context.Context) (int64, error)
	speciesDistributionFn func(context.Context) ([]repository.SpeciesCount, error)
	recentFn              func(context.Context, int) ([]models.Pet, error)
	createPhotoFn         func(context.Context, *models.PetPhoto) error
	getPhotoByHashFn      func(context.Context, string) (*models.PetPhoto, error)
}

func (s *petRepoStub) GetByID(ctx context.Context, id uint) (*models.Pet, error) {
	return s.getByIDFn(ctx, id)
}
func (s *petRepoStub) Create(ctx context.Context, pet *models.Pet) error {
	return s.createFn(ctx, pet)
}
func (s *petRepoStub) Update(ctx context.Context, pet *models.Pet) error {
	return s.updateFn(ctx, pet)
}
func (s *petRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *petRepoStub) List(ctx context.Context, filter repository.PetFilter, limit, offset int) ([]models.Pet, error) {
	return s.listFn(ctx, filter, limit, offset)
}
func (s *petRepoStub) ListAvailable(ctx context.Context) ([]models.Pet, error) {
	return s.listAvailableFn(ctx)
}
func (s *petRepoStub) AdoptIfAvailable(ctx context.Context, id, adopterID uint, when time.Time) error {
	return s.adoptIfAvailableFn(ctx, id, adopterID, when)
}
func (s *petRepoStub) DeleteBySupplier(ctx context.Context, supplierID uint) (int64, error) {
	return s.deleteBySupplierFn(ctx, supplierID)
}
func (s *petRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *petRepoStub) CountAdopted(ctx context.Context) (int64, error) {
	return s.countAdoptedFn(ctx)
}
func (s *petRepoStub) SpeciesDistribution(ctx context.Context) ([]repository.SpeciesCount, error) {
	return s.speciesDistributionFn(ctx)
}
func (s *petRepoStub) Recent(ctx context.Context, limit int) ([]models.Pet, error) {
	return s.recentFn(ctx, limit)
}
func (s *petRepoStub) CreatePhoto(ctx context.Context, photo *models.PetPhoto) error {
	return s.createPhotoFn(ctx, photo)
}
func (s *petRepoStub) GetPhotoByHash(ctx context.Context, hash string) (*models.PetPhoto, error) {
	return s.getPhotoByHashFn(ctx, hash)
}

func noopPetRepo() *petRepoStub {
	return &petRepoStub{
		getByIDFn:             func(context.Context, uint) (*models.Pet, error) { return &models.Pet{}, nil },
		createFn:              func(context.Context, *models.Pet) error { return nil },
		updateFn:              func(context.Context, *models.Pet) error { return nil },
		deleteFn:              func(context.Context, uint) error { return nil },
		listFn:                func(context.Context, repository.PetFilter, int, int) ([]models.Pet, error) { return nil, nil },
		listAvailableFn:       func(context.Context) ([]models.Pet, error) { return nil, nil },
		adoptIfAvailableFn:    func(context.Context, uint, uint, time.Time) error { return nil },
		deleteBySupplierFn:    func(context.Context, uint) (int64, error) { return 0, nil },
		countFn:               func(context.Context) (int64, error) { return 0, nil },
		countAdoptedFn:        func(context.Context) (int64, error) { return 0, nil },
		speciesDistributionFn: func(context.Context) ([]repository.SpeciesCount, error) { return nil, nil },
		recentFn:              func(context.Context, int) ([]models.Pet, error) { return nil, nil },
		createPhotoFn:         func(context.Context, *models.PetPhoto) error { return nil },
		getPhotoByHashFn:      func(context.Context, string) (*models.PetPhoto, error) { return nil, nil },
	}
}

// plainHasher avoids real bcrypt rounds in tests.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// assertAppErrorCode asserts that err is an AppError with the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeForbidden)
}
