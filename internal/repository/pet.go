package repository

import (
	"context"
	"errors"
	"time"

	"pawmatch/internal/cache"
	"pawmatch/internal/models"

	"gorm.io/gorm"
)

// PetFilter narrows pet listings. Nil or zero fields are ignored.
type PetFilter struct {
	Species string
	Mood    models.Mood
	Adopted *bool
}

// SpeciesCount is one row of the species distribution aggregate.
type SpeciesCount struct {
	Species string `json:"species"`
	Count   int64  `json:"count"`
}

// PetRepository defines persistence operations for pets.
type PetRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Pet, error)
	Create(ctx context.Context, pet *models.Pet) error
	Update(ctx context.Context, pet *models.Pet) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter PetFilter, limit, offset int) ([]models.Pet, error)
	ListAvailable(ctx context.Context) ([]models.Pet, error)
	AdoptIfAvailable(ctx context.Context, id, adopterID uint, when time.Time) error
	DeleteBySupplier(ctx context.Context, supplierID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountAdopted(ctx context.Context) (int64, error)
	SpeciesDistribution(ctx context.Context) ([]SpeciesCount, error)
	Recent(ctx context.Context, limit int) ([]models.Pet, error)

	CreatePhoto(ctx context.Context, photo *models.PetPhoto) error
	GetPhotoByHash(ctx context.Context, hash string) (*models.PetPhoto, error)
}

type petRepository struct {
	db *gorm.DB
}

// NewPetRepository returns a new PetRepository implementation.
func NewPetRepository(db *gorm.DB) PetRepository {
	return &petRepository{db: db}
}

func (r *petRepository) GetByID(ctx context.Context, id uint) (*models.Pet, error) {
	var pet models.Pet
	key := cache.PetKey(id)

	err := cache.Aside(ctx, key, &pet, cache.PetTTL, func() error {
		if err := r.db.WithContext(ctx).Preload("Supplier").Preload("AdoptedBy").First(&pet, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Pet", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &pet, nil
}

func (r *petRepository) Create(ctx context.Context, pet *models.Pet) error {
	if err := r.db.WithContext(ctx).Create(pet).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *petRepository) Update(ctx context.Context, pet *models.Pet) error {
	if err := r.db.WithContext(ctx).Save(pet).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePet(ctx, pet.ID)
	return nil
}

func (r *petRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Pet{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePet(ctx, id)
	return nil
}

func (r *petRepository) List(ctx context.Context, filter PetFilter, limit, offset int) ([]models.Pet, error) {
	query := r.db.WithContext(ctx).Model(&models.Pet{})
	if filter.Species != "" {
		query = query.Where("species = ?", filter.Species)
	}
	if filter.Mood != "" {
		query = query.Where("mood = ?", filter.Mood)
	}
	if filter.Adopted != nil {
		query = query.Where("is_adopted = ?", *filter.Adopted)
	}

	var pets []models.Pet
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&pets).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return pets, nil
}

func (r *petRepository) ListAvailable(ctx context.Context) ([]models.Pet, error) {
	var pets []models.Pet
	if err := r.db.WithContext(ctx).Where("is_adopted = ?", false).Find(&pets).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return pets, nil
}

// AdoptIfAvailable marks the pet adopted only if it is still available,
// so two concurrent adopters cannot both win.
func (r *petRepository) AdoptIfAvailable(ctx context.Context, id, adopterID uint, when time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.Pet{}).
		Where("id = ? AND is_adopted = ?", id, false).
		Updates(map[string]interface{}{
			"is_adopted":    true,
			"adopted_by_id": adopterID,
			"adoption_date": when,
		})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewConflictError("Pet is already adopted")
	}
	cache.InvalidatePet(ctx, id)
	return nil
}

func (r *petRepository) DeleteBySupplier(ctx context.Context, supplierID uint) (int64, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.Pet{}).
		Where("supplier_id = ?", supplierID).Pluck("id", &ids).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).Delete(&models.Pet{}, ids)
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	for _, id := range ids {
		cache.InvalidatePet(ctx, id)
	}
	return res.RowsAffected, nil
}

func (r *petRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Pet{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *petRepository) CountAdopted(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Pet{}).Where("is_adopted = ?", true).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *petRepository) SpeciesDistribution(ctx context.Context) ([]SpeciesCount, error) {
	var rows []SpeciesCount
	if err := r.db.WithContext(ctx).Model(&models.Pet{}).
		Select("species, COUNT(*) AS count").
		Group("species").
		Order("count DESC").
		Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}

func (r *petRepository) Recent(ctx context.Context, limit int) ([]models.Pet, error) {
	var pets []models.Pet
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&pets).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return pets, nil
}

func (r *petRepository) CreatePhoto(ctx context.Context, photo *models.PetPhoto) error {
	if err := r.db.WithContext(ctx).Create(photo).Error; err != nil {
		if isUniqueConstraintError(err) {
			// Same bytes uploaded twice: keep the existing record.
			existing, lookupErr := r.GetPhotoByHash(ctx, photo.Hash)
			if lookupErr == nil && existing != nil {
				*photo = *existing
				return nil
			}
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *petRepository) GetPhotoByHash(ctx context.Context, hash string) (*models.PetPhoto, error) {
	var photo models.PetPhoto
	if err := r.db.WithContext(ctx).Where("hash = ?", hash).First(&photo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &photo, nil
}
