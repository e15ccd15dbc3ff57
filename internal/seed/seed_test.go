package seed

import (
	"testing"

	"pawmatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Pet{}, &models.PetPhoto{}))
	return db
}

func TestSeed(t *testing.T) {
	db := setupTestDB(t)

	err := Seed(db, Options{NumShelters: 2, NumAdopters: 3, NumPets: 10})
	require.NoError(t, err)

	var shelters, adopters, pets int64
	require.NoError(t, db.Model(&models.User{}).Where("role = ?", models.RoleShelter).Count(&shelters).Error)
	require.NoError(t, db.Model(&models.User{}).Where("role = ?", models.RoleAdopter).Count(&adopters).Error)
	require.NoError(t, db.Model(&models.Pet{}).Count(&pets).Error)

	assert.EqualValues(t, 2, shelters)
	assert.EqualValues(t, 3, adopters)
	assert.EqualValues(t, 10, pets)

	var seeded []models.Pet
	require.NoError(t, db.Find(&seeded).Error)
	for _, p := range seeded {
		assert.True(t, p.Mood.Valid(), "pet %s has invalid mood %q", p.Name, p.Mood)
		assert.NotZero(t, p.SupplierID)
		if p.IsAdopted {
			assert.NotNil(t, p.AdoptedByID)
			assert.NotNil(t, p.AdoptionDate)
		}
	}
}

func TestSeedReproducible(t *testing.T) {
	usernames := func(db *gorm.DB) []string {
		var names []string
		require.NoError(t, db.Model(&models.User{}).Order("id").Pluck("username", &names).Error)
		return names
	}

	first := setupTestDB(t)
	require.NoError(t, Seed(first, Options{NumShelters: 1, NumAdopters: 3, NumPets: 5, RandSeed: 42}))

	second := setupTestDB(t)
	require.NoError(t, Seed(second, Options{NumShelters: 1, NumAdopters: 3, NumPets: 5, RandSeed: 42}))

	assert.Equal(t, usernames(first), usernames(second))
}

func TestSeedRequiresShelters(t *testing.T) {
	db := setupTestDB(t)
	err := Seed(db, Options{NumShelters: 0, NumAdopters: 1, NumPets: 5})
	assert.Error(t, err)
}

func TestSeedCleanWipesOldData(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Seed(db, Options{NumShelters: 1, NumAdopters: 1, NumPets: 4}))
	require.NoError(t, Seed(db, Options{NumShelters: 1, NumAdopters: 1, NumPets: 4, ShouldClean: true}))

	var pets int64
	require.NoError(t, db.Model(&models.Pet{}).Count(&pets).Error)
	assert.EqualValues(t, 4, pets)
}

func TestEnsureDefaults(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, EnsureDefaults(db))

	var admin models.User
	require.NoError(t, db.Where("username = ?", "admin").First(&admin).Error)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	var pets int64
	require.NoError(t, db.Model(&models.Pet{}).Count(&pets).Error)
	assert.EqualValues(t, 3, pets)

	// idempotent on a populated database
	require.NoError(t, EnsureDefaults(db))
	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 3, users)
	require.NoError(t, db.Model(&models.Pet{}).Count(&pets).Error)
	assert.EqualValues(t, 3, pets)
}
