// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"pawmatch/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumShelters int
	NumAdopters int
	NumPets     int
	ShouldClean bool
	// RandSeed makes a run reproducible when non-zero.
	RandSeed int64
}

var (
	petNames = []string{
		"Max", "Luna", "Buddy", "Bella", "Charlie", "Daisy", "Rocky", "Mochi",
		"Milo", "Coco", "Oliver", "Willow", "Leo", "Pepper", "Oscar", "Hazel",
		"Teddy", "Clover", "Finn", "Poppy", "Shadow", "Maple", "Biscuit", "Rio",
		"Ziggy", "Olive", "Archie", "Nala", "Gus", "Pippa",
	}

	breedsBySpecies = map[string][]string{
		models.SpeciesDog: {
			"Golden Retriever", "Labrador", "Beagle", "Border Collie", "Corgi",
			"German Shepherd", "Dachshund", "Greyhound", "Mixed",
		},
		models.SpeciesCat: {
			"Siamese", "Maine Coon", "Tabby", "Ragdoll", "British Shorthair",
			"Bengal", "Sphynx", "Mixed",
		},
		models.SpeciesBird: {
			"Cockatiel", "Budgerigar", "Lovebird", "Canary", "Conure", "Parrotlet",
		},
	}

	species = []string{models.SpeciesDog, models.SpeciesCat, models.SpeciesBird}

	moods = []models.Mood{
		models.MoodHappy, models.MoodPlayful, models.MoodSleepy,
	}

	petTraits = []string{
		"loves long walks and playing fetch",
		"enjoys sunbathing and quiet naps",
		"gets along great with kids and other pets",
		"sings along whenever music is playing",
		"is a little shy at first but warms up quickly",
		"will do anything for a treat",
		"prefers a calm home with a sunny windowsill",
		"has endless energy and needs a big yard",
		"likes to supervise everything from a high perch",
		"is house-trained and knows a few tricks",
	}

	shelterSuffixes = []string{
		"Animal Shelter", "Rescue", "Pet Haven", "Animal Sanctuary", "Humane Society",
	}
)

// Seed populates the database with demo shelters, adopters and pets.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d shelters, %d adopters and %d pets...",
		opts.NumShelters, opts.NumAdopters, opts.NumPets)

	randSeed := opts.RandSeed
	if randSeed == 0 {
		randSeed = time.Now().UnixNano()
	}
	gofakeit.Seed(randSeed)
	r := rand.New(rand.NewSource(randSeed))

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	shelters, err := createUsers(db, models.RoleShelter, opts.NumShelters)
	if err != nil {
		return fmt.Errorf("failed to create shelters: %w", err)
	}
	log.Printf("✓ %d shelters created", len(shelters))

	adopters, err := createUsers(db, models.RoleAdopter, opts.NumAdopters)
	if err != nil {
		return fmt.Errorf("failed to create adopters: %w", err)
	}
	log.Printf("✓ %d adopters created", len(adopters))

	pets, err := createPets(db, r, shelters, opts.NumPets)
	if err != nil {
		return fmt.Errorf("failed to create pets: %w", err)
	}
	log.Printf("✓ %d pets created", len(pets))

	adopted, err := adoptSome(db, r, pets, adopters)
	if err != nil {
		return fmt.Errorf("failed to record adoptions: %w", err)
	}
	log.Printf("✓ %d pets marked adopted", adopted)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

// EnsureDefaults creates the default admin, shelter and adopter accounts and a
// handful of sample pets when the database is empty. It is idempotent and safe
// to run on every startup in development.
func EnsureDefaults(db *gorm.DB) error {
	var adminCount int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount).Error; err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}

	if adminCount == 0 {
		log.Println("No admin account found. Creating default users...")
		defaults := []models.User{
			{Username: "admin", Email: "admin@pawmatch.dev", Role: models.RoleAdmin},
			{Username: "shelter1", Email: "shelter@pawmatch.dev", Role: models.RoleShelter},
			{Username: "adopter1", Email: "adopter@pawmatch.dev", Role: models.RoleAdopter},
		}
		for _, u := range defaults {
			var existing models.User
			err := db.Where("username = ? OR email = ?", u.Username, u.Email).First(&existing).Error
			if err == nil {
				log.Printf("User %s already exists, skipping creation.", existing.Username)
				continue
			}
			if err != gorm.ErrRecordNotFound {
				return err
			}

			hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			u.Password = string(hashed)
			u.Status = models.UserStatusActive
			if err := db.Create(&u).Error; err != nil {
				return err
			}
			log.Printf("Created %s account: %s (%s)", u.Role, u.Username, u.Email)
		}
	}

	var petCount int64
	if err := db.Model(&models.Pet{}).Count(&petCount).Error; err != nil {
		return fmt.Errorf("failed to count pets: %w", err)
	}
	if petCount > 0 {
		return nil
	}

	var shelter models.User
	if err := db.Where("role = ?", models.RoleShelter).First(&shelter).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	samplePets := []models.Pet{
		{
			Name: "Max", Species: models.SpeciesDog, Breed: "Golden Retriever", Age: 3,
			Description: "Friendly and playful golden retriever who loves long walks and playing fetch.",
			Mood:        models.MoodHappy,
		},
		{
			Name: "Luna", Species: models.SpeciesCat, Breed: "Siamese", Age: 2,
			Description: "Elegant Siamese cat who enjoys sunbathing and quiet naps.",
			Mood:        models.MoodSleepy,
		},
		{
			Name: "Buddy", Species: models.SpeciesDog, Breed: "Labrador", Age: 4,
			Description: "Energetic Labrador who loves swimming and playing with kids.",
			Mood:        models.MoodPlayful,
		},
	}
	for _, p := range samplePets {
		p.SupplierID = shelter.ID
		if err := db.Create(&p).Error; err != nil {
			return err
		}
		log.Printf("Created pet: %s (%s)", p.Name, p.Species)
	}
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")

	// Delete in correct order to respect foreign key constraints
	if err := db.Exec("DELETE FROM pet_photos").Error; err != nil {
		return err
	}
	if err := db.Exec("DELETE FROM pets").Error; err != nil {
		return err
	}
	if err := db.Exec("DELETE FROM users").Error; err != nil {
		return err
	}
	return nil
}

func createUsers(db *gorm.DB, role models.Role, count int) ([]models.User, error) {
	// one hash shared across seed users, bcrypt per user is slow
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		name := gofakeit.Name()
		username := strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(10, 99))

		user := models.User{
			Username: username,
			Email:    fmt.Sprintf("%s@example.com", username),
			Password: string(hashed),
			Role:     role,
			Status:   models.UserStatusActive,
			Name:     name,
			Phone:    gofakeit.Phone(),
			Address:  gofakeit.Address().Address,
		}
		if role == models.RoleShelter {
			suffix := shelterSuffixes[gofakeit.Number(0, len(shelterSuffixes)-1)]
			user.Name = fmt.Sprintf("%s %s", gofakeit.City(), suffix)
		}

		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createPets(db *gorm.DB, r *rand.Rand, shelters []models.User, count int) ([]models.Pet, error) {
	if len(shelters) == 0 {
		return nil, fmt.Errorf("no shelters to own pets")
	}

	pets := make([]models.Pet, 0, count)
	for i := 0; i < count; i++ {
		sp := species[r.Intn(len(species))]
		breeds := breedsBySpecies[sp]
		name := petNames[r.Intn(len(petNames))]
		trait := petTraits[r.Intn(len(petTraits))]

		pet := models.Pet{
			Name:        name,
			Species:     sp,
			Breed:       breeds[r.Intn(len(breeds))],
			Age:         r.Intn(12),
			Description: fmt.Sprintf("%s %s.", name, trait),
			Mood:        moods[r.Intn(len(moods))],
			SupplierID:  shelters[r.Intn(len(shelters))].ID,
		}

		// spread listing dates over the last 45 days so the mood
		// derivation has something to work with
		daysBack := r.Intn(45)
		pet.CreatedAt = time.Now().Add(-time.Duration(daysBack) * 24 * time.Hour)

		if err := db.Create(&pet).Error; err != nil {
			return nil, err
		}
		pets = append(pets, pet)
	}
	return pets, nil
}

// adoptSome marks roughly a quarter of the seeded pets as adopted by random
// adopters, leaving the rest available for the matching quiz.
func adoptSome(db *gorm.DB, r *rand.Rand, pets []models.Pet, adopters []models.User) (int, error) {
	if len(adopters) == 0 {
		return 0, nil
	}

	count := 0
	for _, pet := range pets {
		if r.Float32() >= 0.25 {
			continue
		}
		adopter := adopters[r.Intn(len(adopters))]
		when := pet.CreatedAt.Add(time.Duration(1+r.Intn(10)) * 24 * time.Hour)
		if when.After(time.Now()) {
			when = time.Now()
		}

		err := db.Model(&models.Pet{}).Where("id = ?", pet.ID).Updates(map[string]interface{}{
			"is_adopted":    true,
			"adopted_by_id": adopter.ID,
			"adoption_date": when,
		}).Error
		if err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
