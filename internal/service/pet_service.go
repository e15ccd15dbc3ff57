package service

import (
	"context"
	"strings"
	"time"

	"pawmatch/internal/authz"
	"pawmatch/internal/matching"
	"pawmatch/internal/middleware"
	"pawmatch/internal/models"
	"pawmatch/internal/repository"
)

type PetService struct {
	petRepo repository.PetRepository
	photos  *PhotoService
	now     func() time.Time
}

type CreatePetInput struct {
	Name        string
	Species     string
	Breed       string
	Age         int
	Description string
	Mood        models.Mood
	Photo       *UploadPhotoInput
}

// UpdatePetInput is a partial update: empty or nil fields keep their
// current value.
type UpdatePetInput struct {
	PetID       uint
	Name        string
	Species     string
	Breed       string
	Age         *int
	Description string
	Mood        models.Mood
	Photo       *UploadPhotoInput
}

// ListPetsInput mirrors the pet listing query surface.
type ListPetsInput struct {
	Species string
	Mood    models.Mood
	Adopted *bool
	Limit   int
	Offset  int
}

// MatchResult is one scored recommendation.
type MatchResult struct {
	Pet   models.Pet `json:"pet"`
	Score float64    `json:"score"`
}

func NewPetService(petRepo repository.PetRepository, photos *PhotoService) *PetService {
	return &PetService{petRepo: petRepo, photos: photos, now: time.Now}
}

// presentMood applies the waiting-time mood derivation before a pet leaves
// the service layer.
func (s *PetService) presentMood(pet *models.Pet) {
	pet.Mood = DeriveMood(pet, s.now())
}

// CreatePet lists a new pet supplied by the acting shelter. When a photo
// is attached, it is processed first and any pipeline failure aborts the
// listing.
func (s *PetService) CreatePet(ctx context.Context, actor authz.Actor, in CreatePetInput) (*models.Pet, error) {
	if !authz.CanCreatePet(actor) {
		return nil, models.NewForbiddenError("Only shelters can list pets", "role "+string(actor.Role)+" cannot create pets")
	}

	name := strings.TrimSpace(in.Name)
	species := strings.ToLower(strings.TrimSpace(in.Species))
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if species == "" {
		return nil, models.NewValidationError("Species is required")
	}
	if in.Age < 0 {
		return nil, models.NewValidationError("Age cannot be negative")
	}

	mood := in.Mood
	if mood == "" {
		mood = models.MoodHappy
	}
	if !mood.Valid() {
		return nil, models.NewValidationError("Unknown mood")
	}

	var photoURL string
	if in.Photo != nil {
		in.Photo.UploaderID = actor.ID
		photo, err := s.photos.Upload(ctx, *in.Photo)
		if err != nil {
			return nil, err
		}
		photoURL = s.photos.PhotoURL(photo)
	}

	pet := &models.Pet{
		Name:        name,
		Species:     species,
		Breed:       strings.TrimSpace(in.Breed),
		Age:         in.Age,
		Description: strings.TrimSpace(in.Description),
		Mood:        mood,
		PhotoURL:    photoURL,
		SupplierID:  actor.ID,
	}
	if err := s.petRepo.Create(ctx, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

func (s *PetService) GetPet(ctx context.Context, id uint) (*models.Pet, error) {
	pet, err := s.petRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.presentMood(pet)
	return pet, nil
}

func (s *PetService) ListPets(ctx context.Context, in ListPetsInput) ([]models.Pet, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	filter := repository.PetFilter{
		Species: strings.ToLower(strings.TrimSpace(in.Species)),
		Mood:    in.Mood,
		Adopted: in.Adopted,
	}
	pets, err := s.petRepo.List(ctx, filter, limit, in.Offset)
	if err != nil {
		return nil, err
	}
	for i := range pets {
		s.presentMood(&pets[i])
	}
	return pets, nil
}

// UpdatePet applies a partial edit to a listing. Only the supplying
// shelter or an admin may edit.
func (s *PetService) UpdatePet(ctx context.Context, actor authz.Actor, in UpdatePetInput) (*models.Pet, error) {
	pet, err := s.petRepo.GetByID(ctx, in.PetID)
	if err != nil {
		return nil, err
	}
	if !authz.CanModifyPet(actor, pet) {
		return nil, models.NewForbiddenError("You cannot modify this pet", "actor is neither admin nor the supplier")
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		pet.Name = name
	}
	if species := strings.ToLower(strings.TrimSpace(in.Species)); species != "" {
		pet.Species = species
	}
	if breed := strings.TrimSpace(in.Breed); breed != "" {
		pet.Breed = breed
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return nil, models.NewValidationError("Age cannot be negative")
		}
		pet.Age = *in.Age
	}
	if desc := strings.TrimSpace(in.Description); desc != "" {
		pet.Description = desc
	}
	if in.Mood != "" {
		if !in.Mood.Valid() {
			return nil, models.NewValidationError("Unknown mood")
		}
		pet.Mood = in.Mood
	}
	if in.Photo != nil {
		in.Photo.UploaderID = actor.ID
		photo, err := s.photos.Upload(ctx, *in.Photo)
		if err != nil {
			return nil, err
		}
		pet.PhotoURL = s.photos.PhotoURL(photo)
	}

	// The waiting-time derivation runs on every write, silently overriding
	// an explicit mood once the pet has waited past the thresholds.
	pet.Mood = DeriveMood(pet, s.now())

	if err := s.petRepo.Update(ctx, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

func (s *PetService) DeletePet(ctx context.Context, actor authz.Actor, id uint) error {
	pet, err := s.petRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanModifyPet(actor, pet) {
		return models.NewForbiddenError("You cannot delete this pet", "actor is neither admin nor the supplier")
	}
	return s.petRepo.Delete(ctx, id)
}

// AdoptPet finalizes an adoption for the acting adopter. The availability
// check and the state flip are a single conditional update, so concurrent
// adopters cannot both succeed.
func (s *PetService) AdoptPet(ctx context.Context, actor authz.Actor, id uint) (*models.Pet, error) {
	pet, err := s.petRepo.GetByID(ctx, id)
	if err != nil {
		middleware.AdoptionAttempts.WithLabelValues("not_found").Inc()
		return nil, err
	}
	if pet.IsAdopted {
		middleware.AdoptionAttempts.WithLabelValues("conflict").Inc()
		return nil, models.NewConflictError("Pet is already adopted")
	}
	if !authz.CanAdoptPet(actor) {
		middleware.AdoptionAttempts.WithLabelValues("forbidden").Inc()
		return nil, models.NewForbiddenError("Only adopters can adopt pets", "role "+string(actor.Role)+" cannot adopt")
	}

	if err := s.petRepo.AdoptIfAvailable(ctx, id, actor.ID, s.now()); err != nil {
		middleware.AdoptionAttempts.WithLabelValues("conflict").Inc()
		return nil, err
	}
	middleware.AdoptionAttempts.WithLabelValues("adopted").Inc()

	return s.GetPet(ctx, id)
}

// Match runs the adoption quiz over the available pets and returns the
// derived personality with up to three scored recommendations.
func (s *PetService) Match(ctx context.Context, q matching.QuizAnswers) (matching.PersonalityType, []MatchResult, error) {
	candidates, err := s.petRepo.ListAvailable(ctx)
	if err != nil {
		return "", nil, err
	}

	personality, matched := matching.Match(q, candidates)
	middleware.MatchRequests.WithLabelValues(string(personality)).Inc()

	results := make([]MatchResult, 0, len(matched))
	for i := range matched {
		s.presentMood(&matched[i])
		results = append(results, MatchResult{
			Pet:   matched[i],
			Score: matching.Score(personality, q, &matched[i]),
		})
	}
	return personality, results, nil
}
