package server

import (
	"io"
	"mime/multipart"
	"strings"

	"pawmatch/internal/models"
	"pawmatch/internal/service"

	"github.com/gofiber/fiber/v2"
)

// petForm carries the mutable pet fields. It parses from JSON bodies and
// from multipart form fields alike, so photo uploads and plain updates
// share one shape.
type petForm struct {
	Name        string `json:"name" form:"name"`
	Species     string `json:"species" form:"species"`
	Breed       string `json:"breed" form:"breed"`
	Age         *int   `json:"age" form:"age"`
	Description string `json:"description" form:"description"`
	Mood        string `json:"mood" form:"mood"`
}

// readPhotoUpload pulls the optional "photo" file out of a multipart body.
// A nil result means no photo was attached.
func readPhotoUpload(c *fiber.Ctx) (*service.UploadPhotoInput, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return nil, nil
	}
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		// Multipart body without a photo part is fine.
		return nil, nil
	}
	content, err := readMultipartFile(fileHeader)
	if err != nil {
		return nil, models.NewValidationError("Could not read uploaded photo")
	}
	return &service.UploadPhotoInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Content:     content,
	}, nil
}

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

// GetPets handles GET /api/pets
// @Summary List pets
// @Description Browse pet listings with optional species, mood, and adoption filters
// @Tags pets
// @Produce json
// @Param species query string false "Filter by species"
// @Param mood query string false "Filter by mood"
// @Param adopted query bool false "Filter by adoption state"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.Pet
// @Router /pets [get]
func (s *Server) GetPets(c *fiber.Ctx) error {
	pagination := parsePagination(c, 20)

	in := service.ListPetsInput{
		Species: c.Query("species"),
		Mood:    models.Mood(c.Query("mood")),
		Limit:   pagination.Limit,
		Offset:  pagination.Offset,
	}
	if raw := c.Query("adopted"); raw != "" {
		adopted := raw == "true" || raw == "1"
		in.Adopted = &adopted
	}

	pets, err := s.petService.ListPets(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(pets)
}

// GetPet handles GET /api/pets/:id
// @Summary Get a pet
// @Tags pets
// @Produce json
// @Param id path int true "Pet ID"
// @Success 200 {object} models.Pet
// @Failure 404 {object} models.ErrorResponse
// @Router /pets/{id} [get]
func (s *Server) GetPet(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	pet, err := s.petService.GetPet(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(pet)
}

// CreatePet handles POST /api/pets
// @Summary List a new pet
// @Description Create a pet listing; shelters only. Accepts multipart with an optional "photo" file.
// @Tags pets
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Pet name"
// @Param species formData string true "Species"
// @Param photo formData file false "Pet photo"
// @Success 201 {object} models.Pet
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /pets [post]
func (s *Server) CreatePet(c *fiber.Ctx) error {
	var form petForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	photo, err := readPhotoUpload(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	age := 0
	if form.Age != nil {
		age = *form.Age
	}
	pet, err := s.petService.CreatePet(c.Context(), s.actor(c), service.CreatePetInput{
		Name:        form.Name,
		Species:     form.Species,
		Breed:       form.Breed,
		Age:         age,
		Description: form.Description,
		Mood:        models.Mood(form.Mood),
		Photo:       photo,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(pet)
}

// UpdatePet handles PUT /api/pets/:id
// @Summary Update a pet
// @Description Partial update of a listing; the supplying shelter or an admin only
// @Tags pets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pet ID"
// @Success 200 {object} models.Pet
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /pets/{id} [put]
func (s *Server) UpdatePet(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var form petForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	photo, err := readPhotoUpload(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	pet, err := s.petService.UpdatePet(c.Context(), s.actor(c), service.UpdatePetInput{
		PetID:       id,
		Name:        form.Name,
		Species:     form.Species,
		Breed:       form.Breed,
		Age:         form.Age,
		Description: form.Description,
		Mood:        models.Mood(form.Mood),
		Photo:       photo,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(pet)
}

// DeletePet handles DELETE /api/pets/:id
// @Summary Delete a pet
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pet ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /pets/{id} [delete]
func (s *Server) DeletePet(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.petService.DeletePet(c.Context(), s.actor(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Pet deleted"})
}

// AdoptPet handles PATCH /api/pets/:id/adopt
// @Summary Adopt a pet
// @Description Finalize an adoption; adopters only, and only while the pet is available
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pet ID"
// @Success 200 {object} models.Pet
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /pets/{id}/adopt [patch]
func (s *Server) AdoptPet(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	pet, err := s.petService.AdoptPet(c.Context(), s.actor(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(pet)
}

// ServePetPhoto handles GET /media/pets/:filename
// @Summary Serve a processed pet photo
// @Tags pets
// @Produce jpeg
// @Param filename path string true "Photo filename"
// @Success 200 {file} binary
// @Failure 404 {object} models.ErrorResponse
// @Router /media/pets/{filename} [get]
func (s *Server) ServePetPhoto(c *fiber.Ctx) error {
	path, err := s.photoService.ResolveForServing(c.Params("filename"))
	if err != nil {
		return respondServiceError(c, err)
	}
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400, immutable")
	return c.SendFile(path)
}
