package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pawmatch/internal/config"
	"pawmatch/internal/models"
	"pawmatch/internal/repository"
	"pawmatch/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer builds a Server with an in-memory database and all routes
// registered. Redis stays nil so reads go straight to the database.
func newTestServer(t *testing.T) (*fiber.App, *Server, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Pet{}, &models.PetPhoto{}))

	cfg := &config.Config{
		JWTSecret: "test_secret",
		Env:       "test",
		MediaDir:  t.TempDir(),
	}

	userRepo := repository.NewUserRepository(db)
	petRepo := repository.NewPetRepository(db)
	hasher := service.NewBcryptHasher()

	s := &Server{
		config:   cfg,
		db:       db,
		userRepo: userRepo,
		petRepo:  petRepo,
	}
	s.authService = service.NewAuthService(userRepo, hasher)
	s.userService = service.NewUserService(userRepo, petRepo, hasher)
	s.photoService = service.NewPhotoService(petRepo, cfg)
	s.petService = service.NewPetService(petRepo, s.photoService)

	app := fiber.New()
	s.SetupRoutes(app)
	return app, s, db
}

// signupUser registers an account through the API and returns its token and ID.
func signupUser(t *testing.T, app *fiber.App, username string, role models.Role) (string, uint) {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
		"role":     string(role),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var payload struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.NotEmpty(t, payload.Token)
	return payload.Token, payload.User.ID
}

// adminToken promotes a fresh user to admin directly in the database and
// logs in again so the token carries the admin role.
func adminToken(t *testing.T, app *fiber.App, db *gorm.DB, username string) (string, uint) {
	t.Helper()

	_, id := signupUser(t, app, username, models.RoleAdopter)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", id).Update("role", models.RoleAdmin).Error)

	body, _ := json.Marshal(map[string]string{
		"email":    username + "@example.com",
		"password": "password123",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload.Token, id
}

// doJSON sends a JSON request with an optional bearer token.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}
