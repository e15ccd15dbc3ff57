package server

import (
	"net/http"
	"testing"

	"pawmatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	app, _, _ := newTestServer(t)

	t.Run("adopter signup succeeds with token", func(t *testing.T) {
		token, id := signupUser(t, app, "daisy", models.RoleAdopter)
		assert.NotEmpty(t, token)
		assert.NotZero(t, id)
	})

	t.Run("shelter signup succeeds", func(t *testing.T) {
		token, _ := signupUser(t, app, "happypaws", models.RoleShelter)
		assert.NotEmpty(t, token)
	})

	t.Run("admin role rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
			"username": "sneaky",
			"email":    "sneaky@example.com",
			"password": "password123",
			"role":     "admin",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
			"username": "daisy2",
			"email":    "daisy@example.com",
			"password": "password123",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
			"username": "nobody",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	app, _, _ := newTestServer(t)
	signupUser(t, app, "daisy", models.RoleAdopter)

	t.Run("valid credentials", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "daisy@example.com",
			"password": "password123",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var payload struct {
			Token string      `json:"token"`
			User  models.User `json:"user"`
		}
		decodeBody(t, resp, &payload)
		assert.NotEmpty(t, payload.Token)
		assert.Equal(t, "daisy", payload.User.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "daisy@example.com",
			"password": "wrongpass123",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown email", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "nobody@example.com",
			"password": "password123",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestMe(t *testing.T) {
	app, _, _ := newTestServer(t)
	token, id := signupUser(t, app, "daisy", models.RoleAdopter)

	t.Run("returns current account", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/auth/me", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var user models.User
		decodeBody(t, resp, &user)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "daisy", user.Username)
	})

	t.Run("requires a token", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/auth/me", "", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects a garbage token", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/auth/me", "not.a.token", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
