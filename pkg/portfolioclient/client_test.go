package portfolioclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-portfolio-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{BaseURL: srv.URL + "/v1/", Token: "tok"})
	require.NoError(t, err)
	return client
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestNew(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestGetProfile(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/profile", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"completion": 40, "readyForTemplates": true},
		})
	})

	view, err := client.GetProfile(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 40, view.Completion)
	assert.True(t, view.ReadyForTemplates)
}

func TestSaveSections(t *testing.T) {
	t.Run("Should wrap array sections in their request envelope", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/v1/profile/experience", r.URL.Path)
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"experience":[{"title":"Engineer","company":"Acme","location":"","startDate":"2020-01","endDate":"","current":true,"description":""}]}`, string(body))
			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"data":    map[string]any{"section": "experience", "completion": 20},
			})
		})

		res, err := client.SaveExperience(context.Background(), []domain.Experience{
			{Title: "Engineer", Company: "Acme", StartDate: "2020-01", Current: true},
		})

		require.NoError(t, err)
		assert.Equal(t, domain.SectionExperience, res.Section)
		assert.Equal(t, 20, res.Completion)
	})

	t.Run("Should surface field errors as APIError", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"success": false,
				"message": "Validation failed",
				"error":   map[string][]string{"phone": {"Invalid phone number"}},
			})
		})

		_, err := client.SavePersonal(context.Background(), domain.PersonalInfo{Phone: "x"})

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
		assert.Equal(t, "Validation failed", apiErr.Message)
		assert.Equal(t, []string{"Invalid phone number"}, apiErr.Errors["phone"])
	})

	t.Run("Should keep details that are not a field map out of Errors", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"success": false,
				"message": "Profile is not ready for templates",
				"error":   map[string]bool{"personal": false},
			})
		})

		_, err := client.SelectTemplate(context.Background(), "minimal")

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Empty(t, apiErr.Errors)
	})
}

func TestNonJSONError(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := client.GetProfile(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}
