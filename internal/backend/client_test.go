package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClient_GetOperationInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/stores/7/operation", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))

		_ = json.NewEncoder(w).Encode(OperationInfo{
			RegularHolidays: RegularHolidays{Mode: "weekly", Days: []int{0}},
			OpeningHours: []OpeningHours{
				{ID: 1, Days: []int{1, 2, 3}, StartTime: "09:00", EndTime: "21:00"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	info, err := c.GetOperationInfo(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, "weekly", info.RegularHolidays.Mode)
	assert.Len(t, info.OpeningHours, 1)
}

func TestClient_UpdateMenuCategoryOrderAndNames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/stores/7/menus/categories", r.URL.Path)

		var body struct {
			Categories []CategoryHeader `json:"categories"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if assert.Len(t, body.Categories, 2) {
			assert.Equal(t, int64(10), body.Categories[0].ID)
			assert.Zero(t, body.Categories[1].ID)
		}

		// Assign an id to the new category, echo the rest.
		body.Categories[1].ID = 11
		_ = json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	assigned, err := c.UpdateMenuCategoryOrderAndNames(context.Background(), 7, []CategoryHeader{
		{ID: 10, Name: "Coffee"},
		{Name: "Tea"},
	})
	assert.NoError(t, err)
	if assert.Len(t, assigned, 2) {
		assert.Equal(t, int64(11), assigned[1].ID)
	}
}

func TestClient_SaveMenuItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var req SaveMenuItemRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Nil(t, req.ID)
		assert.Equal(t, "Sencha", req.Name)
		assert.True(t, req.ImageChanged)

		_ = json.NewEncoder(w).Encode(map[string]int64{"id": 205})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	id, err := c.SaveMenuItem(context.Background(), 7, SaveMenuItemRequest{
		CategoryID:   11,
		Name:         "Sencha",
		Price:        5000,
		ImageRef:     "local://abc",
		ImageChanged: true,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(205), id)
}

func TestClient_DeleteMenuItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/stores/7/menus/items/205", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	assert.NoError(t, c.DeleteMenuItem(context.Background(), 7, 205))
}

func TestClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.GetStoreImages(context.Background(), 7)
	assert.ErrorContains(t, err, "502")

	err = c.UpdateStoreImages(context.Background(), 7, nil)
	assert.ErrorContains(t, err, "502")
}

func TestClient_HealthCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/healthz", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	assert.NoError(t, c.HealthCheck(context.Background()))
}
