package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type favouritesListing struct {
	Items []struct {
		WorkOLID string   `json:"work_olid"`
		Title    string   `json:"title"`
		Authors  []string `json:"authors"`
	} `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

func TestFavourites_AddAndList(t *testing.T) {
	api, cleanup := setupAPI(t)
	defer cleanup()

	_, token := api.registerUser(t, "reader@example.com")

	w := api.do(http.MethodPost, "/favorites/OL893415W", token, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = api.do(http.MethodGet, "/favorites", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var listing favouritesListing
	decodeJSON(t, w, &listing)
	assert.Equal(t, int64(1), listing.Total)
	require.Len(t, listing.Items, 1)
	assert.Equal(t, "OL893415W", listing.Items[0].WorkOLID)
	assert.Equal(t, "Dune", listing.Items[0].Title)
	assert.Equal(t, []string{"Frank Herbert"}, listing.Items[0].Authors)
}

func TestFavourites_Add_UnknownWork(t *testing.T) {
	api, cleanup := setupAPI(t)
	defer cleanup()

	_, token := api.registerUser(t, "reader@example.com")

	w := api.do(http.MethodPost, "/favorites/OL0W", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFavourites_Add_Duplicate(t *testing.T) {
	api, cleanup := setupAPI(t)
	defer cleanup()

	_, token := api.registerUser(t, "reader@example.com")

	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/favorites/OL893415W", token, "").Code)
	assert.Equal(t, http.StatusConflict, api.do(http.MethodPost, "/favorites/OL893415W", token, "").Code)
}

func TestFavourites_ListIsPerUser(t *testing.T) {
	api, cleanup := setupAPI(t)
	defer cleanup()

	_, token := api.registerUser(t, "reader@example.com")
	_, otherToken := api.registerUser(t, "other@example.com")

	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/favorites/OL893415W", token, "").Code)

	w := api.do(http.MethodGet, "/favorites", otherToken, "")
	require.Equal(t, http.StatusOK, w.Code)

	var listing favouritesListing
	decodeJSON(t, w, &listing)
	assert.Equal(t, int64(0), listing.Total)
	assert.Empty(t, listing.Items)
}

func TestFavourites_Remove(t *testing.T) {
	api, cleanup := setupAPI(t)
	defer cleanup()

	_, token := api.registerUser(t, "reader@example.com")
	_, otherToken := api.registerUser(t, "other@example.com")

	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/favorites/OL893415W", token, "").Code)

	// Not in the other user's favourites
	w := api.do(http.MethodDelete, "/favorites/OL893415W", otherToken, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodDelete, "/favorites/OL893415W", token, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(http.MethodDelete, "/favorites/OL893415W", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
