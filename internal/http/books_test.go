package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libraryhub/libraryhub/internal/cache"
	"github.com/libraryhub/libraryhub/internal/openlibrary"
)

func TestBooks_Search(t *testing.T) {
	api, cleanup := setupAPI(t)
	defer cleanup()

	_, token := api.registerUser(t, "reader@example.com")

	w := api.do(http.MethodGet, "/books/search?title=dune&author=herbert", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total    int                     `json:"total"`
		Page     int                     `json:"page"`
		PageSize int                     `json:"page_size"`
		Docs     []openlibrary.SearchDoc `json:"docs"`
	}
	decodeJSON(t, w, &resp)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 1, resp.Page)
	require.Len(t, resp.Docs, 1)
	assert.Equal(t, "OL893415W", resp.Docs[0].WorkOLID)
	assert.Equal(t, `title:"dune" AND author:"herbert"`, api.gateway.lastQuery)
}

func TestBooks_Search_AllFilters(t *testing.T) {
	api, cleanup := setupAPI(t)
	defer cleanup()

	_, token := api.registerUser(t, "reader@example.com")

	path := "/books/search?title=dune&author=herbert&year=1965" +
		"&subject=science+fiction&isbn=9780441172719&publisher=Chilton"
	w := api.do(http.MethodGet, path, token, "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t,
		`title:"dune" AND author:"herbert" AND first_publish_year:1965`+
			` AND subject:"science fiction" AND isbn:9780441172719 AND publisher:"Chilton"`,
		api.gateway.lastQuery)
}

func TestBooks_Search_SingleFilter(t *testing.T) {
	api, cleanup := setupAPI(t)
	defer cleanup()

	_, token := api.registerUser(t, "reader@example.com")

	w := api.do(http.MethodGet, "/books/search?subject=dystopia", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `subject:"dystopia"`, api.gateway.lastQuery)
}

func TestBooks_Search_InvalidYear(t *testing.T) {
	api, cleanup := setupAPI(t)
	defer cleanup()

	_, token := api.registerUser(t, "reader@example.com")

	w := api.do(http.MethodGet, "/books/search?year=sixties", token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, api.gateway.searchCalls)
}

func TestBooks_Search_NoFiltersReturnsEmptyPage(t *testing.T) {
	api, cleanup := setupAPI(t)
	defer cleanup()

	_, token := api.registerUser(t, "reader@example.com")

	w := api.do(http.MethodGet, "/books/search", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, api.gateway.searchCalls)

	var resp struct {
		Total    int                     `json:"total"`
		Page     int                     `json:"page"`
		PageSize int                     `json:"page_size"`
		Docs     []openlibrary.SearchDoc `json:"docs"`
	}
	decodeJSON(t, w, &resp)
	assert.Equal(t, 0, resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.PageSize)
	assert.NotNil(t, resp.Docs)
	assert.Empty(t, resp.Docs)
}

func TestBooks_Search_CachesResponses(t *testing.T) {
	mr := miniredis.RunT(t)
	searchCache := cache.NewSearchCache(mr.Addr(), "", 15*time.Minute)
	defer searchCache.Close()

	api, cleanup := setupAPIWithCache(t, searchCache)
	defer cleanup()

	_, token := api.registerUser(t, "reader@example.com")

	w := api.do(http.MethodGet, "/books/search?title=dune", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, api.gateway.searchCalls)
	first := w.Body.String()

	// Second identical search is served from the cache
	w = api.do(http.MethodGet, "/books/search?title=dune", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, api.gateway.searchCalls)
	assert.JSONEq(t, first, w.Body.String())

	// A different page misses the cache
	w = api.do(http.MethodGet, "/books/search?title=dune&page=2", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, api.gateway.searchCalls)
}

func TestBooks_GetEdition(t *testing.T) {
	api, cleanup := setupAPI(t)
	defer cleanup()

	_, token := api.registerUser(t, "reader@example.com")

	w := api.do(http.MethodGet, "/books/OL7603982M", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var edition openlibrary.EditionDetail
	decodeJSON(t, w, &edition)
	assert.Equal(t, "Dune", edition.Title)
	assert.Equal(t, "OL893415W", edition.WorkOLID)

	w = api.do(http.MethodGet, "/books/OL0M", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
