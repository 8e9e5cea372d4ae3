// Package http contains the gin controllers and router for the API.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/libraryhub/libraryhub/internal/auth"
	"github.com/libraryhub/libraryhub/internal/cache"
	"github.com/libraryhub/libraryhub/internal/catalog"
	"github.com/libraryhub/libraryhub/internal/database"
	"github.com/libraryhub/libraryhub/internal/database/favourites"
	"github.com/libraryhub/libraryhub/internal/database/reviews"
	"github.com/libraryhub/libraryhub/internal/database/shelves"
	"github.com/libraryhub/libraryhub/internal/readinglist"
)

// RouterConfig carries every dependency the router needs. Keeping them in
// one struct keeps NewRouter's signature stable as endpoints grow.
type RouterConfig struct {
	Database *database.Database
	Version  string

	// Authentication
	AuthService    *auth.Service
	AuthController *auth.Controller
	AuthMiddleware *auth.Middleware

	// Users
	UserStore UserStore

	// Catalog
	Gateway     BookGateway
	Catalog     *catalog.Resolver
	SearchCache *cache.SearchCache // nil disables search caching

	// Library features
	ReadingList *readinglist.Service
	Reviews     *reviews.Repository
	Favourites  *favourites.Repository
	Shelves     *shelves.Repository
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)

	cfg.AuthController.RegisterRoutes(router)

	users := NewUsersController(cfg.AuthService, cfg.UserStore)
	router.POST("/users", users.Register)

	books := NewBooksController(cfg.Gateway, cfg.SearchCache)
	entries := NewReadingListController(cfg.ReadingList)
	reviewsCtrl := NewReviewsController(cfg.Reviews, cfg.Catalog)
	favouritesCtrl := NewFavouritesController(cfg.Favourites, cfg.Catalog)
	shelvesCtrl := NewShelvesController(cfg.Shelves, cfg.Catalog)

	authed := router.Group("", cfg.AuthMiddleware.RequireUser())
	{
		authed.GET("/users/me", users.Me)
		authed.PATCH("/users/:id", users.Update)
		authed.DELETE("/users/:id", users.Delete)

		// A single :olid segment serves both edition detail and
		// work-scoped reviews; gin requires one wildcard name per
		// position.
		authed.GET("/books/search", books.Search)
		authed.GET("/books/:olid", books.GetEdition)
		authed.POST("/books/:olid/reviews", reviewsCtrl.Create)
		authed.GET("/books/:olid/reviews", reviewsCtrl.ListByWork)
		authed.PATCH("/reviews/:id", reviewsCtrl.Update)
		authed.DELETE("/reviews/:id", reviewsCtrl.Delete)

		authed.POST("/user-books", entries.Add)
		authed.GET("/user-books", entries.List)
		authed.PATCH("/user-books/:id", entries.Update)
		authed.DELETE("/user-books/:id", entries.Delete)

		authed.GET("/favorites", favouritesCtrl.List)
		authed.POST("/favorites/:work_olid", favouritesCtrl.Add)
		authed.DELETE("/favorites/:work_olid", favouritesCtrl.Remove)

		authed.POST("/bookshelves", shelvesCtrl.Create)
		authed.GET("/bookshelves", shelvesCtrl.List)
		authed.GET("/bookshelves/:id", shelvesCtrl.Get)
		authed.PATCH("/bookshelves/:id", shelvesCtrl.Update)
		authed.DELETE("/bookshelves/:id", shelvesCtrl.Delete)
		authed.POST("/bookshelves/:id/books", shelvesCtrl.AddBook)
		authed.DELETE("/bookshelves/:id/books/:book_id", shelvesCtrl.RemoveBook)
	}

	admin := router.Group("", cfg.AuthMiddleware.RequireUser(), cfg.AuthMiddleware.RequireAdmin())
	{
		admin.GET("/users", users.List)
		admin.GET("/users/:id", users.Get)
	}

	return router
}
