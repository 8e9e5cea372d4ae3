// Package entrypoint wires the application and runs the HTTP server.
package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/libraryhub/libraryhub/internal/auth"
	"github.com/libraryhub/libraryhub/internal/cache"
	"github.com/libraryhub/libraryhub/internal/catalog"
	"github.com/libraryhub/libraryhub/internal/config"
	"github.com/libraryhub/libraryhub/internal/database"
	"github.com/libraryhub/libraryhub/internal/database/books"
	"github.com/libraryhub/libraryhub/internal/database/favourites"
	readinglistdb "github.com/libraryhub/libraryhub/internal/database/readinglist"
	"github.com/libraryhub/libraryhub/internal/database/reviews"
	"github.com/libraryhub/libraryhub/internal/database/shelves"
	"github.com/libraryhub/libraryhub/internal/database/users"
	httpapi "github.com/libraryhub/libraryhub/internal/http"
	"github.com/libraryhub/libraryhub/internal/openlibrary"
	"github.com/libraryhub/libraryhub/internal/readinglist"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown signal received, waiting up to %v", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run assembles the application from configuration and serves it.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting LibraryHub v%s", version)

	if cfg.Auth.JWTSecret == "" {
		log.Fatalf("JWT_SECRET is not set")
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	gateway := openlibrary.NewClient(
		cfg.OpenLibrary.BaseURL,
		cfg.OpenLibrary.Timeout,
		cfg.OpenLibrary.RateInterval,
	)

	bookStore := books.NewRepository(db.DB)
	userStore := users.NewRepository(db.DB)
	entryStore := readinglistdb.NewRepository(db.DB)

	resolver := catalog.NewResolver(bookStore, gateway)

	authService := auth.NewService(userStore, cfg.Auth)
	tokenIssuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessExpiry, cfg.Auth.RefreshExpiry)

	var searchCache *cache.SearchCache
	if cfg.Redis.Addr != "" {
		searchCache = cache.NewSearchCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.SearchTTL)
		log.Printf("Search cache enabled at %s (TTL %v)", cfg.Redis.Addr, cfg.Redis.SearchTTL)
	}

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Database: db,
		Version:  version,

		AuthService:    authService,
		AuthController: auth.NewController(authService, tokenIssuer),
		AuthMiddleware: auth.NewMiddleware(authService, tokenIssuer),

		UserStore: userStore,

		Gateway:     gateway,
		Catalog:     resolver,
		SearchCache: searchCache,

		ReadingList: readinglist.NewService(entryStore, resolver),
		Reviews:     reviews.NewRepository(db.DB),
		Favourites:  favourites.NewRepository(db.DB),
		Shelves:     shelves.NewRepository(db.DB),
	})

	Serve(router, cfg, func(ctx context.Context) {
		if searchCache != nil {
			if err := searchCache.Close(); err != nil {
				log.Printf("Error closing search cache: %v", err)
			}
		}
	})
}
