package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-gonic/gin"

	"github.com/weiawesome/catalog-service/internal/cache"
	"github.com/weiawesome/catalog-service/internal/config"
	"github.com/weiawesome/catalog-service/internal/domain"
	"github.com/weiawesome/catalog-service/internal/handler"
	"github.com/weiawesome/catalog-service/internal/repository"
	"github.com/weiawesome/catalog-service/internal/search"
	"github.com/weiawesome/catalog-service/internal/service"
	pkglog "github.com/weiawesome/catalog-service/pkg/log"
	"github.com/weiawesome/catalog-service/pkg/storage"
)

const serviceName = "catalog-service"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize structured logger
	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Level == "debug",
		ServiceName: serviceName,
	})
	logger := pkglog.L()

	// Initialize Elasticsearch client
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Elasticsearch.Addresses,
		Username:  cfg.Elasticsearch.Username,
		Password:  cfg.Elasticsearch.Password,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create elasticsearch client")
	}

	// Verify ES connection
	pingCtx, pingCancel := context.WithTimeout(context.Background(), cfg.Elasticsearch.Timeout)
	err = search.Ping(pingCtx, esClient)
	pingCancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to elasticsearch")
	}
	logger.Info().Strs("addresses", cfg.Elasticsearch.Addresses).Msg("elasticsearch connected")

	// Initialize cache
	store, err := cache.New(cfg.Cache, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize cache")
	}
	defer store.Close()
	logger.Info().Str("backend", cfg.Cache.Backend).Str("addr", cfg.Redis.Address).Msg("cache ready")

	codec, err := cache.NewCodec(cfg.Cache.Codec)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid cache codec")
	}

	// Initialize repositories
	searchClient := search.NewESClient(esClient)
	opts := repository.Options{
		Prefix:        cfg.Cache.Prefix,
		TTL:           cfg.Cache.TTL,
		Codec:         codec,
		SearchTimeout: cfg.Elasticsearch.Timeout,
		CacheTimeout:  cfg.Cache.Timeout,
	}
	indexes := cfg.Elasticsearch.Indexes
	filmRepo := repository.New(searchClient, store, repository.JSONDescriptor[domain.Film]("film", indexes.Movies), opts)
	genreRepo := repository.New(searchClient, store, repository.JSONDescriptor[domain.Genre]("genre", indexes.Genres), opts)
	personRepo := repository.New(searchClient, store, repository.JSONDescriptor[domain.Person]("person", indexes.Persons), opts)

	// Initialize media storage
	files, err := newStorage(context.Background(), cfg.Storage)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	logger.Info().Str("type", cfg.Storage.Type).Msg("media storage ready")

	// Initialize services
	paging := service.Paging{
		DefaultPageSize: cfg.Catalog.DefaultPageSize,
		MaxPageSize:     cfg.Catalog.MaxPageSize,
		ResultWindow:    cfg.Catalog.MaxResultWindow,
	}
	filmService := service.NewFilmService(filmRepo, files, service.FilmOptions{
		Paging:           paging,
		RecommendedFilms: cfg.Catalog.RecommendedFilms,
		URLExpiry:        cfg.Storage.URLExpiry,
	})
	genreService := service.NewGenreService(genreRepo, paging)
	personService := service.NewPersonService(personRepo, filmRepo, service.PersonOptions{
		Paging:     paging,
		FilmsLimit: cfg.Catalog.PersonFilmsLimit,
	})

	// Initialize HTTP handler
	httpHandler := handler.NewHandler(filmService, genreService, personService)

	// Setup Gin router
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Register routes
	httpHandler.RegisterRoutes(r)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("catalog-service starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down catalog-service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	// Let in-flight cache writes land before the cache is closed.
	filmRepo.Flush()
	genreRepo.Flush()
	personRepo.Flush()

	logger.Info().Msg("catalog-service stopped")
}

// newStorage builds the media storage selected by cfg.Type. It returns nil
// when films are served without media files.
func newStorage(ctx context.Context, cfg config.StorageConfig) (storage.Storage, error) {
	switch cfg.Type {
	case "", "none":
		return nil, nil
	case "local":
		return storage.NewLocalStorage(cfg.Local)
	case "s3":
		return storage.NewS3Storage(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
