package main

import (
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Klyucherov/Async-API-sprint-1/internal/cache"
	"github.com/Klyucherov/Async-API-sprint-1/internal/config"
	"github.com/Klyucherov/Async-API-sprint-1/internal/domain"
	"github.com/Klyucherov/Async-API-sprint-1/internal/handler"
	"github.com/Klyucherov/Async-API-sprint-1/internal/repository"
	"github.com/Klyucherov/Async-API-sprint-1/internal/service"
	pkglog "github.com/Klyucherov/Async-API-sprint-1/pkg/log"
)

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
		ServiceName: "catalog-service",
	})
	logger := pkglog.L()

	// Initialize Elasticsearch client
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Elasticsearch.Addresses,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create elasticsearch client")
	}

	// Verify ES connection
	res, err := esClient.Info()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to elasticsearch")
	}
	res.Body.Close()
	logger.Info().Strs("addresses", cfg.Elasticsearch.Addresses).Msg("elasticsearch connected")

	// Initialize repository
	repo := repository.NewESRepository(esClient)

	// Initialize Redis cache
	catalogCache, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer catalogCache.Close()
	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")

	// One cache-aside data service per entity variant
	films := service.NewFilmService(
		service.NewDataService[domain.Film](catalogCache, repo, domain.PartitionMovies, cfg.Cache.TTL))
	persons := service.NewPersonService(
		service.NewDataService[domain.Person](catalogCache, repo, domain.PartitionPersons, cfg.Cache.TTL))
	genres := service.NewGenreService(
		service.NewDataService[domain.Genre](catalogCache, repo, domain.PartitionGenres, cfg.Cache.TTL))

	// Initialize HTTP handler
	httpHandler := handler.NewHandler(films, persons, genres)

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))

	// Health check and metrics
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Register routes
	httpHandler.RegisterRoutes(r)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info().Str("addr", addr).Msg("catalog-service starting")
	if err := r.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
