package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"

	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/database"
	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/handlers"
	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/repositories"
	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/routes"
	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/services"
)

func NewServer() *http.Server {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil || port == 0 {
		port = 8080
	}

	if err := database.EnsureDatabaseExists(); err != nil {
		log.Fatalf("failed to ensure database exists: %v", err)
	}

	pool, err := database.Connect()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(pool); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Dependency injection
	projectRepo := repositories.NewProjectRepository(pool)
	entityRepo := repositories.NewEntityRepository(pool)
	relationshipRepo := repositories.NewRelationshipRepository(pool)

	projectService := services.NewProjectService(projectRepo)
	entityService := services.NewEntityService(projectRepo, entityRepo)
	relationshipService := services.NewRelationshipService(projectRepo, entityRepo, relationshipRepo)
	diagramService := services.NewDiagramService(projectRepo, entityRepo, relationshipRepo)
	exchangeService := services.NewExchangeService(projectRepo, entityRepo, relationshipRepo, projectService, entityService)

	projectHandler := handlers.NewProjectHandler(projectService)
	entityHandler := handlers.NewEntityHandler(entityService)
	relationshipHandler := handlers.NewRelationshipHandler(relationshipService)
	diagramHandler := handlers.NewDiagramHandler(diagramService)
	exchangeHandler := handlers.NewExchangeHandler(exchangeService)

	router := gin.Default()

	// The diagram UI runs in the browser; allow it to talk to the API.
	corsConfig := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ALLOW_ORIGINS"); origins != "" {
		corsConfig.AllowOrigins = []string{origins}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	routes.RegisterRoutes(router, projectHandler, entityHandler, relationshipHandler, diagramHandler, exchangeHandler)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
