package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	_ "portfolio-api/docs" // swagger docs

	"portfolio-api/internal/auth"
	"portfolio-api/internal/cache"
	"portfolio-api/internal/config"
	"portfolio-api/internal/db"
	"portfolio-api/internal/handler"
	"portfolio-api/internal/repository"
	"portfolio-api/internal/router"
	"portfolio-api/internal/service"
)

// @title Portfolio API
// @version 1.0
// @description CRUD REST API backing a portfolio site: users, projects and skills with JWT authentication.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded")
	}
	cfg := config.Load()

	client, database, err := db.NewMongo(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	defer func() {
		if err := db.Disconnect(client); err != nil {
			log.Printf("mongo disconnect: %v", err)
		}
	}()

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(database)
	projectRepo := repository.NewProjectRepository(database)
	skillRepo := repository.NewSkillRepository(database)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiresIn)
	tokenStore := auth.NewTokenStore(cacheClient)
	authService := service.NewAuthService(userRepo, tokenStore)
	authMW := auth.NewMiddleware(cfg.JWTSecret, userRepo, tokenStore)

	// Handlers
	userHandler := handler.NewUserHandler(cfg, jwtService, authService, userRepo)
	projectHandler := handler.NewProjectHandler(projectRepo)
	skillHandler := handler.NewSkillHandler(skillRepo)

	e := echo.New()
	router.Register(e, cfg, authMW, userHandler, projectHandler, skillHandler)

	addr := ":" + cfg.Port
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
