package main

import (
	"log"
	"os"
	"path/filepath"

	"blueskyvhs/internal/application/services"
	"blueskyvhs/internal/config"
	delivery "blueskyvhs/internal/delivery/http"
	"blueskyvhs/internal/infrastructure"
)

func main() {
	cfg := config.Load()

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			log.Printf("cannot create log directory: %v", err)
		}
	}

	client, err := infrastructure.NewRedisClient(cfg)
	if err != nil {
		log.Fatal("failed to connect to Redis: ", err)
	}
	defer client.Close()

	store, err := infrastructure.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		log.Fatal("failed to prepare upload storage: ", err)
	}

	users := infrastructure.NewRedisUserRepository(client)
	catalog := infrastructure.NewRedisVideoRepository(client)
	tokens := infrastructure.NewJWTService(cfg.JWTSecret)

	auth := services.NewAuthService(users, tokens)
	videos := services.NewVideoService(catalog, store)

	e, err := delivery.NewRouter(cfg, auth, videos)
	if err != nil {
		log.Fatal("failed to set up router: ", err)
	}

	log.Println("Server is up on port " + cfg.Port)
	log.Fatal(e.Start(":" + cfg.Port))
}
