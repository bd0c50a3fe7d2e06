package main

import (
	"log"
	"net"
	"net/http"
	"time"

	"titanicdash/internal"
	"titanicdash/internal/api"
	"titanicdash/internal/config"
	"titanicdash/internal/container"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	internal.DefaultLogger.SetLevel(internal.ParseLogLevel(appConfig.Log.Level))

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Close()

	addr := net.JoinHostPort("", appConfig.Server.APIPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.New(appContainer.Summary),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Starting JSON API on %s", addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal("Server failed:", err)
	}
}
