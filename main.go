package main

import (
	"context"
	"log"
	"net"

	"titanicdash/internal"
	"titanicdash/internal/config"
	"titanicdash/internal/container"
	"titanicdash/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	internal.DefaultLogger.SetLevel(internal.ParseLogLevel(appConfig.Log.Level))
	gin.SetMode(appConfig.Server.GinMode)

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Close()

	// Warm the memoized dataset so the first page view does not wait on the fetch.
	// A failure here is retried by the first request.
	go func() {
		if _, err := appContainer.Provider.LoadDataset(context.Background()); err != nil {
			log.Printf("[Startup] Dataset preload failed: %v", err)
		}
	}()

	server, err := ui.NewServer(appContainer.Dashboard)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	if err := server.Start(net.JoinHostPort("", appConfig.Server.Port)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
