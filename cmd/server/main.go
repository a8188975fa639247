package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/ankadev/tripnest/internal/auth"
	"github.com/ankadev/tripnest/internal/handlers"
	"github.com/ankadev/tripnest/internal/service"
	"github.com/ankadev/tripnest/internal/storage/sqlite"
	"github.com/ankadev/tripnest/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/tripnest.db")
	port := getEnv("PORT", "8080")
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}
	if getEnv("GIN_MODE", "") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	router := handlers.NewRouter(
		service.NewChecklistService(store),
		service.NewItemService(store),
		auth.NewVerifier(jwtSecret),
	)

	// h2c allows HTTP/2 without TLS behind the reverse proxy that
	// terminates it.
	h2cHandler := h2c.NewHandler(router, &http2.Server{})

	addr := fmt.Sprintf(":%s", port)
	slog.Info("Checklist server starting", "address", addr)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
