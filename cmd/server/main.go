package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	webAdapter "dairydesk/internal/adapters/web"
	"dairydesk/internal/app"
	"dairydesk/internal/core"
	"dairydesk/internal/db"
	"dairydesk/internal/orderapi"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	apiURL := os.Getenv("ORDER_API_URL")
	if apiURL == "" {
		log.Fatal("ORDER_API_URL environment variable not set")
	}
	client := orderapi.NewClient(apiURL, 30*time.Second)

	routeService := core.NewRouteService(pool)
	reportLog := core.NewReportLogService(pool)

	svc := app.NewService(ctx, client, routeService, reportLog)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins)

	log.Printf("server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
