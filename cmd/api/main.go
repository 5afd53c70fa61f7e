package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/auth"
	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/catalog"
	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/customer"
	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/inventory"
	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/order"
	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/report"
	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/rider"
	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/user"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	jwtKey := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtKey) == 0 {
		log.Fatal("JWT_SECRET is required")
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Identity & Accounts ─────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	user.NewHandler(userService).RegisterRoutes(router)

	authService := auth.NewService(userRepo, jwtKey)
	auth.NewHandler(authService, jwtKey).RegisterRoutes(router)

	customerRepo := customer.NewPostgresRepository(db)
	customerService := customer.NewService(customerRepo)
	customer.NewHandler(customerService, jwtKey).RegisterRoutes(router)

	riderRepo := rider.NewPostgresRepository(db)
	riderService := rider.NewService(riderRepo)
	rider.NewHandler(riderService, jwtKey).RegisterRoutes(router)

	// ── Catalog & Inventory ─────────────────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService, jwtKey).RegisterRoutes(router)

	inventoryRepo := inventory.NewPostgresRepository(db)
	inventoryService := inventory.NewService(inventoryRepo)
	inventory.NewHandler(inventoryService, jwtKey).RegisterRoutes(router)

	// ── Orders & Deliveries ─────────────────────────────────
	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, order.ConfigFromEnv())
	order.NewHandler(orderService, jwtKey).RegisterRoutes(router)

	// ── Reports ─────────────────────────────────────────────
	reportRepo := report.NewPostgresRepository(db)
	reportService := report.NewService(reportRepo)
	report.NewHandler(reportService, jwtKey).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Water station API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
