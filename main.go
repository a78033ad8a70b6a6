package main

import (
	"log"
	"net/http"
	"time"

	"storefront-order-api/client"
	"storefront-order-api/config"
	"storefront-order-api/handlers"
	"storefront-order-api/routes"
	"storefront-order-api/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadEnv()

	db, err := config.InitDB(config.GetEnv("DB_PATH", "storefront.db"))
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := config.SeedMenu(db); err != nil {
		log.Fatal("Failed to seed menu:", err)
	}

	repo := store.NewSnapshotRepository(db)
	carts := store.NewCartStore(repo)
	orders, err := store.NewOrderStore(repo)
	if err != nil {
		log.Fatal("Failed to restore order store:", err)
	}
	backend := client.NewOrderBackend(config.GetEnv("ORDER_BACKEND_URL", ""))

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS for the storefront frontend
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Cart-ID", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Storefront Order API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Storefront Order API",
			"docs":    "/api/state-machine",
			"health":  "/health",
		})
	})

	h := handlers.New(db, carts, orders, backend)
	routes.SetupRoutes(r, h)

	port := config.GetEnv("PORT", "8080")
	log.Printf("Server running on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
