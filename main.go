package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"campustrace/auth"
	"campustrace/campus"
	"campustrace/config"
	"campustrace/database"
	"campustrace/embedding"
	"campustrace/handlers"
	"campustrace/matching"
	"campustrace/metrics"
	"campustrace/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using system environment variables")
	}

	cfg := config.Load()

	db, err := setupDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	log.Println("Initializing database schema...")
	if err := database.InitializeSchema(db); err != nil {
		log.Fatal("Failed to initialize database schema:", err)
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	service := database.NewService(db)
	signer := auth.NewSigner(cfg.JWTSecret)
	boundary := campus.Boundary{
		CenterLat:    cfg.CampusCenterLat,
		CenterLng:    cfg.CampusCenterLng,
		RadiusMeters: cfg.CampusRadiusMeters,
	}

	semantic := embedding.Disabled()
	if cfg.SemanticMatching && cfg.OpenAIAPIKey != "" {
		log.Printf("Semantic matching enabled with model %s", cfg.EmbeddingModel)
		semantic = embedding.Instrumented(embedding.NewClient(cfg.OpenAIAPIKey, cfg.EmbeddingModel), collector)
	}

	matcher := matching.NewMatcher(service, service, semantic, collector)

	h := handlers.NewHandlers(service, matcher, signer, boundary, cfg, collector)
	router := setupRouter(h, signer, registry)

	log.Printf("CampusTrace starting on %s:%s", cfg.Host, cfg.Port)
	if err := router.Run(cfg.Host + ":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func setupDatabase(cfg *config.Config) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&multiStatements=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

func setupRouter(h *handlers.Handlers, signer *auth.Signer, registry *prometheus.Registry) *gin.Engine {
	router := gin.Default()

	router.GET("/health", h.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Posting an item triggers a full matching pass, so it gets its own
	// tight rate budget.
	itemLimiter := middleware.NewRateLimiter(8, time.Minute)

	public := router.Group("/api/v1")
	{
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)
		public.GET("/qr/scan/:token", h.ScanQR)
	}

	protected := router.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware(signer))
	{
		protected.GET("/auth/me", h.Me)

		protected.GET("/items", h.ListItems)
		protected.POST("/items", middleware.RateLimitMiddleware(itemLimiter), h.CreateItem)
		protected.GET("/items/:id", h.GetItem)
		protected.GET("/items/:id/qr", h.GetItemQR)
		protected.POST("/items/:id/claim", h.CreateClaim)
		protected.PATCH("/items/:id/claim", h.ResolveClaim)

		protected.GET("/matches", h.ListMatches)
		protected.GET("/messages/:matchId", h.ListMessages)
		protected.POST("/messages/:matchId", h.PostMessage)

		protected.GET("/notifications", h.ListNotifications)
		protected.PATCH("/notifications", h.MarkNotificationRead)
	}

	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.AuthMiddleware(signer), middleware.AdminOnly())
	{
		admin.GET("/stats", h.AdminStats)
		admin.GET("/export", h.AdminExport)
	}

	return router
}
