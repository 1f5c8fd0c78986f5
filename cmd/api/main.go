// cmd/api/main.go
// Main entry point for the application
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	// Internal packages
	"github.com/soulmatchapp/soulmatch-backend/internal/catalog"
	"github.com/soulmatchapp/soulmatch-backend/internal/common/database"
	"github.com/soulmatchapp/soulmatch-backend/internal/config"
	"github.com/soulmatchapp/soulmatch-backend/internal/interests"
	"github.com/soulmatchapp/soulmatch-backend/internal/matching"
	"github.com/soulmatchapp/soulmatch-backend/internal/session"
	"github.com/soulmatchapp/soulmatch-backend/internal/share"
)

func main() {
	// Enable detailed logging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting SoulMatch Compatibility API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// 2. Load configuration
	log.Println("\n📋 Step 2: Loading configuration...")
	cfg := config.Load()
	log.Printf("✅ Configuration loaded")

	// 3. Validate configuration
	log.Println("\n✔️  Step 3: Validating configuration...")
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed:", err)
	}
	log.Println("✅ Configuration is valid")

	// 4. Connect to PostgreSQL (optional)
	// Without it, share links fall back to embedded tokens and every
	// workflow keeps working.
	log.Println("\n🗄️  Step 4: Connecting to PostgreSQL...")
	var db *sqlx.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.NewPostgresDB(cfg.DatabaseURL)
		if err != nil {
			log.Printf("⚠️  Warning: PostgreSQL unavailable (%v), continuing with embedded links only", err)
			db = nil
		} else {
			defer db.Close()
			log.Println("✅ Connected to PostgreSQL successfully")
		}
	} else {
		log.Println("⚠️  DATABASE_URL not configured, continuing with embedded links only")
	}

	// 5. Run database migrations
	if db != nil {
		log.Println("\n🔨 Step 5: Running database migrations...")
		if err := runMigrations(db); err != nil {
			log.Fatal("❌ Failed to run migrations:", err)
		}
		log.Println("✅ Database migrations completed")
	} else {
		log.Println("\n🔨 Step 5: Skipping migrations (no database)")
	}

	// 6. Connect to Redis (optional)
	log.Println("\n📮 Step 6: Connecting to Redis...")
	var slot session.SlotStore
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable (%v), using in-memory session slot", err)
			slot = session.NewMemorySlot()
		} else {
			defer redisClient.Close()
			slot = session.NewRedisSlot(redisClient, "default")
			log.Println("✅ Connected to Redis successfully")
		}
	} else {
		log.Println("⚠️  REDIS_URL not configured, using in-memory session slot")
		slot = session.NewMemorySlot()
	}

	// 7. Initialize matching engine
	log.Println("\n💞 Step 7: Initializing matching engine...")
	taxonomy := interests.DefaultTaxonomy()
	activities := matching.DefaultCatalog()
	engine := matching.NewEngine(activities)
	log.Printf("✅ Matching engine initialized (%d categories, %d activities)",
		len(interests.Categories()), len(activities))

	// 8. Initialize session module
	log.Println("\n🔗 Step 8: Initializing session module...")
	codec := session.NewCodec()

	var remote session.Store
	var sweeper *session.Sweeper
	if db != nil {
		pgStore := session.NewPostgresStore(db)
		remote = session.NewTimeoutStore(pgStore, cfg.StoreTimeout)
		sweeper = session.NewSweeper(pgStore, cfg.SweepInterval)
	}

	sessionService := session.NewService(engine, remote, codec, slot, taxonomy, cfg.BaseURL)
	sessionHandler := session.NewHandler(sessionService)
	log.Println("✅ Session module initialized")

	// 9. Initialize share module
	log.Println("\n📨 Step 9: Initializing share module...")

	var emailProvider share.EmailProvider
	switch cfg.EmailProvider {
	case "sendgrid":
		emailProvider = share.NewSendGridEmailProvider(cfg.SendGridAPIKey, cfg.EmailFrom)
		log.Println("   ✅ Using SendGrid for emails")
	case "smtp":
		emailProvider = share.NewSMTPEmailProvider(
			cfg.SMTPHost,
			fmt.Sprintf("%d", cfg.SMTPPort),
			cfg.SMTPUser,
			cfg.SMTPPassword,
			cfg.EmailFrom,
		)
		log.Println("   ✅ Using SMTP for emails")
	default:
		emailProvider = share.NewMockEmailProvider()
		log.Println("   ⚠️  Using mock email provider (development mode)")
	}

	var smsProvider share.SMSProvider
	switch cfg.SMSProvider {
	case "twilio":
		smsProvider = share.NewTwilioSMSProvider(
			cfg.TwilioAccountSID,
			cfg.TwilioAuthToken,
			cfg.TwilioFromNumber,
		)
		log.Println("   ✅ Using Twilio for SMS")
	default:
		smsProvider = share.NewMockSMSProvider()
		log.Println("   ⚠️  Using mock SMS provider (development mode)")
	}

	shareService := share.NewService(emailProvider, smsProvider)
	shareHandler := share.NewHandler(shareService)
	log.Println("✅ Share module initialized")

	// 10. Setup routes
	log.Println("\n🛣️  Step 10: Setting up routes...")
	router := mux.NewRouter()

	// Health check and metrics
	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.HandleFunc("/api", apiInfo).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Register session routes
	session.RegisterRoutes(router, sessionHandler)
	log.Println("   ✅ Session routes registered")

	// Register share routes
	share.RegisterRoutes(router, shareHandler)
	log.Println("   ✅ Share routes registered")

	// Register catalog routes (chi sub-router)
	catalogHandler := catalog.NewHandler(taxonomy, activities)
	router.PathPrefix("/api/v1/catalog").Handler(catalog.Routes(catalogHandler))
	log.Println("   ✅ Catalog routes registered")

	// Add middleware
	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	// 11. Start background jobs
	if sweeper != nil {
		log.Println("\n🧹 Step 11: Starting expired session sweeper...")
		go sweeper.Start(context.Background())
		log.Printf("✅ Sweeper started (every %s)", cfg.SweepInterval)
	} else {
		log.Println("\n🧹 Step 11: Skipping sweeper (no database)")
	}

	// 12. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("\n========================================")
		log.Printf("🚀 Server starting on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)
		log.Println("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n⚠️  Shutdown signal received...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown:", err)
	}

	log.Println("✅ Server exited gracefully")
}

// runMigrations creates the session storage schema
func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		// Shared session records keyed by short link id
		`CREATE TABLE IF NOT EXISTS sessions (
            short_id TEXT PRIMARY KEY,
            session_data JSONB NOT NULL,
            created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
            expires_at TIMESTAMP WITH TIME ZONE NOT NULL
        )`,

		`CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at)`,
	}

	for i, migration := range migrations {
		log.Printf("   - Running migration %d/%d...", i+1, len(migrations))
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

var startTime = time.Now()

// healthCheck returns server health status
func healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(startTime).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// apiInfo returns API information
func apiInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{
        "name": "SoulMatch Compatibility API",
        "version": "1.0.0",
        "status": "running",
        "endpoints": {
            "health": "GET /health",
            "metrics": "GET /metrics",
            "sessions": {
                "create": "POST /api/v1/sessions",
                "resolve": "GET /api/v1/sessions/resolve",
                "get": "GET /api/v1/sessions/{id}",
                "partner": "POST /api/v1/sessions/{ref}/partner",
                "report": "GET /api/v1/reports/{id}"
            },
            "match": {
                "preview": "POST /api/v1/match/preview"
            },
            "catalog": {
                "categories": "GET /api/v1/catalog/categories",
                "interests": "GET /api/v1/catalog/interests",
                "activities": "GET /api/v1/catalog/activities"
            },
            "share": {
                "invite": "POST /api/v1/share/invite"
            }
        }
    }`))
}

// Middleware functions

// loggingMiddleware logs all requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		log.Printf("→ %s %s from %s", r.Method, r.RequestURI, r.RemoteAddr)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		log.Printf("← %s %s [%d] %v", r.Method, r.RequestURI, wrapped.statusCode, duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// corsMiddleware handles cross-origin requests
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
