package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"ingresos_gastos/internal/config"
	"ingresos_gastos/internal/handler"
	"ingresos_gastos/internal/middleware"
	"ingresos_gastos/internal/repository"
	"ingresos_gastos/internal/service"
	"ingresos_gastos/internal/storage"
	"ingresos_gastos/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("Failed to load DB config: %v", err)
	}

	if err := storage.RunMigrations(dbCfg.DSN); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	dbPool, err := config.ConnectDB(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// --- Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	movementRepo := repository.NewMovementRepository(dbPool)
	sessionRepo := repository.NewSessionRepository(dbPool)

	// --- Services ---
	authService := service.NewAuthService(userRepo, sessionRepo, service.OAuthConfig{
		ClientID:     cfg.GithubClientID,
		ClientSecret: cfg.GithubClientSecret,
		RedirectURL:  cfg.OAuthRedirectURL,
	}, cfg.SessionTTL)
	movementService := service.NewMovementService(movementRepo)
	userService := service.NewUserService(userRepo)
	reportService := service.NewReportService(movementRepo)

	// --- Handlers ---
	stateUtil := utils.NewStateUtil(cfg.StateSecret, cfg.StateTTL)
	authHandler := handler.NewAuthHandler(authService, stateUtil, cfg.SessionTTL)
	movementHandler := handler.NewMovementHandler(movementService)
	userHandler := handler.NewUserHandler(userService)
	reportHandler := handler.NewReportHandler(reportService)

	router := gin.Default()

	// CORS for the browser frontend. Credentials are required because auth
	// rides on the session cookie, so the origin cannot be a wildcard.
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.CORSOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	authMW := middleware.SessionAuthMiddleware(authService)
	adminMW := middleware.AdminMiddleware()

	apiGroup := router.Group("/api/v1")
	authHandler.RegisterAuthRoutes(apiGroup, authMW)
	movementHandler.RegisterMovementRoutes(apiGroup, authMW, adminMW)
	userHandler.RegisterUserRoutes(apiGroup, authMW, adminMW)
	reportHandler.RegisterReportRoutes(apiGroup, authMW, adminMW)

	router.GET("/health", func(c *gin.Context) {
		if err := dbPool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	// Expired sessions fail resolution immediately; this sweep just keeps
	// the table from growing without bound.
	g.Go(func() error {
		ticker := time.NewTicker(cfg.SessionSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				removed, err := authService.CleanupExpired(gctx)
				if err != nil {
					log.Printf("Failed to sweep expired sessions: %v", err)
					continue
				}
				if removed > 0 {
					log.Printf("Swept %d expired sessions", removed)
				}
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server exiting")
}
