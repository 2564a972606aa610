package app

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"accountd/internal/config"
	"accountd/internal/handlers"
	"accountd/internal/repositories"
	"accountd/internal/routes"
	"accountd/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "accountd/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	otpRepo := repositories.NewOTPRepository(db)
	likedRepo := repositories.NewLikedItemRepository(db)

	// === Services ===
	authService := services.NewAuthService(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.AccessTTLMinutes)*time.Minute,
		time.Duration(cfg.Auth.RefreshTTLDays)*24*time.Hour,
	)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	purgeDelay := time.Duration(cfg.Accounts.PurgeDelayMinutes) * time.Minute
	purgeService := services.NewPurgeService(userRepo, likedRepo, purgeDelay)
	defer purgeService.Stop()

	accountService := services.NewAccountService(
		userRepo,
		otpRepo,
		authService,
		emailService,
		purgeService,
		purgeDelay,
	)

	// re-arm purges that were pending before the last shutdown
	if err := purgeService.Rescan(); err != nil {
		log.Printf("Failed to rescan pending deletions: %v", err)
	}

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(accountService, authService)
	userHandler := handlers.NewUserHandler(accountService, authService)
	verifyHandler := handlers.NewVerifyHandler(accountService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, authService, authHandler, userHandler, verifyHandler)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
