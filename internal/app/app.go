package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiHTTP "ripple/internal/controller/http"
	"ripple/internal/repo/persistent"
	"ripple/internal/usecase"
	"ripple/pkg/cache"
	"ripple/pkg/config"
	"ripple/pkg/database"
	"ripple/pkg/jwt"
	"ripple/pkg/logger"
	"ripple/pkg/mail"
	"ripple/pkg/middleware"
	"ripple/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "ripple/docs" // Swagger docs
)

const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	jwtService  *jwt.Service
	mailer      mail.Mailer
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Failed to connect to redis: %v (rate limiting disabled)", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		return nil, err
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		jwtService:  jwt.NewServiceWithExpiry(cfg.JWTSecret, time.Duration(cfg.JWTExpiryHrs)*time.Hour),
		mailer:      mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom),
	}, nil
}

func (a *App) Run() error {
	userRepo := persistent.NewUserRepository(a.db)
	postRepo := persistent.NewPostRepository(a.db)

	authUseCase := usecase.NewAuthUseCase(userRepo, a.jwtService, a.mailer, a.log)
	userUseCase := usecase.NewUserUseCase(userRepo, a.s3Client, a.log)
	postUseCase := usecase.NewPostUseCase(postRepo, a.log)

	authHandler := apiHTTP.NewAuthHandler(authUseCase)
	userHandler := apiHTTP.NewUserHandler(userUseCase)
	postHandler := apiHTTP.NewPostHandler(postUseCase)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	rateLimited := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if a.redisClient == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{
			middleware.RateLimitMiddleware(a.redisClient, loginRateLimit, loginRateWindow),
			h,
		}
	}

	api := r.Group("/api/v1")
	{
		users := api.Group("/users")
		{
			users.POST("/signup", rateLimited(authHandler.Signup)...)
			users.POST("/login", rateLimited(authHandler.Login)...)
			users.POST("/forgot-password", rateLimited(authHandler.ForgotPassword)...)
			users.PATCH("/reset-password/:token", authHandler.ResetPassword)

			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)

			// Everything below needs a verified token plus a live account.
			protected := users.Group("")
			protected.Use(middleware.AuthMiddleware(a.jwtService), apiHTTP.CurrentUser(authUseCase))
			{
				protected.PATCH("/update-password", authHandler.UpdatePassword)
				protected.GET("/me", authHandler.Me)
				protected.PATCH("/me", userHandler.UpdateMe)
				protected.POST("/me/photo", userHandler.UploadPhoto)
				protected.DELETE("/me", userHandler.DeactivateMe)

				admin := protected.Group("")
				{
					admin.POST("", apiHTTP.RequirePermission("users:manage"), userHandler.CreateUser)
					admin.PATCH("/:id", apiHTTP.RequirePermission("users:manage"), userHandler.UpdateUser)
					admin.DELETE("/:id", apiHTTP.RequirePermission("users:delete"), userHandler.DeleteUser)
				}
			}
		}

		posts := api.Group("/posts")
		posts.Use(middleware.AuthMiddleware(a.jwtService), apiHTTP.CurrentUser(authUseCase))
		{
			posts.POST("", postHandler.CreatePost)
			posts.GET("", postHandler.ListPosts)
			posts.GET("/:id", postHandler.GetPost)
			posts.PATCH("/:id", postHandler.UpdatePost)
			posts.DELETE("/:id", postHandler.DeletePost)

			posts.POST("/:id/reactions", postHandler.ToggleReaction)

			posts.POST("/:id/comments", postHandler.AddComment)
			posts.PATCH("/:id/comments/:comment_id", postHandler.EditComment)
			posts.DELETE("/:id/comments/:comment_id", postHandler.DeleteComment)
			posts.POST("/:id/comments/:comment_id/reactions", postHandler.ToggleCommentReaction)
		}
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Server starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Server exited")
	return nil
}
