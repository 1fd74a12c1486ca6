package app

import (
	"context"
	"fmt"

	"github.com/PhanMy23520965/LaLuneBakery/config"
	"github.com/PhanMy23520965/LaLuneBakery/controllers"
	"github.com/PhanMy23520965/LaLuneBakery/handler"
	"github.com/PhanMy23520965/LaLuneBakery/libs"
	"github.com/PhanMy23520965/LaLuneBakery/middleware"
	"github.com/PhanMy23520965/LaLuneBakery/repositories"
	"github.com/PhanMy23520965/LaLuneBakery/routes"
	"github.com/PhanMy23520965/LaLuneBakery/services"
	"github.com/PhanMy23520965/LaLuneBakery/utils"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App owns the shared connections behind the HTTP router.
type App struct {
	Router *gin.Engine
	DB     *pgxpool.Pool
	Redis  *redis.Client
}

func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if err := config.RunMigrations(cfg.DSN(), cfg.MigrationsDir, logger); err != nil {
		return nil, err
	}

	db, err := config.ConnectDB(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	rdb, err := config.ConnectRedis(ctx, cfg, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	router, err := NewRouter(cfg, db, rdb, logger)
	if err != nil {
		db.Close()
		rdb.Close()
		return nil, err
	}

	return &App{Router: router, DB: db, Redis: rdb}, nil
}

func (a *App) Close() {
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

func NewRouter(cfg *config.Config, db *pgxpool.Pool, rdb *redis.Client, logger *zap.Logger) (*gin.Engine, error) {
	accountRepo := repositories.NewAccountRepository(db)
	productRepo := repositories.NewProductRepository(db)
	sessionRepo := repositories.NewSessionRepository(rdb)
	productCache := repositories.NewProductCache(rdb)

	images, err := newImageStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	authService := services.NewAuthService(accountRepo, utils.NewPasswordHasher(), newMailer(cfg, logger), cfg.ResetTokenTTL, logger)
	cartService := services.NewCartService(accountRepo, logger)
	productService := services.NewProductService(productRepo, productCache, images, logger)
	accountService := services.NewAccountService(accountRepo)

	sessions := middleware.NewSessionManager(sessionRepo, middleware.SessionOptions{
		Secret:      cfg.SessionSecret,
		TTL:         cfg.SessionTTL,
		RememberTTL: cfg.RememberMeTTL,
		Secure:      cfg.IsProduction(),
	}, logger)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.OriginURL))
	router.MaxMultipartMemory = cfg.MaxUploadSize

	routes.SetupRoutes(router, routes.Controllers{
		Auth:     controllers.NewAuthController(authService, sessions, logger),
		Profile:  controllers.NewProfileController(authService, sessions, logger),
		Cart:     controllers.NewCartController(cartService, sessions, logger),
		Product:  controllers.NewProductController(productService, sessions, logger),
		Account:  controllers.NewAccountController(accountService, logger),
		Sessions: sessions,
		Health: handler.Health(map[string]handler.Check{
			"postgres": db.Ping,
			"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}),
	}, cfg.UploadDir)

	return router, nil
}

func newMailer(cfg *config.Config, logger *zap.Logger) libs.Mailer {
	mailer, err := libs.NewSMTPMailer(libs.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.SMTPFrom,
	}, logger)
	if err != nil {
		logger.Warn("SMTP not configured, emails will be written to the log", zap.Error(err))
		return libs.NewLogMailer(logger)
	}
	return mailer
}

func newImageStore(cfg *config.Config, logger *zap.Logger) (libs.ImageStore, error) {
	if cfg.CloudinaryURL != "" || cfg.CloudinaryCloudName != "" {
		store, err := libs.NewCloudinaryImageStore(libs.CloudinaryConfig{
			URL:       cfg.CloudinaryURL,
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			MaxSize:   cfg.MaxUploadSize,
		}, logger)
		if err == nil {
			return store, nil
		}
		logger.Warn("Cloudinary unavailable, storing images locally", zap.Error(err))
	}

	store, err := libs.NewLocalImageStore(cfg.UploadDir, "/uploads", cfg.MaxUploadSize)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare upload directory: %w", err)
	}
	return store, nil
}
