package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	coreauth "github.com/chubrika/wineo-back/internal/core/auth"
	"github.com/chubrika/wineo-back/internal/core/cache"
	"github.com/chubrika/wineo-back/internal/core/config"
	"github.com/chubrika/wineo-back/internal/core/database"
	"github.com/chubrika/wineo-back/internal/core/logger"
	"github.com/chubrika/wineo-back/internal/core/server"
	"github.com/chubrika/wineo-back/internal/core/storage"
	"github.com/chubrika/wineo-back/internal/domain"
	"github.com/chubrika/wineo-back/internal/repo"
	"github.com/chubrika/wineo-back/internal/service"
	"github.com/chubrika/wineo-back/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := newLogger(cfg)
	defer cleanup()

	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(
			&domain.User{},
			&domain.Region{},
			&domain.City{},
			&domain.Category{},
			&domain.Filter{},
			&domain.Listing{},
		); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	store, err := storage.New(storage.Opts{
		Endpoint:      cfg.Storage.Endpoint,
		AccessKey:     cfg.Storage.AccessKey,
		SecretKey:     cfg.Storage.SecretKey,
		Bucket:        cfg.Storage.Bucket,
		UseSSL:        cfg.Storage.UseSSL,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		log.Fatal("storage client", zap.Error(err))
	}
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := store.EnsureBucket(ctx); err != nil {
			log.Warn("ensure bucket failed", zap.Error(err))
		}
		cancel()
	}

	var rcache *cache.Cache
	if cfg.Redis.Addr != "" {
		rcache = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	}

	jwter := &coreauth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTTLDays) * 24 * time.Hour,
	}

	users := repo.NewUserRepo(db)
	regions := repo.NewRegionRepo(db)
	cities := repo.NewCityRepo(db)
	categories := repo.NewCategoryRepo(db)
	filters := repo.NewFilterRepo(db)
	listings := repo.NewListingRepo(db)

	images := service.NewImagePipeline(store, log)

	r := router.NewAPIEngine(router.Deps{
		Log:         log,
		JWTer:       jwter,
		Auth:        service.NewAuthService(users, jwter),
		Taxonomy:    service.NewTaxonomyService(regions, cities),
		Category:    service.NewCategoryService(categories, rcache),
		Filter:      service.NewFilterService(filters, categories, rcache),
		Listing:     service.NewListingService(listings, categories, filters, images, log),
		Images:      images,
		CORSOrigins: cfg.App.HTTP.CORSOrigins,
	})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	go func() {
		log.Info("api starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("api start failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("api stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	if cfg.Log.Rotate.Enable {
		return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{
			Enable:     true,
			Filename:   cfg.Log.Rotate.Filename,
			MaxSizeMB:  cfg.Log.Rotate.MaxSizeMB,
			MaxBackups: cfg.Log.Rotate.MaxBackups,
			MaxAgeDays: cfg.Log.Rotate.MaxAgeDays,
			Compress:   cfg.Log.Rotate.Compress,
		})
	}
	return logger.New(cfg.Log.Level, cfg.Log.JSON)
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
