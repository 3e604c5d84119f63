package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fiesta-storefront/internal/config"
	"fiesta-storefront/internal/db"
	"fiesta-storefront/internal/httpserver"
	bundlerepo "fiesta-storefront/internal/repository/bundle"
	categoryrepo "fiesta-storefront/internal/repository/category"
	productrepo "fiesta-storefront/internal/repository/product"
	settingsrepo "fiesta-storefront/internal/repository/settings"
	userrepo "fiesta-storefront/internal/repository/user"
	bundlesvc "fiesta-storefront/internal/service/bundle"
	categorysvc "fiesta-storefront/internal/service/category"
	productsvc "fiesta-storefront/internal/service/product"
	settingssvc "fiesta-storefront/internal/service/settings"
	usersvc "fiesta-storefront/internal/service/user"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	categoryRepo := categoryrepo.NewPostgres(dbpool, logger)
	bundleRepo := bundlerepo.NewPostgres(dbpool, logger)
	userRepo := userrepo.NewPostgres(dbpool, logger)
	settingsRepo := settingsrepo.NewPostgres(dbpool, logger)

	srv, err := httpserver.New(cfg, logger, dbpool, httpserver.Deps{
		ProductSvc:  productsvc.New(productRepo, settingsRepo),
		CategorySvc: categorysvc.New(categoryRepo),
		BundleSvc:   bundlesvc.New(bundleRepo),
		SettingsSvc: settingssvc.New(settingsRepo),
		UserSvc:     usersvc.New(userRepo, cfg.JWTSecret, cfg.AccessTokenTTL),
		UploadDir:   cfg.UploadDir,
		FileURLHost: cfg.FileURLHost,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
