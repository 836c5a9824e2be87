package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brigade/internal/config"
	"brigade/internal/domain"
	"brigade/internal/infrastructure/logger"
	"brigade/internal/infrastructure/mysql"
	"brigade/internal/menu"
	menurepo "brigade/internal/menu/repository"
	"brigade/internal/notify"
	"brigade/internal/order"
	ordercontroller "brigade/internal/order/controller"
	orderrepo "brigade/internal/order/repository"
	"brigade/internal/server"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	notifier := notify.NewLogNotifier(zapLogger)

	var orderCtrl *ordercontroller.OrderController
	var menuCtrl *menu.Controller

	switch cfg.Store.Backend {
	case "memory":
		menuRepo := menurepo.NewMemoryMenuRepository(seedMenu()...)
		orderCtrl = order.NewModuleWithRepositories(orderrepo.NewMemoryOrderStore(), menuRepo, notifier, zapLogger)
		menuCtrl = menu.NewModuleWithRepository(menuRepo, zapLogger)
		zapLogger.Info("using in-memory store")
	default:
		db, err := mysql.NewConnection(cfg.Database)
		if err != nil {
			zapLogger.Fatal("connecting to database", zap.Error(err))
		}
		defer db.Close()
		zapLogger.Info("database connected")

		orderCtrl = order.NewModule(db, notifier, zapLogger)
		menuCtrl = menu.NewModule(db, zapLogger)
	}

	router := server.NewRouter(orderCtrl, menuCtrl, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

// seedMenu provides a small catalog for memory-backed runs.
func seedMenu() []domain.MenuItem {
	now := time.Now().UTC()
	items := []domain.MenuItem{
		{ID: "menu-1", Name: "Margherita Pizza", Category: "mains", Price: 12.50, PrepTimeMinutes: 15, Available: true},
		{ID: "menu-2", Name: "Caesar Salad", Category: "starters", Price: 8.00, PrepTimeMinutes: 5, Available: true},
		{ID: "menu-3", Name: "Spaghetti Carbonara", Category: "mains", Price: 14.00, PrepTimeMinutes: 18, Available: true},
		{ID: "menu-4", Name: "Tiramisu", Category: "desserts", Price: 6.50, PrepTimeMinutes: 3, Available: true},
		{ID: "menu-5", Name: "Ribeye Steak", Category: "mains", Price: 24.99, PrepTimeMinutes: 25, Available: true},
	}
	for i := range items {
		items[i].CreatedAt = now
		items[i].UpdatedAt = now
	}
	return items
}
