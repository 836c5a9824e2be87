package order

import (
	"database/sql"

	menurepo "brigade/internal/menu/repository"
	"brigade/internal/notify"
	"brigade/internal/order/controller"
	orderrepo "brigade/internal/order/repository"
	"brigade/internal/order/service"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, notifier notify.Notifier, logger *zap.Logger) *controller.OrderController {
	orders := orderrepo.NewMySQLOrderRepository(db)
	menu := menurepo.NewMySQLMenuRepository(db)

	svc := service.NewLifecycleService(orders, menu, notifier, logger)

	return controller.NewOrderController(svc, logger)
}

// NewModuleWithRepositories wires the module on explicit repositories,
// used for the memory backend and in tests.
func NewModuleWithRepositories(
	orders service.OrderRepository,
	menu service.MenuItemRepository,
	notifier notify.Notifier,
	logger *zap.Logger,
) *controller.OrderController {
	svc := service.NewLifecycleService(orders, menu, notifier, logger)
	return controller.NewOrderController(svc, logger)
}
