package menu

import (
	"database/sql"

	"brigade/internal/menu/repository"
	"brigade/internal/menu/service"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLMenuRepository(db)
	svc := service.NewService(repo)
	return NewController(svc, logger)
}

// NewModuleWithRepository wires the module on an explicit repository,
// used for the memory backend and in tests.
func NewModuleWithRepository(repo Repository, logger *zap.Logger) *Controller {
	svc := service.NewService(repo)
	return NewController(svc, logger)
}
