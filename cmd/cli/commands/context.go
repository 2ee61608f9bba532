package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/meitohealth/duty-roster/internal/config"
	"github.com/meitohealth/duty-roster/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database *postgres.DB
	Logger   *zap.Logger
	Ctx      context.Context
}
