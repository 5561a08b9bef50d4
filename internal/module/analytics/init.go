package analytics

import (
	"log/slog"

	"campus-connect/internal/global/logger"
)

var log *slog.Logger

type ModuleAnalytics struct{}

func (m *ModuleAnalytics) GetName() string {
	return "Analytics"
}

func (m *ModuleAnalytics) Init() {
	log = logger.New("Analytics")
}
