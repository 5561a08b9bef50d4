package campus

import (
	"log/slog"

	"campus-connect/internal/global/logger"
)

var log *slog.Logger

type ModuleCampus struct{}

func (m *ModuleCampus) GetName() string {
	return "Campus"
}

func (m *ModuleCampus) Init() {
	log = logger.New("Campus")
}
