package chat

import (
	"log/slog"

	"campus-connect/internal/global/logger"
)

var log *slog.Logger

type ModuleChat struct{}

func (m *ModuleChat) GetName() string {
	return "Chat"
}

func (m *ModuleChat) Init() {
	log = logger.New("Chat")
}
