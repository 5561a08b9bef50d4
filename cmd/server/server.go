package server

import (
	"fmt"
	"log/slog"
	"time"

	"campus-connect/config"
	"campus-connect/internal/global/cache"
	"campus-connect/internal/global/database"
	"campus-connect/internal/global/gemini"
	"campus-connect/internal/global/httpclient"
	"campus-connect/internal/global/imagebed"
	"campus-connect/internal/global/logger"
	"campus-connect/internal/global/middleware"
	internalOtel "campus-connect/internal/global/otel"
	"campus-connect/internal/global/sentry"
	"campus-connect/internal/module"
	"campus-connect/tools"

	"github.com/gin-gonic/gin"
)

var log *slog.Logger

func Init() {
	config.Init()
	log = logger.New("Server")

	if err := sentry.Init(); err != nil {
		log.Error("sentry init failed", "error", err)
	}

	database.Init()
	httpclient.Init()
	gemini.Init()
	cache.Init()
	imagebed.Init()

	if config.Get().OTel.Enable {
		log.Info("OTel enabled")
		internalOtel.Init()
	}

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init()
	}
}

func Run() {
	defer sentry.Flush(2 * time.Second)

	gin.SetMode(string(config.Get().Mode))
	r := gin.New()

	switch config.Get().Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	case config.ModeDebug:
		r.Use(gin.Logger())
	}
	r.Use(sentry.Middleware())
	r.Use(middleware.SentryEnrichIP())
	r.Use(middleware.Cors())
	r.Use(middleware.Recovery())

	if config.Get().OTel.Enable {
		r.Use(middleware.Trace())
	}

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		m.InitRouter(r.Group("/" + config.Get().Prefix))
	}
	err := r.Run(config.Get().Host + ":" + config.Get().Port)
	tools.PanicOnErr(err)
}
