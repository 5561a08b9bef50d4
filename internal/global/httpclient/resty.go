package httpclient

import (
	"time"

	"campus-connect/internal/global/sentry/tracing"

	"github.com/go-resty/resty/v2"
)

var Client *resty.Client

func Init() {
	Client = resty.New().SetTimeout(30 * time.Second)

	if tracing.IsEnabled() {
		tracing.SetupRestyTracing(Client)
	}
}
