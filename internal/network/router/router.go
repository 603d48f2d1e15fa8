package router

import (
	"github.com/denmor86/cloudpay-bot/internal/config"
	"github.com/denmor86/cloudpay-bot/internal/network/handlers"
	"github.com/denmor86/cloudpay-bot/internal/network/middleware"
	"github.com/denmor86/cloudpay-bot/internal/services"
	"github.com/go-chi/chi/v5"
)

type Router struct {
	Config config.Config
	Engine services.PaymentEngine
}

func NewRouter(config config.Config, engine services.PaymentEngine) *Router {
	return &Router{
		Config: config,
		Engine: engine,
	}
}

// HandleRouter - два маршрута вебхуков CloudPayments, различаются только путем:
// /pay подтверждает оплату, /fail фиксирует отказ
func (router *Router) HandleRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.LogHandle)
	r.Group(func(r chi.Router) {
		r.Use(middleware.VerifyHMAC(router.Config.Processor.APISecret))
		r.Post("/pay", handlers.PayWebhookHandler(router.Engine))
		r.Post("/fail", handlers.FailWebhookHandler(router.Engine))
	})
	return r
}
