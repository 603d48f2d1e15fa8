package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/denmor86/cloudpay-bot/internal/bot"
	"github.com/denmor86/cloudpay-bot/internal/client"
	"github.com/denmor86/cloudpay-bot/internal/config"
	"github.com/denmor86/cloudpay-bot/internal/logger"
	"github.com/denmor86/cloudpay-bot/internal/network/router"
	"github.com/denmor86/cloudpay-bot/internal/notifier"
	"github.com/denmor86/cloudpay-bot/internal/services"
	"github.com/denmor86/cloudpay-bot/internal/storage"
	"github.com/denmor86/cloudpay-bot/internal/worker"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func Run(config config.Config) {

	database, err := storage.NewDatabase(config.Server.DatabaseDSN)
	if err != nil {
		logger.Panic("can't create database:", err.Error())
	}
	if err := database.Initialize(); err != nil {
		logger.Panic("can't initialize database:", err.Error())
	}
	defer database.Close()

	api, err := tgbotapi.NewBotAPI(config.Telegram)
	if err != nil {
		logger.Panic("can't create telegram bot:", err.Error())
	}

	payments := client.NewClient(config.Processor, &http.Client{})
	orders := storage.NewOrdersStorage(database)
	engine := services.NewReconciler(payments, orders, notifier.NewTelegram(api), config.Reconcile, config.Receipt)

	router := router.NewRouter(config, engine)
	server := &http.Server{
		Addr:    config.Server.ListenAddr,
		Handler: router.HandleRouter(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// воркер дотягивает заказы, оставшиеся нетерминальными после рестарта
	recovery := worker.NewRecoveryWorker(engine, orders)
	recovery.Start(ctx)

	paymentBot := bot.New(api, engine)
	go paymentBot.Run(ctx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting webhook server", "addr", config.Server.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("error listen server", err.Error())
		}
	}()

	<-stop
	logger.Info("Shutdown server")
	cancel()
	recovery.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error shutdown server", err.Error())
	}
	logger.Info("Server stopped")
}
