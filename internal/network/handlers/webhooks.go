package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/denmor86/cloudpay-bot/internal/logger"
	"github.com/denmor86/cloudpay-bot/internal/models"
	"github.com/denmor86/cloudpay-bot/internal/services"
	"github.com/denmor86/cloudpay-bot/internal/storage"
	"go.uber.org/zap"
)

// Коды подтверждения вебхука по контракту CloudPayments
const (
	webhookAccepted = 0
	webhookRefused  = 13
)

type webhookResponse struct {
	Code int `json:"code"`
}

// PayWebhookHandler - вебхук успешной оплаты. Исход платежа определяет сам
// маршрут, а не поле в теле запроса.
func PayWebhookHandler(engine services.PaymentEngine) http.HandlerFunc {
	return webhookHandler(engine, models.StatusOk)
}

// FailWebhookHandler - вебхук неуспешной оплаты
func FailWebhookHandler(engine services.PaymentEngine) http.HandlerFunc {
	return webhookHandler(engine, models.StatusError)
}

func webhookHandler(engine services.PaymentEngine, asserted models.StatusCode) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			logger.Warn("Invalid webhook body:", zap.Error(err))
			http.Error(w, "Invalid body format", http.StatusBadRequest)
			return
		}

		order, err := engine.ApplyWebhook(r.Context(), r.PostForm, asserted)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrInvalidPayload):
				logger.Warn("Invalid webhook payload:", zap.Error(err))
				http.Error(w, "Invalid payload", http.StatusBadRequest)
			case errors.Is(err, storage.ErrOrderNotFound):
				// неизвестный счет не роняет эндпоинт, процессору отвечаем отказом
				logger.Warn("Webhook for unknown order:", zap.Error(err))
				writeCode(w, webhookRefused)
			default:
				logger.Error("Failed to apply webhook:", zap.Error(err))
				http.Error(w, "Server Error", http.StatusInternalServerError)
			}
			return
		}

		logger.Info("webhook applied", "number", order.Number, "status", order.StatusCode)
		writeCode(w, webhookAccepted)
	})
}

func writeCode(w http.ResponseWriter, code int) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(webhookResponse{Code: code}); err != nil {
		logger.Error("Failed to encode JSON response:", zap.Error(err))
	}
}
