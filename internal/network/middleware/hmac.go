package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"

	"github.com/denmor86/cloudpay-bot/internal/logger"
)

const hmacHeader = "Content-HMAC"

// VerifyHMAC - проверка подписи вебхука CloudPayments: HMAC-SHA256 от сырого
// тела запроса с API-секретом, base64 в заголовке Content-HMAC.
// При пустом секрете проверка выключена (локальная разработка).
func VerifyHMAC(secret string) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		if secret == "" {
			return h
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, "Invalid body", http.StatusBadRequest)
				return
			}
			if err := r.Body.Close(); err != nil {
				logger.Error("Error to close body:", err)
			}

			mac := hmac.New(sha256.New, []byte(secret))
			mac.Write(body)
			expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

			if !hmac.Equal([]byte(expected), []byte(r.Header.Get(hmacHeader))) {
				logger.Warn("webhook signature mismatch", "uri", r.RequestURI)
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			// тело уже вычитано, возвращаем его обработчику
			r.Body = io.NopCloser(bytes.NewReader(body))
			h.ServeHTTP(w, r)
		})
	}
}
