package models

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// StatusCode - код состояния платежа. Отрицательные коды назначает сам сервис,
// неотрицательные приходят от CloudPayments.
type StatusCode int

const (
	// StatusCancelled - платеж отменен с нашей стороны
	StatusCancelled StatusCode = -1
	// StatusAttemptsExhausted - потрачены все попытки опроса платежа (delay * max_attempts)
	StatusAttemptsExhausted StatusCode = -2
	// StatusNone - статус еще не присвоен (заказ только создан)
	StatusNone StatusCode = 0
	// StatusWait - в платеж перешли и ввели карту, но не подтвердили
	StatusWait StatusCode = 1
	// StatusOk - платеж прошел успешно
	StatusOk StatusCode = 2
	// StatusError - платеж явно отклонен CloudPayments
	StatusError StatusCode = 5
)

// Имена статусов транзакции на стороне CloudPayments
const (
	StatusNameAwaitingAuthentication = "AwaitingAuthentication"
	StatusNameAuthorized             = "Authorized"
	StatusNameDeclined               = "Declined"
)

// Terminal - после терминального статуса переходы запрещены
func (c StatusCode) Terminal() bool {
	switch c {
	case StatusCancelled, StatusAttemptsExhausted, StatusOk, StatusError:
		return true
	}
	return false
}

func (c StatusCode) String() string {
	switch c {
	case StatusCancelled:
		return "Cancelled"
	case StatusAttemptsExhausted:
		return "AttemptsExhausted"
	case StatusNone:
		return "None"
	case StatusWait:
		return "Wait"
	case StatusOk:
		return "Ok"
	case StatusError:
		return "Error"
	}
	return fmt.Sprintf("StatusCode(%d)", int(c))
}

// Order - модель заказа. Number назначается CloudPayments при создании и
// больше не меняется, по нему заказ связывается с транзакциями и вебхуками.
// StatusCode меняется только через движок сверки.
type Order struct {
	ID          string          `json:"id"`
	Number      string          `json:"number"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Owner       string          `json:"owner"`
	Description string          `json:"description"`
	PaymentURL  string          `json:"payment_url"`
	ReceiptURL  string          `json:"receipt_url,omitempty"`
	StatusCode  StatusCode      `json:"status_code"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Transaction - снимок состояния платежа на стороне CloudPayments.
// Не хранится, используется сразу для обновления заказа.
type Transaction struct {
	TransactionID int64
	InvoiceID     string
	Amount        decimal.Decimal
	Currency      string
	Description   string
	StatusCode    StatusCode
	Status        string
}

// ErrInvalidPayload - тело вебхука не удалось разобрать
var ErrInvalidPayload = errors.New("invalid webhook payload")

// TransactionFromForm - разбирает form-urlencoded тело вебхука CloudPayments.
// Статус-код в теле не приходит, его подставляет обработчик маршрута.
func TransactionFromForm(form url.Values) (*Transaction, error) {
	for _, field := range []string{"TransactionId", "InvoiceId", "Amount", "Currency"} {
		if form.Get(field) == "" {
			return nil, fmt.Errorf("missing field %s: %w", field, ErrInvalidPayload)
		}
	}

	transactionID, err := strconv.ParseInt(form.Get("TransactionId"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad TransactionId %q: %w", form.Get("TransactionId"), ErrInvalidPayload)
	}
	amount, err := decimal.NewFromString(form.Get("Amount"))
	if err != nil {
		return nil, fmt.Errorf("bad Amount %q: %w", form.Get("Amount"), ErrInvalidPayload)
	}

	return &Transaction{
		TransactionID: transactionID,
		InvoiceID:     form.Get("InvoiceId"),
		Amount:        amount,
		Currency:      form.Get("Currency"),
		Description:   form.Get("Description"),
		Status:        form.Get("Status"),
	}, nil
}
