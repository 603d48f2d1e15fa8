package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/denmor86/cloudpay-bot/internal/models"
	"github.com/shopspring/decimal"
)

func init() {
	// CloudPayments ждет денежные поля числами, а не строками
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	endpointCreateOrder   = "orders/create"
	endpointFindPayment   = "payments/find"
	endpointCancelOrder   = "orders/cancel"
	endpointCreateReceipt = "kkt/receipt"

	// Ссылка на чек складывается из фиксированной базы и Model.Id ответа
	receiptBaseURL = "https://receipts.cloudpayments.ru/"
)

// Формат CreatedDateIso в ответах CloudPayments (без зоны)
const createdDateLayout = "2006-01-02T15:04:05"

type orderModel struct {
	ID                  string          `json:"Id"`
	Number              json.Number     `json:"Number"`
	Amount              decimal.Decimal `json:"Amount"`
	Currency            string          `json:"Currency"`
	Email               string          `json:"Email"`
	Description         string          `json:"Description"`
	RequireConfirmation bool            `json:"RequireConfirmation"`
	URL                 string          `json:"Url"`
	StatusCode          int             `json:"StatusCode"`
	CreatedDateIso      string          `json:"CreatedDateIso"`
}

type transactionModel struct {
	TransactionID int64           `json:"TransactionId"`
	InvoiceID     json.Number     `json:"InvoiceId"`
	Amount        decimal.Decimal `json:"Amount"`
	Currency      string          `json:"Currency"`
	Description   string          `json:"Description"`
	StatusCode    int             `json:"StatusCode"`
	Status        string          `json:"Status"`
}

type createOrderRequest struct {
	Amount              decimal.Decimal `json:"Amount"`
	Currency            string          `json:"Currency"`
	Description         string          `json:"Description"`
	RequireConfirmation string          `json:"RequireConfirmation"`
}

type createOrderResponse struct {
	Success bool       `json:"Success"`
	Message string     `json:"Message"`
	Model   orderModel `json:"Model"`
}

type findPaymentRequest struct {
	InvoiceID string `json:"InvoiceId"`
}

type findPaymentResponse struct {
	Success bool              `json:"Success"`
	Message string            `json:"Message"`
	Model   *transactionModel `json:"Model"`
}

type cancelOrderRequest struct {
	ID string `json:"Id"`
}

type cancelOrderResponse struct {
	Success bool   `json:"Success"`
	Message string `json:"Message"`
}

type receiptItemModel struct {
	Label           string          `json:"label"`
	Price           decimal.Decimal `json:"price"`
	Quantity        decimal.Decimal `json:"quantity"`
	Amount          decimal.Decimal `json:"amount"`
	Vat             int             `json:"vat"`
	Method          int             `json:"method"`
	Object          int             `json:"object"`
	MeasurementUnit string          `json:"measurementUnit,omitempty"`
}

type customerReceiptModel struct {
	Items          []receiptItemModel `json:"items"`
	TaxationSystem int                `json:"taxationSystem"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
}

type createReceiptRequest struct {
	Inn             string               `json:"Inn"`
	Type            string               `json:"Type"`
	CustomerReceipt customerReceiptModel `json:"CustomerReceipt"`
}

type createReceiptResponse struct {
	Success bool   `json:"Success"`
	Message string `json:"Message"`
	Model   struct {
		ID string `json:"Id"`
	} `json:"Model"`
}

// CreateOrder - создает платежную ссылку в CloudPayments.
// Поле Description несет ссылку на владельца заказа: собственного поля для
// метаданных в контракте orders/create нет, это известная слабость корреляции.
func (c *Client) CreateOrder(ctx context.Context, amount decimal.Decimal, currency string, description string) (*models.Order, error) {
	request := createOrderRequest{
		Amount:              amount,
		Currency:            currency,
		Description:         description,
		RequireConfirmation: "true",
	}
	var response createOrderResponse
	if err := c.send(ctx, endpointCreateOrder, request, &response); err != nil {
		return nil, err
	}
	if !response.Success {
		return nil, fmt.Errorf("%w: %s", ErrRemoteRejected, response.Message)
	}

	createdAt, err := time.Parse(createdDateLayout, response.Model.CreatedDateIso)
	if err != nil {
		createdAt, _ = time.Parse(time.RFC3339, response.Model.CreatedDateIso)
	}

	return &models.Order{
		ID:          response.Model.ID,
		Number:      response.Model.Number.String(),
		Amount:      response.Model.Amount,
		Currency:    response.Model.Currency,
		Description: response.Model.Description,
		PaymentURL:  response.Model.URL,
		StatusCode:  models.StatusCode(response.Model.StatusCode),
		CreatedAt:   createdAt,
	}, nil
}

// FindPayment - разовая проверка платежа по номеру заказа.
// Отсутствие Model в ответе - не ошибка: плательщик еще не открывал ссылку.
func (c *Client) FindPayment(ctx context.Context, number string) (*models.Transaction, error) {
	var response findPaymentResponse
	if err := c.send(ctx, endpointFindPayment, findPaymentRequest{InvoiceID: number}, &response); err != nil {
		return nil, err
	}
	if response.Model == nil {
		return nil, nil
	}

	return &models.Transaction{
		TransactionID: response.Model.TransactionID,
		InvoiceID:     response.Model.InvoiceID.String(),
		Amount:        response.Model.Amount,
		Currency:      response.Model.Currency,
		Description:   response.Model.Description,
		StatusCode:    models.StatusCode(response.Model.StatusCode),
		Status:        response.Model.Status,
	}, nil
}

// CancelOrder - отменяет заказ в CloudPayments. Ответ статус-кода не несет,
// локальный статус Cancelled выставляет вызывающий.
func (c *Client) CancelOrder(ctx context.Context, id string) error {
	var response cancelOrderResponse
	if err := c.send(ctx, endpointCancelOrder, cancelOrderRequest{ID: id}, &response); err != nil {
		return err
	}
	if !response.Success {
		return fmt.Errorf("%w: %s", ErrRemoteRejected, response.Message)
	}
	return nil
}

// CreateReceipt - формирует чек и возвращает ссылку на него
func (c *Client) CreateReceipt(ctx context.Context, taxID string, receipt models.Receipt) (string, error) {
	items := make([]receiptItemModel, 0, len(receipt.Items))
	for _, item := range receipt.Items {
		items = append(items, receiptItemModel{
			Label:           item.Label,
			Price:           item.Price,
			Quantity:        item.Quantity,
			Amount:          item.Amount,
			Vat:             item.Vat,
			Method:          item.Method,
			Object:          item.Object,
			MeasurementUnit: item.MeasurementUnit,
		})
	}
	request := createReceiptRequest{
		Inn:  taxID,
		Type: "Income",
		CustomerReceipt: customerReceiptModel{
			Items:          items,
			TaxationSystem: receipt.TaxationSystem,
			Email:          receipt.Email,
			Phone:          receipt.Phone,
		},
	}
	var response createReceiptResponse
	if err := c.send(ctx, endpointCreateReceipt, request, &response); err != nil {
		return "", err
	}
	if !response.Success {
		return "", fmt.Errorf("%w: %s", ErrRemoteRejected, response.Message)
	}
	return receiptBaseURL + response.Model.ID, nil
}
