package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/denmor86/cloudpay-bot/internal/client/mocks"
	"github.com/denmor86/cloudpay-bot/internal/config"
	"github.com/denmor86/cloudpay-bot/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func newTestClient(httpClient HTTPClient) *Client {
	c := NewClient(config.ProcessorConfig{
		Addr:      "https://api.cloudpayments.ru/",
		PublicID:  "pk_test",
		APISecret: "secret",
	}, httpClient)
	c.retryWait = time.Millisecond
	return c
}

func jsonResponse(body string) *http.Response {
	return &http.Response{
		Status:        "200 OK",
		StatusCode:    http.StatusOK,
		Body:          io.NopCloser(bytes.NewBufferString(body)),
		ContentLength: int64(len(body)),
		Header:        make(http.Header),
	}
}

func TestClient_CreateOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)

	payments := newTestClient(mockHTTPClient)

	testCases := []struct {
		TestName      string
		SetupMocks    func()
		ExpectedOrder *models.Order
		ExpectedError error
	}{
		{
			TestName: "Success. Order created #1",
			SetupMocks: func() {
				mockHTTPClient.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
					user, pass, ok := req.BasicAuth()
					if !ok || user != "pk_test" || pass != "secret" {
						t.Errorf("Expected basic auth credentials, got %q:%q", user, pass)
					}
					if req.Header.Get("X-Request-ID") == "" {
						t.Errorf("Expected X-Request-ID header")
					}
					body, _ := io.ReadAll(req.Body)
					// сумма должна уйти точным десятичным литералом, не float
					if !strings.Contains(string(body), `"Amount":19.99`) {
						t.Errorf("Expected exact decimal amount in request, got %s", body)
					}
					return jsonResponse(`{"Success":true,"Model":{"Id":"INeD0eJb13zMnWKC","Number":260,` +
						`"Amount":19.99,"Currency":"USD","Description":"542570177","RequireConfirmation":true,` +
						`"Url":"https://orders.cloudpayments.ru/d/INeD0eJb13zMnWKC","StatusCode":0,` +
						`"CreatedDateIso":"2025-01-15T10:30:00"}}`), nil
				})
			},
			ExpectedOrder: &models.Order{
				ID:          "INeD0eJb13zMnWKC",
				Number:      "260",
				Amount:      decimal.RequireFromString("19.99"),
				Currency:    "USD",
				Description: "542570177",
				PaymentURL:  "https://orders.cloudpayments.ru/d/INeD0eJb13zMnWKC",
				StatusCode:  models.StatusNone,
				CreatedAt:   time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
			},
		},
		{
			TestName: "Error. Remote rejected #2",
			SetupMocks: func() {
				mockHTTPClient.EXPECT().Do(gomock.Any()).Return(
					jsonResponse(`{"Success":false,"Message":"Amount is required"}`), nil)
			},
			ExpectedError: ErrRemoteRejected,
		},
		{
			TestName: "Error. Bad status code #3",
			SetupMocks: func() {
				mockHTTPClient.EXPECT().Do(gomock.Any()).Return(&http.Response{
					Status:     "404",
					StatusCode: http.StatusNotFound,
					Body:       io.NopCloser(bytes.NewBufferString("")),
					Header:     make(http.Header),
				}, nil)
			},
			ExpectedError: ErrRemoteUnavailable,
		},
		{
			TestName: "Error. Network failure is retried #4",
			SetupMocks: func() {
				mockHTTPClient.EXPECT().Do(gomock.Any()).Return(nil, errors.New("connection reset")).Times(3)
			},
			ExpectedError: ErrRemoteUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			tc.SetupMocks()

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			order, err := payments.CreateOrder(ctx, decimal.RequireFromString("19.99"), "USD", "542570177")

			if tc.ExpectedError != nil {
				if !errors.Is(err, tc.ExpectedError) {
					t.Fatalf("Expected error '%v', got '%v'", tc.ExpectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got '%v'", err)
			}
			if diff := cmp.Diff(tc.ExpectedOrder, order); diff != "" {
				t.Errorf("Order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClient_FindPayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)

	payments := newTestClient(mockHTTPClient)

	testCases := []struct {
		TestName            string
		SetupMocks          func()
		ExpectedTransaction *models.Transaction
		ExpectedError       error
	}{
		{
			TestName: "Success. Transaction exists #1",
			SetupMocks: func() {
				mockHTTPClient.EXPECT().Do(gomock.Any()).Return(
					jsonResponse(`{"Success":true,"Model":{"TransactionId":891463508,"InvoiceId":260,`+
						`"Amount":19.99,"Currency":"USD","Description":"542570177","StatusCode":2,"Status":"Authorized"}}`), nil)
			},
			ExpectedTransaction: &models.Transaction{
				TransactionID: 891463508,
				InvoiceID:     "260",
				Amount:        decimal.RequireFromString("19.99"),
				Currency:      "USD",
				Description:   "542570177",
				StatusCode:    models.StatusOk,
				Status:        models.StatusNameAuthorized,
			},
		},
		{
			// плательщик еще не открывал ссылку - это не ошибка
			TestName: "Success. No transaction yet #2",
			SetupMocks: func() {
				mockHTTPClient.EXPECT().Do(gomock.Any()).Return(
					jsonResponse(`{"Success":false,"Message":"Not found"}`), nil)
			},
			ExpectedTransaction: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			tc.SetupMocks()

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			txn, err := payments.FindPayment(ctx, "260")

			if tc.ExpectedError != nil {
				if !errors.Is(err, tc.ExpectedError) {
					t.Fatalf("Expected error '%v', got '%v'", tc.ExpectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got '%v'", err)
			}
			if diff := cmp.Diff(tc.ExpectedTransaction, txn); diff != "" {
				t.Errorf("Transaction mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClient_CancelOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)

	payments := newTestClient(mockHTTPClient)

	mockHTTPClient.EXPECT().Do(gomock.Any()).Return(jsonResponse(`{"Success":true}`), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := payments.CancelOrder(ctx, "INeD0eJb13zMnWKC"); err != nil {
		t.Fatalf("Expected no error, got '%v'", err)
	}
}

func TestClient_CreateReceipt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)

	payments := newTestClient(mockHTTPClient)

	mockHTTPClient.EXPECT().Do(gomock.Any()).Return(
		jsonResponse(`{"Success":true,"Model":{"Id":"Wp2XzDkZbVmMqA"}}`), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	receipt := models.Receipt{
		Items: []models.ReceiptItem{
			{
				Label:    "542570177",
				Price:    decimal.RequireFromString("19.99"),
				Quantity: decimal.NewFromInt(1),
				Amount:   decimal.RequireFromString("19.99"),
				Object:   10,
			},
		},
		TaxationSystem: 1,
	}

	receiptURL, err := payments.CreateReceipt(ctx, "7708806063", receipt)
	if err != nil {
		t.Fatalf("Expected no error, got '%v'", err)
	}
	// ссылка на чек - фиксированная база плюс Model.Id
	expected := "https://receipts.cloudpayments.ru/Wp2XzDkZbVmMqA"
	if receiptURL != expected {
		t.Errorf("Expected receipt url '%s', got '%s'", expected, receiptURL)
	}
}
