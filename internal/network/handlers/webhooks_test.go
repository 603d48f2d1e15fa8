package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/denmor86/cloudpay-bot/internal/config"
	"github.com/denmor86/cloudpay-bot/internal/logger"
	"github.com/denmor86/cloudpay-bot/internal/models"
	"github.com/denmor86/cloudpay-bot/internal/services/mocks"
	"github.com/denmor86/cloudpay-bot/internal/storage"
	"go.uber.org/mock/gomock"
)

func TestWebhookHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockEngine := mocks.NewMockPaymentEngine(ctrl)

	cfg := config.DefaultConfig()
	if err := logger.Initialize(cfg.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	form := url.Values{
		"TransactionId": {"891463508"},
		"InvoiceId":     {"260"},
		"Amount":        {"19.99"},
		"Currency":      {"USD"},
	}

	testCases := []struct {
		TestName       string
		Handler        http.HandlerFunc
		Body           string
		SetupMocks     func()
		ExpectedStatus int
		ExpectedBody   string
	}{
		{
			TestName: "Success. Pay webhook accepted #1",
			Handler:  PayWebhookHandler(mockEngine),
			Body:     form.Encode(),
			SetupMocks: func() {
				mockEngine.EXPECT().ApplyWebhook(gomock.Any(), form, models.StatusOk).
					Return(&models.Order{Number: "260", StatusCode: models.StatusOk}, nil)
			},
			ExpectedStatus: http.StatusOK,
			ExpectedBody:   `{"code":0}`,
		},
		{
			TestName: "Success. Fail webhook asserts Error #2",
			Handler:  FailWebhookHandler(mockEngine),
			Body:     form.Encode(),
			SetupMocks: func() {
				mockEngine.EXPECT().ApplyWebhook(gomock.Any(), form, models.StatusError).
					Return(&models.Order{Number: "260", StatusCode: models.StatusCancelled}, nil)
			},
			ExpectedStatus: http.StatusOK,
			ExpectedBody:   `{"code":0}`,
		},
		{
			TestName: "Error. Invalid payload #3",
			Handler:  PayWebhookHandler(mockEngine),
			Body:     "TransactionId=891463508",
			SetupMocks: func() {
				mockEngine.EXPECT().ApplyWebhook(gomock.Any(), gomock.Any(), models.StatusOk).
					Return(nil, fmt.Errorf("missing field InvoiceId: %w", models.ErrInvalidPayload))
			},
			ExpectedStatus: http.StatusBadRequest,
		},
		{
			// неизвестный счет не роняет эндпоинт
			TestName: "Error. Unknown order refused #4",
			Handler:  PayWebhookHandler(mockEngine),
			Body:     form.Encode(),
			SetupMocks: func() {
				mockEngine.EXPECT().ApplyWebhook(gomock.Any(), form, models.StatusOk).
					Return(nil, fmt.Errorf("webhook for invoice 260: %w", storage.ErrOrderNotFound))
			},
			ExpectedStatus: http.StatusOK,
			ExpectedBody:   `{"code":13}`,
		},
		{
			TestName: "Error. Engine failure #5",
			Handler:  FailWebhookHandler(mockEngine),
			Body:     form.Encode(),
			SetupMocks: func() {
				mockEngine.EXPECT().ApplyWebhook(gomock.Any(), form, models.StatusError).
					Return(nil, errors.New("database down"))
			},
			ExpectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			tc.SetupMocks()

			request := httptest.NewRequest(http.MethodPost, "/pay", strings.NewReader(tc.Body))
			request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			recorder := httptest.NewRecorder()

			tc.Handler.ServeHTTP(recorder, request)

			if recorder.Code != tc.ExpectedStatus {
				t.Errorf("Expected status %d, got %d", tc.ExpectedStatus, recorder.Code)
			}
			if tc.ExpectedBody != "" && strings.TrimSpace(recorder.Body.String()) != tc.ExpectedBody {
				t.Errorf("Expected body %q, got %q", tc.ExpectedBody, recorder.Body.String())
			}
		})
	}
}
