package worker

import (
	"context"
	"sync"
	"time"

	"github.com/denmor86/cloudpay-bot/internal/logger"
	"github.com/denmor86/cloudpay-bot/internal/services"
	"github.com/denmor86/cloudpay-bot/internal/storage"
	"github.com/sony/gobreaker"
)

func InitCircuitBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "cloudpayments",
		Timeout: 30 * time.Second, // через 30 сек пробуем подключиться
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("Circuit Breaker", "name", name, "from", from.String(), "to", to.String())
		},
	})
}

// RecoveryWorker - подхватывает нетерминальные заказы, оставшиеся после
// рестарта или потерянного трекинга, и дотягивает их до терминального статуса
type RecoveryWorker struct {
	Engine       services.PaymentEngine
	Orders       storage.OrdersStorage
	Breaker      *gobreaker.CircuitBreaker
	WaitGroup    sync.WaitGroup
	QuitChan     chan struct{}
	BatchSize    int
	PollInterval time.Duration
}

// NewRecoveryWorker - конструктор воркера восстановления трекинга
func NewRecoveryWorker(engine services.PaymentEngine, orders storage.OrdersStorage) *RecoveryWorker {
	return &RecoveryWorker{
		Engine:       engine,
		Orders:       orders,
		Breaker:      InitCircuitBreaker(),
		QuitChan:     make(chan struct{}),
		BatchSize:    10,
		PollInterval: time.Minute,
	}
}

// Start - запускает воркер в фоне
func (w *RecoveryWorker) Start(ctx context.Context) {
	w.WaitGroup.Add(1)
	go w.Run(ctx)
}

// Stop - корректно останавливает воркер, дожидаясь живых трекингов
func (w *RecoveryWorker) Stop() {
	close(w.QuitChan)
	w.WaitGroup.Wait()
}

func (w *RecoveryWorker) Run(ctx context.Context) {
	defer w.WaitGroup.Done()

	// первый проход сразу после старта - восстановление после рестарта
	w.ResumeOrders(ctx)

	ticker := time.NewTicker(w.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.QuitChan:
			logger.Info("RecoveryWorker signal stop")
			return
		case <-ticker.C:
			w.ResumeOrders(ctx)
		}
	}
}

// ResumeOrders - забирает пачку подвисших заказов и возобновляет их трекинг
func (w *RecoveryWorker) ResumeOrders(ctx context.Context) {
	if w.Breaker.State() == gobreaker.StateOpen {
		logger.Warn("CloudPayments unavailable. Waiting...")
		return
	}

	orders, err := w.Orders.ClaimPendingOrders(ctx, w.BatchSize)
	if err != nil {
		logger.Error("error claim pending orders", err)
		return
	}

	for _, order := range orders {
		order := order
		w.WaitGroup.Add(1)
		go func() {
			defer w.WaitGroup.Done()
			_, err := w.Breaker.Execute(func() (interface{}, error) {
				_, err := w.Engine.Track(ctx, &order)
				return nil, err
			})
			if err != nil {
				logger.Error("Error order tracking", "number", order.Number, err)
			}
		}()
	}
}
