package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/denmor86/cloudpay-bot/internal/config"
	"github.com/denmor86/cloudpay-bot/internal/logger"
	"github.com/denmor86/cloudpay-bot/internal/models"
	"github.com/denmor86/cloudpay-bot/internal/storage"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Processor - операции платежного процессора, нужные движку сверки
type Processor interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency string, description string) (*models.Order, error)
	FindPayment(ctx context.Context, number string) (*models.Transaction, error)
	CancelOrder(ctx context.Context, id string) error
	CreateReceipt(ctx context.Context, taxID string, receipt models.Receipt) (string, error)
}

// Notifier - доставка сообщений владельцу заказа. Ошибки доставки
// логируются и на ход сверки не влияют.
type Notifier interface {
	Notify(ctx context.Context, recipient string, message string) error
}

// PaymentEngine - движок сверки статусов заказа
type PaymentEngine interface {
	CreateAndTrack(ctx context.Context, amount decimal.Decimal, currency string, owner string) (*models.Order, error)
	Track(ctx context.Context, order *models.Order) (*models.Order, error)
	CheckOnce(ctx context.Context, number string) (*models.Order, error)
	ApplyWebhook(ctx context.Context, form url.Values, asserted models.StatusCode) (*models.Order, error)
}

// Reconciler - сводит статус заказа из двух независимых каналов: опроса
// payments/find и вебхуков CloudPayments. Оба канала меняют статус только
// через applyStatus, гонки разруливаются по-заказной блокировкой.
type Reconciler struct {
	Processor Processor
	Storage   storage.OrdersStorage
	Notifier  Notifier
	Config    config.ReconcileConfig
	Receipts  config.ReceiptConfig

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Создание движка сверки
func NewReconciler(processor Processor, store storage.OrdersStorage, notifier Notifier,
	reconcile config.ReconcileConfig, receipts config.ReceiptConfig) *Reconciler {
	return &Reconciler{
		Processor: processor,
		Storage:   store,
		Notifier:  notifier,
		Config:    reconcile,
		Receipts:  receipts,
		locks:     make(map[string]*sync.Mutex),
	}
}

// lockFor - блокировка на один номер заказа, общей блокировки по всем заказам нет
func (s *Reconciler) lockFor(number string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[number]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[number] = lock
	}
	return lock
}

// CreateAndTrack - создает заказ в CloudPayments и сохраняет его в БД.
// Либо возвращает полностью заполненный заказ, либо ошибку - частично
// созданных заказов не бывает.
func (s *Reconciler) CreateAndTrack(ctx context.Context, amount decimal.Decimal, currency string, owner string) (*models.Order, error) {
	// Description на стороне CloudPayments несет ссылку на владельца
	order, err := s.Processor.CreateOrder(ctx, amount, currency, owner)
	if err != nil {
		return nil, err
	}
	order.Owner = owner

	if err := s.Storage.AddOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to persist order %s: %w", order.Number, err)
	}
	logger.Info("order created", "number", order.Number, "amount", order.Amount, "owner", owner)
	return order, nil
}

// Track - polling-проверка платежа: раз в Delay, не больше MaxAttempts раз.
// Проверка бюджета стоит до похода в сеть: при MaxAttempts == 1 цикл завершается
// сразу со статусом AttemptsExhausted, не сделав ни одного запроса.
func (s *Reconciler) Track(ctx context.Context, order *models.Order) (*models.Order, error) {
	for attempt := 0; ; attempt++ {
		select {
		case <-ctx.Done():
			// прерванный опрос оставляет последний примененный статус как есть
			return order, ctx.Err()
		default:
		}

		if attempt == s.Config.MaxAttempts-1 {
			applied, err := s.applyStatus(ctx, order, models.StatusAttemptsExhausted)
			if err != nil {
				return order, err
			}
			if applied {
				s.dispatch(ctx, order)
			}
			return order, nil
		}

		txn, err := s.Processor.FindPayment(ctx, order.Number)
		if err != nil {
			// недоступность процессора стоит ровно одну попытку бюджета
			logger.Warn("payment check failed", "number", order.Number, zap.Error(err))
		} else if txn != nil {
			switch txn.Status {
			case models.StatusNameAuthorized, models.StatusNameDeclined:
				applied, err := s.applyStatus(ctx, order, txn.StatusCode)
				if err != nil {
					return order, err
				}
				if applied {
					s.dispatch(ctx, order)
				}
				return order, nil
			case models.StatusNameAwaitingAuthentication:
				applied, err := s.applyStatus(ctx, order, txn.StatusCode)
				if err != nil {
					return order, err
				}
				if !applied && order.StatusCode.Terminal() {
					// вебхук успел закрыть заказ, опрос больше не нужен
					return order, nil
				}
			}
		}

		select {
		case <-ctx.Done():
			return order, ctx.Err()
		case <-time.After(s.Config.Delay):
		}
	}
}

// CheckOnce - разовая проверка платежа по номеру заказа вне polling-цикла.
// Отсутствие транзакции - не ошибка, просто ничего не поменялось.
func (s *Reconciler) CheckOnce(ctx context.Context, number string) (*models.Order, error) {
	order, err := s.Storage.GetOrder(ctx, number)
	if err != nil {
		return nil, err
	}

	txn, err := s.Processor.FindPayment(ctx, order.Number)
	if err != nil {
		return order, err
	}
	if txn == nil {
		logger.Info("check order status: nothing changed", "number", order.Number, "status", order.StatusCode)
		return order, nil
	}

	// в отличие от polling-пути статус применяется без фильтра по имени
	applied, err := s.applyStatus(ctx, order, txn.StatusCode)
	if err != nil {
		return order, err
	}
	if applied {
		s.dispatch(ctx, order)
	}
	return order, nil
}

// ApplyWebhook - обрабатывает вебхук CloudPayments. Статус-код берется не из
// тела, а из маршрута (/pay или /fail) - сам маршрут и есть сигнал исхода.
func (s *Reconciler) ApplyWebhook(ctx context.Context, form url.Values, asserted models.StatusCode) (*models.Order, error) {
	txn, err := models.TransactionFromForm(form)
	if err != nil {
		return nil, err
	}
	txn.StatusCode = asserted

	order, err := s.Storage.GetOrder(ctx, txn.InvoiceID)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return nil, fmt.Errorf("webhook for invoice %s: %w", txn.InvoiceID, storage.ErrOrderNotFound)
		}
		return nil, err
	}

	applied, err := s.applyStatus(ctx, order, txn.StatusCode)
	if err != nil {
		return nil, err
	}
	if applied {
		s.dispatch(ctx, order)
	}
	return order, nil
}

// applyStatus - единственная точка смены статуса заказа. Под по-заказной
// блокировкой перечитывает сохраненный статус (второй писатель мог успеть
// раньше), проверяет липкость терминальных состояний и сохраняет переход.
// Возвращает false, если переход не состоялся.
func (s *Reconciler) applyStatus(ctx context.Context, order *models.Order, code models.StatusCode) (bool, error) {
	lock := s.lockFor(order.Number)
	lock.Lock()
	defer lock.Unlock()

	persisted := true
	stored, err := s.Storage.GetOrder(ctx, order.Number)
	if err != nil {
		if !errors.Is(err, storage.ErrOrderNotFound) {
			return false, err
		}
		persisted = false
	}
	if stored != nil {
		order.StatusCode = stored.StatusCode
		if stored.ReceiptURL != "" {
			order.ReceiptURL = stored.ReceiptURL
		}
	}

	current := order.StatusCode
	if current.Terminal() {
		// повторное применение того же терминального статуса - no-op
		if code == current {
			return false, nil
		}
		// единственный разрешенный переход из терминального состояния -
		// финализация неуспеха в Cancelled при терминальной диспетчеризации
		if code != models.StatusCancelled {
			logger.Warn("status transition rejected", "number", order.Number, "current", current, "new", code)
			return false, nil
		}
	}

	order.StatusCode = code
	if persisted {
		if err := s.Storage.UpdateOrder(ctx, order); err != nil {
			return false, fmt.Errorf("failed to persist status %s for order %s: %w", code, order.Number, err)
		}
	}
	if code.Terminal() {
		// терминальный заказ статус больше не меняет, блокировка ему не нужна
		s.mu.Lock()
		delete(s.locks, order.Number)
		s.mu.Unlock()
	}
	logger.Info("order status updated", "number", order.Number, "status", code)
	return true, nil
}

// dispatch - действия по достигнутому статусу: уведомления, чек, отмена
// зависшего платежа на стороне CloudPayments
func (s *Reconciler) dispatch(ctx context.Context, order *models.Order) {
	switch order.StatusCode {
	case models.StatusOk:
		s.attachReceipt(ctx, order)
		s.notify(ctx, order.Owner, fmt.Sprintf(
			"The payment %s was successful.\nThe amount: %s.", order.Number, order.Amount))
		if order.ReceiptURL != "" {
			s.notify(ctx, order.Owner, fmt.Sprintf("Your receipt link: %s", order.ReceiptURL))
		}
	case models.StatusError, models.StatusCancelled, models.StatusAttemptsExhausted:
		// в уведомление идет код исходного неуспеха, а не итоговый Cancelled
		failure := order.StatusCode
		// отмена уже отмененного/отклоненного заказа на стороне процессора не фатальна
		if err := s.Processor.CancelOrder(ctx, order.ID); err != nil {
			logger.Warn("remote cancel failed", "number", order.Number, zap.Error(err))
		}
		if _, err := s.applyStatus(ctx, order, models.StatusCancelled); err != nil {
			logger.Error("failed to finalize cancelled order", "number", order.Number, zap.Error(err))
		}
		s.notify(ctx, order.Owner, fmt.Sprintf(
			"The payment %s was made with an error.\nThe amount of %s has not been credited.\nStatus code: %d",
			order.Number, order.Amount, int(failure)))
	case models.StatusWait:
		s.notify(ctx, order.Owner, fmt.Sprintf("The payment %s is waiting.", order.Number))
	}
}

// attachReceipt - формирует чек после успешной оплаты. Ошибка чека исход
// платежа не отменяет.
func (s *Reconciler) attachReceipt(ctx context.Context, order *models.Order) {
	if s.Receipts.TaxID == "" {
		return
	}
	receipt := models.Receipt{
		Items: []models.ReceiptItem{
			{
				Label:    order.Description,
				Price:    order.Amount,
				Quantity: decimal.NewFromInt(1),
				Amount:   order.Amount,
				Vat:      s.Receipts.Vat,
				Object:   10, // признак предмета расчета - платеж
			},
		},
		TaxationSystem: s.Receipts.TaxationSystem,
	}

	receiptURL, err := s.Processor.CreateReceipt(ctx, s.Receipts.TaxID, receipt)
	if err != nil {
		logger.Warn("failed to create receipt", "number", order.Number, zap.Error(err))
		return
	}
	order.ReceiptURL = receiptURL
	if err := s.Storage.UpdateOrder(ctx, order); err != nil {
		logger.Warn("failed to persist receipt url", "number", order.Number, zap.Error(err))
	}
}

func (s *Reconciler) notify(ctx context.Context, recipient string, message string) {
	if err := s.Notifier.Notify(ctx, recipient, message); err != nil {
		logger.Error("failed to notify owner", "recipient", recipient, zap.Error(err))
	}
}
