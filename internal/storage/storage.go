package storage

import (
	"context"
	"errors"

	"github.com/denmor86/cloudpay-bot/internal/models"
)

// OrdersStorage - хранилище заказов, ключ - номер заказа CloudPayments.
// Семантика записи - последняя побеждает, контроль переходов статусов
// остается за движком сверки.
type OrdersStorage interface {
	AddOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, number string) (*models.Order, error)
	UpdateOrder(ctx context.Context, order *models.Order) error
	// DeleteOrder - операторская операция, движок сверки заказы не удаляет
	DeleteOrder(ctx context.Context, number string) error
	// ClaimPendingOrders - забирает подвисшие нетерминальные заказы для дотрекинга
	ClaimPendingOrders(ctx context.Context, limit int) ([]models.Order, error)
}

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrAlreadyExists = errors.New("already exists")
)
