package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/denmor86/cloudpay-bot/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const (
	GetOrder = `SELECT id, owner, amount, currency, description, payment_url, receipt_url, status, created_at
				FROM ORDERS WHERE number=$1;`
	InsertOrder = `INSERT INTO ORDERS (number, id, owner, amount, currency, description, payment_url, receipt_url, status, created_at, updated_at)
				   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
				   ON CONFLICT (number) DO NOTHING
				   RETURNING number;`
	UpdateOrder = `UPDATE ORDERS
				   SET
				       status = $1,
				       receipt_url = $2,
				       updated_at = NOW()
				   WHERE number = $3;`
	DeleteOrder = `DELETE FROM ORDERS WHERE number = $1;`
	// Забираем только заказы, которые давно никто не трогал: живой трекинг
	// обновляет updated_at на каждом изменении статуса
	ClaimPendingOrders = `UPDATE ORDERS
						  SET retry_count = retry_count + 1,
						      updated_at = NOW()
						  WHERE number IN (
						      SELECT number FROM ORDERS
						      WHERE status IN (0, 1) AND retry_count < 3
						            AND updated_at < NOW() - INTERVAL '1 minute'
						      ORDER BY created_at
						      LIMIT $1
						      FOR UPDATE SKIP LOCKED
						  )
						  RETURNING number, id, owner, amount, currency, description, payment_url, receipt_url, status, created_at;`
)

type OrderDatabase struct {
	DB *Database
}

// Создание хранилища заказов
func NewOrdersStorage(db *Database) OrdersStorage {
	return &OrderDatabase{DB: db}
}

func (s *OrderDatabase) AddOrder(ctx context.Context, order *models.Order) error {
	var prevNumber string
	err := s.DB.Pool.QueryRow(ctx, InsertOrder,
		order.Number,
		order.ID,
		order.Owner,
		order.Amount,
		order.Currency,
		order.Description,
		order.PaymentURL,
		order.ReceiptURL,
		int(order.StatusCode),
		order.CreatedAt,
	).Scan(&prevNumber)

	if err == nil {
		return nil
	}
	// ON CONFLICT DO NOTHING не возвращает строку при дубле
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrAlreadyExists
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAlreadyExists
	}

	return fmt.Errorf("failed to add order: %w", err)
}

func (s *OrderDatabase) GetOrder(ctx context.Context, number string) (*models.Order, error) {
	order := models.Order{Number: number}
	var (
		status    int
		amount    decimal.Decimal
		createdAt time.Time
	)

	err := s.DB.Pool.QueryRow(ctx, GetOrder, number).Scan(
		&order.ID,
		&order.Owner,
		&amount,
		&order.Currency,
		&order.Description,
		&order.PaymentURL,
		&order.ReceiptURL,
		&status,
		&createdAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	order.Amount = amount
	order.StatusCode = models.StatusCode(status)
	order.CreatedAt = createdAt
	return &order, nil
}

func (s *OrderDatabase) UpdateOrder(ctx context.Context, order *models.Order) error {
	tag, err := s.DB.Pool.Exec(ctx, UpdateOrder, int(order.StatusCode), order.ReceiptURL, order.Number)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (s *OrderDatabase) DeleteOrder(ctx context.Context, number string) error {
	tag, err := s.DB.Pool.Exec(ctx, DeleteOrder, number)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (s *OrderDatabase) ClaimPendingOrders(ctx context.Context, limit int) ([]models.Order, error) {
	var orders []models.Order
	rows, err := s.DB.Pool.Query(ctx, ClaimPendingOrders, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to claim pending orders: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			order     models.Order
			status    int
			amount    decimal.Decimal
			createdAt time.Time
		)
		err := rows.Scan(
			&order.Number,
			&order.ID,
			&order.Owner,
			&amount,
			&order.Currency,
			&order.Description,
			&order.PaymentURL,
			&order.ReceiptURL,
			&status,
			&createdAt,
		)
		if err != nil {
			return orders, fmt.Errorf("failed scan pending order: %w", err)
		}
		order.Amount = amount
		order.StatusCode = models.StatusCode(status)
		order.CreatedAt = createdAt
		orders = append(orders, order)
	}
	return orders, rows.Err()
}
