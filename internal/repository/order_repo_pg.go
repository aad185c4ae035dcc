package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/lessonbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	List(ctx context.Context) ([]domain.Order, error)
}

// orderDB is the slice of the pool the repository uses; tests substitute it
// to drive Create through a scripted transaction.
type orderDB interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type PGOrderRepository struct {
	db orderDB
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PGOrderRepository{db: db}
}

// Create reserves space for every line item and persists the order in one
// transaction. The decrement is guarded by the current space value, so two
// concurrent orders can never drive space negative; any failed item rolls
// back every earlier decrement and the order is not written.
func (r *PGOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := range order.Items {
		item := &order.Items[i]
		var name string
		err := tx.QueryRow(ctx,
			`UPDATE lessons SET space = space - $2, updated_at = now() WHERE id=$1 AND space >= $2 RETURNING name`,
			item.LessonID, item.Quantity).Scan(&name)
		if errors.Is(err, pgx.ErrNoRows) {
			if err := tx.QueryRow(ctx, `SELECT name FROM lessons WHERE id=$1`, item.LessonID).Scan(&name); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return ErrLessonNotFound
				}
				return err
			}
			return &InsufficientSpaceError{LessonName: name}
		}
		if err != nil {
			return err
		}
		item.LessonName = name
	}

	if err := tx.QueryRow(ctx,
		`INSERT INTO orders (id, first_name, last_name, phone, method, address, zip)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		order.ID, order.FirstName, order.LastName, order.Phone, order.Method, order.Address, order.Zip).
		Scan(&order.CreatedAt); err != nil {
		return err
	}

	for _, item := range order.Items {
		if _, err := tx.Exec(ctx,
			`INSERT INTO order_items (order_id, lesson_id, lesson_name, quantity) VALUES ($1, $2, $3, $4)`,
			order.ID, item.LessonID, item.LessonName, item.Quantity); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PGOrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT id, first_name, last_name, phone, method, address, zip, created_at FROM orders ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	index := make(map[string]int)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.FirstName, &o.LastName, &o.Phone, &o.Method, &o.Address, &o.Zip, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Items = make([]domain.LineItem, 0)
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := r.db.Query(ctx, `SELECT order_id, lesson_id, lesson_name, quantity FROM order_items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID string
		var item domain.LineItem
		if err := itemRows.Scan(&orderID, &item.LessonID, &item.LessonName, &item.Quantity); err != nil {
			return nil, err
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return orders, itemRows.Err()
}

var _ OrderRepository = (*PGOrderRepository)(nil)
