package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"crmshop/model"
)

// ListOrders returns every order in whatever order the store yields.
func (s *Store) ListOrders(ctx context.Context) ([]model.Order, Timing, error) {
	var tm Timing
	conn, err := s.acquire(ctx, &tm)
	if err != nil {
		return nil, tm, err
	}
	defer conn.Close()

	orders := []model.Order{}
	t := time.Now()
	err = conn.SelectContext(ctx, &orders, "SELECT id, customer_id, product, quantity FROM orders")
	tm.QueryMS = msSince(t)
	return orders, tm, err
}

// GetOrder returns the order, or nil with no error when no row matches.
func (s *Store) GetOrder(ctx context.Context, id int64) (*model.Order, Timing, error) {
	var tm Timing
	conn, err := s.acquire(ctx, &tm)
	if err != nil {
		return nil, tm, err
	}
	defer conn.Close()

	var o model.Order
	t := time.Now()
	err = conn.GetContext(ctx, &o,
		"SELECT id, customer_id, product, quantity FROM orders WHERE id = $1", id)
	tm.QueryMS = msSince(t)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, tm, nil
	}
	if err != nil {
		return nil, tm, err
	}
	return &o, tm, nil
}

// InsertOrder stores a new order and returns it with the generated id. The
// caller is responsible for having verified the customer reference first.
func (s *Store) InsertOrder(ctx context.Context, customerID int64, product string, quantity int64) (model.Order, Timing, error) {
	var tm Timing
	conn, err := s.acquire(ctx, &tm)
	if err != nil {
		return model.Order{}, tm, err
	}
	defer conn.Close()

	o := model.Order{CustomerID: customerID, Product: product, Quantity: quantity}
	t := time.Now()
	err = conn.GetContext(ctx, &o.ID,
		"INSERT INTO orders (customer_id, product, quantity) VALUES ($1, $2, $3) RETURNING id",
		customerID, product, quantity)
	tm.QueryMS = msSince(t)
	return o, tm, err
}
