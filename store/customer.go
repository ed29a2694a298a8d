package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"crmshop/model"
)

// ListCustomers returns every customer in whatever order the store yields.
func (s *Store) ListCustomers(ctx context.Context) ([]model.Customer, Timing, error) {
	var tm Timing
	conn, err := s.acquire(ctx, &tm)
	if err != nil {
		return nil, tm, err
	}
	defer conn.Close()

	customers := []model.Customer{}
	t := time.Now()
	err = conn.SelectContext(ctx, &customers, "SELECT id, name, email FROM customers")
	tm.QueryMS = msSince(t)
	return customers, tm, err
}

// GetCustomer returns the customer, or nil with no error when no row matches.
func (s *Store) GetCustomer(ctx context.Context, id int64) (*model.Customer, Timing, error) {
	var tm Timing
	conn, err := s.acquire(ctx, &tm)
	if err != nil {
		return nil, tm, err
	}
	defer conn.Close()

	var c model.Customer
	t := time.Now()
	err = conn.GetContext(ctx, &c, "SELECT id, name, email FROM customers WHERE id = $1", id)
	tm.QueryMS = msSince(t)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, tm, nil
	}
	if err != nil {
		return nil, tm, err
	}
	return &c, tm, nil
}

// InsertCustomer stores a new customer and returns it with the generated id.
func (s *Store) InsertCustomer(ctx context.Context, name, email string) (model.Customer, Timing, error) {
	var tm Timing
	conn, err := s.acquire(ctx, &tm)
	if err != nil {
		return model.Customer{}, tm, err
	}
	defer conn.Close()

	c := model.Customer{Name: name, Email: email}
	t := time.Now()
	err = conn.GetContext(ctx, &c.ID,
		"INSERT INTO customers (name, email) VALUES ($1, $2) RETURNING id", name, email)
	tm.QueryMS = msSince(t)
	return c, tm, err
}

// DeleteCustomer removes the customer and reports whether a row was deleted.
func (s *Store) DeleteCustomer(ctx context.Context, id int64) (bool, Timing, error) {
	var tm Timing
	conn, err := s.acquire(ctx, &tm)
	if err != nil {
		return false, tm, err
	}
	defer conn.Close()

	t := time.Now()
	res, err := conn.ExecContext(ctx, "DELETE FROM customers WHERE id = $1", id)
	tm.QueryMS = msSince(t)
	if err != nil {
		return false, tm, err
	}
	n, err := res.RowsAffected()
	return n > 0, tm, err
}
