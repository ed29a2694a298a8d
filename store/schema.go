package store

import "context"

// Orders deliberately carry no foreign key to customers: referential
// integrity is checked over HTTP when an order is created and never enforced
// afterwards, so customers stay deletable while orders reference them.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		customer_id BIGINT NOT NULL,
		product VARCHAR(255) NOT NULL,
		quantity BIGINT NOT NULL
	)`,
}

// Migrate applies the schema idempotently. Run once at service startup.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
