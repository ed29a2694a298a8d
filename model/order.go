package model

// Order is a stored order row. The customer reference was verified against
// the customer service when the order was created; it is not re-checked
// afterwards.
type Order struct {
	ID         int64  `db:"id"          json:"id"`
	CustomerID int64  `db:"customer_id" json:"customer_id"`
	Product    string `db:"product"     json:"product"`
	Quantity   int64  `db:"quantity"    json:"quantity"`
}

// CreateOrderRequest is the POST /orders body.
type CreateOrderRequest struct {
	CustomerID *int64  `json:"customer_id" validate:"required,gt=0"`
	Product    *string `json:"product"     validate:"required,min=1,max=255"`
	Quantity   *int64  `json:"quantity"    validate:"required,gt=0"`
}
