package model

// Customer is a stored customer row. Ids are assigned by the database.
type Customer struct {
	ID    int64  `db:"id"    json:"id"`
	Name  string `db:"name"  json:"name"`
	Email string `db:"email" json:"email"`
}

// CreateCustomerRequest is the POST /customers body. Fields are pointers so
// the validator can tell a missing field from an empty one.
type CreateCustomerRequest struct {
	Name  *string `json:"name"  validate:"required,min=1,max=255"`
	Email *string `json:"email" validate:"required,min=1,max=255,contains=@"`
}
