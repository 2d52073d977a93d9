package model

import "time"

type Customer struct {
	ID        int64     `db:"id"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`   // optional, XXX-XXXX
	Address   string    `db:"address"` // optional
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// CustomerRequest is the client-facing input shape. It carries only the
// mutable fields; id and timestamps are never client-settable.
type CustomerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type CustomerResponse struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CustomerStats struct {
	TotalCustomers int64 `json:"totalCustomers"`
	GmailUsers     int64 `json:"gmailUsers"`
}

// NewCustomerFromRequest builds a fresh entity from an input payload.
// ID and timestamps are left for the service/store to assign.
func NewCustomerFromRequest(req *CustomerRequest) *Customer {
	return &Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
	}
}

// ApplyRequest copies the mutable fields onto an existing entity.
// Explicit whitelist: id and created_at can never be overwritten here.
func (c *Customer) ApplyRequest(req *CustomerRequest) {
	c.FirstName = req.FirstName
	c.LastName = req.LastName
	c.Email = req.Email
	c.Phone = req.Phone
	c.Address = req.Address
}

func (c *Customer) ToResponse() CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ToResponseList(customers []Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, customers[i].ToResponse())
	}
	return out
}
