package domain

import "time"

type Supplier struct {
	ID          int32     `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Notes       string    `json:"notes"`
	Active      bool      `json:"active"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}

// Branch is a pickup location belonging to a supplier
type Branch struct {
	ID         int32     `json:"id"`
	SupplierID int32     `json:"supplier_id"`
	Name       string    `json:"name"`
	City       string    `json:"city"`
	Address    string    `json:"address"`
	Phone      string    `json:"phone"`
	CreatedOn  time.Time `json:"created_on"`
	UpdatedOn  time.Time `json:"updated_on"`
}
