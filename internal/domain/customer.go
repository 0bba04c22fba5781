package domain

import "time"

type Customer struct {
	ID            int32     `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	IDNumber      string    `json:"id_number"`
	LicenseNumber string    `json:"license_number"`
	Address       string    `json:"address"`
	Notes         string    `json:"notes"`
	CreatedOn     time.Time `json:"created_on"`
	UpdatedOn     time.Time `json:"updated_on"`
}

func (c *Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
