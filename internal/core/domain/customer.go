package domain

import (
	"errors"
	"time"
)

// CustomerClass drives how a customer's display name is rendered.
const (
	ClassEnterprise = "Enterprise"
	ClassIndividual = "Individual"
)

var ErrCustomerNotFound = errors.New("customer not found")

// Customer is a billing account record. The display name is derived from the
// classification on read and never stored.
type Customer struct {
	ID            int64     `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Class         string    `json:"class"`
	SubClass      string    `json:"sub_class,omitempty"`
	Country       string    `json:"country,omitempty"`
	CountryCode   string    `json:"country_code,omitempty"`
	Email         string    `json:"email,omitempty"`
	ContactNumber int64     `json:"contact_number,omitempty"`
	AddressLine1  string    `json:"address_line1,omitempty"`
	AddressLine2  string    `json:"address_line2,omitempty"`
	Region        string    `json:"region,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DisplayName renders the customer-facing name: enterprise accounts are
// addressed by company ("Acme LLC"), individuals as "Last, First".
func (c *Customer) DisplayName() string {
	if c.Class == ClassEnterprise {
		return c.FirstName + " LLC"
	}
	return c.LastName + ", " + c.FirstName
}
