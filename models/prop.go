package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckedOutDetails records who currently holds a prop outside storage.
// Nil on the Prop means "not checked out".
type CheckedOutDetails struct {
	CheckedOutTo       string     `json:"checked_out_to"`
	CheckedOutBy       string     `json:"checked_out_by"`
	CheckedOutDate     time.Time  `json:"checked_out_date"`
	ExpectedReturnDate *time.Time `json:"expected_return_date,omitempty"`
	Notes              string     `json:"notes,omitempty"`
}

// Prop is one physical inventory item owned by a show. Status (and the
// denormalized checkout/assignment fields tied to it) must only be mutated
// through the workflow package's status update coordinator.
type Prop struct {
	ID               string             `json:"id"`
	ShowId           string             `json:"show_id"`
	Name             string             `json:"name"`
	Category         string             `json:"category,omitempty"`
	Description      string             `json:"description,omitempty"`
	Location         string             `json:"location,omitempty"`
	CurrentLocation  string             `json:"current_location,omitempty"`
	Price            decimal.Decimal    `json:"price"`
	AssignedTo       []string           `json:"assigned_to,omitempty"`
	CheckedOut       *CheckedOutDetails `json:"checked_out_details,omitempty"`
	Images           []string           `json:"images,omitempty"`
	Status           PropStatus         `json:"status"`
	LastStatusUpdate *time.Time         `json:"last_status_update,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}
