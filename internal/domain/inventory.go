package domain

import "time"

// InventoryRequestStatusPending marks requests awaiting review.
const InventoryRequestStatusPending = "Pending"

// InventoryItem is a tracked asset, optionally assigned to a user.
type InventoryItem struct {
	ID             string
	OrganizationID string
	Name           string
	ItemCode       string
	SerialNumber   string
	Quantity       int
	AssignedTo     *string
}

// InventoryRequest is a staff request for stock.
type InventoryRequest struct {
	ID             string
	OrganizationID string
	StaffID        string
	StaffFullName  string
	ItemName       string
	Quantity       int
	Status         string
	CreatedAt      time.Time
}
