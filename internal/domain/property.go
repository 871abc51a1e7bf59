package domain

import "time"

// Property is a listed residential or commercial property. Both kinds share
// the same shape and approval columns; they live in separate tables and are
// addressed through EntityKind.
type Property struct {
	ID              string
	AddedBy         string
	Name            string
	Description     string
	PhysicalAddress string
	City            string
	Price           float64
	Bedrooms        int
	Bathrooms       int
	SizeSqft        *int
	Status          ApprovalStatus
	Approved        bool
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
