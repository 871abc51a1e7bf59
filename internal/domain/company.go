package domain

import "time"

// Company is a registered real-estate firm. CreatedBy references the account
// that submitted it and receives the approval/rejection mail.
type Company struct {
	ID                 string
	CreatedBy          string
	Name               string
	RegistrationNumber string
	Email              string
	Phone              string
	Address            string
	Website            string
	Status             ApprovalStatus
	Verified           bool
	VerifiedBy         *string
	VerifiedAt         *time.Time
	VerificationNotes  *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
