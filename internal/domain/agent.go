package domain

import "time"

// Agent is a licensed estate-agent profile attached to a user account. It is
// created pending and unverified; only the approval workflow mutates the
// verification fields.
type Agent struct {
	ID                  string
	UserID              string
	IDOrPassportNumber  string
	PhysicalAddress     string
	OfficeAddress       string
	LicenseSerialNumber string
	LicenseIssuedAt     *time.Time
	Status              ApprovalStatus
	Verified            bool
	VerifiedBy          *string
	VerifiedAt          *time.Time
	VerificationNotes   *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
